package errors

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
)

// maxErrorBody bounds how much of an error response is read
const maxErrorBody = 64 << 10

// APIError is an error reported by the finance API.
// Message is always populated; Code is only set when the server provides one.
type APIError struct {
	Status  int    `json:"-"`
	Message string `json:"message"`
	Code    string `json:"code,omitempty"`
}

func (e *APIError) Error() string {
	if e.Code != "" {
		return fmt.Sprintf("api error %d (%s): %s", e.Status, e.Code, e.Message)
	}
	return fmt.Sprintf("api error %d: %s", e.Status, e.Message)
}

// Is lets callers match an APIError against the status sentinels
func (e *APIError) Is(target error) bool {
	switch target {
	case ErrUnauthorized:
		return e.Status == http.StatusUnauthorized
	case ErrForbidden:
		return e.Status == http.StatusForbidden
	case ErrNotFound:
		return e.Status == http.StatusNotFound
	case ErrInvalidRequest:
		return e.Status == http.StatusBadRequest || e.Status == http.StatusUnprocessableEntity
	}
	return false
}

// errorEnvelope covers the two error shapes the API returns:
// {"error":{"message":"..","code":".."}} and {"message":".."}.
type errorEnvelope struct {
	Error   json.RawMessage `json:"error"`
	Message string          `json:"message"`
}

// FromResponse builds an APIError from a non-2xx response. The body is read but not closed.
func FromResponse(resp *http.Response) *APIError {
	apiErr := &APIError{Status: resp.StatusCode}

	body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
	var env errorEnvelope
	if err := json.Unmarshal(body, &env); err == nil {
		if len(env.Error) > 0 {
			var detail APIError
			if err := json.Unmarshal(env.Error, &detail); err == nil {
				apiErr.Message = detail.Message
				apiErr.Code = detail.Code
			} else {
				// "error" may be a bare string
				var s string
				if json.Unmarshal(env.Error, &s) == nil {
					apiErr.Message = s
				}
			}
		}
		if apiErr.Message == "" {
			apiErr.Message = env.Message
		}
	}

	if apiErr.Message == "" {
		apiErr.Message = strings.ToLower(http.StatusText(resp.StatusCode))
	}
	if apiErr.Message == "" {
		apiErr.Message = "unexpected response"
	}
	return apiErr
}
