package refresh

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/jrsteele09/go-finance-client/internal/errors"
)

// Route is the refresh endpoint, relative to the API root
const Route = "/auth/refresh"

// Client exchanges a refresh token for a new access token.
// It deliberately uses its own http.Client, not the authenticated pipeline, so a failing
// refresh can never trigger another refresh.
type Client struct {
	apiURL string
	http   *http.Client
}

type Option func(*Client)

// WithHTTPClient replaces the default client (30s timeout)
func WithHTTPClient(c *http.Client) Option {
	return func(rc *Client) {
		rc.http = c
	}
}

// NewClient creates a refresh client for the API rooted at apiURL (e.g. http://host/api/v1)
func NewClient(apiURL string, opts ...Option) *Client {
	c := &Client{
		apiURL: strings.TrimRight(apiURL, "/"),
		http:   &http.Client{Timeout: 30 * time.Second},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Refresh posts the refresh token and returns the new token pair
func (c *Client) Refresh(ctx context.Context, refreshToken string) (*TokenPair, error) {
	if refreshToken == "" {
		return nil, errors.ErrNoRefreshToken
	}

	body, err := json.Marshal(refreshRequest{RefreshToken: refreshToken})
	if err != nil {
		return nil, fmt.Errorf("encode refresh request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.apiURL+Route, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("build refresh request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("refresh request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("refresh rejected: %w", errors.FromResponse(resp))
	}

	var out refreshResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, fmt.Errorf("%w: %w", errors.ErrInvalidRefreshResponse, err)
	}
	if out.Data == nil || out.Data.AccessToken == "" {
		return nil, fmt.Errorf("%w: missing access token", errors.ErrInvalidRefreshResponse)
	}
	return out.Data, nil
}
