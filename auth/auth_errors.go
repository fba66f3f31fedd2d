package auth

import (
	"fmt"

	"github.com/jrsteele09/go-finance-client/internal/errors"
)

// CallbackError is the error the identity service reported on the login redirect
type CallbackError struct {
	Reason string
}

func (e *CallbackError) Error() string {
	return fmt.Sprintf("authentication failed: %s", e.Reason)
}

func (e *CallbackError) Unwrap() error {
	return errors.ErrInvalidCallback
}
