package errors

import (
	"errors"
	"fmt"
)

// Common error types for the finance client
var (
	// Authentication errors
	ErrUnauthorized     = errors.New("unauthorized")
	ErrForbidden        = errors.New("forbidden")
	ErrNotAuthenticated = errors.New("not authenticated")

	// Token errors
	ErrNoRefreshToken          = errors.New("no refresh token available")
	ErrSessionExpired          = errors.New("session expired")
	ErrInvalidRefreshResponse  = errors.New("invalid refresh response")
	ErrOpaqueToken             = errors.New("token is not a JWT")
	ErrIncompleteTokenPair     = errors.New("access and refresh tokens must be set together")
	ErrMissingCallbackTokens   = errors.New("authentication tokens not received")
	ErrInvalidCallback         = errors.New("invalid authentication callback")
	ErrUnsupportedAuthProvider = errors.New("unsupported auth provider")

	// Storage errors
	ErrKeyNotFound = errors.New("key not found")

	// General errors
	ErrNotFound       = errors.New("not found")
	ErrInvalidRequest = errors.New("invalid request")
	ErrInternal       = errors.New("internal error")
)

// New is errors.New, re-exported so callers only import one errors package
func New(text string) error {
	return errors.New(text)
}

// Wrapf wraps an error with context using fmt.Errorf
func Wrapf(err error, format string, args ...interface{}) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf(format+": %w", append(args, err)...)
}

// Is reports whether any error in err's chain matches target
func Is(err, target error) bool {
	return errors.Is(err, target)
}

// As finds the first error in err's chain that matches target
func As(err error, target interface{}) bool {
	return errors.As(err, target)
}

// Join is errors.Join
func Join(errs ...error) error {
	return errors.Join(errs...)
}
