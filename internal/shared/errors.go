package shared

import (
	"errors"
	"fmt"
)

var (
	// Configuration errors
	ErrMissingConfig = fmt.Errorf("configuration not found")
	ErrInvalidConfig = fmt.Errorf("invalid configuration")

	// Session errors
	ErrAuthFailed       = fmt.Errorf("authentication failed")
	ErrNotAuthenticated = fmt.Errorf("not authenticated")
	ErrSessionExpired   = fmt.Errorf("session expired")

	// Catalog errors
	ErrServerUnreachable = fmt.Errorf("Server not reached!")
	ErrStaleResponse     = fmt.Errorf("superseded by a newer page request")
	ErrEmptySelection    = fmt.Errorf("It is necessary to select at least one music!")
	ErrRecoverFailed     = fmt.Errorf("Error when recovered musics!")
	ErrNotConfirmed      = fmt.Errorf("operation not confirmed")

	// Input validation errors
	ErrInvalidInput    = fmt.Errorf("invalid input")
	ErrMissingArgument = fmt.Errorf("missing required argument")
	ErrInvalidArgument = fmt.Errorf("invalid argument")
)

// APIError carries a non-2xx status and the server's verbatim message
// field, surfaced to the user without rewording.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("request failed with status %d", e.Status)
	}
	return e.Message
}

// AsAPIError unwraps err into an [APIError] when possible.
func AsAPIError(err error) (*APIError, bool) {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr, true
	}
	return nil, false
}
