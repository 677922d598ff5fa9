package client

import (
	"errors"
	"fmt"
	"net/http"
)

// ErrNotAuthenticated is returned, without a request being sent, by staff
// calls made while no session is held.
var ErrNotAuthenticated = errors.New("client: not authenticated")

// ErrStopped is returned by a poll that completed after its poller was
// stopped. The result was discarded.
var ErrStopped = errors.New("client: poller stopped")

// APIError is a non-2xx response. Message is the server-provided text and is
// meant to be shown to the user as is.
type APIError struct {
	Status  int
	Message string
	Method  string
	Path    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("%s %s: %d %s", e.Method, e.Path, e.Status, e.Message)
}

// IsAuthFailure reports whether the response was a 401 or 403.
func (e *APIError) IsAuthFailure() bool {
	return e.Status == http.StatusUnauthorized || e.Status == http.StatusForbidden
}

// IsAuthFailure reports whether err is, or wraps, a 401/403 APIError.
func IsAuthFailure(err error) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.IsAuthFailure()
}
