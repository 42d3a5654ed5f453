package thriftdb

import (
	"errors"
	"fmt"
	"net/http"
)

// Static errors for err113 compliance.
var (
	ErrInvalidBaseURL = errors.New("invalid base URL")
)

// StatusError describes a non-2xx response. It is only produced by
// Response.Err.
type StatusError struct {
	StatusCode int
	Body       []byte
}

// Error implements the error interface.
func (e *StatusError) Error() string {
	if len(e.Body) == 0 {
		return fmt.Sprintf("thriftdb: %d %s", e.StatusCode, http.StatusText(e.StatusCode))
	}

	return fmt.Sprintf("thriftdb: %d %s: %s", e.StatusCode, http.StatusText(e.StatusCode), string(e.Body))
}

// StatusCode extracts the status code from a *StatusError in err's chain.
func StatusCode(err error) (int, bool) {
	statusErr := &StatusError{}
	if errors.As(err, &statusErr) {
		return statusErr.StatusCode, true
	}

	return 0, false
}

// IsNotFound checks if the error is a not found error.
func IsNotFound(err error) bool {
	code, ok := StatusCode(err)

	return ok && code == http.StatusNotFound
}

// IsConflict checks if the error is a conflict error, e.g. creating a bucket
// that already exists.
func IsConflict(err error) bool {
	code, ok := StatusCode(err)

	return ok && code == http.StatusConflict
}

// IsUnauthorized checks if the error is an authentication error.
func IsUnauthorized(err error) bool {
	code, ok := StatusCode(err)

	return ok && code == http.StatusUnauthorized
}
