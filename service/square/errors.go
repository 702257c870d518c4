package square

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
)

// ErrServiceUnavailable matches every failure talking to the point-of-sale API.
var ErrServiceUnavailable = errors.New("point-of-sale service unavailable")

// ErrNotConfigured is returned by NewClient when no access token is supplied.
var ErrNotConfigured = errors.New("square access token not configured")

// ErrorDetail is one entry of the API's "errors" array.
type ErrorDetail struct {
	Category string `json:"category"`
	Code     string `json:"code"`
	Detail   string `json:"detail,omitempty"`
	Field    string `json:"field,omitempty"`
}

// APIError is a failed call: a transport error (StatusCode 0), a non-2xx
// response, or a 2xx response carrying an errors payload.
type APIError struct {
	Op         string
	StatusCode int
	Errors     []ErrorDetail
	Err        error
}

func (e *APIError) Error() string {
	var b strings.Builder
	fmt.Fprintf(&b, "square %s", e.Op)
	if e.StatusCode != 0 {
		fmt.Fprintf(&b, ": status %d", e.StatusCode)
	}
	for _, d := range e.Errors {
		fmt.Fprintf(&b, ": %s/%s", d.Category, d.Code)
		if d.Detail != "" {
			fmt.Fprintf(&b, " %s", d.Detail)
		}
	}
	if e.Err != nil {
		fmt.Fprintf(&b, ": %v", e.Err)
	}
	return b.String()
}

func (e *APIError) Unwrap() error { return e.Err }

func (e *APIError) Is(target error) bool { return target == ErrServiceUnavailable }

// Retryable reports whether repeating the call may succeed.
func (e *APIError) Retryable() bool {
	return e.StatusCode == 0 || e.StatusCode == http.StatusTooManyRequests || e.StatusCode >= 500
}
