package firecrawl

import (
	"errors"
	"fmt"
	"net"
	"net/http"
)

// RequestError wraps a transport-level failure (connection refused, DNS,
// timeout). These are always worth retrying.
type RequestError struct {
	URL string
	Err error
}

func (e *RequestError) Error() string {
	return fmt.Sprintf("request %s: %v", e.URL, e.Err)
}

func (e *RequestError) Unwrap() error { return e.Err }

// Retryable implements the retryable interface.
func (e *RequestError) Retryable() bool { return true }

// APIError is a non-2xx response from the API, or a 2xx response whose body
// reports success=false. Rate limits and server errors are retryable; auth
// and validation failures are not.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("api status %d: %s", e.StatusCode, e.Message)
}

// Retryable reports whether the request may succeed on a later attempt.
func (e *APIError) Retryable() bool {
	return e.StatusCode == http.StatusTooManyRequests || e.StatusCode >= 500
}

type retryable interface {
	Retryable() bool
}

// IsRetryable reports whether err is worth another attempt: a typed error
// that declares itself retryable, or a plain network timeout.
func IsRetryable(err error) bool {
	if err == nil {
		return false
	}
	var r retryable
	if errors.As(err, &r) {
		return r.Retryable()
	}
	var netErr net.Error
	if errors.As(err, &netErr) {
		return netErr.Timeout()
	}
	return false
}
