package transport

import (
	"errors"
	"fmt"
	"net/http"
)

var (
	ErrQueueShutDown    = errors.New("request queue has shut down")
	ErrRequestCloneFail = errors.New("request body cannot be replayed")
	ErrUnexpectedRange  = errors.New("server returned an unexpected content range")
	ErrInvalidProxy     = errors.New("invalid proxy configuration")
)

const maxErrorBodyBytes = 4 << 10

// StatusError is returned for responses outside the 2xx range. The response
// body has already been drained and closed.
type StatusError struct {
	Method     string
	URL        string
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("%s %s: unexpected status %d %s", e.Method, e.URL, e.StatusCode, http.StatusText(e.StatusCode))
}

// Retryable reports whether a later attempt could succeed.
func (e *StatusError) Retryable() bool {
	switch {
	case e.StatusCode == http.StatusRequestTimeout, e.StatusCode == http.StatusTooManyRequests:
		return true
	case e.StatusCode >= 500 && e.StatusCode <= 599:
		return true
	default:
		return false
	}
}

// NetworkError wraps a failure to send a request or read its response.
type NetworkError struct {
	Method string
	URL    string
	Err    error
}

func (e *NetworkError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Method, e.URL, e.Err)
}

func (e *NetworkError) Unwrap() error { return e.Err }

type AttemptsExhaustedError struct {
	Attempts int
	Last     error
}

func (e *AttemptsExhaustedError) Error() string {
	return fmt.Sprintf("giving up after %d attempts: %v", e.Attempts, e.Last)
}

func (e *AttemptsExhaustedError) Unwrap() error { return e.Last }

// IsRetryable reports whether err is a transient failure.
func IsRetryable(err error) bool {
	var netErr *NetworkError
	if errors.As(err, &netErr) {
		return true
	}
	var statusErr *StatusError
	if errors.As(err, &statusErr) {
		return statusErr.Retryable()
	}
	return false
}

// StatusCode returns the HTTP status carried by err, or 0.
func StatusCode(err error) int {
	var statusErr *StatusError
	if errors.As(err, &statusErr) {
		return statusErr.StatusCode
	}
	return 0
}
