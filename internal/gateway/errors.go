package gateway

import (
	"errors"
	"fmt"
)

var (
	// ErrTransport marks a request that reached the backend but came back
	// with a non-success status, or never completed at all.
	ErrTransport = errors.New("transport error")
	// ErrMalformedResponse marks a success status whose body is missing the
	// expected field.
	ErrMalformedResponse = errors.New("malformed response")
)

// RequestError carries the failed operation and, when available, the HTTP
// status for a classified gateway failure.
type RequestError struct {
	Op     string
	Status int
	Err    error
}

func (e *RequestError) Error() string {
	if e.Status != 0 {
		return fmt.Sprintf("%s: status %d: %v", e.Op, e.Status, e.Err)
	}
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *RequestError) Unwrap() error {
	return e.Err
}

func transportErr(op string, status int, cause error) error {
	if cause == nil {
		cause = ErrTransport
	} else if !errors.Is(cause, ErrTransport) {
		cause = fmt.Errorf("%w: %v", ErrTransport, cause)
	}
	return &RequestError{Op: op, Status: status, Err: cause}
}

func malformedErr(op, missingField string) error {
	return &RequestError{Op: op, Err: fmt.Errorf("%w: missing %q", ErrMalformedResponse, missingField)}
}
