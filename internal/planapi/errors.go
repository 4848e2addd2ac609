package planapi

import (
	"errors"
	"fmt"
)

var (
	// ErrTransport indicates the plan service could not be reached or
	// answered with a non-success status.
	ErrTransport = errors.New("plan service request failed")

	// ErrTimeout indicates the request exceeded the configured timeout.
	ErrTimeout = errors.New("plan service request timed out")

	// ErrDecode indicates the response body was not valid JSON.
	ErrDecode = errors.New("invalid plan service response")
)

// StatusError is returned for non-2xx responses. ServerMessage carries the
// body's "error" field when the body decoded and supplied one.
type StatusError struct {
	StatusCode    int
	ServerMessage string
}

func (e *StatusError) Error() string {
	if e.ServerMessage != "" {
		return fmt.Sprintf("plan service returned status %d: %s", e.StatusCode, e.ServerMessage)
	}
	return fmt.Sprintf("plan service returned status %d", e.StatusCode)
}

func (e *StatusError) Unwrap() error {
	return ErrTransport
}

// ServerMessage extracts a server-supplied error message from err, if any.
func ServerMessage(err error) (string, bool) {
	var se *StatusError
	if errors.As(err, &se) && se.ServerMessage != "" {
		return se.ServerMessage, true
	}
	return "", false
}
