package catalog

import (
	"errors"
	"fmt"
)

// Sentinel errors for catalog operations.
var (
	ErrNotFound     = errors.New("catalog: not found")
	ErrUnauthorized = errors.New("catalog: unauthorized")
	ErrRateLimited  = errors.New("catalog: rate limited by server")
	ErrServer       = errors.New("catalog: server error")
	ErrMalformed    = errors.New("catalog: malformed response")
)

// Error wraps an underlying error with operation context.
type Error struct {
	Op  string // "genres", "search", "discover", "detail"
	ID  int    // movie id, if applicable
	Err error
}

func (e *Error) Error() string {
	if e.ID != 0 {
		return fmt.Sprintf("catalog %s [%d]: %v", e.Op, e.ID, e.Err)
	}
	return fmt.Sprintf("catalog %s: %v", e.Op, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}

func wrapError(op string, id int, err error) error {
	return &Error{Op: op, ID: id, Err: err}
}

// StatusError reports a non-2xx status the client has no sentinel for.
type StatusError struct {
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("unexpected status %d", e.StatusCode)
	}
	return fmt.Sprintf("unexpected status %d: %s", e.StatusCode, e.Body)
}
