package backoffice

import (
	"errors"
	"fmt"
)

// ErrorKind separates failures the data layer already reported to the user from the rest
type ErrorKind int

const (
	// KindUnexpected covers transport, timeout and decoding failures. Nothing was shown to
	// the user, so the caller owns the notification.
	KindUnexpected ErrorKind = iota
	// KindReported means the API answered with an error and a toast was already queued.
	KindReported
)

func (k ErrorKind) String() string {
	switch k {
	case KindReported:
		return "reported"
	default:
		return "unexpected"
	}
}

// Error is the single failure type returned by every API call
type Error struct {
	Kind    ErrorKind
	Op      string
	Status  int               // HTTP status for reported errors
	Message string            // message shown to the user
	Fields  map[string]string // field errors returned by the API, if any
	Err     error
}

func (e *Error) Error() string {
	if e.Kind == KindReported {
		return fmt.Sprintf("backoffice %s: status %d: %s", e.Op, e.Status, e.Message)
	}
	return fmt.Sprintf("backoffice %s: %v", e.Op, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// IsReported reports whether err is a failure the data layer already notified the user about
func IsReported(err error) bool {
	var apiErr *Error
	return errors.As(err, &apiErr) && apiErr.Kind == KindReported
}

func unexpected(op string, err error) *Error {
	return &Error{Kind: KindUnexpected, Op: op, Err: err}
}
