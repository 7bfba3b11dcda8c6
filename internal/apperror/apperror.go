// Package apperror defines the error kinds surfaced to API clients and the
// mapping from data-store failures onto them.
package apperror

import (
	"errors"
	"fmt"

	"github.com/lib/pq"
)

// Kind classifies an error for the transport layer.
type Kind int

const (
	KindInternal Kind = iota
	KindBadRequest
	KindNotFound
)

func (k Kind) String() string {
	switch k {
	case KindBadRequest:
		return "bad_request"
	case KindNotFound:
		return "not_found"
	default:
		return "internal"
	}
}

// Client-facing messages.
const (
	MsgBadRequest    = "Bad Request"
	MsgNotFound      = "Not Found"
	MsgInternal      = "Internal Server Error"
	MsgRouteNotFound = "Route Not Found"
)

// Error carries a kind, a single-line client message and an optional cause.
type Error struct {
	Kind Kind
	Msg  string
	Err  error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Msg, e.Err)
	}
	return e.Msg
}

func (e *Error) Unwrap() error {
	return e.Err
}

// BadRequest reports malformed client input. detail is kept for logs only.
func BadRequest(detail string) *Error {
	return &Error{Kind: KindBadRequest, Msg: MsgBadRequest, Err: errors.New(detail)}
}

// NotFound reports a missing resource.
func NotFound(detail string) *Error {
	return &Error{Kind: KindNotFound, Msg: MsgNotFound, Err: errors.New(detail)}
}

// Internal wraps an unexpected failure.
func Internal(err error) *Error {
	return &Error{Kind: KindInternal, Msg: MsgInternal, Err: err}
}

// KindOf returns the kind of err; anything not built by this package is internal.
func KindOf(err error) Kind {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr.Kind
	}
	return KindInternal
}

// IsNotFound reports whether err is a not-found error.
func IsNotFound(err error) bool {
	return KindOf(err) == KindNotFound
}

// IsBadRequest reports whether err is a bad-request error.
func IsBadRequest(err error) bool {
	return KindOf(err) == KindBadRequest
}

// FromDB translates a data-store error. Foreign key violations mean a
// referenced row is gone; other data exceptions and integrity violations
// (bad casts, nulls, duplicates) are the client's fault. nil stays nil and
// errors that already carry a kind pass through.
func FromDB(err error) error {
	if err == nil {
		return nil
	}

	var appErr *Error
	if errors.As(err, &appErr) {
		return err
	}

	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		switch {
		case pqErr.Code.Name() == "foreign_key_violation":
			return &Error{Kind: KindNotFound, Msg: MsgNotFound, Err: err}
		case pqErr.Code.Class() == "22", pqErr.Code.Class() == "23":
			return &Error{Kind: KindBadRequest, Msg: MsgBadRequest, Err: err}
		}
	}

	return Internal(err)
}
