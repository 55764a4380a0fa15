package sync

import (
	"errors"
	"fmt"
)

// ErrNotAuthenticated is returned when no user is signed in. It is a soft
// failure: nothing was read or written.
var ErrNotAuthenticated = errors.New("not authenticated")

var errNoData = errors.New("document has no readable data")

// ErrorKind classifies a sync failure.
type ErrorKind string

// Error kinds
const (
	KindNotAuthenticated  ErrorKind = "NotAuthenticated"
	KindRemoteUnavailable ErrorKind = "RemoteUnavailable"
	KindDecodeError       ErrorKind = "DecodeError"
	KindLocalStoreError   ErrorKind = "LocalStoreError"
)

// Error represents a structured sync failure for one family
type Error struct {
	Err     error
	Message string
	Family  string
	Kind    ErrorKind
}

func (e *Error) Error() string {
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}

// KindOf returns the kind of err, or "" when err is not a sync error.
func KindOf(err error) ErrorKind {
	var syncErr *Error
	if errors.As(err, &syncErr) {
		return syncErr.Kind
	}
	if errors.Is(err, ErrNotAuthenticated) {
		return KindNotAuthenticated
	}
	return ""
}

func notAuthenticatedError(family string) *Error {
	return &Error{
		Err:     ErrNotAuthenticated,
		Message: "Not authenticated",
		Family:  family,
		Kind:    KindNotAuthenticated,
	}
}

func remoteError(family, op string, err error) *Error {
	return &Error{
		Err:     err,
		Message: fmt.Sprintf("%s: failed to %s remote: %v", family, op, err),
		Family:  family,
		Kind:    KindRemoteUnavailable,
	}
}

func localError(family, op string, err error) *Error {
	return &Error{
		Err:     err,
		Message: fmt.Sprintf("%s: failed to %s local store: %v", family, op, err),
		Family:  family,
		Kind:    KindLocalStoreError,
	}
}
