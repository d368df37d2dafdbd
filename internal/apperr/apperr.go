// Package apperr defines the domain error kinds the services report.
// Handlers translate them into the uniform response envelope; anything that
// is not an apperr is treated as an unexpected server failure.
package apperr

import (
	"errors"
	"fmt"
)

type Kind int

const (
	// KindValidation: malformed input, recoverable by correcting the request.
	KindValidation Kind = iota + 1
	// KindConflict: a state invariant rejected the mutation (stock already
	// consumed, batch closed, race loser). Retrying without re-fetching state
	// would repeat the conflict.
	KindConflict
	// KindNotFound: referenced id does not exist.
	KindNotFound
)

type Error struct {
	Kind    Kind
	Message string
}

func (e *Error) Error() string {
	return e.Message
}

func Validation(format string, args ...any) *Error {
	return &Error{Kind: KindValidation, Message: fmt.Sprintf(format, args...)}
}

func Conflict(format string, args ...any) *Error {
	return &Error{Kind: KindConflict, Message: fmt.Sprintf(format, args...)}
}

func NotFound(format string, args ...any) *Error {
	return &Error{Kind: KindNotFound, Message: fmt.Sprintf(format, args...)}
}

func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return 0
}

func IsValidation(err error) bool { return KindOf(err) == KindValidation }
func IsConflict(err error) bool   { return KindOf(err) == KindConflict }
func IsNotFound(err error) bool   { return KindOf(err) == KindNotFound }
