// Package apperr carries semantic error kinds across layers so the HTTP
// boundary can pick a status code without knowing where an error came from.
package apperr

import (
	"errors"
	"fmt"
)

// Kind is a sentinel describing the category of a failure.
type Kind interface {
	error
	isKind()
}

type kind struct{ s string }

func (k kind) Error() string { return k.s }
func (k kind) isKind()       {}

var (
	ErrInvalidInput = kind{"INVALID_INPUT"}
	ErrConflict     = kind{"CONFLICT"}
	ErrUnauthorized = kind{"UNAUTHORIZED"}
	ErrNotFound     = kind{"NOT_FOUND"}
	ErrInternal     = kind{"INTERNAL"}
)

// Error pairs a Kind with a caller-facing message and an optional cause.
type Error struct {
	kind Kind
	msg  string
	err  error
}

// With builds an error of the given kind with a formatted message.
func With(k Kind, msgFmt string, args ...any) *Error {
	return &Error{kind: k, msg: fmt.Sprintf(msgFmt, args...)}
}

// Wrap builds an error of the given kind that keeps err as its cause.
func Wrap(k Kind, err error, msgFmt string, args ...any) *Error {
	return &Error{kind: k, err: err, msg: fmt.Sprintf(msgFmt, args...)}
}

func (e *Error) Error() string {
	switch {
	case e == nil:
		return "<nil>"
	case e.msg != "" && e.err != nil:
		return e.msg + ": " + e.err.Error()
	case e.msg != "":
		return e.msg
	case e.err != nil:
		return e.err.Error()
	case e.kind != nil:
		return e.kind.Error()
	default:
		return "unknown error"
	}
}

func (e *Error) Unwrap() error { return e.err }

// Is matches either the kind sentinel or anything in the cause chain.
func (e *Error) Is(target error) bool {
	if e == nil || target == nil {
		return e == nil && target == nil
	}
	if e.kind != nil && errors.Is(e.kind, target) {
		return true
	}
	return e.err != nil && errors.Is(e.err, target)
}

func (e *Error) Kind() Kind { return e.kind }

// Message is the text safe to show to a caller.
func (e *Error) Message() string { return e.msg }

func (e *Error) Cause() error { return e.err }

// KindOf reports the kind of err, treating anything unclassified as internal.
func KindOf(err error) Kind {
	var ae *Error
	if errors.As(err, &ae) && ae.kind != nil {
		return ae.kind
	}
	return ErrInternal
}

// MessageOf returns the caller-facing message of err, or fallback when err
// carries none.
func MessageOf(err error, fallback string) string {
	var ae *Error
	if errors.As(err, &ae) && ae.msg != "" {
		return ae.msg
	}
	return fallback
}
