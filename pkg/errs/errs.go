// Package errs carries the service-wide error taxonomy. Every error that
// crosses a layer boundary is tagged with a Kind so callers can decide whether
// to retry, reject, or surface it, and with a human-readable context label so
// the transport layer can render it without re-deriving the cause.
package errs

import (
	"errors"
	"fmt"
)

type Kind int

const (
	KindInternal Kind = iota
	KindValidation
	KindBusinessRule
	KindPermission
	KindAuth
	KindNotFound
	KindTransient
)

func (k Kind) String() string {
	switch k {
	case KindValidation:
		return "validation"
	case KindBusinessRule:
		return "business_rule"
	case KindPermission:
		return "permission"
	case KindAuth:
		return "auth"
	case KindNotFound:
		return "not_found"
	case KindTransient:
		return "transient"
	default:
		return "internal"
	}
}

type Error struct {
	Kind  Kind
	Label string // context label, e.g. "save snapshot"
	Err   error
}

func (e *Error) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("%s: %s", e.Label, e.Kind)
	}
	return fmt.Sprintf("%s: %v", e.Label, e.Err)
}

func (e *Error) Unwrap() error { return e.Err }

func New(kind Kind, label, msg string) *Error {
	return &Error{Kind: kind, Label: label, Err: errors.New(msg)}
}

func Newf(kind Kind, label, format string, args ...any) *Error {
	return &Error{Kind: kind, Label: label, Err: fmt.Errorf(format, args...)}
}

// Wrap tags an underlying error with a kind and context label. A nil err
// yields nil so call sites can wrap unconditionally.
func Wrap(kind Kind, label string, err error) error {
	if err == nil {
		return nil
	}
	return &Error{Kind: kind, Label: label, Err: err}
}

// KindOf reports the kind of err, walking the wrap chain. Untagged errors are
// KindInternal.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindInternal
}

// Label returns the outermost context label attached to err, if any.
func Label(err error) string {
	var e *Error
	if errors.As(err, &e) {
		return e.Label
	}
	return ""
}

func IsValidation(err error) bool   { return KindOf(err) == KindValidation }
func IsBusinessRule(err error) bool { return KindOf(err) == KindBusinessRule }
func IsPermission(err error) bool   { return KindOf(err) == KindPermission }
func IsAuth(err error) bool         { return KindOf(err) == KindAuth }
func IsNotFound(err error) bool     { return KindOf(err) == KindNotFound }
func IsTransient(err error) bool    { return KindOf(err) == KindTransient }
