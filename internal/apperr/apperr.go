// Package apperr classifies failures so the transport layer can pick a status
// code without knowing which service produced them.
package apperr

import (
	"github.com/pkg/errors"
)

type Kind int

const (
	KindInternal Kind = iota
	KindValidation
	KindParse
	KindNotFound
	KindUnauthorized
	KindRateLimited
	KindStorage
)

func (k Kind) String() string {
	switch k {
	case KindValidation:
		return "validation"
	case KindParse:
		return "parse"
	case KindNotFound:
		return "not_found"
	case KindUnauthorized:
		return "unauthorized"
	case KindRateLimited:
		return "rate_limited"
	case KindStorage:
		return "storage"
	default:
		return "internal"
	}
}

type Error struct {
	Kind   Kind
	Msg    string
	Err    error
	Fields map[string]string
}

func (e *Error) Error() string {
	if e.Err == nil {
		return e.Msg
	}
	if e.Msg == "" {
		return e.Err.Error()
	}
	return e.Msg + ": " + e.Err.Error()
}

func (e *Error) Unwrap() error { return e.Err }

func Validation(msg string) error {
	return &Error{Kind: KindValidation, Msg: msg}
}

// ValidationFields carries per-field messages, keyed by the JSON field name.
func ValidationFields(msg string, fields map[string]string) error {
	return &Error{Kind: KindValidation, Msg: msg, Fields: fields}
}

func Validationf(format string, args ...any) error {
	return &Error{Kind: KindValidation, Msg: errors.Errorf(format, args...).Error()}
}

func Parse(err error, msg string) error {
	return &Error{Kind: KindParse, Msg: msg, Err: err}
}

func NotFound(msg string) error {
	return &Error{Kind: KindNotFound, Msg: msg}
}

func Unauthorized(msg string) error {
	return &Error{Kind: KindUnauthorized, Msg: msg}
}

func RateLimited(msg string) error {
	return &Error{Kind: KindRateLimited, Msg: msg}
}

func Storage(err error, msg string) error {
	return &Error{Kind: KindStorage, Msg: msg, Err: err}
}

// KindOf returns the kind of the first *Error in the chain, or KindInternal.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindInternal
}

// Message returns the human-readable message of the first *Error in the chain.
func Message(err error) string {
	var e *Error
	if errors.As(err, &e) {
		return e.Msg
	}
	return ""
}

// Fields returns per-field validation messages, if any.
func Fields(err error) map[string]string {
	var e *Error
	if errors.As(err, &e) {
		return e.Fields
	}
	return nil
}

func Is(err error, k Kind) bool {
	return err != nil && KindOf(err) == k
}
