// Package apperr defines the typed failures of the business layer so that
// handlers can branch on cause instead of string-matching messages.
// One error type, four-plus-one kinds; messages stay human-readable.
package apperr

import (
	"errors"
	"fmt"
)

type Kind int

const (
	KindValidation Kind = iota + 1 // bad input shape or business-rule violation
	KindNotFound                   // referenced id does not exist
	KindConflict                   // uniqueness violation or blocked delete
	KindPermission                 // role/ownership check failed
	KindAuth                       // missing or invalid credentials
)

type Error struct {
	Kind Kind
	Msg  string
}

func (e *Error) Error() string { return e.Msg }

func Validation(msg string) error { return &Error{Kind: KindValidation, Msg: msg} }
func NotFound(msg string) error   { return &Error{Kind: KindNotFound, Msg: msg} }
func Conflict(msg string) error   { return &Error{Kind: KindConflict, Msg: msg} }
func Permission(msg string) error { return &Error{Kind: KindPermission, Msg: msg} }
func Auth(msg string) error       { return &Error{Kind: KindAuth, Msg: msg} }

func Validationf(format string, args ...any) error {
	return Validation(fmt.Sprintf(format, args...))
}

// KindOf extracts the failure kind; zero when err is not an apperr.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return 0
}

func IsValidation(err error) bool { return KindOf(err) == KindValidation }
func IsNotFound(err error) bool   { return KindOf(err) == KindNotFound }
func IsConflict(err error) bool   { return KindOf(err) == KindConflict }
func IsPermission(err error) bool { return KindOf(err) == KindPermission }
