package models

import (
	"errors"
	"fmt"
)

// ErrCode identifies the kind of an Err. Prefer comparing against the Err
// variables with errors.Is.
type ErrCode string

const (
	ErrCodeUnknown           ErrCode = ""
	ErrCodeInvalidIdentifier ErrCode = "InvalidIdentifier"
	ErrCodeUnsupportedType   ErrCode = "UnsupportedType"
)

/*
Use the blank error variables to detect error kinds:

	if errors.Is(err, models.ErrInvalidIdentifier) {
		// Handle specific error.
	}

Errors carry details about the circumstances, so they can't be compared with
`==`. When compared by errors.Is, they compare `.Cause` and fall back on `.Code`.
*/
var (
	ErrInvalidIdentifier = Err{Code: ErrCodeInvalidIdentifier, Cause: errors.New(`invalid identifier`)}
	ErrUnsupportedType   = Err{Code: ErrCodeUnsupportedType, Cause: errors.New(`unsupported type`)}
)

// Err is the error type returned by this module.
type Err struct {
	Code  ErrCode
	While string
	Field string // offending field, set for ErrCodeInvalidIdentifier
	Cause error
}

// Error implements error.
func (e Err) Error() string {
	if e == (Err{}) {
		return ""
	}
	msg := `[sqltemplate]`
	if e.Code != ErrCodeUnknown {
		msg += fmt.Sprintf(` %s`, e.Code)
	}
	if e.While != "" {
		msg += fmt.Sprintf(` while %s`, e.While)
	}
	if e.Cause != nil {
		msg += `: ` + e.Cause.Error()
	}
	return msg
}

// Is implements the hidden interface used by errors.Is.
func (e Err) Is(other error) bool {
	if e.Cause != nil && errors.Is(e.Cause, other) {
		return true
	}
	err, ok := other.(Err)
	return ok && err.Code == e.Code
}

// Unwrap implements the hidden interface used by errors.Unwrap.
func (e Err) Unwrap() error { return e.Cause }

// During returns a copy of e annotated with the operation that failed.
func (e Err) During(while string) Err {
	e.While = while
	return e
}

// Wrap returns a copy of e with the given cause.
func (e Err) Wrap(cause error) Err {
	e.Cause = cause
	return e
}

// InvalidIdentifier reports a record whose identifier field is falsy.
func InvalidIdentifier(field string, record Record) Err {
	err := ErrInvalidIdentifier.Wrap(
		fmt.Errorf("invalid empty key %q for the record %s", field, record),
	)
	err.Field = field
	return err
}
