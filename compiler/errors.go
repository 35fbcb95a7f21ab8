package compiler

import (
	"fmt"
	"strings"
)

// Code categorizes an encoding error.
type Code string

const (
	CodeUnknownResourceKind Code = "unknown_resource_kind"
	CodeUnknownResourceID   Code = "unknown_resource_id"
	CodeMalformedInput      Code = "malformed_input"
	CodeOffsetOverflow      Code = "offset_overflow"
)

// Sentinels for use with errors.Is. Matching only compares the Code.
var (
	ErrUnknownResourceKind = &Error{Code: CodeUnknownResourceKind}
	ErrUnknownResourceID   = &Error{Code: CodeUnknownResourceID}
	ErrMalformedInput      = &Error{Code: CodeMalformedInput}
	ErrOffsetOverflow      = &Error{Code: CodeOffsetOverflow}
)

// Error reports why a declaration could not be encoded.
// Path names the list and resource that failed, outermost first.
type Error struct {
	Cause  error
	Code   Code
	Detail string
	Path   []string
}

// Error implements the error interface
func (e *Error) Error() string {
	var b strings.Builder
	b.WriteString(string(e.Code))

	if len(e.Path) > 0 {
		b.WriteString(" at ")
		b.WriteString(strings.Join(e.Path, " > "))
	}
	if e.Detail != "" {
		b.WriteString(": ")
		b.WriteString(e.Detail)
	}
	if e.Cause != nil {
		b.WriteString(" (caused by: ")
		b.WriteString(e.Cause.Error())
		b.WriteByte(')')
	}
	return b.String()
}

// Unwrap returns the underlying error
func (e *Error) Unwrap() error {
	return e.Cause
}

// Is reports whether target is an *Error with the same Code.
func (e *Error) Is(target error) bool {
	if t, ok := target.(*Error); ok {
		return e.Code == t.Code
	}
	return false
}

// UnknownResourceKind creates an error for a kind tag that has no encoder.
func UnknownResourceKind(path []string, tag string) *Error {
	return &Error{
		Code:   CodeUnknownResourceKind,
		Path:   path,
		Detail: fmt.Sprintf("unknown resource kind %q", tag),
	}
}

// UnknownResourceID creates an error for a symbolic id missing from the id tables.
func UnknownResourceID(path []string, scope Scope, name string) *Error {
	return &Error{
		Code:   CodeUnknownResourceID,
		Path:   path,
		Detail: fmt.Sprintf("unknown %s resource id %q", scope, name),
	}
}

// MalformedInput creates an error for a missing or unusable field.
func MalformedInput(path []string, format string, args ...interface{}) *Error {
	return &Error{
		Code:   CodeMalformedInput,
		Path:   path,
		Detail: fmt.Sprintf(format, args...),
	}
}

// OffsetOverflow creates an error for an offset that does not fit into 24 bits.
func OffsetOverflow(path []string, offset int) *Error {
	return &Error{
		Code:   CodeOffsetOverflow,
		Path:   path,
		Detail: fmt.Sprintf("offset %d does not fit into 24 bits", offset),
	}
}

// within prepends elem to the path of err.
// Errors of other types are wrapped as malformed input.
func within(err error, elem string) error {
	if e, ok := err.(*Error); ok {
		e.Path = append([]string{elem}, e.Path...)
		return e
	}
	return &Error{
		Code:  CodeMalformedInput,
		Path:  []string{elem},
		Cause: err,
	}
}
