package compiler

import (
	"errors"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestError_Error(t *testing.T) {
	err := &Error{
		Code:   CodeMalformedInput,
		Path:   []string{"list 128", "resource[0] id 1"},
		Detail: "missing field",
		Cause:  io.ErrUnexpectedEOF,
	}
	assert.EqualError(t, err, "malformed_input at list 128 > resource[0] id 1: missing field (caused by: unexpected EOF)")

	assert.EqualError(t, &Error{Code: CodeOffsetOverflow}, "offset_overflow")
}

func TestError_Is(t *testing.T) {
	err := MalformedInput([]string{"x"}, "bad %d", 1)
	assert.True(t, errors.Is(err, ErrMalformedInput))
	assert.False(t, errors.Is(err, ErrUnknownResourceID))
	assert.Equal(t, "bad 1", err.Detail)
}

func TestError_Unwrap(t *testing.T) {
	err := within(io.EOF, "list 1")
	assert.True(t, errors.Is(err, io.EOF))
	assert.True(t, errors.Is(err, ErrMalformedInput))
}

func Test_within(t *testing.T) {
	err := within(OffsetOverflow([]string{"resource[0] id 1"}, -1<<24), "list 2")

	var e *Error
	assert.True(t, errors.As(err, &e))
	assert.Equal(t, []string{"list 2", "resource[0] id 1"}, e.Path)
	assert.Contains(t, err.Error(), "-16777216")
}
