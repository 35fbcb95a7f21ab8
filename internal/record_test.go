package internal

import (
	"bytes"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsTerminator(t *testing.T) {
	assert.True(t, IsTerminator([]byte{0xFF, 0, 0, 0}))

	assert.False(t, IsTerminator([]byte{0xFF, 0, 0}))
	assert.False(t, IsTerminator([]byte{0xFF, 0, 0, 1}))
	assert.False(t, IsTerminator([]byte{0xFF, 0, 0, 0, 0}))
}

func TestWriteTerminator(t *testing.T) {
	buf := new(bytes.Buffer)
	err := WriteTerminator(buf)
	assert.NoError(t, err)
	assert.Equal(t, []byte{0xFF, 0, 0, 0}, buf.Bytes())
}

type errWriter struct{}

func (errWriter) Write([]byte) (n int, err error) {
	return 0, errors.New("simulated error")
}

func TestWriteTerminator_writeError(t *testing.T) {
	err := WriteTerminator(errWriter{})
	assert.EqualError(t, err, "simulated error")
}

func TestFitsOffset(t *testing.T) {
	assert.True(t, FitsOffset(0))
	assert.True(t, FitsOffset(-4))
	assert.True(t, FitsOffset(MinOffset))
	assert.True(t, FitsOffset(MaxOffset))

	assert.False(t, FitsOffset(MinOffset-1))
	assert.False(t, FitsOffset(MaxOffset+1))
}

func TestOffsetRoundTrip(t *testing.T) {
	tests := []struct {
		value int32
		raw   []byte
	}{
		{0, []byte{0x00, 0x00, 0x00}},
		{-4, []byte{0xFF, 0xFF, 0xFC}},
		{-1, []byte{0xFF, 0xFF, 0xFF}},
		{0x1234, []byte{0x00, 0x12, 0x34}},
		{MinOffset, []byte{0x80, 0x00, 0x00}},
		{MaxOffset, []byte{0x7F, 0xFF, 0xFF}},
	}

	for _, tt := range tests {
		b := make([]byte, 3)
		PutOffset(b, tt.value)
		assert.Equal(t, tt.raw, b, "PutOffset(%d)", tt.value)

		raw := uint32(b[0])<<16 | uint32(b[1])<<8 | uint32(b[2])
		assert.Equal(t, tt.value, SignExtend(raw), "SignExtend(%#06x)", raw)
	}
}

func TestWriter(t *testing.T) {
	w := NewWriter()
	w.Byte(0x01)
	w.WriteU16(0x0203)
	w.WriteU32(0x04050607)
	assert.Equal(t, 7, w.Len())

	w.Align(4)
	assert.Equal(t, 8, w.Len())
	w.Align(4)
	assert.Equal(t, 8, w.Len(), "already aligned")

	w.WriteRecord(0x20, -8)
	w.WriteInline(0x0B, 0xBEEF)
	w.WriteTerminator()

	assert.Equal(t, []byte{
		0x01, 0x02, 0x03, 0x04, 0x05, 0x06, 0x07, 0x00,
		0x20, 0xFF, 0xFF, 0xF8,
		0x0B, 0x00, 0xBE, 0xEF,
		0xFF, 0x00, 0x00, 0x00,
	}, w.Bytes())
}
