package internal

import (
	"bytes"
	"io"
)

// RecordSize is the size of a single record table entry.
// Every entry starts with a one-byte id, followed by 24 bits of data:
// either a signed offset or an inline value.
const RecordSize = 4

// TerminatorID is the id of the record that ends every record table.
const TerminatorID = 0xFF

// Bounds of the 24 bit signed offsets stored in record entries.
const (
	MinOffset = -1 << 23
	MaxOffset = 1<<23 - 1
)

// terminator marks the end of a record table.
var terminator = []byte{TerminatorID, 0, 0, 0}

// IsTerminator checks if the given byte slice equals the terminator record.
func IsTerminator(data []byte) bool {
	return bytes.Equal(terminator, data)
}

// WriteTerminator writes the end-of-table record.
func WriteTerminator(w io.Writer) error {
	if _, err := w.Write(terminator); err != nil {
		return err
	}
	return nil
}

// FitsOffset reports whether v can be stored as a 24 bit signed offset.
func FitsOffset(v int) bool {
	return v >= MinOffset && v <= MaxOffset
}

// PutOffset stores the low 24 bits of v big-endian into b[0:3].
func PutOffset(b []byte, v int32) {
	_ = b[2] // bounds check hint
	b[0] = byte(v >> 16)
	b[1] = byte(v >> 8)
	b[2] = byte(v)
}

// SignExtend converts a raw 24 bit field into its signed value.
func SignExtend(raw uint32) int32 {
	return int32(raw<<8) >> 8
}
