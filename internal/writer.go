package internal

import (
	"bytes"
	"encoding/binary"
)

// Writer accumulates big-endian declaration data.
type Writer struct {
	buf *bytes.Buffer
}

// NewWriter creates a new Writer.
func NewWriter() *Writer {
	return &Writer{buf: &bytes.Buffer{}}
}

// Bytes returns the written bytes.
func (w *Writer) Bytes() []byte {
	return w.buf.Bytes()
}

// Len returns the number of bytes written.
func (w *Writer) Len() int {
	return w.buf.Len()
}

// Byte writes a single byte.
func (w *Writer) Byte(b byte) {
	w.buf.WriteByte(b)
}

// WriteBytes writes a byte slice.
func (w *Writer) WriteBytes(data []byte) {
	w.buf.Write(data)
}

// WriteU16 writes a big-endian uint16.
func (w *Writer) WriteU16(v uint16) {
	var buf [2]byte
	binary.BigEndian.PutUint16(buf[:], v)
	w.buf.Write(buf[:])
}

// WriteU32 writes a big-endian uint32.
func (w *Writer) WriteU32(v uint32) {
	var buf [4]byte
	binary.BigEndian.PutUint32(buf[:], v)
	w.buf.Write(buf[:])
}

// Align pads with zero bytes until the length is a multiple of n.
func (w *Writer) Align(n int) {
	for w.buf.Len()%n != 0 {
		w.buf.WriteByte(0)
	}
}

// WriteRecord writes a record entry pointing offset bytes away from the entry itself.
// The caller is responsible for checking the offset with FitsOffset.
func (w *Writer) WriteRecord(id byte, offset int32) {
	var buf [RecordSize]byte
	buf[0] = id
	PutOffset(buf[1:], offset)
	w.buf.Write(buf[:])
}

// WriteInline writes a record entry carrying a 16 bit value instead of an offset.
func (w *Writer) WriteInline(id byte, value uint16) {
	var buf [RecordSize]byte
	buf[0] = id
	binary.BigEndian.PutUint16(buf[2:], value)
	w.buf.Write(buf[:])
}

// WriteTerminator ends a record table.
func (w *Writer) WriteTerminator() {
	_ = WriteTerminator(w.buf) // writes to a bytes.Buffer never fail
}
