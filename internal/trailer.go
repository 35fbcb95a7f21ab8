package internal

import (
	"encoding/binary"
	"math/bits"
)

// TrailerSize is the size of the format block appended to every declaration.
const TrailerSize = 20

// Field positions inside the trailer.
const (
	fieldDirectory   = 0
	fieldLength      = 4
	fieldChecksum    = 8
	fieldFormat      = 12
	fieldTestPattern = 14
	fieldByteLanes   = 18
)

// Trailer (=format block) is the fixed structure at the very end of a declaration ROM.
// The firmware locates the declaration data by reading it backwards from the top of the ROM.
type Trailer struct {
	Marker          byte   // DirectoryMarker
	DirectoryOffset int32  // Relative to the start of the trailer
	Length          uint32 // Declaration length in bytes, including the trailer
	Checksum        uint32
	Format          uint16
	TestPattern     uint32
	ByteLanes       uint16
}

// AppendTo appends the encoded trailer to buf.
func (t Trailer) AppendTo(buf []byte) []byte {
	var raw [TrailerSize]byte
	raw[fieldDirectory] = t.Marker
	PutOffset(raw[fieldDirectory+1:], t.DirectoryOffset)
	binary.BigEndian.PutUint32(raw[fieldLength:], t.Length)
	binary.BigEndian.PutUint32(raw[fieldChecksum:], t.Checksum)
	binary.BigEndian.PutUint16(raw[fieldFormat:], t.Format)
	binary.BigEndian.PutUint32(raw[fieldTestPattern:], t.TestPattern)
	binary.BigEndian.PutUint16(raw[fieldByteLanes:], t.ByteLanes)
	return append(buf, raw[:]...)
}

// ReadTrailer decodes the trailer at the end of img.
// img must be at least TrailerSize bytes long.
func ReadTrailer(img []byte) Trailer {
	raw := img[len(img)-TrailerSize:]
	return Trailer{
		Marker:          raw[fieldDirectory],
		DirectoryOffset: SignExtend(uint32(raw[1])<<16 | uint32(raw[2])<<8 | uint32(raw[3])),
		Length:          binary.BigEndian.Uint32(raw[fieldLength:]),
		Checksum:        binary.BigEndian.Uint32(raw[fieldChecksum:]),
		Format:          binary.BigEndian.Uint16(raw[fieldFormat:]),
		TestPattern:     binary.BigEndian.Uint32(raw[fieldTestPattern:]),
		ByteLanes:       binary.BigEndian.Uint16(raw[fieldByteLanes:]),
	}
}

// Checksum computes the ROM checksum: rotate left by one bit, then add the next byte.
func Checksum(data []byte) uint32 {
	return updateChecksum(0, data)
}

func updateChecksum(sum uint32, data []byte) uint32 {
	for _, b := range data {
		sum = bits.RotateLeft32(sum, 1) + uint32(b)
	}
	return sum
}

// ImageChecksum computes the checksum of a complete image (ending with a trailer),
// treating the trailer's checksum field as zero.
// img is not modified.
func ImageChecksum(img []byte) uint32 {
	field := len(img) - TrailerSize + fieldChecksum
	sum := updateChecksum(0, img[:field])
	sum = updateChecksum(sum, []byte{0, 0, 0, 0})
	return updateChecksum(sum, img[field+4:])
}

// PatchChecksum zeroes the checksum field of img, computes the checksum over the whole image
// and writes the result into the same field.
func PatchChecksum(img []byte) uint32 {
	field := img[len(img)-TrailerSize+fieldChecksum:][:4]
	copy(field, []byte{0, 0, 0, 0})
	sum := Checksum(img)
	binary.BigEndian.PutUint32(field, sum)
	return sum
}
