package compiler

import (
	"fmt"

	"github.com/maja42/declrom/internal"
)

// Resource is a single typed entry of a resource list.
type Resource struct {
	ID      uint8
	Payload Payload
}

// Payload is the typed content of a resource.
// The set of payload types is closed; it is implemented by Long, CString,
// VidParams, RsrcType, InlineWord and NestedList.
type Payload interface {
	Kind() Kind
	encode() ([]byte, error)
}

// Encoded is the result of encoding a single resource.
type Encoded struct {
	ID   uint8
	Kind Kind
	Data []byte
}

// Len returns the number of encoded payload bytes.
func (e Encoded) Len() int {
	return len(e.Data)
}

// Encode encodes the payload of a single resource.
func Encode(r Resource) (Encoded, error) {
	if r.Payload == nil {
		return Encoded{}, UnknownResourceKind(nil, "<none>")
	}
	data, err := r.Payload.encode()
	if err != nil {
		return Encoded{}, err
	}
	return Encoded{
		ID:   r.ID,
		Kind: r.Payload.Kind(),
		Data: data,
	}, nil
}

// Long is a 32 bit value (signed or unsigned).
type Long uint32

func (Long) Kind() Kind { return KindLong }

func (l Long) encode() ([]byte, error) {
	w := internal.NewWriter()
	w.WriteU32(uint32(l))
	return w.Bytes(), nil
}

// CString is an ASCII string, zero terminated and padded to a multiple of 4 bytes.
type CString string

func (CString) Kind() Kind { return KindString }

func (s CString) encode() ([]byte, error) {
	for i := 0; i < len(s); i++ {
		if s[i] > 0x7F {
			return nil, MalformedInput(nil, "string %q contains non-ASCII byte 0x%02x at %d", string(s), s[i], i)
		}
	}

	w := internal.NewWriter()
	w.WriteBytes([]byte(s))
	if w.Len()%4 == 0 {
		// alignment leaves no room for the terminator
		w.WriteU32(0)
	}
	w.Align(4)
	return w.Bytes(), nil
}

// VidParamsSize is the size of the encoded video parameter block, without padding.
const VidParamsSize = 50

// defaultResolution is 72 dpi as 16.16 fixed point.
const defaultResolution = 0x00480000

// VidParams describes the pixel format of a video mode.
// HRes and VRes fill the lower right corner of the bounds rectangle.
type VidParams struct {
	RowBytes  uint16
	HRes      uint16
	VRes      uint16
	PixelType uint16
	PixelSize uint16
	CmpCount  uint16
	CmpSize   uint16
}

func (VidParams) Kind() Kind { return KindVidParams }

func (v VidParams) encode() ([]byte, error) {
	w := internal.NewWriter()
	w.WriteU32(VidParamsSize)
	w.WriteU32(0) // base offset
	w.WriteU16(v.RowBytes)

	// bounds
	w.WriteU16(0)
	w.WriteU16(0)
	w.WriteU16(v.HRes)
	w.WriteU16(v.VRes)

	w.WriteU16(0) // version
	w.WriteU16(0) // pack type
	w.WriteU32(0) // pack size
	w.WriteU32(defaultResolution)
	w.WriteU32(defaultResolution)

	w.WriteU16(v.PixelType)
	w.WriteU16(v.PixelSize)
	w.WriteU16(v.CmpCount)
	w.WriteU16(v.CmpSize)

	w.WriteU32(0) // plane bytes
	w.WriteU32(0) // reserved

	w.Align(4)
	return w.Bytes(), nil
}

// RsrcType is the category/type descriptor of a functional sResource.
type RsrcType struct {
	Category uint16
	CType    uint16
	DrSW     uint16
	DrHW     uint16
}

func (RsrcType) Kind() Kind { return KindRsrcType }

func (t RsrcType) encode() ([]byte, error) {
	w := internal.NewWriter()
	w.WriteU16(t.Category)
	w.WriteU16(t.CType)
	w.WriteU16(t.DrSW)
	w.WriteU16(t.DrHW)
	return w.Bytes(), nil
}

// InlineWord is a 16 bit value stored inside its record entry instead of the payload region.
type InlineWord uint16

func (InlineWord) Kind() Kind { return KindInlineWord }

func (v InlineWord) encode() ([]byte, error) {
	w := internal.NewWriter()
	w.WriteU16(uint16(v))
	return w.Bytes(), nil
}

// NestedList is a resource list embedded as the payload of another resource.
type NestedList []Resource

func (NestedList) Kind() Kind { return KindResourceList }

func (n NestedList) encode() ([]byte, error) {
	data, _, err := assembleResources(n)
	return data, err
}

// resourceContext describes a resource for error paths.
func resourceContext(index int, r Resource) string {
	if r.Payload == nil {
		return fmt.Sprintf("resource[%d] id %d", index, r.ID)
	}
	return fmt.Sprintf("resource[%d] id %d (%s)", index, r.ID, r.Payload.Kind())
}
