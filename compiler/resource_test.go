package compiler

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEncode_Long(t *testing.T) {
	enc, err := Encode(Resource{ID: 1, Payload: Long(0x12345678)})
	require.NoError(t, err)
	assert.Equal(t, uint8(1), enc.ID)
	assert.Equal(t, KindLong, enc.Kind)
	assert.Equal(t, []byte{0x12, 0x34, 0x56, 0x78}, enc.Data)
	assert.Equal(t, 4, enc.Len())

	var negative int32 = -2
	enc, err = Encode(Resource{ID: 1, Payload: Long(uint32(negative))})
	require.NoError(t, err)
	assert.Equal(t, []byte{0xFF, 0xFF, 0xFF, 0xFE}, enc.Data)
}

func TestEncode_String(t *testing.T) {
	tests := []struct {
		in   string
		want []byte
	}{
		{"", []byte{0, 0, 0, 0}},
		{"a", []byte{'a', 0, 0, 0}},
		{"abc", []byte{'a', 'b', 'c', 0}},
		{"abcd", []byte{'a', 'b', 'c', 'd', 0, 0, 0, 0}},
		{"abcde", []byte{'a', 'b', 'c', 'd', 'e', 0, 0, 0}},
		{"Display_Video", []byte("Display_Video\x00\x00\x00")},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			enc, err := Encode(Resource{ID: 2, Payload: CString(tt.in)})
			require.NoError(t, err)
			assert.Equal(t, KindString, enc.Kind)
			assert.Equal(t, tt.want, enc.Data)
		})
	}
}

func TestEncode_String_alignment(t *testing.T) {
	for n := 0; n < 64; n++ {
		s := strings.Repeat("x", n)
		enc, err := Encode(Resource{ID: 2, Payload: CString(s)})
		require.NoError(t, err)

		assert.Zero(t, enc.Len()%4, "length of %d byte string", n)
		assert.Equal(t, s, string(enc.Data[:n]))

		tail := enc.Data[n:]
		assert.NotEmpty(t, tail, "terminator missing for %d byte string", n)
		for _, b := range tail {
			assert.Zero(t, b)
		}
		if n%4 == 0 {
			assert.Len(t, tail, 4, "aligned string needs a full zero word")
		}
	}
}

func TestEncode_String_nonASCII(t *testing.T) {
	_, err := Encode(Resource{ID: 2, Payload: CString("caf\xc3\xa9")})
	assert.True(t, errors.Is(err, ErrMalformedInput))
}

func TestEncode_VidParams(t *testing.T) {
	enc, err := Encode(Resource{ID: 1, Payload: VidParams{
		RowBytes:  0x0400,
		HRes:      640,
		VRes:      480,
		PixelType: 0,
		PixelSize: 8,
		CmpCount:  1,
		CmpSize:   8,
	}})
	require.NoError(t, err)
	assert.Equal(t, KindVidParams, enc.Kind)
	assert.Equal(t, []byte{
		0x00, 0x00, 0x00, 0x32, // size
		0x00, 0x00, 0x00, 0x00, // base offset
		0x04, 0x00, // row bytes
		0x00, 0x00, 0x00, 0x00, 0x02, 0x80, 0x01, 0xE0, // bounds
		0x00, 0x00, // version
		0x00, 0x00, // pack type
		0x00, 0x00, 0x00, 0x00, // pack size
		0x00, 0x48, 0x00, 0x00, // hres
		0x00, 0x48, 0x00, 0x00, // vres
		0x00, 0x00, // pixel type
		0x00, 0x08, // pixel size
		0x00, 0x01, // cmp count
		0x00, 0x08, // cmp size
		0x00, 0x00, 0x00, 0x00, // plane bytes
		0x00, 0x00, 0x00, 0x00, // reserved
		0x00, 0x00, // padding
	}, enc.Data)
	assert.Len(t, enc.Data, 52)
}

func TestEncode_RsrcType(t *testing.T) {
	enc, err := Encode(Resource{ID: IDRsrcType, Payload: RsrcType{
		Category: 3,
		CType:    1,
		DrSW:     1,
		DrHW:     0x1234,
	}})
	require.NoError(t, err)
	assert.Equal(t, KindRsrcType, enc.Kind)
	assert.Equal(t, []byte{0, 3, 0, 1, 0, 1, 0x12, 0x34}, enc.Data)
}

func TestEncode_InlineWord(t *testing.T) {
	enc, err := Encode(Resource{ID: IDMinorLength, Payload: InlineWord(0xBEEF)})
	require.NoError(t, err)
	assert.Equal(t, KindInlineWord, enc.Kind)
	assert.Equal(t, []byte{0xBE, 0xEF}, enc.Data)
}

func TestEncode_NestedList(t *testing.T) {
	enc, err := Encode(Resource{ID: IDVendorInfo, Payload: NestedList{
		{ID: 1, Payload: CString("ACME")},
	}})
	require.NoError(t, err)
	assert.Equal(t, KindResourceList, enc.Kind)
	assert.Equal(t, []byte{
		'A', 'C', 'M', 'E', 0, 0, 0, 0,
		0x01, 0xFF, 0xFF, 0xF8,
		0xFF, 0x00, 0x00, 0x00,
	}, enc.Data)
}

func TestEncode_noPayload(t *testing.T) {
	_, err := Encode(Resource{ID: 1})
	assert.True(t, errors.Is(err, ErrUnknownResourceKind))
}

func TestKind(t *testing.T) {
	for _, tag := range []string{"Long", "String", "VidParams", "RsrcType", "InlineWord", "ResourceList"} {
		k, err := ParseKind(tag)
		assert.NoError(t, err)
		assert.Equal(t, tag, k.String())
	}

	_, err := ParseKind("Float")
	assert.True(t, errors.Is(err, ErrUnknownResourceKind))
	assert.EqualError(t, err, `unknown_resource_kind: unknown resource kind "Float"`)

	assert.Equal(t, "Kind(42)", Kind(42).String())
}
