package embedding

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/maja42/declrom"
	"github.com/maja42/declrom/compiler"
)

func testDeclaration(t *testing.T) []byte {
	img, err := compiler.Compile(compiler.Directory{Lists: []compiler.ResourceList{{
		ID: 1,
		Resources: []compiler.Resource{
			{ID: compiler.IDRsrcName, Payload: compiler.CString("Board")},
			{ID: compiler.IDBoardID, Payload: compiler.InlineWord(0x1234)},
		},
	}}})
	require.NoError(t, err)
	return img
}

func TestEmbed(t *testing.T) {
	decl := testDeclaration(t)
	firmware := strings.NewReader("driver code")

	var logged []string
	logger := func(format string, args ...interface{}) {
		logged = append(logged, format)
	}

	var out bytes.Buffer
	err := Embed(&out, firmware, decl, 256, logger)
	require.NoError(t, err)

	rom := out.Bytes()
	require.Len(t, rom, 256)
	assert.Equal(t, "driver code", string(rom[:11]))
	assert.Equal(t, bytes.Repeat([]byte{Fill}, 256-11-len(decl)), rom[11:256-len(decl)])
	assert.Equal(t, decl, rom[256-len(decl):])
	assert.Len(t, logged, 3)

	parsed, err := declrom.Parse(rom)
	require.NoError(t, err)
	assert.Equal(t, 256-len(decl), parsed.Start())
	assert.Equal(t, 1, parsed.Count())
}

func TestEmbed_noFill(t *testing.T) {
	decl := testDeclaration(t)

	var out bytes.Buffer
	err := Embed(&out, strings.NewReader("abc"), decl, 0, nil)
	require.NoError(t, err)
	assert.Equal(t, append([]byte("abc"), decl...), out.Bytes())
}

func TestEmbed_emptyFirmware(t *testing.T) {
	decl := testDeclaration(t)

	var out bytes.Buffer
	err := Embed(&out, strings.NewReader(""), decl, 0, nil)
	require.NoError(t, err)
	assert.Equal(t, decl, out.Bytes())
}

func TestEmbed_seeksToStart(t *testing.T) {
	decl := testDeclaration(t)
	firmware := strings.NewReader("firmware")
	_, _ = firmware.Seek(4, 0)

	var out bytes.Buffer
	require.NoError(t, Embed(&out, firmware, decl, 0, nil))
	assert.Equal(t, "firmware", string(out.Bytes()[:8]))
}

func TestEmbed_errors(t *testing.T) {
	decl := testDeclaration(t)

	var out bytes.Buffer
	err := Embed(&out, strings.NewReader("x"), decl[:len(decl)-1], 0, nil)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "verify declaration")

	err = Embed(&out, strings.NewReader("firmware"), decl, int64(len(decl)), nil)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "exceed the ROM size")

	err = Embed(&out, bytes.NewReader(append([]byte("old"), decl...)), decl, 0, nil)
	assert.EqualError(t, err, "verify firmware: already contains declaration data")

	assert.Zero(t, out.Len(), "nothing is written on failure")
}

func TestEmbedFile(t *testing.T) {
	decl := testDeclaration(t)
	path := filepath.Join(t.TempDir(), "firmware.bin")
	require.NoError(t, os.WriteFile(path, []byte{1, 2, 3, 4}, 0644))

	var out bytes.Buffer
	require.NoError(t, EmbedFile(&out, path, decl, 128, nil))
	assert.Equal(t, 128, out.Len())

	err := EmbedFile(&out, "./:this file does not exist!", decl, 0, nil)
	assert.Error(t, err)
}

func Test_getSize(t *testing.T) {
	r := strings.NewReader("content")
	_, _ = r.Seek(3, 0)

	size, err := getSize(r)
	assert.NoError(t, err)
	assert.Equal(t, int64(7), size)

	pos, err := r.Seek(0, 1)
	assert.NoError(t, err)
	assert.Equal(t, int64(0), pos)
}
