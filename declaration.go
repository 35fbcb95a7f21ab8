// Package declrom reads declaration ROM images of NuBus expansion cards.
//
// A declaration ROM ends with a fixed format block (the trailer), which points
// back to the directory of resource lists. Every record table entry stores a
// 24 bit signed offset relative to its own position.
// Use the compiler package to produce images.
package declrom

import (
	"bufio"
	"bytes"
	"os"

	"github.com/32bitkid/bitreader"

	"github.com/maja42/declrom/internal"
)

// Declaration is a parsed declaration ROM image.
type Declaration struct {
	data     []byte
	start    int // first byte of the declaration data
	trailer  internal.Trailer
	dirTable int
	lists    []List
}

// List is a resource list referenced by the directory.
type List struct {
	ID      uint8
	Table   int // absolute position of the record table
	Entries []Entry
}

// Entry is a single record table entry.
//
// Inline entries do not count towards the offsets of the entries that follow them,
// so an offset is relative to Anchor: the entry's position minus 4 bytes
// for every inline entry before it in the same table.
type Entry struct {
	ID       uint8
	Position int   // absolute position of the entry
	Anchor   int   // absolute position Offset is relative to
	Offset   int32 // raw 24 bit value, sign extended
}

// Inline reports whether the entry carries a 16 bit word instead of pointing at a payload.
// Payloads always precede the table referencing them, so only inline entries hold
// a non-negative value, with a zero high byte.
func (e Entry) Inline() bool {
	return e.Offset >= 0 && e.Offset <= 0xFFFF
}

// Target returns the absolute position the entry points at.
func (e Entry) Target() int {
	return e.Anchor + int(e.Offset)
}

// Word returns the value of an entry that carries its data inline.
func (e Entry) Word() uint16 {
	return uint16(e.Offset)
}

// Open reads and parses the declaration ROM image at path.
func Open(path string) (*Declaration, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return Parse(data)
}

// Parse parses a declaration ROM image.
//
// The declaration data occupies the last bytes of data, as declared by the trailer.
// Anything before is ignored, which allows parsing a complete ROM dump.
func Parse(data []byte) (*Declaration, error) {
	if len(data) < internal.TrailerSize {
		return nil, newRomErr("corrupt declaration data (too short)")
	}
	tr := internal.ReadTrailer(data)
	trailerPos := len(data) - internal.TrailerSize

	switch {
	case tr.TestPattern != internal.TestPattern:
		return nil, newRomErr("corrupt declaration data (invalid test pattern)")
	case tr.ByteLanes != internal.ByteLanes:
		return nil, newRomErr("corrupt declaration data (unsupported byte lanes 0x%04x)", tr.ByteLanes)
	case tr.Format != internal.FormatRevision:
		return nil, newRomErr("corrupt declaration data (unsupported format 0x%04x)", tr.Format)
	case tr.Marker != internal.DirectoryMarker:
		return nil, newRomErr("corrupt declaration data (missing directory marker)")
	case tr.Length < internal.TrailerSize || int64(tr.Length) > int64(len(data)):
		return nil, newRomErr("corrupt declaration data (invalid length %d)", tr.Length)
	}

	start := len(data) - int(tr.Length)
	if sum := internal.ImageChecksum(data[start:]); sum != tr.Checksum {
		return nil, newRomErr("corrupt declaration data (checksum mismatch: got 0x%08x, want 0x%08x)", sum, tr.Checksum)
	}

	decl := &Declaration{
		data:     data,
		start:    start,
		trailer:  tr,
		dirTable: trailerPos + int(tr.DirectoryOffset),
	}
	if decl.dirTable < start || decl.dirTable >= trailerPos {
		return nil, newRomErr("corrupt declaration data (directory outside of declaration)")
	}

	dir, err := readTable(data, decl.dirTable, start, trailerPos)
	if err != nil {
		return nil, err
	}
	for _, e := range dir {
		if e.Target() < start || e.Target() >= trailerPos {
			return nil, newRomErr("corrupt declaration data (list %d outside of declaration)", e.ID)
		}
		entries, err := readTable(data, e.Target(), start, trailerPos)
		if err != nil {
			return nil, err
		}
		decl.lists = append(decl.lists, List{
			ID:      e.ID,
			Table:   e.Target(),
			Entries: entries,
		})
	}
	return decl, nil
}

// ReadTable reads the record table starting at pos, up to and excluding its terminator.
func ReadTable(data []byte, pos int) ([]Entry, error) {
	return readTable(data, pos, 0, len(data))
}

// readTable reads a record table located within data[lo:hi].
func readTable(data []byte, pos, lo, hi int) ([]Entry, error) {
	if pos < lo || pos >= hi {
		return nil, newRomErr("corrupt declaration data (record table at %d out of bounds)", pos)
	}
	br := bitreader.NewReader(bufio.NewReader(bytes.NewReader(data[pos:hi])))

	var entries []Entry
	anchor := pos
	for p := pos; ; p += internal.RecordSize {
		if p+internal.RecordSize > hi {
			return nil, newRomErr("corrupt declaration data (unterminated record table at %d)", pos)
		}
		id, err := br.Read8(8)
		if err != nil {
			return nil, err
		}
		raw, err := br.Read32(24)
		if err != nil {
			return nil, err
		}
		if id == internal.TerminatorID {
			if raw != 0 {
				return nil, newRomErr("corrupt declaration data (invalid terminator at %d)", p)
			}
			return entries, nil
		}
		e := Entry{
			ID:       id,
			Position: p,
			Anchor:   anchor,
			Offset:   internal.SignExtend(raw),
		}
		if !e.Inline() {
			anchor += internal.RecordSize
		}
		entries = append(entries, e)
	}
}

// VerifyChecksum recomputes the checksum of a complete declaration image and compares it
// against the one stored in its trailer.
func VerifyChecksum(data []byte) error {
	if len(data) < internal.TrailerSize {
		return newRomErr("corrupt declaration data (too short)")
	}
	want := internal.ReadTrailer(data).Checksum
	if got := internal.ImageChecksum(data); got != want {
		return newRomErr("corrupt declaration data (checksum mismatch: got 0x%08x, want 0x%08x)", got, want)
	}
	return nil
}

// Bytes returns the complete image.
func (d *Declaration) Bytes() []byte {
	return d.data
}

// Start returns the position of the first byte of declaration data.
func (d *Declaration) Start() int {
	return d.start
}

// Length returns the declared length, including the trailer.
func (d *Declaration) Length() int {
	return int(d.trailer.Length)
}

// Checksum returns the checksum stored in the trailer.
func (d *Declaration) Checksum() uint32 {
	return d.trailer.Checksum
}

// DirectoryTable returns the absolute position of the directory's record table.
func (d *Declaration) DirectoryTable() int {
	return d.dirTable
}

// Lists returns all resource lists in directory order.
func (d *Declaration) Lists() []List {
	if len(d.lists) == 0 {
		return nil
	}
	l := make([]List, len(d.lists))
	copy(l, d.lists)
	return l
}

// Count returns the number of resource lists.
func (d *Declaration) Count() int {
	return len(d.lists)
}

// List returns the resource list with the given id.
// Returns nil if no list with that id exists.
func (d *Declaration) List(id uint8) *List {
	for i := range d.lists {
		if d.lists[i].ID == id {
			l := d.lists[i]
			return &l
		}
	}
	return nil
}
