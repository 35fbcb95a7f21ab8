package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/lucasb-eyer/go-colorful"
	"golang.org/x/term"

	"github.com/maja42/declrom"
	"github.com/maja42/declrom/compiler"
	"github.com/maja42/declrom/internal"
)

const bytesPerLine = 16

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#7D56F4")).
			Padding(0, 1)

	addressStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#666666"))

	directoryStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#87CEEB"))

	trailerStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FF6B6B"))
)

// painter applies styles only when the output supports them.
type painter bool

func (p painter) paint(style lipgloss.Style, s string) string {
	if !p {
		return s
	}
	return style.Render(s)
}

// IsTerminal reports whether w is a terminal.
func IsTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

// region is a contiguous range of the image with a shared colour.
type region struct {
	label      string
	start, end int
	style      lipgloss.Style
}

// palette returns n evenly spaced hues.
func palette(n int) []lipgloss.Color {
	colors := make([]lipgloss.Color, n)
	for i := range colors {
		h := float64(i) * 360 / float64(n)
		colors[i] = lipgloss.Color(colorful.Hsv(h, 0.55, 0.95).Hex())
	}
	return colors
}

// tableEnd returns the position right after the terminator of a record table.
func tableEnd(table, entries int) int {
	return table + (entries+1)*internal.RecordSize
}

// layout splits the declaration into one region per list, the directory and the trailer.
// Lists are stored back to back in directory order, each ending with its record table.
func layout(decl *declrom.Declaration) []region {
	lists := decl.Lists()
	colors := palette(len(lists))

	regions := make([]region, 0, len(lists)+2)
	pos := decl.Start()
	for i, l := range lists {
		end := tableEnd(l.Table, len(l.Entries))
		regions = append(regions, region{
			label: fmt.Sprintf("list %d", l.ID),
			start: pos,
			end:   end,
			style: lipgloss.NewStyle().Foreground(colors[i]),
		})
		pos = end
	}

	dirEnd := tableEnd(decl.DirectoryTable(), decl.Count())
	regions = append(regions,
		region{label: "directory", start: decl.DirectoryTable(), end: dirEnd, style: directoryStyle},
		region{label: "trailer", start: len(decl.Bytes()) - internal.TrailerSize, end: len(decl.Bytes()), style: trailerStyle},
	)
	return regions
}

func regionAt(regions []region, pos int) (region, bool) {
	for _, r := range regions {
		if pos >= r.start && pos < r.end {
			return r, true
		}
	}
	return region{}, false
}

// Dump writes the structure of decl followed by a hex dump of the declaration data.
func Dump(w io.Writer, decl *declrom.Declaration, styled bool) {
	p := painter(styled)
	regions := layout(decl)

	fmt.Fprintln(w, p.paint(titleStyle, "Declaration ROM"))
	fmt.Fprintf(w, "length %d, checksum 0x%08X, directory at 0x%06X\n\n",
		decl.Length(), decl.Checksum(), decl.DirectoryTable())

	for i, l := range decl.Lists() {
		fmt.Fprint(w, p.paint(regions[i].style, DescribeList(l)))
		fmt.Fprintln(w)
	}
	fmt.Fprint(w, HexDump(p, decl.Bytes(), decl.Start(), len(decl.Bytes()), regions))
}

// DescribeList renders the record table of a list, one entry per line.
func DescribeList(l declrom.List) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "list %d (0x%02X), table at 0x%06X, %d entries\n", l.ID, l.ID, l.Table, len(l.Entries))
	for _, e := range l.Entries {
		fmt.Fprintf(&sb, "  %s\n", DescribeEntry(e, compiler.ScopeGlobal))
	}
	return sb.String()
}

// DescribeEntry renders a single record table entry.
// Ids are named within scope; entries of top-level lists use the global scope.
func DescribeEntry(e declrom.Entry, scope compiler.Scope) string {
	name := compiler.IDName(scope, e.ID)
	if name == "" {
		name = "-"
	}
	if e.Inline() {
		return fmt.Sprintf("%3d %-12s word 0x%04X", e.ID, name, e.Word())
	}
	return fmt.Sprintf("%3d %-12s offset %8d -> 0x%06X", e.ID, name, e.Offset, e.Target())
}

// HexDump renders data[from:to] with bytesPerLine bytes per line,
// colouring every byte by the region it belongs to.
func HexDump(p painter, data []byte, from, to int, regions []region) string {
	var sb strings.Builder
	for line := from; line < to; line += bytesPerLine {
		sb.WriteString(p.paint(addressStyle, fmt.Sprintf("%06X ", line)))
		for pos := line; pos < line+bytesPerLine && pos < to; pos++ {
			b := fmt.Sprintf(" %02X", data[pos])
			if r, ok := regionAt(regions, pos); ok {
				b = p.paint(r.style, b)
			}
			sb.WriteString(b)
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}
