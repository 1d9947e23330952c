package document

import (
	"strings"

	"github.com/Kidjing/text-copilot/internal/grapheme"
)

// Pos points into the document by (row, col) in grapheme clusters.
// Row and Col are 0-based.
type Pos struct {
	Row int
	Col int
}

// Document is the pure document state: lines, cursor, and a version counter.
type Document struct {
	lines   []string
	version uint64
	cursor  Pos

	// Preferred column for vertical movement; -1 when unset.
	stickyCol int
}

func New(text string) *Document {
	return &Document{
		lines:     splitLines(normalizeNewlines(text)),
		cursor:    Pos{},
		stickyCol: -1,
	}
}

func (d *Document) Text() string {
	return strings.Join(d.lines, "\n")
}

func (d *Document) LineCount() int { return len(d.lines) }

func (d *Document) Line(row int) string {
	if row < 0 || row >= len(d.lines) {
		return ""
	}
	return d.lines[row]
}

func (d *Document) Version() uint64 { return d.version }

func (d *Document) Cursor() Pos { return d.cursor }

func (d *Document) SetCursor(p Pos) {
	next := d.clampPos(p)
	if next == d.cursor {
		return
	}
	d.cursor = next
	d.stickyCol = -1
	d.version++
}

// CursorOffset returns the byte offset of the cursor into Text().
func (d *Document) CursorOffset() int {
	off := 0
	for row := 0; row < d.cursor.Row && row < len(d.lines); row++ {
		off += len(d.lines[row]) + 1
	}
	off += grapheme.ByteOffset(d.Line(d.cursor.Row), d.cursor.Col)
	return off
}

// SetCursorOffset places the cursor at the given byte offset into Text().
// Offsets inside a grapheme cluster snap to the cluster start.
func (d *Document) SetCursorOffset(off int) {
	if off < 0 {
		off = 0
	}
	for row, line := range d.lines {
		if off <= len(line) {
			d.SetCursor(Pos{Row: row, Col: grapheme.ColAt(line, off)})
			return
		}
		off -= len(line) + 1
	}
	last := len(d.lines) - 1
	d.SetCursor(Pos{Row: last, Col: grapheme.Count(d.lines[last])})
}

func (d *Document) lineLen(row int) int {
	return grapheme.Count(d.Line(row))
}

func (d *Document) clampPos(p Pos) Pos {
	row := clampInt(p.Row, 0, len(d.lines)-1)
	col := clampInt(p.Col, 0, d.lineLen(row))
	return Pos{Row: row, Col: col}
}

func splitLines(text string) []string {
	parts := strings.Split(text, "\n")
	if len(parts) == 0 {
		parts = []string{""}
	}
	return parts
}

func normalizeNewlines(s string) string {
	s = strings.ReplaceAll(s, "\r\n", "\n")
	return strings.ReplaceAll(s, "\r", "\n")
}

func clampInt(v, min, max int) int {
	if max < min {
		return min
	}
	if v < min {
		return min
	}
	if v > max {
		return max
	}
	return v
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}
