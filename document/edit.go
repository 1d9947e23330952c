package document

import (
	"strings"

	"github.com/Kidjing/text-copilot/internal/grapheme"
)

// InsertText inserts text at the cursor. Line breaks in text split the
// current line; CRLF input is normalized first.
func (d *Document) InsertText(s string) {
	if s == "" {
		return
	}
	d.InsertLines(strings.Split(normalizeNewlines(s), "\n"))
}

// InsertLines inserts a block of lines at the cursor: the first entry
// continues the current line, every following entry opens a line of its own.
// Empty entries produce empty lines rather than being dropped. The cursor
// lands at the end of the inserted content.
func (d *Document) InsertLines(block []string) {
	if len(block) == 0 {
		return
	}

	row, col := d.cursor.Row, d.cursor.Col
	line := d.Line(row)
	byteCol := grapheme.ByteOffset(line, col)
	prefix := line[:byteCol]
	suffix := line[byteCol:]

	if len(block) == 1 {
		d.lines[row] = prefix + block[0] + suffix
		d.cursor = Pos{Row: row, Col: col + grapheme.Count(block[0])}
	} else {
		repl := make([]string, 0, len(block))
		repl = append(repl, prefix+block[0])
		repl = append(repl, block[1:len(block)-1]...)
		last := block[len(block)-1]
		repl = append(repl, last+suffix)

		out := make([]string, 0, len(d.lines)+len(repl)-1)
		out = append(out, d.lines[:row]...)
		out = append(out, repl...)
		out = append(out, d.lines[row+1:]...)
		d.lines = out
		d.cursor = Pos{Row: row + len(block) - 1, Col: grapheme.Count(last)}
	}

	d.stickyCol = -1
	d.version++
}

// InsertNewline inserts a line break at the cursor.
func (d *Document) InsertNewline() {
	d.InsertLines([]string{"", ""})
}

// DeleteBackward applies backspace semantics: one grapheme left of the
// cursor, or a join with the previous line at column zero.
func (d *Document) DeleteBackward() {
	row, col := d.cursor.Row, d.cursor.Col
	if row == 0 && col == 0 {
		return
	}

	if col > 0 {
		line := d.Line(row)
		d.lines[row] = grapheme.Slice(line, 0, col-1) + grapheme.Slice(line, col, grapheme.Count(line))
		d.cursor = Pos{Row: row, Col: col - 1}
	} else {
		prevLen := d.lineLen(row - 1)
		d.lines[row-1] += d.lines[row]
		d.lines = append(d.lines[:row], d.lines[row+1:]...)
		d.cursor = Pos{Row: row - 1, Col: prevLen}
	}

	d.stickyCol = -1
	d.version++
}

// DeleteForward applies delete-key semantics: one grapheme right of the
// cursor, or a join with the next line at end of line.
func (d *Document) DeleteForward() {
	row, col := d.cursor.Row, d.cursor.Col
	lineLen := d.lineLen(row)

	if col < lineLen {
		line := d.Line(row)
		d.lines[row] = grapheme.Slice(line, 0, col) + grapheme.Slice(line, col+1, lineLen)
	} else if row < len(d.lines)-1 {
		d.lines[row] += d.lines[row+1]
		d.lines = append(d.lines[:row+1], d.lines[row+2:]...)
	} else {
		return
	}

	d.stickyCol = -1
	d.version++
}
