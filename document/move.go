package document

// MoveLeft moves the cursor one grapheme left, wrapping to the previous
// line end at column zero.
func (d *Document) MoveLeft() {
	p := d.cursor
	switch {
	case p.Col > 0:
		d.setMoved(Pos{Row: p.Row, Col: p.Col - 1}, -1)
	case p.Row > 0:
		d.setMoved(Pos{Row: p.Row - 1, Col: d.lineLen(p.Row - 1)}, -1)
	}
}

// MoveRight moves the cursor one grapheme right, wrapping to the next
// line start at end of line.
func (d *Document) MoveRight() {
	p := d.cursor
	switch {
	case p.Col < d.lineLen(p.Row):
		d.setMoved(Pos{Row: p.Row, Col: p.Col + 1}, -1)
	case p.Row < len(d.lines)-1:
		d.setMoved(Pos{Row: p.Row + 1, Col: 0}, -1)
	}
}

// MoveUp moves the cursor one line up, keeping the preferred column across
// shorter lines.
func (d *Document) MoveUp() {
	p := d.cursor
	if p.Row == 0 {
		return
	}
	want := d.stickyCol
	if want < 0 {
		want = p.Col
	}
	d.setMoved(Pos{Row: p.Row - 1, Col: minInt(want, d.lineLen(p.Row-1))}, want)
}

// MoveDown moves the cursor one line down, keeping the preferred column
// across shorter lines.
func (d *Document) MoveDown() {
	p := d.cursor
	if p.Row >= len(d.lines)-1 {
		return
	}
	want := d.stickyCol
	if want < 0 {
		want = p.Col
	}
	d.setMoved(Pos{Row: p.Row + 1, Col: minInt(want, d.lineLen(p.Row+1))}, want)
}

// MoveLineStart moves the cursor to column zero of the current line.
func (d *Document) MoveLineStart() {
	d.setMoved(Pos{Row: d.cursor.Row, Col: 0}, -1)
}

// MoveLineEnd moves the cursor past the last grapheme of the current line.
func (d *Document) MoveLineEnd() {
	d.setMoved(Pos{Row: d.cursor.Row, Col: d.lineLen(d.cursor.Row)}, -1)
}

func (d *Document) setMoved(p Pos, sticky int) {
	next := d.clampPos(p)
	if next == d.cursor && sticky == d.stickyCol {
		return
	}
	if next != d.cursor {
		d.version++
	}
	d.cursor = next
	d.stickyCol = sticky
}
