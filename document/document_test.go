package document

import "testing"

func TestNew_NormalizesLineEndings(t *testing.T) {
	d := New("a\r\nb\rc")
	if got, want := d.Text(), "a\nb\nc"; got != want {
		t.Fatalf("text=%q, want %q", got, want)
	}
	if got := d.LineCount(); got != 3 {
		t.Fatalf("line count=%d, want %d", got, 3)
	}
}

func TestSetCursor_ClampsAndVersions(t *testing.T) {
	d := New("a\nbc")
	if d.Version() != 0 {
		t.Fatalf("expected version 0, got %d", d.Version())
	}

	d.SetCursor(Pos{Row: 999, Col: 999})
	if got := d.Cursor(); got != (Pos{Row: 1, Col: 2}) {
		t.Fatalf("cursor=%v, want (1,2)", got)
	}
	if d.Version() != 1 {
		t.Fatalf("expected version 1, got %d", d.Version())
	}

	d.SetCursor(Pos{Row: 1, Col: 2})
	if d.Version() != 1 {
		t.Fatalf("expected version unchanged, got %d", d.Version())
	}
}

func TestCursorOffset_RoundTrip(t *testing.T) {
	d := New("ab\n\ncd")
	cases := []struct {
		pos Pos
		off int
	}{
		{pos: Pos{Row: 0, Col: 0}, off: 0},
		{pos: Pos{Row: 0, Col: 2}, off: 2},
		{pos: Pos{Row: 1, Col: 0}, off: 3},
		{pos: Pos{Row: 2, Col: 1}, off: 5},
		{pos: Pos{Row: 2, Col: 2}, off: 6},
	}
	for _, tc := range cases {
		d.SetCursor(tc.pos)
		if got := d.CursorOffset(); got != tc.off {
			t.Fatalf("offset at %v=%d, want %d", tc.pos, got, tc.off)
		}
		d.SetCursor(Pos{})
		d.SetCursorOffset(tc.off)
		if got := d.Cursor(); got != tc.pos {
			t.Fatalf("cursor at offset %d=%v, want %v", tc.off, got, tc.pos)
		}
	}
}

func TestCursorOffset_UnicodeBytes(t *testing.T) {
	d := New("πx")
	d.SetCursor(Pos{Row: 0, Col: 1})
	if got := d.CursorOffset(); got != 2 {
		t.Fatalf("offset after pi=%d, want %d", got, 2)
	}
	d.SetCursorOffset(3)
	if got := d.Cursor(); got != (Pos{Row: 0, Col: 2}) {
		t.Fatalf("cursor=%v, want (0,2)", got)
	}
}

func TestSetCursorOffset_ClampsPastEnd(t *testing.T) {
	d := New("ab\ncd")
	d.SetCursorOffset(999)
	if got := d.Cursor(); got != (Pos{Row: 1, Col: 2}) {
		t.Fatalf("cursor=%v, want (1,2)", got)
	}
}
