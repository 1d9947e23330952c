package document

import "testing"

func TestMoveLeftRight_WrapAcrossLines(t *testing.T) {
	d := New("ab\ncd")
	d.SetCursor(Pos{Row: 1, Col: 0})

	d.MoveLeft()
	if got := d.Cursor(); got != (Pos{Row: 0, Col: 2}) {
		t.Fatalf("cursor after left=%v, want (0,2)", got)
	}

	d.MoveRight()
	if got := d.Cursor(); got != (Pos{Row: 1, Col: 0}) {
		t.Fatalf("cursor after right=%v, want (1,0)", got)
	}
}

func TestMoveLeft_AtDocStartIsNoop(t *testing.T) {
	d := New("ab")
	v := d.Version()

	d.MoveLeft()
	if got := d.Cursor(); got != (Pos{}) {
		t.Fatalf("cursor=%v, want (0,0)", got)
	}
	if got := d.Version(); got != v {
		t.Fatalf("version=%d, want %d", got, v)
	}
}

func TestMoveVertical_KeepsPreferredColumn(t *testing.T) {
	d := New("abcdef\nxy\nlonger")
	d.SetCursor(Pos{Row: 0, Col: 5})

	d.MoveDown()
	if got := d.Cursor(); got != (Pos{Row: 1, Col: 2}) {
		t.Fatalf("cursor on short line=%v, want (1,2)", got)
	}

	d.MoveDown()
	if got := d.Cursor(); got != (Pos{Row: 2, Col: 5}) {
		t.Fatalf("cursor after short line=%v, want (2,5)", got)
	}

	d.MoveUp()
	d.MoveUp()
	if got := d.Cursor(); got != (Pos{Row: 0, Col: 5}) {
		t.Fatalf("cursor back on top=%v, want (0,5)", got)
	}
}

func TestMoveHorizontal_ResetsPreferredColumn(t *testing.T) {
	d := New("abcdef\nxy\nlonger")
	d.SetCursor(Pos{Row: 0, Col: 5})

	d.MoveDown()
	d.MoveLeft()
	d.MoveDown()
	if got := d.Cursor(); got != (Pos{Row: 2, Col: 1}) {
		t.Fatalf("cursor=%v, want (2,1)", got)
	}
}

func TestMoveLineStartEnd(t *testing.T) {
	d := New("hello")
	d.SetCursor(Pos{Row: 0, Col: 2})

	d.MoveLineEnd()
	if got := d.Cursor(); got != (Pos{Row: 0, Col: 5}) {
		t.Fatalf("cursor after end=%v, want (0,5)", got)
	}

	d.MoveLineStart()
	if got := d.Cursor(); got != (Pos{Row: 0, Col: 0}) {
		t.Fatalf("cursor after home=%v, want (0,0)", got)
	}
}
