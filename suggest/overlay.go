package suggest

import "strings"

// Suggestion is a cleaned completion anchored to a document byte offset.
// It is valid only while the cursor sits exactly at AnchorOffset and no
// edit has happened since it was produced.
type Suggestion struct {
	Text         string
	AnchorOffset int
}

// Acceptance is the block form of an accepted suggestion: one entry per
// line, in document order. A blank line stays an empty entry so it becomes
// an empty block on insertion, not an omitted one.
type Acceptance struct {
	Lines        []string
	AnchorOffset int
}

// Overlay owns the suggestion currently displayed as ghost text. It has two
// states, empty and showing; accept, dismiss, cursor movement, and document
// edits all return it to empty. The zero value is an empty overlay.
type Overlay struct {
	showing bool
	sug     Suggestion
}

// Showing returns the displayed suggestion, if any.
func (o *Overlay) Showing() (Suggestion, bool) {
	if !o.showing {
		return Suggestion{}, false
	}
	return o.sug, true
}

// Show displays a suggestion. It is valid only from the empty state and
// refuses empty text; a prior suggestion must be dismissed or invalidated
// first, so a new one replaces rather than merges.
func (o *Overlay) Show(text string, anchorOffset int) bool {
	if o.showing || text == "" {
		return false
	}
	o.showing = true
	o.sug = Suggestion{Text: text, AnchorOffset: anchorOffset}
	return true
}

// Accept converts the displayed suggestion into its insertable block form
// and empties the overlay. From the empty state it is a no-op.
func (o *Overlay) Accept() (Acceptance, bool) {
	if !o.showing {
		return Acceptance{}, false
	}
	a := Acceptance{
		Lines:        strings.Split(o.sug.Text, "\n"),
		AnchorOffset: o.sug.AnchorOffset,
	}
	o.clear()
	return a, true
}

// Dismiss discards the displayed suggestion without touching the document.
// It reports whether anything was showing.
func (o *Overlay) Dismiss() bool {
	if !o.showing {
		return false
	}
	o.clear()
	return true
}

// CursorMoved invalidates the suggestion when the cursor leaves its anchor.
// A ghost is only meaningful exactly where it was generated.
func (o *Overlay) CursorMoved(newOffset int) bool {
	if !o.showing || newOffset == o.sug.AnchorOffset {
		return false
	}
	return o.Dismiss()
}

// DocumentEdited invalidates the suggestion unconditionally.
func (o *Overlay) DocumentEdited() bool {
	return o.Dismiss()
}

func (o *Overlay) clear() {
	o.showing = false
	o.sug = Suggestion{}
}
