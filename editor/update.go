package editor

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

func (m Model) updateKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	if !m.focused || m.doc == nil {
		return m, nil
	}

	// Paste events insert literal text and never trigger shortcuts.
	if msg.Type == tea.KeyRunes && msg.Paste && len(msg.Runes) > 0 {
		s := string(msg.Runes)
		s = strings.ReplaceAll(s, "\r\n", "\n")
		s = strings.ReplaceAll(s, "\r", "\n")
		m.doc.InsertText(s)
		return m.afterEdit()
	}

	km := m.cfg.KeyMap

	// The overlay claims Tab and Escape only while a suggestion shows;
	// these checks run before any default key handling.
	if key.Matches(msg, km.AcceptSuggest) {
		if _, ok := m.overlay.Showing(); ok {
			return m.acceptSuggestion()
		}
	}
	if key.Matches(msg, km.DismissSuggest) {
		if m.overlay.Dismiss() {
			m.scheduler.Dismissed()
			m.rebuildContent()
		}
		return m, nil
	}

	ver := m.doc.Version()

	switch {
	case key.Matches(msg, km.Left):
		m.doc.MoveLeft()
		return m.afterMove(ver)
	case key.Matches(msg, km.Right):
		m.doc.MoveRight()
		return m.afterMove(ver)
	case key.Matches(msg, km.Up):
		m.doc.MoveUp()
		return m.afterMove(ver)
	case key.Matches(msg, km.Down):
		m.doc.MoveDown()
		return m.afterMove(ver)

	case key.Matches(msg, km.Home):
		m.doc.MoveLineStart()
		return m.afterMove(ver)
	case key.Matches(msg, km.End):
		m.doc.MoveLineEnd()
		return m.afterMove(ver)

	case key.Matches(msg, km.Backspace):
		m.doc.DeleteBackward()
		return m.afterEditIfChanged(ver)
	case key.Matches(msg, km.Delete):
		m.doc.DeleteForward()
		return m.afterEditIfChanged(ver)
	case key.Matches(msg, km.Enter):
		m.doc.InsertNewline()
		return m.afterEdit()
	}

	if msg.Type == tea.KeyTab {
		// No suggestion showing: Tab keeps its literal meaning.
		m.doc.InsertText("\t")
		return m.afterEdit()
	}

	if msg.Type == tea.KeyRunes && len(msg.Runes) > 0 && !msg.Alt {
		m.doc.InsertText(string(msg.Runes))
		return m.afterEdit()
	}

	return m, nil
}

// afterEdit runs the suggestion lifecycle for a document mutation:
// invalidate the displayed ghost, restart the debounce cycle, and arm
// its timer. Without a provider no cycle ever starts.
func (m Model) afterEdit() (Model, tea.Cmd) {
	m.overlay.DocumentEdited()
	var cmd tea.Cmd
	if m.cfg.Suggest.Provider != nil {
		gen := m.scheduler.DocumentChanged()
		cmd = m.debounceCmd(gen)
	}
	m.rebuildContent()
	m.followCursor()
	return m, cmd
}

// afterEditIfChanged is afterEdit for deletions that may be no-ops at
// the document edges.
func (m Model) afterEditIfChanged(prev uint64) (Model, tea.Cmd) {
	if m.doc.Version() == prev {
		return m, nil
	}
	return m.afterEdit()
}

// afterMove invalidates suggestion state for a cursor movement. Unlike
// edits, movement does not start a new debounce cycle. Moves that hit a
// document edge and go nowhere change nothing.
func (m Model) afterMove(prev uint64) (Model, tea.Cmd) {
	if m.doc.Version() == prev {
		return m, nil
	}
	if m.overlay.CursorMoved(m.doc.CursorOffset()) {
		m.scheduler.Dismissed()
	}
	m.scheduler.CursorMoved()
	m.rebuildContent()
	m.followCursor()
	return m, nil
}

// acceptSuggestion inserts the displayed ghost block at the cursor and
// starts a fresh suggestion cycle for the continuation.
func (m Model) acceptSuggestion() (Model, tea.Cmd) {
	acc, ok := m.overlay.Accept()
	if !ok {
		return m, nil
	}
	m.doc.InsertLines(acc.Lines)
	return m.afterEdit()
}
