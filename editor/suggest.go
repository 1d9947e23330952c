package editor

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/Kidjing/text-copilot/suggest"
)

// debounceMsg fires when an edit's quiet period elapses. The generation
// lets the scheduler ignore timers superseded by later edits.
type debounceMsg struct {
	gen int
}

// completionMsg carries a provider result back into Update, stamped
// with the generation of the fetch it answers.
type completionMsg struct {
	gen int
	raw string
	err error
}

func (m Model) debounceCmd(gen int) tea.Cmd {
	return tea.Tick(m.scheduler.Config().Debounce, func(time.Time) tea.Msg {
		return debounceMsg{gen: gen}
	})
}

func (m Model) handleDebounce(msg debounceMsg) (Model, tea.Cmd) {
	offset := m.doc.CursorOffset()
	c := suggest.Extract(m.doc.Text(), offset)
	fetch := m.scheduler.DebounceElapsed(msg.gen, c, offset, m.doc.Version())
	if fetch == nil {
		return m, nil
	}
	return m, m.fetchCmd(fetch)
}

// fetchCmd runs the completion off the event loop. The scheduler only
// reads its immutable provider here, so the goroutine is safe.
func (m Model) fetchCmd(f *suggest.Fetch) tea.Cmd {
	sched := m.scheduler
	return func() tea.Msg {
		raw, err := sched.Run(f)
		return completionMsg{gen: f.Gen, raw: raw, err: err}
	}
}

func (m Model) handleCompletion(msg completionMsg) (Model, tea.Cmd) {
	sug, ok := m.scheduler.Resolve(msg.gen, m.doc.CursorOffset(), m.doc.Version(), msg.raw, msg.err)
	if !ok {
		return m, nil
	}
	if m.overlay.Show(sug.Text, sug.AnchorOffset) {
		m.rebuildContent()
	}
	return m, nil
}
