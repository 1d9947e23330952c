package editor

import (
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/Kidjing/text-copilot/document"
	"github.com/Kidjing/text-copilot/suggest"
)

// Model is a Bubble Tea component that renders an editable document and
// shows inline completion ghost text at the cursor.
type Model struct {
	cfg Config
	doc *document.Document

	scheduler *suggest.Scheduler
	overlay   *suggest.Overlay

	focused bool

	viewport viewport.Model
}

func New(cfg Config) Model {
	cfg = normalizeConfig(cfg)
	m := Model{
		cfg:      cfg,
		doc:      document.New(cfg.Text),
		overlay:  &suggest.Overlay{},
		focused:  true,
		viewport: viewport.New(0, 0),
	}
	m.scheduler = suggest.NewScheduler(cfg.Suggest.Provider, suggest.Config{
		Debounce:      cfg.Suggest.Debounce,
		MinKeyLen:     cfg.Suggest.MinKeyLen,
		MaxLines:      cfg.Suggest.MaxLines,
		StopSequences: cfg.Suggest.StopSequences,
		OnStatus:      cfg.Suggest.OnStatus,
	})
	m.rebuildContent()
	return m
}

// Document exposes the underlying document. Hosts may read from it at
// any time; mutations should go through Update so the suggestion
// lifecycle stays consistent.
func (m Model) Document() *document.Document { return m.doc }

// Text returns the current document text.
func (m Model) Text() string { return m.doc.Text() }

// Status returns the suggestion engine status.
func (m Model) Status() suggest.Status { return m.scheduler.Status() }

func (m Model) Init() tea.Cmd { return nil }

func (m Model) SetSize(width, height int) Model {
	if width < 0 {
		width = 0
	}
	if height < 0 {
		height = 0
	}
	m.viewport.Width = width
	m.viewport.Height = height

	m.rebuildContent()
	m.followCursor()
	return m
}

func (m Model) Focus() Model {
	if !m.focused {
		m.focused = true
		m.rebuildContent()
		m.followCursor()
	}
	return m
}

func (m Model) Blur() Model {
	if m.focused {
		m.focused = false
		m.rebuildContent()
	}
	return m
}

func (m Model) Focused() bool { return m.focused }

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		return m.SetSize(msg.Width, msg.Height), nil
	case debounceMsg:
		return m.handleDebounce(msg)
	case completionMsg:
		return m.handleCompletion(msg)
	case tea.KeyMsg:
		return m.updateKey(msg)
	default:
		return m, nil
	}
}

func (m Model) View() string { return m.viewport.View() }

func (m *Model) rebuildContent() {
	m.viewport.SetContent(m.renderContent())
}

func (m *Model) followCursor() {
	if m.doc == nil {
		return
	}
	cur := m.doc.Cursor()
	h := m.viewport.Height - m.viewport.Style.GetVerticalFrameSize()
	if h <= 0 {
		return
	}

	y := m.viewport.YOffset
	if cur.Row < y {
		m.viewport.SetYOffset(cur.Row)
		return
	}
	if cur.Row >= y+h {
		m.viewport.SetYOffset(cur.Row - h + 1)
		return
	}
}
