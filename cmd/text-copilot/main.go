package main

import (
	"flag"
	"fmt"
	"os"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/Kidjing/text-copilot/config"
	"github.com/Kidjing/text-copilot/editor"
	"github.com/Kidjing/text-copilot/internal/logging"
	"github.com/Kidjing/text-copilot/llm"
	"github.com/Kidjing/text-copilot/suggest"
)

var log = logging.Get()

type model struct {
	editor editor.Model
	footer lipgloss.Style
}

func newModel(cfg *config.Config, provider suggest.Provider) model {
	ecfg := editor.Config{
		Text: strings.Join([]string{
			"package main",
			"",
			"import \"fmt\"",
			"",
			"func main() {",
			"\tfmt.",
			"}",
		}, "\n"),
		ShowLineNums: true,
		Style:        editor.DefaultStyle(),
		Suggest: editor.SuggestOptions{
			Provider:      provider,
			Debounce:      time.Duration(cfg.DebounceMS) * time.Millisecond,
			StopSequences: cfg.StopSequences,
			MaxLines:      cfg.MaxLines,
		},
	}
	return model{
		editor: editor.New(ecfg),
		footer: lipgloss.NewStyle().Faint(true),
	}
}

func (m model) Init() tea.Cmd { return nil }

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		h := msg.Height - 1 // one row reserved for the footer
		if h < 0 {
			h = 0
		}
		m.editor = m.editor.SetSize(msg.Width, h)
		return m, nil
	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}
	}

	var cmd tea.Cmd
	m.editor, cmd = m.editor.Update(msg)
	return m, cmd
}

func (m model) View() string {
	status := fmt.Sprintf("tab: accept   esc: dismiss   ctrl+c: quit   [%s]", m.editor.Status().External())
	return m.editor.View() + "\n" + m.footer.Render(status)
}

func main() {
	configPath := flag.String("config", "", "config file path (default: $XDG_CONFIG_HOME/text-copilot/config.json)")
	flag.Parse()

	cfg, err := loadConfig(*configPath)
	if err != nil {
		fatal(err)
	}

	provider, err := llm.New(llmConfig(cfg))
	if err != nil {
		fatal(err)
	}

	defer log.Close()
	log.Info("starting (backend: %s, model: %s)", cfg.Backend, cfg.Model)

	p := tea.NewProgram(newModel(cfg, provider), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		fatal(err)
	}
}

func loadConfig(path string) (*config.Config, error) {
	if path != "" {
		return config.LoadFrom(path)
	}
	return config.Load()
}

func llmConfig(cfg *config.Config) llm.Config {
	lc := llm.Config{
		Backend:       llm.Backend(cfg.Backend),
		BaseURL:       cfg.BaseURL,
		APIKey:        cfg.APIKey,
		Model:         cfg.Model,
		MaxTokens:     cfg.MaxTokens,
		ContextTokens: cfg.ContextTokens,
		Stop:          cfg.StopSequences,
	}
	if cfg.Temperature != nil {
		lc.Temperature = *cfg.Temperature
	}
	return lc
}

func fatal(err error) {
	fmt.Fprintf(os.Stderr, "text-copilot: %v\n", err)
	os.Exit(1)
}
