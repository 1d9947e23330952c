package editor

import (
	"time"

	"github.com/Kidjing/text-copilot/suggest"
)

// Config configures the editor Model.
type Config struct {
	// Initial text for the internal document.
	Text string

	// Rendering options.
	ShowLineNums bool
	Style        Style

	// KeyMap zero value means DefaultKeyMap.
	KeyMap KeyMap

	// Inline completion wiring.
	Suggest SuggestOptions
}

// SuggestOptions wires a completion backend into the editor.
type SuggestOptions struct {
	// Provider fetches completions. Nil disables suggestions entirely.
	Provider suggest.Provider

	// Debounce is the quiet period after an edit before a request
	// fires. Zero means suggest.DefaultDebounce.
	Debounce time.Duration

	// StopSequences truncate raw completions during cleanup.
	StopSequences []string

	// MaxLines caps suggestion height. Zero means suggest.DefaultMaxLines.
	MaxLines int

	// MinKeyLen is the minimum trimmed context length before a request
	// is considered. Zero means suggest.DefaultMinKeyLen.
	MinKeyLen int

	// OnStatus observes engine status transitions.
	OnStatus func(suggest.Status, error)
}

func normalizeConfig(cfg Config) Config {
	if len(cfg.KeyMap.Left.Keys()) == 0 && len(cfg.KeyMap.Enter.Keys()) == 0 {
		cfg.KeyMap = DefaultKeyMap()
	}
	return cfg
}
