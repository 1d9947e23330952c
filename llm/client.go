// Package llm provides completion backends for the suggestion engine.
// Both clients satisfy suggest.Provider: the OpenAI client targets
// /v1/completions on OpenAI-compatible servers, the Ollama client
// targets /api/generate with a raw fill-in-the-middle prompt.
package llm

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/Kidjing/text-copilot/internal/logging"
	"github.com/Kidjing/text-copilot/suggest"
)

var log = logging.Get()

var (
	// ErrRequestFailed indicates an API request returned a non-success status.
	ErrRequestFailed = errors.New("API request failed")

	// ErrStreamFailed indicates the streaming response reported an error.
	ErrStreamFailed = errors.New("stream failed")

	// ErrUnknownBackend indicates an unrecognized backend name.
	ErrUnknownBackend = errors.New("unknown backend")
)

// Backend selects which client New constructs.
type Backend string

const (
	BackendOpenAI Backend = "openai"
	BackendOllama Backend = "ollama"
)

const (
	defaultTemperature   = 0.2
	defaultMaxTokens     = 64
	defaultContextTokens = 4096
	defaultHTTPTimeout   = 10 * time.Second
)

// Config holds the settings shared by all backends.
type Config struct {
	// Backend picks the client; New defaults to BackendOllama.
	Backend Backend

	// BaseURL is the server root, e.g. "http://localhost:11434" or
	// "https://api.openai.com". A trailing slash is trimmed.
	BaseURL string

	// APIKey, when set, is sent as a bearer token.
	APIKey string

	// Model names the model to complete with.
	Model string

	// Temperature is the sampling temperature. Zero or negative means
	// the default of 0.2.
	Temperature float64

	// MaxTokens caps the completion length. Zero means 64.
	MaxTokens int

	// ContextTokens budgets how many prompt tokens of surrounding text
	// to send, split two to one in the prefix's favor. Zero means 4096.
	ContextTokens int

	// Stop sequences are passed through to the model. Nil means a
	// single blank-line stop; an empty non-nil slice means none.
	Stop []string

	// Prompt holds the fill-in-the-middle control tokens. Zero value
	// means the Qwen/StarCoder family defaults.
	Prompt PromptTokens

	// HTTPTimeout bounds each request. Zero means 10s.
	HTTPTimeout time.Duration
}

func normalizeConfig(cfg Config) Config {
	cfg.BaseURL = strings.TrimSuffix(cfg.BaseURL, "/")
	if cfg.Temperature <= 0 {
		cfg.Temperature = defaultTemperature
	}
	if cfg.MaxTokens <= 0 {
		cfg.MaxTokens = defaultMaxTokens
	}
	if cfg.ContextTokens <= 0 {
		cfg.ContextTokens = defaultContextTokens
	}
	if cfg.Stop == nil {
		cfg.Stop = []string{"\n\n"}
	}
	cfg.Prompt = normalizePromptTokens(cfg.Prompt)
	if cfg.HTTPTimeout <= 0 {
		cfg.HTTPTimeout = defaultHTTPTimeout
	}
	return cfg
}

// New returns the provider for cfg.Backend. An empty backend means
// Ollama.
func New(cfg Config) (suggest.Provider, error) {
	switch cfg.Backend {
	case BackendOpenAI:
		return NewOpenAI(cfg), nil
	case BackendOllama, "":
		return NewOllama(cfg), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownBackend, cfg.Backend)
	}
}
