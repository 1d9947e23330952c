// Package config loads the JSON file configuration for the demo
// binary. A missing file is not an error: the defaults target a local
// Ollama server.
package config

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
)

var (
	ErrNoConfig       = errors.New("config file not found")
	ErrInvalidConfig  = errors.New("invalid config JSON")
	ErrInvalidBackend = errors.New("backend must be \"ollama\" or \"openai\"")
	ErrNoBaseURL      = errors.New("base_url not set (required for the openai backend)")
)

// Config holds the text-copilot configuration.
type Config struct {
	Backend       string   `json:"backend"`        // "ollama" or "openai"
	BaseURL       string   `json:"base_url"`
	APIKey        string   `json:"api_key"`
	Model         string   `json:"model"`
	Temperature   *float64 `json:"temperature"`    // sampling temperature (default: 0.2)
	MaxTokens     int      `json:"max_tokens"`     // completion length cap (default: 64)
	ContextTokens int      `json:"context_tokens"` // prompt token budget (default: 4096)
	DebounceMS    int      `json:"debounce_ms"`    // quiet period before a request (default: 500)
	MaxLines      int      `json:"max_lines"`      // suggestion line cap (default: 3)
	StopSequences []string `json:"stop_sequences"` // default: ["\n\n"]
}

// Default returns the configuration used when no config file exists.
func Default() *Config {
	temp := 0.2
	return &Config{
		Backend:       "ollama",
		BaseURL:       "http://localhost:11434",
		Model:         "qwen2.5-coder:1.5b",
		Temperature:   &temp,
		MaxTokens:     64,
		ContextTokens: 4096,
		DebounceMS:    500,
		MaxLines:      3,
		StopSequences: []string{"\n\n"},
	}
}

// Load reads the config from $TEXT_COPILOT_CONFIG when set, otherwise
// from $XDG_CONFIG_HOME/text-copilot/config.json, otherwise from
// ~/.config/text-copilot/config.json. Only an explicitly named file
// must exist; a missing file at the resolved default path yields
// Default.
func Load() (*Config, error) {
	if path := os.Getenv("TEXT_COPILOT_CONFIG"); path != "" {
		return LoadFrom(path)
	}

	path, err := configPath()
	if err != nil {
		return nil, err
	}
	cfg, err := LoadFrom(path)
	if errors.Is(err, ErrNoConfig) {
		return normalize(Default())
	}
	return cfg, err
}

// LoadFrom reads the config from a specific path.
func LoadFrom(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrNoConfig
		}
		return nil, err
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, ErrInvalidConfig
	}
	return normalize(&cfg)
}

func configPath() (string, error) {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "text-copilot", "config.json"), nil
	}
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(homeDir, ".config", "text-copilot", "config.json"), nil
}

// normalize applies the environment override, fills defaults, and
// validates.
func normalize(cfg *Config) (*Config, error) {
	if key := os.Getenv("TEXT_COPILOT_API_KEY"); key != "" {
		cfg.APIKey = key
	}

	if cfg.Backend == "" {
		cfg.Backend = "ollama"
	}
	switch cfg.Backend {
	case "ollama", "openai":
		// valid
	default:
		return nil, ErrInvalidBackend
	}

	if cfg.BaseURL == "" {
		if cfg.Backend == "openai" {
			return nil, ErrNoBaseURL
		}
		cfg.BaseURL = "http://localhost:11434"
	}
	if cfg.Model == "" {
		cfg.Model = "qwen2.5-coder:1.5b"
	}
	if cfg.Temperature == nil {
		temp := 0.2
		cfg.Temperature = &temp
	}
	if cfg.MaxTokens <= 0 {
		cfg.MaxTokens = 64
	}
	if cfg.ContextTokens <= 0 {
		cfg.ContextTokens = 4096
	}
	if cfg.DebounceMS <= 0 {
		cfg.DebounceMS = 500
	}
	if cfg.MaxLines <= 0 {
		cfg.MaxLines = 3
	}
	if cfg.StopSequences == nil {
		cfg.StopSequences = []string{"\n\n"}
	}

	return cfg, nil
}
