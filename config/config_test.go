package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestLoadFrom(t *testing.T) {
	t.Run("valid config", func(t *testing.T) {
		t.Setenv("TEXT_COPILOT_API_KEY", "")
		dir := t.TempDir()
		path := filepath.Join(dir, "config.json")
		content := `{
			"backend": "openai",
			"base_url": "https://api.example.com",
			"api_key": "sk-test-123",
			"model": "codestral",
			"temperature": 0.5,
			"max_tokens": 128,
			"debounce_ms": 250,
			"stop_sequences": ["\n\n", "` + "```" + `"]
		}`
		if err := os.WriteFile(path, []byte(content), 0644); err != nil {
			t.Fatal(err)
		}

		cfg, err := LoadFrom(path)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if cfg.Backend != "openai" {
			t.Errorf("Backend = %q, want %q", cfg.Backend, "openai")
		}
		if cfg.BaseURL != "https://api.example.com" {
			t.Errorf("BaseURL = %q, want %q", cfg.BaseURL, "https://api.example.com")
		}
		if cfg.APIKey != "sk-test-123" {
			t.Errorf("APIKey = %q, want %q", cfg.APIKey, "sk-test-123")
		}
		if cfg.Model != "codestral" {
			t.Errorf("Model = %q, want %q", cfg.Model, "codestral")
		}
		if cfg.Temperature == nil || *cfg.Temperature != 0.5 {
			t.Errorf("Temperature = %v, want 0.5", cfg.Temperature)
		}
		if cfg.MaxTokens != 128 {
			t.Errorf("MaxTokens = %d, want 128", cfg.MaxTokens)
		}
		if cfg.DebounceMS != 250 {
			t.Errorf("DebounceMS = %d, want 250", cfg.DebounceMS)
		}
		if len(cfg.StopSequences) != 2 {
			t.Errorf("StopSequences = %v, want 2 entries", cfg.StopSequences)
		}
	})

	t.Run("defaults applied", func(t *testing.T) {
		t.Setenv("TEXT_COPILOT_API_KEY", "")
		dir := t.TempDir()
		path := filepath.Join(dir, "config.json")
		if err := os.WriteFile(path, []byte(`{}`), 0644); err != nil {
			t.Fatal(err)
		}

		cfg, err := LoadFrom(path)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if cfg.Backend != "ollama" {
			t.Errorf("Backend = %q, want %q", cfg.Backend, "ollama")
		}
		if cfg.BaseURL != "http://localhost:11434" {
			t.Errorf("BaseURL = %q, want default", cfg.BaseURL)
		}
		if cfg.Model != "qwen2.5-coder:1.5b" {
			t.Errorf("Model = %q, want default", cfg.Model)
		}
		if cfg.Temperature == nil || *cfg.Temperature != 0.2 {
			t.Errorf("Temperature = %v, want 0.2", cfg.Temperature)
		}
		if cfg.MaxTokens != 64 {
			t.Errorf("MaxTokens = %d, want 64", cfg.MaxTokens)
		}
		if cfg.ContextTokens != 4096 {
			t.Errorf("ContextTokens = %d, want 4096", cfg.ContextTokens)
		}
		if cfg.DebounceMS != 500 {
			t.Errorf("DebounceMS = %d, want 500", cfg.DebounceMS)
		}
		if cfg.MaxLines != 3 {
			t.Errorf("MaxLines = %d, want 3", cfg.MaxLines)
		}
		if len(cfg.StopSequences) != 1 || cfg.StopSequences[0] != "\n\n" {
			t.Errorf("StopSequences = %v, want [\"\\n\\n\"]", cfg.StopSequences)
		}
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := LoadFrom("/nonexistent/path/config.json")
		if !errors.Is(err, ErrNoConfig) {
			t.Errorf("error = %v, want ErrNoConfig", err)
		}
	})

	t.Run("invalid json", func(t *testing.T) {
		dir := t.TempDir()
		path := filepath.Join(dir, "config.json")
		if err := os.WriteFile(path, []byte("not json"), 0644); err != nil {
			t.Fatal(err)
		}

		_, err := LoadFrom(path)
		if !errors.Is(err, ErrInvalidConfig) {
			t.Errorf("error = %v, want ErrInvalidConfig", err)
		}
	})

	t.Run("invalid backend", func(t *testing.T) {
		dir := t.TempDir()
		path := filepath.Join(dir, "config.json")
		content := `{"backend": "bogus"}`
		if err := os.WriteFile(path, []byte(content), 0644); err != nil {
			t.Fatal(err)
		}

		_, err := LoadFrom(path)
		if !errors.Is(err, ErrInvalidBackend) {
			t.Errorf("error = %v, want ErrInvalidBackend", err)
		}
	})

	t.Run("openai requires base_url", func(t *testing.T) {
		dir := t.TempDir()
		path := filepath.Join(dir, "config.json")
		content := `{"backend": "openai", "api_key": "sk-test"}`
		if err := os.WriteFile(path, []byte(content), 0644); err != nil {
			t.Fatal(err)
		}

		_, err := LoadFrom(path)
		if !errors.Is(err, ErrNoBaseURL) {
			t.Errorf("error = %v, want ErrNoBaseURL", err)
		}
	})

	t.Run("env api key overrides file", func(t *testing.T) {
		t.Setenv("TEXT_COPILOT_API_KEY", "sk-from-env")
		dir := t.TempDir()
		path := filepath.Join(dir, "config.json")
		content := `{"api_key": "sk-from-file"}`
		if err := os.WriteFile(path, []byte(content), 0644); err != nil {
			t.Fatal(err)
		}

		cfg, err := LoadFrom(path)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if cfg.APIKey != "sk-from-env" {
			t.Errorf("APIKey = %q, want %q", cfg.APIKey, "sk-from-env")
		}
	})
}

func TestLoad(t *testing.T) {
	t.Run("explicit path from env", func(t *testing.T) {
		dir := t.TempDir()
		path := filepath.Join(dir, "custom.json")
		content := `{"model": "deepseek-coder:6.7b"}`
		if err := os.WriteFile(path, []byte(content), 0644); err != nil {
			t.Fatal(err)
		}
		t.Setenv("TEXT_COPILOT_CONFIG", path)

		cfg, err := Load()
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if cfg.Model != "deepseek-coder:6.7b" {
			t.Errorf("Model = %q, want %q", cfg.Model, "deepseek-coder:6.7b")
		}
	})

	t.Run("explicit path must exist", func(t *testing.T) {
		t.Setenv("TEXT_COPILOT_CONFIG", "/nonexistent/custom.json")

		_, err := Load()
		if !errors.Is(err, ErrNoConfig) {
			t.Errorf("error = %v, want ErrNoConfig", err)
		}
	})

	t.Run("xdg path", func(t *testing.T) {
		t.Setenv("TEXT_COPILOT_CONFIG", "")
		dir := t.TempDir()
		t.Setenv("XDG_CONFIG_HOME", dir)
		sub := filepath.Join(dir, "text-copilot")
		if err := os.MkdirAll(sub, 0755); err != nil {
			t.Fatal(err)
		}
		content := `{"debounce_ms": 300}`
		if err := os.WriteFile(filepath.Join(sub, "config.json"), []byte(content), 0644); err != nil {
			t.Fatal(err)
		}

		cfg, err := Load()
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if cfg.DebounceMS != 300 {
			t.Errorf("DebounceMS = %d, want 300", cfg.DebounceMS)
		}
	})

	t.Run("missing default file yields defaults", func(t *testing.T) {
		t.Setenv("TEXT_COPILOT_CONFIG", "")
		t.Setenv("TEXT_COPILOT_API_KEY", "")
		t.Setenv("XDG_CONFIG_HOME", t.TempDir())

		cfg, err := Load()
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if cfg.Backend != "ollama" {
			t.Errorf("Backend = %q, want %q", cfg.Backend, "ollama")
		}
		if cfg.BaseURL != "http://localhost:11434" {
			t.Errorf("BaseURL = %q, want default", cfg.BaseURL)
		}
	})
}
