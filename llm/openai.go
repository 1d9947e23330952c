package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/Kidjing/text-copilot/suggest"
)

// OpenAI completes against the legacy /v1/completions endpoint, which
// OpenAI-compatible servers (llama.cpp, vLLM) expose for infill. The
// surrounding text travels as the prompt and suffix fields; the server
// applies the model's own fill-in-the-middle template.
type OpenAI struct {
	cfg        Config
	httpClient *http.Client
}

// NewOpenAI creates an OpenAI-compatible completions client.
func NewOpenAI(cfg Config) *OpenAI {
	cfg = normalizeConfig(cfg)
	return &OpenAI{
		cfg:        cfg,
		httpClient: &http.Client{Timeout: cfg.HTTPTimeout},
	}
}

type completionRequest struct {
	Model       string   `json:"model"`
	Prompt      string   `json:"prompt"`
	Suffix      string   `json:"suffix,omitempty"`
	MaxTokens   int      `json:"max_tokens"`
	Temperature float64  `json:"temperature"`
	Stop        []string `json:"stop,omitempty"`
	Stream      bool     `json:"stream"`
}

type completionResponse struct {
	Choices []struct {
		Text string `json:"text"`
	} `json:"choices"`
}

// Complete requests a single completion for the text around the cursor.
func (c *OpenAI) Complete(ctx context.Context, sc suggest.Context) (string, error) {
	prefix, suffix := budgetContext(sc.Prefix, sc.Suffix, c.cfg.ContextTokens)

	payload := completionRequest{
		Model:       c.cfg.Model,
		Prompt:      prefix,
		Suffix:      suffix,
		MaxTokens:   c.cfg.MaxTokens,
		Temperature: c.cfg.Temperature,
		Stop:        c.cfg.Stop,
		Stream:      false,
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return "", fmt.Errorf("failed to marshal request: %w", err)
	}

	url := c.cfg.BaseURL + "/v1/completions"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if c.cfg.APIKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.cfg.APIKey)
	}

	log.Debug("POST %s (model: %s)", url, c.cfg.Model)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return "", ctx.Err()
		}
		return "", fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		respBody, _ := io.ReadAll(resp.Body)
		return "", fmt.Errorf("%w: %d - %s", ErrRequestFailed, resp.StatusCode, string(respBody))
	}

	var out completionResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return "", fmt.Errorf("failed to decode response: %w", err)
	}
	if len(out.Choices) == 0 {
		return "", fmt.Errorf("%w: no choices in response", ErrRequestFailed)
	}

	log.Completion(string(BackendOpenAI), out.Choices[0].Text)
	return out.Choices[0].Text, nil
}
