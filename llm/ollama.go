package llm

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/Kidjing/text-copilot/suggest"
)

// Ollama completes against a local Ollama server's /api/generate
// endpoint. The request is sent in raw mode with an explicit
// fill-in-the-middle prompt, so the model's chat template is bypassed.
type Ollama struct {
	cfg        Config
	httpClient *http.Client
}

// NewOllama creates an Ollama client.
func NewOllama(cfg Config) *Ollama {
	cfg = normalizeConfig(cfg)
	return &Ollama{
		cfg:        cfg,
		httpClient: &http.Client{Timeout: cfg.HTTPTimeout},
	}
}

type generateRequest struct {
	Model   string          `json:"model"`
	Prompt  string          `json:"prompt"`
	Raw     bool            `json:"raw"`
	Stream  bool            `json:"stream"`
	Options generateOptions `json:"options"`
}

type generateOptions struct {
	Temperature float64  `json:"temperature"`
	NumPredict  int      `json:"num_predict"`
	Stop        []string `json:"stop,omitempty"`
}

// generateChunk is one NDJSON line of the streamed response.
type generateChunk struct {
	Response string `json:"response"`
	Done     bool   `json:"done"`
	Error    string `json:"error,omitempty"`
}

// Complete requests a completion and accumulates the streamed chunks
// into a single string.
func (c *Ollama) Complete(ctx context.Context, sc suggest.Context) (string, error) {
	prefix, suffix := budgetContext(sc.Prefix, sc.Suffix, c.cfg.ContextTokens)
	prompt := BuildPrompt(c.cfg.Prompt, prefix, suffix)

	payload := generateRequest{
		Model:  c.cfg.Model,
		Prompt: prompt,
		Raw:    true,
		Stream: true,
		Options: generateOptions{
			Temperature: c.cfg.Temperature,
			NumPredict:  c.cfg.MaxTokens,
			Stop:        c.cfg.Stop,
		},
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return "", fmt.Errorf("failed to marshal request: %w", err)
	}

	url := c.cfg.BaseURL + "/api/generate"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/x-ndjson")
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

	text, err := c.accumulate(ctx, resp.Body)
	if err != nil {
		return "", err
	}

	log.Completion(string(BackendOllama), text)
	return text, nil
}

// accumulate reads NDJSON lines until the stream reports done, joining
// the response fragments.
func (c *Ollama) accumulate(ctx context.Context, r io.Reader) (string, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	var sb strings.Builder
	for scanner.Scan() {
		select {
		case <-ctx.Done():
			return "", ctx.Err()
		default:
		}

		line := bytes.TrimSpace(scanner.Bytes())
		if len(line) == 0 {
			continue
		}

		var chunk generateChunk
		if err := json.Unmarshal(line, &chunk); err != nil {
			// Tolerate non-JSON noise on the stream.
			log.Debug("skipping unparsable stream line: %q", string(line))
			continue
		}
		if chunk.Error != "" {
			return "", fmt.Errorf("%w: %s", ErrStreamFailed, chunk.Error)
		}

		sb.WriteString(chunk.Response)
		if chunk.Done {
			return sb.String(), nil
		}
	}
	if err := scanner.Err(); err != nil {
		if ctx.Err() != nil {
			return "", ctx.Err()
		}
		return "", fmt.Errorf("stream read failed: %w", err)
	}
	return sb.String(), nil
}
