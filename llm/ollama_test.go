package llm

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/Kidjing/text-copilot/suggest"
)

func TestOllama_Complete_AccumulatesStream(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/generate" {
			t.Errorf("path = %s, want /api/generate", r.URL.Path)
		}
		if got := r.Header.Get("Accept"); got != "application/x-ndjson" {
			t.Errorf("Accept = %q, want application/x-ndjson", got)
		}

		var req generateRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Errorf("failed to decode request: %v", err)
		}
		if !req.Raw {
			t.Error("raw = false, want true")
		}
		if !req.Stream {
			t.Error("stream = false, want true")
		}
		want := "<|fim_prefix|>abc<|fim_suffix|>def<|fim_middle|>"
		if req.Prompt != want {
			t.Errorf("prompt = %q, want %q", req.Prompt, want)
		}
		if req.Options.NumPredict != 32 {
			t.Errorf("num_predict = %d, want 32", req.Options.NumPredict)
		}

		fmt.Fprintln(w, `{"response":"hello","done":false}`)
		fmt.Fprintln(w, ``)
		fmt.Fprintln(w, `{"response":" world","done":false}`)
		fmt.Fprintln(w, `{"response":"","done":true}`)
	}))
	defer server.Close()

	c := NewOllama(Config{BaseURL: server.URL, Model: "m", MaxTokens: 32})
	got, err := c.Complete(context.Background(), suggest.Context{Prefix: "abc", Suffix: "def"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "hello world" {
		t.Fatalf("completion = %q, want %q", got, "hello world")
	}
}

func TestOllama_Complete_StopsAtDone(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprintln(w, `{"response":"keep","done":true}`)
		fmt.Fprintln(w, `{"response":"extra","done":false}`)
	}))
	defer server.Close()

	c := NewOllama(Config{BaseURL: server.URL, Model: "m"})
	got, err := c.Complete(context.Background(), suggest.Context{Prefix: "x"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "keep" {
		t.Fatalf("completion = %q, want %q", got, "keep")
	}
}

func TestOllama_Complete_ToleratesNoiseLines(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprintln(w, `{"response":"a","done":false}`)
		fmt.Fprintln(w, `this is not json`)
		fmt.Fprintln(w, `{"response":"b","done":true}`)
	}))
	defer server.Close()

	c := NewOllama(Config{BaseURL: server.URL, Model: "m"})
	got, err := c.Complete(context.Background(), suggest.Context{Prefix: "x"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "ab" {
		t.Fatalf("completion = %q, want %q", got, "ab")
	}
}

func TestOllama_Complete_StreamError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprintln(w, `{"response":"partial","done":false}`)
		fmt.Fprintln(w, `{"error":"model not found"}`)
	}))
	defer server.Close()

	c := NewOllama(Config{BaseURL: server.URL, Model: "m"})
	_, err := c.Complete(context.Background(), suggest.Context{Prefix: "x"})
	if !errors.Is(err, ErrStreamFailed) {
		t.Fatalf("err = %v, want ErrStreamFailed", err)
	}
}

func TestOllama_Complete_ServerError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		w.Write([]byte(`{"error":"no such model"}`))
	}))
	defer server.Close()

	c := NewOllama(Config{BaseURL: server.URL, Model: "m"})
	_, err := c.Complete(context.Background(), suggest.Context{Prefix: "x"})
	if !errors.Is(err, ErrRequestFailed) {
		t.Fatalf("err = %v, want ErrRequestFailed", err)
	}
}

func TestOllama_Complete_ContextCanceled(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprintln(w, `{"response":"late","done":true}`)
	}))
	defer server.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	c := NewOllama(Config{BaseURL: server.URL, Model: "m"})
	_, err := c.Complete(ctx, suggest.Context{Prefix: "x"})
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("err = %v, want context.Canceled", err)
	}
}
