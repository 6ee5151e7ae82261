// internal/providers/openai/provider_test.go
package openai

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/mwiater/tccc/internal/appconfig"
	"github.com/mwiater/tccc/internal/providers"
)

const completionJSON = `{
  "id": "chatcmpl-1",
  "object": "chat.completion",
  "created": 1700000000,
  "model": "local-model",
  "choices": [
    {"index": 0, "finish_reason": "stop", "message": {"role": "assistant", "content": "  - Pack the wound\n"}}
  ]
}`

func newTestProvider(url string) *Provider {
	cfg := appconfig.Defaults()
	cfg.Host.Type = appconfig.BackendOpenAI
	cfg.Host.URL = url + "/v1"
	cfg.Host.Model = "local-model"
	cfg.TimeoutSeconds = 5
	return New(&cfg)
}

type chatPayload struct {
	Model    string `json:"model"`
	Messages []struct {
		Role    string `json:"role"`
		Content string `json:"content"`
	} `json:"messages"`
	MaxTokens   int     `json:"max_tokens"`
	Temperature float64 `json:"temperature"`
}

func TestGenerateChatCompletion(t *testing.T) {
	t.Parallel()

	var payload chatPayload
	var path, auth string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		path = r.URL.Path
		auth = r.Header.Get("Authorization")
		if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
			t.Errorf("decode payload: %v", err)
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(completionJSON))
	}))
	defer server.Close()

	p := newTestProvider(server.URL)
	got, err := p.Generate(context.Background(), providers.Request{
		Query:   "wound packing",
		Context: "[Source 1 - Page 7]\nPack the wound tightly.",
		Options: providers.DefaultOptions(),
	})
	if err != nil {
		t.Fatalf("Generate returned error: %v", err)
	}
	if got != "- Pack the wound" {
		t.Fatalf("unexpected response %q", got)
	}
	if path != "/v1/chat/completions" {
		t.Fatalf("unexpected path %q", path)
	}
	if !strings.HasPrefix(auth, "Bearer ") {
		t.Fatalf("expected bearer authorization, got %q", auth)
	}
	if payload.Model != "local-model" {
		t.Fatalf("unexpected model %q", payload.Model)
	}
	if len(payload.Messages) != 2 {
		t.Fatalf("expected system and user messages, got %+v", payload.Messages)
	}
	if payload.Messages[0].Role != "system" || payload.Messages[0].Content != providers.DefaultSystemPrompt {
		t.Fatalf("unexpected system message %+v", payload.Messages[0])
	}
	if payload.Messages[1].Role != "user" || !strings.Contains(payload.Messages[1].Content, "Emergency Question: wound packing") {
		t.Fatalf("unexpected user message %+v", payload.Messages[1])
	}
	if payload.MaxTokens != 400 || payload.Temperature != 0.2 {
		t.Fatalf("unexpected generation options: max_tokens=%d temperature=%v", payload.MaxTokens, payload.Temperature)
	}
}

func TestGenerateStatusError(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(`{"error":{"message":"model not found","type":"invalid_request_error"}}`))
	}))
	defer server.Close()

	_, err := newTestProvider(server.URL).Generate(context.Background(), providers.Request{Query: "bleeding"})
	var httpErr *providers.HTTPError
	if !errors.As(err, &httpErr) {
		t.Fatalf("expected HTTPError, got %T %v", err, err)
	}
	if httpErr.Status != http.StatusNotFound {
		t.Fatalf("unexpected status %d", httpErr.Status)
	}
}

func TestGenerateNoChoices(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"id":"x","object":"chat.completion","created":1,"model":"m","choices":[]}`))
	}))
	defer server.Close()

	_, err := newTestProvider(server.URL).Generate(context.Background(), providers.Request{Query: "bleeding"})
	if providers.Kind(err) != providers.KindResponse {
		t.Fatalf("expected response failure, got %v", err)
	}
}

func TestGenerateConnectionRefused(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.NotFoundHandler())
	url := server.URL
	server.Close()

	_, err := newTestProvider(url).Generate(context.Background(), providers.Request{Query: "bleeding"})
	if providers.Kind(err) != providers.KindTransport {
		t.Fatalf("expected transport failure, got %T %v", err, err)
	}
}
