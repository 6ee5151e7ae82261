// internal/providers/openai/provider.go
// Package openai provides a Generator for OpenAI-compatible chat completion
// endpoints, such as llama.cpp, vLLM or LM Studio servers.
package openai

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	openaisdk "github.com/openai/openai-go"
	"github.com/openai/openai-go/option"

	"github.com/mwiater/tccc/internal/appconfig"
	"github.com/mwiater/tccc/internal/logging"
	"github.com/mwiater/tccc/internal/providers"
)

// Name is the backend identifier reported in logs and metrics.
const Name = "openai"

// Provider implements providers.Generator using the chat completions API.
type Provider struct {
	client     openaisdk.Client
	httpClient *http.Client
	timeout    time.Duration
	host       appconfig.Host
}

// New constructs a Provider for the configured host. Retries are disabled so
// a single timeout bounds the whole request.
func New(cfg *appconfig.Config) *Provider {
	timeout := cfg.RequestTimeout()
	httpClient := &http.Client{
		Timeout:   timeout,
		Transport: &http.Transport{ForceAttemptHTTP2: false},
	}
	apiKey := cfg.Host.APIKey
	if strings.TrimSpace(apiKey) == "" {
		// Local servers ignore the key but the client requires one.
		apiKey = "sk-no-key-required"
	}
	baseURL := strings.TrimRight(cfg.Host.URL, "/") + "/"
	client := openaisdk.NewClient(
		option.WithBaseURL(baseURL),
		option.WithAPIKey(apiKey),
		option.WithHTTPClient(httpClient),
		option.WithMaxRetries(0),
	)
	return &Provider{
		client:     client,
		httpClient: httpClient,
		timeout:    timeout,
		host:       cfg.Host,
	}
}

// Name returns the backend identifier.
func (p *Provider) Name() string { return Name }

// Generate sends one chat completion with the system instruction and the
// rendered prompt as messages.
func (p *Provider) Generate(ctx context.Context, req providers.Request) (string, error) {
	prompt := providers.BuildPrompt(req.Query, req.Context)
	params := openaisdk.ChatCompletionNewParams{
		Model: openaisdk.ChatModel(p.host.Model),
		Messages: []openaisdk.ChatCompletionMessageParamUnion{
			openaisdk.SystemMessage(req.SystemPrompt()),
			openaisdk.UserMessage(prompt),
		},
	}
	if req.Options.MaxTokens > 0 {
		params.MaxTokens = openaisdk.Int(int64(req.Options.MaxTokens))
	}
	params.Temperature = openaisdk.Float(req.Options.Temperature)

	hostID := hostIdentifier(p.host)
	logging.LogRequest("TCCC->LLM", hostID, p.host.Model, map[string]any{
		"system":      req.SystemPrompt(),
		"prompt":      prompt,
		"max_tokens":  req.Options.MaxTokens,
		"temperature": req.Options.Temperature,
	})

	reqCtx, cancel := context.WithTimeout(ctx, p.timeout)
	defer cancel()

	resp, err := p.client.Chat.Completions.New(reqCtx, params)
	if err != nil {
		var apiErr *openaisdk.Error
		if errors.As(err, &apiErr) {
			body := strings.TrimSpace(apiErr.Message)
			logging.LogRequest("LLM->TCCC", hostID, p.host.Model, map[string]any{"status": apiErr.StatusCode, "message": body})
			return "", &providers.HTTPError{Status: apiErr.StatusCode, Body: body}
		}
		return "", providers.ClassifyTransport(err, p.timeout)
	}
	logging.LogRequest("LLM->TCCC", hostID, p.host.Model, resp.RawJSON())

	if len(resp.Choices) == 0 {
		return "", &providers.ResponseError{Reason: "no choices returned"}
	}
	return strings.TrimSpace(resp.Choices[0].Message.Content), nil
}

// Close releases idle connections.
func (p *Provider) Close() error {
	p.httpClient.CloseIdleConnections()
	return nil
}

func hostIdentifier(host appconfig.Host) string {
	if strings.TrimSpace(host.Name) != "" {
		return host.Name
	}
	return host.URL
}
