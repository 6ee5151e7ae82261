// internal/providers/ollama/provider.go
// Package ollama provides a Generator backed by the Ollama /api/generate endpoint.
package ollama

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/xeipuuv/gojsonschema"

	"github.com/mwiater/tccc/internal/appconfig"
	"github.com/mwiater/tccc/internal/logging"
	"github.com/mwiater/tccc/internal/providers"
)

// Name is the backend identifier reported in logs and metrics.
const Name = "ollama"

// responseSchema describes the only part of a non-streaming generate reply
// that is required.
const responseSchema = `{
  "type": "object",
  "required": ["response"],
  "properties": {
    "response": {"type": "string"},
    "done": {"type": "boolean"}
  }
}`

// Provider implements providers.Generator using the Ollama HTTP API.
type Provider struct {
	client  *http.Client
	timeout time.Duration
	host    appconfig.Host
	schema  *gojsonschema.Schema
}

// New constructs a Provider configured with the application's host and request timeout.
func New(cfg *appconfig.Config) (*Provider, error) {
	schema, err := gojsonschema.NewSchema(gojsonschema.NewStringLoader(responseSchema))
	if err != nil {
		return nil, fmt.Errorf("ollama: compile response schema: %w", err)
	}
	timeout := cfg.RequestTimeout()
	return &Provider{
		client: &http.Client{
			Timeout:   timeout,
			Transport: &http.Transport{ForceAttemptHTTP2: false},
		},
		timeout: timeout,
		host:    cfg.Host,
		schema:  schema,
	}, nil
}

type generateOptions struct {
	NumPredict  int     `json:"num_predict"`
	Temperature float64 `json:"temperature"`
}

type generateRequest struct {
	Model   string          `json:"model"`
	Prompt  string          `json:"prompt"`
	System  string          `json:"system"`
	Stream  bool            `json:"stream"`
	Options generateOptions `json:"options"`
}

type generateResponse struct {
	Model         string `json:"model"`
	Response      string `json:"response"`
	Done          bool   `json:"done"`
	TotalDuration int64  `json:"total_duration"`
	EvalCount     int    `json:"eval_count"`
}

// Name returns the backend identifier.
func (p *Provider) Name() string { return Name }

// Generate sends one non-streaming generate request and returns the trimmed response text.
func (p *Provider) Generate(ctx context.Context, req providers.Request) (string, error) {
	payload := generateRequest{
		Model:  p.host.Model,
		Prompt: providers.BuildPrompt(req.Query, req.Context),
		System: req.SystemPrompt(),
		Stream: false,
		Options: generateOptions{
			NumPredict:  req.Options.MaxTokens,
			Temperature: req.Options.Temperature,
		},
	}
	body, err := json.Marshal(payload)
	if err != nil {
		return "", &providers.TransportError{Err: err}
	}
	hostID := hostIdentifier(p.host)
	logging.LogRequest("TCCC->LLM", hostID, p.host.Model, body)

	reqCtx, cancel := context.WithTimeout(ctx, p.timeout)
	defer cancel()

	endpoint := strings.TrimRight(p.host.URL, "/") + "/api/generate"
	httpReq, err := http.NewRequestWithContext(reqCtx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return "", &providers.TransportError{Err: err}
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := p.client.Do(httpReq)
	if err != nil {
		return "", providers.ClassifyTransport(err, p.timeout)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", providers.ClassifyTransport(err, p.timeout)
	}
	logging.LogRequest("LLM->TCCC", hostID, p.host.Model, respBody)

	if resp.StatusCode != http.StatusOK {
		return "", &providers.HTTPError{Status: resp.StatusCode, Body: strings.TrimSpace(string(respBody))}
	}

	if err := p.validate(respBody); err != nil {
		return "", err
	}

	var result generateResponse
	if err := json.Unmarshal(respBody, &result); err != nil {
		return "", &providers.ResponseError{Reason: err.Error()}
	}
	return strings.TrimSpace(result.Response), nil
}

func (p *Provider) validate(body []byte) error {
	result, err := p.schema.Validate(gojsonschema.NewBytesLoader(body))
	if err != nil {
		return &providers.ResponseError{Reason: err.Error()}
	}
	if result.Valid() {
		return nil
	}
	var issues []string
	for _, desc := range result.Errors() {
		issues = append(issues, desc.String())
	}
	return &providers.ResponseError{Reason: strings.Join(issues, "; ")}
}

// Close releases any resources held by the provider.
func (p *Provider) Close() error {
	p.client.CloseIdleConnections()
	return nil
}

func hostIdentifier(host appconfig.Host) string {
	if strings.TrimSpace(host.Name) != "" {
		return host.Name
	}
	return host.URL
}
