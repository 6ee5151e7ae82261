// internal/providers/provider.go

// Package providers defines the contract for text generation backends.
// A backend receives the raw question, the assembled handbook context (which
// may be empty), a system instruction and generation options, and returns the
// generated text or one of the typed failures in errors.go.
package providers

import (
	"context"
)

// DefaultSystemPrompt is the fixed instruction sent with every request unless
// the configuration overrides it.
const DefaultSystemPrompt = `You are a Tactical Combat Casualty Care (TCCC) medical assistant for emergency field conditions.
Provide concise, accurate, life-saving medical guidance.
Use bullet points for procedures. State limitations clearly.
Focus on immediate actions for combat casualties.`

// Options controls a single generation.
type Options struct {
	MaxTokens   int
	Temperature float64
}

// DefaultOptions returns the standard 400 token, 0.2 temperature settings.
func DefaultOptions() Options {
	return Options{MaxTokens: 400, Temperature: 0.2}
}

// Request is one generation call.
type Request struct {
	Query   string
	Context string
	System  string
	Options Options
}

// SystemPrompt returns the request's instruction, falling back to DefaultSystemPrompt.
func (r Request) SystemPrompt() string {
	if r.System == "" {
		return DefaultSystemPrompt
	}
	return r.System
}

// Generator is implemented by every generation backend.
type Generator interface {
	// Generate returns the model's answer for req. Failures are one of
	// *HTTPError, *TransportError, *TimeoutError or *ResponseError.
	Generate(ctx context.Context, req Request) (string, error)
	// Name identifies the backend in logs and metrics.
	Name() string
	// Close releases any resources held by the backend.
	Close() error
}
