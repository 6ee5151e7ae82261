// internal/metrics/provider.go
package metrics

import (
	"context"
	"time"

	"github.com/mwiater/tccc/internal/logging"
	"github.com/mwiater/tccc/internal/providers"
)

// Provider is a decorator that wraps a Generator to record metrics.
type Provider struct {
	wrapped  providers.Generator
	recorder *Recorder
}

// NewProvider creates a new metrics-enabled provider that wraps an existing Generator.
func NewProvider(wrapped providers.Generator, recorder *Recorder) *Provider {
	logging.LogEvent("[METRICS] Wrapping %s provider with metrics provider", wrapped.Name())
	return &Provider{wrapped: wrapped, recorder: recorder}
}

// Generate times the wrapped call and records failures by kind.
func (p *Provider) Generate(ctx context.Context, req providers.Request) (string, error) {
	start := time.Now()
	text, err := p.wrapped.Generate(ctx, req)
	if p.recorder != nil {
		kind := ""
		if err != nil {
			kind = providers.Kind(err)
		}
		p.recorder.ObserveGeneration(p.wrapped.Name(), time.Since(start), kind)
	}
	return text, err
}

// Name returns the wrapped provider's name.
func (p *Provider) Name() string {
	return p.wrapped.Name()
}

// Close closes the wrapped provider.
func (p *Provider) Close() error {
	return p.wrapped.Close()
}
