// internal/providerfactory/factory.go
package providerfactory

import (
	"fmt"

	"github.com/mwiater/tccc/internal/appconfig"
	"github.com/mwiater/tccc/internal/logging"
	"github.com/mwiater/tccc/internal/metrics"
	"github.com/mwiater/tccc/internal/providers"
	"github.com/mwiater/tccc/internal/providers/ollama"
	"github.com/mwiater/tccc/internal/providers/openai"
)

// NewGenerator selects and configures the generation backend named by the
// configured host type, and wraps it with metrics collection when a recorder
// is supplied.
func NewGenerator(cfg *appconfig.Config, recorder *metrics.Recorder) (providers.Generator, error) {
	if cfg == nil {
		return nil, fmt.Errorf("nil config provided to provider factory")
	}

	var generator providers.Generator
	switch backend := cfg.BackendType(); backend {
	case appconfig.BackendOllama:
		provider, err := ollama.New(cfg)
		if err != nil {
			return nil, err
		}
		generator = provider
	case appconfig.BackendOpenAI:
		generator = openai.New(cfg)
	default:
		return nil, fmt.Errorf("unsupported host type %q", cfg.Host.Type)
	}
	logging.LogEvent("Generation backend ready: %s model=%s url=%s", generator.Name(), cfg.Host.Model, cfg.Host.URL)

	if recorder != nil {
		generator = metrics.NewProvider(generator, recorder)
	}
	return generator, nil
}
