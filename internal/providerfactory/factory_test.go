// internal/providerfactory/factory_test.go
package providerfactory

import (
	"testing"

	"github.com/mwiater/tccc/internal/appconfig"
	"github.com/mwiater/tccc/internal/metrics"
	"github.com/mwiater/tccc/internal/providers/ollama"
	"github.com/mwiater/tccc/internal/providers/openai"
)

func TestNewGeneratorSelectsBackend(t *testing.T) {
	tests := []struct {
		hostType string
		want     string
	}{
		{hostType: "", want: ollama.Name},
		{hostType: "Ollama", want: ollama.Name},
		{hostType: "openai", want: openai.Name},
	}
	for _, tt := range tests {
		cfg := appconfig.Defaults()
		cfg.Host.Type = tt.hostType
		gen, err := NewGenerator(&cfg, nil)
		if err != nil {
			t.Fatalf("NewGenerator(%q) returned error: %v", tt.hostType, err)
		}
		if gen.Name() != tt.want {
			t.Fatalf("NewGenerator(%q) selected %q, want %q", tt.hostType, gen.Name(), tt.want)
		}
	}
}

func TestNewGeneratorWrapsWithMetrics(t *testing.T) {
	cfg := appconfig.Defaults()
	gen, err := NewGenerator(&cfg, metrics.NewRecorder())
	if err != nil {
		t.Fatalf("NewGenerator returned error: %v", err)
	}
	if _, ok := gen.(*metrics.Provider); !ok {
		t.Fatalf("expected metrics decorator, got %T", gen)
	}
	if gen.Name() != ollama.Name {
		t.Fatalf("decorator should report wrapped name, got %q", gen.Name())
	}
}

func TestNewGeneratorRejectsUnsupported(t *testing.T) {
	cfg := appconfig.Defaults()
	cfg.Host.Type = "llamafile"
	if _, err := NewGenerator(&cfg, nil); err == nil {
		t.Fatal("expected error for unsupported host type")
	}
	if _, err := NewGenerator(nil, nil); err == nil {
		t.Fatal("expected error for nil config")
	}
}
