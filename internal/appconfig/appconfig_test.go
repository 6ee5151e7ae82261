// internal/appconfig/appconfig_test.go
package appconfig

import (
	"bytes"
	"strings"
	"testing"
	"time"
)

// TestDefaultsAreValid verifies the built-in defaults pass validation and carry
// the handbook assistant's fixed generation settings.
func TestDefaultsAreValid(t *testing.T) {
	cfg := Defaults()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("defaults should validate, got %v", err)
	}
	if cfg.Parameters.MaxTokens != 400 {
		t.Fatalf("expected 400 max tokens, got %d", cfg.Parameters.MaxTokens)
	}
	if cfg.Parameters.Temperature != 0.2 {
		t.Fatalf("expected temperature 0.2, got %v", cfg.Parameters.Temperature)
	}
	if cfg.RequestTimeout() != 30*time.Second {
		t.Fatalf("expected 30s timeout, got %v", cfg.RequestTimeout())
	}
	if cfg.Retrieval.ContextSources != 3 || cfg.Retrieval.ContextChars != 600 {
		t.Fatalf("unexpected context limits: %+v", cfg.Retrieval)
	}
}

// TestDefaultSettingsCoverDefaults checks the flattened viper defaults mirror Defaults.
func TestDefaultSettingsCoverDefaults(t *testing.T) {
	settings := DefaultSettings()
	if settings["host.url"] != "http://127.0.0.1:11434" {
		t.Fatalf("unexpected host.url default: %v", settings["host.url"])
	}
	if settings["retrieval.chunkSize"] != 1000 {
		t.Fatalf("unexpected chunk size default: %v", settings["retrieval.chunkSize"])
	}
	if settings["timeout"] != 30 {
		t.Fatalf("unexpected timeout default: %v", settings["timeout"])
	}
}

// TestValidateRejectsBadValues verifies each invalid field is reported.
func TestValidateRejectsBadValues(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
		want   string
	}{
		{name: "empty url", mutate: func(c *Config) { c.Host.URL = " " }, want: "host.url"},
		{name: "empty model", mutate: func(c *Config) { c.Host.Model = "" }, want: "host.model"},
		{name: "unknown backend", mutate: func(c *Config) { c.Host.Type = "llama.cpp" }, want: "host.type"},
		{name: "zero tokens", mutate: func(c *Config) { c.Parameters.MaxTokens = 0 }, want: "max_tokens"},
		{name: "negative temperature", mutate: func(c *Config) { c.Parameters.Temperature = -1 }, want: "temperature"},
		{name: "zero chunk size", mutate: func(c *Config) { c.Retrieval.ChunkSize = 0 }, want: "chunkSize"},
		{name: "zero results", mutate: func(c *Config) { c.Retrieval.MaxResults = 0 }, want: "maxResults"},
		{name: "zero sources", mutate: func(c *Config) { c.Retrieval.ContextSources = 0 }, want: "contextSources"},
		{name: "zero chars", mutate: func(c *Config) { c.Retrieval.ContextChars = 0 }, want: "contextChars"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Defaults()
			tt.mutate(&cfg)
			err := cfg.Validate()
			if err == nil {
				t.Fatalf("expected validation error")
			}
			if !strings.Contains(err.Error(), tt.want) {
				t.Fatalf("expected error mentioning %q, got %v", tt.want, err)
			}
		})
	}
}

func TestBackendTypeNormalization(t *testing.T) {
	cfg := Defaults()
	cfg.Host.Type = ""
	if cfg.BackendType() != BackendOllama {
		t.Fatalf("expected empty type to default to ollama, got %q", cfg.BackendType())
	}
	cfg.Host.Type = " OpenAI "
	if cfg.BackendType() != BackendOpenAI {
		t.Fatalf("expected openai, got %q", cfg.BackendType())
	}
}

func TestRequestTimeoutAndLogFileFallbacks(t *testing.T) {
	cfg := Config{}
	if cfg.RequestTimeout() != 30*time.Second {
		t.Fatalf("expected fallback timeout, got %v", cfg.RequestTimeout())
	}
	if cfg.LogFilePath() != "tccc.log" {
		t.Fatalf("expected fallback log file, got %q", cfg.LogFilePath())
	}
	cfg.TimeoutSeconds = 5
	if cfg.RequestTimeout() != 5*time.Second {
		t.Fatalf("expected 5s timeout, got %v", cfg.RequestTimeout())
	}
}

// TestShowConfig verifies the summary names the config file and key settings.
func TestShowConfig(t *testing.T) {
	var buf bytes.Buffer
	cfg := Defaults()
	cfg.MetricsFile = "metrics.prom"
	ShowConfig(&buf, "config/config.json", &cfg)

	out := buf.String()
	for _, want := range []string{"Config file: config/config.json", "llama3.2:3b", "Chunk Size:      1000", "Metrics File:    metrics.prom"} {
		if !strings.Contains(out, want) {
			t.Fatalf("expected %q in output:\n%s", want, out)
		}
	}

	buf.Reset()
	ShowConfig(&buf, "", nil)
	if !strings.Contains(buf.String(), "No config file loaded") {
		t.Fatalf("expected defaults notice, got:\n%s", buf.String())
	}
}
