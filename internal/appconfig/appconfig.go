// internal/appconfig/appconfig.go
// Package appconfig defines the application configuration and its defaults.
package appconfig

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

const (
	// DefaultConfigPath is the default path to the application's configuration file.
	DefaultConfigPath = "config/config.json"
	// DefaultDocumentPath is the handbook looked up when no document is configured.
	DefaultDocumentPath = "5-100pg-tactical-casualty-combat-care-handbook.pdf"
	// BackendOllama selects the Ollama /api/generate backend.
	BackendOllama = "ollama"
	// BackendOpenAI selects an OpenAI-compatible chat completions backend.
	BackendOpenAI = "openai"

	// defaultRequestTimeout bounds every generation request.
	defaultRequestTimeout = 30 * time.Second
	defaultLogFile        = "tccc.log"
)

// Config represents the top-level application configuration.
type Config struct {
	Document       string     `json:"document" mapstructure:"document"`
	Host           Host       `json:"host" mapstructure:"host"`
	Parameters     Parameters `json:"parameters" mapstructure:"parameters"`
	Retrieval      Retrieval  `json:"retrieval" mapstructure:"retrieval"`
	TimeoutSeconds int        `json:"timeout,omitempty" mapstructure:"timeout"`
	Debug          bool       `json:"debug" mapstructure:"debug"`
	Plain          bool       `json:"plain" mapstructure:"plain"`
	LogFile        string     `json:"logFile,omitempty" mapstructure:"logFile"`
	MetricsFile    string     `json:"metricsFile,omitempty" mapstructure:"metricsFile"`
	ConfigPath     string     `json:"-" mapstructure:"-"`
}

// Host describes the generation backend.
type Host struct {
	Name         string `json:"name" mapstructure:"name"`
	URL          string `json:"url" mapstructure:"url"`
	Type         string `json:"type" mapstructure:"type"`
	Model        string `json:"model" mapstructure:"model"`
	APIKey       string `json:"apiKey,omitempty" mapstructure:"apiKey"`
	SystemPrompt string `json:"systemprompt,omitempty" mapstructure:"systemprompt"`
}

// Parameters controls generation.
type Parameters struct {
	MaxTokens   int     `json:"max_tokens" mapstructure:"max_tokens"`
	Temperature float64 `json:"temperature" mapstructure:"temperature"`
}

// Retrieval controls chunking, scoring and context assembly.
type Retrieval struct {
	ChunkSize      int `json:"chunkSize" mapstructure:"chunkSize"`
	MaxResults     int `json:"maxResults" mapstructure:"maxResults"`
	ContextSources int `json:"contextSources" mapstructure:"contextSources"`
	ContextChars   int `json:"contextChars" mapstructure:"contextChars"`
}

// Defaults returns the configuration used when nothing else is specified.
func Defaults() Config {
	return Config{
		Document: DefaultDocumentPath,
		Host: Host{
			Name:  "local",
			URL:   "http://127.0.0.1:11434",
			Type:  BackendOllama,
			Model: "llama3.2:3b",
		},
		Parameters: Parameters{
			MaxTokens:   400,
			Temperature: 0.2,
		},
		Retrieval: Retrieval{
			ChunkSize:      1000,
			MaxResults:     5,
			ContextSources: 3,
			ContextChars:   600,
		},
		TimeoutSeconds: int(defaultRequestTimeout.Seconds()),
		LogFile:        defaultLogFile,
	}
}

// DefaultSettings flattens Defaults into dotted keys suitable for viper.SetDefault.
func DefaultSettings() map[string]any {
	d := Defaults()
	return map[string]any{
		"document":                 d.Document,
		"host.name":                d.Host.Name,
		"host.url":                 d.Host.URL,
		"host.type":                d.Host.Type,
		"host.model":               d.Host.Model,
		"host.apiKey":              d.Host.APIKey,
		"host.systemprompt":        d.Host.SystemPrompt,
		"parameters.max_tokens":    d.Parameters.MaxTokens,
		"parameters.temperature":   d.Parameters.Temperature,
		"retrieval.chunkSize":      d.Retrieval.ChunkSize,
		"retrieval.maxResults":     d.Retrieval.MaxResults,
		"retrieval.contextSources": d.Retrieval.ContextSources,
		"retrieval.contextChars":   d.Retrieval.ContextChars,
		"timeout":                  d.TimeoutSeconds,
		"debug":                    d.Debug,
		"plain":                    d.Plain,
		"logFile":                  d.LogFile,
		"metricsFile":              d.MetricsFile,
	}
}

// Validate reports the first configuration problem found.
func (c Config) Validate() error {
	var problems []string
	if strings.TrimSpace(c.Host.URL) == "" {
		problems = append(problems, "host.url is required")
	}
	if strings.TrimSpace(c.Host.Model) == "" {
		problems = append(problems, "host.model is required")
	}
	switch c.BackendType() {
	case BackendOllama, BackendOpenAI:
	default:
		problems = append(problems, fmt.Sprintf("host.type %q is not supported (use %q or %q)", c.Host.Type, BackendOllama, BackendOpenAI))
	}
	if c.Parameters.MaxTokens <= 0 {
		problems = append(problems, "parameters.max_tokens must be greater than zero")
	}
	if c.Parameters.Temperature < 0 {
		problems = append(problems, "parameters.temperature must be zero or greater")
	}
	if c.Retrieval.ChunkSize <= 0 {
		problems = append(problems, "retrieval.chunkSize must be greater than zero")
	}
	if c.Retrieval.MaxResults <= 0 {
		problems = append(problems, "retrieval.maxResults must be greater than zero")
	}
	if c.Retrieval.ContextSources <= 0 {
		problems = append(problems, "retrieval.contextSources must be greater than zero")
	}
	if c.Retrieval.ContextChars <= 0 {
		problems = append(problems, "retrieval.contextChars must be greater than zero")
	}
	if len(problems) == 0 {
		return nil
	}
	return errors.New("invalid configuration: " + strings.Join(problems, "; "))
}

// BackendType returns the normalized backend name, defaulting to Ollama.
func (c Config) BackendType() string {
	t := strings.ToLower(strings.TrimSpace(c.Host.Type))
	if t == "" {
		return BackendOllama
	}
	return t
}

// RequestTimeout returns the timeout duration for generation requests, falling back to the default if not specified.
func (c Config) RequestTimeout() time.Duration {
	if c.TimeoutSeconds <= 0 {
		return defaultRequestTimeout
	}
	return time.Duration(c.TimeoutSeconds) * time.Second
}

// LogFilePath returns the path to the application log file, applying a default if not set.
func (c Config) LogFilePath() string {
	if path := c.LogFile; strings.TrimSpace(path) != "" {
		return path
	}
	return defaultLogFile
}
