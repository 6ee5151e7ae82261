package appconfig

import (
	"fmt"
	"io"
)

// ShowConfig prints the current configuration summary.
func ShowConfig(out io.Writer, file string, cfg *Config) {
	if file == "" {
		fmt.Fprintln(out, "No config file loaded (using defaults).")
	} else {
		fmt.Fprintf(out, "Config file: %s\n\n", file)
	}

	if cfg == nil {
		d := Defaults()
		cfg = &d
	}

	fmt.Fprintln(out, "Current configuration:")
	fmt.Fprintf(out, "  Document:        %s\n", cfg.Document)
	fmt.Fprintf(out, "  Backend:         %s (%s)\n", cfg.BackendType(), cfg.Host.Name)
	fmt.Fprintf(out, "  Host URL:        %s\n", cfg.Host.URL)
	fmt.Fprintf(out, "  Model:           %s\n", cfg.Host.Model)
	fmt.Fprintf(out, "  Timeout:         %s\n", cfg.RequestTimeout())
	fmt.Fprintf(out, "  Max Tokens:      %d\n", cfg.Parameters.MaxTokens)
	fmt.Fprintf(out, "  Temperature:     %.2f\n", cfg.Parameters.Temperature)
	fmt.Fprintf(out, "  Chunk Size:      %d\n", cfg.Retrieval.ChunkSize)
	fmt.Fprintf(out, "  Max Results:     %d\n", cfg.Retrieval.MaxResults)
	fmt.Fprintf(out, "  Context Sources: %d\n", cfg.Retrieval.ContextSources)
	fmt.Fprintf(out, "  Context Chars:   %d\n", cfg.Retrieval.ContextChars)
	fmt.Fprintf(out, "  Debug:           %v\n", cfg.Debug)
	fmt.Fprintf(out, "  Plain Output:    %v\n", cfg.Plain)
	fmt.Fprintf(out, "  Log File:        %s\n", cfg.LogFilePath())
	if cfg.MetricsFile != "" {
		fmt.Fprintf(out, "  Metrics File:    %s\n", cfg.MetricsFile)
	}
}
