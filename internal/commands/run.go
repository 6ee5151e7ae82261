// internal/commands/run.go
package tccc

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/mwiater/tccc/internal/appconfig"
	"github.com/mwiater/tccc/internal/assistant"
	"github.com/mwiater/tccc/internal/console"
	"github.com/mwiater/tccc/internal/extract"
	"github.com/mwiater/tccc/internal/logging"
	"github.com/mwiater/tccc/internal/metrics"
	"github.com/mwiater/tccc/internal/providerfactory"
	"github.com/mwiater/tccc/internal/providers"
	"github.com/mwiater/tccc/internal/rag"
	"github.com/mwiater/tccc/internal/shell"
)

func runRoot(cmd *cobra.Command, args []string) error {
	cfg := GetConfig()
	if cfg == nil {
		return fmt.Errorf("config is nil")
	}
	sink := console.NewTerminal(cmd.OutOrStdout(), cfg.Plain)
	sink.Emit("🏥 Simple TCCC Emergency Reference System", console.StyleBanner)

	text, err := loadDocument(sink, cfg.Document)
	if err != nil {
		return err
	}

	recorder := metrics.NewRecorder()
	defer func() {
		if err := recorder.WriteTextfile(cfg.MetricsFile); err != nil {
			logging.LogError(err, "metrics not written")
		}
	}()

	gen, err := providerfactory.NewGenerator(cfg, recorder)
	if err != nil {
		return err
	}
	defer gen.Close()

	a := assistant.New(gen, sink, assistantOptions(cfg, recorder))
	if _, err := a.Load(text); err != nil {
		sink.Emit(fmt.Sprintf("Error processing document: %v", err), console.StyleError)
		return fmt.Errorf("load %s: %w", cfg.Document, err)
	}
	sink.Emit("✅ System ready for queries!", console.StyleSuccess)

	parent := cmd.Context()
	if parent == nil {
		parent = context.Background()
	}
	ctx, stop := signal.NotifyContext(parent, os.Interrupt, syscall.SIGTERM)
	defer stop()

	if len(args) > 0 {
		query, prefixed := shell.ParseQuery(strings.Join(args, " "))
		_, err := a.Answer(ctx, query, urgentFlag || prefixed)
		return err
	}

	return shell.Run(ctx, cmd.InOrStdin(), sink, a, func() string {
		return metrics.FormatSnapshot(recorder.Snapshot())
	})
}

// loadDocument extracts the handbook text, reporting progress through sink.
func loadDocument(sink console.Sink, path string) (string, error) {
	sink.Emit("📖 Processing document: "+path, console.StyleInfo)
	text, err := extract.Extract(path)
	if err != nil {
		sink.Emit(fmt.Sprintf("Error processing document: %v", err), console.StyleError)
		return "", err
	}
	sink.Emit(fmt.Sprintf("✓ Extracted %d characters", len([]rune(text))), console.StyleSuccess)
	return text, nil
}

func assistantOptions(cfg *appconfig.Config, observer assistant.Observer) assistant.Options {
	return assistant.Options{
		ChunkSize:  cfg.Retrieval.ChunkSize,
		MaxResults: cfg.Retrieval.MaxResults,
		Limits: rag.ContextLimits{
			Sources: cfg.Retrieval.ContextSources,
			Chars:   cfg.Retrieval.ContextChars,
		},
		Generation: providers.Options{
			MaxTokens:   cfg.Parameters.MaxTokens,
			Temperature: cfg.Parameters.Temperature,
		},
		System:   cfg.Host.SystemPrompt,
		Observer: observer,
	}
}
