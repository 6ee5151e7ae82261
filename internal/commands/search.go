// internal/commands/search.go
package tccc

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/mwiater/tccc/internal/console"
	"github.com/mwiater/tccc/internal/logging"
	"github.com/mwiater/tccc/internal/rag"
)

// searchCmd previews retrieval and context assembly for a query without
// calling the generation backend.
var searchCmd = &cobra.Command{
	Use:   "search <query>",
	Short: "Preview handbook retrieval for a query",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		query := strings.TrimSpace(strings.Join(args, " "))
		if query == "" {
			return fmt.Errorf("query is required")
		}

		cfg := GetConfig()
		if cfg == nil {
			return fmt.Errorf("config is nil")
		}

		out := cmd.OutOrStdout()
		text, err := loadDocument(console.NewTerminal(out, true), cfg.Document)
		if err != nil {
			return err
		}

		chunks := rag.ChunkText(text, cfg.Retrieval.ChunkSize)
		scored := rag.Score(query, chunks, cfg.Retrieval.MaxResults)
		context := rag.AssembleContext(scored, rag.ContextLimits{
			Sources: cfg.Retrieval.ContextSources,
			Chars:   cfg.Retrieval.ContextChars,
		})
		logging.LogEvent("[RAG] search query=%q chunks=%d matches=%d", query, len(chunks), len(scored))

		rag.WritePreview(out, query, len(chunks), scored, context)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(searchCmd)
}
