// internal/shell/shell.go

// Package shell runs the interactive query loop on a line-oriented reader.
package shell

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/mwiater/tccc/internal/assistant"
	"github.com/mwiater/tccc/internal/console"
	"github.com/mwiater/tccc/internal/logging"
)

const (
	// Prompt is shown before every query.
	Prompt = "\n🏥 TCCC Query: "

	intro          = "🎯 Interactive TCCC Mode - Type 'quit' to exit, 'help' for commands"
	farewell       = "👋 Stay safe in the field!"
	interruptedBye = "👋 Stay safe!"
)

// HelpText lists the interactive commands and some example queries.
const HelpText = `TCCC Emergency Reference Commands:

• Type your medical question directly
• Add "urgent:", "emergency:", or "critical:" prefix for urgent queries
• "quit", "exit" or "q" - Exit system
• "stats" - Show session statistics
• "help" - Show this help

Example Queries:
• massive hemorrhage control
• airway management unconscious patient
• urgent: tension pneumothorax treatment
• emergency: sucking chest wound
• tourniquet application steps
• shock prevention battlefield

System Info:
• Uses keyword search + LLM reasoning
• Optimized for field emergency response
• No internet required after setup`

// UrgentPrefixes mark a query as urgent when it starts with one of them.
var UrgentPrefixes = []string{"urgent:", "emergency:", "critical:"}

// Answerer answers one query. *assistant.Assistant satisfies it.
type Answerer interface {
	Answer(ctx context.Context, query string, urgent bool) (assistant.Answer, error)
}

// ParseQuery trims line and, when it begins with an urgent prefix (in any
// case), strips everything up to the first colon and reports urgent.
func ParseQuery(line string) (string, bool) {
	query := strings.TrimSpace(line)
	lower := strings.ToLower(query)
	for _, prefix := range UrgentPrefixes {
		if strings.HasPrefix(lower, prefix) {
			_, rest, _ := strings.Cut(query, ":")
			return strings.TrimSpace(rest), true
		}
	}
	return query, false
}

// Run reads queries from in until quit, end of input or ctx is cancelled.
// stats renders the session summary for the stats command and may be nil.
func Run(ctx context.Context, in io.Reader, sink console.Sink, answerer Answerer, stats func() string) error {
	sink.Emit(intro, console.StyleBanner)

	lines := make(chan string)
	readErr := make(chan error, 1)
	// The reader may stay blocked on in after Run returns; it exits with the process.
	go func() {
		defer close(lines)
		scanner := bufio.NewScanner(in)
		for scanner.Scan() {
			select {
			case lines <- scanner.Text():
			case <-ctx.Done():
				return
			}
		}
		readErr <- scanner.Err()
	}()

	for {
		sink.Emit(Prompt, console.StylePrompt)

		var line string
		var ok bool
		select {
		case <-ctx.Done():
			sink.Emit("\n"+interruptedBye, console.StylePlain)
			return nil
		case line, ok = <-lines:
		}
		if !ok {
			sink.Emit("\n"+interruptedBye, console.StylePlain)
			select {
			case err := <-readErr:
				if err != nil {
					return fmt.Errorf("read query: %w", err)
				}
			default:
			}
			return nil
		}

		input := strings.TrimSpace(line)
		switch strings.ToLower(input) {
		case "":
			continue
		case "quit", "exit", "q":
			sink.Emit(farewell, console.StylePlain)
			return nil
		case "help":
			sink.Emit(HelpText, console.StylePlain)
			continue
		case "stats":
			summary := "Statistics are not available."
			if stats != nil {
				summary = stats()
			}
			sink.Emit(summary, console.StyleDim)
			continue
		}

		query, urgent := ParseQuery(input)
		if _, err := answerer.Answer(ctx, query, urgent); err != nil {
			if errors.Is(err, assistant.ErrEmptyQuery) {
				continue
			}
			logging.LogError(err, "interactive query failed")
			sink.Emit(fmt.Sprintf("Error: %v", err), console.StyleError)
		}
	}
}
