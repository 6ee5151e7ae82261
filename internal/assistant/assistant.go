// internal/assistant/assistant.go

// Package assistant ties retrieval and generation together. An Assistant
// holds the chunked handbook, answers one query at a time and reports every
// step through a console.Sink.
package assistant

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/mwiater/tccc/internal/console"
	"github.com/mwiater/tccc/internal/logging"
	"github.com/mwiater/tccc/internal/providers"
	"github.com/mwiater/tccc/internal/rag"
)

var (
	// ErrNoContent is returned by Load when the text yields no chunks.
	ErrNoContent = errors.New("document contains no searchable text")
	// ErrNotReady is returned by Answer before a document has been loaded.
	ErrNotReady = errors.New("no document loaded")
	// ErrEmptyQuery is returned by Answer for a blank query.
	ErrEmptyQuery = errors.New("query is empty")
)

// Observer is notified after every answer.
type Observer interface {
	ObserveAnswer(urgent bool, elapsed time.Duration, sources int, failed bool)
}

// Options configures an Assistant. Zero values select the defaults.
type Options struct {
	ChunkSize  int
	MaxResults int
	Limits     rag.ContextLimits
	Generation providers.Options
	System     string
	Observer   Observer
}

func (o Options) withDefaults() Options {
	if o.ChunkSize <= 0 {
		o.ChunkSize = rag.DefaultChunkSize
	}
	if o.MaxResults <= 0 {
		o.MaxResults = rag.DefaultMaxResults
	}
	if o.Limits.Sources <= 0 {
		o.Limits.Sources = rag.DefaultContextSources
	}
	if o.Limits.Chars <= 0 {
		o.Limits.Chars = rag.DefaultContextChars
	}
	if o.Generation.MaxTokens <= 0 {
		o.Generation = providers.DefaultOptions()
	}
	if strings.TrimSpace(o.System) == "" {
		o.System = providers.DefaultSystemPrompt
	}
	return o
}

// Answer is the result of one query.
type Answer struct {
	ID       string        `json:"id"`
	Query    string        `json:"query"`
	Urgent   bool          `json:"urgent"`
	Response string        `json:"response"`
	Sources  []rag.Source  `json:"sources"`
	Context  string        `json:"context"`
	Elapsed  time.Duration `json:"elapsed"`
	Err      error         `json:"-"`
}

// Failed reports whether generation failed for this answer.
func (a Answer) Failed() bool { return a.Err != nil }

// Assistant answers emergency queries against a loaded handbook.
type Assistant struct {
	gen  providers.Generator
	sink console.Sink
	opts Options

	mu     sync.RWMutex
	chunks []rag.Chunk
}

// New returns an Assistant with no document loaded.
func New(gen providers.Generator, sink console.Sink, opts Options) *Assistant {
	return &Assistant{gen: gen, sink: sink, opts: opts.withDefaults()}
}

// Load chunks text and makes the Assistant ready. On failure any previously
// loaded chunks are kept.
func (a *Assistant) Load(text string) (int, error) {
	if strings.TrimSpace(text) == "" {
		return 0, ErrNoContent
	}
	chunks := rag.ChunkText(text, a.opts.ChunkSize)
	if len(chunks) == 0 {
		return 0, ErrNoContent
	}

	a.mu.Lock()
	a.chunks = chunks
	a.mu.Unlock()

	logging.Logger().Info("handbook chunked",
		zap.Int("chunks", len(chunks)),
		zap.Int("chunk_size", a.opts.ChunkSize),
	)
	a.sink.Emit(fmt.Sprintf("✓ Created %d text chunks for search", len(chunks)), console.StyleSuccess)
	return len(chunks), nil
}

// Ready reports whether a document has been loaded.
func (a *Assistant) Ready() bool {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return len(a.chunks) > 0
}

// ChunkCount returns the number of loaded chunks.
func (a *Assistant) ChunkCount() int {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return len(a.chunks)
}

// Retrieve scores the loaded chunks against query and assembles the context
// without calling the generator.
func (a *Assistant) Retrieve(query string) ([]rag.ScoredChunk, string) {
	a.mu.RLock()
	chunks := a.chunks
	a.mu.RUnlock()

	scored := rag.Score(query, chunks, a.opts.MaxResults)
	return scored, rag.AssembleContext(scored, a.opts.Limits)
}

// Answer retrieves context for query, generates guidance and presents it.
// Generation failures are recovered into the returned Answer.
func (a *Assistant) Answer(ctx context.Context, query string, urgent bool) (Answer, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return Answer{}, ErrEmptyQuery
	}
	if !a.Ready() {
		return Answer{}, ErrNotReady
	}

	start := time.Now()
	ans := Answer{ID: uuid.NewString(), Query: query, Urgent: urgent}
	log := logging.Logger().With(zap.String("answer_id", ans.ID))

	queryStyle := console.StyleQuery
	if urgent {
		queryStyle = console.StyleUrgentQuery
	}
	a.sink.Emit("🚨 QUERY: "+query, queryStyle)

	a.sink.Emit("🔍 Searching TCCC handbook...", console.StyleInfo)
	scored, excerpt := a.Retrieve(query)
	if len(scored) == 0 {
		a.sink.Emit("No relevant handbook content found", console.StyleWarning)
	}
	ans.Context = excerpt
	ans.Sources = rag.Sources(scored, a.opts.Limits.Sources)

	a.sink.Emit("🧠 Generating medical guidance...", console.StyleInfo)
	response, err := a.gen.Generate(ctx, providers.Request{
		Query:   query,
		Context: excerpt,
		System:  a.opts.System,
		Options: a.opts.Generation,
	})
	if err != nil {
		ans.Err = err
		ans.Response = providers.Describe(err)
		log.Error("generation failed",
			zap.String("backend", a.gen.Name()),
			zap.String("kind", providers.Kind(err)),
			zap.Error(err),
		)
	} else {
		ans.Response = response
	}
	ans.Elapsed = time.Since(start)

	a.present(ans)

	log.Info("query answered",
		zap.String("query", query),
		zap.Bool("urgent", urgent),
		zap.Int("matches", len(scored)),
		zap.Int("sources", len(ans.Sources)),
		zap.Duration("elapsed", ans.Elapsed),
		zap.Bool("failed", ans.Failed()),
	)
	if a.opts.Observer != nil {
		a.opts.Observer.ObserveAnswer(urgent, ans.Elapsed, len(ans.Sources), ans.Failed())
	}
	return ans, nil
}

func (a *Assistant) present(ans Answer) {
	panel := console.StylePanel
	if ans.Urgent {
		panel = console.StyleUrgentPanel
	}
	a.sink.Emit(ans.Response, panel)

	if len(ans.Sources) > 0 {
		a.sink.Emit("📖 Sources:", console.StyleDim)
		for i, src := range ans.Sources {
			a.sink.Emit(fmt.Sprintf("%d. %s (relevance score: %d)", i+1, src.Label, src.Score), console.StyleDim)
		}
	}
	a.sink.Emit(fmt.Sprintf("⏱️  Response time: %.1fs", ans.Elapsed.Seconds()), console.StyleDim)
}
