package rag

import (
	"fmt"
	"strings"

	"github.com/mwiater/tccc/internal/util"
)

const (
	// DefaultContextSources is the number of scored chunks placed in a context.
	DefaultContextSources = 3
	// DefaultContextChars is the per-source character budget.
	DefaultContextChars = 600
)

// ContextLimits bounds the assembled context.
type ContextLimits struct {
	Sources int
	Chars   int
}

// DefaultContextLimits returns the standard three sources of 600 characters.
func DefaultContextLimits() ContextLimits {
	return ContextLimits{Sources: DefaultContextSources, Chars: DefaultContextChars}
}

func (l ContextLimits) normalized() ContextLimits {
	if l.Sources <= 0 {
		l.Sources = DefaultContextSources
	}
	if l.Chars <= 0 {
		l.Chars = DefaultContextChars
	}
	return l
}

// AssembleContext formats the leading scored chunks as numbered, attributed
// blocks separated by a blank line. Each text is cut to limits.Chars
// characters without regard to word boundaries. No chunks yield "".
func AssembleContext(scored []ScoredChunk, limits ContextLimits) string {
	limits = limits.normalized()
	if len(scored) > limits.Sources {
		scored = scored[:limits.Sources]
	}

	parts := make([]string, 0, len(scored))
	for i, sc := range scored {
		text := util.TruncateRunes(sc.Text, limits.Chars)
		parts = append(parts, fmt.Sprintf("[Source %d - %s]\n%s", i+1, DisplayLabel(sc.PageLabel), text))
	}
	return strings.Join(parts, "\n\n")
}

// Sources returns the attribution for the first n scored chunks, matching the
// blocks AssembleContext produces for the same limit.
func Sources(scored []ScoredChunk, n int) []Source {
	if n <= 0 {
		n = DefaultContextSources
	}
	if len(scored) > n {
		scored = scored[:n]
	}
	out := make([]Source, 0, len(scored))
	for _, sc := range scored {
		out = append(out, Source{Label: DisplayLabel(sc.PageLabel), Score: sc.Score})
	}
	return out
}

// DisplayLabel turns a raw page marker such as "--- Page 4 ---" into "Page 4".
// Labels without a marker are returned unchanged.
func DisplayLabel(label string) string {
	if !strings.Contains(label, pageMarkerToken) {
		return label
	}
	out := strings.ReplaceAll(label, pageMarkerToken, "Page")
	out = strings.TrimRight(strings.TrimSpace(out), "-")
	return strings.TrimSpace(out)
}
