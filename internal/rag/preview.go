package rag

import (
	"fmt"
	"io"
)

// WritePreview prints a retrieval report for query: the scoring inputs, each
// scored chunk and the context that would be sent for generation.
func WritePreview(w io.Writer, query string, chunkCount int, scored []ScoredChunk, context string) {
	status := func(format string, args ...any) {
		fmt.Fprintf(w, format+"\n", args...)
	}

	status("[RAG] Preview query: %s", query)
	status("[RAG] query terms: %v", QueryTerms(query))
	status("[RAG] chunks searched: %d", chunkCount)
	status("[RAG] matches: %d", len(scored))

	for i, sc := range scored {
		status("[RAG] match %d score=%d chunk=%d label=%q", i+1, sc.Score, sc.ChunkID, sc.PageLabel)
	}

	if context == "" {
		status("[RAG] context: (empty, no relevant handbook content)")
		return
	}
	status("[RAG] context:\n%s", context)
}
