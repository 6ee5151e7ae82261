// Package rag implements keyword retrieval over a single reference document:
// sentence-aligned chunking, substring relevance scoring and context assembly.
package rag

// Chunk is a page-labelled, sentence-aligned segment of the source text.
type Chunk struct {
	ID        int    `json:"chunk_id"`
	Text      string `json:"text"`
	PageLabel string `json:"page_label"`
}

// ScoredChunk is a chunk plus its relevance score for one query.
type ScoredChunk struct {
	ChunkID   int    `json:"chunk_id"`
	Text      string `json:"text"`
	PageLabel string `json:"page_label"`
	Score     int    `json:"score"`
}

// Source attributes one context block to its page and score.
type Source struct {
	Label string `json:"label"`
	Score int    `json:"score"`
}
