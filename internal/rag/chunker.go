package rag

import (
	"regexp"
	"strings"
	"unicode/utf8"
)

const (
	// DefaultChunkSize is the target chunk length in characters.
	DefaultChunkSize = 1000
	// UnknownPageLabel marks a chunk whose first lines carry no page marker.
	UnknownPageLabel = "Unknown page"
	// FinalChunkLabel is always assigned to the trailing chunk, even when a
	// page marker is present in it.
	FinalChunkLabel = "Final chunk"

	pageMarkerToken = "--- Page"
	pageScanLines   = 10
)

var sentenceTerminators = regexp.MustCompile(`[.!?]+`)

// SplitSentences splits text on runs of '.', '!' and '?'. Terminators are
// dropped and fragments that are blank after trimming are skipped; the
// remaining fragments keep their surrounding whitespace.
func SplitSentences(text string) []string {
	parts := sentenceTerminators.Split(text, -1)
	sentences := make([]string, 0, len(parts))
	for _, part := range parts {
		if strings.TrimSpace(part) == "" {
			continue
		}
		sentences = append(sentences, part)
	}
	return sentences
}

// ChunkText groups sentences into chunks of roughly targetSize characters.
// A chunk is closed before the sentence that would push it past targetSize,
// so boundaries always fall between sentences and a sentence longer than
// targetSize becomes a chunk of its own.
func ChunkText(text string, targetSize int) []Chunk {
	if targetSize <= 0 {
		targetSize = DefaultChunkSize
	}

	var chunks []Chunk
	var buf strings.Builder
	bufLen := 0

	for _, sentence := range SplitSentences(text) {
		sentenceLen := utf8.RuneCountInString(sentence)
		if bufLen+sentenceLen > targetSize && strings.TrimSpace(buf.String()) != "" {
			raw := buf.String()
			chunks = append(chunks, Chunk{
				ID:        len(chunks),
				Text:      strings.TrimSpace(raw),
				PageLabel: pageLabel(raw),
			})
			buf.Reset()
			bufLen = 0
		}
		buf.WriteString(sentence)
		buf.WriteByte('.')
		bufLen += sentenceLen + 1
	}

	if rest := strings.TrimSpace(buf.String()); rest != "" {
		chunks = append(chunks, Chunk{
			ID:        len(chunks),
			Text:      rest,
			PageLabel: FinalChunkLabel,
		})
	}
	return chunks
}

// pageLabel returns the first page marker line within the first few lines of
// raw, trimmed, or UnknownPageLabel.
func pageLabel(raw string) string {
	lines := strings.SplitN(raw, "\n", pageScanLines+1)
	if len(lines) > pageScanLines {
		lines = lines[:pageScanLines]
	}
	for _, line := range lines {
		if strings.Contains(line, pageMarkerToken) {
			return strings.TrimSpace(line)
		}
	}
	return UnknownPageLabel
}
