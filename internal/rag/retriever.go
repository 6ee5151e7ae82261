package rag

import (
	"sort"
	"strings"
)

const (
	// DefaultMaxResults caps the number of scored chunks returned.
	DefaultMaxResults = 5
	// DomainBoost is added once per critical term shared by query and chunk.
	DomainBoost = 5
)

// CriticalTerms are the casualty-care terms whose presence in both the query
// and a chunk earns DomainBoost.
var CriticalTerms = []string{
	"hemorrhage",
	"bleeding",
	"tourniquet",
	"airway",
	"breathing",
	"circulation",
	"shock",
	"wound",
}

// QueryTerms lower-cases query and returns its unique whitespace-separated
// words in first-seen order.
func QueryTerms(query string) []string {
	seen := make(map[string]struct{})
	var terms []string
	for _, word := range strings.Fields(strings.ToLower(query)) {
		if _, ok := seen[word]; ok {
			continue
		}
		seen[word] = struct{}{}
		terms = append(terms, word)
	}
	return terms
}

// Score ranks chunks against query. Each unique query word contributes its
// substring count in the lower-cased chunk text, and each critical term found
// in both query and chunk adds DomainBoost. Zero scores are dropped; ties keep
// chunk order. At most maxResults entries are returned (DefaultMaxResults when
// maxResults <= 0).
func Score(query string, chunks []Chunk, maxResults int) []ScoredChunk {
	if maxResults <= 0 {
		maxResults = DefaultMaxResults
	}
	lowerQuery := strings.ToLower(query)
	terms := QueryTerms(query)

	scored := make([]ScoredChunk, 0, len(chunks))
	for _, c := range chunks {
		score := scoreText(lowerQuery, terms, c.Text)
		if score == 0 {
			continue
		}
		scored = append(scored, ScoredChunk{
			ChunkID:   c.ID,
			Text:      c.Text,
			PageLabel: c.PageLabel,
			Score:     score,
		})
	}

	sort.SliceStable(scored, func(i, j int) bool {
		return scored[i].Score > scored[j].Score
	})

	if len(scored) > maxResults {
		scored = scored[:maxResults]
	}
	return scored
}

func scoreText(lowerQuery string, terms []string, text string) int {
	lowerText := strings.ToLower(text)
	score := 0
	for _, term := range terms {
		score += strings.Count(lowerText, term)
	}
	for _, term := range CriticalTerms {
		if strings.Contains(lowerText, term) && strings.Contains(lowerQuery, term) {
			score += DomainBoost
		}
	}
	return score
}
