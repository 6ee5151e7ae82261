package rag

import (
	"reflect"
	"testing"
)

// TestScoreDomainBoost verifies substring counts and the critical-term bonus combine.
func TestScoreDomainBoost(t *testing.T) {
	chunks := []Chunk{{ID: 0, Text: "apply a tourniquet above the wound", PageLabel: "--- Page 2 ---"}}

	scored := Score("tourniquet", chunks, DefaultMaxResults)
	if len(scored) != 1 {
		t.Fatalf("expected 1 result, got %d", len(scored))
	}
	if scored[0].Score != 1+DomainBoost {
		t.Fatalf("expected score %d, got %d", 1+DomainBoost, scored[0].Score)
	}
	if scored[0].PageLabel != "--- Page 2 ---" || scored[0].ChunkID != 0 {
		t.Fatalf("expected chunk fields to carry over, got %+v", scored[0])
	}
}

// TestScoreBoostAppliesOncePerTerm verifies repeated terms in a chunk add only one bonus.
func TestScoreBoostAppliesOncePerTerm(t *testing.T) {
	chunks := []Chunk{{Text: "Bleeding, bleeding and more bleeding."}}
	scored := Score("BLEEDING", chunks, 0)
	if len(scored) != 1 || scored[0].Score != 3+DomainBoost {
		t.Fatalf("expected score %d, got %+v", 3+DomainBoost, scored)
	}
}

// TestScoreZeroExcluded verifies chunks without any match are dropped.
func TestScoreZeroExcluded(t *testing.T) {
	chunks := []Chunk{
		{ID: 0, Text: "Keep the casualty warm."},
		{ID: 1, Text: "Reassess every five minutes."},
	}
	if scored := Score("xylophone", chunks, DefaultMaxResults); len(scored) != 0 {
		t.Fatalf("expected no results, got %+v", scored)
	}
	if scored := Score("   ", chunks, DefaultMaxResults); len(scored) != 0 {
		t.Fatalf("expected no results for blank query, got %+v", scored)
	}
}

// TestScoreSetSemantics verifies duplicate query words do not multiply weight.
func TestScoreSetSemantics(t *testing.T) {
	chunks := []Chunk{{Text: "pressure dressing applied with pressure"}}
	once := Score("pressure", chunks, 0)
	twice := Score("pressure Pressure pressure", chunks, 0)
	if !reflect.DeepEqual(once, twice) {
		t.Fatalf("expected duplicate words to be ignored: %+v vs %+v", once, twice)
	}
	if once[0].Score != 2 {
		t.Fatalf("expected score 2, got %d", once[0].Score)
	}
}

// TestScoreSubstringMatching verifies words match inside longer words.
func TestScoreSubstringMatching(t *testing.T) {
	chunks := []Chunk{{Text: "Open the airway; do not despair."}}
	scored := Score("air", chunks, 0)
	if len(scored) != 1 || scored[0].Score != 2 {
		t.Fatalf("expected substring score 2, got %+v", scored)
	}
}

// TestScoreRanking verifies ordering, stable ties and the unrelated-chunk exclusion.
func TestScoreRanking(t *testing.T) {
	chunks := []Chunk{
		{ID: 0, Text: "Keep the casualty warm."},
		{ID: 1, Text: "Direct pressure controls bleeding."},
		{ID: 2, Text: "Use a tourniquet if bleeding is severe."},
		{ID: 3, Text: "Check for bleeding again."},
	}
	scored := Score("bleeding tourniquet", chunks, DefaultMaxResults)

	var ids []int
	for _, sc := range scored {
		ids = append(ids, sc.ChunkID)
	}
	if want := []int{2, 1, 3}; !reflect.DeepEqual(ids, want) {
		t.Fatalf("expected order %v, got %v", want, ids)
	}
	if scored[0].Score != 1+1+2*DomainBoost {
		t.Fatalf("unexpected top score %d", scored[0].Score)
	}
	if scored[1].Score != scored[2].Score {
		t.Fatalf("expected tie between chunks 1 and 3, got %d and %d", scored[1].Score, scored[2].Score)
	}
}

// TestScoreMaxResults verifies the result cap and its default.
func TestScoreMaxResults(t *testing.T) {
	var chunks []Chunk
	for i := 0; i < 8; i++ {
		chunks = append(chunks, Chunk{ID: i, Text: "wound care"})
	}
	if got := len(Score("wound", chunks, 2)); got != 2 {
		t.Fatalf("expected 2 results, got %d", got)
	}
	if got := len(Score("wound", chunks, 0)); got != DefaultMaxResults {
		t.Fatalf("expected default cap %d, got %d", DefaultMaxResults, got)
	}
}

func TestScoreDeterministic(t *testing.T) {
	chunks := ChunkText(sampleHandbook(), 150)
	first := Score("airway breathing hemorrhage page", chunks, DefaultMaxResults)
	second := Score("airway breathing hemorrhage page", chunks, DefaultMaxResults)
	if !reflect.DeepEqual(first, second) {
		t.Fatalf("expected identical results")
	}
	if len(first) == 0 {
		t.Fatalf("expected matches in sample handbook")
	}
}

func TestQueryTerms(t *testing.T) {
	got := QueryTerms("  Tourniquet  tourniquet\tAIRWAY\nshock ")
	want := []string{"tourniquet", "airway", "shock"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
}
