package strategy

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/notewell/notewell/internal/embedding"
	"github.com/notewell/notewell/types"
)

func newHybridOffline() *Hybrid {
	return NewHybrid(embedding.NewProvider(nil))
}

func TestHybridNearVerbatimRestatement(t *testing.T) {
	h := newHybridOffline()
	pool := []types.ExistingNote{
		{ID: "n1", Title: "Spaced repetition", Content: "Spaced repetition is the most effective way to retain new vocabulary over months."},
		{ID: "n2", Title: "Weekly planning", Content: "Planning the week on sunday keeps priorities visible."},
	}
	restatement := "Spaced repetition is the most effective way to retain new vocabulary over many months."

	got, err := h.DetectDuplicates(context.Background(), restatement, pool, DuplicateOptions{})
	require.NoError(t, err)
	require.NotEmpty(t, got)

	best := got[0]
	assert.Equal(t, "n1", best.NoteID)
	assert.GreaterOrEqual(t, best.SimilarityScore, 0.7)
	assert.Contains(t, []MatchType{MatchExact, MatchParaphrase}, best.MatchType)
}

func TestHybridRelatedBlendsScores(t *testing.T) {
	h := newHybridOffline()
	pool := []types.ExistingNote{
		{ID: "n1", Title: "Debugging checklist", Content: "Reproduce the bug, read the logs, isolate the root cause."},
		{ID: "n2", Title: "Morning routine", Content: "Exercise before breakfast raises energy for the day."},
	}

	got, err := h.FindRelatedNotes(context.Background(), "When I debug I always start by reading the logs to find the root cause of the bug.", pool, RelatedOptions{})
	require.NoError(t, err)
	require.NotEmpty(t, got)

	assert.Equal(t, "n1", got[0].ID)
	assert.Greater(t, got[0].KeywordScore, 0.0)
	assert.Greater(t, got[0].SemanticScore, 0.0)
	assert.InDelta(t, hybridKeywordWeight*got[0].KeywordScore+hybridSemanticWeight*got[0].SemanticScore, got[0].Score, 1e-9)
}

func TestHybridFallsBackToWholePool(t *testing.T) {
	h := newHybridOffline()
	// No keyword overlap at all: phase 1 scores nothing, so every note
	// must still reach the semantic rerank.
	pool := []types.ExistingNote{
		{ID: "n1", Title: "Alpha", Content: "zebra giraffe elephant"},
		{ID: "n2", Title: "Beta", Content: "quartz obsidian granite"},
	}

	candidates, scores := h.retrieveCandidates("totally disjoint vocabulary here", pool)
	assert.Len(t, candidates, 2)
	assert.Equal(t, 0.0, scores["n1"])
	assert.Equal(t, 0.0, scores["n2"])
}

func TestHybridEmptyPool(t *testing.T) {
	h := newHybridOffline()
	got, err := h.FindRelatedNotes(context.Background(), "anything", nil, RelatedOptions{})
	require.NoError(t, err)
	assert.Empty(t, got)

	dups, err := h.DetectDuplicates(context.Background(), "anything", nil, DuplicateOptions{})
	require.NoError(t, err)
	assert.Empty(t, dups)
}

func TestBuildKinds(t *testing.T) {
	provider := embedding.NewProvider(nil)

	for _, k := range Kinds() {
		s, err := Build(k, provider)
		require.NoError(t, err)
		assert.Equal(t, string(k), s.Name())
		assert.Equal(t, 0.7, s.ConsolidationThreshold())
	}

	_, err := Build(Kind("bogus"), provider)
	assert.Error(t, err)

	_, err = Build(KindEmbedding, nil)
	assert.Error(t, err, "embedding strategy requires a provider capability")

	if _, err := ParseKind("hybrid"); err != nil {
		t.Errorf("ParseKind(hybrid) error: %v", err)
	}
	if _, err := ParseKind("semantic"); err == nil {
		t.Error("ParseKind(semantic) expected error")
	}
}
