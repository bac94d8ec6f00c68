package strategy

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/notewell/notewell/internal/embedding"
)

func TestEmbeddingTagExactMatchRanksFirst(t *testing.T) {
	e := NewEmbedding(embedding.NewProvider(nil))

	// "work deep" has the same word set as "deep work", so the local
	// approximation scores it 1.0; the exact match must still rank first.
	got, err := e.FindSimilarTags(context.Background(), "deep work", []string{"work deep", "Deep Work"})
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "Deep Work", got[0].Tag)
	assert.Equal(t, 1.0, got[0].Score)
}

func TestEmbeddingEmptyPool(t *testing.T) {
	e := NewEmbedding(embedding.NewProvider(nil))
	ctx := context.Background()

	ranked, err := e.FindRelatedNotes(ctx, "anything", nil, RelatedOptions{})
	require.NoError(t, err)
	assert.Empty(t, ranked)

	tags, err := e.FindSimilarTags(ctx, "habit/focus", nil)
	require.NoError(t, err)
	assert.Empty(t, tags)
}
