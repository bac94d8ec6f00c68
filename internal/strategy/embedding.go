package strategy

import (
	"context"
	"strings"

	"github.com/notewell/notewell/internal/embedding"
	"github.com/notewell/notewell/types"
)

// Embedding matches on semantic vectors from the embedding provider. The
// provider degrades to a deterministic local approximation when no
// credential is configured, so this strategy always works offline.
type Embedding struct {
	provider  *embedding.Provider
	tiers     matchTiers
	threshold float64
}

// NewEmbedding builds the embedding strategy around the given provider.
func NewEmbedding(provider *embedding.Provider) *Embedding {
	return &Embedding{
		provider:  provider,
		tiers:     matchTiers{Exact: 0.9, Paraphrase: 0.75},
		threshold: defaultConsolidationMin,
	}
}

func (e *Embedding) Name() string                         { return "embedding" }
func (e *Embedding) Initialize(ctx context.Context) error { return nil }
func (e *Embedding) ConsolidationThreshold() float64      { return e.threshold }

// Cleanup releases the vector cache.
func (e *Embedding) Cleanup() {
	e.provider.Clear()
}

// FindRelatedNotes ranks existing notes by cosine similarity between the
// document and each note's title plus content.
func (e *Embedding) FindRelatedNotes(ctx context.Context, content string, existing []types.ExistingNote, opts RelatedOptions) ([]RankedNote, error) {
	if len(existing) == 0 {
		return nil, nil
	}

	var ranked []RankedNote
	for _, note := range existing {
		sim := e.provider.Similarity(ctx, content, noteText(note))
		if sim <= 0 || sim < opts.MinScore {
			continue
		}
		ranked = append(ranked, RankedNote{
			ID:            note.ID,
			Title:         note.Title,
			Content:       note.Content,
			Score:         sim,
			SemanticScore: sim,
		})
	}

	sortRankedDesc(ranked)
	return truncateRanked(ranked, opts.Limit), nil
}

// DetectDuplicates scores each existing note's content semantically.
func (e *Embedding) DetectDuplicates(ctx context.Context, content string, existing []types.ExistingNote, opts DuplicateOptions) ([]DuplicateMatch, error) {
	if len(existing) == 0 {
		return nil, nil
	}

	minScore := opts.MinScore
	if minScore <= 0 {
		minScore = defaultDuplicateCutoff
	}

	var matches []DuplicateMatch
	for _, note := range existing {
		sim := e.provider.Similarity(ctx, content, note.Content)
		if sim < minScore {
			continue
		}
		matches = append(matches, DuplicateMatch{
			NoteID:          note.ID,
			NoteTitle:       note.Title,
			SimilarityScore: sim,
			MatchType:       e.tiers.classify(sim),
		})
	}

	sortDuplicatesDesc(matches)
	return matches, nil
}

// FindSimilarTags scores tags semantically. Exact case-insensitive matches
// are pinned to the front: a semantic score can reach 1.0 on a different
// tag, and the exact match must still rank first.
func (e *Embedding) FindSimilarTags(ctx context.Context, tag string, existingTags []string) ([]TagMatch, error) {
	if len(existingTags) == 0 {
		return nil, nil
	}

	lowerTag := strings.ToLower(tag)

	var exact, similar []TagMatch
	for _, existing := range existingTags {
		if strings.ToLower(existing) == lowerTag {
			exact = append(exact, TagMatch{Tag: existing, Score: 1.0})
			continue
		}
		score := e.provider.Similarity(ctx, tag, existing)
		if score >= 0.5 {
			similar = append(similar, TagMatch{Tag: existing, Score: score})
		}
	}

	sortTagsDesc(similar)
	return append(exact, similar...), nil
}

func noteText(note types.ExistingNote) string {
	if note.Title == "" {
		return note.Content
	}
	return note.Title + "\n" + note.Content
}
