package strategy

import (
	"context"

	"github.com/notewell/notewell/internal/embedding"
	"github.com/notewell/notewell/internal/textsim"
	"github.com/notewell/notewell/types"
)

const (
	// hybridCandidateLimit bounds phase-1 lexical retrieval before the
	// semantic rerank.
	hybridCandidateLimit = 30

	// Rerank blend for relatedness ranking.
	hybridKeywordWeight  = 0.3
	hybridSemanticWeight = 0.7

	// Adaptive duplicate blend: above this semantic confidence the
	// semantic signal dominates so lexical noise cannot drown a confident
	// match; below it, lexical signal stays in as tie-breaker.
	hybridSemanticConfidence = 0.6
)

// Hybrid is the two-phase strategy: lexical retrieval selects candidates,
// semantic similarity reranks them.
type Hybrid struct {
	lexical   *Lexical
	provider  *embedding.Provider
	tiers     matchTiers
	threshold float64
}

// NewHybrid builds the hybrid strategy around the given provider.
func NewHybrid(provider *embedding.Provider) *Hybrid {
	return &Hybrid{
		lexical:   NewLexical(),
		provider:  provider,
		tiers:     matchTiers{Exact: 0.85, Paraphrase: 0.65},
		threshold: defaultConsolidationMin,
	}
}

func (h *Hybrid) Name() string                         { return "hybrid" }
func (h *Hybrid) Initialize(ctx context.Context) error { return nil }
func (h *Hybrid) ConsolidationThreshold() float64      { return h.threshold }

// Cleanup releases the vector cache.
func (h *Hybrid) Cleanup() {
	h.provider.Clear()
}

// FindRelatedNotes retrieves the lexically strongest candidates, then
// reranks them by a keyword/semantic blend. When nothing scores lexically
// the whole pool goes to the rerank phase, so purely semantic matches are
// not lost.
func (h *Hybrid) FindRelatedNotes(ctx context.Context, content string, existing []types.ExistingNote, opts RelatedOptions) ([]RankedNote, error) {
	if len(existing) == 0 {
		return nil, nil
	}

	candidates, keywordScores := h.retrieveCandidates(content, existing)

	var ranked []RankedNote
	for _, note := range candidates {
		semantic := h.provider.Similarity(ctx, content, noteText(note))
		keyword := keywordScores[note.ID]
		combined := hybridKeywordWeight*keyword + hybridSemanticWeight*semantic
		if combined <= 0 || combined < opts.MinScore {
			continue
		}
		ranked = append(ranked, RankedNote{
			ID:            note.ID,
			Title:         note.Title,
			Content:       note.Content,
			Score:         combined,
			SemanticScore: semantic,
			KeywordScore:  keyword,
		})
	}

	sortRankedDesc(ranked)
	return truncateRanked(ranked, opts.Limit), nil
}

// retrieveCandidates runs phase 1: lexical scoring over the pool, keeping
// the top candidates. Falls back to the whole pool when no note scores.
func (h *Hybrid) retrieveCandidates(content string, existing []types.ExistingNote) ([]types.ExistingNote, map[string]float64) {
	keywords := textsim.ExtractKeywords(content, h.lexical.keywordOpts)

	scores := make(map[string]float64, len(existing))
	var scored []RankedNote
	for _, note := range existing {
		score := 0.0
		if len(keywords) > 0 {
			score = h.lexical.keywordScore(keywords, note.Title, note.Content)
		}
		scores[note.ID] = score
		if score > 0 {
			scored = append(scored, RankedNote{ID: note.ID, Score: score})
		}
	}

	if len(scored) == 0 {
		return existing, scores
	}

	sortRankedDesc(scored)
	if len(scored) > hybridCandidateLimit {
		scored = scored[:hybridCandidateLimit]
	}

	keep := make(map[string]struct{}, len(scored))
	for _, s := range scored {
		keep[s.ID] = struct{}{}
	}
	var candidates []types.ExistingNote
	for _, note := range existing {
		if _, ok := keep[note.ID]; ok {
			candidates = append(candidates, note)
		}
	}
	return candidates, scores
}

// DetectDuplicates blends lexical and semantic similarity adaptively: a
// confident semantic match is weighted 0.85/0.15 toward semantics, an
// unconfident one 0.4/0.6 toward the lexical signal.
func (h *Hybrid) DetectDuplicates(ctx context.Context, content string, existing []types.ExistingNote, opts DuplicateOptions) ([]DuplicateMatch, error) {
	if len(existing) == 0 {
		return nil, nil
	}

	minScore := opts.MinScore
	if minScore <= 0 {
		minScore = defaultDuplicateCutoff
	}

	var matches []DuplicateMatch
	for _, note := range existing {
		lexScore := h.lexical.duplicateScore(content, note.Content)
		semScore := h.provider.Similarity(ctx, content, note.Content)

		var score float64
		if semScore >= hybridSemanticConfidence {
			score = 0.85*semScore + 0.15*lexScore
		} else {
			score = 0.4*lexScore + 0.6*semScore
		}
		if score < minScore {
			continue
		}
		matches = append(matches, DuplicateMatch{
			NoteID:          note.ID,
			NoteTitle:       note.Title,
			SimilarityScore: score,
			MatchType:       h.tiers.classify(score),
		})
	}

	sortDuplicatesDesc(matches)
	return matches, nil
}

// FindSimilarTags uses the lexical tag comparison; tag strings are too
// short for embeddings to add signal over normalized matching.
func (h *Hybrid) FindSimilarTags(ctx context.Context, tag string, existingTags []string) ([]TagMatch, error) {
	return h.lexical.FindSimilarTags(ctx, tag, existingTags)
}
