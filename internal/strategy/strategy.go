/*
Package strategy defines the pluggable matching contract used by the
evaluation harness: relatedness ranking, duplicate detection, and tag
similarity over the current pool of existing notes. Three implementations
ship with the harness: lexical, embedding, and a two-phase hybrid.
*/
package strategy

import (
	"context"
	"sort"

	"github.com/notewell/notewell/types"
)

// MatchType tiers a duplicate match by similarity. Tier boundaries are
// strategy-specific.
type MatchType string

const (
	MatchExact      MatchType = "exact"
	MatchParaphrase MatchType = "paraphrase"
	MatchPartial    MatchType = "partial"
)

// RankedNote is one relatedness result. Within a single call results are
// sorted by Score descending.
type RankedNote struct {
	ID            string  `json:"id"`
	Title         string  `json:"title"`
	Content       string  `json:"content"`
	Score         float64 `json:"score"`
	SemanticScore float64 `json:"semanticScore,omitempty"`
	KeywordScore  float64 `json:"keywordScore,omitempty"`
}

// DuplicateMatch is one duplicate-detection result, similarity in [0,1].
type DuplicateMatch struct {
	NoteID          string    `json:"noteId"`
	NoteTitle       string    `json:"noteTitle"`
	SimilarityScore float64   `json:"similarityScore"`
	MatchType       MatchType `json:"matchType"`
}

// TagMatch is one tag-similarity result. An exact case-insensitive match
// always scores 1.0 and ranks first.
type TagMatch struct {
	Tag   string  `json:"tag"`
	Score float64 `json:"score"`
}

// RelatedOptions bounds a FindRelatedNotes call.
type RelatedOptions struct {
	Limit    int     // maximum results; default 10
	MinScore float64 // results below this are dropped
}

// DuplicateOptions bounds a DetectDuplicates call.
type DuplicateOptions struct {
	MinScore float64 // matches below this are dropped; default 0.3
}

// MatchingStrategy is the pluggable matching contract. Implementations are
// side-effect-free apart from an internal embedding cache, which Cleanup
// releases. An empty pool always yields an empty result, never an error.
type MatchingStrategy interface {
	Name() string
	Initialize(ctx context.Context) error
	Cleanup()

	FindRelatedNotes(ctx context.Context, content string, existing []types.ExistingNote, opts RelatedOptions) ([]RankedNote, error)
	DetectDuplicates(ctx context.Context, content string, existing []types.ExistingNote, opts DuplicateOptions) ([]DuplicateMatch, error)
	FindSimilarTags(ctx context.Context, tag string, existingTags []string) ([]TagMatch, error)

	// ConsolidationThreshold is the similarity above which the decision
	// engine merges into an existing note rather than creating a new one.
	ConsolidationThreshold() float64
}

// matchTiers holds the strategy-specific boundaries for classifying a
// duplicate similarity into a match type.
type matchTiers struct {
	Exact      float64
	Paraphrase float64
}

func (t matchTiers) classify(score float64) MatchType {
	switch {
	case score >= t.Exact:
		return MatchExact
	case score >= t.Paraphrase:
		return MatchParaphrase
	default:
		return MatchPartial
	}
}

const (
	defaultRelatedLimit     = 10
	defaultDuplicateCutoff  = 0.3
	defaultConsolidationMin = 0.7
)

func sortRankedDesc(notes []RankedNote) {
	sort.SliceStable(notes, func(i, j int) bool {
		return notes[i].Score > notes[j].Score
	})
}

func sortDuplicatesDesc(matches []DuplicateMatch) {
	sort.SliceStable(matches, func(i, j int) bool {
		return matches[i].SimilarityScore > matches[j].SimilarityScore
	})
}

func sortTagsDesc(matches []TagMatch) {
	sort.SliceStable(matches, func(i, j int) bool {
		return matches[i].Score > matches[j].Score
	})
}

func truncateRanked(notes []RankedNote, limit int) []RankedNote {
	if limit <= 0 {
		limit = defaultRelatedLimit
	}
	if len(notes) > limit {
		return notes[:limit]
	}
	return notes
}
