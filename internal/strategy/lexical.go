package strategy

import (
	"context"
	"strings"

	"github.com/notewell/notewell/internal/textsim"
	"github.com/notewell/notewell/types"
)

// titleHitWeight weights keyword hits in a note title double those in the
// body: a title match is a stronger relevance signal.
const titleHitWeight = 2

// Lexical matches purely on surface text: keyword frequency ranking for
// relatedness, keyword plus 3-gram overlap for duplicates, and normalized
// string comparison for tags. It needs no credentials and no network.
type Lexical struct {
	keywordOpts textsim.KeywordOptions
	tiers       matchTiers
	threshold   float64
}

// NewLexical builds the lexical strategy with its default thresholds.
func NewLexical() *Lexical {
	return &Lexical{
		keywordOpts: textsim.KeywordOptions{},
		tiers:       matchTiers{Exact: 0.9, Paraphrase: 0.7},
		threshold:   defaultConsolidationMin,
	}
}

func (l *Lexical) Name() string                         { return "lexical" }
func (l *Lexical) Initialize(ctx context.Context) error { return nil }
func (l *Lexical) Cleanup()                             {}
func (l *Lexical) ConsolidationThreshold() float64      { return l.threshold }

// FindRelatedNotes ranks existing notes by weighted keyword hits against
// the document's top keywords.
func (l *Lexical) FindRelatedNotes(ctx context.Context, content string, existing []types.ExistingNote, opts RelatedOptions) ([]RankedNote, error) {
	if len(existing) == 0 {
		return nil, nil
	}

	keywords := textsim.ExtractKeywords(content, l.keywordOpts)
	if len(keywords) == 0 {
		return nil, nil
	}

	var ranked []RankedNote
	for _, note := range existing {
		score := l.keywordScore(keywords, note.Title, note.Content)
		if score <= 0 || score < opts.MinScore {
			continue
		}
		ranked = append(ranked, RankedNote{
			ID:           note.ID,
			Title:        note.Title,
			Content:      note.Content,
			Score:        score,
			KeywordScore: score,
		})
	}

	sortRankedDesc(ranked)
	return truncateRanked(ranked, opts.Limit), nil
}

// keywordScore scores one note against the extracted keywords, normalized
// to [0,1] by the maximum attainable weighted hit count.
func (l *Lexical) keywordScore(keywords []string, title, content string) float64 {
	lowerTitle := strings.ToLower(title)
	lowerContent := strings.ToLower(content)

	hits := 0
	for _, kw := range keywords {
		if strings.Contains(lowerTitle, kw) {
			hits += titleHitWeight
		}
		if strings.Contains(lowerContent, kw) {
			hits++
		}
	}
	max := (titleHitWeight + 1) * len(keywords)
	if max == 0 {
		return 0
	}
	return float64(hits) / float64(max)
}

// DetectDuplicates blends keyword-set overlap with 3-gram overlap. The
// n-gram signal dominates because it catches verbatim copying that
// bag-of-words scoring under-weights on long text.
func (l *Lexical) DetectDuplicates(ctx context.Context, content string, existing []types.ExistingNote, opts DuplicateOptions) ([]DuplicateMatch, error) {
	if len(existing) == 0 {
		return nil, nil
	}

	minScore := opts.MinScore
	if minScore <= 0 {
		minScore = defaultDuplicateCutoff
	}

	var matches []DuplicateMatch
	for _, note := range existing {
		score := l.duplicateScore(content, note.Content)
		if score < minScore {
			continue
		}
		matches = append(matches, DuplicateMatch{
			NoteID:          note.ID,
			NoteTitle:       note.Title,
			SimilarityScore: score,
			MatchType:       l.tiers.classify(score),
		})
	}

	sortDuplicatesDesc(matches)
	return matches, nil
}

func (l *Lexical) duplicateScore(a, b string) float64 {
	kw := textsim.Jaccard(a, b)
	ng := textsim.NGramOverlap(a, b, 3)
	blended := 0.4*kw + 0.6*ng
	if kw > blended {
		return kw
	}
	return blended
}

// FindSimilarTags compares a candidate tag against the existing tag set.
// Exact case-insensitive match scores 1.0 and ranks first; normalized
// equality and substring containment come next, with character-multiset
// overlap as the last-resort signal.
func (l *Lexical) FindSimilarTags(ctx context.Context, tag string, existingTags []string) ([]TagMatch, error) {
	if len(existingTags) == 0 {
		return nil, nil
	}

	lowerTag := strings.ToLower(tag)
	normTag := textsim.NormalizeTag(tag)

	// Exact matches are pinned to the front: character overlap can score
	// 1.0 on an anagram tag, and the exact match must still rank first.
	var exact, similar []TagMatch
	for _, existing := range existingTags {
		lowerExisting := strings.ToLower(existing)
		if lowerExisting == lowerTag {
			exact = append(exact, TagMatch{Tag: existing, Score: 1.0})
			continue
		}

		var score float64
		switch {
		case textsim.NormalizeTag(existing) == normTag:
			score = 0.9
		case strings.Contains(lowerExisting, lowerTag) || strings.Contains(lowerTag, lowerExisting):
			score = 0.8
		default:
			score = textsim.CharOverlap(lowerTag, lowerExisting)
		}

		if score >= 0.5 {
			similar = append(similar, TagMatch{Tag: existing, Score: score})
		}
	}

	sortTagsDesc(similar)
	return append(exact, similar...), nil
}
