/*
Package consolidate turns ranked duplicate candidates into a
consolidate-or-create decision. Consolidation merges a newly extracted note
into an existing one by appending its content as an additional insight;
existing content is never overwritten.
*/
package consolidate

import (
	"github.com/notewell/notewell/internal/strategy"
	"github.com/notewell/notewell/types"
)

// DefaultThreshold is the similarity above which a candidate merges into
// its best duplicate match instead of becoming a new note.
const DefaultThreshold = 0.7

// Decision is the outcome for one candidate note.
type Decision struct {
	// Consolidate is true when the candidate merges into an existing note.
	Consolidate bool
	// Target identifies the existing note absorbing the candidate.
	Target strategy.DuplicateMatch
	// MergedContent is the existing content with the candidate appended.
	MergedContent string
}

// Decide applies the consolidation rule: if the best duplicate match meets
// the threshold, merge into it; otherwise create a new note. Matches are
// expected in descending similarity order, as strategies return them.
// Raising the threshold can only reduce consolidations, never add them.
func Decide(candidate types.CandidateNote, matches []strategy.DuplicateMatch, threshold float64, existingContent func(noteID string) string) Decision {
	if threshold <= 0 {
		threshold = DefaultThreshold
	}
	if len(matches) == 0 {
		return Decision{}
	}

	best := matches[0]
	for _, m := range matches[1:] {
		if m.SimilarityScore > best.SimilarityScore {
			best = m
		}
	}
	if best.SimilarityScore < threshold {
		return Decision{}
	}

	existing := ""
	if existingContent != nil {
		existing = existingContent(best.NoteID)
	}

	return Decision{
		Consolidate:   true,
		Target:        best,
		MergedContent: Merge(existing, candidate.Content),
	}
}

// Merge appends new content to existing content as an additional insight.
func Merge(existing, addition string) string {
	if existing == "" {
		return addition
	}
	return existing + "\n\n---\nAdditional insight: " + addition
}

// Apply converts a candidate plus its decision into the final extraction
// result.
func Apply(candidate types.CandidateNote, d Decision) types.ExtractedNoteResult {
	result := types.ExtractedNoteResult{
		Title:       candidate.Title,
		Content:     candidate.Content,
		Tags:        candidate.Tags,
		Metadata:    candidate.Metadata,
		Connections: candidate.Connections,
	}
	if d.Consolidate {
		result.ConsolidatedWith = d.Target.NoteTitle
		result.MergedContent = d.MergedContent
	}
	return result
}
