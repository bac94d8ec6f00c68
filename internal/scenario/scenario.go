/*
Package scenario defines the static ground-truth inputs the harness
evaluates against: seed notes and tags, the documents to process, the
candidates a deterministic mock extraction yields, and the expected
outcome per document. Scenario definitions are read-only.
*/
package scenario

import (
	"github.com/notewell/notewell/types"
)

// ExpectedConnection describes one connection the ground truth expects,
// matched against actual connections by target pattern and accepted types.
type ExpectedConnection struct {
	TargetPattern string   `yaml:"targetPattern" validate:"required"`
	Types         []string `yaml:"types,omitempty"`
}

// ExpectedNote is the hand-authored expectation for one extracted note.
type ExpectedNote struct {
	// TitlePatterns match the extracted note this expectation refers to;
	// any case-insensitive substring match counts.
	TitlePatterns []string `yaml:"titlePatterns" validate:"min=1"`
	// RequiredPhrases must all appear in the extracted content.
	RequiredPhrases []string `yaml:"requiredPhrases,omitempty"`
	// ShouldConsolidateWith names the existing note the candidate should
	// merge into; empty means a new note is the right outcome.
	ShouldConsolidateWith string `yaml:"shouldConsolidateWith,omitempty"`
	// ExpectedTags the note should carry (normalized comparison).
	ExpectedTags []string `yaml:"expectedTags,omitempty"`
	// ExpectedConnections the note should make.
	ExpectedConnections []ExpectedConnection `yaml:"expectedConnections,omitempty"`
}

// DocumentCase pairs one input document with the candidates a mock
// extraction yields for it and the expected outcome.
type DocumentCase struct {
	Document   types.Document        `yaml:"document" validate:"required"`
	Candidates []types.CandidateNote `yaml:"candidates" validate:"min=1,dive"`
	Expected   []ExpectedNote        `yaml:"expected" validate:"min=1,dive"`
}

// Scenario is one complete evaluation case.
type Scenario struct {
	Name          string               `yaml:"name" validate:"required"`
	Description   string               `yaml:"description,omitempty"`
	ExistingNotes []types.ExistingNote `yaml:"existingNotes,omitempty"`
	ExistingTags  []string             `yaml:"existingTags,omitempty"`
	Documents     []DocumentCase       `yaml:"documents" validate:"min=1,dive"`
}

// TagPool returns the scenario's seed tags plus every tag on a seed note.
func (s *Scenario) TagPool() []string {
	seen := make(map[string]struct{})
	var pool []string
	add := func(tag string) {
		if _, ok := seen[tag]; !ok {
			seen[tag] = struct{}{}
			pool = append(pool, tag)
		}
	}
	for _, t := range s.ExistingTags {
		add(t)
	}
	for _, n := range s.ExistingNotes {
		for _, t := range n.Tags {
			add(t)
		}
	}
	return pool
}

// Reversed returns a copy of the scenario with document order reversed.
// Used to probe order sensitivity: the pool a document matches against is
// built from the documents before it.
func (s *Scenario) Reversed() Scenario {
	out := *s
	out.Name = s.Name + "-reversed"
	out.Documents = make([]DocumentCase, len(s.Documents))
	for i, d := range s.Documents {
		out.Documents[len(s.Documents)-1-i] = d
	}
	return out
}
