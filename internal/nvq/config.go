package nvq

import "regexp"

// Config holds the pattern sets and per-component minimums for scoring.
// Zero values fall back to the defaults below.
type Config struct {
	// FunctionalPrefixes mark action-oriented tags, e.g. "task/".
	FunctionalPrefixes []string
	// SynthesisPhrases indicate original synthesis rather than capture.
	SynthesisPhrases []string
	// UpwardTypes and SidewaysTypes classify connections.
	UpwardTypes   []string
	SidewaysTypes []string
	// HierarchyMarkers in a connection target imply an upward link even
	// without an explicit type.
	HierarchyMarkers []string
	// MaxTags is the tag count above which the taxonomy score is
	// penalized by one point.
	MaxTags int
	// Minimums are the per-component floors reported in
	// FailingComponents. Diagnostics only; the verdict is total-based.
	Minimums map[Component]int
	// PassTotal is the total at or above which a note passes.
	PassTotal int
}

// Component names one of the five scoring axes.
type Component string

const (
	ComponentWhy          Component = "why"
	ComponentMetadata     Component = "metadata"
	ComponentTaxonomy     Component = "taxonomy"
	ComponentConnectivity Component = "connectivity"
	ComponentOriginality  Component = "originality"
)

// DefaultConfig returns the rubric defaults.
func DefaultConfig() Config {
	return Config{
		FunctionalPrefixes: []string{
			"task/", "skill/", "insight/", "project/", "decision/",
			"evolution/", "habit/", "question/",
		},
		SynthesisPhrases: []string{
			"i realized", "this means", "my takeaway", "which suggests",
			"connecting this", "i now think", "the pattern here",
		},
		UpwardTypes:      []string{"part_of", "belongs_to", "child_of"},
		SidewaysTypes:    []string{"related", "extends", "supports", "contrasts"},
		HierarchyMarkers: []string{"project/", "area/"},
		MaxTags:          5,
		Minimums: map[Component]int{
			ComponentWhy:          1,
			ComponentMetadata:     1,
			ComponentTaxonomy:     1,
			ComponentConnectivity: 1,
			ComponentOriginality:  0,
		},
		PassTotal: 7,
	}
}

var (
	firstPersonRe = regexp.MustCompile(`(?i)\b(i|my|me|we|our)\b`)
	purposeRe     = regexp.MustCompile(`(?i)\b(so that|because|in order to|the point is|purpose:)\b`)
	actionableRe  = regexp.MustCompile(`(?i)\b(use|apply|try|build|review|avoid|start|stop|practice|schedule|ask|write|measure)\b`)
)
