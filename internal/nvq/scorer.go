/*
Package nvq scores one candidate note on the five-component note-quality
rubric: why (0-3), metadata (0-2), taxonomy (0-2), connectivity (0-2),
originality (0-1). Total 0-10, passing at 7. Scoring is a pure function of
the note; nothing here is persisted as a source of truth.
*/
package nvq

import (
	"strings"

	"github.com/notewell/notewell/types"
)

// Breakdown holds the per-component scores.
type Breakdown struct {
	Why          int `json:"why"`
	Metadata     int `json:"metadata"`
	Taxonomy     int `json:"taxonomy"`
	Connectivity int `json:"connectivity"`
	Originality  int `json:"originality"`
}

// Score is the rubric result for one note.
type Score struct {
	Total             int         `json:"total"`
	Breakdown         Breakdown   `json:"breakdown"`
	Passing           bool        `json:"passing"`
	FailingComponents []Component `json:"failingComponents,omitempty"`
}

// Scorer evaluates candidate notes against a Config.
type Scorer struct {
	cfg Config
}

// NewScorer builds a scorer; zero-value config fields take defaults.
func NewScorer(cfg Config) *Scorer {
	defaults := DefaultConfig()
	if len(cfg.FunctionalPrefixes) == 0 {
		cfg.FunctionalPrefixes = defaults.FunctionalPrefixes
	}
	if len(cfg.SynthesisPhrases) == 0 {
		cfg.SynthesisPhrases = defaults.SynthesisPhrases
	}
	if len(cfg.UpwardTypes) == 0 {
		cfg.UpwardTypes = defaults.UpwardTypes
	}
	if len(cfg.SidewaysTypes) == 0 {
		cfg.SidewaysTypes = defaults.SidewaysTypes
	}
	if len(cfg.HierarchyMarkers) == 0 {
		cfg.HierarchyMarkers = defaults.HierarchyMarkers
	}
	if cfg.MaxTags == 0 {
		cfg.MaxTags = defaults.MaxTags
	}
	if cfg.Minimums == nil {
		cfg.Minimums = defaults.Minimums
	}
	if cfg.PassTotal == 0 {
		cfg.PassTotal = defaults.PassTotal
	}
	return &Scorer{cfg: cfg}
}

// Score evaluates one candidate note. The five components are independent
// and additive; the verdict depends solely on the total.
func (s *Scorer) Score(note types.CandidateNote) Score {
	b := Breakdown{
		Why:          s.scoreWhy(note),
		Metadata:     s.scoreMetadata(note.Metadata),
		Taxonomy:     s.scoreTaxonomy(note.Tags),
		Connectivity: s.scoreConnectivity(note.Connections),
		Originality:  s.scoreOriginality(note.Content),
	}
	total := b.Why + b.Metadata + b.Taxonomy + b.Connectivity + b.Originality

	return Score{
		Total:             total,
		Breakdown:         b,
		Passing:           total >= s.cfg.PassTotal,
		FailingComponents: s.failing(b),
	}
}

// scoreWhy awards one point each for first-person voice, an explicit
// purpose, and actionable language.
func (s *Scorer) scoreWhy(note types.CandidateNote) int {
	text := note.Title + " " + note.Content

	score := 0
	if firstPersonRe.MatchString(text) {
		score++
	}
	if note.Metadata.Purpose != "" || purposeRe.MatchString(text) {
		score++
	}
	if actionableRe.MatchString(text) {
		score++
	}
	return score
}

// scoreMetadata counts populated fields among status, type, stakeholder,
// and project.
func (s *Scorer) scoreMetadata(md types.NoteMetadata) int {
	populated := 0
	for _, v := range []string{md.Status, md.Type, md.Stakeholder, md.Project} {
		if strings.TrimSpace(v) != "" {
			populated++
		}
	}
	switch {
	case populated >= 3:
		return 2
	case populated >= 2:
		return 1
	default:
		return 0
	}
}

// scoreTaxonomy rewards functional tags over topic tags and penalizes tag
// sprawl.
func (s *Scorer) scoreTaxonomy(tags []string) int {
	if len(tags) == 0 {
		return 0
	}

	functional := 0
	for _, tag := range tags {
		if s.isFunctional(tag) {
			functional++
		}
	}

	var score int
	switch {
	case functional == len(tags):
		score = 2
	case functional >= 1:
		score = 1
	default:
		score = 0
	}

	if len(tags) > s.cfg.MaxTags {
		score--
	}
	if score < 0 {
		score = 0
	}
	return score
}

func (s *Scorer) isFunctional(tag string) bool {
	lower := strings.ToLower(tag)
	for _, prefix := range s.cfg.FunctionalPrefixes {
		if strings.HasPrefix(lower, prefix) {
			return true
		}
	}
	return false
}

// scoreConnectivity rewards notes linked both upward into a hierarchy and
// sideways to peers.
func (s *Scorer) scoreConnectivity(conns []types.Connection) int {
	upward, sideways := false, false
	for _, c := range conns {
		if s.isUpward(c) {
			upward = true
		} else if s.isSideways(c) {
			sideways = true
		}
	}
	switch {
	case upward && sideways:
		return 2
	case upward || sideways:
		return 1
	default:
		return 0
	}
}

func (s *Scorer) isUpward(c types.Connection) bool {
	lowerType := strings.ToLower(c.Type)
	for _, t := range s.cfg.UpwardTypes {
		if lowerType == t {
			return true
		}
	}
	lowerTarget := strings.ToLower(c.Target)
	for _, marker := range s.cfg.HierarchyMarkers {
		if strings.Contains(lowerTarget, marker) {
			return true
		}
	}
	return false
}

func (s *Scorer) isSideways(c types.Connection) bool {
	lowerType := strings.ToLower(c.Type)
	for _, t := range s.cfg.SidewaysTypes {
		if lowerType == t {
			return true
		}
	}
	return false
}

// scoreOriginality awards a point when the note contains a synthesis
// indicator phrase.
func (s *Scorer) scoreOriginality(content string) int {
	lower := strings.ToLower(content)
	for _, phrase := range s.cfg.SynthesisPhrases {
		if strings.Contains(lower, phrase) {
			return 1
		}
	}
	return 0
}

func (s *Scorer) failing(b Breakdown) []Component {
	var failing []Component
	check := func(c Component, score int) {
		if min, ok := s.cfg.Minimums[c]; ok && score < min {
			failing = append(failing, c)
		}
	}
	check(ComponentWhy, b.Why)
	check(ComponentMetadata, b.Metadata)
	check(ComponentTaxonomy, b.Taxonomy)
	check(ComponentConnectivity, b.Connectivity)
	check(ComponentOriginality, b.Originality)
	return failing
}
