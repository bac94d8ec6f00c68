package metrics

import (
	"strings"
	"time"

	"github.com/notewell/notewell/internal/scenario"
	"github.com/notewell/notewell/internal/textsim"
	"github.com/notewell/notewell/types"
)

// tagSynonyms maps normalized tag forms that name the same concept to a
// shared canonical form.
var tagSynonyms = map[string]string{
	"todo":            "task",
	"task":            "task",
	"ml":              "machinelearning",
	"machinelearning": "machinelearning",
	"kb":              "knowledgebase",
	"knowledgebase":   "knowledgebase",
}

func canonicalTag(tag string) string {
	n := textsim.NormalizeTag(tag)
	if c, ok := tagSynonyms[n]; ok {
		return c
	}
	return n
}

// Calculate scores one run's extracted notes against the ground truth.
// poolTags is the scenario's seed tag pool; elapsed is the wall time the
// run took.
func Calculate(actual []types.ExtractedNoteResult, expected []scenario.ExpectedNote, poolTags []string, elapsed time.Duration) ExtractionMetrics {
	m := ExtractionMetrics{
		NotesExtracted: len(actual),
		Duration:       elapsed,
	}

	claimed := make([]bool, len(actual))
	for _, exp := range expected {
		idx := pairExpectation(exp, actual, claimed)
		if idx < 0 {
			m.ExpectationsMissed++
			if exp.ShouldConsolidateWith != "" {
				m.FalseNegatives++
				m.ConsolidationsMissed++
			}
			continue
		}
		claimed[idx] = true
		note := actual[idx]

		scoreConsolidation(&m, exp, note)
		scorePhrases(&m, exp, note)
		scoreExpectedTags(&m, exp, note)
		scoreConnections(&m, exp, note)
	}

	for _, note := range actual {
		if note.Consolidated() {
			m.NotesConsolidated++
		}
		scoreTagReuse(&m, note, poolTags)
	}

	return m
}

// pairExpectation finds the first unclaimed extracted note whose title
// contains any of the expectation's patterns, case-insensitively.
func pairExpectation(exp scenario.ExpectedNote, actual []types.ExtractedNoteResult, claimed []bool) int {
	for i, note := range actual {
		if claimed[i] {
			continue
		}
		title := strings.ToLower(note.Title)
		for _, pattern := range exp.TitlePatterns {
			if strings.Contains(title, strings.ToLower(pattern)) {
				return i
			}
		}
	}
	return -1
}

func scoreConsolidation(m *ExtractionMetrics, exp scenario.ExpectedNote, note types.ExtractedNoteResult) {
	wantTarget := exp.ShouldConsolidateWith
	switch {
	case wantTarget != "" && note.Consolidated():
		m.TruePositives++
		if strings.EqualFold(note.ConsolidatedWith, wantTarget) {
			m.ConsolidationsCorrect++
		} else {
			m.ConsolidationsWrongTarget++
		}
	case wantTarget != "" && !note.Consolidated():
		m.FalseNegatives++
		m.ConsolidationsMissed++
	case wantTarget == "" && note.Consolidated():
		m.FalsePositives++
		m.ConsolidationsWrongTarget++
	default:
		m.TrueNegatives++
		m.CorrectlyCreatedNew++
	}
}

func scorePhrases(m *ExtractionMetrics, exp scenario.ExpectedNote, note types.ExtractedNoteResult) {
	content := strings.ToLower(note.Content)
	if note.MergedContent != "" {
		content = strings.ToLower(note.MergedContent)
	}
	for _, phrase := range exp.RequiredPhrases {
		if strings.Contains(content, strings.ToLower(phrase)) {
			m.PhrasesMatched++
		} else {
			m.PhrasesMissed++
		}
	}
}

func scoreExpectedTags(m *ExtractionMetrics, exp scenario.ExpectedNote, note types.ExtractedNoteResult) {
	have := make(map[string]struct{}, len(note.Tags))
	for _, t := range note.Tags {
		have[canonicalTag(t)] = struct{}{}
	}
	for _, want := range exp.ExpectedTags {
		if _, ok := have[canonicalTag(want)]; ok {
			m.ExpectedTagsMatched++
		} else {
			m.ExpectedTagsMissed++
		}
	}
}

// scoreConnections matches expected connections against the note's actual
// ones. Every unmatched actual counts spurious, including all of them when
// the expectation lists no connections at all.
func scoreConnections(m *ExtractionMetrics, exp scenario.ExpectedNote, note types.ExtractedNoteResult) {
	matchedActual := make([]bool, len(note.Connections))
	for _, want := range exp.ExpectedConnections {
		found := false
		for i, conn := range note.Connections {
			if matchedActual[i] {
				continue
			}
			if connectionMatches(want, conn) {
				matchedActual[i] = true
				found = true
				break
			}
		}
		if found {
			m.ConnectionsMatched++
		} else {
			m.ConnectionsMissed++
		}
	}
	for i := range note.Connections {
		if !matchedActual[i] {
			m.ConnectionsSpurious++
		}
	}
}

func connectionMatches(want scenario.ExpectedConnection, conn types.Connection) bool {
	if !strings.Contains(strings.ToLower(conn.Target), strings.ToLower(want.TargetPattern)) {
		return false
	}
	if len(want.Types) == 0 {
		return true
	}
	for _, t := range want.Types {
		if strings.EqualFold(t, conn.Type) {
			return true
		}
	}
	return false
}

// scoreTagReuse classifies each tag on an extracted note: an exact pool
// tag counts as reused; a new tag whose normalized or synonym form exists
// in the pool is a reuse the extraction should have made.
func scoreTagReuse(m *ExtractionMetrics, note types.ExtractedNoteResult, poolTags []string) {
	exact := make(map[string]struct{}, len(poolTags))
	canonical := make(map[string]struct{}, len(poolTags))
	for _, t := range poolTags {
		exact[strings.ToLower(t)] = struct{}{}
		canonical[canonicalTag(t)] = struct{}{}
	}

	for _, tag := range note.Tags {
		if _, ok := exact[strings.ToLower(tag)]; ok {
			m.TagsReused++
			continue
		}
		if _, ok := canonical[canonicalTag(tag)]; ok {
			m.TagsShouldHaveReused++
		}
	}
}
