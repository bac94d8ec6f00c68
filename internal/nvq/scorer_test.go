package nvq

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/notewell/notewell/types"
)

func TestPerfectNoteScoresTen(t *testing.T) {
	s := NewScorer(Config{})
	note := types.CandidateNote{
		Title:   "Batch my code reviews",
		Content: "I batch code reviews into two windows so that I protect focus time. I realized context switching was costing me entire mornings. Start by blocking the calendar.",
		Tags:    []string{"habit/focus", "insight/scheduling"},
		Metadata: types.NoteMetadata{
			Status:      "active",
			Type:        "habit",
			Stakeholder: "me",
			Project:     "deep-work",
		},
		Connections: []types.Connection{
			{Target: "project/deep-work", Type: "part_of"},
			{Target: "Context switching costs", Type: "related"},
		},
	}

	got := s.Score(note)
	assert.Equal(t, 10, got.Total)
	assert.Equal(t, Breakdown{Why: 3, Metadata: 2, Taxonomy: 2, Connectivity: 2, Originality: 1}, got.Breakdown)
	assert.True(t, got.Passing)
	assert.Empty(t, got.FailingComponents)
}

func TestBareNoteFails(t *testing.T) {
	s := NewScorer(Config{})
	// No metadata, no tags, no connections: only the why axis can score,
	// so the total is at most 3 and the note always fails.
	note := types.CandidateNote{
		Title:   "Standup notes",
		Content: "I should review the deploy process because it keeps breaking.",
	}

	got := s.Score(note)
	assert.Equal(t, got.Breakdown.Why, got.Total)
	assert.LessOrEqual(t, got.Total, 3)
	assert.False(t, got.Passing)
	assert.NotEmpty(t, got.FailingComponents)
}

func TestTotalEqualsComponentSum(t *testing.T) {
	s := NewScorer(Config{})
	notes := []types.CandidateNote{
		{},
		{Content: "I realized this means something.", Tags: []string{"topic"}},
		{
			Content:     "We use spaced repetition so that recall improves.",
			Tags:        []string{"skill/learning", "task/review", "extra", "more", "again", "sixth"},
			Metadata:    types.NoteMetadata{Status: "active", Type: "insight"},
			Connections: []types.Connection{{Target: "project/learning"}},
		},
	}

	for _, note := range notes {
		got := s.Score(note)
		b := got.Breakdown
		sum := b.Why + b.Metadata + b.Taxonomy + b.Connectivity + b.Originality
		assert.Equal(t, sum, got.Total)
		assert.GreaterOrEqual(t, got.Total, 0)
		assert.LessOrEqual(t, got.Total, 10)
		assert.Equal(t, got.Total >= 7, got.Passing, "verdict depends solely on the total")
	}
}

func TestTaxonomy(t *testing.T) {
	s := NewScorer(Config{})

	tests := []struct {
		name string
		tags []string
		want int
	}{
		{"no tags", nil, 0},
		{"all functional", []string{"task/x", "skill/y"}, 2},
		{"mixed", []string{"task/x", "golang"}, 1},
		{"no functional", []string{"golang", "notes"}, 0},
		{"sprawl penalty", []string{"task/a", "task/b", "task/c", "task/d", "task/e", "task/f"}, 1},
		{"penalty floors at zero", []string{"a", "b", "c", "d", "e", "f"}, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, s.scoreTaxonomy(tt.tags))
		})
	}
}

func TestConnectivity(t *testing.T) {
	s := NewScorer(Config{})

	upward := types.Connection{Target: "project/deep-work"}
	typedUpward := types.Connection{Target: "Deep work", Type: "part_of"}
	sideways := types.Connection{Target: "Another note", Type: "extends"}
	untyped := types.Connection{Target: "Another note"}

	assert.Equal(t, 2, s.scoreConnectivity([]types.Connection{upward, sideways}))
	assert.Equal(t, 1, s.scoreConnectivity([]types.Connection{typedUpward}))
	assert.Equal(t, 1, s.scoreConnectivity([]types.Connection{sideways}))
	assert.Equal(t, 0, s.scoreConnectivity([]types.Connection{untyped}))
	assert.Equal(t, 0, s.scoreConnectivity(nil))
}

func TestMetadataTiers(t *testing.T) {
	s := NewScorer(Config{})

	assert.Equal(t, 0, s.scoreMetadata(types.NoteMetadata{}))
	assert.Equal(t, 0, s.scoreMetadata(types.NoteMetadata{Status: "active"}))
	assert.Equal(t, 1, s.scoreMetadata(types.NoteMetadata{Status: "active", Type: "habit"}))
	assert.Equal(t, 2, s.scoreMetadata(types.NoteMetadata{Status: "active", Type: "habit", Project: "p"}))
}
