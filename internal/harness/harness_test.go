package harness

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/notewell/notewell/internal/nvq"
	"github.com/notewell/notewell/internal/scenario"
	"github.com/notewell/notewell/internal/strategy"
	"github.com/notewell/notewell/types"
)

func journalWeek(t *testing.T) scenario.Scenario {
	t.Helper()
	s, err := scenario.ByName("journal-week")
	require.NoError(t, err)
	return s
}

func findNote(notes []types.ExtractedNoteResult, title string) (types.ExtractedNoteResult, bool) {
	for _, n := range notes {
		if n.Title == title {
			return n, true
		}
	}
	return types.ExtractedNoteResult{}, false
}

func TestRunJournalWeekLexical(t *testing.T) {
	scn := journalWeek(t)
	h := New(NewMockExtractor(scn), Options{})

	result := h.Run(context.Background(), scn, strategy.NewLexical())
	require.Empty(t, result.Metrics.Error)
	require.Len(t, result.Notes, 3)

	batch, ok := findNote(result.Notes, "Batch message checking")
	require.True(t, ok)
	assert.False(t, batch.Consolidated(), "monday's note is new")

	morning, ok := findNote(result.Notes, "Guard the morning block")
	require.True(t, ok)
	assert.Equal(t, "Deep work mornings", morning.ConsolidatedWith)
	assert.Contains(t, morning.MergedContent, "Additional insight:")

	// Friday's restatement consolidates into the note monday created,
	// which only exists because documents run in order.
	friday, ok := findNote(result.Notes, "Fixed-time message checks")
	require.True(t, ok)
	assert.Equal(t, "Batch message checking", friday.ConsolidatedWith)

	m := result.Metrics
	assert.Equal(t, 2, m.TruePositives)
	assert.Equal(t, 1, m.TrueNegatives)
	assert.Equal(t, 2, m.ConsolidationsCorrect)
	assert.Equal(t, 1, m.CorrectlyCreatedNew)
	assert.Equal(t, 3, m.DocumentsProcessed)
	assert.Equal(t, "journal-week", m.Scenario)
	assert.Equal(t, "lexical", m.Strategy)
}

// Reversing document order removes monday's note from friday's pool, so
// the same candidate resolves differently.
func TestRunOrderSensitivity(t *testing.T) {
	scn := journalWeek(t)
	h := New(NewMockExtractor(scn), Options{})

	reversed := scn.Reversed()
	result := h.Run(context.Background(), reversed, strategy.NewLexical())
	require.Empty(t, result.Metrics.Error)

	friday, ok := findNote(result.Notes, "Fixed-time message checks")
	require.True(t, ok)
	assert.False(t, friday.Consolidated(), "nothing to consolidate into yet")

	// Monday's candidate now matches the note friday created instead of
	// being the new one.
	batch, ok := findNote(result.Notes, "Batch message checking")
	require.True(t, ok)
	assert.Equal(t, "Fixed-time message checks", batch.ConsolidatedWith)

	m := result.Metrics
	assert.Equal(t, 1, m.FalseNegatives)
	assert.Equal(t, 1, m.FalsePositives)
	assert.Less(t, m.ConsolidationAccuracy(), 1.0)
}

func TestRunWithQualityScoring(t *testing.T) {
	scn := journalWeek(t)
	h := New(NewMockExtractor(scn), Options{Quality: nvq.NewScorer(nvq.Config{})})

	result := h.Run(context.Background(), scn, strategy.NewLexical())
	require.NotNil(t, result.Quality)
	assert.Len(t, result.Quality.Scores, 3)
	assert.GreaterOrEqual(t, result.Quality.Passed, 1, "monday's note scores a full rubric")
	assert.Greater(t, result.Quality.AverageTotal(), 0.0)
}

type failingExtractor struct{}

func (failingExtractor) Extract(context.Context, types.Document, []strategy.RankedNote) ([]types.CandidateNote, error) {
	return nil, errors.New("extractor offline")
}

func TestRunFailureYieldsZeroMetrics(t *testing.T) {
	scn := journalWeek(t)
	h := New(failingExtractor{}, Options{})

	result := h.Run(context.Background(), scn, strategy.NewLexical())
	assert.Contains(t, result.Metrics.Error, "extractor offline")
	assert.Zero(t, result.Metrics.TruePositives)
	assert.Zero(t, result.Metrics.NotesExtracted)
	assert.Empty(t, result.Notes)
}

type panickingStrategy struct {
	*strategy.Lexical
}

func (panickingStrategy) FindRelatedNotes(context.Context, string, []types.ExistingNote, strategy.RelatedOptions) ([]strategy.RankedNote, error) {
	panic("index out of range")
}

func TestRunRecoversFromPanic(t *testing.T) {
	scn := journalWeek(t)
	h := New(NewMockExtractor(scn), Options{})

	result := h.Run(context.Background(), scn, panickingStrategy{strategy.NewLexical()})
	assert.Equal(t, "journal-week", result.Scenario)
	assert.Equal(t, "lexical", result.Strategy)
	assert.Contains(t, result.Metrics.Error, "panic")
	assert.Contains(t, result.Metrics.Error, "index out of range")
	assert.Zero(t, result.Metrics.TruePositives)
	assert.Empty(t, result.Notes)
	assert.Nil(t, result.Quality)
}

func TestRunAllIsolatesFailures(t *testing.T) {
	scn := journalWeek(t)
	good := New(NewMockExtractor(scn), Options{})

	// One pair uses a scenario the mock has no candidates for.
	broken := scn
	broken.Name = "journal-week-broken"
	broken.Documents = append([]scenario.DocumentCase{}, scn.Documents...)
	broken.Documents[0].Document.ID = "doc-unknown"

	results := good.RunAll(context.Background(), []Pair{
		{Scenario: scn, Strategy: strategy.NewLexical()},
		{Scenario: broken, Strategy: strategy.NewLexical()},
	})
	require.Len(t, results, 2)
	assert.Empty(t, results[0].Metrics.Error)
	assert.Equal(t, 2, results[0].Metrics.TruePositives)
	assert.NotEmpty(t, results[1].Metrics.Error)
	assert.Zero(t, results[1].Metrics.TruePositives)
}

func TestMockExtractorUnknownDocument(t *testing.T) {
	scn := journalWeek(t)
	m := NewMockExtractor(scn)

	_, err := m.Extract(context.Background(), types.Document{ID: "doc-unknown"}, nil)
	assert.Error(t, err)
}

func TestParseCandidates(t *testing.T) {
	raw := "```json\n[{\"title\": \"A\", \"content\": \"b\", \"tags\": [\"task/x\"]}]\n```"
	candidates, err := parseCandidates(raw)
	require.NoError(t, err)
	require.Len(t, candidates, 1)
	assert.Equal(t, "A", candidates[0].Title)
	assert.Equal(t, []string{"task/x"}, candidates[0].Tags)

	_, err = parseCandidates("not json")
	assert.Error(t, err)
}
