/*
Package harness orchestrates one matching strategy across a scenario's
documents. Documents run strictly sequentially: notes extracted from
earlier documents join the pool later documents match against. Different
(scenario, strategy) pairs are independent and run concurrently.
*/
package harness

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/notewell/notewell/internal/consolidate"
	"github.com/notewell/notewell/internal/metrics"
	"github.com/notewell/notewell/internal/nvq"
	"github.com/notewell/notewell/internal/scenario"
	"github.com/notewell/notewell/internal/strategy"
	"github.com/notewell/notewell/types"
)

// Options configures a harness.
type Options struct {
	// Quality, when set, scores every candidate note on the NVQ rubric.
	Quality *nvq.Scorer
	Logger  *slog.Logger
}

// Harness runs (scenario, strategy) pairs and produces per-pair results.
type Harness struct {
	extractor Extractor
	quality   *nvq.Scorer
	logger    *slog.Logger
}

// New builds a harness around an extractor.
func New(extractor Extractor, opts Options) *Harness {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &Harness{
		extractor: extractor,
		quality:   opts.Quality,
		logger:    logger,
	}
}

// QualitySummary aggregates NVQ scores across one run's candidates.
type QualitySummary struct {
	Scores []nvq.Score `json:"scores"`
	Passed int         `json:"passed"`
}

// PassRate is the share of scored notes that pass the rubric, 0 when
// nothing was scored.
func (q QualitySummary) PassRate() float64 {
	if len(q.Scores) == 0 {
		return 0
	}
	return float64(q.Passed) / float64(len(q.Scores))
}

// AverageTotal is the mean rubric total, 0 when nothing was scored.
func (q QualitySummary) AverageTotal() float64 {
	if len(q.Scores) == 0 {
		return 0
	}
	sum := 0
	for _, s := range q.Scores {
		sum += s.Total
	}
	return float64(sum) / float64(len(q.Scores))
}

// Result is the outcome of one (scenario, strategy) run.
type Result struct {
	Scenario string                      `json:"scenario"`
	Strategy string                      `json:"strategy"`
	Metrics  metrics.ExtractionMetrics   `json:"metrics"`
	Notes    []types.ExtractedNoteResult `json:"notes,omitempty"`
	Quality  *QualitySummary             `json:"quality,omitempty"`
}

// Pair names one (scenario, strategy) run. Each pair owns its strategy
// instance; strategies are not shared across pairs.
type Pair struct {
	Scenario scenario.Scenario
	Strategy strategy.MatchingStrategy
}

// Run executes one scenario with one strategy. Any failure inside the run
// yields an all-zero-metrics result tagged with the error instead of
// propagating.
func (h *Harness) Run(ctx context.Context, scn scenario.Scenario, strat strategy.MatchingStrategy) (result Result) {
	result.Scenario = scn.Name
	result.Strategy = strat.Name()

	// The return value is named so these assignments survive the recover.
	defer func() {
		if r := recover(); r != nil {
			h.logger.Error("run panicked", "scenario", scn.Name, "strategy", strat.Name(), "panic", r)
			result.Metrics = metrics.Failed(scn.Name, strat.Name(), fmt.Errorf("panic: %v", r))
			result.Notes = nil
			result.Quality = nil
		}
	}()

	if err := strat.Initialize(ctx); err != nil {
		result.Metrics = metrics.Failed(scn.Name, strat.Name(), fmt.Errorf("initialize: %w", err))
		return result
	}
	defer strat.Cleanup()

	start := time.Now()
	notes, quality, err := h.processDocuments(ctx, scn, strat)
	if err != nil {
		result.Metrics = metrics.Failed(scn.Name, strat.Name(), err)
		return result
	}

	var expected []scenario.ExpectedNote
	for _, d := range scn.Documents {
		expected = append(expected, d.Expected...)
	}

	m := metrics.Calculate(notes, expected, scn.TagPool(), time.Since(start))
	m.Scenario = scn.Name
	m.Strategy = strat.Name()
	m.DocumentsProcessed = len(scn.Documents)

	result.Metrics = m
	result.Notes = notes
	result.Quality = quality
	return result
}

// processDocuments walks the scenario's documents in order, folding each
// non-consolidated note into the pool before the next document runs.
func (h *Harness) processDocuments(ctx context.Context, scn scenario.Scenario, strat strategy.MatchingStrategy) ([]types.ExtractedNoteResult, *QualitySummary, error) {
	pool := make([]types.ExistingNote, len(scn.ExistingNotes))
	copy(pool, scn.ExistingNotes)
	contentByID := make(map[string]string, len(pool))
	for _, n := range pool {
		contentByID[n.ID] = n.Content
	}
	tagPool := scn.TagPool()

	var notes []types.ExtractedNoteResult
	var quality *QualitySummary
	if h.quality != nil {
		quality = &QualitySummary{}
	}

	for _, docCase := range scn.Documents {
		doc := docCase.Document

		related, err := strat.FindRelatedNotes(ctx, doc.Content, pool, strategy.RelatedOptions{})
		if err != nil {
			return nil, nil, fmt.Errorf("document %q: find related notes: %w", doc.ID, err)
		}

		candidates, err := h.extractor.Extract(ctx, doc, related)
		if err != nil {
			return nil, nil, fmt.Errorf("document %q: extract: %w", doc.ID, err)
		}

		for _, candidate := range candidates {
			matches, err := strat.DetectDuplicates(ctx, candidate.Content, pool, strategy.DuplicateOptions{})
			if err != nil {
				return nil, nil, fmt.Errorf("document %q: detect duplicates: %w", doc.ID, err)
			}

			h.suggestTags(ctx, strat, candidate, tagPool)

			decision := consolidate.Decide(candidate, matches, strat.ConsolidationThreshold(), func(noteID string) string {
				return contentByID[noteID]
			})
			note := consolidate.Apply(candidate, decision)
			notes = append(notes, note)

			if quality != nil {
				score := h.quality.Score(candidate)
				quality.Scores = append(quality.Scores, score)
				if score.Passing {
					quality.Passed++
				}
			}

			if note.Consolidated() {
				h.logger.Debug("consolidated",
					"document", doc.ID, "candidate", candidate.Title,
					"into", note.ConsolidatedWith, "score", decision.Target.SimilarityScore)
				continue
			}

			added := types.ExistingNote{
				ID:      uuid.NewString(),
				Title:   candidate.Title,
				Content: candidate.Content,
				Tags:    candidate.Tags,
			}
			pool = append(pool, added)
			contentByID[added.ID] = added.Content
			tagPool = appendNewTags(tagPool, candidate.Tags)
		}
	}

	return notes, quality, nil
}

// suggestTags queries tag similarity for candidate tags not already in the
// pool. Suggestions are diagnostic; the candidate is not rewritten.
func (h *Harness) suggestTags(ctx context.Context, strat strategy.MatchingStrategy, candidate types.CandidateNote, tagPool []string) {
	known := make(map[string]struct{}, len(tagPool))
	for _, t := range tagPool {
		known[t] = struct{}{}
	}
	for _, tag := range candidate.Tags {
		if _, ok := known[tag]; ok {
			continue
		}
		similar, err := strat.FindSimilarTags(ctx, tag, tagPool)
		if err != nil || len(similar) == 0 {
			continue
		}
		h.logger.Debug("new tag has a close existing match",
			"candidate", candidate.Title, "tag", tag,
			"existing", similar[0].Tag, "score", similar[0].Score)
	}
}

func appendNewTags(tagPool, tags []string) []string {
	known := make(map[string]struct{}, len(tagPool))
	for _, t := range tagPool {
		known[t] = struct{}{}
	}
	for _, t := range tags {
		if _, ok := known[t]; !ok {
			tagPool = append(tagPool, t)
			known[t] = struct{}{}
		}
	}
	return tagPool
}

// RunAll executes every pair concurrently. Results come back in pair
// order; a failed pair carries its error in the metrics rather than
// aborting the batch.
func (h *Harness) RunAll(ctx context.Context, pairs []Pair) []Result {
	results := make([]Result, len(pairs))
	var wg sync.WaitGroup
	for i, p := range pairs {
		wg.Add(1)
		go func(i int, p Pair) {
			defer wg.Done()
			results[i] = h.Run(ctx, p.Scenario, p.Strategy)
		}(i, p)
	}
	wg.Wait()
	return results
}
