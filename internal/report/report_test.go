package report

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/notewell/notewell/internal/harness"
	"github.com/notewell/notewell/internal/metrics"
	"github.com/notewell/notewell/internal/nvq"
)

func run(scenarioName, strategyName string, m metrics.ExtractionMetrics) harness.Result {
	m.Scenario = scenarioName
	m.Strategy = strategyName
	return harness.Result{Scenario: scenarioName, Strategy: strategyName, Metrics: m}
}

func TestBuildAggregatesByCounterSums(t *testing.T) {
	results := []harness.Result{
		run("s1", "lexical", metrics.ExtractionMetrics{TruePositives: 3, FalseNegatives: 1, TagsReused: 9, TagsShouldHaveReused: 1, CorrectlyCreatedNew: 2}),
		run("s2", "lexical", metrics.ExtractionMetrics{TruePositives: 1, FalsePositives: 1, TagsShouldHaveReused: 1, ConsolidationsCorrect: 1}),
		run("s1", "hybrid", metrics.ExtractionMetrics{TruePositives: 4, TagsReused: 10, CorrectlyCreatedNew: 2, ConsolidationsCorrect: 2}),
	}

	c := Build(results)
	require.Len(t, c.Aggregates, 2)

	best, ok := c.Best()
	require.True(t, ok)
	assert.Equal(t, "hybrid", best.Strategy, "hybrid has perfect rates")
	assert.Equal(t, 1.0, best.Metrics.F1())

	var lexical StrategyAggregate
	for _, a := range c.Aggregates {
		if a.Strategy == "lexical" {
			lexical = a
		}
	}
	assert.Equal(t, 4, lexical.Metrics.TruePositives)
	assert.Equal(t, 1, lexical.Metrics.FalsePositives)
	assert.Equal(t, 1, lexical.Metrics.FalseNegatives)
	// 9/(9+2), not the mean of the per-scenario rates.
	assert.InDelta(t, 9.0/11.0, lexical.Metrics.TagReuseRate(), 1e-9)
	assert.Len(t, lexical.Runs, 2)
}

func TestEvaluateGate(t *testing.T) {
	passing := Build([]harness.Result{
		run("s1", "hybrid", metrics.ExtractionMetrics{
			TruePositives: 8, FalseNegatives: 1,
			ConsolidationsCorrect: 8, CorrectlyCreatedNew: 4, ConsolidationsMissed: 1,
			TagsReused: 9, TagsShouldHaveReused: 1,
		}),
	})
	gate := passing.Evaluate(DefaultThresholds())
	assert.True(t, gate.Passed, "failures: %v", gate.Failures)

	failing := Build([]harness.Result{
		run("s1", "lexical", metrics.ExtractionMetrics{
			TruePositives: 1, FalseNegatives: 4,
			ConsolidationsCorrect: 1, ConsolidationsMissed: 4,
			TagsReused: 1, TagsShouldHaveReused: 4,
		}),
	})
	gate = failing.Evaluate(DefaultThresholds())
	assert.False(t, gate.Passed)
	assert.NotEmpty(t, gate.Failures)

	empty := Comparison{}
	assert.False(t, empty.Evaluate(DefaultThresholds()).Passed)
}

func TestEvaluateGateNVQOnlyWhenScored(t *testing.T) {
	strong := metrics.ExtractionMetrics{
		TruePositives:         5,
		ConsolidationsCorrect: 5,
		TagsReused:            9,
	}

	// Without quality scoring the NVQ threshold does not apply.
	c := Build([]harness.Result{run("s1", "hybrid", strong)})
	assert.True(t, c.Evaluate(DefaultThresholds()).Passed)

	// With quality scoring a low pass rate fails the same metrics.
	r := run("s1", "hybrid", strong)
	r.Quality = &harness.QualitySummary{
		Scores: []nvq.Score{{Total: 8, Passing: true}, {Total: 4}, {Total: 3}},
		Passed: 1,
	}
	c = Build([]harness.Result{r})
	gate := c.Evaluate(DefaultThresholds())
	assert.False(t, gate.Passed)
	require.Len(t, gate.Failures, 1)
	assert.Contains(t, gate.Failures[0], "NVQ pass rate")
}

func TestRenderHuman(t *testing.T) {
	c := Build([]harness.Result{
		run("s1", "lexical", metrics.ExtractionMetrics{TruePositives: 2, ConsolidationsCorrect: 2, TagsReused: 3, NotesExtracted: 3}),
	})
	gate := c.Evaluate(DefaultThresholds())

	var buf bytes.Buffer
	Render(&buf, c, gate, false)
	out := buf.String()
	assert.Contains(t, out, "Strategy comparison")
	assert.Contains(t, out, "lexical")
	assert.Contains(t, out, "Gate: PASS")
}

func TestRenderCI(t *testing.T) {
	c := Build([]harness.Result{
		run("s1", "lexical", metrics.ExtractionMetrics{TruePositives: 1, FalseNegatives: 3, ConsolidationsMissed: 3, ConsolidationsCorrect: 1}),
	})
	gate := c.Evaluate(DefaultThresholds())

	var buf bytes.Buffer
	Render(&buf, c, gate, true)
	out := buf.String()
	assert.Contains(t, out, "strategy=lexical")
	assert.Contains(t, out, "gate=fail")
	assert.False(t, strings.Contains(out, "\x1b["), "CI output carries no ANSI styling")
}

func TestWriteJSON(t *testing.T) {
	fs := afero.NewMemMapFs()
	c := Build([]harness.Result{
		run("s1", "lexical", metrics.ExtractionMetrics{TruePositives: 1}),
	})
	gate := c.Evaluate(DefaultThresholds())

	require.NoError(t, WriteJSON(fs, "reports/compare.json", c, gate))

	data, err := afero.ReadFile(fs, "reports/compare.json")
	require.NoError(t, err)

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Contains(t, decoded, "aggregates")
	assert.Contains(t, decoded, "gate")
}
