/*
Package report aggregates harness results into a cross-strategy
comparison, renders it, and applies the quality gate a CI run exits on.
Aggregation always sums raw counters before recomputing ratios.
*/
package report

import (
	"sort"
	"time"

	"github.com/notewell/notewell/internal/harness"
	"github.com/notewell/notewell/internal/metrics"
)

// StrategyAggregate is one strategy's counters summed across scenarios.
type StrategyAggregate struct {
	Strategy string                    `json:"strategy"`
	Metrics  metrics.ExtractionMetrics `json:"metrics"`
	Runs     []harness.Result          `json:"runs"`

	QualityScored int `json:"qualityScored,omitempty"`
	QualityPassed int `json:"qualityPassed,omitempty"`
}

// NVQPassRate is the share of scored notes passing the rubric, 0 when
// quality scoring was off.
func (a StrategyAggregate) NVQPassRate() float64 {
	if a.QualityScored == 0 {
		return 0
	}
	return float64(a.QualityPassed) / float64(a.QualityScored)
}

// Composite is the mean of the three gated rates, used only for ranking.
func (a StrategyAggregate) Composite() float64 {
	m := a.Metrics
	return (m.F1() + m.ConsolidationAccuracy() + m.TagReuseRate()) / 3
}

// Comparison is the cross-strategy view of one evaluation batch.
type Comparison struct {
	GeneratedAt time.Time           `json:"generatedAt"`
	Aggregates  []StrategyAggregate `json:"aggregates"`
}

// Build groups results by strategy, sums their counters, and ranks the
// aggregates best-first by composite score.
func Build(results []harness.Result) Comparison {
	byStrategy := make(map[string]*StrategyAggregate)
	var order []string
	for _, r := range results {
		agg, ok := byStrategy[r.Strategy]
		if !ok {
			agg = &StrategyAggregate{
				Strategy: r.Strategy,
				Metrics:  metrics.ExtractionMetrics{Strategy: r.Strategy},
			}
			byStrategy[r.Strategy] = agg
			order = append(order, r.Strategy)
		}
		agg.Metrics.Add(r.Metrics)
		agg.Runs = append(agg.Runs, r)
		if r.Quality != nil {
			agg.QualityScored += len(r.Quality.Scores)
			agg.QualityPassed += r.Quality.Passed
		}
	}

	aggregates := make([]StrategyAggregate, 0, len(order))
	for _, name := range order {
		aggregates = append(aggregates, *byStrategy[name])
	}
	sort.SliceStable(aggregates, func(i, j int) bool {
		return aggregates[i].Composite() > aggregates[j].Composite()
	})

	return Comparison{GeneratedAt: time.Now().UTC(), Aggregates: aggregates}
}

// Best returns the top-ranked aggregate, false when the comparison is
// empty.
func (c Comparison) Best() (StrategyAggregate, bool) {
	if len(c.Aggregates) == 0 {
		return StrategyAggregate{}, false
	}
	return c.Aggregates[0], true
}
