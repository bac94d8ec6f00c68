package report

import "fmt"

// Thresholds are the minimum aggregate rates the best strategy must meet.
type Thresholds struct {
	DuplicateF1           float64 `json:"duplicateF1"`
	ConsolidationAccuracy float64 `json:"consolidationAccuracy"`
	TagReuseRate          float64 `json:"tagReuseRate"`
	NVQPassRate           float64 `json:"nvqPassRate"`
}

// DefaultThresholds returns the gate used by CI runs.
func DefaultThresholds() Thresholds {
	return Thresholds{
		DuplicateF1:           0.7,
		ConsolidationAccuracy: 0.7,
		TagReuseRate:          0.8,
		NVQPassRate:           0.7,
	}
}

// Gate is the verdict the process exit code is derived from.
type Gate struct {
	Passed   bool     `json:"passed"`
	Failures []string `json:"failures,omitempty"`
}

// Evaluate checks the best strategy against the thresholds. The NVQ
// threshold applies only when quality scoring ran. An empty comparison
// fails.
func (c Comparison) Evaluate(t Thresholds) Gate {
	best, ok := c.Best()
	if !ok {
		return Gate{Failures: []string{"no results to evaluate"}}
	}

	var failures []string
	check := func(name string, got, want float64) {
		if got < want {
			failures = append(failures, fmt.Sprintf("%s: best strategy %q scored %.3f, need %.2f", name, best.Strategy, got, want))
		}
	}
	check("duplicate F1", best.Metrics.F1(), t.DuplicateF1)
	check("consolidation accuracy", best.Metrics.ConsolidationAccuracy(), t.ConsolidationAccuracy)
	check("tag reuse rate", best.Metrics.TagReuseRate(), t.TagReuseRate)
	if best.QualityScored > 0 {
		check("NVQ pass rate", best.NVQPassRate(), t.NVQPassRate)
	}
	if best.Metrics.Error != "" {
		failures = append(failures, fmt.Sprintf("best strategy %q had failed runs: %s", best.Strategy, best.Metrics.Error))
	}

	return Gate{Passed: len(failures) == 0, Failures: failures}
}
