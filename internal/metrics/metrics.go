/*
Package metrics compares extraction results against scenario ground truth
and accumulates the counters a comparison report is built from. Ratios are
always recomputed from summed counters, never averaged across runs.
*/
package metrics

import "time"

// ExtractionMetrics holds the raw counters for one (scenario, strategy)
// run. Once produced it is only ever combined via Add.
type ExtractionMetrics struct {
	Scenario string `json:"scenario,omitempty"`
	Strategy string `json:"strategy,omitempty"`

	// Duplicate-detection outcomes, one classification per expectation
	// that was paired with an extracted note.
	TruePositives  int `json:"truePositives"`
	FalsePositives int `json:"falsePositives"`
	FalseNegatives int `json:"falseNegatives"`
	TrueNegatives  int `json:"trueNegatives"`

	// Consolidation outcomes, a finer breakdown of the same pairs.
	ConsolidationsCorrect     int `json:"consolidationsCorrect"`
	ConsolidationsMissed      int `json:"consolidationsMissed"`
	ConsolidationsWrongTarget int `json:"consolidationsWrongTarget"`
	CorrectlyCreatedNew       int `json:"correctlyCreatedNew"`

	// Tag reuse against the scenario's tag pool.
	TagsReused           int `json:"tagsReused"`
	TagsShouldHaveReused int `json:"tagsShouldHaveReused"`

	// Expected tags carried (or not) by the paired note.
	ExpectedTagsMatched int `json:"expectedTagsMatched"`
	ExpectedTagsMissed  int `json:"expectedTagsMissed"`

	// Connection matching.
	ConnectionsMatched  int `json:"connectionsMatched"`
	ConnectionsSpurious int `json:"connectionsSpurious"`
	ConnectionsMissed   int `json:"connectionsMissed"`

	// Required-phrase checks on paired note content.
	PhrasesMatched int `json:"phrasesMatched"`
	PhrasesMissed  int `json:"phrasesMissed"`

	NotesExtracted     int `json:"notesExtracted"`
	ExpectationsMissed int `json:"expectationsMissed"`
	NotesConsolidated  int `json:"notesConsolidated"`
	DocumentsProcessed int `json:"documentsProcessed"`

	Duration time.Duration `json:"duration"`

	// Error is set when the run failed and the counters are all zero.
	Error string `json:"error,omitempty"`
}

// Add accumulates another run's counters into m. Identity fields are
// kept only when they agree, so aggregates across scenarios drop them.
func (m *ExtractionMetrics) Add(other ExtractionMetrics) {
	if m.Scenario != other.Scenario {
		m.Scenario = ""
	}
	if m.Strategy != other.Strategy {
		m.Strategy = ""
	}

	m.TruePositives += other.TruePositives
	m.FalsePositives += other.FalsePositives
	m.FalseNegatives += other.FalseNegatives
	m.TrueNegatives += other.TrueNegatives

	m.ConsolidationsCorrect += other.ConsolidationsCorrect
	m.ConsolidationsMissed += other.ConsolidationsMissed
	m.ConsolidationsWrongTarget += other.ConsolidationsWrongTarget
	m.CorrectlyCreatedNew += other.CorrectlyCreatedNew

	m.TagsReused += other.TagsReused
	m.TagsShouldHaveReused += other.TagsShouldHaveReused
	m.ExpectedTagsMatched += other.ExpectedTagsMatched
	m.ExpectedTagsMissed += other.ExpectedTagsMissed

	m.ConnectionsMatched += other.ConnectionsMatched
	m.ConnectionsSpurious += other.ConnectionsSpurious
	m.ConnectionsMissed += other.ConnectionsMissed

	m.PhrasesMatched += other.PhrasesMatched
	m.PhrasesMissed += other.PhrasesMissed

	m.NotesExtracted += other.NotesExtracted
	m.ExpectationsMissed += other.ExpectationsMissed
	m.NotesConsolidated += other.NotesConsolidated
	m.DocumentsProcessed += other.DocumentsProcessed

	m.Duration += other.Duration

	if other.Error != "" {
		if m.Error != "" {
			m.Error += "; "
		}
		m.Error += other.Error
	}
}

func ratio(num, den int) float64 {
	if den == 0 {
		return 0
	}
	return float64(num) / float64(den)
}

// Precision is TP/(TP+FP), 0 when undefined.
func (m ExtractionMetrics) Precision() float64 {
	return ratio(m.TruePositives, m.TruePositives+m.FalsePositives)
}

// Recall is TP/(TP+FN), 0 when undefined.
func (m ExtractionMetrics) Recall() float64 {
	return ratio(m.TruePositives, m.TruePositives+m.FalseNegatives)
}

// F1 is the harmonic mean of precision and recall, 0 when undefined.
func (m ExtractionMetrics) F1() float64 {
	p, r := m.Precision(), m.Recall()
	if p+r == 0 {
		return 0
	}
	return 2 * p * r / (p + r)
}

// ConsolidationAccuracy is the share of consolidation decisions that were
// right, counting correctly-created new notes as correct decisions.
func (m ExtractionMetrics) ConsolidationAccuracy() float64 {
	correct := m.ConsolidationsCorrect + m.CorrectlyCreatedNew
	total := correct + m.ConsolidationsMissed + m.ConsolidationsWrongTarget
	return ratio(correct, total)
}

// TagReuseRate is reused/(reused+shouldHaveReused), 0 when undefined.
func (m ExtractionMetrics) TagReuseRate() float64 {
	return ratio(m.TagsReused, m.TagsReused+m.TagsShouldHaveReused)
}

// ConnectionPrecision is matched/(matched+spurious), 0 when undefined.
func (m ExtractionMetrics) ConnectionPrecision() float64 {
	return ratio(m.ConnectionsMatched, m.ConnectionsMatched+m.ConnectionsSpurious)
}

// ConnectionRecall is matched/(matched+missed), 0 when undefined.
func (m ExtractionMetrics) ConnectionRecall() float64 {
	return ratio(m.ConnectionsMatched, m.ConnectionsMatched+m.ConnectionsMissed)
}

// Failed returns an all-zero metrics value carrying the error text, used
// when a (scenario, strategy) pair could not complete.
func Failed(scenarioName, strategyName string, err error) ExtractionMetrics {
	return ExtractionMetrics{
		Scenario: scenarioName,
		Strategy: strategyName,
		Error:    err.Error(),
	}
}
