package embedding

import (
	"strings"

	"github.com/notewell/notewell/internal/textsim"
)

// conceptClusterBoost is added when both texts independently hit the same
// concept cluster, so vocabulary-free paraphrases still register offline.
const conceptClusterBoost = 0.2

// conceptClusters group terms that tend to express the same idea with
// different words. Two texts matching at least two terms each from one
// cluster are treated as semantically adjacent.
var conceptClusters = [][]string{
	{"plan", "planning", "schedule", "calendar", "priorit", "agenda", "weekly", "review"},
	{"learn", "study", "knowledge", "note", "notes", "retention", "recall", "remember", "spaced", "repetition"},
	{"habit", "routine", "sleep", "exercise", "health", "energy", "morning", "consistency"},
	{"bug", "debug", "error", "fix", "root", "cause", "log", "logs", "reproduce", "test"},
	{"meeting", "decision", "stakeholder", "agreed", "action", "follow", "discussion", "team"},
	{"focus", "deep", "work", "distraction", "attention", "flow", "interrupt", "context"},
}

// localApproximator is the deterministic stand-in for a hosted embedding
// service: word-level Jaccard similarity plus a fixed boost for shared
// concept-cluster membership.
type localApproximator struct{}

func newLocalApproximator() *localApproximator {
	return &localApproximator{}
}

// Similarity returns an approximate semantic similarity in [0,1]. It is
// symmetric and returns 1 for identical non-empty texts.
func (l *localApproximator) Similarity(a, b string) float64 {
	sim := textsim.Jaccard(a, b)

	if sim < 1 && sharesConceptCluster(a, b) {
		sim += conceptClusterBoost
	}
	if sim > 1 {
		sim = 1
	}
	return sim
}

// sharesConceptCluster reports whether both texts independently match at
// least two terms from the same cluster.
func sharesConceptCluster(a, b string) bool {
	lowerA := strings.ToLower(a)
	lowerB := strings.ToLower(b)

	for _, cluster := range conceptClusters {
		if clusterHits(lowerA, cluster) >= 2 && clusterHits(lowerB, cluster) >= 2 {
			return true
		}
	}
	return false
}

func clusterHits(lower string, cluster []string) int {
	hits := 0
	for _, term := range cluster {
		if strings.Contains(lower, term) {
			hits++
		}
	}
	return hits
}
