package textsim

import (
	"math"
	"strings"
)

// Jaccard computes word-set Jaccard similarity between two texts.
// Symmetric; identical non-empty texts score 1, empty input scores 0.
func Jaccard(a, b string) float64 {
	setA := tokenSet(a)
	setB := tokenSet(b)
	if len(setA) == 0 || len(setB) == 0 {
		return 0
	}

	intersection := 0
	for tok := range setA {
		if _, ok := setB[tok]; ok {
			intersection++
		}
	}
	union := len(setA) + len(setB) - intersection
	if union == 0 {
		return 0
	}
	return float64(intersection) / float64(union)
}

// NGramOverlap computes word n-gram overlap between two texts: the number
// of shared n-grams divided by the size of the smaller n-gram set. Catches
// verbatim copying that bag-of-words scoring under-weights on long text.
func NGramOverlap(a, b string, n int) float64 {
	if n <= 0 {
		n = 3
	}
	gramsA := ngrams(a, n)
	gramsB := ngrams(b, n)
	if len(gramsA) == 0 || len(gramsB) == 0 {
		return 0
	}

	shared := 0
	for g := range gramsA {
		if _, ok := gramsB[g]; ok {
			shared++
		}
	}
	smaller := len(gramsA)
	if len(gramsB) < smaller {
		smaller = len(gramsB)
	}
	return float64(shared) / float64(smaller)
}

// CharOverlap computes character-multiset overlap between two strings:
// 2 x shared character count / combined length. Used as a last-resort tag
// similarity signal.
func CharOverlap(a, b string) float64 {
	a = strings.ToLower(a)
	b = strings.ToLower(b)
	if len(a) == 0 || len(b) == 0 {
		return 0
	}

	countsA := make(map[rune]int)
	lenA := 0
	for _, r := range a {
		countsA[r]++
		lenA++
	}
	lenB := 0
	shared := 0
	for _, r := range b {
		lenB++
		if countsA[r] > 0 {
			countsA[r]--
			shared++
		}
	}
	return 2 * float64(shared) / float64(lenA+lenB)
}

// Cosine computes cosine similarity between two vectors. Returns 0 on
// length mismatch or when either vector has zero norm.
func Cosine(a, b []float64) float64 {
	if len(a) != len(b) || len(a) == 0 {
		return 0
	}

	var dot, normA, normB float64
	for i := range a {
		dot += a[i] * b[i]
		normA += a[i] * a[i]
		normB += b[i] * b[i]
	}
	if normA == 0 || normB == 0 {
		return 0
	}
	return dot / (math.Sqrt(normA) * math.Sqrt(normB))
}

func tokenSet(text string) map[string]struct{} {
	set := make(map[string]struct{})
	for _, tok := range Tokenize(text, 2) {
		set[tok] = struct{}{}
	}
	return set
}

func ngrams(text string, n int) map[string]struct{} {
	tokens := Tokenize(text, 1)
	grams := make(map[string]struct{})
	for i := 0; i+n <= len(tokens); i++ {
		grams[strings.Join(tokens[i:i+n], " ")] = struct{}{}
	}
	return grams
}
