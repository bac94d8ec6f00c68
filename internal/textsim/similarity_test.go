package textsim

import (
	"math"
	"testing"
)

func TestJaccardSymmetric(t *testing.T) {
	pairs := [][2]string{
		{"the quick brown fox", "a lazy brown dog"},
		{"planning my week every sunday", "weekly planning ritual"},
		{"", "something"},
		{"identical text here", "identical text here"},
	}

	for _, p := range pairs {
		ab := Jaccard(p[0], p[1])
		ba := Jaccard(p[1], p[0])
		if ab != ba {
			t.Errorf("Jaccard(%q, %q) = %v, reversed = %v", p[0], p[1], ab, ba)
		}
	}
}

func TestJaccardIdentity(t *testing.T) {
	text := "spaced repetition beats cramming for retention"
	if got := Jaccard(text, text); got != 1 {
		t.Errorf("Jaccard(a, a) = %v, want 1", got)
	}
}

func TestJaccardEmpty(t *testing.T) {
	if got := Jaccard("", ""); got != 0 {
		t.Errorf("Jaccard of empty texts = %v, want 0", got)
	}
}

func TestNGramOverlap(t *testing.T) {
	tests := []struct {
		name string
		a, b string
		want float64
	}{
		{
			name: "verbatim copy",
			a:    "write notes in your own words to remember them",
			b:    "write notes in your own words to remember them",
			want: 1,
		},
		{
			name: "no shared trigrams",
			a:    "completely different subject matter",
			b:    "unrelated topic entirely separate",
			want: 0,
		},
		{
			name: "too short for trigrams",
			a:    "two words",
			b:    "two words",
			want: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := NGramOverlap(tt.a, tt.b, 3); got != tt.want {
				t.Errorf("NGramOverlap() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestCharOverlap(t *testing.T) {
	if got := CharOverlap("abc", "abc"); got != 1 {
		t.Errorf("CharOverlap identical = %v, want 1", got)
	}
	if got := CharOverlap("", "abc"); got != 0 {
		t.Errorf("CharOverlap empty = %v, want 0", got)
	}
	ab := CharOverlap("planning", "planing")
	ba := CharOverlap("planing", "planning")
	if ab != ba {
		t.Errorf("CharOverlap not symmetric: %v vs %v", ab, ba)
	}
	if ab <= 0.8 {
		t.Errorf("CharOverlap near-identical tags = %v, want > 0.8", ab)
	}
}

func TestCosine(t *testing.T) {
	a := []float64{1, 2, 3}
	if got := Cosine(a, a); math.Abs(got-1) > 1e-9 {
		t.Errorf("Cosine(a, a) = %v, want 1", got)
	}
	if got := Cosine(a, []float64{1, 2}); got != 0 {
		t.Errorf("Cosine length mismatch = %v, want 0", got)
	}
	if got := Cosine(a, []float64{0, 0, 0}); got != 0 {
		t.Errorf("Cosine zero norm = %v, want 0", got)
	}
	if got := Cosine([]float64{1, 0}, []float64{0, 1}); got != 0 {
		t.Errorf("Cosine orthogonal = %v, want 0", got)
	}
}
