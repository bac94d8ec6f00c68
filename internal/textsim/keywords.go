/*
Package textsim provides the lexical similarity primitives used by the
matching strategies: keyword extraction, Jaccard set similarity, n-gram
overlap, character-multiset overlap, and cosine similarity over vectors.
*/
package textsim

import (
	"sort"
	"strings"
	"unicode"
)

// stopWords are tokens that carry no relevance signal and are dropped
// during keyword extraction.
var stopWords = map[string]struct{}{
	"the": {}, "and": {}, "for": {}, "are": {}, "but": {}, "not": {},
	"you": {}, "all": {}, "can": {}, "had": {}, "her": {}, "was": {},
	"one": {}, "our": {}, "out": {}, "has": {}, "have": {}, "this": {},
	"that": {}, "with": {}, "from": {}, "they": {}, "will": {}, "would": {},
	"there": {}, "their": {}, "what": {}, "about": {}, "which": {},
	"when": {}, "them": {}, "then": {}, "than": {}, "were": {}, "been": {},
	"into": {}, "more": {}, "some": {}, "could": {}, "these": {},
	"very": {}, "just": {}, "also": {}, "because": {}, "should": {},
	"over": {}, "only": {}, "most": {}, "other": {}, "after": {},
	"before": {}, "being": {}, "such": {}, "where": {}, "does": {},
	"doing": {}, "during": {}, "each": {}, "while": {}, "here": {},
}

// KeywordOptions controls keyword extraction.
type KeywordOptions struct {
	// MinTokenLen is the minimum token length kept. Default 3.
	MinTokenLen int
	// TopK is the maximum number of keywords returned. Default 10.
	TopK int
}

const (
	defaultMinTokenLen = 3
	defaultTopK        = 10
)

// Tokenize lowercases text, strips punctuation, and splits on whitespace.
// Tokens shorter than minLen are dropped.
func Tokenize(text string, minLen int) []string {
	if minLen <= 0 {
		minLen = defaultMinTokenLen
	}

	var tokens []string
	var current strings.Builder
	for _, r := range strings.ToLower(text) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			current.WriteRune(r)
			continue
		}
		if current.Len() >= minLen {
			tokens = append(tokens, current.String())
		}
		current.Reset()
	}
	if current.Len() >= minLen {
		tokens = append(tokens, current.String())
	}
	return tokens
}

// ExtractKeywords returns the most frequent non-stop-word tokens of text,
// ranked by frequency with first occurrence breaking ties.
func ExtractKeywords(text string, opts KeywordOptions) []string {
	if opts.MinTokenLen <= 0 {
		opts.MinTokenLen = defaultMinTokenLen
	}
	if opts.TopK <= 0 {
		opts.TopK = defaultTopK
	}

	counts := make(map[string]int)
	firstSeen := make(map[string]int)
	for i, tok := range Tokenize(text, opts.MinTokenLen) {
		if _, stop := stopWords[tok]; stop {
			continue
		}
		counts[tok]++
		if _, ok := firstSeen[tok]; !ok {
			firstSeen[tok] = i
		}
	}
	if len(counts) == 0 {
		return nil
	}

	keywords := make([]string, 0, len(counts))
	for w := range counts {
		keywords = append(keywords, w)
	}
	sort.Slice(keywords, func(i, j int) bool {
		if counts[keywords[i]] != counts[keywords[j]] {
			return counts[keywords[i]] > counts[keywords[j]]
		}
		return firstSeen[keywords[i]] < firstSeen[keywords[j]]
	})

	if len(keywords) > opts.TopK {
		keywords = keywords[:opts.TopK]
	}
	return keywords
}

// IsStopWord reports whether the token is in the stop-word list.
func IsStopWord(tok string) bool {
	_, ok := stopWords[strings.ToLower(tok)]
	return ok
}
