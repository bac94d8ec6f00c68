package strategy

import (
	"fmt"

	"github.com/notewell/notewell/internal/embedding"
)

// Kind enumerates the available matching strategies. Runtime selection goes
// through ParseKind and Build; there is no global registration.
type Kind string

const (
	KindLexical   Kind = "lexical"
	KindEmbedding Kind = "embedding"
	KindHybrid    Kind = "hybrid"
)

// Kinds lists every strategy kind in presentation order.
func Kinds() []Kind {
	return []Kind{KindLexical, KindEmbedding, KindHybrid}
}

// ParseKind validates a strategy name from configuration input.
func ParseKind(name string) (Kind, error) {
	switch Kind(name) {
	case KindLexical, KindEmbedding, KindHybrid:
		return Kind(name), nil
	default:
		return "", fmt.Errorf("unknown strategy %q (available: lexical, embedding, hybrid)", name)
	}
}

// Description returns a one-line summary for listings.
func (k Kind) Description() string {
	switch k {
	case KindLexical:
		return "keyword frequency and n-gram overlap; no network, no credentials"
	case KindEmbedding:
		return "semantic vectors from the embedding provider; local approximation offline"
	case KindHybrid:
		return "lexical retrieval reranked by semantic similarity"
	default:
		return ""
	}
}

// Build constructs a fresh strategy instance for the kind. Each instance
// owns the provider it is given, so concurrent instances never share cache
// state. The lexical strategy ignores the provider and accepts nil.
func Build(k Kind, provider *embedding.Provider) (MatchingStrategy, error) {
	switch k {
	case KindLexical:
		return NewLexical(), nil
	case KindEmbedding:
		if provider == nil {
			return nil, fmt.Errorf("embedding strategy requires a provider")
		}
		return NewEmbedding(provider), nil
	case KindHybrid:
		if provider == nil {
			return nil, fmt.Errorf("hybrid strategy requires a provider")
		}
		return NewHybrid(provider), nil
	default:
		return nil, fmt.Errorf("unknown strategy kind %q", k)
	}
}
