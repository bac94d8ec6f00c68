/*
Package embedding adapts a hosted embedding service behind a cached,
failure-tolerant provider. When no embedder capability is injected the
provider degrades to a deterministic local approximation, so matching keeps
working offline with reduced fidelity.
*/
package embedding

import (
	"context"
	"errors"
	"log/slog"
	"sync"

	einoembed "github.com/cloudwego/eino/components/embedding"

	"github.com/notewell/notewell/internal/textsim"
)

// cacheKeyLen bounds the cache key so near-identical long documents still
// share an entry without hashing.
const cacheKeyLen = 100

// Provider computes text similarity through embedding vectors. It owns a
// text-keyed vector cache; the cache is the only mutable state and is safe
// for concurrent use.
type Provider struct {
	mu       sync.Mutex
	cache    map[string][]float64
	embedder einoembed.Embedder // nil means local approximation
	local    *localApproximator
	logger   *slog.Logger
}

// NewProvider builds a Provider around the given embedder capability.
// Passing nil selects the deterministic local approximation; this is the
// expected state when no credential is configured, not an error.
func NewProvider(embedder einoembed.Embedder) *Provider {
	return &Provider{
		cache:    make(map[string][]float64),
		embedder: embedder,
		local:    newLocalApproximator(),
		logger:   slog.Default(),
	}
}

// Remote reports whether a hosted embedding service backs this provider.
func (p *Provider) Remote() bool {
	return p.embedder != nil
}

// Embed returns the embedding vector for text, consulting the cache first.
// The local approximation has no vector space, so a local-mode provider
// returns an error here; use Similarity for mode-independent comparison.
func (p *Provider) Embed(ctx context.Context, text string) ([]float64, error) {
	if p.embedder == nil {
		return nil, errors.New("no remote embedder configured")
	}

	key := cacheKey(text)

	p.mu.Lock()
	if vec, ok := p.cache[key]; ok {
		p.mu.Unlock()
		return vec, nil
	}
	p.mu.Unlock()

	vecs, err := p.embedder.EmbedStrings(ctx, []string{text})
	if err != nil {
		return nil, err
	}
	if len(vecs) == 0 {
		return nil, nil
	}

	p.mu.Lock()
	p.cache[key] = vecs[0]
	p.mu.Unlock()
	return vecs[0], nil
}

// Similarity returns semantic similarity between two texts in [0,1]. A
// transient embedding failure is logged and scored as 0 for this one
// comparison; it never propagates.
func (p *Provider) Similarity(ctx context.Context, a, b string) float64 {
	if p.embedder == nil {
		return p.local.Similarity(a, b)
	}

	vecA, err := p.Embed(ctx, a)
	if err != nil {
		p.logger.Warn("embedding call failed, scoring comparison as empty", "error", err)
		return 0
	}
	vecB, err := p.Embed(ctx, b)
	if err != nil {
		p.logger.Warn("embedding call failed, scoring comparison as empty", "error", err)
		return 0
	}

	sim := textsim.Cosine(vecA, vecB)
	if sim < 0 {
		return 0
	}
	return sim
}

// Clear empties the vector cache. Strategies call this from Cleanup so no
// state leaks between runs.
func (p *Provider) Clear() {
	p.mu.Lock()
	p.cache = make(map[string][]float64)
	p.mu.Unlock()
}

// CacheSize returns the number of cached vectors.
func (p *Provider) CacheSize() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.cache)
}

func cacheKey(text string) string {
	runes := []rune(text)
	if len(runes) > cacheKeyLen {
		runes = runes[:cacheKeyLen]
	}
	return string(runes)
}
