package harness

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/cloudwego/eino/components/model"
	"github.com/cloudwego/eino/schema"

	"github.com/notewell/notewell/internal/scenario"
	"github.com/notewell/notewell/internal/strategy"
	"github.com/notewell/notewell/types"
)

// Extractor produces candidate notes for one document. The harness passes
// the current relatedness context so a model-backed extractor can ground
// its output in the existing pool.
type Extractor interface {
	Extract(ctx context.Context, doc types.Document, related []strategy.RankedNote) ([]types.CandidateNote, error)
}

// MockExtractor replays the candidates a scenario defines per document.
// It makes runs deterministic so strategy behavior can be evaluated in
// isolation from extraction quality.
type MockExtractor struct {
	byDoc map[string][]types.CandidateNote
}

// NewMockExtractor builds a mock extractor from the document cases of one
// or more scenarios. Document IDs must be unique across scenarios run
// through the same extractor.
func NewMockExtractor(scenarios ...scenario.Scenario) *MockExtractor {
	byDoc := make(map[string][]types.CandidateNote)
	for _, s := range scenarios {
		for _, d := range s.Documents {
			byDoc[d.Document.ID] = d.Candidates
		}
	}
	return &MockExtractor{byDoc: byDoc}
}

func (m *MockExtractor) Extract(_ context.Context, doc types.Document, _ []strategy.RankedNote) ([]types.CandidateNote, error) {
	candidates, ok := m.byDoc[doc.ID]
	if !ok {
		return nil, fmt.Errorf("no candidates defined for document %q", doc.ID)
	}
	return candidates, nil
}

const extractSystemPrompt = `You convert freeform writing into atomic notes.
Return ONLY a JSON array. Each element:
{
  "title": "short noun-phrase title",
  "content": "one self-contained insight, first person where the source is",
  "tags": ["prefix/topic tags, reuse existing tags where possible"],
  "metadata": {"status": "", "type": "", "stakeholder": "", "project": "", "purpose": ""},
  "connections": [{"target": "existing note title or project/name", "type": "part_of|related|extends|supports"}]
}
Split unrelated insights into separate notes. Do not invent facts.`

// LLMExtractor asks a chat model to extract candidate notes, used for
// end-to-end runs against a real provider.
type LLMExtractor struct {
	model model.BaseChatModel
}

func NewLLMExtractor(m model.BaseChatModel) *LLMExtractor {
	return &LLMExtractor{model: m}
}

func (e *LLMExtractor) Extract(ctx context.Context, doc types.Document, related []strategy.RankedNote) ([]types.CandidateNote, error) {
	var sb strings.Builder
	sb.WriteString("Document:\n")
	sb.WriteString(doc.Content)
	if len(related) > 0 {
		sb.WriteString("\n\nExisting related notes (link or consolidate where appropriate):\n")
		for _, r := range related {
			fmt.Fprintf(&sb, "- %s\n", r.Title)
		}
	}

	resp, err := e.model.Generate(ctx, []*schema.Message{
		schema.SystemMessage(extractSystemPrompt),
		schema.UserMessage(sb.String()),
	})
	if err != nil {
		return nil, fmt.Errorf("extraction call: %w", err)
	}

	candidates, err := parseCandidates(resp.Content)
	if err != nil {
		return nil, fmt.Errorf("parse extraction for document %q: %w", doc.ID, err)
	}
	return candidates, nil
}

// parseCandidates tolerates a fenced code block around the JSON array.
func parseCandidates(raw string) ([]types.CandidateNote, error) {
	s := strings.TrimSpace(raw)
	if strings.HasPrefix(s, "```") {
		s = strings.TrimPrefix(s, "```json")
		s = strings.TrimPrefix(s, "```")
		if i := strings.LastIndex(s, "```"); i >= 0 {
			s = s[:i]
		}
		s = strings.TrimSpace(s)
	}

	var candidates []types.CandidateNote
	if err := json.Unmarshal([]byte(s), &candidates); err != nil {
		return nil, err
	}
	return candidates, nil
}
