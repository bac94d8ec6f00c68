/*
Copyright © 2025 NoteWell Authors
*/
package types

// ExistingNote is one note already present in the knowledge base at the time
// a document is processed. A harness run owns its pool of existing notes and
// only ever appends to it.
type ExistingNote struct {
	ID      string   `json:"id" yaml:"id"`
	Title   string   `json:"title" yaml:"title"`
	Content string   `json:"content" yaml:"content"`
	Tags    []string `json:"tags,omitempty" yaml:"tags,omitempty"`
}

// Document is an immutable extraction input: one piece of freeform writing.
type Document struct {
	ID       string            `json:"id" yaml:"id"`
	Content  string            `json:"content" yaml:"content"`
	Metadata map[string]string `json:"metadata,omitempty" yaml:"metadata,omitempty"`
}

// NoteMetadata carries the structured fields a candidate note may populate.
type NoteMetadata struct {
	Status      string `json:"status,omitempty" yaml:"status,omitempty"`
	Type        string `json:"type,omitempty" yaml:"type,omitempty"`
	Stakeholder string `json:"stakeholder,omitempty" yaml:"stakeholder,omitempty"`
	Project     string `json:"project,omitempty" yaml:"project,omitempty"`
	Purpose     string `json:"purpose,omitempty" yaml:"purpose,omitempty"`
}

// Connection is a typed link from a candidate note to another note or
// hierarchy node.
type Connection struct {
	Target string `json:"target" yaml:"target"`
	Type   string `json:"type,omitempty" yaml:"type,omitempty"`
}

// CandidateNote is a raw note as produced by an extractor, before the
// harness has decided whether it consolidates into an existing note.
type CandidateNote struct {
	Title       string       `json:"title" yaml:"title"`
	Content     string       `json:"content" yaml:"content"`
	Tags        []string     `json:"tags,omitempty" yaml:"tags,omitempty"`
	Metadata    NoteMetadata `json:"metadata,omitempty" yaml:"metadata,omitempty"`
	Connections []Connection `json:"connections,omitempty" yaml:"connections,omitempty"`
}

// ExtractedNoteResult is a candidate note after the consolidation decision.
// ConsolidatedWith is set iff the decision engine chose to merge, in which
// case MergedContent holds the combined text.
type ExtractedNoteResult struct {
	Title            string       `json:"title"`
	Content          string       `json:"content"`
	Tags             []string     `json:"tags,omitempty"`
	Metadata         NoteMetadata `json:"metadata,omitempty"`
	ConsolidatedWith string       `json:"consolidatedWith,omitempty"`
	MergedContent    string       `json:"mergedContent,omitempty"`
	Connections      []Connection `json:"connections,omitempty"`
}

// Consolidated reports whether the note was merged into an existing note.
func (r ExtractedNoteResult) Consolidated() bool {
	return r.ConsolidatedWith != ""
}
