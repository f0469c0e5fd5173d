package model

import "context"

// KnowledgeMatch is the nearest stored document for a query. Distance is a
// non-negative dissimilarity score; lower means more similar.
type KnowledgeMatch struct {
	Distance   float64           `json:"distance"`
	StoredText string            `json:"stored_text"`
	Metadata   map[string]string `json:"metadata,omitempty"`
}

// KnowledgeStore is the semantic index consulted by the cache-check node.
// The orchestrator treats it as an injected external collaborator; it must be
// safe for concurrent use across conversation IDs.
type KnowledgeStore interface {
	// Query returns the nearest match for the text, or nil when the index is
	// empty. The caller applies its own acceptance threshold.
	Query(ctx context.Context, text string) (*KnowledgeMatch, error)

	// FetchFact returns the stored fact for the text, or "" when absent.
	FetchFact(ctx context.Context, text string) (string, error)
}
