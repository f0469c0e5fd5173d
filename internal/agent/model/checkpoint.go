package model

import (
	"context"
	"errors"
)

// ErrCheckpointNotFound is returned when no state exists for a conversation.
var ErrCheckpointNotFound = errors.New("checkpoint not found")

// CheckpointStore persists conversation state keyed by conversation ID. It is
// read at run start and written at run end; implementations must be safe for
// concurrent use across different conversation IDs.
type CheckpointStore interface {
	// Load retrieves the last saved state for the conversation.
	// Returns ErrCheckpointNotFound when the conversation has no checkpoint.
	Load(ctx context.Context, conversationID string) (*AgentState, error)

	// Save persists the state, replacing any previous checkpoint.
	Save(ctx context.Context, state *AgentState) error

	// Delete removes the checkpoint for the conversation.
	Delete(ctx context.Context, conversationID string) error
}
