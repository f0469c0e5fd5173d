package repo

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/voyago-poc/server/internal/agent/model"
)

// MemoryCheckpointRepository keeps checkpoints for the process lifetime.
// States are stored as JSON blobs so callers get an isolated copy on every
// Load, same as the durable repository.
type MemoryCheckpointRepository struct {
	mu     sync.RWMutex
	states map[string][]byte
}

func NewMemoryCheckpointRepository() *MemoryCheckpointRepository {
	return &MemoryCheckpointRepository{states: make(map[string][]byte)}
}

func (r *MemoryCheckpointRepository) Load(ctx context.Context, conversationID string) (*model.AgentState, error) {
	r.mu.RLock()
	raw, ok := r.states[conversationID]
	r.mu.RUnlock()
	if !ok {
		return nil, model.ErrCheckpointNotFound
	}

	var state model.AgentState
	if err := json.Unmarshal(raw, &state); err != nil {
		return nil, fmt.Errorf("unmarshal checkpoint: %w", err)
	}
	return &state, nil
}

func (r *MemoryCheckpointRepository) Save(ctx context.Context, state *model.AgentState) error {
	b, err := json.Marshal(state)
	if err != nil {
		return fmt.Errorf("marshal checkpoint: %w", err)
	}

	r.mu.Lock()
	r.states[state.ConversationID] = b
	r.mu.Unlock()
	return nil
}

func (r *MemoryCheckpointRepository) Delete(ctx context.Context, conversationID string) error {
	r.mu.Lock()
	delete(r.states, conversationID)
	r.mu.Unlock()
	return nil
}

var _ model.CheckpointStore = (*MemoryCheckpointRepository)(nil)
