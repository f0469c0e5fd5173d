package conversations

import (
	"context"
	"errors"

	"github.com/voyago-poc/server/internal/agent/model"
	logx "github.com/voyago-poc/server/pkg/logger"
)

// Manager mediates between the workflow and the checkpoint store: it seeds a
// fresh state for new conversations and restores the prior turn's state when
// a conversation ID recurs, which is what makes follow-up queries reuse the
// previously extracted destination.
type Manager struct {
	store model.CheckpointStore
}

func NewManager(store model.CheckpointStore) *Manager {
	return &Manager{store: store}
}

// LoadOrCreate returns the checkpointed state for the conversation, or a
// fresh state when none exists yet.
func (m *Manager) LoadOrCreate(ctx context.Context, conversationID string) (*model.AgentState, error) {
	state, err := m.store.Load(ctx, conversationID)
	if err != nil {
		if errors.Is(err, model.ErrCheckpointNotFound) {
			logx.Debug().Str("conversation_id", conversationID).Msg("no checkpoint, starting fresh conversation")
			return model.NewAgentState(conversationID), nil
		}
		return nil, err
	}

	logx.Debug().
		Str("conversation_id", conversationID).
		Int("messages", len(state.Messages)).
		Str("entity", state.EntityName).
		Msg("restored checkpoint")
	return state, nil
}

// Save persists the state at the end of a turn.
func (m *Manager) Save(ctx context.Context, state *model.AgentState) error {
	if err := m.store.Save(ctx, state); err != nil {
		logx.Error().Err(err).Str("conversation_id", state.ConversationID).Msg("failed to save checkpoint")
		return err
	}
	return nil
}

// Reset drops the conversation's checkpoint.
func (m *Manager) Reset(ctx context.Context, conversationID string) error {
	return m.store.Delete(ctx, conversationID)
}
