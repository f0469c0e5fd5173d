package conversations

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/voyago-poc/server/internal/agent/model"
	"github.com/voyago-poc/server/internal/agent/repo"
)

func TestLoadOrCreateStartsFresh(t *testing.T) {
	t.Parallel()

	m := NewManager(repo.NewMemoryCheckpointRepository())

	st, err := m.LoadOrCreate(context.Background(), "conv-new")
	require.NoError(t, err)
	assert.Equal(t, "conv-new", st.ConversationID)
	assert.Empty(t, st.Messages)
}

func TestLoadOrCreateRestoresCheckpoint(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	m := NewManager(repo.NewMemoryCheckpointRepository())

	st := model.NewAgentState("conv-1")
	st.BeginTurn("Tell me about Paris")
	st.EntityName = "Paris"
	require.NoError(t, m.Save(ctx, st))

	restored, err := m.LoadOrCreate(ctx, "conv-1")
	require.NoError(t, err)
	assert.Equal(t, "Paris", restored.EntityName)
	assert.Len(t, restored.Messages, 1)
}

func TestResetDropsCheckpoint(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	m := NewManager(repo.NewMemoryCheckpointRepository())

	st := model.NewAgentState("conv-1")
	st.EntityName = "Paris"
	require.NoError(t, m.Save(ctx, st))
	require.NoError(t, m.Reset(ctx, "conv-1"))

	fresh, err := m.LoadOrCreate(ctx, "conv-1")
	require.NoError(t, err)
	assert.Empty(t, fresh.EntityName)
}
