package repo

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/voyago-poc/server/internal/agent/model"
)

func TestMemoryCheckpointRoundTrip(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	repo := NewMemoryCheckpointRepository()

	state := model.NewAgentState("conv-1")
	state.BeginTurn("What about Tokyo?")
	state.EntityName = "Tokyo"
	require.NoError(t, repo.Save(ctx, state))

	loaded, err := repo.Load(ctx, "conv-1")
	require.NoError(t, err)
	assert.Equal(t, "Tokyo", loaded.EntityName)
	assert.Len(t, loaded.Messages, 1)
}

func TestMemoryCheckpointNotFound(t *testing.T) {
	t.Parallel()

	repo := NewMemoryCheckpointRepository()
	_, err := repo.Load(context.Background(), "missing")
	assert.ErrorIs(t, err, model.ErrCheckpointNotFound)
}

func TestMemoryCheckpointLoadReturnsIsolatedCopy(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	repo := NewMemoryCheckpointRepository()

	state := model.NewAgentState("conv-1")
	state.EntityName = "Paris"
	require.NoError(t, repo.Save(ctx, state))

	first, err := repo.Load(ctx, "conv-1")
	require.NoError(t, err)
	first.EntityName = "Tokyo"
	first.BeginTurn("mutated")

	second, err := repo.Load(ctx, "conv-1")
	require.NoError(t, err)
	assert.Equal(t, "Paris", second.EntityName)
	assert.Empty(t, second.Messages)
}

func TestMemoryCheckpointDelete(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	repo := NewMemoryCheckpointRepository()
	require.NoError(t, repo.Save(ctx, model.NewAgentState("conv-del")))
	require.NoError(t, repo.Delete(ctx, "conv-del"))

	_, err := repo.Load(ctx, "conv-del")
	assert.ErrorIs(t, err, model.ErrCheckpointNotFound)
}
