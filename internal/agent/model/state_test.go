package model

import (
	"testing"

	"github.com/cloudwego/eino/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBeginTurnAppendsUserMessageAndResetsError(t *testing.T) {
	t.Parallel()

	st := NewAgentState("conv-1")
	st.LastError = "stale error from previous turn"

	st.BeginTurn("Tell me about Paris")

	require.Len(t, st.Messages, 1)
	assert.Equal(t, schema.User, st.Messages[0].Role)
	assert.Equal(t, "Tell me about Paris", st.Messages[0].Content)
	assert.Empty(t, st.LastError)
}

func TestLastUserContentSkipsAssistantMessages(t *testing.T) {
	t.Parallel()

	st := NewAgentState("conv-1")
	st.BeginTurn("first question")
	st.Messages = append(st.Messages, schema.AssistantMessage("an answer", nil))
	st.BeginTurn("second question")
	st.Messages = append(st.Messages, schema.AssistantMessage("another answer", nil))

	assert.Equal(t, "second question", st.LastUserContent())
}

func TestClearFetchedDataKeepsCacheStatus(t *testing.T) {
	t.Parallel()

	st := NewAgentState("conv-1")
	st.CacheMatched = true
	st.IsCachePath = true
	st.CachedFact = "fact"
	st.ForecastPoints = []ForecastPoint{{Date: "2026-08-25"}}
	st.GalleryURLs = []string{"https://example.com/a.jpg"}

	st.ClearFetchedData()

	assert.Nil(t, st.ForecastPoints)
	assert.Nil(t, st.GalleryURLs)
	assert.True(t, st.CacheMatched)
	assert.Equal(t, "fact", st.CachedFact)
}

func TestClearDerivedDataDropsEverything(t *testing.T) {
	t.Parallel()

	st := NewAgentState("conv-1")
	st.CacheMatched = true
	st.IsCachePath = true
	st.CachedFact = "fact"
	st.ForecastPoints = []ForecastPoint{{Date: "2026-08-25"}}
	st.GalleryURLs = []string{"https://example.com/a.jpg"}
	st.FinalResult = &TravelResult{Summary: "old"}

	st.ClearDerivedData()

	assert.Nil(t, st.ForecastPoints)
	assert.Nil(t, st.GalleryURLs)
	assert.False(t, st.CacheMatched)
	assert.False(t, st.IsCachePath)
	assert.Empty(t, st.CachedFact)
	assert.Nil(t, st.FinalResult)
}

func TestHasEntity(t *testing.T) {
	t.Parallel()

	st := NewAgentState("conv-1")
	assert.False(t, st.HasEntity())

	st.EntityName = UnknownEntity
	assert.False(t, st.HasEntity())

	st.EntityName = "Paris"
	assert.True(t, st.HasEntity())
}
