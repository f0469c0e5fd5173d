package model

import (
	"github.com/cloudwego/eino/schema"
)

// UnknownEntity is the sentinel destination used when classification cannot
// extract anything and no previous turn provides one.
const UnknownEntity = "Unknown"

// ForecastPoint is a single day of a weather forecast.
type ForecastPoint struct {
	Date        string  `json:"date"`
	Temperature float64 `json:"temperature"`
	Condition   string  `json:"condition"`
	Humidity    float64 `json:"humidity"`
}

// TravelResult is the terminal artifact of a turn, handed to the rendering
// layer. Produced exactly once per turn by the format_output node.
type TravelResult struct {
	Summary       string          `json:"summary"`
	Forecast      []ForecastPoint `json:"forecast"`
	Gallery       []string        `json:"gallery"`
	SourceIsCache bool            `json:"source_is_cache"`
	Error         string          `json:"error,omitempty"`
}

// AgentState is the single mutable record threaded through every graph node.
// One instance per turn, seeded from the previous checkpoint when the same
// conversation ID recurs. It is owned exclusively by the in-flight run for
// its conversation; the Workflow serializes runs per ID.
//
// All fields are JSON-serializable so the state can be checkpointed as-is.
type AgentState struct {
	ConversationID string            `json:"conversation_id"`
	Messages       []*schema.Message `json:"messages"`

	// EntityName is sticky: a turn with no extractable destination reuses the
	// previous turn's entity, falling back to UnknownEntity.
	EntityName string `json:"entity_name,omitempty"`

	// CacheMatched and IsCachePath are set exactly once per turn by the
	// check_cache node. CacheMatched implies CachedFact is retrievable.
	CacheMatched bool   `json:"cache_matched"`
	IsCachePath  bool   `json:"is_cache_path"`
	CachedFact   string `json:"cached_fact,omitempty"`

	// ForecastPoints and GalleryURLs are replaced wholesale on every turn
	// that fetches fresh data, never merged.
	ForecastPoints []ForecastPoint `json:"forecast_points,omitempty"`
	GalleryURLs    []string        `json:"gallery_urls,omitempty"`

	FinalResult *TravelResult `json:"final_result,omitempty"`

	// LastError holds the most recent recoverable error of the turn. It never
	// halts the turn; the format node surfaces it on the result.
	LastError string `json:"last_error,omitempty"`
}

// NewAgentState creates an empty state for a conversation without history.
func NewAgentState(conversationID string) *AgentState {
	return &AgentState{
		ConversationID: conversationID,
		Messages:       []*schema.Message{},
	}
}

// BeginTurn appends the new user message and resets the per-turn error slot.
// Entity, cache flags and fetched data are left for the classify node, which
// decides what survives into the new turn.
func (s *AgentState) BeginTurn(query string) {
	s.Messages = append(s.Messages, schema.UserMessage(query))
	s.LastError = ""
}

// LastMessage returns the newest message, or nil for an empty history.
func (s *AgentState) LastMessage() *schema.Message {
	if len(s.Messages) == 0 {
		return nil
	}
	return s.Messages[len(s.Messages)-1]
}

// LastUserContent returns the content of the newest user message.
func (s *AgentState) LastUserContent() string {
	for i := len(s.Messages) - 1; i >= 0; i-- {
		m := s.Messages[i]
		if m != nil && m.Role == schema.User {
			return m.Content
		}
	}
	return ""
}

// ClearFetchedData drops only the per-turn fetch results. Used when the
// previous entity is reused: cache status is assumed to still hold without
// re-validation; the cache-check stage re-queries the store every turn
// anyway.
func (s *AgentState) ClearFetchedData() {
	s.ForecastPoints = nil
	s.GalleryURLs = nil
}

// ClearDerivedData drops everything downstream of classification, including
// cache status and the previous final result.
func (s *AgentState) ClearDerivedData() {
	s.ClearFetchedData()
	s.CachedFact = ""
	s.CacheMatched = false
	s.IsCachePath = false
	s.FinalResult = nil
}

// HasEntity reports whether a usable destination is present.
func (s *AgentState) HasEntity() bool {
	return s.EntityName != "" && s.EntityName != UnknownEntity
}

// QueryInput is the public input for one conversational turn.
type QueryInput struct {
	ConversationID string `json:"conversation_id"`
	Query          string `json:"query"`
}
