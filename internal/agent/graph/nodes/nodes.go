package nodes

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/cloudwego/eino/compose"
	einomodel "github.com/cloudwego/eino/components/model"
	"github.com/cloudwego/eino/schema"
	"github.com/google/uuid"

	"github.com/voyago-poc/server/internal/agent/graph/parsers"
	"github.com/voyago-poc/server/internal/agent/graph/prompts"
	"github.com/voyago-poc/server/internal/agent/graph/tools"
	"github.com/voyago-poc/server/internal/agent/model"
	logx "github.com/voyago-poc/server/pkg/logger"
)

// Node names of the fixed topology.
const (
	NodeClassify     = "classify_query"
	NodeCheckCache   = "check_cache"
	NodeUseCache     = "use_cached_context"
	NodeCallLLM      = "call_llm"
	NodeExecuteTools = "execute_tools"
	NodeFormatOutput = "format_output"
)

// nodeFn is the uniform shape of a stage handler before it is wrapped into a
// graph lambda.
type nodeFn = func(context.Context, *model.AgentState) (*model.AgentState, error)

// NewClassifyNode extracts a destination from the newest user message.
//
// Sticky-entity policy: when the current message yields no destination but a
// previous turn extracted one, that entity is reused and only the fetched
// data is cleared. Cache status is deliberately not re-validated on reuse;
// the check_cache node re-queries the store anyway, which keeps the decision
// idempotent for an unchanged entity.
func NewClassifyNode(extractor einomodel.BaseChatModel, modelName string) *compose.Lambda {
	return compose.InvokableLambda(classify(extractor, modelName))
}

func classify(extractor einomodel.BaseChatModel, modelName string) nodeFn {
	return func(ctx context.Context, st *model.AgentState) (*model.AgentState, error) {
		query := st.LastUserContent()

		promptText, err := prompts.RenderExtract(ctx, query)
		if err != nil {
			st.LastError = err.Error()
			logx.Error().Err(err).Msg("classify: prompt render failed")
			return st, nil
		}

		resp, err := extractor.Generate(ctx, []*schema.Message{schema.UserMessage(promptText)})
		if err != nil {
			// Extraction failure is recoverable: the sticky policy below never
			// runs, so the previous entity (if any) stays in place untouched.
			st.LastError = err.Error()
			logx.Warn().Err(err).Str("conversation_id", st.ConversationID).Msg("classify: extraction call failed")
			return st, nil
		}
		logModelUsage(st.ConversationID, NodeClassify, modelName, resp)

		destination := parsers.ParseExtraction(resp.Content)

		switch {
		case destination == "" && st.HasEntity():
			logx.Debug().
				Str("conversation_id", st.ConversationID).
				Str("entity", st.EntityName).
				Msg("classify: no destination in query, reusing previous entity")
			st.ClearFetchedData()

		case destination == "":
			logx.Debug().Str("conversation_id", st.ConversationID).Msg("classify: no destination extractable")
			st.EntityName = model.UnknownEntity
			st.ClearDerivedData()

		default:
			logx.Debug().
				Str("conversation_id", st.ConversationID).
				Str("entity", destination).
				Msg("classify: extracted new destination")
			st.EntityName = destination
			st.ClearDerivedData()
		}

		return st, nil
	}
}

// NewCheckCacheNode decides the turn's path by querying the knowledge store
// for the nearest match to the entity. A store failure is never fatal: the
// turn fails open to the cold path with the error recorded.
func NewCheckCacheNode(store model.KnowledgeStore, threshold float64) *compose.Lambda {
	return compose.InvokableLambda(checkCache(store, threshold))
}

func checkCache(store model.KnowledgeStore, threshold float64) nodeFn {
	return func(ctx context.Context, st *model.AgentState) (*model.AgentState, error) {
		st.CacheMatched = false
		st.IsCachePath = false

		if !st.HasEntity() {
			logx.Debug().Str("conversation_id", st.ConversationID).Msg("check_cache: no valid entity, skipping store lookup")
			return st, nil
		}

		entity := strings.TrimSpace(st.EntityName)
		match, err := store.Query(ctx, entity)
		if err != nil {
			st.LastError = err.Error()
			logx.Warn().Err(err).Str("entity", entity).Msg("check_cache: store query failed, failing open to cold path")
			return st, nil
		}

		if match == nil || match.Distance >= threshold {
			logx.Debug().
				Str("entity", entity).
				Float64("threshold", threshold).
				Msg("check_cache: miss")
			return st, nil
		}

		fact, err := store.FetchFact(ctx, entity)
		if err != nil {
			st.LastError = err.Error()
			logx.Warn().Err(err).Str("entity", entity).Msg("check_cache: fact retrieval failed, failing open to cold path")
			return st, nil
		}

		st.CacheMatched = true
		st.IsCachePath = true
		st.CachedFact = strings.TrimSpace(fact)
		logx.Debug().
			Str("entity", entity).
			Float64("distance", match.Distance).
			Msg("check_cache: hit")
		return st, nil
	}
}

// NewUseCacheNode is the hit path: the stored fact replaces model reasoning,
// and the weather and image tools are fetched directly, in parallel. Either
// fetch may fail without aborting the other.
func NewUseCacheNode(registry *tools.Registry) *compose.Lambda {
	return compose.InvokableLambda(useCache(registry))
}

func useCache(registry *tools.Registry) nodeFn {
	return func(ctx context.Context, st *model.AgentState) (*model.AgentState, error) {
		if st.CachedFact == "" {
			logx.Warn().Str("conversation_id", st.ConversationID).Msg("use_cached_context: cache hit flagged but no fact in state")
			return st, nil
		}

		city := st.EntityName
		args := fmt.Sprintf(`{"city":%q}`, city)
		names := []string{tools.ToolGetWeather, tools.ToolGetImages}

		type outcome struct {
			payload any
			err     error
		}
		outcomes := make([]outcome, len(names))

		var wg sync.WaitGroup
		for i, name := range names {
			wg.Add(1)
			go func(i int, name string) {
				defer wg.Done()
				payload, err := registry.Execute(ctx, name, args)
				outcomes[i] = outcome{payload: payload, err: err}
			}(i, name)
		}
		wg.Wait()

		if outcomes[0].err != nil {
			st.LastError = outcomes[0].err.Error()
			logx.Warn().Err(outcomes[0].err).Str("city", city).Msg("use_cached_context: weather fetch failed")
		} else if points, ok := outcomes[0].payload.([]model.ForecastPoint); ok {
			st.ForecastPoints = points
		}

		if outcomes[1].err != nil {
			st.LastError = outcomes[1].err.Error()
			logx.Warn().Err(outcomes[1].err).Str("city", city).Msg("use_cached_context: image fetch failed")
		} else if urls, ok := outcomes[1].payload.([]string); ok {
			st.GalleryURLs = urls
		}

		logx.Debug().
			Str("city", city).
			Int("forecast_points", len(st.ForecastPoints)).
			Int("gallery_urls", len(st.GalleryURLs)).
			Msg("use_cached_context: fresh data fetched")
		return st, nil
	}
}

// NewCallLLMNode is the miss path's decision step: one model call with the
// tool catalog bound. The response, with any tool-invocation requests, is
// appended to the conversation unmodified; nothing is executed here.
func NewCallLLMNode(responseModel einomodel.BaseChatModel, modelName string) *compose.Lambda {
	return compose.InvokableLambda(callLLM(responseModel, modelName))
}

func callLLM(responseModel einomodel.BaseChatModel, modelName string) nodeFn {
	return func(ctx context.Context, st *model.AgentState) (*model.AgentState, error) {
		resp, err := responseModel.Generate(ctx, st.Messages)
		if err != nil {
			st.LastError = err.Error()
			logx.Warn().Err(err).Str("conversation_id", st.ConversationID).Msg("call_llm: model call failed")
			return st, nil
		}
		logModelUsage(st.ConversationID, NodeCallLLM, modelName, resp)

		// Some providers omit tool-call IDs; synthesize them so the executor
		// can correlate results.
		for i := range resp.ToolCalls {
			if strings.TrimSpace(resp.ToolCalls[i].ID) == "" {
				resp.ToolCalls[i].ID = "call_" + uuid.NewString()
			}
		}

		st.Messages = append(st.Messages, resp)

		if len(resp.ToolCalls) > 0 {
			logx.Debug().Int("tool_count", len(resp.ToolCalls)).Msg("call_llm: model requested tools")
		} else {
			logx.Debug().Msg("call_llm: model requested no tools")
		}
		return st, nil
	}
}

// NewExecuteToolsNode executes the model's tool-invocation requests manually:
// all requests launch concurrently, every result is awaited, and tool-result
// messages are rebuilt in original request order with per-call error
// isolation. Successful weather/image results are additionally harvested into
// the typed state fields (first of each kind wins).
func NewExecuteToolsNode(registry *tools.Registry) *compose.Lambda {
	return compose.InvokableLambda(executeTools(registry))
}

func executeTools(registry *tools.Registry) nodeFn {
	return func(ctx context.Context, st *model.AgentState) (*model.AgentState, error) {
		last := st.LastMessage()
		if last == nil || last.Role != schema.Assistant || len(last.ToolCalls) == 0 {
			logx.Debug().Msg("execute_tools: no tool calls in model response, skipping")
			return st, nil
		}

		calls := last.ToolCalls

		type outcome struct {
			payload any
			err     error
		}
		outcomes := make([]outcome, len(calls))

		var wg sync.WaitGroup
		for i, tc := range calls {
			wg.Add(1)
			go func(i int, tc schema.ToolCall) {
				defer wg.Done()
				payload, err := registry.Execute(ctx, tc.Function.Name, tc.Function.Arguments)
				outcomes[i] = outcome{payload: payload, err: err}
			}(i, tc)
		}
		wg.Wait()

		var forecast []model.ForecastPoint
		var gallery []string

		for i, tc := range calls {
			name := tc.Function.Name
			var content string

			switch {
			case outcomes[i].err != nil:
				content = tools.MarshalError(name, outcomes[i].err)
				st.LastError = outcomes[i].err.Error()
				logx.Warn().Err(outcomes[i].err).Str("tool", name).Msg("execute_tools: tool failed")

			default:
				serialized, err := tools.MarshalResult(outcomes[i].payload)
				if err != nil {
					content = tools.MarshalError(name, err)
					st.LastError = err.Error()
					break
				}
				content = serialized

				switch v := outcomes[i].payload.(type) {
				case []model.ForecastPoint:
					if forecast == nil {
						forecast = v
					}
				case []string:
					if gallery == nil {
						gallery = v
					}
				}
			}

			st.Messages = append(st.Messages, schema.ToolMessage(content, tc.ID, schema.WithToolName(name)))
		}

		if forecast != nil {
			st.ForecastPoints = forecast
		}
		if gallery != nil {
			st.GalleryURLs = gallery
		}

		logx.Debug().
			Int("tool_results", len(calls)).
			Str("conversation_id", st.ConversationID).
			Msg("execute_tools: all tool results appended")
		return st, nil
	}
}

// NewFormatOutputNode produces the terminal TravelResult. The cached fact is
// used verbatim when present; otherwise one summarizing model call runs over
// the conversation including the tool results. This is the sole producer of
// FinalResult.
func NewFormatOutputNode(responseModel einomodel.BaseChatModel, modelName string) *compose.Lambda {
	return compose.InvokableLambda(formatOutput(responseModel, modelName))
}

func formatOutput(responseModel einomodel.BaseChatModel, modelName string) nodeFn {
	return func(ctx context.Context, st *model.AgentState) (*model.AgentState, error) {
		summary := strings.TrimSpace(st.CachedFact)

		if summary == "" {
			instruction, err := prompts.RenderSummary(ctx, st.EntityName)
			if err != nil {
				st.LastError = err.Error()
			} else {
				msgs := make([]*schema.Message, 0, len(st.Messages)+1)
				msgs = append(msgs, st.Messages...)
				msgs = append(msgs, schema.UserMessage(instruction))

				resp, err := responseModel.Generate(ctx, msgs)
				if err != nil {
					st.LastError = err.Error()
					logx.Warn().Err(err).Str("conversation_id", st.ConversationID).Msg("format_output: summary call failed")
				} else {
					logModelUsage(st.ConversationID, NodeFormatOutput, modelName, resp)
					summary = strings.TrimSpace(resp.Content)
				}
			}
		}

		st.FinalResult = &model.TravelResult{
			Summary:       summary,
			Forecast:      st.ForecastPoints,
			Gallery:       st.GalleryURLs,
			SourceIsCache: st.IsCachePath,
			Error:         st.LastError,
		}

		logx.Debug().
			Str("conversation_id", st.ConversationID).
			Int("summary_len", len(summary)).
			Int("forecast_points", len(st.ForecastPoints)).
			Int("gallery_urls", len(st.GalleryURLs)).
			Bool("source_is_cache", st.IsCachePath).
			Msg("format_output: result assembled")
		return st, nil
	}
}
