package graph

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/cloudwego/eino/compose"
	"google.golang.org/genai"

	"github.com/voyago-poc/server/internal/agent/graph/conversations"
	"github.com/voyago-poc/server/internal/agent/graph/nodes"
	"github.com/voyago-poc/server/internal/agent/graph/observers"
	"github.com/voyago-poc/server/internal/agent/graph/tools"
	"github.com/voyago-poc/server/internal/agent/model"
	logx "github.com/voyago-poc/server/pkg/logger"
)

// Config holds everything needed to compose the full travel workflow
// end-to-end. All collaborators are constructed at process start and injected
// here; nothing is reached through process-wide singletons.
type Config struct {
	Client          *genai.Client
	ExtractorModel  model.ExtractorModelConfig
	ResponseModel   model.ResponseModelConfig
	Cache           model.CacheConfig
	KnowledgeStore  model.KnowledgeStore
	CheckpointStore model.CheckpointStore
	Registry        *tools.Registry
}

// GraphConfig holds the already-constructed collaborators the graph builder
// wires into the stage nodes.
type GraphConfig struct {
	ChatModels     *nodes.ChatModels
	Registry       *tools.Registry
	KnowledgeStore model.KnowledgeStore
	CacheThreshold float64
}

// Workflow executes the compiled stage graph with checkpointed conversation
// state. Runs for the same conversation ID are serialized; different IDs may
// run concurrently.
type Workflow struct {
	runnable    compose.Runnable[*model.AgentState, *model.AgentState]
	checkpoints *conversations.Manager

	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

// BuildTravelWorkflow composes chat models, builds the stage graph, and
// returns a ready-to-run Workflow.
func BuildTravelWorkflow(ctx context.Context, cfg Config) (*Workflow, error) {
	if cfg.KnowledgeStore == nil {
		return nil, fmt.Errorf("knowledge store is nil")
	}
	if cfg.CheckpointStore == nil {
		return nil, fmt.Errorf("checkpoint store is nil")
	}
	if cfg.Registry == nil {
		return nil, fmt.Errorf("tool registry is nil")
	}

	cms, err := nodes.NewChatModels(ctx, nodes.ChatModelConfig{
		Client:          cfg.Client,
		ExtractorConfig: &cfg.ExtractorModel,
		RespConfig:      &cfg.ResponseModel,
	})
	if err != nil {
		return nil, err
	}

	runnable, err := BuildGraph(ctx, &GraphConfig{
		ChatModels:     cms,
		Registry:       cfg.Registry,
		KnowledgeStore: cfg.KnowledgeStore,
		CacheThreshold: cfg.Cache.Threshold,
	})
	if err != nil {
		return nil, err
	}

	logx.Debug().Msg("Travel workflow built successfully")
	return NewWorkflow(runnable, cfg.CheckpointStore), nil
}

// NewWorkflow wraps a compiled graph with checkpoint management.
func NewWorkflow(
	runnable compose.Runnable[*model.AgentState, *model.AgentState],
	store model.CheckpointStore,
) *Workflow {
	return &Workflow{
		runnable:    runnable,
		checkpoints: conversations.NewManager(store),
		locks:       make(map[string]*sync.Mutex),
	}
}

// Run executes one conversational turn: restore the checkpoint, append the
// user message, drive the graph, persist the resulting state. At most one
// run is in flight per conversation ID.
func (w *Workflow) Run(ctx context.Context, in model.QueryInput) (*model.AgentState, error) {
	if strings.TrimSpace(in.ConversationID) == "" {
		return nil, fmt.Errorf("conversation id is required")
	}
	if strings.TrimSpace(in.Query) == "" {
		return nil, fmt.Errorf("query is required")
	}

	lock := w.lockFor(in.ConversationID)
	lock.Lock()
	defer lock.Unlock()

	st, err := w.checkpoints.LoadOrCreate(ctx, in.ConversationID)
	if err != nil {
		return nil, err
	}
	st.BeginTurn(in.Query)

	out, err := w.runnable.Invoke(ctx, st, compose.WithCallbacks(observers.NewAllCallbacks()...))
	if err != nil {
		return nil, err
	}

	if err := w.checkpoints.Save(ctx, out); err != nil {
		// The turn already produced its result; surface the persistence
		// failure on the output instead of discarding the response.
		out.LastError = err.Error()
	}
	return out, nil
}

// Reset drops the checkpoint for a conversation.
func (w *Workflow) Reset(ctx context.Context, conversationID string) error {
	return w.checkpoints.Reset(ctx, conversationID)
}

func (w *Workflow) lockFor(conversationID string) *sync.Mutex {
	w.mu.Lock()
	defer w.mu.Unlock()
	l, ok := w.locks[conversationID]
	if !ok {
		l = &sync.Mutex{}
		w.locks[conversationID] = l
	}
	return l
}

// graphBuilder assembles the fixed six-node topology.
type graphBuilder struct {
	config *GraphConfig
	graph  *compose.Graph[*model.AgentState, *model.AgentState]
}

// BuildGraph constructs and compiles the stage graph:
//
//	classify_query -> check_cache -> (use_cached_context | call_llm)
//	use_cached_context -> format_output
//	call_llm -> execute_tools -> format_output
func BuildGraph(ctx context.Context, config *GraphConfig) (compose.Runnable[*model.AgentState, *model.AgentState], error) {
	if config == nil {
		return nil, fmt.Errorf("graph config is nil")
	}
	if config.ChatModels == nil || config.ChatModels.Extractor == nil || config.ChatModels.Response == nil {
		return nil, fmt.Errorf("chat models are not properly initialized")
	}
	if config.Registry == nil || config.KnowledgeStore == nil {
		return nil, fmt.Errorf("tool registry or knowledge store is nil")
	}

	if err := config.ChatModels.BindTools(tools.Infos()); err != nil {
		return nil, err
	}

	b := &graphBuilder{
		config: config,
		graph:  compose.NewGraph[*model.AgentState, *model.AgentState](),
	}

	if err := b.addNodes(); err != nil {
		return nil, err
	}
	if err := b.addEdges(); err != nil {
		return nil, err
	}
	if err := b.addBranch(); err != nil {
		return nil, err
	}

	return b.compile(ctx)
}

func (b *graphBuilder) addNodes() error {
	cms := b.config.ChatModels

	nodeDefs := []struct {
		name   string
		lambda *compose.Lambda
	}{
		{nodes.NodeClassify, nodes.NewClassifyNode(cms.Extractor, cms.ExtractorModelName)},
		{nodes.NodeCheckCache, nodes.NewCheckCacheNode(b.config.KnowledgeStore, b.config.CacheThreshold)},
		{nodes.NodeUseCache, nodes.NewUseCacheNode(b.config.Registry)},
		{nodes.NodeCallLLM, nodes.NewCallLLMNode(cms.Response, cms.ResponseModelName)},
		{nodes.NodeExecuteTools, nodes.NewExecuteToolsNode(b.config.Registry)},
		{nodes.NodeFormatOutput, nodes.NewFormatOutputNode(cms.Response, cms.ResponseModelName)},
	}

	for _, def := range nodeDefs {
		if err := b.graph.AddLambdaNode(def.name, def.lambda); err != nil {
			return fmt.Errorf("add node %s: %w", def.name, err)
		}
	}
	return nil
}

func (b *graphBuilder) addEdges() error {
	edges := [][2]string{
		{compose.START, nodes.NodeClassify},
		{nodes.NodeClassify, nodes.NodeCheckCache},
		{nodes.NodeUseCache, nodes.NodeFormatOutput},
		{nodes.NodeCallLLM, nodes.NodeExecuteTools},
		{nodes.NodeExecuteTools, nodes.NodeFormatOutput},
		{nodes.NodeFormatOutput, compose.END},
	}

	for _, edge := range edges {
		if err := b.graph.AddEdge(edge[0], edge[1]); err != nil {
			return fmt.Errorf("add edge %s->%s: %w", edge[0], edge[1], err)
		}
	}
	return nil
}

func (b *graphBuilder) addBranch() error {
	branch := compose.NewGraphBranch(
		routeOnCachePath,
		map[string]bool{
			nodes.NodeUseCache: true,
			nodes.NodeCallLLM:  true,
		},
	)
	if err := b.graph.AddBranch(nodes.NodeCheckCache, branch); err != nil {
		return fmt.Errorf("add cache branch: %w", err)
	}
	return nil
}

// routeOnCachePath is the single decision point of the topology. It is a pure
// function of state: no I/O, no logging. Routing visibility comes from the
// observers attached at invoke time.
func routeOnCachePath(ctx context.Context, st *model.AgentState) (string, error) {
	if st.IsCachePath {
		return nodes.NodeUseCache, nil
	}
	return nodes.NodeCallLLM, nil
}

func (b *graphBuilder) compile(ctx context.Context) (compose.Runnable[*model.AgentState, *model.AgentState], error) {
	runnable, err := b.graph.Compile(ctx,
		compose.WithGraphName("travel_assistant"),
		compose.WithMaxRunSteps(10),
	)
	if err != nil {
		logx.Error().Err(err).Msg("Error compiling graph")
		return nil, fmt.Errorf("error compiling graph: %w", err)
	}

	logx.Debug().Msg("Graph compiled successfully")
	return runnable, nil
}
