package observers

import (
	"context"

	einocb "github.com/cloudwego/eino/callbacks"

	logx "github.com/voyago-poc/server/pkg/logger"
)

// NewAllCallbacks returns the observer handlers attached to every graph run:
// a generic node tracer plus typed model/prompt observers. All routing and
// stage visibility lives here so the graph's branch predicate stays pure.
func NewAllCallbacks() []einocb.Handler {
	return []einocb.Handler{
		newNodeTracer(),
		newModelObserver(),
	}
}

// newNodeTracer logs start/end/error for every graph component, including the
// lambda stage nodes.
func newNodeTracer() einocb.Handler {
	return einocb.NewHandlerBuilder().
		OnStartFn(func(ctx context.Context, info *einocb.RunInfo, input einocb.CallbackInput) context.Context {
			if info != nil && info.Name != "" {
				logx.Debug().
					Str("node", info.Name).
					Str("component", string(info.Component)).
					Msg("node start")
			}
			return ctx
		}).
		OnEndFn(func(ctx context.Context, info *einocb.RunInfo, output einocb.CallbackOutput) context.Context {
			if info != nil && info.Name != "" {
				logx.Debug().
					Str("node", info.Name).
					Str("component", string(info.Component)).
					Msg("node end")
			}
			return ctx
		}).
		OnErrorFn(func(ctx context.Context, info *einocb.RunInfo, err error) context.Context {
			name := ""
			if info != nil {
				name = info.Name
			}
			logx.Error().Err(err).Str("node", name).Msg("node error")
			return ctx
		}).
		Build()
}
