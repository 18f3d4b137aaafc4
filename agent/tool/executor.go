package tool

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"
	catalogx "github.com/tanpawarit/catalog-agent/agent/catalog"
	contractx "github.com/tanpawarit/catalog-agent/agent/contract"
	metricsx "github.com/tanpawarit/catalog-agent/pkg/metrics"
)

// Executor runs one tool call against a catalog store. It satisfies
// contract.ToolGateway through Execute.
type Executor func(ctx context.Context, call contractx.ToolCall) (any, error)

func (e Executor) Execute(ctx context.Context, call contractx.ToolCall) (any, error) {
	return e(ctx, call)
}

type Option func(*options)

type options struct {
	metrics *metricsx.Provider
}

func WithMetrics(provider *metricsx.Provider) Option {
	return func(o *options) {
		o.metrics = provider
	}
}

func NewExecutor(store catalogx.Store, opts ...Option) (Executor, error) {
	if store == nil {
		return nil, errors.New("catalog store is required")
	}
	var o options
	for _, opt := range opts {
		opt(&o)
	}

	return func(ctx context.Context, call contractx.ToolCall) (any, error) {
		h, ok := handlers[call.Tool]
		if !ok {
			o.metrics.ObserveToolCall(string(call.Tool), statusOf(contractx.ErrUnknownTool), 0)
			return nil, fmt.Errorf("%w: %q", contractx.ErrUnknownTool, call.Tool)
		}

		args := call.Args
		if args == nil {
			args = map[string]any{}
		}

		start := time.Now()
		out, err := h(ctx, store, args)
		elapsed := time.Since(start)
		o.metrics.ObserveToolCall(string(call.Tool), statusOf(err), elapsed)

		event := log.Debug()
		if err != nil {
			event = event.Err(err)
		}
		event.
			Str("call_id", call.ID).
			Str("tool", string(call.Tool)).
			Dur("elapsed", elapsed).
			Msg("tool executed")

		if err != nil {
			return nil, err
		}
		return out, nil
	}, nil
}

func statusOf(err error) string {
	switch {
	case err == nil:
		return "ok"
	case errors.Is(err, catalogx.ErrProductNotFound):
		return "not_found"
	case errors.Is(err, contractx.ErrInvalidArgument):
		return "invalid_argument"
	case errors.Is(err, contractx.ErrUnknownTool):
		return "unknown_tool"
	default:
		return "error"
	}
}
