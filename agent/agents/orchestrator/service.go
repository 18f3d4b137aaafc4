package orchestrator

import (
	"context"
	"errors"

	"github.com/cloudwego/eino/compose"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	contractx "github.com/tanpawarit/catalog-agent/agent/contract"
	nodex "github.com/tanpawarit/catalog-agent/agent/nodes"
	"github.com/tanpawarit/catalog-agent/agent/router"
	metricsx "github.com/tanpawarit/catalog-agent/pkg/metrics"
)

const defaultMaxSteps = 50

type Config struct {
	// MaxSteps bounds graph node executions per run.
	MaxSteps int `split_words:"true" default:"50"`
}

type Option func(*Orchestrator)

// WithRouter replaces the keyword router.
func WithRouter(decide contractx.DecideFunc) Option {
	return func(o *Orchestrator) {
		if decide != nil {
			o.decide = decide
		}
	}
}

func WithMetrics(provider *metricsx.Provider) Option {
	return func(o *Orchestrator) {
		o.metrics = provider
	}
}

type Orchestrator struct {
	tools   contractx.ToolGateway
	decide  contractx.DecideFunc
	metrics *metricsx.Provider

	graphRunner compose.Runnable[nodex.GraphInput, nodex.GraphOutput]

	maxSteps int
	newID    func() string
}

func New(tools contractx.ToolGateway, cfg Config, opts ...Option) (*Orchestrator, error) {
	if tools == nil {
		return nil, errors.New("tool gateway is required")
	}

	maxSteps := cfg.MaxSteps
	if maxSteps <= 0 {
		maxSteps = defaultMaxSteps
	}

	o := &Orchestrator{
		tools:    tools,
		decide:   router.Decide,
		maxSteps: maxSteps,
		newID:    uuid.NewString,
	}
	for _, opt := range opts {
		opt(o)
	}

	graphRunner, err := o.compileAskGraph(context.Background())
	if err != nil {
		return nil, err
	}
	o.graphRunner = graphRunner

	return o, nil
}

// Run answers one query and returns the full conversation history with it.
func (o *Orchestrator) Run(ctx context.Context, query string) (nodex.GraphOutput, error) {
	ctx, failure := withFailure(ctx)

	out, err := o.graphRunner.Invoke(ctx, nodex.GraphInput{Query: query})
	if err != nil {
		o.metrics.IncrementRun("error")
		if failure.err != nil {
			err = failure.err
		}
		log.Debug().Err(err).Msg("agent run failed")
		return nodex.GraphOutput{}, err
	}

	o.metrics.IncrementRun("answer")
	log.Debug().
		Str("run_id", out.RunID).
		Int("tool_calls", contractx.CountCalls(out.History)).
		Msg("agent run finished")
	return out, nil
}

func (o *Orchestrator) Ask(ctx context.Context, query string) (contractx.Answer, error) {
	out, err := o.Run(ctx, query)
	if err != nil {
		return contractx.Answer{}, err
	}
	return out.Answer, nil
}
