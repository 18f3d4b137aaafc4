package orchestrator

import (
	"context"
	"fmt"

	"github.com/cloudwego/eino/compose"
	nodex "github.com/tanpawarit/catalog-agent/agent/nodes"
)

// compileAskGraph wires validate -> decide, then loops decide -> act -> decide
// until the router answers.
func (o *Orchestrator) compileAskGraph(
	ctx context.Context,
) (compose.Runnable[nodex.GraphInput, nodex.GraphOutput], error) {
	graph := compose.NewGraph[nodex.GraphInput, nodex.GraphOutput]()

	if err := graph.AddLambdaNode("validate_request",
		compose.InvokableLambda(func(ctx context.Context, in nodex.GraphInput) (*nodex.GraphState, error) {
			out, err := nodex.ValidateRequest(in, o.newID)
			return out, recordFailure(ctx, err)
		}),
	); err != nil {
		return nil, fmt.Errorf("add node validate_request: %w", err)
	}

	if err := graph.AddLambdaNode("decide",
		compose.InvokableLambda(func(ctx context.Context, in *nodex.GraphState) (*nodex.GraphState, error) {
			out, err := nodex.Decide(in, o.decide)
			return out, recordFailure(ctx, err)
		}),
	); err != nil {
		return nil, fmt.Errorf("add node decide: %w", err)
	}

	if err := graph.AddLambdaNode(nodex.NodeAct,
		compose.InvokableLambda(func(ctx context.Context, in *nodex.GraphState) (*nodex.GraphState, error) {
			out, err := nodex.Act(ctx, in, o.tools)
			return out, recordFailure(ctx, err)
		}),
	); err != nil {
		return nil, fmt.Errorf("add node act: %w", err)
	}

	if err := graph.AddLambdaNode(nodex.NodeFinalize,
		compose.InvokableLambda(func(ctx context.Context, in *nodex.GraphState) (nodex.GraphOutput, error) {
			out, err := nodex.FinalizeAnswer(in)
			return out, recordFailure(ctx, err)
		}),
	); err != nil {
		return nil, fmt.Errorf("add node finalize: %w", err)
	}

	branch := compose.NewGraphBranch(
		func(ctx context.Context, in *nodex.GraphState) (string, error) {
			next, err := nodex.NextNode(in)
			return next, recordFailure(ctx, err)
		},
		map[string]bool{
			nodex.NodeAct:      true,
			nodex.NodeFinalize: true,
		},
	)
	if err := graph.AddBranch("decide", branch); err != nil {
		return nil, fmt.Errorf("add decide branch: %w", err)
	}

	edges := [][2]string{
		{compose.START, "validate_request"},
		{"validate_request", "decide"},
		{nodex.NodeAct, "decide"},
		{nodex.NodeFinalize, compose.END},
	}
	for _, edge := range edges {
		if err := graph.AddEdge(edge[0], edge[1]); err != nil {
			return nil, fmt.Errorf("add edge %s->%s: %w", edge[0], edge[1], err)
		}
	}

	runner, err := graph.Compile(ctx,
		compose.WithGraphName("orchestrator.ask"),
		compose.WithMaxRunSteps(o.maxSteps),
	)
	if err != nil {
		return nil, fmt.Errorf("compile orchestrator graph: %w", err)
	}
	return runner, nil
}

type failureKey struct{}

// runFailure keeps the first node error of a run so callers get it back
// without the graph runner's wrapping.
type runFailure struct {
	err error
}

func withFailure(ctx context.Context) (context.Context, *runFailure) {
	f := &runFailure{}
	return context.WithValue(ctx, failureKey{}, f), f
}

func recordFailure(ctx context.Context, err error) error {
	if err == nil {
		return nil
	}
	if f, ok := ctx.Value(failureKey{}).(*runFailure); ok && f.err == nil {
		f.err = err
	}
	return err
}
