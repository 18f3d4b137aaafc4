package orchestratornode

import (
	"context"
	"fmt"

	contractx "github.com/tanpawarit/catalog-agent/agent/contract"
	"github.com/tanpawarit/catalog-agent/agent/normalize"
)

// Act runs the pending call and appends its normalized result. Gateway errors
// are returned as is.
func Act(ctx context.Context, in *GraphState, tools contractx.ToolGateway) (*GraphState, error) {
	if in == nil {
		return nil, fmt.Errorf("%w: graph state is nil", contractx.ErrValidation)
	}
	if in.Pending == nil {
		return nil, fmt.Errorf("%w: no pending tool call", contractx.ErrValidation)
	}

	call := *in.Pending
	raw, err := tools.Execute(ctx, call)
	if err != nil {
		return nil, err
	}

	in.History = append(in.History, contractx.ToolMessage(contractx.ToolResult{
		CallID:  call.ID,
		Tool:    call.Tool,
		Payload: normalize.Payload(raw),
	}))
	in.Pending = nil
	return in, nil
}
