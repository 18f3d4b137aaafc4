package contract

import "context"

// ToolGateway executes one tool call and returns its raw result.
// The result is normalized by the caller before it enters history.
type ToolGateway interface {
	Execute(ctx context.Context, call ToolCall) (any, error)
}

// DecideFunc picks the next action from the conversation history.
type DecideFunc func(history []Message) Action
