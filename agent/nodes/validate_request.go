package orchestratornode

import (
	"strings"

	contractx "github.com/tanpawarit/catalog-agent/agent/contract"
)

type GraphInput struct {
	Query string
}

type GraphOutput struct {
	RunID   string
	Answer  contractx.Answer
	History []contractx.Message
}

// GraphState is threaded through every node of one run. Pending and Answer
// are never both set.
type GraphState struct {
	RunID   string
	Query   string
	History []contractx.Message

	Pending *contractx.ToolCall
	Answer  *contractx.Answer
}

func ValidateRequest(in GraphInput, newID func() string) (*GraphState, error) {
	query := strings.TrimSpace(in.Query)
	if query == "" {
		return nil, contractx.ErrInvalidMessage
	}

	return &GraphState{
		RunID:   newID(),
		Query:   query,
		History: []contractx.Message{contractx.UserMessage(query)},
	}, nil
}
