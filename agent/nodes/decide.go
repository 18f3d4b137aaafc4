package orchestratornode

import (
	"fmt"

	"github.com/rs/zerolog/log"
	contractx "github.com/tanpawarit/catalog-agent/agent/contract"
)

const (
	NodeAct      = "act"
	NodeFinalize = "finalize"
)

func Decide(in *GraphState, decide contractx.DecideFunc) (*GraphState, error) {
	if in == nil {
		return nil, fmt.Errorf("%w: graph state is nil", contractx.ErrValidation)
	}
	if in.Pending != nil {
		return nil, fmt.Errorf("%w: tool call %s is still pending", contractx.ErrValidation, in.Pending.ID)
	}

	action := decide(in.History)
	if err := action.Validate(); err != nil {
		return nil, err
	}

	if action.Terminal() {
		in.Answer = action.Answer
		in.History = append(in.History, contractx.AgentText(action.Answer.Text))
		log.Debug().Str("run_id", in.RunID).Bool("structured", action.Answer.Structured()).Msg("answer decided")
		return in, nil
	}

	in.Pending = action.Call
	in.History = append(in.History, contractx.AgentCall(*action.Call))
	log.Debug().
		Str("run_id", in.RunID).
		Str("call_id", action.Call.ID).
		Str("tool", string(action.Call.Tool)).
		Msg("tool call decided")
	return in, nil
}

// NextNode routes a decided state to the act node while a call is pending.
func NextNode(in *GraphState) (string, error) {
	switch {
	case in == nil:
		return "", fmt.Errorf("%w: graph state is nil", contractx.ErrValidation)
	case in.Pending != nil:
		return NodeAct, nil
	case in.Answer != nil:
		return NodeFinalize, nil
	default:
		return "", fmt.Errorf("%w: decision produced neither a call nor an answer", contractx.ErrValidation)
	}
}
