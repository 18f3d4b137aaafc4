package orchestratornode

import (
	"fmt"

	contractx "github.com/tanpawarit/catalog-agent/agent/contract"
)

func FinalizeAnswer(in *GraphState) (GraphOutput, error) {
	if in == nil {
		return GraphOutput{}, fmt.Errorf("%w: graph state is nil", contractx.ErrValidation)
	}
	if in.Answer == nil {
		return GraphOutput{}, fmt.Errorf("%w: run finished without an answer", contractx.ErrValidation)
	}
	return GraphOutput{
		RunID:   in.RunID,
		Answer:  *in.Answer,
		History: in.History,
	}, nil
}
