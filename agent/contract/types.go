package contract

import "fmt"

type ToolName string

const (
	ToolListProducts      ToolName = "list_products"
	ToolGetProduct        ToolName = "get_product"
	ToolAddProduct        ToolName = "add_product"
	ToolGetStatistics     ToolName = "get_statistics"
	ToolCalculateDiscount ToolName = "calculate_discount"
)

// ToolNames lists the closed set of tools in registry order.
var ToolNames = []ToolName{
	ToolListProducts,
	ToolGetProduct,
	ToolAddProduct,
	ToolGetStatistics,
	ToolCalculateDiscount,
}

func (n ToolName) Valid() bool {
	for _, name := range ToolNames {
		if name == n {
			return true
		}
	}
	return false
}

type ToolCall struct {
	ID   string         `json:"id"`
	Tool ToolName       `json:"tool"`
	Args map[string]any `json:"args,omitempty"`
}

type ToolResult struct {
	CallID  string   `json:"call_id"`
	Tool    ToolName `json:"tool"`
	Payload any      `json:"payload,omitempty"`
}

type MessageKind string

const (
	MessageUser  MessageKind = "user"
	MessageAgent MessageKind = "agent"
	MessageTool  MessageKind = "tool"
)

// Message is one entry of the conversation history.
// User messages carry Text, agent messages carry either Text or Call,
// tool messages carry Result.
type Message struct {
	Kind   MessageKind `json:"kind"`
	Text   string      `json:"text,omitempty"`
	Call   *ToolCall   `json:"call,omitempty"`
	Result *ToolResult `json:"result,omitempty"`
}

func UserMessage(text string) Message {
	return Message{Kind: MessageUser, Text: text}
}

func AgentText(text string) Message {
	return Message{Kind: MessageAgent, Text: text}
}

func AgentCall(call ToolCall) Message {
	return Message{Kind: MessageAgent, Call: &call}
}

func ToolMessage(result ToolResult) Message {
	return Message{Kind: MessageTool, Result: &result}
}

// Answer is the terminal value of a run. Data is set only for structured
// answers; Text is always printable.
type Answer struct {
	Text string `json:"text"`
	Data any    `json:"data,omitempty"`
}

func (a Answer) Structured() bool {
	return a.Data != nil
}

// Value returns Data for structured answers and Text otherwise.
func (a Answer) Value() any {
	if a.Structured() {
		return a.Data
	}
	return a.Text
}

// Action is what the router emits: exactly one of Call or Answer is set.
type Action struct {
	Call   *ToolCall
	Answer *Answer
}

func Invoke(call ToolCall) Action {
	return Action{Call: &call}
}

func Respond(answer Answer) Action {
	return Action{Answer: &answer}
}

func (a Action) Terminal() bool {
	return a.Answer != nil
}

func (a Action) Validate() error {
	switch {
	case a.Call != nil && a.Answer != nil:
		return fmt.Errorf("%w: action carries both a tool call and an answer", ErrValidation)
	case a.Call == nil && a.Answer == nil:
		return fmt.Errorf("%w: action is empty", ErrValidation)
	case a.Call != nil && !a.Call.Tool.Valid():
		return fmt.Errorf("%w: tool=%q", ErrUnknownTool, a.Call.Tool)
	}
	return nil
}

// LastUserText returns the text of the most recent user message.
func LastUserText(history []Message) string {
	for i := len(history) - 1; i >= 0; i-- {
		if history[i].Kind == MessageUser {
			return history[i].Text
		}
	}
	return ""
}

// CountCalls returns how many tool calls the agent has issued so far.
func CountCalls(history []Message) int {
	n := 0
	for _, msg := range history {
		if msg.Kind == MessageAgent && msg.Call != nil {
			n++
		}
	}
	return n
}
