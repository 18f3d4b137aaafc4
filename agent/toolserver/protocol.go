// Package toolserver exposes a tool gateway over line-delimited JSON so the
// catalog can live in a separate process. Each request and each response is
// exactly one line.
package toolserver

import (
	"errors"

	catalogx "github.com/tanpawarit/catalog-agent/agent/catalog"
	contractx "github.com/tanpawarit/catalog-agent/agent/contract"
)

const (
	MethodCallTool  = "call_tool"
	MethodListTools = "list_tools"
)

const (
	CodeNotFound        = "not_found"
	CodeInvalidArgument = "invalid_argument"
	CodeUnknownTool     = "unknown_tool"
	CodeInternal        = "internal"
)

type Request struct {
	Method    string         `json:"method"`
	Name      string         `json:"name,omitempty"`
	Arguments map[string]any `json:"arguments,omitempty"`
}

// Response carries Result as JSON text on success, or Error and Code.
type Response struct {
	Result string           `json:"result,omitempty"`
	Tools  []ToolDescriptor `json:"tools,omitempty"`
	Error  string           `json:"error,omitempty"`
	Code   string           `json:"code,omitempty"`
}

type ToolDescriptor struct {
	Name        string `json:"name" yaml:"name"`
	Description string `json:"description" yaml:"description"`
}

// RemoteError is a tool failure reported by the server. It unwraps to the
// sentinel matching its code so errors.Is works across the process boundary.
type RemoteError struct {
	Code    string
	Message string
}

func (e *RemoteError) Error() string {
	return e.Message
}

func (e *RemoteError) Unwrap() error {
	switch e.Code {
	case CodeNotFound:
		return catalogx.ErrProductNotFound
	case CodeInvalidArgument:
		return contractx.ErrInvalidArgument
	case CodeUnknownTool:
		return contractx.ErrUnknownTool
	default:
		return nil
	}
}

func codeOf(err error) string {
	switch {
	case errors.Is(err, catalogx.ErrProductNotFound):
		return CodeNotFound
	case errors.Is(err, contractx.ErrInvalidArgument):
		return CodeInvalidArgument
	case errors.Is(err, contractx.ErrUnknownTool):
		return CodeUnknownTool
	default:
		return CodeInternal
	}
}
