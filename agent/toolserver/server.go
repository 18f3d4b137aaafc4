package toolserver

import (
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/cloudwego/eino/schema"
	"github.com/rs/zerolog/log"
	contractx "github.com/tanpawarit/catalog-agent/agent/contract"
)

const maxLineSize = 4 << 20

type Server struct {
	tools contractx.ToolGateway
	infos []*schema.ToolInfo
}

func NewServer(tools contractx.ToolGateway, infos []*schema.ToolInfo) (*Server, error) {
	if tools == nil {
		return nil, errors.New("tool gateway is required")
	}
	return &Server{tools: tools, infos: infos}, nil
}

// Serve answers requests read from in until EOF or ctx is done.
func (s *Server) Serve(ctx context.Context, in io.Reader, out io.Writer) error {
	scanner := bufio.NewScanner(in)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineSize)
	w := bufio.NewWriter(out)

	for scanner.Scan() {
		if err := ctx.Err(); err != nil {
			return err
		}
		line := scanner.Bytes()
		if len(line) == 0 {
			continue
		}

		resp := s.HandleRequest(ctx, line)
		if _, err := w.Write(append(resp, '\n')); err != nil {
			return fmt.Errorf("write response: %w", err)
		}
		if err := w.Flush(); err != nil {
			return fmt.Errorf("flush response: %w", err)
		}
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("read request: %w", err)
	}
	return nil
}

// HandleRequest turns one request line into one response line (without the
// trailing newline). Malformed requests get an error response, never a Go error.
func (s *Server) HandleRequest(ctx context.Context, line []byte) []byte {
	var req Request
	if err := json.Unmarshal(line, &req); err != nil {
		return encode(Response{Error: fmt.Sprintf("invalid JSON: %v", err), Code: CodeInvalidArgument})
	}

	switch req.Method {
	case MethodListTools:
		return encode(Response{Tools: s.descriptors()})
	case MethodCallTool:
		return s.handleCallTool(ctx, req)
	default:
		return encode(Response{Error: fmt.Sprintf("unknown method: %q", req.Method), Code: CodeInvalidArgument})
	}
}

func (s *Server) handleCallTool(ctx context.Context, req Request) []byte {
	if req.Name == "" {
		return encode(Response{Error: "tool name is required", Code: CodeInvalidArgument})
	}
	args := req.Arguments
	if args == nil {
		args = map[string]any{}
	}

	out, err := s.tools.Execute(ctx, contractx.ToolCall{Tool: contractx.ToolName(req.Name), Args: args})
	if err != nil {
		log.Debug().Err(err).Str("tool", req.Name).Msg("tool call failed")
		return encode(Response{Error: err.Error(), Code: codeOf(err)})
	}

	result, err := json.Marshal(out)
	if err != nil {
		return encode(Response{Error: fmt.Sprintf("encode result: %v", err), Code: CodeInternal})
	}
	return encode(Response{Result: string(result)})
}

func (s *Server) descriptors() []ToolDescriptor {
	out := make([]ToolDescriptor, 0, len(s.infos))
	for _, info := range s.infos {
		out = append(out, ToolDescriptor{Name: info.Name, Description: info.Desc})
	}
	return out
}

func encode(resp Response) []byte {
	raw, err := json.Marshal(resp)
	if err != nil {
		return []byte(`{"error":"failed to create response","code":"internal"}`)
	}
	return raw
}
