package toolserver

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"os/exec"
	"sync"

	contractx "github.com/tanpawarit/catalog-agent/agent/contract"
)

// Client talks to a Server over a pair of streams. Calls are serialized: one
// request line is written and one response line read at a time.
type Client struct {
	mu      sync.Mutex
	enc     *json.Encoder
	scanner *bufio.Scanner
	close   func() error
}

var _ contractx.ToolGateway = (*Client)(nil)

// NewClient reads responses from r and writes requests to w. Close closes w
// when it is an io.Closer.
func NewClient(r io.Reader, w io.Writer) *Client {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineSize)
	c := &Client{
		enc:     json.NewEncoder(w),
		scanner: scanner,
		close:   func() error { return nil },
	}
	if closer, ok := w.(io.Closer); ok {
		c.close = closer.Close
	}
	return c
}

// Start launches command as a tool server subprocess. Its stderr is passed
// through so server logs stay visible.
func Start(ctx context.Context, command string, args ...string) (*Client, error) {
	cmd := exec.CommandContext(ctx, command, args...)
	cmd.Stderr = os.Stderr

	stdin, err := cmd.StdinPipe()
	if err != nil {
		return nil, fmt.Errorf("%w: create stdin pipe: %v", contractx.ErrTransport, err)
	}
	stdout, err := cmd.StdoutPipe()
	if err != nil {
		return nil, fmt.Errorf("%w: create stdout pipe: %v", contractx.ErrTransport, err)
	}
	if err := cmd.Start(); err != nil {
		return nil, fmt.Errorf("%w: start %s: %v", contractx.ErrTransport, command, err)
	}

	c := NewClient(stdout, stdin)
	c.close = func() error {
		_ = stdin.Close()
		return cmd.Wait()
	}
	return c, nil
}

// Execute returns the tool result as JSON text.
func (c *Client) Execute(ctx context.Context, call contractx.ToolCall) (any, error) {
	resp, err := c.roundTrip(ctx, Request{
		Method:    MethodCallTool,
		Name:      string(call.Tool),
		Arguments: call.Args,
	})
	if err != nil {
		return nil, err
	}
	return resp.Result, nil
}

func (c *Client) List(ctx context.Context) ([]ToolDescriptor, error) {
	resp, err := c.roundTrip(ctx, Request{Method: MethodListTools})
	if err != nil {
		return nil, err
	}
	return resp.Tools, nil
}

func (c *Client) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.close()
}

func (c *Client) roundTrip(ctx context.Context, req Request) (Response, error) {
	if err := ctx.Err(); err != nil {
		return Response{}, err
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if err := c.enc.Encode(req); err != nil {
		return Response{}, fmt.Errorf("%w: send request: %v", contractx.ErrTransport, err)
	}
	if !c.scanner.Scan() {
		if err := c.scanner.Err(); err != nil {
			return Response{}, fmt.Errorf("%w: read response: %v", contractx.ErrTransport, err)
		}
		return Response{}, fmt.Errorf("%w: server closed the stream", contractx.ErrTransport)
	}

	var resp Response
	if err := json.Unmarshal(c.scanner.Bytes(), &resp); err != nil {
		return Response{}, fmt.Errorf("%w: decode response: %v", contractx.ErrTransport, err)
	}
	if resp.Error != "" {
		return Response{}, &RemoteError{Code: resp.Code, Message: resp.Error}
	}
	return resp, nil
}
