package toolserver

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/spf13/afero"
	catalogx "github.com/tanpawarit/catalog-agent/agent/catalog"
	contractx "github.com/tanpawarit/catalog-agent/agent/contract"
	"github.com/tanpawarit/catalog-agent/agent/normalize"
	toolx "github.com/tanpawarit/catalog-agent/agent/tool"
)

func newTestServer(t *testing.T) *Server {
	t.Helper()
	store := catalogx.NewFileStore(afero.NewMemMapFs(), "products.json")
	executor, err := toolx.NewExecutor(store)
	if err != nil {
		t.Fatalf("NewExecutor() error = %v", err)
	}
	server, err := NewServer(executor, toolx.Infos())
	if err != nil {
		t.Fatalf("NewServer() error = %v", err)
	}
	return server
}

// connect runs a server on in-memory pipes and returns a client bound to it.
func connect(t *testing.T) *Client {
	t.Helper()
	server := newTestServer(t)

	requestsR, requestsW := io.Pipe()
	responsesR, responsesW := io.Pipe()

	done := make(chan error, 1)
	go func() {
		err := server.Serve(context.Background(), requestsR, responsesW)
		_ = responsesW.Close()
		done <- err
	}()

	client := NewClient(responsesR, requestsW)
	t.Cleanup(func() {
		if err := client.Close(); err != nil {
			t.Errorf("Close() error = %v", err)
		}
		if err := <-done; err != nil {
			t.Errorf("Serve() error = %v", err)
		}
	})
	return client
}

func TestNewServerRequiresGateway(t *testing.T) {
	t.Parallel()

	if _, err := NewServer(nil, nil); err == nil {
		t.Fatal("expected error for nil gateway")
	}
}

func TestClientCallRoundTrip(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	client := connect(t)

	raw, err := client.Execute(ctx, contractx.ToolCall{
		ID:   "call_1",
		Tool: contractx.ToolAddProduct,
		Args: map[string]any{"name": "Ручка", "price": 1.2, "category": "Канцелярия", "in_stock": true},
	})
	if err != nil {
		t.Fatalf("Execute(add_product) error = %v", err)
	}
	if _, ok := raw.(string); !ok {
		t.Fatalf("Execute() result type = %T, want JSON text", raw)
	}

	want := map[string]any{"id": float64(1), "name": "Ручка", "price": 1.2, "category": "Канцелярия", "in_stock": true}
	if diff := cmp.Diff(want, normalize.Payload(raw)); diff != "" {
		t.Fatalf("add_product mismatch (-want +got):\n%s", diff)
	}

	raw, err = client.Execute(ctx, contractx.ToolCall{ID: "call_2", Tool: contractx.ToolListProducts})
	if err != nil {
		t.Fatalf("Execute(list_products) error = %v", err)
	}
	if diff := cmp.Diff([]any{want}, normalize.Payload(raw)); diff != "" {
		t.Fatalf("list_products mismatch (-want +got):\n%s", diff)
	}
}

func TestClientErrorsKeepTheirKind(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	client := connect(t)

	_, err := client.Execute(ctx, contractx.ToolCall{Tool: contractx.ToolGetProduct, Args: map[string]any{"product_id": 7}})
	if !errors.Is(err, catalogx.ErrProductNotFound) {
		t.Fatalf("get_product error = %v, want ErrProductNotFound", err)
	}
	if err.Error() != "product not found: id=7" {
		t.Fatalf("error message = %q", err.Error())
	}

	_, err = client.Execute(ctx, contractx.ToolCall{Tool: contractx.ToolCalculateDiscount, Args: map[string]any{"price": "x", "percentage": 1}})
	if !errors.Is(err, contractx.ErrInvalidArgument) {
		t.Fatalf("calculate_discount error = %v, want ErrInvalidArgument", err)
	}

	_, err = client.Execute(ctx, contractx.ToolCall{Tool: "rename_product"})
	if !errors.Is(err, contractx.ErrUnknownTool) {
		t.Fatalf("unknown tool error = %v, want ErrUnknownTool", err)
	}
}

func TestClientList(t *testing.T) {
	t.Parallel()

	client := connect(t)
	tools, err := client.List(context.Background())
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	names := make([]string, 0, len(tools))
	for _, tool := range tools {
		names = append(names, tool.Name)
	}
	want := []string{"list_products", "get_product", "add_product", "get_statistics", "calculate_discount"}
	if diff := cmp.Diff(want, names); diff != "" {
		t.Fatalf("List() mismatch (-want +got):\n%s", diff)
	}
}

func TestClientCanceledContext(t *testing.T) {
	t.Parallel()

	client := connect(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := client.Execute(ctx, contractx.ToolCall{Tool: contractx.ToolListProducts}); !errors.Is(err, context.Canceled) {
		t.Fatalf("Execute() error = %v, want context.Canceled", err)
	}
}

func TestClientServerGone(t *testing.T) {
	t.Parallel()

	responsesR, responsesW := io.Pipe()
	_ = responsesW.Close()
	client := NewClient(responsesR, io.Discard)

	_, err := client.Execute(context.Background(), contractx.ToolCall{Tool: contractx.ToolListProducts})
	if !errors.Is(err, contractx.ErrTransport) {
		t.Fatalf("Execute() error = %v, want ErrTransport", err)
	}
}

func TestHandleRequestMalformed(t *testing.T) {
	t.Parallel()

	server := newTestServer(t)
	cases := map[string]string{
		"not json":       `{"method":`,
		"unknown method": `{"method":"shutdown"}`,
		"missing name":   `{"method":"call_tool"}`,
	}
	for name, line := range cases {
		var resp Response
		if err := json.Unmarshal(server.HandleRequest(context.Background(), []byte(line)), &resp); err != nil {
			t.Fatalf("%s: response is not JSON: %v", name, err)
		}
		if resp.Error == "" || resp.Code != CodeInvalidArgument {
			t.Fatalf("%s: response = %#v", name, resp)
		}
	}
}

func TestClientNonFiniteArgumentKeepsServerAlive(t *testing.T) {
	t.Parallel()

	client := connect(t)
	ctx := context.Background()

	_, err := client.Execute(ctx, contractx.ToolCall{
		Tool: contractx.ToolCalculateDiscount,
		Args: map[string]any{"price": "NaN", "percentage": float64(10)},
	})
	if !errors.Is(err, contractx.ErrInvalidArgument) {
		t.Fatalf("Execute(NaN) error = %v, want ErrInvalidArgument", err)
	}

	out, err := client.Execute(ctx, contractx.ToolCall{
		Tool: contractx.ToolCalculateDiscount,
		Args: map[string]any{"price": float64(200), "percentage": float64(10)},
	})
	if err != nil {
		t.Fatalf("Execute() after rejected call error = %v", err)
	}
	want := map[string]any{"discounted_price": float64(180)}
	if diff := cmp.Diff(want, normalize.Payload(out)); diff != "" {
		t.Fatalf("result mismatch (-want +got):\n%s", diff)
	}
}
