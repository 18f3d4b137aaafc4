package httpapi

import (
	"context"
	"encoding/json"
	"fmt"
	"net"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	catalogx "github.com/tanpawarit/catalog-agent/agent/catalog"
	contractx "github.com/tanpawarit/catalog-agent/agent/contract"
	metricsx "github.com/tanpawarit/catalog-agent/pkg/metrics"
)

type fakeAgent struct {
	answer  contractx.Answer
	err     error
	queries []string
}

func (f *fakeAgent) Ask(ctx context.Context, query string) (contractx.Answer, error) {
	f.queries = append(f.queries, query)
	if f.err != nil {
		return contractx.Answer{}, f.err
	}
	if strings.TrimSpace(query) == "" {
		return contractx.Answer{}, contractx.ErrInvalidMessage
	}
	return f.answer, nil
}

func newTestServer(t *testing.T, agent Asker) *Server {
	t.Helper()
	s, err := NewServer(agent, Config{}, metricsx.NewDefault())
	if err != nil {
		t.Fatalf("NewServer() error = %v", err)
	}
	return s
}

func post(t *testing.T, s *Server, body string) *httptest.ResponseRecorder {
	t.Helper()
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/query", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	s.Handler().ServeHTTP(rec, req)
	return rec
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var out map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &out); err != nil {
		t.Fatalf("response is not JSON: %v (%q)", err, rec.Body.String())
	}
	return out
}

func TestNewServerRequiresAgent(t *testing.T) {
	t.Parallel()

	if _, err := NewServer(nil, Config{}, nil); err == nil {
		t.Fatal("expected error for nil agent")
	}
}

func TestQueryStructuredAnswer(t *testing.T) {
	t.Parallel()

	data := []any{map[string]any{"id": float64(1), "name": "Laptop"}}
	agent := &fakeAgent{answer: contractx.Answer{Text: "[...]", Data: data}}
	rec := post(t, newTestServer(t, agent), `{"query":"show category Electronics"}`)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
	}
	if diff := cmp.Diff(map[string]any{"answer": data}, decodeBody(t, rec)); diff != "" {
		t.Fatalf("body mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{"show category Electronics"}, agent.queries); diff != "" {
		t.Fatalf("queries mismatch (-want +got):\n%s", diff)
	}
}

func TestQueryTextAnswer(t *testing.T) {
	t.Parallel()

	rec := post(t, newTestServer(t, &fakeAgent{answer: contractx.Answer{Text: "request not recognized"}}), `{"query":"hi"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	if got := decodeBody(t, rec)["answer"]; got != "request not recognized" {
		t.Fatalf("answer = %v", got)
	}
}

func TestQueryErrorStatuses(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name string
		body string
		err  error
		want int
	}{
		{name: "invalid json", body: `{"query":`, want: http.StatusBadRequest},
		{name: "blank query", body: `{"query":"   "}`, want: http.StatusBadRequest},
		{name: "not found", body: `{"query":"id 9"}`, err: fmt.Errorf("%w: id=9", catalogx.ErrProductNotFound), want: http.StatusNotFound},
		{name: "bad argument", body: `{"query":"x"}`, err: fmt.Errorf("%w: price", contractx.ErrInvalidArgument), want: http.StatusBadRequest},
		{name: "internal", body: `{"query":"x"}`, err: fmt.Errorf("disk full"), want: http.StatusInternalServerError},
	}

	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			rec := post(t, newTestServer(t, &fakeAgent{err: tc.err}), tc.body)
			if rec.Code != tc.want {
				t.Fatalf("status = %d, want %d", rec.Code, tc.want)
			}
			if msg, _ := decodeBody(t, rec)["error"].(string); msg == "" {
				t.Fatal("error body must carry a message")
			}
		})
	}
}

func TestQueryRejectsGet(t *testing.T) {
	t.Parallel()

	rec := httptest.NewRecorder()
	newTestServer(t, &fakeAgent{}).Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/query", nil))
	if rec.Code != http.StatusMethodNotAllowed {
		t.Fatalf("status = %d, want 405", rec.Code)
	}
}

func TestHealthAndMetrics(t *testing.T) {
	t.Parallel()

	s := newTestServer(t, &fakeAgent{answer: contractx.Answer{Text: "ok"}})
	post(t, s, `{"query":"hi"}`)

	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	if rec.Code != http.StatusOK || decodeBody(t, rec)["status"] != "ok" {
		t.Fatalf("healthz = %d %s", rec.Code, rec.Body.String())
	}

	rec = httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	if !strings.Contains(rec.Body.String(), `catalog_agent_http_requests_total{code="200",route="/query"} 1`) {
		t.Fatalf("metrics missing query counter:\n%s", rec.Body.String())
	}
}

func TestServeShutsDownOnCancel(t *testing.T) {
	t.Parallel()

	s := newTestServer(t, &fakeAgent{answer: contractx.Answer{Text: "ok"}})
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("listen: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- s.Serve(ctx, ln) }()

	resp, err := http.Get("http://" + ln.Addr().String() + "/healthz")
	if err != nil {
		t.Fatalf("GET /healthz: %v", err)
	}
	_ = resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d", resp.StatusCode)
	}

	cancel()
	select {
	case err := <-done:
		if err != nil {
			t.Fatalf("Serve() error = %v", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("server did not stop after cancel")
	}
}
