package httpapi

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"net/http"
	"strconv"
	"time"

	"github.com/rs/zerolog/log"
	catalogx "github.com/tanpawarit/catalog-agent/agent/catalog"
	contractx "github.com/tanpawarit/catalog-agent/agent/contract"
	metricsx "github.com/tanpawarit/catalog-agent/pkg/metrics"
	"golang.org/x/sync/errgroup"
)

const maxBodyBytes = 1 << 20

type Config struct {
	Addr            string        `default:":8080"`
	ShutdownTimeout time.Duration `split_words:"true" default:"5s"`
}

// Asker answers one natural-language query.
type Asker interface {
	Ask(ctx context.Context, query string) (contractx.Answer, error)
}

type Server struct {
	agent   Asker
	metrics *metricsx.Provider
	cfg     Config
	handler http.Handler
}

type queryRequest struct {
	Query string `json:"query"`
}

type queryResponse struct {
	Answer any `json:"answer"`
}

type errorResponse struct {
	Error string `json:"error"`
}

func NewServer(agent Asker, cfg Config, metrics *metricsx.Provider) (*Server, error) {
	if agent == nil {
		return nil, errors.New("agent is required")
	}
	if cfg.Addr == "" {
		cfg.Addr = ":8080"
	}
	if cfg.ShutdownTimeout <= 0 {
		cfg.ShutdownTimeout = 5 * time.Second
	}

	s := &Server{agent: agent, metrics: metrics, cfg: cfg}

	mux := http.NewServeMux()
	mux.Handle("POST /query", s.instrument("/query", http.HandlerFunc(s.handleQuery)))
	mux.Handle("GET /healthz", s.instrument("/healthz", http.HandlerFunc(handleHealth)))
	mux.Handle("GET /metrics", metrics.Handler())
	s.handler = mux

	return s, nil
}

func (s *Server) Handler() http.Handler {
	return s.handler
}

// Run serves until ctx is done, then drains in-flight requests for at most
// ShutdownTimeout.
func (s *Server) Run(ctx context.Context) error {
	ln, err := net.Listen("tcp", s.cfg.Addr)
	if err != nil {
		return fmt.Errorf("listen %s: %w", s.cfg.Addr, err)
	}
	return s.Serve(ctx, ln)
}

func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	srv := &http.Server{
		Handler:           s.handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		log.Info().Str("addr", ln.Addr().String()).Msg("http server listening")
		if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), s.cfg.ShutdownTimeout)
		defer cancel()
		log.Info().Msg("http server shutting down")
		return srv.Shutdown(shutdownCtx)
	})
	return g.Wait()
}

func (s *Server) handleQuery(w http.ResponseWriter, r *http.Request) {
	var req queryRequest
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err := dec.Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: fmt.Sprintf("invalid request body: %v", err)})
		return
	}

	answer, err := s.agent.Ask(r.Context(), req.Query)
	if err != nil {
		code := statusFor(err)
		if code >= http.StatusInternalServerError {
			log.Error().Err(err).Msg("query failed")
		}
		writeJSON(w, code, errorResponse{Error: err.Error()})
		return
	}

	writeJSON(w, http.StatusOK, queryResponse{Answer: answer.Value()})
}

func handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, contractx.ErrInvalidMessage), errors.Is(err, contractx.ErrInvalidArgument):
		return http.StatusBadRequest
	case errors.Is(err, catalogx.ErrProductNotFound):
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

func writeJSON(w http.ResponseWriter, code int, body any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(code)
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(body); err != nil {
		log.Debug().Err(err).Msg("write response")
	}
}

type statusRecorder struct {
	http.ResponseWriter
	code int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.code = code
	r.ResponseWriter.WriteHeader(code)
}

func (s *Server) instrument(route string, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		rec := &statusRecorder{ResponseWriter: w, code: http.StatusOK}
		next.ServeHTTP(rec, r)
		s.metrics.IncrementHTTPRequest(route, strconv.Itoa(rec.code))
	})
}
