package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "catalog_agent"

// Provider groups the collectors used across the agent. A nil *Provider is
// valid and records nothing.
type Provider struct {
	registry     *prometheus.Registry
	toolCalls    *prometheus.CounterVec
	toolDuration *prometheus.HistogramVec
	runs         *prometheus.CounterVec
	httpRequests *prometheus.CounterVec
}

func New(registry *prometheus.Registry) *Provider {
	if registry == nil {
		return nil
	}

	p := &Provider{
		registry: registry,
		toolCalls: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "tool_calls_total",
				Help:      "Total number of tool executions by tool and status",
			},
			[]string{"tool", "status"},
		),
		toolDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "tool_call_duration_seconds",
				Help:      "Tool execution latency",
				Buckets:   prometheus.DefBuckets,
			},
			[]string{"tool"},
		),
		runs: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "runs_total",
				Help:      "Total number of agent runs by outcome",
			},
			[]string{"outcome"},
		),
		httpRequests: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "http_requests_total",
				Help:      "Total number of HTTP requests by route and status code",
			},
			[]string{"route", "code"},
		),
	}

	registry.MustRegister(
		p.toolCalls,
		p.toolDuration,
		p.runs,
		p.httpRequests,
	)

	return p
}

// NewDefault builds a provider on a fresh registry.
func NewDefault() *Provider {
	return New(prometheus.NewRegistry())
}

func (p *Provider) ObserveToolCall(tool, status string, elapsed time.Duration) {
	if p == nil {
		return
	}
	p.toolCalls.WithLabelValues(tool, status).Inc()
	p.toolDuration.WithLabelValues(tool).Observe(elapsed.Seconds())
}

func (p *Provider) IncrementRun(outcome string) {
	if p != nil && p.runs != nil {
		p.runs.WithLabelValues(outcome).Inc()
	}
}

func (p *Provider) IncrementHTTPRequest(route, code string) {
	if p != nil && p.httpRequests != nil {
		p.httpRequests.WithLabelValues(route, code).Inc()
	}
}

func (p *Provider) Registry() *prometheus.Registry {
	if p == nil {
		return nil
	}
	return p.registry
}

// Handler serves the exposition format for this provider's registry.
func (p *Provider) Handler() http.Handler {
	if p == nil {
		return http.NotFoundHandler()
	}
	return promhttp.HandlerFor(p.registry, promhttp.HandlerOpts{})
}
