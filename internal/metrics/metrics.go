package metrics

import (
	"context"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/FreePeak/expense-mcp-server/pkg/tools"
)

// Call outcomes used as the status label
const (
	StatusSuccess = "success"
	StatusError   = "error"
)

// Metrics holds the tool call collectors of one service.
// Each instance owns its registry so tests and multiple servers don't collide.
type Metrics struct {
	registry *prometheus.Registry
	calls    *prometheus.CounterVec
	duration *prometheus.HistogramVec
}

// New creates the collectors for service and registers them
func New(service string) *Metrics {
	labels := prometheus.Labels{"service": service}

	m := &Metrics{
		registry: prometheus.NewRegistry(),
		calls: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name:        "tool_calls_total",
				Help:        "How many tool calls processed, partitioned by tool and outcome.",
				ConstLabels: labels,
			},
			[]string{"tool", "status"},
		),
		duration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:        "tool_call_duration_seconds",
				Help:        "The tool call latencies in seconds.",
				ConstLabels: labels,
				Buckets:     prometheus.DefBuckets,
			},
			[]string{"tool"},
		),
	}

	m.registry.MustRegister(
		m.calls,
		m.duration,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return m
}

// Observe records the outcome of one tool call
func (m *Metrics) Observe(tool string, elapsed time.Duration, err error) {
	status := StatusSuccess
	if err != nil {
		status = StatusError
	}
	m.calls.WithLabelValues(tool, status).Inc()
	m.duration.WithLabelValues(tool).Observe(elapsed.Seconds())
}

// Middleware returns a registry middleware that records every tool call
func (m *Metrics) Middleware() tools.Middleware {
	return func(tool *tools.Tool, next tools.Handler) tools.Handler {
		return func(ctx context.Context, args tools.Arguments) (interface{}, error) {
			start := time.Now()
			result, err := next(ctx, args)
			m.Observe(tool.Name, time.Since(start), err)
			return result, err
		}
	}
}

// Calls returns the call counter, exposed for inspection
func (m *Metrics) Calls() *prometheus.CounterVec {
	return m.calls
}

// Handler serves the metrics in the Prometheus exposition format
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}
