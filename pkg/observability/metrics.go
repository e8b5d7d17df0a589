// Package observability provides Prometheus instrumentation for the
// bridge: tool-call outcomes on the MCP side and request durations on
// the Logseq API side.
package observability

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Outcome labels for the tool call counter.
const (
	OutcomeOK    = "ok"
	OutcomeError = "error"
)

// Metrics bundles the collectors used across the server.
type Metrics struct {
	toolCalls      *prometheus.CounterVec
	remoteDuration *prometheus.HistogramVec
}

// NewMetrics creates the collectors and registers them on reg.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		toolCalls: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "logseq_mcp_tool_calls_total",
				Help: "Total number of dispatched tool calls by outcome",
			},
			[]string{"tool", "outcome"},
		),
		remoteDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name: "logseq_mcp_remote_request_duration_seconds",
				Help: "Duration of outbound Logseq API requests",
			},
			[]string{"method"},
		),
	}
	reg.MustRegister(m.toolCalls, m.remoteDuration)
	return m
}

// CountToolCall records one dispatch outcome.
func (m *Metrics) CountToolCall(tool, outcome string) {
	m.toolCalls.WithLabelValues(tool, outcome).Inc()
}

// ObserveRemoteRequest records the duration of one remote API request.
// Satisfies logseq.RequestObserver.
func (m *Metrics) ObserveRemoteRequest(method string, seconds float64) {
	m.remoteDuration.WithLabelValues(method).Observe(seconds)
}
