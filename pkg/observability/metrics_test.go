package observability

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCountToolCall(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewMetrics(reg)

	m.CountToolCall("get_page", OutcomeOK)
	m.CountToolCall("get_page", OutcomeOK)
	m.CountToolCall("get_page", OutcomeError)

	assert.Equal(t, float64(2), testutil.ToFloat64(m.toolCalls.WithLabelValues("get_page", OutcomeOK)))
	assert.Equal(t, float64(1), testutil.ToFloat64(m.toolCalls.WithLabelValues("get_page", OutcomeError)))
}

func TestObserveRemoteRequestRegistersHistogram(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewMetrics(reg)

	m.ObserveRemoteRequest("logseq.Editor.getPage", 0.05)

	families, err := reg.Gather()
	require.NoError(t, err)

	var found bool
	for _, f := range families {
		if f.GetName() == "logseq_mcp_remote_request_duration_seconds" {
			found = true
		}
	}
	assert.True(t, found)
}
