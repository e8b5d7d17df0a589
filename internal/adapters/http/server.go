// Package http provides the operational HTTP surface served next to
// the SSE transport: health, build info, and Prometheus metrics.
package http

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// NewHandler builds the operational router. gatherer may be nil, in
// which case /metrics is not mounted.
func NewHandler(version string, gatherer prometheus.Gatherer) http.Handler {
	r := chi.NewRouter()

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, map[string]string{"status": "ok"})
	})

	r.Get("/info", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, map[string]string{
			"app":     "logseq-mcp-server",
			"version": version,
		})
	})

	if gatherer != nil {
		r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{}))
	}

	return r
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(v)
}
