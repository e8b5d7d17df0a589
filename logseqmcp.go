package logseqmcp

import (
	"log/slog"
	"time"

	"github.com/jimsynz/logseq-mcp-server/pkg/logseq"
	"github.com/jimsynz/logseq-mcp-server/pkg/tools"
)

// Option defines a functional option for configuring the bridge.
type Option func(*options)

type options struct {
	timeout time.Duration
	logger  *slog.Logger
}

// WithTimeout bounds each outbound API request.
func WithTimeout(d time.Duration) Option {
	return func(o *options) {
		o.timeout = d
	}
}

// WithLogger sets the structured logger used by the client and
// dispatcher.
func WithLogger(l *slog.Logger) Option {
	return func(o *options) {
		o.logger = l
	}
}

// New is the high-level entry point for using the bridge as a library.
// It wires a Logseq API client to a tool dispatcher; callers who need
// an MCP transport around it use pkg/adapters/mcp, and callers who
// need metrics or custom HTTP clients assemble the pieces directly.
func New(baseURL, token string, opts ...Option) *tools.Dispatcher {
	o := options{
		timeout: logseq.DefaultTimeout,
		logger:  slog.Default(),
	}
	for _, opt := range opts {
		opt(&o)
	}

	client := logseq.New(logseq.Config{
		BaseURL: baseURL,
		Token:   token,
		Timeout: o.timeout,
	}, logseq.WithLogger(o.logger))

	return tools.NewDispatcher(client, tools.WithLogger(o.logger))
}
