// Package mcp binds the tool dispatcher to the Model Context Protocol.
// It owns the protocol framing (via mark3labs/mcp-go) and the stdio and
// SSE transports; everything tool-specific lives in pkg/tools.
package mcp

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	logseqmcp "github.com/jimsynz/logseq-mcp-server"
	"github.com/jimsynz/logseq-mcp-server/pkg/tools"
)

const serverName = "logseq-mcp-server"

// Server exposes the tool dispatcher as an MCP server.
type Server struct {
	dispatcher *tools.Dispatcher
	logger     *slog.Logger
	mcpServer  *server.MCPServer
	ops        http.Handler
}

// Option configures a Server.
type Option func(*Server)

// WithLogger sets the structured logger.
func WithLogger(l *slog.Logger) Option {
	return func(s *Server) {
		s.logger = l
	}
}

// WithOpsHandler mounts an operational HTTP handler (health, metrics)
// next to the SSE endpoints. Ignored for stdio transport.
func WithOpsHandler(h http.Handler) Option {
	return func(s *Server) {
		s.ops = h
	}
}

// NewServer creates a new MCP Server instance wrapping the dispatcher.
func NewServer(dispatcher *tools.Dispatcher, opts ...Option) *Server {
	s := &Server{
		dispatcher: dispatcher,
		logger:     slog.Default(),
		mcpServer: server.NewMCPServer(serverName, logseqmcp.Version,
			server.WithInstructions("Bridge to a local Logseq knowledge graph. Read, search, and edit pages and blocks through the Logseq HTTP API."),
		),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.registerTools()
	return s
}

// registerTools wires every catalog definition to the dispatcher. The
// dispatcher never fails outward: protocol-level errors stay nil and
// failures ride in the result envelope.
func (s *Server) registerTools() {
	for _, def := range tools.Definitions() {
		name := def.Name
		s.mcpServer.AddTool(def, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			return s.dispatcher.Dispatch(ctx, name, request.GetArguments()), nil
		})
	}
}

// ServeStdio starts the server on Stdin/Stdout.
func (s *Server) ServeStdio() error {
	return server.ServeStdio(s.mcpServer)
}

// ServeSSE starts the server on the given port using SSE, with the
// operational handler (when configured) mounted on the same mux.
func (s *Server) ServeSSE(ctx context.Context, port int) error {
	addr := fmt.Sprintf(":%d", port)
	baseURL := fmt.Sprintf("http://localhost:%d", port)

	sseServer := server.NewSSEServer(s.mcpServer, server.WithBaseURL(baseURL))

	mux := http.NewServeMux()
	mux.Handle("/sse", corsMiddleware(sseServer.SSEHandler()))
	mux.Handle("/message", corsMiddleware(sseServer.MessageHandler()))
	if s.ops != nil {
		mux.Handle("/", s.ops)
	}

	httpServer := &http.Server{
		Addr:    addr,
		Handler: mux,
	}

	serverErrors := make(chan error, 1)
	go func() {
		s.logger.Info("MCP server listening (SSE)", "address", addr)
		serverErrors <- httpServer.ListenAndServe()
	}()

	select {
	case err := <-serverErrors:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		s.logger.Info("shutdown signal received, stopping server")
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("could not stop server gracefully: %w", err)
		}
		return nil
	}
}

func corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization, X-Requested-With")

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}
