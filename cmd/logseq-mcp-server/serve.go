package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"

	opshttp "github.com/jimsynz/logseq-mcp-server/internal/adapters/http"
	"github.com/jimsynz/logseq-mcp-server/pkg/adapters/mcp"
	"github.com/jimsynz/logseq-mcp-server/pkg/observability"

	logseqmcp "github.com/jimsynz/logseq-mcp-server"
)

// serveCmd represents the serve command
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the Logseq MCP server",
	Long: `Starts the MCP server bridging tool calls to the Logseq HTTP API.

Supported Transports:
- stdio (default): Uses Standard Input/Output. Ideal for local agent integration.
- sse: Uses Server-Sent Events over HTTP. Ideal for remote agents or debuggers.`,
	Run: func(cmd *cobra.Command, args []string) {
		transport, _ := cmd.Flags().GetString("transport")
		port, _ := cmd.Flags().GetInt("port")

		cfg, err := loadConfig(cmd)
		if err != nil {
			log.Fatalf("Error loading configuration: %v", err)
		}
		if err := cfg.Validate(); err != nil {
			log.Fatalf("Invalid configuration: %v", err)
		}

		logger := newLogger(cfg)

		registry := prometheus.NewRegistry()
		metrics := observability.NewMetrics(registry)

		dispatcher := buildDispatcher(cfg, logger, metrics)
		ops := opshttp.NewHandler(logseqmcp.Version, registry)
		srv := mcp.NewServer(dispatcher, mcp.WithLogger(logger), mcp.WithOpsHandler(ops))

		switch transport {
		case "stdio":
			// Ensure logs don't corrupt JSON-RPC on Stdout
			log.SetOutput(os.Stderr)
			logger.Info("starting logseq MCP server (stdio)", "api_url", cfg.APIURL)
			if err := srv.ServeStdio(); err != nil {
				logger.Error("MCP server execution failed", "err", err)
				os.Exit(1)
			}
		case "sse":
			logger.Info("starting logseq MCP server (SSE)", "port", port, "api_url", cfg.APIURL)

			ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			if err := srv.ServeSSE(ctx, port); err != nil {
				if err != http.ErrServerClosed {
					logger.Error("MCP server execution failed", "err", err)
					os.Exit(1)
				}
			}
			logger.Info("MCP server stopped gracefully")
		default:
			log.Fatalf("Unknown transport: %s. Supported: stdio, sse", transport)
		}
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().StringP("transport", "t", "stdio", "Transport protocol (stdio or sse)")
	serveCmd.Flags().IntP("port", "p", 8735, "Port for the SSE server")
}
