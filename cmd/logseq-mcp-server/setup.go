package main

import (
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/jimsynz/logseq-mcp-server/internal/config"
	"github.com/jimsynz/logseq-mcp-server/internal/logging"
	"github.com/jimsynz/logseq-mcp-server/pkg/logseq"
	"github.com/jimsynz/logseq-mcp-server/pkg/observability"
	"github.com/jimsynz/logseq-mcp-server/pkg/tools"
)

// loadConfig resolves the effective configuration: defaults, then the
// optional YAML file, then environment, then flag overrides.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	path, _ := cmd.Flags().GetString("config")
	cfg, err := config.Load(path)
	if err != nil {
		return nil, err
	}
	if v, _ := cmd.Flags().GetString("log-level"); v != "" {
		cfg.LogLevel = v
	}
	if v, _ := cmd.Flags().GetString("log-format"); v != "" {
		cfg.LogFormat = v
	}
	return cfg, nil
}

func newLogger(cfg *config.Config) *slog.Logger {
	return logging.New(logging.ParseLevel(cfg.LogLevel), cfg.LogFormat)
}

// buildDispatcher assembles the client and dispatcher from config.
// metrics may be nil for one-shot commands.
func buildDispatcher(cfg *config.Config, logger *slog.Logger, metrics *observability.Metrics) *tools.Dispatcher {
	clientOpts := []logseq.Option{logseq.WithLogger(logger)}
	if metrics != nil {
		clientOpts = append(clientOpts, logseq.WithObserver(metrics))
	}
	client := logseq.New(logseq.Config{
		BaseURL: cfg.APIURL,
		Token:   cfg.APIToken,
		Timeout: cfg.Timeout(),
	}, clientOpts...)

	dispatcherOpts := []tools.DispatcherOption{tools.WithLogger(logger)}
	if metrics != nil {
		dispatcherOpts = append(dispatcherOpts, tools.WithCallCounter(metrics))
	}
	return tools.NewDispatcher(client, dispatcherOpts...)
}
