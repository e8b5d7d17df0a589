package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "logseq-mcp-server",
	Short: "MCP server bridging AI agents to a local Logseq graph",
	Long: `logseq-mcp-server exposes a Logseq knowledge graph to AI agents over
the Model Context Protocol. Tool calls are translated into requests
against Logseq's HTTP API (enable the "HTTP APIs server" feature in
Logseq and configure an API token first).`,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func init() {
	// Persistent flags (available to all commands)
	rootCmd.PersistentFlags().String("config", "", "Path to a YAML config file")
	rootCmd.PersistentFlags().String("log-level", "", "Log level: debug, info, warn, error")
	rootCmd.PersistentFlags().String("log-format", "", "Log format: text or json")
}
