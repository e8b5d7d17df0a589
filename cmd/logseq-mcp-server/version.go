package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	logseqmcp "github.com/jimsynz/logseq-mcp-server"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number of logseq-mcp-server",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("logseq-mcp-server version %s\n", strings.TrimSpace(logseqmcp.Version))
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
