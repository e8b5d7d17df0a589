package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/jimsynz/logseq-mcp-server/pkg/tools"
)

var toolsCmd = &cobra.Command{
	Use:   "tools",
	Short: "List the tools this server exposes",
	Run: func(cmd *cobra.Command, args []string) {
		for _, def := range tools.Definitions() {
			fmt.Printf("%s\n", def.Name)
			if def.Description != "" {
				fmt.Printf("    %s\n", def.Description)
			}
			if len(def.InputSchema.Required) > 0 {
				fmt.Printf("    required: %s\n", strings.Join(def.InputSchema.Required, ", "))
			}
		}
	},
}

func init() {
	rootCmd.AddCommand(toolsCmd)
}
