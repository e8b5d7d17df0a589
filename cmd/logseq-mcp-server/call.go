package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/glamour"
	mcplib "github.com/mark3labs/mcp-go/mcp"
	"github.com/muesli/termenv"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/jimsynz/logseq-mcp-server/internal/logging"
)

// callCmd represents the call command
var callCmd = &cobra.Command{
	Use:   "call <tool>",
	Short: "Invoke a single tool against the Logseq API",
	Long: `Invokes one tool directly and prints its result, without starting a server.
Useful for debugging connectivity and inspecting tool output.

Arguments are passed with repeated --arg key=value flags, or as a raw
JSON object with --json.`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		toolName := args[0]
		argPairs, _ := cmd.Flags().GetStringArray("arg")
		rawJSON, _ := cmd.Flags().GetString("json")
		plain, _ := cmd.Flags().GetBool("plain")

		cfg, err := loadConfig(cmd)
		if err != nil {
			fatalf("Error loading configuration: %v", err)
		}
		if err := cfg.Validate(); err != nil {
			fatalf("Invalid configuration: %v", err)
		}

		toolArgs, err := parseToolArgs(argPairs, rawJSON)
		if err != nil {
			fatalf("Error parsing arguments: %v", err)
		}

		// One-shot invocation keeps logs quiet unless asked otherwise.
		logger := logging.NewNop()
		if cmd.Flags().Changed("log-level") {
			logger = newLogger(cfg)
		}

		dispatcher := buildDispatcher(cfg, logger, nil)
		res := dispatcher.Dispatch(context.Background(), toolName, toolArgs)

		text := resultText(res)
		if res.IsError {
			p := termenv.ColorProfile()
			fmt.Fprintln(os.Stderr, termenv.String("Error: "+text).Foreground(p.Color("#fb7185")))
			os.Exit(1)
		}

		if !plain && term.IsTerminal(int(os.Stdout.Fd())) {
			if rendered, err := renderMarkdown(text); err == nil {
				fmt.Print(rendered)
				return
			}
		}
		fmt.Println(text)
	},
}

func parseToolArgs(pairs []string, rawJSON string) (map[string]any, error) {
	if rawJSON != "" {
		if len(pairs) > 0 {
			return nil, fmt.Errorf("--arg and --json cannot be used together")
		}
		out := map[string]any{}
		if err := json.Unmarshal([]byte(rawJSON), &out); err != nil {
			return nil, fmt.Errorf("invalid JSON object: %w", err)
		}
		return out, nil
	}

	out := map[string]any{}
	for _, pair := range pairs {
		key, value, found := strings.Cut(pair, "=")
		if !found || key == "" {
			return nil, fmt.Errorf("expected key=value, got %q", pair)
		}
		out[key] = value
	}
	return out, nil
}

func resultText(res *mcplib.CallToolResult) string {
	var parts []string
	for _, c := range res.Content {
		if tc, ok := c.(mcplib.TextContent); ok {
			parts = append(parts, tc.Text)
		}
	}
	return strings.Join(parts, "\n")
}

func renderMarkdown(text string) (string, error) {
	r, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(), // Automatically detect light/dark background
	)
	if err != nil {
		return "", err
	}
	return r.Render(text)
}

func fatalf(format string, args ...any) {
	fmt.Fprintf(os.Stderr, format+"\n", args...)
	os.Exit(1)
}

func init() {
	rootCmd.AddCommand(callCmd)
	callCmd.Flags().StringArray("arg", nil, "Tool argument as key=value (repeatable)")
	callCmd.Flags().String("json", "", "Tool arguments as a raw JSON object")
	callCmd.Flags().Bool("plain", false, "Disable markdown rendering")
}
