package tools

import (
	"fmt"
	"strings"

	"github.com/jimsynz/logseq-mcp-server/pkg/logseq"
)

// formatBlocksAsMarkdown flattens a block tree into a markdown outline:
// one bullet per block, two spaces of indentation per nesting level.
func formatBlocksAsMarkdown(blocks []logseq.Block) string {
	var sb strings.Builder
	for _, block := range blocks {
		writeBlock(&sb, block, 0)
	}
	return sb.String()
}

func writeBlock(sb *strings.Builder, block logseq.Block, depth int) {
	sb.WriteString(strings.Repeat("  ", depth))
	sb.WriteString("* ")
	sb.WriteString(block.Content)
	sb.WriteString("\n")
	for _, child := range block.Children {
		writeBlock(sb, child, depth+1)
	}
}

// formatPageList renders pages as a simple bullet list of names.
func formatPageList(pages []logseq.Page) string {
	names := make([]string, 0, len(pages))
	for _, p := range pages {
		names = append(names, "- "+p.Name)
	}
	return strings.Join(names, "\n")
}

func formatSearchResults(results []logseq.SearchResult) string {
	if len(results) == 0 {
		return "No results found."
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "Found %d results:\n\n", len(results))
	for i, r := range results {
		fmt.Fprintf(&sb, "%d. %s\n", i+1, r.Block.Content)
		if r.Block.Page != nil {
			fmt.Fprintf(&sb, "   Page ID: %d\n", r.Block.Page.ID)
		}
		if r.Score != nil {
			fmt.Fprintf(&sb, "   Score: %.2f\n", *r.Score)
		}
		sb.WriteString("\n")
	}
	return sb.String()
}

// markerOrder sorts todo groups by urgency.
var markerOrder = []string{"NOW", "DOING", "TODO", "LATER", "WAITING"}

func formatTodos(todos []logseq.TodoItem) string {
	if len(todos) == 0 {
		return "No incomplete todos found."
	}

	byMarker := make(map[string][]logseq.TodoItem)
	for _, todo := range todos {
		byMarker[todo.Marker] = append(byMarker[todo.Marker], todo)
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "Found %d incomplete todos:\n\n", len(todos))
	for _, marker := range markerOrder {
		group := byMarker[marker]
		if len(group) == 0 {
			continue
		}
		fmt.Fprintf(&sb, "## %s (%d items)\n", marker, len(group))
		for i, todo := range group {
			fmt.Fprintf(&sb, "%d. **%s** %s\n", i+1, todo.Marker, todo.Content)
			fmt.Fprintf(&sb, "   Page: %s\n", todo.PageName)
			fmt.Fprintf(&sb, "   UUID: %s\n", todo.UUID)
			sb.WriteString("\n")
		}
	}

	sb.WriteString("---\n")
	sb.WriteString("**Summary by Status:**\n")
	for _, marker := range markerOrder {
		if group := byMarker[marker]; len(group) > 0 {
			fmt.Fprintf(&sb, "- %s: %d todos\n", marker, len(group))
		}
	}
	return sb.String()
}
