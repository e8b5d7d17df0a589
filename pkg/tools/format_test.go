package tools

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jimsynz/logseq-mcp-server/pkg/logseq"
)

func TestFormatBlocksAsMarkdownNesting(t *testing.T) {
	blocks := []logseq.Block{
		{Content: "root one", Children: []logseq.Block{
			{Content: "child", Children: []logseq.Block{
				{Content: "grandchild"},
			}},
		}},
		{Content: "root two"},
	}

	got := formatBlocksAsMarkdown(blocks)
	want := "* root one\n  * child\n    * grandchild\n* root two\n"
	assert.Equal(t, want, got)
}

func TestFormatBlocksAsMarkdownEmpty(t *testing.T) {
	assert.Equal(t, "", formatBlocksAsMarkdown(nil))
}

func TestFormatSearchResultsEmpty(t *testing.T) {
	assert.Equal(t, "No results found.", formatSearchResults(nil))
}

func TestFormatSearchResultsNumbersMatches(t *testing.T) {
	score := 0.87
	results := []logseq.SearchResult{
		{Block: logseq.Block{UUID: "u1", Content: "first"}},
		{Block: logseq.Block{UUID: "u2", Content: "second", Page: &logseq.PageRef{ID: 7}}, Score: &score},
	}

	got := formatSearchResults(results)
	assert.Contains(t, got, "Found 2 results:")
	assert.Contains(t, got, "1. first")
	assert.Contains(t, got, "2. second")
	assert.Contains(t, got, "Page ID: 7")
	assert.Contains(t, got, "Score: 0.87")
}

func TestFormatTodosEmpty(t *testing.T) {
	assert.Equal(t, "No incomplete todos found.", formatTodos(nil))
}

func TestFormatTodosGroupsByMarkerUrgency(t *testing.T) {
	todos := []logseq.TodoItem{
		{UUID: "u1", Content: "TODO later thing", Marker: "LATER", PageName: "inbox"},
		{UUID: "u2", Content: "NOW urgent thing", Marker: "NOW", PageName: "work"},
		{UUID: "u3", Content: "TODO normal thing", Marker: "TODO", PageName: "inbox"},
	}

	got := formatTodos(todos)
	assert.Contains(t, got, "Found 3 incomplete todos:")

	// NOW group must appear before TODO, which must appear before LATER.
	nowIdx := indexOf(t, got, "## NOW (1 items)")
	todoIdx := indexOf(t, got, "## TODO (1 items)")
	laterIdx := indexOf(t, got, "## LATER (1 items)")
	assert.Less(t, nowIdx, todoIdx)
	assert.Less(t, todoIdx, laterIdx)

	assert.Contains(t, got, "**Summary by Status:**")
	assert.Contains(t, got, "- NOW: 1 todos")
}

func indexOf(t *testing.T, haystack, needle string) int {
	t.Helper()
	idx := strings.Index(haystack, needle)
	assert.GreaterOrEqual(t, idx, 0, "expected to find %q", needle)
	return idx
}
