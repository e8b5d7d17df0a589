package tools

import (
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jimsynz/logseq-mcp-server/internal/logging"
)

func TestCatalogAndDispatcherAgreeOnToolNames(t *testing.T) {
	defs := Definitions()
	catalogNames := make([]string, 0, len(defs))
	for _, def := range defs {
		catalogNames = append(catalogNames, def.Name)
	}
	sort.Strings(catalogNames)

	d := NewDispatcher(&MockGraph{}, WithLogger(logging.NewNop()))
	assert.Equal(t, catalogNames, d.ToolNames(),
		"every advertised tool must be dispatchable and vice versa")
}

func TestCatalogNamesAreUnique(t *testing.T) {
	seen := make(map[string]bool)
	for _, def := range Definitions() {
		assert.False(t, seen[def.Name], "duplicate tool name %q", def.Name)
		seen[def.Name] = true
	}
}

func TestCatalogRequiredFieldsMatchValidation(t *testing.T) {
	want := map[string][]string{
		ToolListPages:           nil,
		ToolGetPage:             {"name_or_uuid"},
		ToolGetPageContent:      {"page_name"},
		ToolCreatePage:          {"name"},
		ToolGetBlock:            {"uuid"},
		ToolCreateBlock:         {"content"},
		ToolUpdateBlock:         {"uuid", "content"},
		ToolSearch:              {"query"},
		ToolDatascriptQuery:     {"query"},
		ToolGetCurrentPage:      nil,
		ToolGetCurrentBlock:     nil,
		ToolGetCurrentGraph:     nil,
		ToolGetStateFromStore:   {"key"},
		ToolGetUserConfigs:      nil,
		ToolFindIncompleteTodos: nil,
	}

	defs := Definitions()
	require.Len(t, defs, len(want))

	for _, def := range defs {
		expected, ok := want[def.Name]
		require.True(t, ok, "unexpected tool %q in catalog", def.Name)
		assert.ElementsMatch(t, expected, def.InputSchema.Required,
			"tool %q: schema required fields must match what Dispatch enforces", def.Name)
	}
}

func TestCatalogDescriptionsPresent(t *testing.T) {
	for _, def := range Definitions() {
		assert.NotEmpty(t, def.Description, "tool %q is missing a description", def.Name)
	}
}
