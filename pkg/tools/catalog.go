package tools

import (
	"github.com/mark3labs/mcp-go/mcp"
)

// Tool names exposed to MCP clients. Every name here must have a
// matching handler in the Dispatcher (enforced by catalog tests).
const (
	ToolListPages           = "list_pages"
	ToolGetPage             = "get_page"
	ToolGetPageContent      = "get_page_content"
	ToolCreatePage          = "create_page"
	ToolGetBlock            = "get_block"
	ToolCreateBlock         = "create_block"
	ToolUpdateBlock         = "update_block"
	ToolSearch              = "search"
	ToolDatascriptQuery     = "datascript_query"
	ToolGetCurrentPage      = "get_current_page"
	ToolGetCurrentBlock     = "get_current_block"
	ToolGetCurrentGraph     = "get_current_graph"
	ToolGetStateFromStore   = "get_state_from_store"
	ToolGetUserConfigs      = "get_user_configs"
	ToolFindIncompleteTodos = "find_incomplete_todos"
)

// Definitions returns the full tool catalog in stable order. The
// parameter schemas must stay consistent with what Dispatch validates;
// that consistency is covered by tests, not enforced at runtime.
func Definitions() []mcp.Tool {
	return []mcp.Tool{
		mcp.NewTool(ToolListPages,
			mcp.WithDescription("List all pages in the current Logseq graph. Returns page names usable with other page-related tools."),
		),
		mcp.NewTool(ToolGetPage,
			mcp.WithDescription("Get detailed information about a specific page by name or UUID, including properties and metadata."),
			mcp.WithString("name_or_uuid", mcp.Required(),
				mcp.Description("The page name (case-sensitive, exactly as it appears in Logseq) or a page UUID."),
			),
		),
		mcp.NewTool(ToolGetPageContent,
			mcp.WithDescription("Get the content of a page formatted as a markdown outline. Use this to read a page's blocks and structure."),
			mcp.WithString("page_name", mcp.Required(),
				mcp.Description("The name or UUID of the page. Page names are case-sensitive."),
			),
		),
		mcp.NewTool(ToolCreatePage,
			mcp.WithDescription("Create a new page in Logseq, optionally with page properties such as tags, template, aliases, or custom keys."),
			mcp.WithString("name", mcp.Required(),
				mcp.Description("The name of the new page."),
			),
			mcp.WithObject("properties",
				mcp.Description("Optional page properties. Common keys: 'tags' (array of strings), 'template' (string), 'alias' (array of strings), 'public' (boolean), plus any custom properties."),
			),
		),
		mcp.NewTool(ToolGetBlock,
			mcp.WithDescription("Get detailed information about a block by UUID: content, properties, children, and metadata."),
			mcp.WithString("uuid", mcp.Required(),
				mcp.Description("The UUID of the block. UUIDs come from other calls such as create_block, search, or datascript_query."),
			),
		),
		mcp.NewTool(ToolCreateBlock,
			mcp.WithDescription("Insert a new block. Specify a parent page/block or a sibling block to control placement. Returns the created block's UUID."),
			mcp.WithString("content", mcp.Required(),
				mcp.Description("Block content in markdown, including any Logseq-specific syntax."),
			),
			mcp.WithString("parent",
				mcp.Description("Parent page name or block UUID. When omitted, the block is created on the current page."),
			),
			mcp.WithString("sibling",
				mcp.Description("UUID of an existing block; the new block is inserted as a sibling at the same level."),
			),
		),
		mcp.NewTool(ToolUpdateBlock,
			mcp.WithDescription("Replace the content of an existing block by UUID, optionally updating block properties."),
			mcp.WithString("uuid", mcp.Required(),
				mcp.Description("The UUID of the block to update."),
			),
			mcp.WithString("content", mcp.Required(),
				mcp.Description("The new markdown content; replaces the existing block content."),
			),
			mcp.WithObject("properties",
				mcp.Description("Optional block properties to set, e.g. {'priority': 'high', 'status': 'todo'}."),
			),
		),
		mcp.NewTool(ToolSearch,
			mcp.WithDescription("Search for content across all pages and blocks. Returns matching blocks with their content."),
			mcp.WithString("query", mcp.Required(),
				mcp.Description("Search query; plain text matched against block content."),
			),
		),
		mcp.NewTool(ToolDatascriptQuery,
			mcp.WithDescription("Execute a raw Datascript query against the Logseq database. For advanced retrieval the other tools cannot express; requires knowledge of Logseq's data model."),
			mcp.WithString("query", mcp.Required(),
				mcp.Description("Datascript query string, e.g. '[:find ?uuid ?content :where [?b :block/uuid ?uuid] [?b :block/content ?content]]'."),
			),
		),
		mcp.NewTool(ToolGetCurrentPage,
			mcp.WithDescription("Get the page currently focused in the Logseq interface. Useful for context-aware operations."),
		),
		mcp.NewTool(ToolGetCurrentBlock,
			mcp.WithDescription("Get the block currently focused in the Logseq interface."),
		),
		mcp.NewTool(ToolGetCurrentGraph,
			mcp.WithDescription("Get information about the current graph: name, path, and configuration."),
		),
		mcp.NewTool(ToolGetStateFromStore,
			mcp.WithDescription("Read a key path from Logseq's application state store, e.g. 'ui/theme' or 'ui/sidebar-open'."),
			mcp.WithString("key", mcp.Required(),
				mcp.Description("State key path, e.g. 'ui/theme', 'config/preferred-format'."),
			),
		),
		mcp.NewTool(ToolGetUserConfigs,
			mcp.WithDescription("Get the user's Logseq configuration and preferences."),
		),
		mcp.NewTool(ToolFindIncompleteTodos,
			mcp.WithDescription("Find all incomplete todos across the graph (markers TODO, DOING, LATER, NOW, WAITING), grouped by status."),
		),
	}
}
