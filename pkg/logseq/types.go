package logseq

// Page describes a Logseq page as returned by the Editor API.
// Field names follow Logseq's wire format (note the kebab-case
// "original-name").
type Page struct {
	Name         string         `json:"name"`
	UUID         string         `json:"uuid"`
	OriginalName string         `json:"original-name,omitempty"`
	Properties   map[string]any `json:"properties,omitempty"`
}

// Block describes a single outline block. Blocks nest via Children,
// forming the tree returned by getPageBlocksTree.
type Block struct {
	UUID       string         `json:"uuid"`
	Content    string         `json:"content"`
	Page       *PageRef       `json:"page,omitempty"`
	Properties map[string]any `json:"properties,omitempty"`
	Children   []Block        `json:"children,omitempty"`
	Level      int            `json:"level,omitempty"`
	Format     string         `json:"format,omitempty"`
}

// PageRef is the minimal page reference embedded in a block.
type PageRef struct {
	ID int64 `json:"id"`
}

// SearchResult pairs a matching block with an optional relevance score.
type SearchResult struct {
	Block Block    `json:"block"`
	Score *float64 `json:"score,omitempty"`
}

// InsertBlockOptions control where insertBlock places the new block.
// The zero value appends to the current page.
type InsertBlockOptions struct {
	Parent     string         `json:"parent,omitempty"`
	Sibling    string         `json:"sibling,omitempty"`
	Before     bool           `json:"before,omitempty"`
	Properties map[string]any `json:"properties,omitempty"`
}

// TodoItem is a task block surfaced by FindIncompleteTodos.
type TodoItem struct {
	UUID     string `json:"uuid"`
	Content  string `json:"content"`
	Marker   string `json:"marker"`
	PageName string `json:"page_name"`
	Priority string `json:"priority,omitempty"`
}
