// Package tools maps MCP tool calls onto Logseq HTTP API methods. It
// owns the tool catalog, per-tool parameter validation, and response
// shaping; the MCP transport and the HTTP client live elsewhere.
package tools

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"sort"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/jimsynz/logseq-mcp-server/pkg/logseq"
)

// Graph is the dispatcher's view of the remote Logseq client. It is
// satisfied by *logseq.Client and mocked in tests.
type Graph interface {
	GetAllPages(ctx context.Context) ([]logseq.Page, error)
	GetPage(ctx context.Context, nameOrUUID string) (*logseq.Page, error)
	GetPageBlocksTree(ctx context.Context, nameOrUUID string) ([]logseq.Block, error)
	CreatePage(ctx context.Context, name string, properties map[string]any) (*logseq.Page, error)
	GetBlock(ctx context.Context, uuid string) (*logseq.Block, error)
	InsertBlock(ctx context.Context, content string, opts logseq.InsertBlockOptions) (*logseq.Block, error)
	UpdateBlock(ctx context.Context, uuid, content string, properties map[string]any) error
	Search(ctx context.Context, query string) ([]logseq.SearchResult, error)
	DatascriptQuery(ctx context.Context, query string) (json.RawMessage, error)
	GetCurrentPage(ctx context.Context) (*logseq.Page, error)
	GetCurrentBlock(ctx context.Context) (*logseq.Block, error)
	GetCurrentGraph(ctx context.Context) (json.RawMessage, error)
	GetStateFromStore(ctx context.Context, key string) (json.RawMessage, error)
	GetUserConfigs(ctx context.Context) (json.RawMessage, error)
	FindIncompleteTodos(ctx context.Context) ([]logseq.TodoItem, error)
}

var _ Graph = (*logseq.Client)(nil)

// CallCounter records dispatch outcomes. Satisfied by
// observability.Metrics.
type CallCounter interface {
	CountToolCall(tool, outcome string)
}

type handlerFunc func(ctx context.Context, args map[string]any) (*mcp.CallToolResult, error)

// Dispatcher routes a named tool call to its handler. It holds no
// mutable state after construction, so concurrent Dispatch calls need
// no locking.
type Dispatcher struct {
	graph    Graph
	logger   *slog.Logger
	counter  CallCounter
	handlers map[string]handlerFunc
}

// DispatcherOption configures a Dispatcher.
type DispatcherOption func(*Dispatcher)

// WithLogger sets the structured logger. Defaults to slog.Default().
func WithLogger(l *slog.Logger) DispatcherOption {
	return func(d *Dispatcher) {
		d.logger = l
	}
}

// WithCallCounter attaches a metrics sink for dispatch outcomes.
func WithCallCounter(c CallCounter) DispatcherOption {
	return func(d *Dispatcher) {
		d.counter = c
	}
}

// NewDispatcher creates a Dispatcher backed by the given Graph.
func NewDispatcher(graph Graph, opts ...DispatcherOption) *Dispatcher {
	d := &Dispatcher{
		graph:  graph,
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(d)
	}
	d.handlers = map[string]handlerFunc{
		ToolListPages:           d.handleListPages,
		ToolGetPage:             d.handleGetPage,
		ToolGetPageContent:      d.handleGetPageContent,
		ToolCreatePage:          d.handleCreatePage,
		ToolGetBlock:            d.handleGetBlock,
		ToolCreateBlock:         d.handleCreateBlock,
		ToolUpdateBlock:         d.handleUpdateBlock,
		ToolSearch:              d.handleSearch,
		ToolDatascriptQuery:     d.handleDatascriptQuery,
		ToolGetCurrentPage:      d.handleGetCurrentPage,
		ToolGetCurrentBlock:     d.handleGetCurrentBlock,
		ToolGetCurrentGraph:     d.handleGetCurrentGraph,
		ToolGetStateFromStore:   d.handleGetStateFromStore,
		ToolGetUserConfigs:      d.handleGetUserConfigs,
		ToolFindIncompleteTodos: d.handleFindIncompleteTodos,
	}
	return d
}

// ToolNames returns the sorted set of dispatchable tool names.
func (d *Dispatcher) ToolNames() []string {
	names := make([]string, 0, len(d.handlers))
	for name := range d.handlers {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Dispatch validates and executes one tool call. It never returns an
// error to the protocol layer: every failure is folded into a tool
// result with IsError set.
func (d *Dispatcher) Dispatch(ctx context.Context, name string, args map[string]any) *mcp.CallToolResult {
	handler, ok := d.handlers[name]
	if !ok {
		d.logger.Warn("tool call rejected", "tool", name, "err", "unknown tool")
		d.count(name, false)
		return mcp.NewToolResultError(fmt.Sprintf("unknown tool: %s", name))
	}

	result, err := handler(ctx, args)
	if err != nil {
		d.logger.Warn("tool call failed", "tool", name, "err", err)
		d.count(name, false)
		return mcp.NewToolResultError(err.Error())
	}

	d.logger.Debug("tool call succeeded", "tool", name)
	d.count(name, true)
	return result
}

func (d *Dispatcher) count(tool string, ok bool) {
	if d.counter == nil {
		return
	}
	outcome := "ok"
	if !ok {
		outcome = "error"
	}
	d.counter.CountToolCall(tool, outcome)
}

func (d *Dispatcher) handleListPages(ctx context.Context, _ map[string]any) (*mcp.CallToolResult, error) {
	pages, err := d.graph.GetAllPages(ctx)
	if err != nil {
		return nil, err
	}
	return mcp.NewToolResultText(formatPageList(pages)), nil
}

func (d *Dispatcher) handleGetPage(ctx context.Context, args map[string]any) (*mcp.CallToolResult, error) {
	var in getPageArgs
	if err := decodeArgs(args, &in); err != nil {
		return nil, err
	}
	if in.NameOrUUID == "" {
		return nil, missingParam("name_or_uuid")
	}

	page, err := d.graph.GetPage(ctx, in.NameOrUUID)
	if err != nil {
		return nil, err
	}
	if page == nil {
		return nil, fmt.Errorf("page not found: %s", in.NameOrUUID)
	}
	return prettyResult(page)
}

func (d *Dispatcher) handleGetPageContent(ctx context.Context, args map[string]any) (*mcp.CallToolResult, error) {
	var in getPageContentArgs
	if err := decodeArgs(args, &in); err != nil {
		return nil, err
	}
	if in.PageName == "" {
		return nil, missingParam("page_name")
	}

	blocks, err := d.graph.GetPageBlocksTree(ctx, in.PageName)
	if err != nil {
		return nil, err
	}
	return mcp.NewToolResultText(formatBlocksAsMarkdown(blocks)), nil
}

func (d *Dispatcher) handleCreatePage(ctx context.Context, args map[string]any) (*mcp.CallToolResult, error) {
	var in createPageArgs
	if err := decodeArgs(args, &in); err != nil {
		return nil, err
	}
	if in.Name == "" {
		return nil, missingParam("name")
	}

	page, err := d.graph.CreatePage(ctx, in.Name, in.Properties)
	if err != nil {
		return nil, err
	}
	return mcp.NewToolResultText(fmt.Sprintf("Created page: %s", page.Name)), nil
}

func (d *Dispatcher) handleGetBlock(ctx context.Context, args map[string]any) (*mcp.CallToolResult, error) {
	var in getBlockArgs
	if err := decodeArgs(args, &in); err != nil {
		return nil, err
	}
	if in.UUID == "" {
		return nil, missingParam("uuid")
	}

	block, err := d.graph.GetBlock(ctx, in.UUID)
	if err != nil {
		return nil, err
	}
	if block == nil {
		return nil, fmt.Errorf("block not found: %s", in.UUID)
	}
	return prettyResult(block)
}

func (d *Dispatcher) handleCreateBlock(ctx context.Context, args map[string]any) (*mcp.CallToolResult, error) {
	var in createBlockArgs
	if err := decodeArgs(args, &in); err != nil {
		return nil, err
	}
	if in.Content == "" {
		return nil, missingParam("content")
	}

	block, err := d.graph.InsertBlock(ctx, in.Content, logseq.InsertBlockOptions{
		Parent:  in.Parent,
		Sibling: in.Sibling,
	})
	if err != nil {
		return nil, err
	}
	return mcp.NewToolResultText(fmt.Sprintf("Created block with UUID: %s", block.UUID)), nil
}

func (d *Dispatcher) handleUpdateBlock(ctx context.Context, args map[string]any) (*mcp.CallToolResult, error) {
	var in updateBlockArgs
	if err := decodeArgs(args, &in); err != nil {
		return nil, err
	}
	if in.UUID == "" {
		return nil, missingParam("uuid")
	}
	if in.Content == "" {
		return nil, missingParam("content")
	}

	// The remote returns no body on success, so the confirmation is
	// synthesized here instead of re-fetching the block.
	if err := d.graph.UpdateBlock(ctx, in.UUID, in.Content, in.Properties); err != nil {
		return nil, err
	}
	return mcp.NewToolResultText(fmt.Sprintf("Updated block with UUID: %s", in.UUID)), nil
}

func (d *Dispatcher) handleSearch(ctx context.Context, args map[string]any) (*mcp.CallToolResult, error) {
	var in queryArgs
	if err := decodeArgs(args, &in); err != nil {
		return nil, err
	}
	if in.Query == "" {
		return nil, missingParam("query")
	}

	results, err := d.graph.Search(ctx, in.Query)
	if err != nil {
		return nil, err
	}
	return mcp.NewToolResultText(formatSearchResults(results)), nil
}

func (d *Dispatcher) handleDatascriptQuery(ctx context.Context, args map[string]any) (*mcp.CallToolResult, error) {
	var in queryArgs
	if err := decodeArgs(args, &in); err != nil {
		return nil, err
	}
	if in.Query == "" {
		return nil, missingParam("query")
	}

	raw, err := d.graph.DatascriptQuery(ctx, in.Query)
	if err != nil {
		return nil, err
	}
	return rawResult(raw)
}

func (d *Dispatcher) handleGetCurrentPage(ctx context.Context, _ map[string]any) (*mcp.CallToolResult, error) {
	page, err := d.graph.GetCurrentPage(ctx)
	if err != nil {
		return nil, err
	}
	// No active page is a normal application state, not a failure.
	if page == nil {
		return mcp.NewToolResultText("No page is currently active."), nil
	}
	return prettyResult(page)
}

func (d *Dispatcher) handleGetCurrentBlock(ctx context.Context, _ map[string]any) (*mcp.CallToolResult, error) {
	block, err := d.graph.GetCurrentBlock(ctx)
	if err != nil {
		return nil, err
	}
	if block == nil {
		return mcp.NewToolResultText("No block is currently active."), nil
	}
	return prettyResult(block)
}

func (d *Dispatcher) handleGetCurrentGraph(ctx context.Context, _ map[string]any) (*mcp.CallToolResult, error) {
	raw, err := d.graph.GetCurrentGraph(ctx)
	if err != nil {
		return nil, err
	}
	return rawResult(raw)
}

func (d *Dispatcher) handleGetStateFromStore(ctx context.Context, args map[string]any) (*mcp.CallToolResult, error) {
	var in stateKeyArgs
	if err := decodeArgs(args, &in); err != nil {
		return nil, err
	}
	if in.Key == "" {
		return nil, missingParam("key")
	}

	raw, err := d.graph.GetStateFromStore(ctx, in.Key)
	if err != nil {
		return nil, err
	}
	return rawResult(raw)
}

func (d *Dispatcher) handleGetUserConfigs(ctx context.Context, _ map[string]any) (*mcp.CallToolResult, error) {
	raw, err := d.graph.GetUserConfigs(ctx)
	if err != nil {
		return nil, err
	}
	return rawResult(raw)
}

func (d *Dispatcher) handleFindIncompleteTodos(ctx context.Context, _ map[string]any) (*mcp.CallToolResult, error) {
	todos, err := d.graph.FindIncompleteTodos(ctx)
	if err != nil {
		return nil, err
	}
	return mcp.NewToolResultText(formatTodos(todos)), nil
}

// prettyResult renders a value as indented JSON text content.
func prettyResult(v any) (*mcp.CallToolResult, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("encoding result: %w", err)
	}
	return mcp.NewToolResultText(string(data)), nil
}

// rawResult re-indents a raw JSON payload for readability and returns
// it as text content. Null passes through as a successful "null".
func rawResult(raw json.RawMessage) (*mcp.CallToolResult, error) {
	var buf bytes.Buffer
	if err := json.Indent(&buf, raw, "", "  "); err != nil {
		// Not valid JSON; hand it over verbatim.
		return mcp.NewToolResultText(string(raw)), nil
	}
	return mcp.NewToolResultText(buf.String()), nil
}
