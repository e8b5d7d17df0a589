package logseq

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"
)

// Dot-qualified method names understood by the Logseq HTTP API. The API
// takes positional arguments only, so every wrapper below must pass args
// in the documented order.
const (
	methodGetAllPages       = "logseq.Editor.getAllPages"
	methodGetPage           = "logseq.Editor.getPage"
	methodGetPageBlocksTree = "logseq.Editor.getPageBlocksTree"
	methodCreatePage        = "logseq.Editor.createPage"
	methodGetBlock          = "logseq.Editor.getBlock"
	methodGetCurrentPage    = "logseq.Editor.getCurrentPage"
	methodGetCurrentBlock   = "logseq.Editor.getCurrentBlock"
	methodInsertBlock       = "logseq.Editor.insertBlock"
	methodUpdateBlock       = "logseq.Editor.updateBlock"
	methodDatascriptQuery   = "logseq.DB.datascriptQuery"
	methodGetCurrentGraph   = "logseq.App.getCurrentGraph"
	methodGetStateFromStore = "logseq.App.getStateFromStore"
	methodGetUserConfigs    = "logseq.App.getUserConfigs"
)

// DefaultBaseURL is where the Logseq HTTP API server listens when the
// "HTTP APIs server" feature is enabled with default settings.
const DefaultBaseURL = "http://localhost:12315"

// DefaultTimeout bounds a single outbound API request.
const DefaultTimeout = 30 * time.Second

// Config holds the process-wide connection settings. It is built once at
// startup and shared read-only by every call.
type Config struct {
	BaseURL string
	Token   string
	Timeout time.Duration
}

// RequestObserver receives the duration of every completed remote
// request. Implemented by observability.Metrics.
type RequestObserver interface {
	ObserveRemoteRequest(method string, seconds float64)
}

// Client wraps outbound calls to the Logseq HTTP API. It holds no
// per-call state and is safe for concurrent use.
type Client struct {
	cfg      Config
	http     *http.Client
	logger   *slog.Logger
	observer RequestObserver
}

// Option configures a Client.
type Option func(*Client)

// WithLogger sets the structured logger. Defaults to slog.Default().
func WithLogger(l *slog.Logger) Option {
	return func(c *Client) {
		c.logger = l
	}
}

// WithHTTPClient overrides the underlying HTTP client.
func WithHTTPClient(h *http.Client) Option {
	return func(c *Client) {
		c.http = h
	}
}

// WithObserver attaches a request duration observer.
func WithObserver(o RequestObserver) Option {
	return func(c *Client) {
		c.observer = o
	}
}

// New creates a Client for the given configuration.
func New(cfg Config, opts ...Option) *Client {
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = DefaultTimeout
	}
	c := &Client{
		cfg:    cfg,
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.http == nil {
		c.http = &http.Client{Timeout: cfg.Timeout}
	}
	return c
}

// Call performs a single API request and returns the raw JSON response.
// Application-level nulls in a 2xx body pass through unmodified; the
// caller decides what absence of data means for its method. No retries
// happen here: write methods are not idempotent and a blind retry could
// duplicate content.
func (c *Client) Call(ctx context.Context, method string, args ...any) (json.RawMessage, error) {
	if args == nil {
		args = []any{}
	}
	payload, err := json.Marshal(map[string]any{
		"method": method,
		"args":   args,
	})
	if err != nil {
		return nil, fmt.Errorf("encoding request for %s: %w", method, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.cfg.BaseURL+"/api", bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("building request for %s: %w", method, err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.cfg.Token)

	c.logger.Debug("calling logseq API", "method", method)

	start := time.Now()
	resp, err := c.http.Do(req)
	if c.observer != nil {
		c.observer.ObserveRemoteRequest(method, time.Since(start).Seconds())
	}
	if err != nil {
		return nil, &TransportError{Err: err}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &TransportError{Err: err}
	}

	switch {
	case resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden:
		return nil, &AuthError{Status: resp.StatusCode}
	case resp.StatusCode < 200 || resp.StatusCode > 299:
		c.logger.Warn("logseq API call failed", "method", method, "status", resp.StatusCode)
		return nil, &RemoteError{Status: resp.StatusCode, Body: strings.TrimSpace(string(body))}
	}

	if len(bytes.TrimSpace(body)) == 0 {
		return json.RawMessage("null"), nil
	}
	return json.RawMessage(body), nil
}

// isNull reports whether a raw API response carries no value.
func isNull(raw json.RawMessage) bool {
	trimmed := bytes.TrimSpace(raw)
	return len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null"))
}

// GetAllPages lists every page in the current graph.
func (c *Client) GetAllPages(ctx context.Context) ([]Page, error) {
	raw, err := c.Call(ctx, methodGetAllPages)
	if err != nil {
		return nil, err
	}
	if isNull(raw) {
		return nil, nil
	}
	var pages []Page
	if err := json.Unmarshal(raw, &pages); err != nil {
		return nil, fmt.Errorf("decoding getAllPages response: %w", err)
	}
	return pages, nil
}

// GetPage fetches a page by name or UUID. A nil page (without error)
// means the page does not exist.
func (c *Client) GetPage(ctx context.Context, nameOrUUID string) (*Page, error) {
	raw, err := c.Call(ctx, methodGetPage, nameOrUUID)
	if err != nil {
		return nil, err
	}
	if isNull(raw) {
		return nil, nil
	}
	var page Page
	if err := json.Unmarshal(raw, &page); err != nil {
		return nil, fmt.Errorf("decoding getPage response: %w", err)
	}
	return &page, nil
}

// GetPageBlocksTree fetches the full block tree of a page.
func (c *Client) GetPageBlocksTree(ctx context.Context, nameOrUUID string) ([]Block, error) {
	raw, err := c.Call(ctx, methodGetPageBlocksTree, nameOrUUID)
	if err != nil {
		return nil, err
	}
	if isNull(raw) {
		return nil, nil
	}
	var blocks []Block
	if err := json.Unmarshal(raw, &blocks); err != nil {
		return nil, fmt.Errorf("decoding getPageBlocksTree response: %w", err)
	}
	return blocks, nil
}

// CreatePage creates a page with optional properties and echoes the
// created page. A nil properties map is sent as JSON null, which the
// API treats as "no properties".
func (c *Client) CreatePage(ctx context.Context, name string, properties map[string]any) (*Page, error) {
	var props any
	if properties != nil {
		props = properties
	}
	raw, err := c.Call(ctx, methodCreatePage, name, props)
	if err != nil {
		return nil, err
	}
	if isNull(raw) {
		return nil, fmt.Errorf("createPage returned null: page %q may not have been created", name)
	}
	var page Page
	if err := json.Unmarshal(raw, &page); err != nil {
		return nil, fmt.Errorf("decoding createPage response: %w", err)
	}
	return &page, nil
}

// GetBlock fetches a block by UUID. A nil block (without error) means
// the block does not exist.
func (c *Client) GetBlock(ctx context.Context, uuid string) (*Block, error) {
	raw, err := c.Call(ctx, methodGetBlock, uuid)
	if err != nil {
		return nil, err
	}
	if isNull(raw) {
		return nil, nil
	}
	var block Block
	if err := json.Unmarshal(raw, &block); err != nil {
		return nil, fmt.Errorf("decoding getBlock response: %w", err)
	}
	return &block, nil
}

// InsertBlock creates a new block. The API is loose about its return
// value: null on failure, sometimes a bare UUID string, sometimes a
// full block object. Normalize all of those into a Block.
func (c *Client) InsertBlock(ctx context.Context, content string, opts InsertBlockOptions) (*Block, error) {
	raw, err := c.Call(ctx, methodInsertBlock, content, opts)
	if err != nil {
		return nil, err
	}
	if isNull(raw) {
		return nil, fmt.Errorf("insertBlock returned null: block creation may have failed")
	}

	var uuid string
	if err := json.Unmarshal(raw, &uuid); err == nil {
		return &Block{UUID: uuid, Content: content, Properties: opts.Properties}, nil
	}

	var block Block
	if err := json.Unmarshal(raw, &block); err != nil {
		return nil, fmt.Errorf("unexpected insertBlock response: %s", string(raw))
	}
	if block.UUID == "" {
		return nil, fmt.Errorf("unexpected insertBlock response: %s", string(raw))
	}
	if block.Content == "" {
		block.Content = content
	}
	return &block, nil
}

// UpdateBlock replaces the content (and optionally properties) of an
// existing block. The API returns no body on success.
func (c *Client) UpdateBlock(ctx context.Context, uuid, content string, properties map[string]any) error {
	args := []any{uuid, content}
	if properties != nil {
		args = append(args, properties)
	}
	_, err := c.Call(ctx, methodUpdateBlock, args...)
	return err
}

// Search finds blocks whose content contains the query string. The API
// has no dedicated search method, so this runs a datascript substring
// query and shapes the result rows.
func (c *Client) Search(ctx context.Context, query string) ([]SearchResult, error) {
	dsQuery := fmt.Sprintf(
		`[:find ?uuid ?content :where [?b :block/uuid ?uuid] [?b :block/content ?content] [(clojure.string/includes? ?content %q)]]`,
		query,
	)
	raw, err := c.Call(ctx, methodDatascriptQuery, dsQuery)
	if err != nil {
		return nil, err
	}

	var rows [][]any
	if err := json.Unmarshal(raw, &rows); err != nil {
		return nil, fmt.Errorf("decoding search response: %w", err)
	}

	results := make([]SearchResult, 0, len(rows))
	for _, row := range rows {
		if len(row) < 2 {
			continue
		}
		uuid, uok := row[0].(string)
		content, cok := row[1].(string)
		if !uok || !cok {
			continue
		}
		results = append(results, SearchResult{Block: Block{UUID: uuid, Content: content}})
	}
	return results, nil
}

// DatascriptQuery runs a raw datalog query and passes the result
// through untouched.
func (c *Client) DatascriptQuery(ctx context.Context, query string) (json.RawMessage, error) {
	return c.Call(ctx, methodDatascriptQuery, query)
}

// GetCurrentPage returns the page currently focused in the Logseq UI,
// or nil when nothing is focused. Having no current page is a normal
// application state, not an error.
func (c *Client) GetCurrentPage(ctx context.Context) (*Page, error) {
	raw, err := c.Call(ctx, methodGetCurrentPage)
	if err != nil {
		return nil, err
	}
	if isNull(raw) {
		return nil, nil
	}
	var page Page
	if err := json.Unmarshal(raw, &page); err != nil {
		return nil, fmt.Errorf("decoding getCurrentPage response: %w", err)
	}
	return &page, nil
}

// GetCurrentBlock returns the block currently focused in the Logseq UI,
// or nil when nothing is focused.
func (c *Client) GetCurrentBlock(ctx context.Context) (*Block, error) {
	raw, err := c.Call(ctx, methodGetCurrentBlock)
	if err != nil {
		return nil, err
	}
	if isNull(raw) {
		return nil, nil
	}
	var block Block
	if err := json.Unmarshal(raw, &block); err != nil {
		return nil, fmt.Errorf("decoding getCurrentBlock response: %w", err)
	}
	return &block, nil
}

// GetCurrentGraph returns metadata about the open graph.
func (c *Client) GetCurrentGraph(ctx context.Context) (json.RawMessage, error) {
	return c.Call(ctx, methodGetCurrentGraph)
}

// GetStateFromStore reads a key path (e.g. "ui/theme") from Logseq's
// application state store.
func (c *Client) GetStateFromStore(ctx context.Context, key string) (json.RawMessage, error) {
	return c.Call(ctx, methodGetStateFromStore, key)
}

// GetUserConfigs returns the user's Logseq configuration.
func (c *Client) GetUserConfigs(ctx context.Context) (json.RawMessage, error) {
	return c.Call(ctx, methodGetUserConfigs)
}

// todoQuery finds blocks carrying an incomplete task marker.
const todoQuery = `[:find ?uuid ?content ?marker ?page-name
	:where
	[?b :block/uuid ?uuid]
	[?b :block/content ?content]
	[?b :block/marker ?marker]
	[?b :block/page ?p]
	[?p :block/name ?page-name]
	[(contains? #{"TODO" "DOING" "LATER" "NOW" "WAITING"} ?marker)]]`

// FindIncompleteTodos collects every open task across the graph.
func (c *Client) FindIncompleteTodos(ctx context.Context) ([]TodoItem, error) {
	raw, err := c.Call(ctx, methodDatascriptQuery, todoQuery)
	if err != nil {
		return nil, err
	}

	var rows [][]any
	if err := json.Unmarshal(raw, &rows); err != nil {
		return nil, fmt.Errorf("decoding todos response: %w", err)
	}

	todos := make([]TodoItem, 0, len(rows))
	for _, row := range rows {
		if len(row) < 4 {
			continue
		}
		uuid, uok := row[0].(string)
		content, cok := row[1].(string)
		marker, mok := row[2].(string)
		pageName, pok := row[3].(string)
		if !uok || !cok || !mok || !pok {
			continue
		}
		todos = append(todos, TodoItem{UUID: uuid, Content: content, Marker: marker, PageName: pageName})
	}
	return todos, nil
}
