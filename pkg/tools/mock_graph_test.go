package tools

import (
	"context"
	"encoding/json"
	"sync"

	"github.com/jimsynz/logseq-mcp-server/pkg/logseq"
)

// MockGraph is a function-field implementation of Graph for unit
// testing the dispatcher without a live Logseq instance. It counts
// every remote method invocation so tests can assert the fail-fast
// property (zero remote calls on validation failure).
type MockGraph struct {
	mu    sync.Mutex
	calls []string

	GetAllPagesFunc         func(ctx context.Context) ([]logseq.Page, error)
	GetPageFunc             func(ctx context.Context, nameOrUUID string) (*logseq.Page, error)
	GetPageBlocksTreeFunc   func(ctx context.Context, nameOrUUID string) ([]logseq.Block, error)
	CreatePageFunc          func(ctx context.Context, name string, properties map[string]any) (*logseq.Page, error)
	GetBlockFunc            func(ctx context.Context, uuid string) (*logseq.Block, error)
	InsertBlockFunc         func(ctx context.Context, content string, opts logseq.InsertBlockOptions) (*logseq.Block, error)
	UpdateBlockFunc         func(ctx context.Context, uuid, content string, properties map[string]any) error
	SearchFunc              func(ctx context.Context, query string) ([]logseq.SearchResult, error)
	DatascriptQueryFunc     func(ctx context.Context, query string) (json.RawMessage, error)
	GetCurrentPageFunc      func(ctx context.Context) (*logseq.Page, error)
	GetCurrentBlockFunc     func(ctx context.Context) (*logseq.Block, error)
	GetCurrentGraphFunc     func(ctx context.Context) (json.RawMessage, error)
	GetStateFromStoreFunc   func(ctx context.Context, key string) (json.RawMessage, error)
	GetUserConfigsFunc      func(ctx context.Context) (json.RawMessage, error)
	FindIncompleteTodosFunc func(ctx context.Context) ([]logseq.TodoItem, error)
}

func (m *MockGraph) record(method string) {
	m.mu.Lock()
	m.calls = append(m.calls, method)
	m.mu.Unlock()
}

// CallCount returns the number of remote method invocations seen.
func (m *MockGraph) CallCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.calls)
}

// Calls returns the recorded method names in invocation order.
func (m *MockGraph) Calls() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]string(nil), m.calls...)
}

func (m *MockGraph) GetAllPages(ctx context.Context) ([]logseq.Page, error) {
	m.record("GetAllPages")
	if m.GetAllPagesFunc != nil {
		return m.GetAllPagesFunc(ctx)
	}
	return []logseq.Page{{Name: "Page A", UUID: "pa"}, {Name: "Page B", UUID: "pb"}}, nil
}

func (m *MockGraph) GetPage(ctx context.Context, nameOrUUID string) (*logseq.Page, error) {
	m.record("GetPage")
	if m.GetPageFunc != nil {
		return m.GetPageFunc(ctx, nameOrUUID)
	}
	return &logseq.Page{Name: nameOrUUID, UUID: "uuid-" + nameOrUUID}, nil
}

func (m *MockGraph) GetPageBlocksTree(ctx context.Context, nameOrUUID string) ([]logseq.Block, error) {
	m.record("GetPageBlocksTree")
	if m.GetPageBlocksTreeFunc != nil {
		return m.GetPageBlocksTreeFunc(ctx, nameOrUUID)
	}
	return []logseq.Block{{UUID: "b1", Content: "hello"}}, nil
}

func (m *MockGraph) CreatePage(ctx context.Context, name string, properties map[string]any) (*logseq.Page, error) {
	m.record("CreatePage")
	if m.CreatePageFunc != nil {
		return m.CreatePageFunc(ctx, name, properties)
	}
	return &logseq.Page{Name: name, UUID: "new-page", Properties: properties}, nil
}

func (m *MockGraph) GetBlock(ctx context.Context, uuid string) (*logseq.Block, error) {
	m.record("GetBlock")
	if m.GetBlockFunc != nil {
		return m.GetBlockFunc(ctx, uuid)
	}
	return &logseq.Block{UUID: uuid, Content: "content"}, nil
}

func (m *MockGraph) InsertBlock(ctx context.Context, content string, opts logseq.InsertBlockOptions) (*logseq.Block, error) {
	m.record("InsertBlock")
	if m.InsertBlockFunc != nil {
		return m.InsertBlockFunc(ctx, content, opts)
	}
	return &logseq.Block{UUID: "new-block", Content: content}, nil
}

func (m *MockGraph) UpdateBlock(ctx context.Context, uuid, content string, properties map[string]any) error {
	m.record("UpdateBlock")
	if m.UpdateBlockFunc != nil {
		return m.UpdateBlockFunc(ctx, uuid, content, properties)
	}
	return nil
}

func (m *MockGraph) Search(ctx context.Context, query string) ([]logseq.SearchResult, error) {
	m.record("Search")
	if m.SearchFunc != nil {
		return m.SearchFunc(ctx, query)
	}
	return nil, nil
}

func (m *MockGraph) DatascriptQuery(ctx context.Context, query string) (json.RawMessage, error) {
	m.record("DatascriptQuery")
	if m.DatascriptQueryFunc != nil {
		return m.DatascriptQueryFunc(ctx, query)
	}
	return json.RawMessage(`[]`), nil
}

func (m *MockGraph) GetCurrentPage(ctx context.Context) (*logseq.Page, error) {
	m.record("GetCurrentPage")
	if m.GetCurrentPageFunc != nil {
		return m.GetCurrentPageFunc(ctx)
	}
	return &logseq.Page{Name: "Current", UUID: "cur"}, nil
}

func (m *MockGraph) GetCurrentBlock(ctx context.Context) (*logseq.Block, error) {
	m.record("GetCurrentBlock")
	if m.GetCurrentBlockFunc != nil {
		return m.GetCurrentBlockFunc(ctx)
	}
	return &logseq.Block{UUID: "cur-block", Content: "current"}, nil
}

func (m *MockGraph) GetCurrentGraph(ctx context.Context) (json.RawMessage, error) {
	m.record("GetCurrentGraph")
	if m.GetCurrentGraphFunc != nil {
		return m.GetCurrentGraphFunc(ctx)
	}
	return json.RawMessage(`{"name": "test-graph"}`), nil
}

func (m *MockGraph) GetStateFromStore(ctx context.Context, key string) (json.RawMessage, error) {
	m.record("GetStateFromStore")
	if m.GetStateFromStoreFunc != nil {
		return m.GetStateFromStoreFunc(ctx, key)
	}
	return json.RawMessage(`"dark"`), nil
}

func (m *MockGraph) GetUserConfigs(ctx context.Context) (json.RawMessage, error) {
	m.record("GetUserConfigs")
	if m.GetUserConfigsFunc != nil {
		return m.GetUserConfigsFunc(ctx)
	}
	return json.RawMessage(`{"preferredFormat": "markdown"}`), nil
}

func (m *MockGraph) FindIncompleteTodos(ctx context.Context) ([]logseq.TodoItem, error) {
	m.record("FindIncompleteTodos")
	if m.FindIncompleteTodosFunc != nil {
		return m.FindIncompleteTodosFunc(ctx)
	}
	return nil, nil
}

var _ Graph = (*MockGraph)(nil)
