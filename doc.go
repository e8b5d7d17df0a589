/*
Package logseqmcp bridges the Model Context Protocol to a local Logseq
knowledge graph.

The server advertises a fixed catalog of tools (list pages, read and
create pages and blocks, search, raw datascript queries, editor state
getters) and translates each tool call into a single request against
Logseq's HTTP API (the "HTTP APIs server" feature, default
http://localhost:12315). Responses are shaped back into MCP tool
results: markdown outlines for page content, formatted lists for
search and todos, pretty-printed JSON for everything else.

# Layout

  - pkg/logseq: the HTTP API client with typed error normalization
    (auth, remote, transport).
  - pkg/tools: the tool catalog, parameter validation, and the
    dispatcher that maps tool calls onto API methods.
  - pkg/adapters/mcp: the MCP binding with stdio and SSE transports.
  - cmd/logseq-mcp-server: the CLI.

# Usage

Enable the HTTP APIs server in Logseq, configure an API token, then:

	LOGSEQ_API_TOKEN=your-token logseq-mcp-server serve

The serve command speaks MCP over stdio by default; pass
--transport sse for remote clients.
*/
package logseqmcp
