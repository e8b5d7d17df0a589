package logseqmcp

// Version is the release version of the server, reported in the MCP
// handshake and the version command.
const Version = "0.1.0"
