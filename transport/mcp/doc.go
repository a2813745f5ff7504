// Package mcp exposes the sea fight server's read side over the Model
// Context Protocol.
//
// The package is a thin client: every tool call proxies to the REST
// API rather than touching game state directly, so the MCP surface can
// run in-process next to the HTTP server or as a separate stdio
// process pointed at a remote server.
//
// Tools:
//   - server_info: Server name, version, uptime and live counts
//   - list_players: Lobby roster with busy flags
//   - list_sessions: All live match sessions
//   - get_session: One match session by id
//
// Gameplay is deliberately absent. Matches are driven by the two
// humans on the WebSocket protocol; MCP is an observer.
package mcp
