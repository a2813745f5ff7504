// Package websocket provides the WebSocket transport for the sea fight
// server.
//
// The package uses a hub-and-spoke model where a central Hub tracks all
// live connections by their server-assigned id. Each connection is
// handled by a read goroutine and a write goroutine.
//
// Message Protocol:
//
// Messages are JSON-encoded:
//   - Incoming: {op: "move", session_id: "abc1", x: 3, y: 4}
//   - Outgoing: {event: "hit", data: {...}}
//
// Connection Lifecycle:
//
// 1. Client connects to /ws and is assigned a connection id
// 2. The welcome event delivers that id to the client
// 3. Client registers a name, then trades offers and moves
// 4. Disconnection aborts any active match and frees the name
//
// The Hub implements the service Notifier boundary, so the game core
// stays free of socket types.
package websocket
