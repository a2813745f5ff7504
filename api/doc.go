// Package api provides the HTTP surface of the sea fight server.
//
// Endpoints:
//
// Info and health:
//   - GET /api - Server name, version, uptime and live counts
//   - GET /healthz - Liveness probe
//
// Read-only admin views:
//   - GET /api/players - Lobby roster with busy flags
//   - GET /api/sessions - All live match sessions
//   - GET /api/sessions/{id} - One match session
//
// WebSocket:
//   - GET /ws - Upgrade to the game protocol
//
// Gameplay itself never flows over REST. All lobby and match
// operations ride the WebSocket protocol; the REST surface exists for
// operators and dashboards.
//
// Errors are returned as JSON with appropriate HTTP status codes:
//
//	{
//	  "error": "error message"
//	}
package api
