package mcp

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/seafight/server/game/registry"
	"github.com/seafight/server/game/service"
)

// Client is a thin MCP client that proxies to the REST API
type Client struct {
	baseURL    string
	httpClient *http.Client
	mcpServer  *server.MCPServer
}

// NewClient creates a new MCP client that calls the REST API
func NewClient(baseURL string) *Client {
	c := &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}

	c.initMCPServer()
	return c
}

// initMCPServer initializes the MCP server with all tools
func (c *Client) initMCPServer() {
	c.mcpServer = server.NewMCPServer(
		"Sea Fight Server",
		"1.0.0",
		server.WithToolCapabilities(true),
		server.WithInstructions(`Sea Fight Server - MCP Interface

This is a thin client that proxies all requests to the REST API server.

The server hosts a real-time two-player naval battle: players register
a name in the lobby, trade offers, place their fleets on a 10x10 grid
and shoot in turns until one fleet is sunk.

AVAILABLE TOOLS:
- server_info: Server name, version, uptime and live counts
- list_players: Lobby roster with busy flags
- list_sessions: List all active match sessions
- get_session: Get details of a specific match session

NOTE: These tools are read-only. Matches are played by the two humans
on the WebSocket protocol; this interface observes them.`),
	)

	// Register all tools
	c.registerTools()
}

// registerTools registers all MCP tools
func (c *Client) registerTools() {
	c.mcpServer.AddTool(mcp.Tool{
		Name:        "server_info",
		Description: "Get server name, version, uptime and live player/session counts",
		InputSchema: mcp.ToolInputSchema{
			Type:       "object",
			Properties: map[string]interface{}{},
		},
	}, c.handleServerInfo)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "list_players",
		Description: "List the lobby roster with each player's busy flag",
		InputSchema: mcp.ToolInputSchema{
			Type:       "object",
			Properties: map[string]interface{}{},
		},
	}, c.handleListPlayers)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "list_sessions",
		Description: "List all active match sessions",
		InputSchema: mcp.ToolInputSchema{
			Type:       "object",
			Properties: map[string]interface{}{},
		},
	}, c.handleListSessions)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "get_session",
		Description: "Get details of a specific match session",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"session_id": map[string]interface{}{
					"type":        "string",
					"description": "Session ID to retrieve",
				},
			},
			Required: []string{"session_id"},
		},
	}, c.handleGetSession)
}

// GetMCPServer returns the underlying MCP server for serving
func (c *Client) GetMCPServer() *server.MCPServer {
	return c.mcpServer
}

// Helper methods for API calls

func (c *Client) apiCall(method, path string, body interface{}, result interface{}) error {
	url := c.baseURL + path

	var reqBody io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return err
		}
		reqBody = bytes.NewBuffer(data)
	}

	req, err := http.NewRequest(method, url, reqBody)
	if err != nil {
		return err
	}

	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		var errResp map[string]string
		json.NewDecoder(resp.Body).Decode(&errResp)
		if msg, ok := errResp["error"]; ok {
			return fmt.Errorf("%s", msg)
		}
		return fmt.Errorf("API error: %d", resp.StatusCode)
	}

	if result != nil {
		return json.NewDecoder(resp.Body).Decode(result)
	}

	return nil
}

// Tool handlers

func (c *Client) handleServerInfo(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var info struct {
		Name        string `json:"name"`
		Version     string `json:"version"`
		Uptime      string `json:"uptime"`
		Connections int    `json:"connections"`
		Players     int    `json:"players"`
		Sessions    int    `json:"sessions"`
	}

	err := c.apiCall("GET", "/api", nil, &info)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	result := fmt.Sprintf("Server: %s %s\nUptime: %s\nConnections: %d\nPlayers in lobby: %d\nActive sessions: %d\n",
		info.Name, info.Version, info.Uptime, info.Connections, info.Players, info.Sessions)
	return mcp.NewToolResultText(result), nil
}

func (c *Client) handleListPlayers(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var response struct {
		Count   int               `json:"count"`
		Players []registry.Player `json:"players"`
	}

	err := c.apiCall("GET", "/api/players", nil, &response)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	result := fmt.Sprintf("Lobby Players (%d):\n\n", response.Count)
	for _, p := range response.Players {
		status := "idle"
		if p.Busy {
			status = "in a match"
		}
		result += fmt.Sprintf("- %s (%s, %s)\n", p.Name, p.ID, status)
	}

	return mcp.NewToolResultText(result), nil
}

func (c *Client) handleListSessions(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var response struct {
		Count    int                   `json:"count"`
		Sessions []service.SessionView `json:"sessions"`
	}

	err := c.apiCall("GET", "/api/sessions", nil, &response)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	result := fmt.Sprintf("Active Sessions (%d):\n\n", response.Count)
	for _, view := range response.Sessions {
		result += fmt.Sprintf("- %s (%s vs %s, %s)\n",
			view.ID, view.Players[0].Name, view.Players[1].Name, view.Phase)
	}

	return mcp.NewToolResultText(result), nil
}

func (c *Client) handleGetSession(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := request.Params.Arguments.(map[string]interface{})
	sessionID, _ := args["session_id"].(string)

	var view service.SessionView
	err := c.apiCall("GET", fmt.Sprintf("/api/sessions/%s", sessionID), nil, &view)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	return mcp.NewToolResultText(formatSessionView(&view)), nil
}

// Formatting helpers

func formatSessionView(view *service.SessionView) string {
	var b strings.Builder
	b.WriteString(fmt.Sprintf("Session: %s\n", view.ID))
	b.WriteString(fmt.Sprintf("Players: %s (%s) vs %s (%s)\n",
		view.Players[0].Name, view.Players[0].ID,
		view.Players[1].Name, view.Players[1].ID))
	b.WriteString(fmt.Sprintf("Phase: %s\n", view.Phase))

	turnName := nameOf(view, view.TurnID)
	b.WriteString(fmt.Sprintf("Turn: %s\n", turnName))
	b.WriteString(fmt.Sprintf("First turn: %s\n", nameOf(view, view.FirstTurnID)))

	if view.WinnerID != "" {
		b.WriteString(fmt.Sprintf("Winner: %s\n", nameOf(view, view.WinnerID)))
	}
	return b.String()
}

func nameOf(view *service.SessionView, id string) string {
	for _, p := range view.Players {
		if p.ID == id {
			return p.Name
		}
	}
	return id
}
