// Package mcp provides Model Context Protocol server implementation for the
// Ludo server.
//
// The mcp package implements:
//   - MCP server for AI agent integration
//   - Tool definitions for match operations
//   - Match-aware command execution
//   - Stdio transport mode proxying the REST API
//
// MCP Tools:
//
// The package exposes the following tools for AI agents:
//   - create_match: Create a new match with preset selection
//   - list_matches: List all active matches
//   - get_match: Get specific match details
//   - match_state: Get current match state with piece positions
//   - roll_dice: Roll for the current player
//   - select_token: Apply the pending roll to a chosen piece
//   - turn_history: Retrieve turn history with pagination
//   - list_presets: List available match presets
//   - game_instructions: Get comprehensive rules and strategy notes
//
// Architecture:
//
// The MCP server is a thin client over the REST API: every tool call maps
// to an HTTP request against a running server instance, so MCP agents and
// HTTP/WebSocket clients observe the same matches.
//
// Match Management:
//
// All turn tools take a match_id parameter. AI agents can manage multiple
// concurrent matches independently, playing any seat in each.
//
// Usage:
//
//	client := mcp.NewClient("http://localhost:8080")
//	server.ServeStdio(client.GetMCPServer())
//
// AI Integration:
//
// The MCP interface enables AI agents to:
//   - Autonomously play full matches
//   - Develop and test strategies
//   - Analyze match states and legal move sets
//   - Manage multiple matches
//   - Learn from turn history
package mcp
