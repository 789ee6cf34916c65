// Package websocket provides WebSocket transport for the Ludo server.
//
// The websocket package implements:
//   - Real-time match state streaming
//   - Match-aware WebSocket connections
//   - Automatic state broadcasting on changes
//   - Connection lifecycle management
//   - Message routing and handling
//
// Architecture:
//
// The package uses a hub-and-spoke model where a central Hub manages all
// WebSocket connections. Each client connection is handled by a dedicated
// goroutine that manages reading, writing, and cleanup.
//
// Message Protocol:
//
// Messages are JSON-encoded. Outgoing messages carry the match ID, an event
// name ("state_update" or a custom event), and the full match state after
// each change. Incoming messages are not processed; turns are submitted over
// the REST API.
//
// Match Integration:
//
// WebSocket connections are match-aware. Clients specify their match ID
// via query parameter (?match=ab12) when establishing the connection.
// State updates are broadcast only to clients watching the same match.
//
// Usage:
//
//	hub := websocket.NewHub()
//	go hub.Run()
//
//	// In an HTTP handler, after validating the match ID:
//	hub.ServeWS(w, r, matchID)
//
// Connection Lifecycle:
//
// 1. Client connects with match ID
// 2. Connection registered with hub
// 3. Client receives state updates as turns resolve
// 4. Disconnection triggers cleanup
//
// Concurrency:
//
// The hub and client handlers are designed for concurrent operation.
// Multiple clients can connect, disconnect, and receive messages
// simultaneously without blocking each other.
package websocket
