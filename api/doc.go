// Package api provides HTTP REST API handlers for the Ludo server.
//
// The api package implements:
//   - RESTful endpoints for match operations
//   - Match management endpoints
//   - Preset listing and retrieval
//   - WebSocket upgrade handling
//
// Endpoints:
//
// Match Management:
//   - POST /api/matches - Create a new match (preset_id or num_players in body)
//   - GET /api/matches - List all matches (sort, order, limit query params)
//   - GET /api/matches/{id} - Get a specific match
//   - DELETE /api/matches/{id} - Delete a match
//
// Turn Operations:
//   - GET /api/matches/{id}/state - Get current match state
//   - POST /api/matches/{id}/roll - Roll the dice for the current player
//   - POST /api/matches/{id}/move - Apply the pending roll to a piece
//   - GET /api/matches/{id}/history - Get turn history with pagination
//
// Presets:
//   - GET /api/presets - List available presets
//   - POST /api/presets - Save a preset to the preset directory
//   - GET /api/presets/{name} - Get a specific preset
//
// Other:
//   - GET /ws?match={id} - Upgrade to WebSocket for state streaming
//   - GET /health - Health check
//
// Request/Response Format:
//
// All endpoints accept and return JSON. A move selection is sent as:
//
//	{
//	  "piece_id": 2
//	}
//
// Error Handling:
//
// Errors are returned as JSON with appropriate HTTP status codes:
//
//	{
//	  "error": "error message"
//	}
//
// Turn-order violations (rolling out of phase, selecting an illegal piece)
// return 409 Conflict; unknown matches and presets return 404; malformed
// bodies return 400.
package api
