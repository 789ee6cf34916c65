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

	"github.com/ludokit/ludo-server/game/engine"
	"github.com/ludokit/ludo-server/game/service"
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
		"Ludo Server",
		"1.0.0",
		server.WithToolCapabilities(true),
		server.WithInstructions(`Ludo Server - MCP Interface

This is a thin client that proxies all requests to the REST API server.

GAME OBJECTIVE:
Race all four of your pieces around the board and into your home column
before your opponents do.

AVAILABLE TOOLS:
- create_match: Create a new match with an optional preset
- list_matches: List all active matches
- get_match: Get match details
- match_state: Get current match state with a board rendering
- roll_dice: Roll for the current player
- select_token: Apply the pending roll to one of your pieces
- turn_history: View past turns
- list_presets: List available presets
- game_instructions: Get comprehensive game instructions and rules

TURN FLOW: roll_dice first; if more than one piece is legal, follow up with
select_token. A 6 grants another roll.`),
	)

	c.registerTools()
}

// registerTools registers all MCP tools
func (c *Client) registerTools() {
	// Match management
	c.mcpServer.AddTool(mcp.Tool{
		Name:        "create_match",
		Description: "Create a new match with optional preset selection",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"preset_id": map[string]interface{}{
					"type":        "string",
					"description": "Name of the preset to use (optional, defaults to classic)",
				},
				"num_players": map[string]interface{}{
					"type":        "integer",
					"description": "Explicit player count 2-4 instead of a preset (optional)",
				},
			},
		},
	}, c.handleCreateMatch)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "list_matches",
		Description: "List all active matches",
		InputSchema: mcp.ToolInputSchema{
			Type:       "object",
			Properties: map[string]interface{}{},
		},
	}, c.handleListMatches)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "get_match",
		Description: "Get details of a specific match",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"match_id": map[string]interface{}{
					"type":        "string",
					"description": "Match ID to retrieve",
				},
			},
			Required: []string{"match_id"},
		},
	}, c.handleGetMatch)

	// Turn operations
	c.mcpServer.AddTool(mcp.Tool{
		Name:        "match_state",
		Description: "Get the current match state",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"match_id": map[string]interface{}{
					"type":        "string",
					"description": "Match ID",
				},
			},
			Required: []string{"match_id"},
		},
	}, c.handleMatchState)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "roll_dice",
		Description: "Roll the dice for the current player. With no legal move the turn passes automatically; with a single legal move it may be applied automatically.",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"match_id": map[string]interface{}{
					"type":        "string",
					"description": "Match ID",
				},
			},
			Required: []string{"match_id"},
		},
	}, c.handleRollDice)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "select_token",
		Description: "Apply the pending roll to the chosen piece. Only pieces listed as legal by the preceding roll may be selected.",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"match_id": map[string]interface{}{
					"type":        "string",
					"description": "Match ID",
				},
				"piece_id": map[string]interface{}{
					"type":        "integer",
					"description": "Piece ID to move (0-15; pieces 0-3 belong to player 0, and so on)",
				},
			},
			Required: []string{"match_id", "piece_id"},
		},
	}, c.handleSelectToken)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "turn_history",
		Description: "Get turn history for a match",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"match_id": map[string]interface{}{
					"type":        "string",
					"description": "Match ID",
				},
				"page": map[string]interface{}{
					"type":        "integer",
					"description": "Page number",
				},
				"limit": map[string]interface{}{
					"type":        "integer",
					"description": "Items per page",
				},
			},
			Required: []string{"match_id"},
		},
	}, c.handleTurnHistory)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "list_presets",
		Description: "List available match presets",
		InputSchema: mcp.ToolInputSchema{
			Type:       "object",
			Properties: map[string]interface{}{},
		},
	}, c.handleListPresets)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "game_instructions",
		Description: "Get comprehensive game instructions and rules",
		InputSchema: mcp.ToolInputSchema{
			Type:       "object",
			Properties: map[string]interface{}{},
		},
	}, c.handleGameInstructions)
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

func (c *Client) handleCreateMatch(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := request.Params.Arguments.(map[string]interface{})
	presetID, _ := args["preset_id"].(string)

	body := map[string]interface{}{}
	if presetID != "" {
		body["preset_id"] = presetID
	}
	if numPlayers, ok := args["num_players"].(float64); ok {
		body["num_players"] = int(numPlayers)
	}

	var match service.MatchInfo
	err := c.apiCall("POST", "/api/matches", body, &match)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	result := fmt.Sprintf("Created match: %s\nPreset: %s\n\n%s",
		match.ID, match.PresetName, formatMatchState(match.MatchState))
	return mcp.NewToolResultText(result), nil
}

func (c *Client) handleListMatches(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var response struct {
		Count   int                 `json:"count"`
		Matches []service.MatchInfo `json:"matches"`
	}

	err := c.apiCall("GET", "/api/matches", nil, &response)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	result := fmt.Sprintf("Active Matches (%d):\n\n", response.Count)
	for _, m := range response.Matches {
		phase := ""
		if m.MatchState != nil {
			phase = string(m.MatchState.Phase)
		}
		result += fmt.Sprintf("- %s (Preset: %s, Phase: %s, Created: %s)\n",
			m.ID, m.PresetName, phase, m.CreatedAt.Format("15:04:05"))
	}

	return mcp.NewToolResultText(result), nil
}

func (c *Client) handleGetMatch(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := request.Params.Arguments.(map[string]interface{})
	matchID, _ := args["match_id"].(string)

	var match service.MatchInfo
	err := c.apiCall("GET", fmt.Sprintf("/api/matches/%s", matchID), nil, &match)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	result := formatMatchInfo(&match)
	return mcp.NewToolResultText(result), nil
}

func (c *Client) handleMatchState(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := request.Params.Arguments.(map[string]interface{})
	matchID, _ := args["match_id"].(string)

	var state engine.MatchState
	err := c.apiCall("GET", fmt.Sprintf("/api/matches/%s/state", matchID), nil, &state)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	result := formatMatchState(&state)
	return mcp.NewToolResultText(result), nil
}

func (c *Client) handleRollDice(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := request.Params.Arguments.(map[string]interface{})
	matchID, _ := args["match_id"].(string)

	var result service.RollResult
	err := c.apiCall("POST", fmt.Sprintf("/api/matches/%s/roll", matchID), nil, &result)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	response := formatRollResult(&result)
	return mcp.NewToolResultText(response), nil
}

func (c *Client) handleSelectToken(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := request.Params.Arguments.(map[string]interface{})
	matchID, _ := args["match_id"].(string)
	pieceID, ok := args["piece_id"].(float64)
	if !ok {
		return mcp.NewToolResultError("piece_id is required"), nil
	}

	body := map[string]interface{}{
		"piece_id": int(pieceID),
	}

	var result service.MoveResult
	err := c.apiCall("POST", fmt.Sprintf("/api/matches/%s/move", matchID), body, &result)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	response := formatMoveResult(&result)
	return mcp.NewToolResultText(response), nil
}

func (c *Client) handleTurnHistory(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := request.Params.Arguments.(map[string]interface{})
	matchID, _ := args["match_id"].(string)

	params := "?"
	if page, ok := args["page"].(float64); ok {
		params += fmt.Sprintf("page=%d&", int(page))
	}
	if limit, ok := args["limit"].(float64); ok {
		params += fmt.Sprintf("limit=%d&", int(limit))
	}

	var history service.HistoryResponse
	err := c.apiCall("GET", fmt.Sprintf("/api/matches/%s/history%s", matchID, params), nil, &history)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	result := formatHistory(&history)
	return mcp.NewToolResultText(result), nil
}

func (c *Client) handleListPresets(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var presets []service.PresetInfo
	err := c.apiCall("GET", "/api/presets", nil, &presets)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	result := "Available Presets:\n\n"
	for _, p := range presets {
		result += fmt.Sprintf("• %s\n  %s\n  Players: %d\n\n",
			p.PresetID, p.Description, p.NumPlayers)
	}

	return mcp.NewToolResultText(result), nil
}

func (c *Client) handleGameInstructions(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	instructions := `Ludo Server - Complete Instructions

GAME OBJECTIVE:
Be the first player to bring all four of your pieces around the shared ring
and through your private home column.

BOARD LAYOUT:
• 52 shared ring cells, indexed 0-51
• Each player enters the ring at their own entry cell (0, 13, 26 or 39)
• After 50 ring steps a piece turns off into its 5-slot home column
• The sixth step beyond the ring finishes the piece; it needs an exact count

TURN FLOW:
1. roll_dice for the current player
2. The response lists which pieces are legal for that roll
3. If more than one piece is legal, call select_token with a piece_id
4. With exactly one legal piece the server may apply it automatically
5. With no legal piece the turn passes automatically
6. Rolling a 6 grants another roll after the move resolves

PIECE RULES:
• Pieces start at base and only enter the ring on a 6
• A piece entering the ring lands on its entry cell
• Home column and finish require exact counts; overshooting is illegal
• Finished pieces never move again

CAPTURES:
• Landing on a ring cell occupied by opponent pieces sends ALL of them
  back to their bases, unless the cell is a safe cell
• Safe cells: 0, 8, 13, 21, 26, 34, 39, 47 (every entry cell is safe)
• Your own pieces stack freely and are never captured
• Home column pieces can never be captured

PIECE IDS:
• Pieces are numbered globally: player 0 owns 0-3, player 1 owns 4-7,
  player 2 owns 8-11, player 3 owns 12-15

ERROR HANDLING:
• Rolling while a move is pending, or selecting a piece out of turn,
  returns an error and changes nothing
• Selecting a piece outside the legal set returns an error; re-check the
  legal_piece_ids from the last roll

MATCH MANAGEMENT:
• Multiple matches can run simultaneously
• Each match has a unique 4-character ID
• Matches maintain independent state, dice stream, and history
• Presets control player count and auto-play policy

STRATEGY HINTS:
• Spread your pieces instead of racing a single one
• Park on safe cells when opponents are close behind
• Keep an entry option open: a captured piece needs another 6 to return`

	return mcp.NewToolResultText(instructions), nil
}

// Formatting helpers

func formatMatchInfo(match *service.MatchInfo) string {
	return fmt.Sprintf("Match: %s\nPreset: %s\nCreated: %s\n\n%s",
		match.ID, match.PresetName,
		match.CreatedAt.Format("2006-01-02 15:04:05"),
		formatMatchState(match.MatchState))
}

func formatMatchState(state *engine.MatchState) string {
	if state == nil {
		return "No match state available"
	}

	var result strings.Builder

	result.WriteString(fmt.Sprintf("Phase: %s | Current player: %d | Total moves: %d\n",
		state.Phase, state.CurrentPlayer, state.TotalMoves))
	if state.LastRoll != 0 {
		result.WriteString(fmt.Sprintf("Pending roll: %d\n", state.LastRoll))
	}
	if len(state.LegalPieceIDs) > 0 {
		result.WriteString(fmt.Sprintf("Legal pieces: %v\n", state.LegalPieceIDs))
	}
	result.WriteString("\n")

	for _, player := range state.Players {
		result.WriteString(fmt.Sprintf("Player %d (%s):", player.ID, player.Color))
		if state.Winner == player.ID {
			result.WriteString(" WINNER")
		}
		result.WriteString("\n")
		for _, piece := range player.Pieces {
			result.WriteString(fmt.Sprintf("  piece %2d: %s\n", piece.ID, describePiece(&piece)))
		}
	}

	if state.Message != "" {
		result.WriteString(fmt.Sprintf("\nMessage: %s", state.Message))
	}

	return result.String()
}

func describePiece(piece *engine.Piece) string {
	switch piece.State {
	case engine.OnTrack:
		safe := ""
		if engine.IsSafeCell(piece.Ring) {
			safe = " (safe)"
		}
		return fmt.Sprintf("ring %d%s", piece.Ring, safe)
	case engine.InHomeLane:
		return fmt.Sprintf("home lane %d", piece.Lane)
	default:
		return string(piece.State)
	}
}

func formatRollResult(result *service.RollResult) string {
	var b strings.Builder

	b.WriteString(fmt.Sprintf("Rolled: %d\n", result.Roll))

	switch {
	case result.TurnPassed:
		b.WriteString("No legal move; turn passed.\n")
	case result.AutoApplied && result.Move != nil:
		b.WriteString(fmt.Sprintf("Single legal move auto-applied: piece %d\n", result.Move.PieceID))
	default:
		b.WriteString(fmt.Sprintf("Legal pieces: %v\nCall select_token to choose.\n", result.LegalPieceIDs))
	}

	if len(result.Events) > 0 {
		b.WriteString("Events:\n")
		for _, event := range result.Events {
			b.WriteString(fmt.Sprintf("- %s: %s\n", event.Type, event.Message))
		}
	}

	b.WriteString("\n" + formatMatchState(result.MatchState))
	return b.String()
}

func formatMoveResult(result *service.MoveResult) string {
	var b strings.Builder

	b.WriteString(fmt.Sprintf("Moved piece %d with a %d (%s -> %s)\n",
		result.PieceID, result.Roll,
		describeTarget(result.From), describeTarget(result.To)))

	if len(result.Captured) > 0 {
		b.WriteString(fmt.Sprintf("Captured pieces: %v\n", result.Captured))
	}
	if result.ExtraTurn {
		b.WriteString("Extra turn granted.\n")
	}
	if result.Winner != engine.NoWinner {
		b.WriteString(fmt.Sprintf("Player %d wins the match!\n", result.Winner))
	}

	if len(result.Events) > 0 {
		b.WriteString("Events:\n")
		for _, event := range result.Events {
			b.WriteString(fmt.Sprintf("- %s: %s\n", event.Type, event.Message))
		}
	}

	b.WriteString("\n" + formatMatchState(result.MatchState))
	return b.String()
}

func describeTarget(p engine.PiecePosition) string {
	switch p.State {
	case engine.OnTrack:
		return fmt.Sprintf("ring %d", p.Ring)
	case engine.InHomeLane:
		return fmt.Sprintf("home lane %d", p.Lane)
	default:
		return string(p.State)
	}
}

func formatHistory(history *service.HistoryResponse) string {
	result := fmt.Sprintf("Turn History (Page %d/%d) - Total: %d\n\n",
		history.Page, history.TotalPages, history.TotalTurns)

	for _, turn := range history.Turns {
		if turn.Skipped {
			result += fmt.Sprintf("%d. player %d rolled %d: no legal move, turn passed\n",
				turn.MoveNumber, turn.Player, turn.Roll)
			continue
		}
		line := fmt.Sprintf("%d. player %d rolled %d: piece %d %s -> %s",
			turn.MoveNumber, turn.Player, turn.Roll, turn.PieceID,
			describeTarget(turn.From), describeTarget(turn.To))
		if len(turn.Captured) > 0 {
			line += fmt.Sprintf(" (captured %v)", turn.Captured)
		}
		if turn.AutoApplied {
			line += " (auto)"
		}
		result += line + "\n"
	}

	return result
}
