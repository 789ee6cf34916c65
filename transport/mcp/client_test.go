package mcp

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/ludokit/ludo-server/game/engine"
	"github.com/ludokit/ludo-server/game/service"
)

func TestNewClient(t *testing.T) {
	baseURL := "http://localhost:8080"
	client := NewClient(baseURL)

	if client == nil {
		t.Fatal("Expected client to be created")
	}
	if client.baseURL != baseURL {
		t.Errorf("Expected baseURL %s, got %s", baseURL, client.baseURL)
	}
	if client.httpClient == nil {
		t.Error("Expected HTTP client to be initialized")
	}
	if client.mcpServer == nil {
		t.Error("Expected MCP server to be initialized")
	}
}

func TestClient_apiCall(t *testing.T) {
	expectedResponse := map[string]interface{}{
		"id":    "ab12",
		"roll":  float64(6),
		"phase": "awaiting_move",
	}

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(expectedResponse)
	}))
	defer server.Close()

	client := NewClient(server.URL)

	var response map[string]interface{}
	if err := client.apiCall("GET", "/api/matches/ab12", nil, &response); err != nil {
		t.Fatalf("apiCall failed: %v", err)
	}

	if response["id"] != expectedResponse["id"] {
		t.Errorf("Expected id %v, got %v", expectedResponse["id"], response["id"])
	}
}

func TestClient_apiCall_Error(t *testing.T) {
	client := NewClient("http://invalid-url-that-does-not-exist:9999")

	if err := client.apiCall("GET", "/api/matches", nil, nil); err == nil {
		t.Error("Expected error for invalid URL")
	}
}

func TestClient_apiCall_HTTPError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte("Internal Server Error"))
	}))
	defer server.Close()

	client := NewClient(server.URL)

	err := client.apiCall("GET", "/api/matches", nil, nil)
	if err == nil {
		t.Error("Expected error for HTTP 500 response")
	}
	if !strings.Contains(err.Error(), "API error") {
		t.Errorf("Expected 'API error' in error message, got: %v", err)
	}
}

func TestClient_apiCall_JSONErrorBody(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusConflict)
		json.NewEncoder(w).Encode(map[string]string{"error": "match is not awaiting a dice roll"})
	}))
	defer server.Close()

	client := NewClient(server.URL)

	err := client.apiCall("POST", "/api/matches/ab12/roll", nil, nil)
	if err == nil {
		t.Fatal("Expected error for HTTP 409 response")
	}
	if !strings.Contains(err.Error(), "not awaiting a dice roll") {
		t.Errorf("Expected server error message passed through, got: %v", err)
	}
}

func TestClient_handleCreateMatch(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != "POST" || r.URL.Path != "/api/matches" {
			t.Errorf("Expected POST /api/matches, got %s %s", r.Method, r.URL.Path)
		}

		resp := service.MatchInfo{
			ID:         "ab12",
			PresetName: "classic",
			MatchState: engine.InitMatchStateFromConfig(engine.DefaultMatchConfig()),
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(resp)
	}))
	defer server.Close()

	client := NewClient(server.URL)
	ctx := context.Background()

	request := mcp.CallToolRequest{
		Params: mcp.CallToolParams{
			Name:      "create_match",
			Arguments: map[string]interface{}{},
		},
	}

	result, err := client.handleCreateMatch(ctx, request)
	if err != nil {
		t.Fatalf("handleCreateMatch failed: %v", err)
	}
	if result == nil {
		t.Fatal("Expected result, got nil")
	}

	resultStr, ok := result.Content[0].(mcp.TextContent)
	if !ok {
		t.Fatal("Expected text content in result")
	}
	if !strings.Contains(resultStr.Text, "ab12") {
		t.Errorf("Expected match ID in result, got: %s", resultStr.Text)
	}
}

func TestClient_handleRollDice(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != "POST" || r.URL.Path != "/api/matches/ab12/roll" {
			t.Errorf("Expected POST /api/matches/ab12/roll, got %s %s", r.Method, r.URL.Path)
		}

		resp := service.RollResult{
			Roll:          6,
			LegalPieceIDs: []int{0, 1, 2, 3},
			MatchState:    engine.InitMatchStateFromConfig(engine.DefaultMatchConfig()),
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(resp)
	}))
	defer server.Close()

	client := NewClient(server.URL)
	ctx := context.Background()

	request := mcp.CallToolRequest{
		Params: mcp.CallToolParams{
			Name: "roll_dice",
			Arguments: map[string]interface{}{
				"match_id": "ab12",
			},
		},
	}

	result, err := client.handleRollDice(ctx, request)
	if err != nil {
		t.Fatalf("handleRollDice failed: %v", err)
	}

	resultStr := result.Content[0].(mcp.TextContent)
	if !strings.Contains(resultStr.Text, "Rolled: 6") {
		t.Errorf("Expected roll value in result, got: %s", resultStr.Text)
	}
	if !strings.Contains(resultStr.Text, "[0 1 2 3]") {
		t.Errorf("Expected legal pieces in result, got: %s", resultStr.Text)
	}
}

func TestClient_handleSelectToken_MissingPieceID(t *testing.T) {
	client := NewClient("http://localhost:8080")
	ctx := context.Background()

	request := mcp.CallToolRequest{
		Params: mcp.CallToolParams{
			Name: "select_token",
			Arguments: map[string]interface{}{
				"match_id": "ab12",
			},
		},
	}

	result, err := client.handleSelectToken(ctx, request)
	if err != nil {
		t.Fatalf("handleSelectToken returned transport error: %v", err)
	}
	if !result.IsError {
		t.Error("Expected tool error for missing piece_id")
	}
}

func TestFormatMatchState(t *testing.T) {
	state := engine.InitMatchStateFromConfig(engine.DefaultMatchConfig())
	state.LastRoll = 4
	state.Phase = engine.PhaseAwaitingMove
	state.LegalPieceIDs = []int{0, 2}
	state.Message = "Player 0 rolled a 4. Choose a piece."

	result := formatMatchState(state)

	expectedFields := []string{
		"Phase: awaiting_move",
		"Current player: 0",
		"Pending roll: 4",
		"Legal pieces: [0 2]",
		"Player 0 (red)",
		"Player 3 (yellow)",
		"Choose a piece.",
	}

	for _, field := range expectedFields {
		if !strings.Contains(result, field) {
			t.Errorf("Expected field '%s' in formatted output, got: %s", field, result)
		}
	}
}

func TestFormatMatchState_Winner(t *testing.T) {
	state := engine.InitMatchStateFromConfig(engine.DefaultMatchConfig())
	state.Phase = engine.PhaseGameOver
	state.Winner = 2

	result := formatMatchState(state)

	if !strings.Contains(result, "Player 2 (green): WINNER") {
		t.Errorf("Expected winner marker in result, got: %s", result)
	}
}

func TestFormatMoveResult(t *testing.T) {
	moveResult := &service.MoveResult{
		PieceID:    1,
		Roll:       3,
		From:       engine.PiecePosition{State: engine.OnTrack, Ring: 2},
		To:         engine.PiecePosition{State: engine.OnTrack, Ring: 5},
		Captured:   []int{4},
		Winner:     engine.NoWinner,
		MatchState: engine.InitMatchStateFromConfig(engine.DefaultMatchConfig()),
	}

	result := formatMoveResult(moveResult)

	expectedFields := []string{
		"Moved piece 1 with a 3",
		"ring 2 -> ring 5",
		"Captured pieces: [4]",
	}

	for _, field := range expectedFields {
		if !strings.Contains(result, field) {
			t.Errorf("Expected field '%s' in formatted output, got: %s", field, result)
		}
	}
}

func TestFormatHistory(t *testing.T) {
	history := &service.HistoryResponse{
		Page:       1,
		TotalPages: 1,
		TotalTurns: 2,
		Turns: []engine.TurnHistoryEntry{
			{
				MoveNumber: 1,
				Player:     0,
				Roll:       6,
				PieceID:    0,
				From:       engine.PiecePosition{State: engine.AtBase},
				To:         engine.PiecePosition{State: engine.OnTrack, Ring: 0},
			},
			{
				MoveNumber: 2,
				Player:     1,
				Roll:       3,
				PieceID:    -1,
				Skipped:    true,
			},
		},
	}

	result := formatHistory(history)

	if !strings.Contains(result, "player 0 rolled 6: piece 0 at_base -> ring 0") {
		t.Errorf("Expected move line in history, got: %s", result)
	}
	if !strings.Contains(result, "player 1 rolled 3: no legal move, turn passed") {
		t.Errorf("Expected skip line in history, got: %s", result)
	}
}

func TestClient_handleGameInstructions(t *testing.T) {
	client := NewClient("http://localhost:8080")
	ctx := context.Background()

	request := mcp.CallToolRequest{
		Params: mcp.CallToolParams{
			Name:      "game_instructions",
			Arguments: map[string]interface{}{},
		},
	}

	result, err := client.handleGameInstructions(ctx, request)
	if err != nil {
		t.Fatalf("handleGameInstructions failed: %v", err)
	}
	if result == nil {
		t.Fatal("Expected result, got nil")
	}

	resultStr, ok := result.Content[0].(mcp.TextContent)
	if !ok {
		t.Fatal("Expected text content in result")
	}

	expectedContent := []string{
		"GAME OBJECTIVE:",
		"BOARD LAYOUT:",
		"TURN FLOW:",
		"PIECE RULES:",
		"CAPTURES:",
		"Safe cells: 0, 8, 13, 21, 26, 34, 39, 47",
		"MATCH MANAGEMENT:",
	}

	for _, content := range expectedContent {
		if !strings.Contains(resultStr.Text, content) {
			t.Errorf("Expected '%s' in instructions, got: %s", content, resultStr.Text)
		}
	}
}
