package service

import (
	"time"

	"github.com/ludokit/ludo-server/game/engine"
)

// MatchInfo provides information about a match
type MatchInfo struct {
	ID             string              `json:"id"`
	PresetName     string              `json:"preset_name"`
	CreatedAt      time.Time           `json:"created_at"`
	LastAccessedAt time.Time           `json:"last_accessed_at"`
	MatchState     *engine.MatchState  `json:"match_state"`
	MatchConfig    *engine.MatchConfig `json:"match_config"`
}

// RollResult contains the result of a dice roll, including any move the
// engine applied automatically and any turn pass that followed.
type RollResult struct {
	Roll          int                `json:"roll"`
	LegalPieceIDs []int              `json:"legal_piece_ids"`
	AutoApplied   bool               `json:"auto_applied"`
	TurnPassed    bool               `json:"turn_passed"`
	Move          *MoveResult        `json:"move,omitempty"`
	MatchState    *engine.MatchState `json:"match_state"`
	Events        []GameEvent        `json:"events"`
}

// MoveResult contains the result of applying a move to a piece
type MoveResult struct {
	PieceID    int                  `json:"piece_id"`
	Roll       int                  `json:"roll"`
	From       engine.PiecePosition `json:"from"`
	To         engine.PiecePosition `json:"to"`
	Captured   []int                `json:"captured"`
	ExtraTurn  bool                 `json:"extra_turn"`
	Winner     int                  `json:"winner"`
	MatchState *engine.MatchState   `json:"match_state"`
	Events     []GameEvent          `json:"events"`
}

// GameEvent represents an event that occurred during a turn
type GameEvent struct {
	Type      string    `json:"type"` // "roll", "move", "capture", "extra_turn", "turn_passed", "victory"
	Message   string    `json:"message"`
	Timestamp time.Time `json:"timestamp"`
	Player    int       `json:"player"`
	PieceID   int       `json:"piece_id"` // -1 when no piece is involved
}

// HistoryOptions configures turn history retrieval
type HistoryOptions struct {
	Page  int    `json:"page"`
	Limit int    `json:"limit"`
	Order string `json:"order"` // "asc" or "desc"
}

// HistoryResponse contains paginated turn history
type HistoryResponse struct {
	Turns       []engine.TurnHistoryEntry `json:"turns"`
	TotalTurns  int                       `json:"total_turns"`
	Page        int                       `json:"page"`
	PageSize    int                       `json:"page_size"`
	TotalPages  int                       `json:"total_pages"`
	HasNext     bool                      `json:"has_next"`
	HasPrevious bool                      `json:"has_previous"`
}

// PresetInfo provides information about a match preset
type PresetInfo struct {
	PresetID    string `json:"preset_id"` // The identifier to use for match creation
	Name        string `json:"name"`      // Display name
	Description string `json:"description"`
	NumPlayers  int    `json:"num_players"`
	Builtin     bool   `json:"builtin"`
}
