package engine

// PieceState tags which variant of position a piece currently holds
type PieceState string

const (
	AtBase     PieceState = "at_base"
	OnTrack    PieceState = "on_track"
	InHomeLane PieceState = "in_home_lane"
	Finished   PieceState = "finished"

	// Board constants
	RingSize        = 52
	HomeLaneSize    = 5
	PiecesPerPlayer = 4
	MinPlayers      = 2
	MaxPlayers      = 4

	// Dice constants
	MinRoll       = 1
	MaxRoll       = 6
	EntryRoll     = 6
	ExtraTurnRoll = 6

	// Winner value while the match is still running
	NoWinner = -1
)

// Color is a presentation tag carried for the renderer; rules never branch on it
type Color string

const (
	Red    Color = "red"
	Blue   Color = "blue"
	Green  Color = "green"
	Yellow Color = "yellow"
)

// playerColors assigns colors by player slot
var playerColors = [MaxPlayers]Color{Red, Blue, Green, Yellow}

// Phase represents the turn state machine phase
type Phase string

const (
	PhaseAwaitingRoll Phase = "awaiting_roll"
	PhaseAwaitingMove Phase = "awaiting_move"
	PhaseGameOver     Phase = "game_over"
)

// Piece is one of the four tokens owned by a player.
// Ring is meaningful only when State is OnTrack, Lane only when State is
// InHomeLane; the State tag decides which one applies.
type Piece struct {
	ID     int        `json:"id"`
	Player int        `json:"player"`
	State  PieceState `json:"state"`
	Ring   int        `json:"ring"`
	Lane   int        `json:"lane"`
}

// Player owns exactly PiecesPerPlayer pieces; affiliation never changes
type Player struct {
	ID     int     `json:"id"`
	Color  Color   `json:"color"`
	Pieces []Piece `json:"pieces"`
}

// PiecePosition is a compact snapshot of where a piece is, used in history
// entries and move results
type PiecePosition struct {
	State PieceState `json:"state"`
	Ring  int        `json:"ring,omitempty"`
	Lane  int        `json:"lane,omitempty"`
}

// TurnHistoryEntry records a single resolved turn in the match history
type TurnHistoryEntry struct {
	MoveNumber  int           `json:"move_number"`
	Player      int           `json:"player"`
	Roll        int           `json:"roll"`
	PieceID     int           `json:"piece_id"`
	From        PiecePosition `json:"from"`
	To          PiecePosition `json:"to"`
	Captured    []int         `json:"captured,omitempty"`
	AutoApplied bool          `json:"auto_applied,omitempty"`
	Skipped     bool          `json:"skipped,omitempty"`
	Timestamp   int64         `json:"timestamp"`
}

// MatchState represents the complete match state
type MatchState struct {
	Players       []Player           `json:"players"`
	CurrentPlayer int                `json:"current_player"`
	LastRoll      int                `json:"last_roll"` // 0 while no roll is pending
	Phase         Phase              `json:"phase"`
	Winner        int                `json:"winner"` // NoWinner until the match ends
	LegalPieceIDs []int              `json:"legal_piece_ids,omitempty"`
	ConfigName    string             `json:"config_name"`
	Message       string             `json:"message"`
	TurnHistory   []TurnHistoryEntry `json:"turn_history"`
	TotalMoves    int                `json:"total_moves"`
}

// InitMatchStateFromConfig creates a fresh match state with all pieces at base
func InitMatchStateFromConfig(config *MatchConfig) *MatchState {
	if config == nil {
		config = DefaultMatchConfig()
	}

	players := make([]Player, config.NumPlayers)
	for p := 0; p < config.NumPlayers; p++ {
		pieces := make([]Piece, PiecesPerPlayer)
		for i := 0; i < PiecesPerPlayer; i++ {
			pieces[i] = Piece{
				ID:     p*PiecesPerPlayer + i,
				Player: p,
				State:  AtBase,
			}
		}
		players[p] = Player{
			ID:     p,
			Color:  playerColors[p],
			Pieces: pieces,
		}
	}

	return &MatchState{
		Players:       players,
		CurrentPlayer: 0,
		LastRoll:      0,
		Phase:         PhaseAwaitingRoll,
		Winner:        NoWinner,
		ConfigName:    config.Name,
		Message:       "Match started. Player 0 to roll.",
		TurnHistory:   []TurnHistoryEntry{},
		TotalMoves:    0,
	}
}

// PieceByID returns the piece with the given match-wide ID, or nil
func (ms *MatchState) PieceByID(id int) *Piece {
	if id < 0 || id >= len(ms.Players)*PiecesPerPlayer {
		return nil
	}
	return &ms.Players[id/PiecesPerPlayer].Pieces[id%PiecesPerPlayer]
}

// FinishedCount returns how many of a player's pieces are finished
func (ms *MatchState) FinishedCount(player int) int {
	count := 0
	for _, p := range ms.Players[player].Pieces {
		if p.State == Finished {
			count++
		}
	}
	return count
}

// Position returns the compact position snapshot for a piece
func (p *Piece) Position() PiecePosition {
	pos := PiecePosition{State: p.State}
	switch p.State {
	case OnTrack:
		pos.Ring = p.Ring
	case InHomeLane:
		pos.Lane = p.Lane
	}
	return pos
}

// Clone returns a deep copy of the match state for read-only snapshots
func (ms *MatchState) Clone() *MatchState {
	clone := *ms

	clone.Players = make([]Player, len(ms.Players))
	for i, pl := range ms.Players {
		clone.Players[i] = pl
		clone.Players[i].Pieces = append([]Piece(nil), pl.Pieces...)
	}

	if ms.LegalPieceIDs != nil {
		clone.LegalPieceIDs = append([]int(nil), ms.LegalPieceIDs...)
	}
	clone.TurnHistory = append([]TurnHistoryEntry(nil), ms.TurnHistory...)

	return &clone
}
