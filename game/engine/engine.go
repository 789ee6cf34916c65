package engine

import (
	"errors"
	"fmt"
)

// Caller-misuse errors. All rejections are synchronous, non-retryable, and
// leave the match state unchanged.
var (
	ErrInvalidPlayerCount = errors.New("player count must be between 2 and 4")
	ErrNotAwaitingRoll    = errors.New("match is not awaiting a dice roll")
	ErrNotAwaitingMove    = errors.New("match is not awaiting a move selection")
	ErrIllegalSelection   = errors.New("piece is not in the legal move set")
)

// Engine provides the main interface for match operations
type Engine interface {
	// Match state management
	State() *MatchState
	Snapshot() *MatchState
	Config() *MatchConfig
	IsGameOver() bool
	Winner() int

	// Intents
	RollDice() (*RollOutcome, error)
	SelectToken(pieceID int) (*MoveOutcome, error)

	// History
	TurnHistory() []TurnHistoryEntry
	LastTurn() *TurnHistoryEntry
}

// RollOutcome is the advisory result of a rollDice intent
type RollOutcome struct {
	Roll          int          `json:"roll"`
	LegalPieceIDs []int        `json:"legal_piece_ids"`
	AutoApplied   bool         `json:"auto_applied"`
	TurnPassed    bool         `json:"turn_passed"`
	Move          *MoveOutcome `json:"move,omitempty"`
}

// MoveOutcome describes one applied piece transition
type MoveOutcome struct {
	PieceID   int           `json:"piece_id"`
	Roll      int           `json:"roll"`
	From      PiecePosition `json:"from"`
	To        PiecePosition `json:"to"`
	Captured  []int         `json:"captured,omitempty"`
	ExtraTurn bool          `json:"extra_turn"`
	Winner    int           `json:"winner"`
}

// MatchEngine implements the Engine interface
type MatchEngine struct {
	state  *MatchState
	config *MatchConfig
	dice   Dice
}

// NewEngine creates a new match engine with the provided configuration.
// A non-zero config seed fixes the dice sequence.
func NewEngine(config *MatchConfig) (*MatchEngine, error) {
	if config == nil {
		config = DefaultMatchConfig()
	}

	dice := NewDice()
	if config.Seed != 0 {
		dice = NewSeededDice(config.Seed)
	}
	return NewEngineWithDice(config, dice)
}

// NewEngineWithDice creates a new match engine with an injected dice source
func NewEngineWithDice(config *MatchConfig, dice Dice) (*MatchEngine, error) {
	if err := ValidateMatchConfig(config); err != nil {
		return nil, err
	}

	return &MatchEngine{
		state:  InitMatchStateFromConfig(config),
		config: config,
		dice:   dice,
	}, nil
}

// State returns the live match state
func (e *MatchEngine) State() *MatchState {
	return e.state
}

// Snapshot returns a deep copy of the match state for read-only consumers
func (e *MatchEngine) Snapshot() *MatchState {
	return e.state.Clone()
}

// Config returns the match configuration
func (e *MatchEngine) Config() *MatchConfig {
	return e.config
}

// IsGameOver returns whether the match has ended
func (e *MatchEngine) IsGameOver() bool {
	return e.state.Phase == PhaseGameOver
}

// Winner returns the winning player, or NoWinner while the match runs
func (e *MatchEngine) Winner() int {
	return e.state.Winner
}

// TurnHistory returns the cumulative turn history
func (e *MatchEngine) TurnHistory() []TurnHistoryEntry {
	return e.state.TurnHistory
}

// LastTurn returns the most recent history entry, or nil before any turn
func (e *MatchEngine) LastTurn() *TurnHistoryEntry {
	if len(e.state.TurnHistory) == 0 {
		return nil
	}
	return &e.state.TurnHistory[len(e.state.TurnHistory)-1]
}

// RollDice rolls for the current player. Depending on the legal move set the
// turn either passes immediately (no legal moves), resolves in place (single
// legal move with auto-play enabled), or waits for SelectToken.
func (e *MatchEngine) RollDice() (*RollOutcome, error) {
	if e.state.Phase != PhaseAwaitingRoll {
		return nil, ErrNotAwaitingRoll
	}

	player := e.state.CurrentPlayer
	roll := e.dice.Roll()
	legal := e.state.LegalPieces(player, roll)

	outcome := &RollOutcome{
		Roll:          roll,
		LegalPieceIDs: legal,
	}
	e.state.LastRoll = roll

	switch {
	case len(legal) == 0:
		// No zero-option dead state: the turn passes without a move intent
		e.state.recordSkip(player, roll)
		e.advanceTurn()
		e.state.Message = fmt.Sprintf("Player %d rolled a %d with no legal move. Player %d to roll.",
			player, roll, e.state.CurrentPlayer)
		outcome.TurnPassed = true
		outcome.LegalPieceIDs = []int{}

	case len(legal) == 1 && e.config.AutoPlaySingleMove:
		outcome.AutoApplied = true
		outcome.Move = e.applyAndSettle(legal[0], roll, true)

	default:
		e.state.LegalPieceIDs = legal
		e.state.Phase = PhaseAwaitingMove
		e.state.Message = fmt.Sprintf("Player %d rolled a %d. Choose a piece.", player, roll)
	}

	return outcome, nil
}

// SelectToken applies the pending roll to the chosen piece. Only pieces in
// the legal set computed by the preceding roll may be selected.
func (e *MatchEngine) SelectToken(pieceID int) (*MoveOutcome, error) {
	if e.state.Phase != PhaseAwaitingMove {
		return nil, ErrNotAwaitingMove
	}
	if !containsID(e.state.LegalPieceIDs, pieceID) {
		return nil, ErrIllegalSelection
	}

	return e.applyAndSettle(pieceID, e.state.LastRoll, false), nil
}

// applyAndSettle applies the move and runs the shared post-move step:
// win detection, extra turn on a 6, or turn advancement.
func (e *MatchEngine) applyAndSettle(pieceID, roll int, autoApplied bool) *MoveOutcome {
	piece := e.state.PieceByID(pieceID)
	from, to, captured := e.state.applyMove(piece, roll)
	e.state.recordMove(piece, roll, from, to, captured, autoApplied)

	move := &MoveOutcome{
		PieceID:  pieceID,
		Roll:     roll,
		From:     from,
		To:       to,
		Captured: captured,
		Winner:   NoWinner,
	}

	switch {
	case e.state.FinishedCount(piece.Player) == PiecesPerPlayer:
		e.state.Winner = piece.Player
		e.state.Phase = PhaseGameOver
		e.state.LegalPieceIDs = nil
		e.state.Message = fmt.Sprintf("Player %d wins the match!", piece.Player)
		move.Winner = piece.Player

	case roll == ExtraTurnRoll:
		// Same player rolls again
		e.state.LastRoll = 0
		e.state.LegalPieceIDs = nil
		e.state.Phase = PhaseAwaitingRoll
		e.state.Message = fmt.Sprintf("Player %d rolled a %d and goes again.", piece.Player, roll)
		move.ExtraTurn = true

	default:
		e.advanceTurn()
		e.state.Message = fmt.Sprintf("Player %d to roll.", e.state.CurrentPlayer)
	}

	return move
}

// advanceTurn passes the turn to the next player and clears the pending roll
func (e *MatchEngine) advanceTurn() {
	e.state.CurrentPlayer = (e.state.CurrentPlayer + 1) % len(e.state.Players)
	e.state.LastRoll = 0
	e.state.LegalPieceIDs = nil
	e.state.Phase = PhaseAwaitingRoll
}

func containsID(ids []int, id int) bool {
	for _, v := range ids {
		if v == id {
			return true
		}
	}
	return false
}
