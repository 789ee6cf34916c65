package service

import (
	"context"
	"time"

	"github.com/ludokit/ludo-server/game/engine"
)

// MatchService defines all match-related operations
type MatchService interface {
	// Match Management
	CreateMatch(ctx context.Context, presetName string) (*MatchInfo, error)
	CreateCustomMatch(ctx context.Context, numPlayers int) (*MatchInfo, error)
	GetMatch(ctx context.Context, matchID string) (*MatchInfo, error)
	ListMatches(ctx context.Context) ([]*MatchInfo, error)
	DeleteMatch(ctx context.Context, matchID string) error

	// Turn Operations
	RollDice(ctx context.Context, matchID string) (*RollResult, error)
	SelectToken(ctx context.Context, matchID string, pieceID int) (*MoveResult, error)

	// Match State
	GetMatchState(ctx context.Context, matchID string) (*engine.MatchState, error)
	GetTurnHistory(ctx context.Context, matchID string, opts HistoryOptions) (*HistoryResponse, error)

	// Presets
	ListPresets(ctx context.Context) ([]*PresetInfo, error)
	LoadPreset(ctx context.Context, presetName string) (*engine.MatchConfig, error)
	SavePreset(ctx context.Context, presetName string, config *engine.MatchConfig) error
}

// SessionManager defines match storage operations
type SessionManager interface {
	Create(id string, config *engine.MatchConfig) (*Session, error)
	Get(id string) (*Session, error)
	List() []*Session
	Delete(id string) error
	UpdateLastAccessed(id string) error
}

// PresetManager handles match preset loading and saving
type PresetManager interface {
	LoadPreset(name string) (*engine.MatchConfig, error)
	ListPresets() ([]*PresetInfo, error)
	SavePreset(name string, config *engine.MatchConfig) error
	GetDefault() *engine.MatchConfig
}

// Session represents an active match
type Session struct {
	ID             string
	Engine         engine.Engine
	Config         *engine.MatchConfig
	CreatedAt      time.Time
	LastAccessedAt time.Time
}
