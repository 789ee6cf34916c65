package service

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/ludokit/ludo-server/game/engine"
)

// matchServiceImpl implements the MatchService interface
type matchServiceImpl struct {
	sessions SessionManager
	presets  PresetManager
	mu       sync.RWMutex
}

// NewMatchService creates a new match service instance
func NewMatchService(sessions SessionManager, presets PresetManager) MatchService {
	return &matchServiceImpl{
		sessions: sessions,
		presets:  presets,
	}
}

// getPresetID returns the preset_id for a given config name, used for
// consistent API responses
func (s *matchServiceImpl) getPresetID(configName string) string {
	available, err := s.presets.ListPresets()
	if err == nil {
		for _, p := range available {
			if p.Name == configName {
				return p.PresetID
			}
		}
	}
	if configName == "" {
		return "classic"
	}
	return configName
}

// CreateMatch creates a new match from the named preset
func (s *matchServiceImpl) CreateMatch(ctx context.Context, presetName string) (*MatchInfo, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var config *engine.MatchConfig
	var err error
	if presetName != "" {
		config, err = s.presets.LoadPreset(presetName)
		if err != nil {
			if strings.Contains(err.Error(), "preset not found") {
				available, listErr := s.presets.ListPresets()
				if listErr == nil && len(available) > 0 {
					var presetIDs []string
					for _, p := range available {
						presetIDs = append(presetIDs, p.PresetID)
					}
					return nil, fmt.Errorf("preset '%s' not found. Available presets: %v", presetName, presetIDs)
				}
				return nil, fmt.Errorf("preset '%s' not found. Use /api/presets to list available presets", presetName)
			}
			return nil, fmt.Errorf("failed to load preset %s: %w", presetName, err)
		}
	} else {
		config = s.presets.GetDefault()
	}

	// Let session manager generate a proper 4-character ID
	sess, err := s.sessions.Create("", config)
	if err != nil {
		return nil, fmt.Errorf("failed to create match: %w", err)
	}

	presetID := presetName
	if presetID == "" {
		presetID = s.getPresetID(config.Name)
	}

	return &MatchInfo{
		ID:             sess.ID,
		PresetName:     presetID,
		CreatedAt:      sess.CreatedAt,
		LastAccessedAt: sess.LastAccessedAt,
		MatchState:     sess.Engine.Snapshot(),
		MatchConfig:    sess.Config,
	}, nil
}

// CreateCustomMatch creates a match with an explicit player count instead of
// a named preset
func (s *matchServiceImpl) CreateCustomMatch(ctx context.Context, numPlayers int) (*MatchInfo, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	config := &engine.MatchConfig{
		Name:               "custom",
		Description:        fmt.Sprintf("Custom %d player match", numPlayers),
		NumPlayers:         numPlayers,
		AutoPlaySingleMove: true,
	}

	sess, err := s.sessions.Create("", config)
	if err != nil {
		return nil, fmt.Errorf("failed to create match: %w", err)
	}

	return &MatchInfo{
		ID:             sess.ID,
		PresetName:     "custom",
		CreatedAt:      sess.CreatedAt,
		LastAccessedAt: sess.LastAccessedAt,
		MatchState:     sess.Engine.Snapshot(),
		MatchConfig:    sess.Config,
	}, nil
}

// GetMatch retrieves match information
func (s *matchServiceImpl) GetMatch(ctx context.Context, matchID string) (*MatchInfo, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	sess, err := s.sessions.Get(matchID)
	if err != nil {
		return nil, fmt.Errorf("match not found: %w", err)
	}

	s.sessions.UpdateLastAccessed(matchID)

	return &MatchInfo{
		ID:             sess.ID,
		PresetName:     s.getPresetID(sess.Config.Name),
		CreatedAt:      sess.CreatedAt,
		LastAccessedAt: sess.LastAccessedAt,
		MatchState:     sess.Engine.Snapshot(),
		MatchConfig:    sess.Config,
	}, nil
}

// ListMatches returns all active matches
func (s *matchServiceImpl) ListMatches(ctx context.Context) ([]*MatchInfo, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	sessions := s.sessions.List()
	result := make([]*MatchInfo, 0, len(sessions))

	for _, sess := range sessions {
		result = append(result, &MatchInfo{
			ID:             sess.ID,
			PresetName:     s.getPresetID(sess.Config.Name),
			CreatedAt:      sess.CreatedAt,
			LastAccessedAt: sess.LastAccessedAt,
			MatchState:     sess.Engine.Snapshot(),
			MatchConfig:    sess.Config,
		})
	}

	return result, nil
}

// DeleteMatch removes a match
func (s *matchServiceImpl) DeleteMatch(ctx context.Context, matchID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.sessions.Delete(matchID)
}

// RollDice rolls for the current player of the match
func (s *matchServiceImpl) RollDice(ctx context.Context, matchID string) (*RollResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, err := s.sessions.Get(matchID)
	if err != nil {
		return nil, fmt.Errorf("match not found: %w", err)
	}

	s.sessions.UpdateLastAccessed(matchID)

	player := sess.Engine.State().CurrentPlayer
	outcome, err := sess.Engine.RollDice()
	if err != nil {
		return nil, err
	}

	state := sess.Engine.Snapshot()
	result := &RollResult{
		Roll:          outcome.Roll,
		LegalPieceIDs: outcome.LegalPieceIDs,
		AutoApplied:   outcome.AutoApplied,
		TurnPassed:    outcome.TurnPassed,
		MatchState:    state,
		Events: []GameEvent{{
			Type:      "roll",
			Message:   fmt.Sprintf("Player %d rolled a %d", player, outcome.Roll),
			Timestamp: time.Now(),
			Player:    player,
			PieceID:   -1,
		}},
	}

	if outcome.TurnPassed {
		result.Events = append(result.Events, GameEvent{
			Type:      "turn_passed",
			Message:   fmt.Sprintf("Player %d has no legal move. Player %d to roll.", player, state.CurrentPlayer),
			Timestamp: time.Now(),
			Player:    player,
			PieceID:   -1,
		})
	}

	if outcome.Move != nil {
		move := s.buildMoveResult(outcome.Move, state)
		result.Move = move
		result.Events = append(result.Events, move.Events...)
	}

	return result, nil
}

// SelectToken applies the pending roll to the chosen piece
func (s *matchServiceImpl) SelectToken(ctx context.Context, matchID string, pieceID int) (*MoveResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, err := s.sessions.Get(matchID)
	if err != nil {
		return nil, fmt.Errorf("match not found: %w", err)
	}

	s.sessions.UpdateLastAccessed(matchID)

	outcome, err := sess.Engine.SelectToken(pieceID)
	if err != nil {
		return nil, err
	}

	return s.buildMoveResult(outcome, sess.Engine.Snapshot()), nil
}

// GetMatchState retrieves a snapshot of the current match state
func (s *matchServiceImpl) GetMatchState(ctx context.Context, matchID string) (*engine.MatchState, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	sess, err := s.sessions.Get(matchID)
	if err != nil {
		return nil, fmt.Errorf("match not found: %w", err)
	}

	s.sessions.UpdateLastAccessed(matchID)
	return sess.Engine.Snapshot(), nil
}

// GetTurnHistory returns paginated turn history
func (s *matchServiceImpl) GetTurnHistory(ctx context.Context, matchID string, opts HistoryOptions) (*HistoryResponse, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	sess, err := s.sessions.Get(matchID)
	if err != nil {
		return nil, fmt.Errorf("match not found: %w", err)
	}

	history := sess.Engine.TurnHistory()
	total := len(history)

	// Apply defaults
	if opts.Page < 1 {
		opts.Page = 1
	}
	if opts.Limit <= 0 {
		opts.Limit = 20
	}
	if opts.Limit > 100 {
		opts.Limit = 100
	}
	if opts.Order == "" {
		opts.Order = "desc"
	}

	totalPages := (total + opts.Limit - 1) / opts.Limit
	if totalPages == 0 {
		totalPages = 1
	}

	start := (opts.Page - 1) * opts.Limit
	end := start + opts.Limit
	if end > total {
		end = total
	}

	var turns []engine.TurnHistoryEntry
	if opts.Order == "desc" {
		// Most recent first
		for i := total - 1 - start; i >= 0 && i >= total-end; i-- {
			turns = append(turns, history[i])
		}
	} else {
		if start < total {
			turns = history[start:end]
		}
	}

	if turns == nil {
		turns = []engine.TurnHistoryEntry{}
	}

	return &HistoryResponse{
		Turns:       turns,
		TotalTurns:  total,
		Page:        opts.Page,
		PageSize:    opts.Limit,
		TotalPages:  totalPages,
		HasNext:     opts.Page < totalPages,
		HasPrevious: opts.Page > 1,
	}, nil
}

// ListPresets returns available match presets
func (s *matchServiceImpl) ListPresets(ctx context.Context) ([]*PresetInfo, error) {
	return s.presets.ListPresets()
}

// LoadPreset loads a specific match preset
func (s *matchServiceImpl) LoadPreset(ctx context.Context, presetName string) (*engine.MatchConfig, error) {
	return s.presets.LoadPreset(presetName)
}

// SavePreset stores a preset for later match creation
func (s *matchServiceImpl) SavePreset(ctx context.Context, presetName string, config *engine.MatchConfig) error {
	return s.presets.SavePreset(presetName, config)
}

// buildMoveResult wraps an engine move outcome with events and a state snapshot
func (s *matchServiceImpl) buildMoveResult(move *engine.MoveOutcome, state *engine.MatchState) *MoveResult {
	player := state.PieceByID(move.PieceID).Player

	result := &MoveResult{
		PieceID:    move.PieceID,
		Roll:       move.Roll,
		From:       move.From,
		To:         move.To,
		Captured:   move.Captured,
		ExtraTurn:  move.ExtraTurn,
		Winner:     move.Winner,
		MatchState: state,
		Events: []GameEvent{{
			Type:      "move",
			Message:   fmt.Sprintf("Player %d moved piece %d (%s to %s)", player, move.PieceID, describePosition(move.From), describePosition(move.To)),
			Timestamp: time.Now(),
			Player:    player,
			PieceID:   move.PieceID,
		}},
	}

	for _, capturedID := range move.Captured {
		result.Events = append(result.Events, GameEvent{
			Type:      "capture",
			Message:   fmt.Sprintf("Player %d captured piece %d", player, capturedID),
			Timestamp: time.Now(),
			Player:    player,
			PieceID:   capturedID,
		})
	}

	if move.ExtraTurn {
		result.Events = append(result.Events, GameEvent{
			Type:      "extra_turn",
			Message:   fmt.Sprintf("Player %d rolled a %d and goes again", player, move.Roll),
			Timestamp: time.Now(),
			Player:    player,
			PieceID:   -1,
		})
	}

	if move.Winner != engine.NoWinner {
		result.Events = append(result.Events, GameEvent{
			Type:      "victory",
			Message:   fmt.Sprintf("Player %d wins the match!", move.Winner),
			Timestamp: time.Now(),
			Player:    move.Winner,
			PieceID:   -1,
		})
	}

	return result
}

func describePosition(p engine.PiecePosition) string {
	switch p.State {
	case engine.OnTrack:
		return fmt.Sprintf("ring %d", p.Ring)
	case engine.InHomeLane:
		return fmt.Sprintf("home lane %d", p.Lane)
	default:
		return string(p.State)
	}
}
