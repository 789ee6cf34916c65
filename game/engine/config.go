package engine

import "fmt"

// MatchConfig represents the match configuration, typically loaded from a
// JSON preset
type MatchConfig struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	NumPlayers  int    `json:"num_players"`

	// AutoPlaySingleMove applies a roll automatically when exactly one piece
	// is legal, instead of asking the caller for a pointless single-choice
	// selection. Presets may disable it for strict manual play.
	AutoPlaySingleMove bool `json:"auto_play_single_move"`

	// Seed fixes the dice sequence when non-zero; 0 means random
	Seed int64 `json:"seed,omitempty"`
}

// DefaultMatchConfig returns the standard four-player match configuration
func DefaultMatchConfig() *MatchConfig {
	return &MatchConfig{
		Name:               "classic",
		Description:        "Standard four player match",
		NumPlayers:         MaxPlayers,
		AutoPlaySingleMove: true,
	}
}

// ValidateMatchConfig validates a match configuration
func ValidateMatchConfig(config *MatchConfig) error {
	if config.Name == "" {
		return fmt.Errorf("config validation: name is required")
	}
	if config.NumPlayers < MinPlayers || config.NumPlayers > MaxPlayers {
		return fmt.Errorf("config validation: num_players must be between %d and %d, got %d: %w",
			MinPlayers, MaxPlayers, config.NumPlayers, ErrInvalidPlayerCount)
	}
	return nil
}
