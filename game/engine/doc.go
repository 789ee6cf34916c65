// Package engine provides the core rules engine for the Ludo match server.
//
// The engine package implements the game mechanics including:
//   - Track topology for the shared 52-cell ring and private home lanes
//   - Per-piece movement legality and transitions
//   - Turn sequencing, extra turns, and automatic turn passing
//   - Capture resolution on shared ring cells
//   - Win detection and terminal match state
//
// Core Types:
//
// The Engine interface defines the main contract for match operations,
// implemented by MatchEngine. MatchState represents the complete mutable
// match state, while MatchConfig defines the match rules (player count and
// move policies), typically loaded from a preset.
//
// Usage:
//
//	config := engine.DefaultMatchConfig()
//	config.NumPlayers = 2
//
//	match, err := engine.NewEngine(config)
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	// Roll for the current player
//	outcome, err := match.RollDice()
//	if err == nil && !outcome.AutoApplied && !outcome.TurnPassed {
//		_, err = match.SelectToken(outcome.LegalPieceIDs[0])
//	}
//	state := match.Snapshot()
//
// Game Rules:
//
// Each of 2 to 4 players races four pieces from a private base around the
// shared ring and into a private home lane. A 6 is required to enter the
// ring and grants an extra turn. Landing on an opposing piece outside a
// safe cell sends that piece back to its base. The home lane requires an
// exact count to finish; the first player with all four pieces finished
// wins the match.
package engine
