// Package service provides the business logic layer for the Ludo server.
//
// The service package implements:
//   - Multi-match management
//   - Preset loading and validation
//   - Roll and token-selection orchestration
//   - Match lifecycle management
//   - Turn history retrieval with pagination
//
// Core Interfaces:
//
// MatchService is the main service interface providing high-level match
// operations. SessionManager handles match creation, retrieval, and lifecycle.
// PresetManager manages match preset loading and validation.
//
// Architecture:
//
// The service layer sits between the transport layer (HTTP/WebSocket/MCP) and
// the rules engine, providing match isolation, preset management, and event
// extraction. Each match maintains its own engine instance with independent
// state and dice stream.
//
// Usage:
//
//	sessionMgr := session.NewManager()
//	presetMgr := config.NewManager("presets")
//	matchService := service.NewMatchService(sessionMgr, presetMgr)
//
//	// Create a new match
//	info, err := matchService.CreateMatch(ctx, "classic")
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	// Play a turn
//	rollResult, err := matchService.RollDice(ctx, info.ID)
//	moveResult, err := matchService.SelectToken(ctx, info.ID, pieceID)
//
// Match Management:
//
// Matches are identified by unique 4-character IDs and maintain independent
// state. Multiple matches can run concurrently with different presets.
// Matches track creation time, last access time, and turn history for
// replay and debugging.
package service
