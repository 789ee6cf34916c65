// Package config provides match preset management for the Ludo server.
//
// The config package handles:
//   - Built-in preset registration
//   - Loading and saving presets as JSON files
//   - Preset validation and verification
//   - Default preset management
//   - Preset discovery and listing
//
// Preset Format:
//
// Presets are stored as JSON files in the presets directory. Each preset
// defines:
//   - Display name and description
//   - Number of seated players (2-4)
//   - Auto-play policy for single legal moves
//   - Optional dice seed for reproducible matches
//
// Built-in Presets:
//
// Two presets are always available without any files on disk:
//   - classic: Four players, auto-play enabled
//   - duel: Two players facing each other across the ring
//
// Usage:
//
//	manager, err := config.NewManager("presets")
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	// Load specific preset
//	preset, err := manager.LoadPreset("duel")
//
//	// Get default preset
//	defaultPreset := manager.GetDefault()
//
//	// List available presets
//	presets, err := manager.ListPresets()
//
// Validation:
//
// File-backed presets are validated on load: player count bounds, required
// display name, and well-formed JSON. Invalid files are skipped during
// listing and rejected on direct load.
package config
