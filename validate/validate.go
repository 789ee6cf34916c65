// Command validate provides a small CLI that validates match preset JSON
// files in a preset directory (default ../presets). It checks:
//   - JSON structure and unknown fields
//   - Presence of a name
//   - Player count within the supported range
//   - Non-negative seed
//   - Case-insensitive preset ID collisions between files
//   - Files shadowed by built-in presets (classic, duel)
package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/ludokit/ludo-server/game/engine"
)

// builtinPresetIDs are preset IDs served from memory; a file with the same
// name is never loaded.
var builtinPresetIDs = map[string]bool{
	"classic": true,
	"duel":    true,
}

// ValidationResult captures the outcome of validating a single file.
// If Valid is true, Errors contains informational messages; otherwise it
// accumulates the validation errors that were found.
type ValidationResult struct {
	File   string
	Valid  bool
	Errors []string
}

// validatePreset loads and validates a single preset JSON file. It performs
// structural checks, field validation, and flags shadowing by built-ins.
func validatePreset(filePath string) ValidationResult {
	result := ValidationResult{
		File:   filepath.Base(filePath),
		Valid:  true,
		Errors: []string{},
	}

	data, err := os.ReadFile(filePath)
	if err != nil {
		result.Valid = false
		result.Errors = append(result.Errors, fmt.Sprintf("Failed to read file: %v", err))
		return result
	}

	var config engine.MatchConfig
	decoder := json.NewDecoder(bytes.NewReader(data))
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&config); err != nil {
		result.Valid = false
		result.Errors = append(result.Errors, fmt.Sprintf("Invalid JSON: %v", err))
		return result
	}

	if config.Name == "" {
		result.Valid = false
		result.Errors = append(result.Errors, "Missing required field: name")
	}

	if config.NumPlayers < engine.MinPlayers || config.NumPlayers > engine.MaxPlayers {
		result.Valid = false
		result.Errors = append(result.Errors, fmt.Sprintf("num_players must be between %d and %d, got %d",
			engine.MinPlayers, engine.MaxPlayers, config.NumPlayers))
	}

	if config.Seed < 0 {
		result.Valid = false
		result.Errors = append(result.Errors, fmt.Sprintf("seed must not be negative, got %d", config.Seed))
	}

	presetID := presetIDFromFile(filePath)
	if builtinPresetIDs[presetID] {
		result.Valid = false
		result.Errors = append(result.Errors, fmt.Sprintf("Preset ID '%s' is shadowed by a built-in preset and will never load", presetID))
	}

	// Add informational data
	if result.Valid {
		result.Errors = append(result.Errors, fmt.Sprintf("✓ Preset ID: %s", presetID))
		result.Errors = append(result.Errors, fmt.Sprintf("✓ Name: %s", config.Name))
		result.Errors = append(result.Errors, fmt.Sprintf("✓ Players: %d", config.NumPlayers))
		result.Errors = append(result.Errors, fmt.Sprintf("✓ Auto-play single move: %v", config.AutoPlaySingleMove))
		if config.Seed != 0 {
			result.Errors = append(result.Errors, fmt.Sprintf("✓ Seed: %d (deterministic dice)", config.Seed))
		} else {
			result.Errors = append(result.Errors, "✓ Seed: random dice")
		}
	}

	return result
}

// presetIDFromFile derives the preset ID the server would use for a file:
// the lowercased base name without the .json extension.
func presetIDFromFile(filePath string) string {
	base := filepath.Base(filePath)
	return strings.ToLower(strings.TrimSuffix(base, filepath.Ext(base)))
}

// validateCollisions reports preset files whose IDs collide case-insensitively.
// Lookups are case-insensitive, so two such files are indistinguishable.
func validateCollisions(files []string) []string {
	seen := make(map[string][]string)
	for _, file := range files {
		id := presetIDFromFile(file)
		seen[id] = append(seen[id], filepath.Base(file))
	}

	var collisions []string
	for id, names := range seen {
		if len(names) > 1 {
			collisions = append(collisions, fmt.Sprintf("Preset ID '%s' claimed by multiple files: %s", id, strings.Join(names, ", ")))
		}
	}
	return collisions
}

// main scans the preset directory for *.json files and validates each one,
// printing a concise report and exiting with non-zero status if any are
// invalid.
func main() {
	presetDir := "../presets"
	if len(os.Args) > 1 {
		presetDir = os.Args[1]
	}

	files, err := filepath.Glob(filepath.Join(presetDir, "*.json"))
	if err != nil {
		fmt.Printf("Error finding preset files: %v\n", err)
		os.Exit(1)
	}

	allValid := true
	for _, file := range files {
		result := validatePreset(file)

		fmt.Printf("\n%s %s\n", strings.Repeat("=", 20), result.File)

		if result.Valid {
			fmt.Println("✅ VALID")
			for _, info := range result.Errors {
				fmt.Println("  " + info)
			}
		} else {
			fmt.Println("❌ INVALID")
			allValid = false
			for _, err := range result.Errors {
				if !strings.HasPrefix(err, "✓") {
					fmt.Println("  ❌ " + err)
				}
			}
		}
	}

	if collisions := validateCollisions(files); len(collisions) > 0 {
		allValid = false
		fmt.Println()
		for _, collision := range collisions {
			fmt.Println("❌ " + collision)
		}
	}

	fmt.Printf("\n%s\n", strings.Repeat("=", 40))
	if allValid {
		fmt.Println("✅ All presets are valid!")
	} else {
		fmt.Println("❌ Some presets have errors")
		os.Exit(1)
	}
}
