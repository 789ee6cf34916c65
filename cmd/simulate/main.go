// Command simulate runs seeded self-play matches against the rules engine and
// prints aggregate statistics: win rates per seat, match length, capture and
// skipped-turn counts. Useful for sanity-checking rule changes and preset
// balance without starting the server.
package main

import (
	"flag"
	"fmt"
	"math/rand"
	"os"

	"github.com/ludokit/ludo-server/game/engine"
)

// rollLimit aborts matches that fail to terminate; with uniform dice a match
// finishes in well under a thousand rolls.
const rollLimit = 10000

// SimResult captures the outcome of one simulated match.
type SimResult struct {
	Winner   int
	Rolls    int
	Moves    int
	Captures int
	Skips    int
	Aborted  bool
}

// simulateMatch plays one full match with seeded dice, choosing uniformly
// among legal pieces whenever a selection is required.
func simulateMatch(players int, diceSeed int64, rng *rand.Rand) (SimResult, error) {
	config := &engine.MatchConfig{
		Name:               "simulation",
		NumPlayers:         players,
		AutoPlaySingleMove: true,
	}

	eng, err := engine.NewEngineWithDice(config, engine.NewSeededDice(diceSeed))
	if err != nil {
		return SimResult{}, err
	}

	var result SimResult
	for result.Rolls < rollLimit {
		state := eng.State()
		if state.Phase == engine.PhaseGameOver {
			result.Winner = state.Winner
			return result, nil
		}

		outcome, err := eng.RollDice()
		if err != nil {
			return result, fmt.Errorf("roll %d: %w", result.Rolls, err)
		}
		result.Rolls++

		switch {
		case outcome.TurnPassed:
			result.Skips++
		case outcome.Move != nil:
			result.Moves++
			result.Captures += len(outcome.Move.Captured)
		default:
			pieceID := outcome.LegalPieceIDs[rng.Intn(len(outcome.LegalPieceIDs))]
			move, err := eng.SelectToken(pieceID)
			if err != nil {
				return result, fmt.Errorf("select piece %d: %w", pieceID, err)
			}
			result.Moves++
			result.Captures += len(move.Captured)
		}
	}

	result.Aborted = true
	result.Winner = engine.NoWinner
	return result, nil
}

func main() {
	matches := flag.Int("matches", 100, "number of matches to simulate")
	players := flag.Int("players", 4, "players per match (2-4)")
	seed := flag.Int64("seed", 1, "base seed; match i uses seed+i for its dice")
	flag.Parse()

	if *players < engine.MinPlayers || *players > engine.MaxPlayers {
		fmt.Printf("players must be between %d and %d\n", engine.MinPlayers, engine.MaxPlayers)
		os.Exit(1)
	}
	if *matches <= 0 {
		fmt.Println("matches must be positive")
		os.Exit(1)
	}

	rng := rand.New(rand.NewSource(*seed))

	wins := make([]int, *players)
	var totalRolls, totalMoves, totalCaptures, totalSkips, aborted int

	for i := 0; i < *matches; i++ {
		result, err := simulateMatch(*players, *seed+int64(i), rng)
		if err != nil {
			fmt.Printf("match %d failed: %v\n", i, err)
			os.Exit(1)
		}

		totalRolls += result.Rolls
		totalMoves += result.Moves
		totalCaptures += result.Captures
		totalSkips += result.Skips
		if result.Aborted {
			aborted++
		} else {
			wins[result.Winner]++
		}
	}

	fmt.Printf("=== Simulation: %d matches, %d players, base seed %d ===\n", *matches, *players, *seed)
	completed := *matches - aborted
	for seat, count := range wins {
		pct := 0.0
		if completed > 0 {
			pct = 100 * float64(count) / float64(completed)
		}
		fmt.Printf("Seat %d: %d wins (%.1f%%)\n", seat, count, pct)
	}
	if aborted > 0 {
		fmt.Printf("Aborted at roll limit: %d\n", aborted)
	}
	fmt.Printf("Average rolls per match: %.1f\n", float64(totalRolls)/float64(*matches))
	fmt.Printf("Average moves per match: %.1f\n", float64(totalMoves)/float64(*matches))
	fmt.Printf("Average captures per match: %.1f\n", float64(totalCaptures)/float64(*matches))
	fmt.Printf("Average skipped turns per match: %.1f\n", float64(totalSkips)/float64(*matches))
}
