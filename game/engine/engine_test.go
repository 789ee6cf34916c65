package engine

import (
	"errors"
	"testing"
)

func newTestEngine(t *testing.T, numPlayers int, rolls ...int) *MatchEngine {
	t.Helper()

	config := DefaultMatchConfig()
	config.NumPlayers = numPlayers

	eng, err := NewEngineWithDice(config, NewScriptedDice(rolls...))
	if err != nil {
		t.Fatalf("failed to create engine: %v", err)
	}
	return eng
}

func TestNewEngine(t *testing.T) {
	eng, err := NewEngine(DefaultMatchConfig())
	if err != nil {
		t.Fatalf("failed to create engine: %v", err)
	}

	state := eng.State()
	if len(state.Players) != MaxPlayers {
		t.Errorf("expected %d players, got %d", MaxPlayers, len(state.Players))
	}
	if state.Phase != PhaseAwaitingRoll {
		t.Errorf("expected initial phase awaiting_roll, got %s", state.Phase)
	}
	if state.Winner != NoWinner {
		t.Errorf("expected no winner initially, got %d", state.Winner)
	}
	for _, pl := range state.Players {
		if len(pl.Pieces) != PiecesPerPlayer {
			t.Fatalf("player %d has %d pieces, want %d", pl.ID, len(pl.Pieces), PiecesPerPlayer)
		}
		for _, p := range pl.Pieces {
			if p.State != AtBase {
				t.Errorf("piece %d should start at base, got %s", p.ID, p.State)
			}
		}
	}
}

func TestNewEngine_InvalidPlayerCount(t *testing.T) {
	for _, n := range []int{0, 1, 5, -1} {
		config := DefaultMatchConfig()
		config.NumPlayers = n

		_, err := NewEngine(config)
		if !errors.Is(err, ErrInvalidPlayerCount) {
			t.Errorf("num_players=%d: expected ErrInvalidPlayerCount, got %v", n, err)
		}
	}
}

func TestRollDice_TurnPassesWithNoLegalMove(t *testing.T) {
	// All pieces at base and a non-6 roll: the turn passes without a
	// selection intent and no dead state is exposed.
	eng := newTestEngine(t, 2, 3)

	outcome, err := eng.RollDice()
	if err != nil {
		t.Fatalf("roll failed: %v", err)
	}

	if !outcome.TurnPassed {
		t.Error("expected turn to pass")
	}
	if len(outcome.LegalPieceIDs) != 0 {
		t.Errorf("expected empty legal set, got %v", outcome.LegalPieceIDs)
	}

	state := eng.State()
	if state.CurrentPlayer != 1 {
		t.Errorf("expected current player 1, got %d", state.CurrentPlayer)
	}
	if state.Phase != PhaseAwaitingRoll {
		t.Errorf("expected phase awaiting_roll, got %s", state.Phase)
	}
	if state.LastRoll != 0 {
		t.Errorf("expected cleared roll after pass, got %d", state.LastRoll)
	}
}

func TestRollDice_AutoAppliesSingleLegalMove(t *testing.T) {
	// One piece on track, the rest at base: a non-6 roll has exactly one
	// legal piece and resolves without a selection.
	eng := newTestEngine(t, 2, 4)
	piece := eng.State().PieceByID(2)
	piece.State = OnTrack
	piece.Ring = 10

	outcome, err := eng.RollDice()
	if err != nil {
		t.Fatalf("roll failed: %v", err)
	}

	if !outcome.AutoApplied {
		t.Fatal("expected auto-applied move")
	}
	if outcome.Move == nil || outcome.Move.PieceID != 2 {
		t.Fatalf("expected move on piece 2, got %+v", outcome.Move)
	}
	if piece.Ring != 14 {
		t.Errorf("expected piece at ring 14, got %d", piece.Ring)
	}

	// Non-6 roll: turn advances
	if eng.State().CurrentPlayer != 1 {
		t.Errorf("expected turn to advance, current player %d", eng.State().CurrentPlayer)
	}
}

func TestRollDice_SingleMoveRequiresSelectionWhenPolicyOff(t *testing.T) {
	config := DefaultMatchConfig()
	config.NumPlayers = 2
	config.AutoPlaySingleMove = false

	eng, err := NewEngineWithDice(config, NewScriptedDice(4))
	if err != nil {
		t.Fatalf("failed to create engine: %v", err)
	}
	piece := eng.State().PieceByID(0)
	piece.State = OnTrack
	piece.Ring = 10

	outcome, err := eng.RollDice()
	if err != nil {
		t.Fatalf("roll failed: %v", err)
	}

	if outcome.AutoApplied {
		t.Error("auto-play disabled: roll must not apply the move")
	}
	if eng.State().Phase != PhaseAwaitingMove {
		t.Errorf("expected phase awaiting_move, got %s", eng.State().Phase)
	}
	if _, err := eng.SelectToken(0); err != nil {
		t.Errorf("selection of the single legal piece failed: %v", err)
	}
}

func TestRollDice_WrongPhase(t *testing.T) {
	eng := newTestEngine(t, 2, 6)
	if _, err := eng.RollDice(); err != nil {
		t.Fatalf("first roll failed: %v", err)
	}

	// All four base pieces are legal on a 6, so we are awaiting a move
	if eng.State().Phase != PhaseAwaitingMove {
		t.Fatalf("expected awaiting_move, got %s", eng.State().Phase)
	}

	if _, err := eng.RollDice(); !errors.Is(err, ErrNotAwaitingRoll) {
		t.Errorf("expected ErrNotAwaitingRoll, got %v", err)
	}
}

func TestSelectToken_WrongPhase(t *testing.T) {
	eng := newTestEngine(t, 2)

	if _, err := eng.SelectToken(0); !errors.Is(err, ErrNotAwaitingMove) {
		t.Errorf("expected ErrNotAwaitingMove, got %v", err)
	}
}

func TestSelectToken_IllegalSelection(t *testing.T) {
	eng := newTestEngine(t, 2, 6)
	if _, err := eng.RollDice(); err != nil {
		t.Fatalf("roll failed: %v", err)
	}

	before := eng.Snapshot()

	// Piece 4 belongs to player 1 and is not in the legal set
	if _, err := eng.SelectToken(4); !errors.Is(err, ErrIllegalSelection) {
		t.Errorf("expected ErrIllegalSelection, got %v", err)
	}

	// Rejected intents leave the state unchanged
	after := eng.State()
	if after.Phase != before.Phase || after.LastRoll != before.LastRoll ||
		after.CurrentPlayer != before.CurrentPlayer {
		t.Error("rejected selection must not mutate match state")
	}
}

func TestExtraTurnOnSix(t *testing.T) {
	eng := newTestEngine(t, 2, 6)
	if _, err := eng.RollDice(); err != nil {
		t.Fatalf("roll failed: %v", err)
	}

	move, err := eng.SelectToken(0)
	if err != nil {
		t.Fatalf("selection failed: %v", err)
	}

	if !move.ExtraTurn {
		t.Error("expected extra turn after moving on a 6")
	}
	state := eng.State()
	if state.CurrentPlayer != 0 {
		t.Errorf("current player must not change on an extra turn, got %d", state.CurrentPlayer)
	}
	if state.Phase != PhaseAwaitingRoll {
		t.Errorf("expected phase awaiting_roll, got %s", state.Phase)
	}
	if state.LastRoll != 0 {
		t.Errorf("expected cleared roll before the extra turn, got %d", state.LastRoll)
	}
}

func TestWinDetection(t *testing.T) {
	eng := newTestEngine(t, 2, 2)
	state := eng.State()

	// Three pieces already finished, the last one two steps from the end
	for i := 0; i < 3; i++ {
		state.Players[0].Pieces[i].State = Finished
	}
	last := eng.State().PieceByID(3)
	last.State = InHomeLane
	last.Lane = 3

	outcome, err := eng.RollDice()
	if err != nil {
		t.Fatalf("roll failed: %v", err)
	}

	if !outcome.AutoApplied {
		t.Fatal("expected the final move to auto-apply")
	}
	if outcome.Move.Winner != 0 {
		t.Errorf("expected winner 0, got %d", outcome.Move.Winner)
	}
	if state.Phase != PhaseGameOver {
		t.Errorf("expected phase game_over, got %s", state.Phase)
	}
	if state.Winner != 0 {
		t.Errorf("expected winner 0, got %d", state.Winner)
	}

	// GameOver is terminal: every further intent is rejected
	if _, err := eng.RollDice(); !errors.Is(err, ErrNotAwaitingRoll) {
		t.Errorf("expected ErrNotAwaitingRoll after game over, got %v", err)
	}
	if _, err := eng.SelectToken(3); !errors.Is(err, ErrNotAwaitingMove) {
		t.Errorf("expected ErrNotAwaitingMove after game over, got %v", err)
	}
}

func TestSnapshotIsDeepCopy(t *testing.T) {
	eng := newTestEngine(t, 2, 6)

	snap := eng.Snapshot()
	snap.Players[0].Pieces[0].State = Finished
	snap.CurrentPlayer = 1

	state := eng.State()
	if state.Players[0].Pieces[0].State != AtBase {
		t.Error("mutating a snapshot must not affect the live state")
	}
	if state.CurrentPlayer != 0 {
		t.Error("mutating a snapshot must not affect the live state")
	}
}

func TestTurnHistoryRecordsMovesAndSkips(t *testing.T) {
	eng := newTestEngine(t, 2, 3, 6)

	// Player 0 rolls a 3 with everything at base: skip entry
	if _, err := eng.RollDice(); err != nil {
		t.Fatalf("roll failed: %v", err)
	}
	// Player 1 rolls a 6 and must choose among four base pieces
	if _, err := eng.RollDice(); err != nil {
		t.Fatalf("roll failed: %v", err)
	}
	if _, err := eng.SelectToken(4); err != nil {
		t.Fatalf("selection failed: %v", err)
	}

	history := eng.TurnHistory()
	if len(history) != 2 {
		t.Fatalf("expected 2 history entries, got %d", len(history))
	}
	if !history[0].Skipped || history[0].Player != 0 || history[0].Roll != 3 {
		t.Errorf("unexpected skip entry: %+v", history[0])
	}
	if history[1].Skipped || history[1].PieceID != 4 || history[1].To.State != OnTrack {
		t.Errorf("unexpected move entry: %+v", history[1])
	}

	last := eng.LastTurn()
	if last == nil || last.MoveNumber != 2 {
		t.Errorf("unexpected last turn: %+v", last)
	}
}

func TestEndToEnd_TwoEntriesThenContestedMove(t *testing.T) {
	// Player 0: 6 (enter), 6 (enter a second piece), 3 (choose between the
	// two stacked on-track pieces). The capture then lands on player 1's
	// piece parked on a non-safe cell.
	eng := newTestEngine(t, 2, 6, 6, 3)

	victim := eng.State().PieceByID(4)
	victim.State = OnTrack
	victim.Ring = 3

	// First 6: four base pieces legal, pick piece 0
	outcome, err := eng.RollDice()
	if err != nil {
		t.Fatalf("roll failed: %v", err)
	}
	if len(outcome.LegalPieceIDs) != 4 {
		t.Fatalf("expected 4 legal entries, got %v", outcome.LegalPieceIDs)
	}
	if _, err := eng.SelectToken(0); err != nil {
		t.Fatalf("selection failed: %v", err)
	}

	// Extra turn, second 6: enter piece 1
	if _, err := eng.RollDice(); err != nil {
		t.Fatalf("roll failed: %v", err)
	}
	if _, err := eng.SelectToken(1); err != nil {
		t.Fatalf("selection failed: %v", err)
	}

	// Extra turn, roll 3: both on-track pieces are selectable
	outcome, err = eng.RollDice()
	if err != nil {
		t.Fatalf("roll failed: %v", err)
	}
	if eng.State().Phase != PhaseAwaitingMove {
		t.Fatalf("expected awaiting_move, got %s", eng.State().Phase)
	}
	if len(outcome.LegalPieceIDs) != 2 {
		t.Fatalf("expected 2 legal pieces, got %v", outcome.LegalPieceIDs)
	}

	move, err := eng.SelectToken(0)
	if err != nil {
		t.Fatalf("selection failed: %v", err)
	}

	if move.To.Ring != 3 {
		t.Errorf("expected landing at ring 3, got %d", move.To.Ring)
	}
	if len(move.Captured) != 1 || move.Captured[0] != 4 {
		t.Errorf("expected capture of piece 4, got %v", move.Captured)
	}
	if victim.State != AtBase {
		t.Errorf("captured piece should be at base, got %s", victim.State)
	}

	// Roll was a 3: the turn passes to player 1
	if eng.State().CurrentPlayer != 1 {
		t.Errorf("expected player 1 to move, got %d", eng.State().CurrentPlayer)
	}
}

func TestHomeLaneScenario(t *testing.T) {
	// A piece in lane 3: a 2 finishes it, a 3 is excluded from the legal set
	eng := newTestEngine(t, 2, 3)
	piece := eng.State().PieceByID(0)
	piece.State = InHomeLane
	piece.Lane = 3

	outcome, err := eng.RollDice()
	if err != nil {
		t.Fatalf("roll failed: %v", err)
	}
	if !outcome.TurnPassed {
		t.Errorf("a 3 from lane 3 overshoots; expected the turn to pass, got %+v", outcome)
	}

	// Player 1 passes back (all at base, non-6), then player 0 rolls a 2
	eng2 := newTestEngine(t, 2, 2)
	piece2 := eng2.State().PieceByID(0)
	piece2.State = InHomeLane
	piece2.Lane = 3

	outcome, err = eng2.RollDice()
	if err != nil {
		t.Fatalf("roll failed: %v", err)
	}
	if !outcome.AutoApplied || outcome.Move.To.State != Finished {
		t.Errorf("a 2 from lane 3 must finish, got %+v", outcome)
	}
}
