package engine

import (
	"fmt"
	"time"
)

// moveTarget is the computed landing position for a piece and a roll
type moveTarget struct {
	state PieceState
	ring  int
	lane  int
}

// computeTarget resolves the piece state machine for one roll. It returns
// the landing position and whether the move is legal at all. Pure function
// over the track topology; it never mutates the piece.
func computeTarget(p *Piece, roll int) (moveTarget, bool) {
	switch p.State {
	case AtBase:
		// Entering consumes the whole roll
		if roll != EntryRoll {
			return moveTarget{}, false
		}
		return moveTarget{state: OnTrack, ring: entryOffsets[p.Player]}, true

	case OnTrack:
		remaining := DistanceToHomeEntry(p.Player, p.Ring)
		if roll <= remaining {
			return moveTarget{state: OnTrack, ring: (p.Ring + roll) % RingSize}, true
		}
		over := roll - remaining - 1
		switch {
		case over < HomeLaneSize:
			return moveTarget{state: InHomeLane, lane: over}, true
		case over == HomeLaneSize:
			// Exact overshoot lands on the terminal slot
			return moveTarget{state: Finished}, true
		default:
			return moveTarget{}, false
		}

	case InHomeLane:
		// Home lane requires an exact-count finish
		target := p.Lane + roll
		switch {
		case target == HomeLaneSize:
			return moveTarget{state: Finished}, true
		case target < HomeLaneSize:
			return moveTarget{state: InHomeLane, lane: target}, true
		default:
			return moveTarget{}, false
		}
	}

	// Finished is a sink
	return moveTarget{}, false
}

// IsLegal reports whether the piece can play the given roll. This is a pure
// predicate with no side effects, used both to filter selectable pieces and
// to validate a selection before applying it.
func IsLegal(p *Piece, roll int) bool {
	_, ok := computeTarget(p, roll)
	return ok
}

// LegalPieces returns the IDs of the player's pieces that can play the roll
func (ms *MatchState) LegalPieces(player, roll int) []int {
	var legal []int
	for i := range ms.Players[player].Pieces {
		p := &ms.Players[player].Pieces[i]
		if IsLegal(p, roll) {
			legal = append(legal, p.ID)
		}
	}
	return legal
}

// applyMove applies a legal transition to the piece and resolves captures.
// It returns the from/to positions and the IDs of any captured pieces.
// Callers must have validated legality with IsLegal first.
func (ms *MatchState) applyMove(p *Piece, roll int) (from, to PiecePosition, captured []int) {
	from = p.Position()

	target, ok := computeTarget(p, roll)
	if !ok {
		// Guarded by IsLegal; reaching here is a programming error
		panic(fmt.Sprintf("applyMove: illegal move for piece %d roll %d", p.ID, roll))
	}

	p.State = target.state
	p.Ring = target.ring
	p.Lane = target.lane

	// Capture check runs only for on-track landings. Home lanes are private
	// and the base is never shared.
	if p.State == OnTrack && !IsSafeCell(p.Ring) {
		captured = ms.captureAt(p.Ring, p.Player)
	}

	return from, p.Position(), captured
}

// captureAt resets every opposing on-track piece at the ring index to base.
// Capture is unconditional and simultaneous for all opponents on the cell;
// the mover's own pieces are never affected.
func (ms *MatchState) captureAt(ringIndex, mover int) []int {
	var captured []int
	for pl := range ms.Players {
		if pl == mover {
			continue
		}
		for i := range ms.Players[pl].Pieces {
			opp := &ms.Players[pl].Pieces[i]
			if opp.State == OnTrack && opp.Ring == ringIndex {
				opp.State = AtBase
				opp.Ring = 0
				captured = append(captured, opp.ID)
			}
		}
	}
	return captured
}

// recordMove appends an applied move to the cumulative turn history
func (ms *MatchState) recordMove(p *Piece, roll int, from, to PiecePosition, captured []int, autoApplied bool) {
	ms.TotalMoves++
	ms.TurnHistory = append(ms.TurnHistory, TurnHistoryEntry{
		MoveNumber:  ms.TotalMoves,
		Player:      p.Player,
		Roll:        roll,
		PieceID:     p.ID,
		From:        from,
		To:          to,
		Captured:    captured,
		AutoApplied: autoApplied,
		Timestamp:   time.Now().Unix(),
	})
}

// recordSkip appends a passed turn (no legal moves) to the turn history
func (ms *MatchState) recordSkip(player, roll int) {
	ms.TotalMoves++
	ms.TurnHistory = append(ms.TurnHistory, TurnHistoryEntry{
		MoveNumber: ms.TotalMoves,
		Player:     player,
		Roll:       roll,
		PieceID:    -1,
		Skipped:    true,
		Timestamp:  time.Now().Unix(),
	})
}
