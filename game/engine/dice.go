package engine

import (
	"math/rand"
	"time"
)

// Dice produces rolls in MinRoll..MaxRoll. The engine takes its randomness
// through this interface so tests and simulations can fix the sequence.
type Dice interface {
	Roll() int
}

// randDice is the default uniformly random dice
type randDice struct {
	rng *rand.Rand
}

// NewDice creates a dice seeded from the wall clock
func NewDice() Dice {
	return NewSeededDice(time.Now().UnixNano())
}

// NewSeededDice creates a dice with a fixed seed for deterministic replay
func NewSeededDice(seed int64) Dice {
	return &randDice{rng: rand.New(rand.NewSource(seed))}
}

func (d *randDice) Roll() int {
	return d.rng.Intn(MaxRoll-MinRoll+1) + MinRoll
}

// ScriptedDice replays a fixed sequence of rolls, cycling when exhausted.
// Used by tests to drive exact scenarios.
type ScriptedDice struct {
	rolls []int
	next  int
}

// NewScriptedDice creates a scripted dice from the given roll sequence
func NewScriptedDice(rolls ...int) *ScriptedDice {
	return &ScriptedDice{rolls: rolls}
}

func (d *ScriptedDice) Roll() int {
	if len(d.rolls) == 0 {
		return MinRoll
	}
	roll := d.rolls[d.next%len(d.rolls)]
	d.next++
	return roll
}
