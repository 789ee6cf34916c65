package engine

import "testing"

func TestRandDiceRange(t *testing.T) {
	dice := NewSeededDice(1)
	for i := 0; i < 1000; i++ {
		roll := dice.Roll()
		if roll < MinRoll || roll > MaxRoll {
			t.Fatalf("roll %d out of range", roll)
		}
	}
}

func TestSeededDiceIsDeterministic(t *testing.T) {
	a := NewSeededDice(42)
	b := NewSeededDice(42)

	for i := 0; i < 100; i++ {
		if ra, rb := a.Roll(), b.Roll(); ra != rb {
			t.Fatalf("same seed diverged at roll %d: %d != %d", i, ra, rb)
		}
	}
}

func TestScriptedDiceCycles(t *testing.T) {
	dice := NewScriptedDice(6, 3, 1)

	want := []int{6, 3, 1, 6, 3, 1}
	for i, w := range want {
		if got := dice.Roll(); got != w {
			t.Errorf("roll %d = %d, want %d", i, got, w)
		}
	}
}

func TestScriptedDiceEmpty(t *testing.T) {
	dice := NewScriptedDice()
	if got := dice.Roll(); got != MinRoll {
		t.Errorf("empty script should fall back to %d, got %d", MinRoll, got)
	}
}
