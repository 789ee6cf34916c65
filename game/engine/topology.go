package engine

// Track topology for the shared ring. These are the standard Ludo board
// constants: each player enters the ring 13 cells after the previous one
// and turns off into its home lane two cells before its own entry.
// The topology is fixed by player slot and independent of rendering.
var (
	entryOffsets     = [MaxPlayers]int{0, 13, 26, 39}
	homeEntryOffsets = [MaxPlayers]int{50, 11, 24, 37}

	// safeCells are immune to capture: the four entry cells plus four
	// additional cells evenly spaced between them.
	safeCells = map[int]bool{
		0: true, 8: true, 13: true, 21: true,
		26: true, 34: true, 39: true, 47: true,
	}
)

// EntryOffset returns the absolute ring index where a player's pieces enter
// the shared ring.
func EntryOffset(player int) int {
	return entryOffsets[player]
}

// RingIndexOf maps a number of relative steps from a player's entry cell to
// an absolute ring index.
func RingIndexOf(player, relativeSteps int) int {
	return (entryOffsets[player] + relativeSteps) % RingSize
}

// DistanceToHomeEntry returns how many steps remain on the shared ring
// before the player must turn off into its home lane, counted from the given
// ring index. A piece standing exactly on its home entry cell has distance 0.
func DistanceToHomeEntry(player, ringIndex int) int {
	return (homeEntryOffsets[player] - ringIndex + RingSize) % RingSize
}

// IsSafeCell reports whether the ring index is immune to capture.
func IsSafeCell(ringIndex int) bool {
	return safeCells[ringIndex]
}
