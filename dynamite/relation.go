package dynamite

// beatsTable[a][b] is true when a beats b. Dynamite and Water break the
// rock-paper-scissors cycle, so every entry is spelled out.
var beatsTable = [NumMoves][NumMoves]bool{
	//          Rock   Paper  Scissors Dynamite Water
	Rock:     {false, false, true, true, false},
	Paper:    {true, false, false, true, false},
	Scissors: {false, true, false, true, false},
	Dynamite: {true, true, true, false, false},
	Water:    {false, false, false, true, false},
}

// beatenBy[m] lists, in canonical order, the moves that defeat m.
var beatenBy = [NumMoves][]Move{
	Rock:     {Paper, Dynamite},
	Paper:    {Scissors, Dynamite},
	Scissors: {Rock, Dynamite},
	Dynamite: {Water},
	Water:    {Rock, Paper, Scissors},
}

// Beats reports whether a defeats b. Equal moves tie. Unknown moves never win.
func Beats(a, b Move) bool {
	if !a.Valid() || !b.Valid() {
		return false
	}
	return beatsTable[a][b]
}

// BeatenBy returns the moves that defeat m. The returned slice is a copy.
func BeatenBy(m Move) []Move {
	if !m.Valid() {
		return nil
	}
	out := make([]Move, len(beatenBy[m]))
	copy(out, beatenBy[m])
	return out
}

// Result is the outcome of a round from one player's point of view.
type Result int8

const (
	Loss Result = -1
	Draw Result = 0
	Win  Result = 1
)

func (r Result) String() string {
	switch r {
	case Win:
		return "win"
	case Loss:
		return "loss"
	default:
		return "draw"
	}
}

// Outcome scores a against b.
func Outcome(a, b Move) Result {
	switch {
	case a == b:
		return Draw
	case Beats(a, b):
		return Win
	default:
		return Loss
	}
}
