package dynamite

// Side identifies one of the two players in a round.
type Side uint8

const (
	PlayerOne Side = iota
	PlayerTwo
)

func (s Side) String() string {
	if s == PlayerTwo {
		return "p2"
	}
	return "p1"
}

// Other returns the opposing side.
func (s Side) Other() Side {
	if s == PlayerOne {
		return PlayerTwo
	}
	return PlayerOne
}

// Round is the pair of moves played in one turn.
type Round struct {
	P1 Move `json:"p1"`
	P2 Move `json:"p2"`
}

// Move returns the move played by side.
func (r Round) Move(side Side) Move {
	if side == PlayerTwo {
		return r.P2
	}
	return r.P1
}

// Swap returns the round seen from the other player's seat.
func (r Round) Swap() Round {
	return Round{P1: r.P2, P2: r.P1}
}

// Gamestate is what a bot sees when asked for a move: every completed round
// of the current match, oldest first, with P1 being the deciding bot.
type Gamestate struct {
	Rounds []Round `json:"rounds"`
}

// Len returns the number of completed rounds.
func (g *Gamestate) Len() int {
	if g == nil {
		return 0
	}
	return len(g.Rounds)
}

// Validate walks the history and returns an *UnknownMoveError for the first
// round containing an unrecognised move.
func Validate(rounds []Round) error {
	for i, r := range rounds {
		if !r.P1.Valid() {
			return &UnknownMoveError{Value: r.P1.String(), Round: i}
		}
		if !r.P2.Valid() {
			return &UnknownMoveError{Value: r.P2.String(), Round: i}
		}
	}
	return nil
}

// CountMoves returns how many times side played each move.
func CountMoves(rounds []Round, side Side) [NumMoves]int {
	var counts [NumMoves]int
	for _, r := range rounds {
		if m := r.Move(side); m.Valid() {
			counts[m]++
		}
	}
	return counts
}
