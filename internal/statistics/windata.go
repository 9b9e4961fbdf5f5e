package statistics

import (
	"fmt"

	"github.com/lox/dynamitebots/dynamite"
)

// WinData accumulates how one own move fared against the opponent.
// Losses are OutOf - Wins - Draws and are never stored.
type WinData struct {
	Wins  int
	Draws int
	OutOf int
}

// Probability returns Wins/OutOf, or 0 when nothing was observed.
func (w WinData) Probability() float64 {
	if w.OutOf == 0 {
		return 0
	}
	return float64(w.Wins) / float64(w.OutOf)
}

// Losses returns the rounds that were neither won nor drawn.
func (w WinData) Losses() int {
	return w.OutOf - w.Wins - w.Draws
}

// Add returns the element-wise sum of w and o.
func (w WinData) Add(o WinData) WinData {
	return WinData{Wins: w.Wins + o.Wins, Draws: w.Draws + o.Draws, OutOf: w.OutOf + o.OutOf}
}

func (w WinData) record(own, opponent dynamite.Move) WinData {
	switch {
	case own == opponent:
		w.Draws++
	case dynamite.Beats(own, opponent):
		w.Wins++
	}
	w.OutOf++
	return w
}

// Table holds one WinData per move, indexed canonically. Every move is
// present even when its OutOf is zero.
type Table [dynamite.NumMoves]WinData

// Get returns the entry for m.
func (t Table) Get(m dynamite.Move) WinData {
	if !m.Valid() {
		return WinData{}
	}
	return t[m]
}

// Map returns the table as a move-keyed map.
func (t Table) Map() map[dynamite.Move]WinData {
	out := make(map[dynamite.Move]WinData, dynamite.NumMoves)
	for _, m := range dynamite.Moves {
		out[m] = t[m]
	}
	return out
}

// Total sums every entry.
func (t Table) Total() WinData {
	var total WinData
	for _, w := range t {
		total = total.Add(w)
	}
	return total
}

// Best returns the move with the highest Probability, counting unobserved
// moves as 0. Ties go to the move that comes first in canonical order.
func (t Table) Best() dynamite.Move {
	best := dynamite.Moves[0]
	for _, m := range dynamite.Moves[1:] {
		if t[m].Probability() > t[best].Probability() {
			best = m
		}
	}
	return best
}

// Validate checks wins + draws <= outOf for every move.
func (t Table) Validate() error {
	for _, m := range dynamite.Moves {
		w := t[m]
		if w.Wins < 0 || w.Draws < 0 {
			return fmt.Errorf("%s: negative counters %+v", m, w)
		}
		if w.Wins+w.Draws > w.OutOf {
			return fmt.Errorf("%s: wins (%d) + draws (%d) exceed outOf (%d)", m, w.Wins, w.Draws, w.OutOf)
		}
	}
	return nil
}

// fold runs the WinData accumulation over rounds. key picks the entry a
// round is filed under and own picks the move scored against the opponent.
func fold(rounds []dynamite.Round, side dynamite.Side, key, own func(dynamite.Round) dynamite.Move) (Table, error) {
	var table Table
	for i, r := range rounds {
		if !r.P1.Valid() || !r.P2.Valid() {
			return Table{}, &dynamite.UnknownMoveError{Value: firstInvalid(r).String(), Round: i}
		}
		k := key(r)
		table[k] = table[k].record(own(r), r.Move(side.Other()))
	}
	return table, nil
}

func firstInvalid(r dynamite.Round) dynamite.Move {
	if !r.P1.Valid() {
		return r.P1
	}
	return r.P2
}

// Observe scores side's actual moves against the opponent, keyed by the
// opponent's move.
func Observe(rounds []dynamite.Round, side dynamite.Side) (Table, error) {
	return fold(rounds, side, opponentMove(side), func(r dynamite.Round) dynamite.Move { return r.Move(side) })
}

// ObserveHypothesis scores a fixed own move against every move the opponent
// showed, keyed by the opponent's move.
func ObserveHypothesis(rounds []dynamite.Round, side dynamite.Side, hypothesis dynamite.Move) (Table, error) {
	if !hypothesis.Valid() {
		return Table{}, &dynamite.UnknownMoveError{Value: hypothesis.String(), Round: -1}
	}
	return fold(rounds, side, opponentMove(side), func(dynamite.Round) dynamite.Move { return hypothesis })
}

// ByOwnMove scores side's moves against the opponent, keyed by the move side
// played. Moves side never played stay at zero.
func ByOwnMove(rounds []dynamite.Round, side dynamite.Side) (Table, error) {
	played := func(r dynamite.Round) dynamite.Move { return r.Move(side) }
	return fold(rounds, side, played, played)
}

func opponentMove(side dynamite.Side) func(dynamite.Round) dynamite.Move {
	return func(r dynamite.Round) dynamite.Move { return r.Move(side.Other()) }
}
