// Package dynamite models the five-move rock-paper-scissors variant played by
// the bots: moves, the beats relation, rounds and the per-bot game state.
package dynamite

import (
	"fmt"
	"strings"
)

// Move is one of the five legal throws. The numeric value is the canonical
// index used for one-hot encoding and for decoding model outputs.
type Move uint8

const (
	Rock Move = iota
	Paper
	Scissors
	Dynamite
	Water
)

// NumMoves is the number of Move variants.
const NumMoves = 5

// Moves lists every move in canonical order.
var Moves = [NumMoves]Move{Rock, Paper, Scissors, Dynamite, Water}

var moveNames = [NumMoves]string{"Rock", "Paper", "Scissors", "Dynamite", "Water"}

// moveLetters are the single-letter codes used by the match runner.
var moveLetters = [NumMoves]byte{'R', 'P', 'S', 'D', 'W'}

// Valid reports whether m is one of the five known moves.
func (m Move) Valid() bool {
	return m < NumMoves
}

// Index returns the canonical array index of m.
func (m Move) Index() int {
	return int(m)
}

func (m Move) String() string {
	if !m.Valid() {
		return fmt.Sprintf("Move(%d)", uint8(m))
	}
	return moveNames[m]
}

// Letter returns the single-letter wire code (R, P, S, D or W).
func (m Move) Letter() string {
	if !m.Valid() {
		return "?"
	}
	return string(moveLetters[m])
}

// OneHot returns a vector with a 1 at the move's index.
func (m Move) OneHot() [NumMoves]float32 {
	var v [NumMoves]float32
	if m.Valid() {
		v[m] = 1
	}
	return v
}

// FromIndex maps a canonical index back to its Move.
func FromIndex(i int) (Move, error) {
	if i < 0 || i >= NumMoves {
		return 0, &UnknownMoveError{Value: fmt.Sprintf("index %d", i), Round: -1}
	}
	return Move(i), nil
}

// ParseMove accepts either the single-letter code or the full move name,
// case-insensitively.
func ParseMove(s string) (Move, error) {
	trimmed := strings.TrimSpace(s)
	if len(trimmed) == 1 {
		c := strings.ToUpper(trimmed)[0]
		for i, l := range moveLetters {
			if l == c {
				return Move(i), nil
			}
		}
	}
	for i, name := range moveNames {
		if strings.EqualFold(trimmed, name) {
			return Move(i), nil
		}
	}
	return 0, &UnknownMoveError{Value: s, Round: -1}
}

// MarshalText encodes the move as its letter code.
func (m Move) MarshalText() ([]byte, error) {
	if !m.Valid() {
		return nil, &UnknownMoveError{Value: m.String(), Round: -1}
	}
	return []byte{moveLetters[m]}, nil
}

// UnmarshalText decodes a letter code or move name.
func (m *Move) UnmarshalText(text []byte) error {
	parsed, err := ParseMove(string(text))
	if err != nil {
		return err
	}
	*m = parsed
	return nil
}
