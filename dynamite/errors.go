package dynamite

import (
	"errors"
	"fmt"
)

// ErrUnknownMove is matched by every *UnknownMoveError.
var ErrUnknownMove = errors.New("unknown move")

// UnknownMoveError reports a move outside the five recognised variants. It
// signals corrupted history and is never recovered from.
type UnknownMoveError struct {
	Value string
	// Round is the zero-based round index, or -1 when the value did not come
	// from a round.
	Round int
}

func (e *UnknownMoveError) Error() string {
	if e.Round >= 0 {
		return fmt.Sprintf("unknown move %q in round %d", e.Value, e.Round)
	}
	return fmt.Sprintf("unknown move %q", e.Value)
}

func (e *UnknownMoveError) Is(target error) bool {
	return target == ErrUnknownMove
}
