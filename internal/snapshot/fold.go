package snapshot

import (
	"github.com/lox/dynamitebots/dynamite"
)

// counters is the running state threaded through the history fold for one
// player. It is passed and returned by value.
type counters struct {
	dynamiteLeft   int
	sinceDynamite  int
	sinceWater     int
	moveCounts     [dynamite.NumMoves]int
	roundsObserved int
}

func newCounters(budget int) counters {
	return counters{dynamiteLeft: budget}
}

// step folds one move into c and returns the updated counters together with
// the snapshot for that round.
func (c counters) step(m dynamite.Move) (counters, PlayerSnapshot) {
	c.moveCounts[m]++
	c.roundsObserved++

	if m == dynamite.Dynamite {
		c.dynamiteLeft = max(c.dynamiteLeft-1, 0)
		c.sinceDynamite = 0
	} else {
		c.sinceDynamite++
	}
	if m == dynamite.Water {
		c.sinceWater = 0
	} else {
		c.sinceWater++
	}

	snap := PlayerSnapshot{
		Move:                m,
		DynamiteLeft:        c.dynamiteLeft,
		RoundsSinceDynamite: c.sinceDynamite,
		RoundsSinceWater:    c.sinceWater,
	}
	for i, n := range c.moveCounts {
		snap.MoveProbabilities[i] = float32(n) / float32(c.roundsObserved)
	}
	return c, snap
}

// Fold derives one GameSnapshot per round. Rounds containing unknown moves
// produce an *dynamite.UnknownMoveError.
func Fold(rounds []dynamite.Round, budget int) ([]GameSnapshot, error) {
	if err := dynamite.Validate(rounds); err != nil {
		return nil, err
	}
	p1, p2 := newCounters(budget), newCounters(budget)
	snaps := make([]GameSnapshot, len(rounds))
	for i, r := range rounds {
		var s1, s2 PlayerSnapshot
		p1, s1 = p1.step(r.P1)
		p2, s2 = p2.step(r.P2)
		snaps[i] = GameSnapshot{Rollover: i, PlayerOne: s1, PlayerTwo: s2}
	}
	return snaps, nil
}
