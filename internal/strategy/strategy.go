// Package strategy holds the move-selection policies shared by the
// statistical bots. Every policy is a function of the round history plus an
// injected random source.
package strategy

import (
	"fmt"
	rand "math/rand/v2"

	"github.com/lox/dynamitebots/dynamite"
	"github.com/lox/dynamitebots/internal/randutil"
	"github.com/lox/dynamitebots/internal/statistics"
)

// DefaultResearchUntil is the round at which the two-phase policy stops
// sampling and starts exploiting.
const DefaultResearchUntil = 300

// Policy picks the next move given every completed round, where P1 is the
// deciding player.
type Policy interface {
	Choose(rounds []dynamite.Round) (dynamite.Move, error)
}

// PolicyFunc adapts a plain function to Policy.
type PolicyFunc func(rounds []dynamite.Round) (dynamite.Move, error)

func (f PolicyFunc) Choose(rounds []dynamite.Round) (dynamite.Move, error) {
	return f(rounds)
}

// Weights gives the number of copies of each move in the sampling pool.
type Weights [dynamite.NumMoves]int

var (
	// UniformWeights samples every move equally.
	UniformWeights = Weights{1, 1, 1, 1, 1}
	// ConservativeWeights holds back Dynamite and Water early on.
	ConservativeWeights = Weights{30, 30, 30, 5, 5}
)

// Validate rejects negative weights and an empty pool.
func (w Weights) Validate() error {
	total := 0
	for i, n := range w {
		if n < 0 {
			return fmt.Errorf("weight for %s is negative: %d", dynamite.Moves[i], n)
		}
		total += n
	}
	if total == 0 {
		return fmt.Errorf("weights must not all be zero")
	}
	return nil
}

// Expand builds the multiset the research phase draws from.
func (w Weights) Expand() []dynamite.Move {
	var pool []dynamite.Move
	for i, n := range w {
		for range n {
			pool = append(pool, dynamite.Moves[i])
		}
	}
	return pool
}

// Research samples uniformly from the expanded weight pool, so a move with
// weight 30 is six times as likely as one with weight 5.
type Research struct {
	rng  *rand.Rand
	pool []dynamite.Move
}

// NewResearch creates a research policy over weights.
func NewResearch(rng *rand.Rand, weights Weights) (*Research, error) {
	if err := weights.Validate(); err != nil {
		return nil, err
	}
	return &Research{rng: rng, pool: weights.Expand()}, nil
}

func (r *Research) Choose(rounds []dynamite.Round) (dynamite.Move, error) {
	if err := dynamite.Validate(rounds); err != nil {
		return 0, err
	}
	return randutil.Pick(r.rng, r.pool), nil
}

// Exploit finds the move it has played with the best win rate so far, then
// plays one of the moves that beat it. Moves it never played count as 0.
type Exploit struct {
	rng  *rand.Rand
	side dynamite.Side
}

// NewExploit creates an exploitation policy observing from side.
func NewExploit(rng *rand.Rand, side dynamite.Side) *Exploit {
	return &Exploit{rng: rng, side: side}
}

func (e *Exploit) Choose(rounds []dynamite.Round) (dynamite.Move, error) {
	table, err := statistics.ByOwnMove(rounds, e.side)
	if err != nil {
		return 0, err
	}
	if table.Total().OutOf == 0 {
		return randutil.Pick(e.rng, dynamite.Moves[:]), nil
	}
	return randutil.Pick(e.rng, dynamite.BeatenBy(table.Best())), nil
}

// TwoPhase researches until ResearchUntil and exploits afterwards. The round
// number is len(rounds)+1, so the policy keeps no state between calls.
type TwoPhase struct {
	ResearchUntil int
	Research      Policy
	Exploit       Policy
}

// Phase names the phase the next decision falls in.
func (p *TwoPhase) Phase(rounds []dynamite.Round) string {
	if len(rounds)+1 < p.ResearchUntil {
		return "research"
	}
	return "exploit"
}

func (p *TwoPhase) Choose(rounds []dynamite.Round) (dynamite.Move, error) {
	if len(rounds)+1 < p.ResearchUntil {
		return p.Research.Choose(rounds)
	}
	return p.Exploit.Choose(rounds)
}
