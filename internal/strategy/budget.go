package strategy

import (
	rand "math/rand/v2"

	"github.com/lox/dynamitebots/dynamite"
	"github.com/lox/dynamitebots/internal/randutil"
)

// DefaultDynamiteBudget is how many Dynamite throws each player gets per match.
const DefaultDynamiteBudget = 100

var withoutDynamite = []dynamite.Move{dynamite.Rock, dynamite.Paper, dynamite.Scissors, dynamite.Water}

// DynamiteLeft returns how much of budget side has not spent yet, never
// below zero.
func DynamiteLeft(rounds []dynamite.Round, side dynamite.Side, budget int) int {
	left := budget - dynamite.CountMoves(rounds, side)[dynamite.Dynamite]
	return max(left, 0)
}

// BudgetGuard wraps a policy and swaps an unaffordable Dynamite for a
// uniformly drawn non-Dynamite move.
type BudgetGuard struct {
	policy Policy
	budget int
	rng    *rand.Rand
}

// NewBudgetGuard guards policy against overspending budget Dynamite throws.
func NewBudgetGuard(policy Policy, budget int, rng *rand.Rand) *BudgetGuard {
	return &BudgetGuard{policy: policy, budget: budget, rng: rng}
}

func (g *BudgetGuard) Choose(rounds []dynamite.Round) (dynamite.Move, error) {
	move, err := g.policy.Choose(rounds)
	if err != nil {
		return 0, err
	}
	if move == dynamite.Dynamite && DynamiteLeft(rounds, dynamite.PlayerOne, g.budget) == 0 {
		return randutil.Pick(g.rng, withoutDynamite), nil
	}
	return move, nil
}
