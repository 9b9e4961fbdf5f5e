package bot

import (
	rand "math/rand/v2"

	"github.com/charmbracelet/log"
	"github.com/lox/dynamitebots/internal/strategy"
)

// NewRandBot plays uniformly random moves, skipping Dynamite once the
// budget is spent.
func NewRandBot(rng *rand.Rand, budget int, logger *log.Logger) (*PolicyBot, error) {
	research, err := strategy.NewResearch(rng, strategy.UniformWeights)
	if err != nil {
		return nil, err
	}
	return NewPolicyBot(NameRandom, strategy.NewBudgetGuard(research, budget, rng), logger), nil
}
