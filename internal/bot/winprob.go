package bot

import (
	rand "math/rand/v2"

	"github.com/charmbracelet/log"
	"github.com/lox/dynamitebots/dynamite"
	"github.com/lox/dynamitebots/internal/strategy"
)

// WinProbConfig tunes the two-phase bots.
type WinProbConfig struct {
	ResearchUntil  int
	Weights        strategy.Weights
	DynamiteBudget int
}

// NewWinProbBot researches with uniform weights, then exploits.
func NewWinProbBot(rng *rand.Rand, budget, researchUntil int, logger *log.Logger) (*PolicyBot, error) {
	return newTwoPhaseBot(NameWinProb, rng, WinProbConfig{
		ResearchUntil:  researchUntil,
		Weights:        strategy.UniformWeights,
		DynamiteBudget: budget,
	}, logger)
}

// NewWeightedWinProbBot researches with weights that hold back Dynamite and
// Water, then exploits.
func NewWeightedWinProbBot(rng *rand.Rand, cfg WinProbConfig, logger *log.Logger) (*PolicyBot, error) {
	return newTwoPhaseBot(NameWeightedWinProb, rng, cfg, logger)
}

func newTwoPhaseBot(name string, rng *rand.Rand, cfg WinProbConfig, logger *log.Logger) (*PolicyBot, error) {
	research, err := strategy.NewResearch(rng, cfg.Weights)
	if err != nil {
		return nil, err
	}
	policy := &strategy.TwoPhase{
		ResearchUntil: cfg.ResearchUntil,
		Research:      research,
		Exploit:       strategy.NewExploit(rng, dynamite.PlayerOne),
	}
	return NewPolicyBot(name, &phasedGuard{TwoPhase: policy, guard: strategy.NewBudgetGuard(policy, cfg.DynamiteBudget, rng)}, logger), nil
}

// phasedGuard keeps the TwoPhase phase visible for logging while every
// choice goes through the budget guard.
type phasedGuard struct {
	*strategy.TwoPhase
	guard *strategy.BudgetGuard
}

func (p *phasedGuard) Choose(rounds []dynamite.Round) (dynamite.Move, error) {
	return p.guard.Choose(rounds)
}
