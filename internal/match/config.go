// Package match is a local stand-in for the dynamite match runner: it asks
// two bots for moves, scores rounds and decides the winner.
package match

import (
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/log"
	"github.com/coder/quartz"
	"github.com/lox/dynamitebots/internal/strategy"
)

// Config holds the rules and plumbing for a match.
type Config struct {
	ScoreTarget    int           // Points needed to win
	MaxRounds      int           // Hard cap on rounds
	DynamiteBudget int           // Dynamite throws per player
	DecisionBudget time.Duration // Slower decisions are logged
	Seed           int64
	Clock          quartz.Clock
	Logger         *log.Logger
}

// DefaultConfig returns the dynamite runner's standard rules.
func DefaultConfig() Config {
	return Config{
		ScoreTarget:    1000,
		MaxRounds:      2500,
		DynamiteBudget: strategy.DefaultDynamiteBudget,
		DecisionBudget: 50 * time.Millisecond,
	}
}

// Validate checks the rules are playable.
func (c Config) Validate() error {
	if c.ScoreTarget <= 0 {
		return fmt.Errorf("score target must be positive, got %d", c.ScoreTarget)
	}
	if c.MaxRounds <= 0 {
		return fmt.Errorf("max rounds must be positive, got %d", c.MaxRounds)
	}
	if c.DynamiteBudget < 0 {
		return fmt.Errorf("dynamite budget must not be negative, got %d", c.DynamiteBudget)
	}
	return nil
}

func (c Config) withDefaults() Config {
	if c.Clock == nil {
		c.Clock = quartz.NewReal()
	}
	if c.Logger == nil {
		c.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
	return c
}
