// Package bot contains the decision makers that play dynamite matches.
package bot

import (
	"io"

	"github.com/charmbracelet/log"
	"github.com/lox/dynamitebots/dynamite"
	"github.com/lox/dynamitebots/internal/strategy"
)

// Bot chooses the next move from the rounds played so far. The state is
// presented from the bot's own seat (P1 is the bot) and is not modified.
type Bot interface {
	Name() string
	Decide(state *dynamite.Gamestate) (dynamite.Move, error)
}

// Close releases any resource a bot holds, such as a loaded model.
func Close(b Bot) error {
	if c, ok := b.(io.Closer); ok {
		return c.Close()
	}
	return nil
}

func discardLogger() *log.Logger {
	return log.NewWithOptions(io.Discard, log.Options{})
}

// PolicyBot plays whatever its policy chooses.
type PolicyBot struct {
	name   string
	policy strategy.Policy
	logger *log.Logger
}

// NewPolicyBot wraps policy under the given name.
func NewPolicyBot(name string, policy strategy.Policy, logger *log.Logger) *PolicyBot {
	if logger == nil {
		logger = discardLogger()
	}
	return &PolicyBot{name: name, policy: policy, logger: logger.WithPrefix(name)}
}

func (b *PolicyBot) Name() string { return b.name }

func (b *PolicyBot) Decide(state *dynamite.Gamestate) (dynamite.Move, error) {
	var rounds []dynamite.Round
	if state != nil {
		rounds = state.Rounds
	}
	move, err := b.policy.Choose(rounds)
	if err != nil {
		return 0, err
	}
	if tp, ok := b.policy.(interface{ Phase([]dynamite.Round) string }); ok {
		b.logger.Debug("Decision", "round", len(rounds)+1, "phase", tp.Phase(rounds), "move", move)
	}
	return move, nil
}
