package match

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
	"github.com/lox/dynamitebots/dynamite"
	"github.com/lox/dynamitebots/internal/bot"
	"github.com/lox/dynamitebots/internal/statistics"
)

// ErrGameOver is returned by Step once the match has been decided.
var ErrGameOver = errors.New("game is over")

// RoundResult describes one scored round.
type RoundResult struct {
	Index  int
	Round  dynamite.Round
	Winner int // 0 for a draw, otherwise 1 or 2
	Points int // Points awarded to the winner, including carried draws
	Carry  int // Points riding on the next round
}

// Game is a match in progress. It is not safe for concurrent use.
type Game struct {
	ID     string
	cfg    Config
	bots   [2]bot.Bot
	views  [2][]dynamite.Round // history as each seat sees it
	points [2]int
	dyn    [2]int
	carry  int

	done    bool
	winner  int
	forfeit bool

	slowDecisions int
	maxDecision   time.Duration
	logger        *log.Logger
}

// NewGame seats p1 and p2. The bots stay owned by the caller.
func NewGame(cfg Config, p1, p2 bot.Bot) (*Game, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	cfg = cfg.withDefaults()
	id, err := uuid.NewV7()
	if err != nil {
		return nil, fmt.Errorf("generate match id: %w", err)
	}
	return &Game{
		ID:     id.String(),
		cfg:    cfg,
		bots:   [2]bot.Bot{p1, p2},
		logger: cfg.Logger.WithPrefix("match").With("id", id.String()[:8]),
	}, nil
}

// Done reports whether the match has finished.
func (g *Game) Done() bool { return g.done }

// Score returns both players' points.
func (g *Game) Score() (int, int) { return g.points[0], g.points[1] }

// ScoreTarget is the number of points needed to win.
func (g *Game) ScoreTarget() int { return g.cfg.ScoreTarget }

// Carry returns the points riding on the next round.
func (g *Game) Carry() int { return g.carry }

// Rounds returns the history from player one's seat.
func (g *Game) Rounds() []dynamite.Round {
	out := make([]dynamite.Round, len(g.views[0]))
	copy(out, g.views[0])
	return out
}

// DynamiteLeft returns the remaining budget for seat 1 or 2.
func (g *Game) DynamiteLeft(seat int) int {
	return max(g.cfg.DynamiteBudget-g.dyn[seat-1], 0)
}

// Names returns the bots' names.
func (g *Game) Names() (string, string) {
	return g.bots[0].Name(), g.bots[1].Name()
}

// SlowDecisions counts decisions that exceeded the decision budget.
func (g *Game) SlowDecisions() int { return g.slowDecisions }

// MaxDecision is the slowest decision observed so far.
func (g *Game) MaxDecision() time.Duration { return g.maxDecision }

func (g *Game) decide(seat int) (dynamite.Move, error) {
	b := g.bots[seat]
	view := g.views[seat]
	state := &dynamite.Gamestate{Rounds: view[:len(view):len(view)]}

	start := g.cfg.Clock.Now()
	move, err := b.Decide(state)
	elapsed := g.cfg.Clock.Since(start)

	if elapsed > g.maxDecision {
		g.maxDecision = elapsed
	}
	if g.cfg.DecisionBudget > 0 && elapsed > g.cfg.DecisionBudget {
		g.slowDecisions++
		g.logger.Warn("Slow decision", "bot", b.Name(), "round", len(view)+1, "elapsed", elapsed)
	}
	if err != nil {
		return 0, fmt.Errorf("%s (p%d) round %d: %w", b.Name(), seat+1, len(view)+1, err)
	}
	if !move.Valid() {
		return 0, fmt.Errorf("%s (p%d) round %d: %w", b.Name(), seat+1, len(view)+1,
			&dynamite.UnknownMoveError{Value: move.String(), Round: len(view)})
	}
	return move, nil
}

// Step plays one round.
func (g *Game) Step() (RoundResult, error) {
	if g.done {
		return RoundResult{}, ErrGameOver
	}
	m1, err := g.decide(0)
	if err != nil {
		return RoundResult{}, err
	}
	m2, err := g.decide(1)
	if err != nil {
		return RoundResult{}, err
	}

	round := dynamite.Round{P1: m1, P2: m2}
	index := len(g.views[0])
	g.views[0] = append(g.views[0], round)
	g.views[1] = append(g.views[1], round.Swap())

	result := RoundResult{Index: index, Round: round}
	if over := g.spendDynamite(m1, m2); over != 0 {
		g.finish(3-over, true)
		g.logger.Warn("Dynamite budget exceeded", "seat", over, "round", index+1)
		result.Winner = g.winner
		return result, nil
	}

	switch dynamite.Outcome(m1, m2) {
	case dynamite.Draw:
		g.carry++
	case dynamite.Win:
		result.Winner, result.Points = 1, 1+g.carry
		g.points[0] += result.Points
		g.carry = 0
	case dynamite.Loss:
		result.Winner, result.Points = 2, 1+g.carry
		g.points[1] += result.Points
		g.carry = 0
	}
	result.Carry = g.carry

	switch {
	case g.points[0] >= g.cfg.ScoreTarget:
		g.finish(1, false)
	case g.points[1] >= g.cfg.ScoreTarget:
		g.finish(2, false)
	case len(g.views[0]) >= g.cfg.MaxRounds:
		g.finish(0, false)
	}
	return result, nil
}

// spendDynamite records Dynamite throws and returns the seat (1 or 2) that
// threw one it no longer had, or 0.
func (g *Game) spendDynamite(m1, m2 dynamite.Move) int {
	for seat, m := range []dynamite.Move{m1, m2} {
		if m != dynamite.Dynamite {
			continue
		}
		if g.dyn[seat] >= g.cfg.DynamiteBudget {
			return seat + 1
		}
		g.dyn[seat]++
	}
	return 0
}

func (g *Game) finish(winner int, forfeit bool) {
	g.done = true
	g.winner = winner
	g.forfeit = forfeit
	g.logger.Debug("Match finished",
		"winner", winner,
		"p1", g.points[0],
		"p2", g.points[1],
		"rounds", len(g.views[0]),
		"forfeit", forfeit)
}

// Result summarises the match so far.
func (g *Game) Result() statistics.MatchResult {
	return statistics.MatchResult{
		Seed:     g.cfg.Seed,
		Rounds:   len(g.views[0]),
		P1Points: g.points[0],
		P2Points: g.points[1],
		Winner:   g.winner,
		Forfeit:  g.forfeit,
		P1Dyn:    g.dyn[0],
		P2Dyn:    g.dyn[1],
	}
}

// Run steps until the match is decided or ctx is cancelled.
func (g *Game) Run(ctx context.Context) (statistics.MatchResult, error) {
	for !g.done {
		if err := ctx.Err(); err != nil {
			return g.Result(), err
		}
		if _, err := g.Step(); err != nil {
			return g.Result(), err
		}
	}
	return g.Result(), nil
}

// Play runs a complete match between p1 and p2.
func Play(ctx context.Context, cfg Config, p1, p2 bot.Bot) (statistics.MatchResult, error) {
	g, err := NewGame(cfg, p1, p2)
	if err != nil {
		return statistics.MatchResult{}, err
	}
	return g.Run(ctx)
}
