package match

import (
	"context"
	"fmt"

	"github.com/lox/dynamitebots/internal/bot"
	"github.com/lox/dynamitebots/internal/randutil"
	"github.com/lox/dynamitebots/internal/statistics"
	"golang.org/x/sync/errgroup"
)

// Factory builds a fresh bot for one match. seat is 1 or 2.
type Factory func(seat int, seed int64) (bot.Bot, error)

// TournamentConfig controls a series of independent matches.
type TournamentConfig struct {
	Matches  int
	Parallel int
	Match    Config
	// OnResult, if set, is called after each match completes. Calls may come
	// from several goroutines.
	OnResult func(index int, result statistics.MatchResult)
}

// Tournament plays cfg.Matches matches, each between newly built bots with
// their own derived seed, and aggregates player one's results.
func Tournament(ctx context.Context, cfg TournamentConfig, newP1, newP2 Factory) (*statistics.Statistics, []statistics.MatchResult, error) {
	if cfg.Matches <= 0 {
		return nil, nil, fmt.Errorf("matches must be positive, got %d", cfg.Matches)
	}
	if err := cfg.Match.Validate(); err != nil {
		return nil, nil, err
	}

	results := make([]statistics.MatchResult, cfg.Matches)
	g, ctx := errgroup.WithContext(ctx)
	if cfg.Parallel > 0 {
		g.SetLimit(cfg.Parallel)
	}

	for i := range cfg.Matches {
		seed := randutil.Derive(cfg.Match.Seed, i)
		g.Go(func() error {
			p1, err := newP1(1, seed)
			if err != nil {
				return fmt.Errorf("match %d: create p1: %w", i, err)
			}
			defer bot.Close(p1)
			p2, err := newP2(2, randutil.Derive(seed, 1))
			if err != nil {
				return fmt.Errorf("match %d: create p2: %w", i, err)
			}
			defer bot.Close(p2)

			mcfg := cfg.Match
			mcfg.Seed = seed
			res, err := Play(ctx, mcfg, p1, p2)
			if err != nil {
				return fmt.Errorf("match %d: %w", i, err)
			}
			results[i] = res
			if cfg.OnResult != nil {
				cfg.OnResult(i, res)
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, nil, err
	}

	stats := &statistics.Statistics{}
	for _, r := range results {
		stats.Add(r)
	}
	if err := stats.Validate(); err != nil {
		return nil, nil, fmt.Errorf("statistics validation failed: %w", err)
	}
	return stats, results, nil
}
