package main

import (
	"encoding/json"
	"io"
	"os"
	"runtime"

	"github.com/lox/dynamitebots/cmd/dynamite/shared"
	"github.com/lox/dynamitebots/internal/fileutil"
	"github.com/lox/dynamitebots/internal/match"
	"github.com/lox/dynamitebots/internal/report"
	"github.com/lox/dynamitebots/internal/statistics"
)

type TournamentCmd struct {
	P1       string `help:"Player one: a registered or configured bot" default:"weighted-winprob"`
	P2       string `help:"Player two: a registered or configured bot" default:"random"`
	Matches  int    `help:"Number of matches" default:"20"`
	Parallel int    `help:"Matches played concurrently (0 = number of CPUs)" default:"0"`
	Results  string `help:"Write per-match results as JSON lines to this file" type:"path"`
}

func (c *TournamentCmd) Run(g *Globals) error {
	cfg, logger, err := g.setup()
	if err != nil {
		return err
	}

	parallel := c.Parallel
	if parallel <= 0 {
		parallel = runtime.NumCPU()
	}
	mcfg := cfg.MatchConfig()
	mcfg.Logger = logger

	logger.Info("Starting tournament", "p1", c.P1, "p2", c.P2, "matches", c.Matches, "parallel", parallel, "seed", cfg.Match.Seed)
	stats, results, err := match.Tournament(shared.SetupSignalHandler(logger), match.TournamentConfig{
		Matches:  c.Matches,
		Parallel: parallel,
		Match:    mcfg,
		OnResult: func(i int, r statistics.MatchResult) {
			logger.Debug("Match complete", "match", i, "winner", r.Winner, "p1", r.P1Points, "p2", r.P2Points, "rounds", r.Rounds)
		},
	}, botFactory(cfg, c.P1, logger), botFactory(cfg, c.P2, logger))
	if err != nil {
		return err
	}

	if c.Results != "" {
		err := fileutil.WriteAtomic(c.Results, 0o644, func(w io.Writer) error {
			enc := json.NewEncoder(w)
			for _, r := range results {
				if err := enc.Encode(r); err != nil {
					return err
				}
			}
			return nil
		})
		if err != nil {
			return err
		}
		logger.Info("Wrote results", "path", c.Results)
	}

	return report.Tournament(os.Stdout, c.P1, c.P2, stats)
}
