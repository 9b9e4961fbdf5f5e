package main

import (
	"fmt"
	"io"
	"os"

	"github.com/lox/dynamitebots/cmd/dynamite/shared"
	"github.com/lox/dynamitebots/dynamite"
	"github.com/lox/dynamitebots/internal/bot"
	"github.com/lox/dynamitebots/internal/fileutil"
	"github.com/lox/dynamitebots/internal/match"
	"github.com/lox/dynamitebots/internal/report"
	"github.com/lox/dynamitebots/internal/statistics"
	"github.com/lox/dynamitebots/internal/tui"
)

type PlayCmd struct {
	P1   string `help:"Player one: a registered or configured bot" default:"weighted-winprob"`
	P2   string `help:"Player two: a registered or configured bot" default:"random"`
	TUI  bool   `name:"tui" help:"Watch the match round by round"`
	Save string `help:"Write the round history, from player one's seat, to this JSON file" type:"path"`
}

func (c *PlayCmd) Run(g *Globals) error {
	cfg, logger, err := g.setup()
	if err != nil {
		return err
	}

	p1, err := botFactory(cfg, c.P1, logger)(1, cfg.Match.Seed)
	if err != nil {
		return fmt.Errorf("create %s: %w", c.P1, err)
	}
	defer bot.Close(p1)
	p2, err := botFactory(cfg, c.P2, logger)(2, cfg.Match.Seed)
	if err != nil {
		return fmt.Errorf("create %s: %w", c.P2, err)
	}
	defer bot.Close(p2)

	mcfg := cfg.MatchConfig()
	mcfg.Logger = logger
	game, err := match.NewGame(mcfg, p1, p2)
	if err != nil {
		return err
	}
	logger.Info("Starting match", "id", game.ID, "p1", c.P1, "p2", c.P2, "seed", cfg.Match.Seed)

	ctx := shared.SetupSignalHandler(logger)
	var result statistics.MatchResult
	if c.TUI {
		result, err = tui.Run(ctx, game, logger)
	} else {
		result, err = game.Run(ctx)
	}
	if err != nil {
		return err
	}
	if n := game.SlowDecisions(); n > 0 {
		logger.Warn("Some decisions were slow", "count", n, "max", game.MaxDecision())
	}

	if c.Save != "" {
		state := &dynamite.Gamestate{Rounds: game.Rounds()}
		err := fileutil.WriteAtomic(c.Save, 0o644, func(w io.Writer) error {
			return dynamite.EncodeGamestate(w, state)
		})
		if err != nil {
			return fmt.Errorf("save history: %w", err)
		}
		logger.Info("Saved history", "path", c.Save, "rounds", state.Len())
	}

	return report.Match(os.Stdout, c.P1, c.P2, result)
}
