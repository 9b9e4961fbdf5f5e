package main

import (
	"fmt"

	"github.com/lox/dynamitebots/internal/bot"
	"github.com/lox/dynamitebots/internal/report"
)

type DecideCmd struct {
	History string `arg:"" help:"Gamestate JSON file from the deciding bot's seat, or - for stdin"`
	Bot     string `help:"Bot to ask: a registered or configured bot" default:"model"`
}

func (c *DecideCmd) Run(g *Globals) error {
	cfg, logger, err := g.setup()
	if err != nil {
		return err
	}
	state, err := readGamestate(c.History)
	if err != nil {
		return err
	}

	b, err := botFactory(cfg, c.Bot, logger)(1, cfg.Match.Seed)
	if err != nil {
		return fmt.Errorf("create %s: %w", c.Bot, err)
	}
	defer bot.Close(b)

	move, err := b.Decide(state)
	if err != nil {
		return err
	}
	fmt.Printf("%s %s\n", report.MoveStyle(move), move)
	return nil
}
