package main

import (
	"fmt"

	"github.com/lox/dynamitebots/internal/bot"
	"github.com/lox/dynamitebots/internal/report"
)

type BotsCmd struct{}

func (c *BotsCmd) Run(g *Globals) error {
	cfg, _, err := g.setup()
	if err != nil {
		return err
	}

	fmt.Println(report.LabelStyle.Render("Registered bots:"))
	for _, name := range bot.Names() {
		fmt.Printf("  %s\n", name)
	}
	if len(cfg.Bots) > 0 {
		fmt.Println(report.LabelStyle.Render("Configured bots:"))
		for _, b := range cfg.Bots {
			fmt.Printf("  %s (%s)\n", b.Name, b.Strategy)
		}
	}
	return nil
}
