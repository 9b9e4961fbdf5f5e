package main

import (
	"fmt"
	"strings"

	"github.com/lox/dynamitebots/internal/predictor"
	"github.com/lox/dynamitebots/internal/report"
	"github.com/lox/dynamitebots/internal/snapshot"
)

type FeaturesCmd struct {
	History string `arg:"" help:"Gamestate JSON file, or - for stdin"`
	Window  int    `help:"Window size (0 uses the configured size)"`
}

func (c *FeaturesCmd) Run(g *Globals) error {
	cfg, _, err := g.setup()
	if err != nil {
		return err
	}
	state, err := readGamestate(c.History)
	if err != nil {
		return err
	}

	builder := &snapshot.Builder{WindowSize: cfg.Model.WindowSize, DynamiteBudget: cfg.Match.DynamiteBudget}
	if c.Window > 0 {
		builder.WindowSize = c.Window
	}
	inputs, err := builder.Inputs(state.Rounds)
	if err != nil {
		return err
	}
	window, err := builder.Window(state.Rounds)
	if err != nil {
		return err
	}
	latest := window[len(window)-1]

	fmt.Println(report.HeaderStyle.Render(fmt.Sprintf(" %d rounds ", state.Len())))
	for _, name := range []string{predictor.HistoryInput, predictor.StateInput} {
		fmt.Printf("%s %v\n", report.LabelStyle.Render(name), inputs[name].Shape)
	}
	fmt.Printf("%s %s\n", report.LabelStyle.Render("latest"), formatFloats(latest.CombinedFeatures(builder.DynamiteBudget)))
	fmt.Printf("%s %s\n", report.LabelStyle.Render("state "), formatFloats(latest.StateFeatures(builder.DynamiteBudget)))
	return nil
}

func formatFloats(vs []float32) string {
	parts := make([]string, len(vs))
	for i, v := range vs {
		parts[i] = fmt.Sprintf("%.3f", v)
	}
	return "[" + strings.Join(parts, " ") + "]"
}
