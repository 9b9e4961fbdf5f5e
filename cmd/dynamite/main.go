package main

import (
	"github.com/alecthomas/kong"
)

// version is set by ldflags during build
var version = "dev"

type CLI struct {
	Globals

	Version    kong.VersionFlag `short:"v" help:"Show version"`
	Play       PlayCmd          `cmd:"" help:"Play a single match between two bots"`
	Tournament TournamentCmd    `cmd:"" help:"Play many matches and report aggregate results"`
	Features   FeaturesCmd      `cmd:"" help:"Show the model inputs built from a history file"`
	Decide     DecideCmd        `cmd:"" help:"Ask a bot for its next move given a history file"`
	Bots       BotsCmd          `cmd:"" help:"List available bots"`
}

func main() {
	var cli CLI
	ctx := kong.Parse(&cli,
		kong.Name("dynamite"),
		kong.Description("Bots for Rock, Paper, Scissors, Dynamite, Water"),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact: true,
		}),
		kong.Vars{
			"version": version,
		},
	)
	err := ctx.Run(&cli.Globals)
	ctx.FatalIfErrorf(err)
}
