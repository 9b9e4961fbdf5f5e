package main

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"
	"github.com/joho/godotenv"
	"github.com/lox/dynamitebots/cmd/dynamite/shared"
	"github.com/lox/dynamitebots/dynamite"
	"github.com/lox/dynamitebots/internal/bot"
	"github.com/lox/dynamitebots/internal/config"
	"github.com/lox/dynamitebots/internal/match"
	"github.com/lox/dynamitebots/internal/randutil"
)

// Globals are flags shared by every command.
type Globals struct {
	Config  string `help:"HCL configuration file" default:"dynamite.hcl" type:"path"`
	EnvFile string `help:"Environment file loaded before the configuration" default:".env" type:"path"`
	Seed    int64  `help:"Seed for deterministic play (0 keeps the configured seed, or picks one)"`
	Debug   bool   `help:"Enable debug logging"`
}

// setup loads the environment file and configuration and builds the logger.
func (g *Globals) setup() (*config.Config, *log.Logger, error) {
	logger := shared.SetupLogger(g.Debug)

	if _, err := os.Stat(g.EnvFile); err == nil {
		if err := godotenv.Load(g.EnvFile); err != nil {
			return nil, nil, fmt.Errorf("load %s: %w", g.EnvFile, err)
		}
		logger.Debug("Loaded environment file", "path", g.EnvFile)
	}

	cfg, err := config.Load(g.Config)
	if err != nil {
		return nil, nil, err
	}
	if err := cfg.ApplyEnv(); err != nil {
		return nil, nil, err
	}
	if g.Seed != 0 {
		cfg.Match.Seed = g.Seed
	}
	cfg.Match.Seed = randutil.Seed(cfg.Match.Seed)
	if err := cfg.Validate(); err != nil {
		return nil, nil, fmt.Errorf("invalid configuration: %w", err)
	}
	logger.Debug("Configuration loaded", "path", g.Config, "seed", cfg.Match.Seed)
	return cfg, logger, nil
}

// botFactory builds bots by registered or configured name. A configured bot
// with its own seed always plays the same stream for a seat.
func botFactory(cfg *config.Config, name string, logger *log.Logger) match.Factory {
	return func(seat int, seed int64) (bot.Bot, error) {
		strategyName, opts, err := cfg.BotOptions(name, logger.With("seat", seat))
		if err != nil {
			return nil, err
		}
		if bc := cfg.GetBotByName(name); bc != nil && bc.Seed != 0 {
			seed = bc.Seed
		}
		opts.Seed = randutil.Derive(seed, seat)
		return bot.New(strategyName, opts)
	}
}

// readGamestate decodes a history file, or stdin when path is "-".
func readGamestate(path string) (*dynamite.Gamestate, error) {
	var r io.Reader = os.Stdin
	if path != "-" {
		f, err := os.Open(path)
		if err != nil {
			return nil, err
		}
		defer f.Close()
		r = f
	}
	state, err := dynamite.DecodeGamestate(r)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	return state, nil
}
