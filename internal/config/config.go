// Package config loads dynamite bot settings from an HCL file and the
// environment.
package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/charmbracelet/log"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/lox/dynamitebots/dynamite"
	"github.com/lox/dynamitebots/internal/bot"
	"github.com/lox/dynamitebots/internal/match"
	"github.com/lox/dynamitebots/internal/predictor"
	"github.com/lox/dynamitebots/internal/snapshot"
	"github.com/lox/dynamitebots/internal/strategy"
)

// Environment variables that override file settings
const (
	EnvSeed       = "DYNAMITE_SEED"
	EnvModel      = "DYNAMITE_MODEL"
	EnvModelKind  = "DYNAMITE_MODEL_KIND"
	EnvORTLibrary = "DYNAMITE_ORT_LIBRARY"
)

// Config is the complete configuration
type Config struct {
	Match    MatchSettings
	Strategy StrategySettings
	Model    ModelSettings
	Bots     []BotConfig
}

// file mirrors Config with optional blocks for decoding.
type file struct {
	Match    *MatchSettings    `hcl:"match,block"`
	Strategy *StrategySettings `hcl:"strategy,block"`
	Model    *ModelSettings    `hcl:"model,block"`
	Bots     []BotConfig       `hcl:"bot,block"`
}

// MatchSettings are the rules of a match
type MatchSettings struct {
	ScoreTarget    int    `hcl:"score_target,optional"`
	MaxRounds      int    `hcl:"max_rounds,optional"`
	DynamiteBudget int    `hcl:"dynamite_budget,optional"`
	DecisionBudget string `hcl:"decision_budget,optional"`
	Seed           int64  `hcl:"seed,optional"`
}

// StrategySettings tune the win-probability bots
type StrategySettings struct {
	ResearchUntil int   `hcl:"research_until,optional"`
	Weights       []int `hcl:"weights,optional"`
}

// ModelSettings locate the model used by the model bot
type ModelSettings struct {
	Kind       string `hcl:"kind,optional"`
	Path       string `hcl:"path,optional"`
	Library    string `hcl:"library,optional"`
	WindowSize int    `hcl:"window_size,optional"`
}

// BotConfig names a registered bot with its own overrides
type BotConfig struct {
	Name          string `hcl:"name,label"`
	Strategy      string `hcl:"strategy"`
	Seed          int64  `hcl:"seed,optional"`
	ResearchUntil int    `hcl:"research_until,optional"`
	Weights       []int  `hcl:"weights,optional"`
	Model         string `hcl:"model,optional"`
}

// Default returns the built-in configuration
func Default() *Config {
	return &Config{
		Match: MatchSettings{
			ScoreTarget:    1000,
			MaxRounds:      2500,
			DynamiteBudget: strategy.DefaultDynamiteBudget,
			DecisionBudget: "50ms",
		},
		Strategy: StrategySettings{
			ResearchUntil: strategy.DefaultResearchUntil,
			Weights:       append([]int(nil), strategy.ConservativeWeights[:]...),
		},
		Model: ModelSettings{
			Kind:       predictor.KindONNX,
			WindowSize: snapshot.DefaultWindowSize,
		},
	}
}

// Load reads an HCL file. A missing file yields the defaults.
func Load(filename string) (*Config, error) {
	if _, err := os.Stat(filename); os.IsNotExist(err) {
		return Default(), nil
	}

	parser := hclparse.NewParser()
	f, diags := parser.ParseHCLFile(filename)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse HCL file: %s", diags.Error())
	}

	var raw file
	diags = gohcl.DecodeBody(f.Body, nil, &raw)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to decode HCL: %s", diags.Error())
	}

	cfg := Default()
	if m := raw.Match; m != nil {
		if m.ScoreTarget != 0 {
			cfg.Match.ScoreTarget = m.ScoreTarget
		}
		if m.MaxRounds != 0 {
			cfg.Match.MaxRounds = m.MaxRounds
		}
		if m.DynamiteBudget != 0 {
			cfg.Match.DynamiteBudget = m.DynamiteBudget
		}
		if m.DecisionBudget != "" {
			cfg.Match.DecisionBudget = m.DecisionBudget
		}
		cfg.Match.Seed = m.Seed
	}
	if s := raw.Strategy; s != nil {
		if s.ResearchUntil != 0 {
			cfg.Strategy.ResearchUntil = s.ResearchUntil
		}
		if len(s.Weights) > 0 {
			cfg.Strategy.Weights = s.Weights
		}
	}
	if m := raw.Model; m != nil {
		if m.Kind != "" {
			cfg.Model.Kind = m.Kind
		}
		if m.WindowSize != 0 {
			cfg.Model.WindowSize = m.WindowSize
		}
		cfg.Model.Path = m.Path
		cfg.Model.Library = m.Library
	}
	cfg.Bots = raw.Bots
	return cfg, nil
}

// ApplyEnv overrides settings from DYNAMITE_* environment variables.
func (c *Config) ApplyEnv() error {
	if v := os.Getenv(EnvSeed); v != "" {
		seed, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return fmt.Errorf("invalid %s value: %w", EnvSeed, err)
		}
		c.Match.Seed = seed
	}
	if v := os.Getenv(EnvModel); v != "" {
		c.Model.Path = v
	}
	if v := os.Getenv(EnvModelKind); v != "" {
		c.Model.Kind = v
	}
	if v := os.Getenv(EnvORTLibrary); v != "" {
		c.Model.Library = v
	}
	return nil
}

// Validate checks the configuration
func (c *Config) Validate() error {
	if err := c.MatchConfig().Validate(); err != nil {
		return fmt.Errorf("match: %w", err)
	}
	if _, err := time.ParseDuration(c.Match.DecisionBudget); err != nil {
		return fmt.Errorf("match: invalid decision_budget %q: %w", c.Match.DecisionBudget, err)
	}
	if c.Strategy.ResearchUntil < 0 {
		return fmt.Errorf("strategy: research_until must not be negative")
	}
	if _, err := weights(c.Strategy.Weights); err != nil {
		return fmt.Errorf("strategy: %w", err)
	}
	switch c.Model.Kind {
	case predictor.KindONNX, predictor.KindDeep:
	default:
		return fmt.Errorf("model: unknown kind %q", c.Model.Kind)
	}
	if c.Model.WindowSize <= 0 {
		return fmt.Errorf("model: window_size must be positive")
	}

	registered := map[string]bool{}
	for _, name := range bot.Names() {
		registered[name] = true
	}
	seen := map[string]bool{}
	for _, b := range c.Bots {
		if seen[b.Name] {
			return fmt.Errorf("bot %s: defined more than once", b.Name)
		}
		seen[b.Name] = true
		if !registered[b.Strategy] {
			return fmt.Errorf("bot %s: invalid strategy %s", b.Name, b.Strategy)
		}
		if b.Weights != nil {
			if _, err := weights(b.Weights); err != nil {
				return fmt.Errorf("bot %s: %w", b.Name, err)
			}
		}
	}
	return nil
}

// MatchConfig converts the match block into harness rules.
func (c *Config) MatchConfig() match.Config {
	cfg := match.DefaultConfig()
	cfg.ScoreTarget = c.Match.ScoreTarget
	cfg.MaxRounds = c.Match.MaxRounds
	cfg.DynamiteBudget = c.Match.DynamiteBudget
	cfg.Seed = c.Match.Seed
	if d, err := time.ParseDuration(c.Match.DecisionBudget); err == nil {
		cfg.DecisionBudget = d
	}
	return cfg
}

// GetBotByName returns a configured bot by name
func (c *Config) GetBotByName(name string) *BotConfig {
	for i := range c.Bots {
		if c.Bots[i].Name == name {
			return &c.Bots[i]
		}
	}
	return nil
}

// BotOptions resolves name, either a configured bot or a registered
// strategy, into the registry name and options used to build it.
func (c *Config) BotOptions(name string, logger *log.Logger) (string, bot.Options, error) {
	w, err := weights(c.Strategy.Weights)
	if err != nil {
		return "", bot.Options{}, err
	}
	opts := bot.Options{
		Seed:           c.Match.Seed,
		DynamiteBudget: c.Match.DynamiteBudget,
		ResearchUntil:  c.Strategy.ResearchUntil,
		Weights:        w,
		Logger:         logger,
		ModelKind:      c.Model.Kind,
		ModelPath:      c.Model.Path,
		LibraryPath:    c.Model.Library,
		WindowSize:     c.Model.WindowSize,
	}

	b := c.GetBotByName(name)
	if b == nil {
		return name, opts, nil
	}
	if b.Seed != 0 {
		opts.Seed = b.Seed
	}
	if b.ResearchUntil != 0 {
		opts.ResearchUntil = b.ResearchUntil
	}
	if b.Weights != nil {
		if opts.Weights, err = weights(b.Weights); err != nil {
			return "", bot.Options{}, fmt.Errorf("bot %s: %w", b.Name, err)
		}
	}
	if b.Model != "" {
		opts.ModelPath = b.Model
	}
	return b.Strategy, opts, nil
}

func weights(ws []int) (strategy.Weights, error) {
	var w strategy.Weights
	if len(ws) != dynamite.NumMoves {
		return w, fmt.Errorf("weights need %d entries, got %d", dynamite.NumMoves, len(ws))
	}
	copy(w[:], ws)
	return w, w.Validate()
}
