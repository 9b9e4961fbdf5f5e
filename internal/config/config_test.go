package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/lox/dynamitebots/internal/bot"
	"github.com/lox/dynamitebots/internal/predictor"
	"github.com/lox/dynamitebots/internal/strategy"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "dynamite.hcl")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestLoadMissingFileGivesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.hcl"))
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
	require.NoError(t, cfg.Validate())

	mc := cfg.MatchConfig()
	assert.Equal(t, 1000, mc.ScoreTarget)
	assert.Equal(t, 2500, mc.MaxRounds)
	assert.Equal(t, 100, mc.DynamiteBudget)
	assert.Equal(t, 50*time.Millisecond, mc.DecisionBudget)
}

func TestLoadFile(t *testing.T) {
	path := writeConfig(t, `
match {
  score_target    = 200
  decision_budget = "5ms"
  seed            = 42
}

strategy {
  research_until = 150
}

model {
  kind = "deep"
  path = "models/net.json"
}

bot "cautious" {
  strategy = "weighted-winprob"
  weights  = [40, 40, 40, 1, 1]
  seed     = 7
}

bot "net" {
  strategy = "model"
  model    = "models/other.json"
}
`)
	cfg, err := Load(path)
	require.NoError(t, err)
	require.NoError(t, cfg.Validate())

	assert.Equal(t, 200, cfg.Match.ScoreTarget)
	assert.Equal(t, 2500, cfg.Match.MaxRounds, "unset values keep defaults")
	assert.Equal(t, int64(42), cfg.Match.Seed)
	assert.Equal(t, 150, cfg.Strategy.ResearchUntil)
	assert.Equal(t, []int{30, 30, 30, 5, 5}, cfg.Strategy.Weights)
	assert.Equal(t, predictor.KindDeep, cfg.Model.Kind)
	assert.Equal(t, 50, cfg.Model.WindowSize)
	require.Len(t, cfg.Bots, 2)
	assert.Equal(t, 5*time.Millisecond, cfg.MatchConfig().DecisionBudget)

	name, opts, err := cfg.BotOptions("cautious", nil)
	require.NoError(t, err)
	assert.Equal(t, bot.NameWeightedWinProb, name)
	assert.Equal(t, int64(7), opts.Seed)
	assert.Equal(t, strategy.Weights{40, 40, 40, 1, 1}, opts.Weights)
	assert.Equal(t, 150, opts.ResearchUntil)

	name, opts, err = cfg.BotOptions("net", nil)
	require.NoError(t, err)
	assert.Equal(t, bot.NameModel, name)
	assert.Equal(t, "models/other.json", opts.ModelPath)
	assert.Equal(t, predictor.KindDeep, opts.ModelKind)

	name, opts, err = cfg.BotOptions(bot.NameRandom, nil)
	require.NoError(t, err)
	assert.Equal(t, bot.NameRandom, name)
	assert.Equal(t, int64(42), opts.Seed)
}

func TestLoadErrors(t *testing.T) {
	_, err := Load(writeConfig(t, `match {`))
	assert.ErrorContains(t, err, "parse")

	_, err = Load(writeConfig(t, `bot "x" {}`))
	assert.ErrorContains(t, err, "decode")
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
		want   string
	}{
		{"score target", func(c *Config) { c.Match.ScoreTarget = -1 }, "score target"},
		{"decision budget", func(c *Config) { c.Match.DecisionBudget = "soon" }, "decision_budget"},
		{"weights length", func(c *Config) { c.Strategy.Weights = []int{1, 2} }, "weights"},
		{"weights empty", func(c *Config) { c.Strategy.Weights = []int{0, 0, 0, 0, 0} }, "strategy"},
		{"model kind", func(c *Config) { c.Model.Kind = "tflite" }, "unknown kind"},
		{"window", func(c *Config) { c.Model.WindowSize = 0 }, "window_size"},
		{"bot strategy", func(c *Config) {
			c.Bots = []BotConfig{{Name: "x", Strategy: "poker"}}
		}, "invalid strategy"},
		{"duplicate bot", func(c *Config) {
			c.Bots = []BotConfig{{Name: "x", Strategy: "random"}, {Name: "x", Strategy: "random"}}
		}, "more than once"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			assert.ErrorContains(t, cfg.Validate(), tt.want)
		})
	}
}

func TestApplyEnv(t *testing.T) {
	t.Setenv(EnvSeed, "99")
	t.Setenv(EnvModel, "/tmp/model.onnx")
	t.Setenv(EnvModelKind, predictor.KindONNX)
	t.Setenv(EnvORTLibrary, "/usr/lib/libonnxruntime.so")

	cfg := Default()
	require.NoError(t, cfg.ApplyEnv())
	assert.Equal(t, int64(99), cfg.Match.Seed)
	assert.Equal(t, "/tmp/model.onnx", cfg.Model.Path)
	assert.Equal(t, "/usr/lib/libonnxruntime.so", cfg.Model.Library)

	t.Setenv(EnvSeed, "abc")
	assert.ErrorContains(t, Default().ApplyEnv(), EnvSeed)
}
