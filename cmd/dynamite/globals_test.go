package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/lox/dynamitebots/dynamite"
	"github.com/lox/dynamitebots/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSetupLoadsEnvFileAndConfig(t *testing.T) {
	dir := t.TempDir()
	cfgPath := filepath.Join(dir, "dynamite.hcl")
	envPath := filepath.Join(dir, ".env")
	require.NoError(t, os.WriteFile(cfgPath, []byte(`
match {
  score_target = 50
}
bot "steady" {
  strategy = "winprob"
  seed     = 11
}
`), 0o644))
	require.NoError(t, os.WriteFile(envPath, []byte("DYNAMITE_SEED=1234\n"), 0o644))
	t.Setenv(config.EnvSeed, "")
	require.NoError(t, os.Unsetenv(config.EnvSeed))

	g := &Globals{Config: cfgPath, EnvFile: envPath}
	cfg, logger, err := g.setup()
	require.NoError(t, err)
	require.NotNil(t, logger)
	assert.Equal(t, 50, cfg.Match.ScoreTarget)
	assert.Equal(t, int64(1234), cfg.Match.Seed)

	g.Seed = 77
	cfg, _, err = g.setup()
	require.NoError(t, err)
	assert.Equal(t, int64(77), cfg.Match.Seed, "flag beats environment")

	b, err := botFactory(cfg, "steady", logger)(1, 5)
	require.NoError(t, err)
	assert.Equal(t, "winprob", b.Name())

	_, err = botFactory(cfg, "nobody", logger)(1, 5)
	assert.ErrorContains(t, err, "unknown bot")
}

func TestSetupWithoutFilesUsesDefaults(t *testing.T) {
	dir := t.TempDir()
	t.Setenv(config.EnvSeed, "")
	require.NoError(t, os.Unsetenv(config.EnvSeed))
	g := &Globals{Config: filepath.Join(dir, "missing.hcl"), EnvFile: filepath.Join(dir, "missing.env")}
	cfg, _, err := g.setup()
	require.NoError(t, err)
	assert.Equal(t, 1000, cfg.Match.ScoreTarget)
	assert.NotZero(t, cfg.Match.Seed)
}

func TestReadGamestate(t *testing.T) {
	path := filepath.Join(t.TempDir(), "history.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"rounds":[{"p1":"R","p2":"D"},{"p1":"W","p2":"D"}]}`), 0o644))

	state, err := readGamestate(path)
	require.NoError(t, err)
	assert.Equal(t, []dynamite.Round{
		{P1: dynamite.Rock, P2: dynamite.Dynamite},
		{P1: dynamite.Water, P2: dynamite.Dynamite},
	}, state.Rounds)

	require.NoError(t, os.WriteFile(path, []byte(`{"rounds":[{"p1":"X","p2":"D"}]}`), 0o644))
	_, err = readGamestate(path)
	assert.ErrorIs(t, err, dynamite.ErrUnknownMove)
}
