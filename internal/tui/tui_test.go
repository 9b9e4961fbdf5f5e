package tui

import (
	"errors"
	"io"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
	"github.com/lox/dynamitebots/dynamite"
	"github.com/lox/dynamitebots/internal/match"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fixedBot struct {
	name string
	move dynamite.Move
	err  error
}

func (b fixedBot) Name() string { return b.name }

func (b fixedBot) Decide(*dynamite.Gamestate) (dynamite.Move, error) { return b.move, b.err }

func newTestModel(t *testing.T, p1, p2 fixedBot) *Model {
	t.Helper()
	cfg := match.DefaultConfig()
	cfg.ScoreTarget = 10
	g, err := match.NewGame(cfg, p1, p2)
	require.NoError(t, err)

	logger := log.NewWithOptions(io.Discard, log.Options{Level: log.ErrorLevel})
	m := NewModel(g, logger)
	m.Update(tea.WindowSizeMsg{Width: 100, Height: 30})
	return m
}

func TestModelPlaysToTheEnd(t *testing.T) {
	m := newTestModel(t, fixedBot{name: "paper", move: dynamite.Paper}, fixedBot{name: "rock", move: dynamite.Rock})

	for range 20 {
		_, cmd := m.Update(tickMsg{})
		require.NotNil(t, cmd)
	}
	assert.True(t, m.game.Done())
	s1, s2 := m.game.Score()
	assert.Equal(t, 10, s1)
	assert.Equal(t, 0, s2)
	assert.Contains(t, m.lines[0], "p1 +1")
	assert.Contains(t, m.lines[len(m.lines)-1], "paper wins 10-0")

	view := m.View()
	assert.Contains(t, view, "paper 10")
	assert.Contains(t, view, "rock 0")
}

func TestModelKeys(t *testing.T) {
	m := newTestModel(t, fixedBot{name: "a", move: dynamite.Rock}, fixedBot{name: "b", move: dynamite.Rock})

	m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'+'}})
	m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'+'}})
	assert.Equal(t, 4, m.speed)
	m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'-'}})
	assert.Equal(t, 2, m.speed)

	m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'p'}})
	require.True(t, m.paused)
	m.Update(tickMsg{})
	assert.Empty(t, m.lines, "paused viewer does not play")

	m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'n'}})
	require.Len(t, m.lines, 1)
	assert.Contains(t, m.lines[0], "draw (1 riding)")
	assert.Contains(t, m.View(), "paused")

	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'q'}})
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())
	assert.Empty(t, m.View())
}

func TestModelStopsOnBotError(t *testing.T) {
	boom := errors.New("boom")
	m := newTestModel(t, fixedBot{name: "a", move: dynamite.Rock}, fixedBot{name: "b", err: boom})

	_, cmd := m.Update(tickMsg{})
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())
	assert.ErrorIs(t, m.Err(), boom)
}
