// Package tui is a bubbletea viewer that plays a match round by round.
package tui

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"
	"github.com/lox/dynamitebots/internal/match"
	"github.com/lox/dynamitebots/internal/report"
	"github.com/lox/dynamitebots/internal/statistics"
)

const (
	maxSpeed     = 256
	sidebarWidth = 30
)

// Model drives a match.Game from bubbletea ticks.
type Model struct {
	game   *match.Game
	logger *log.Logger

	logViewport viewport.Model
	p1Bar       progress.Model
	p2Bar       progress.Model

	lines    []string
	interval time.Duration
	speed    int // rounds per tick
	paused   bool
	quitting bool
	err      error

	width  int
	height int
}

type tickMsg struct{}

// NewModel creates a viewer for g.
func NewModel(g *match.Game, logger *log.Logger) *Model {
	vp := viewport.New(10, 5)
	vp.SetContent("")
	return &Model{
		game:        g,
		logger:      logger.WithPrefix("tui"),
		logViewport: vp,
		p1Bar:       progress.New(progress.WithDefaultGradient()),
		p2Bar:       progress.New(progress.WithGradient("#FF6B6B", "#FFEAA7")),
		interval:    50 * time.Millisecond,
		speed:       1,
	}
}

// Err is the error that stopped the match, if any.
func (m *Model) Err() error { return m.err }

// Init starts the tick loop.
func (m *Model) Init() tea.Cmd {
	return m.tick()
}

func (m *Model) tick() tea.Cmd {
	return tea.Tick(m.interval, func(time.Time) tea.Msg { return tickMsg{} })
}

// Update handles messages
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tickMsg:
		if m.paused || m.game.Done() {
			return m, m.tick()
		}
		if err := m.advance(m.speed); err != nil {
			return m, tea.Quit
		}
		return m, m.tick()

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.logger.Debug("Updating dimensions", "width", m.width, "height", m.height)
		m.resize()

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "esc", "q":
			m.quitting = true
			return m, tea.Quit
		case " ", "p":
			m.paused = !m.paused
		case "n":
			if m.paused && !m.game.Done() {
				if err := m.advance(1); err != nil {
					return m, tea.Quit
				}
			}
		case "+", "=":
			m.speed = min(m.speed*2, maxSpeed)
		case "-":
			m.speed = max(m.speed/2, 1)
		}
	}

	var cmd tea.Cmd
	m.logViewport, cmd = m.logViewport.Update(msg)
	return m, cmd
}

// advance plays up to n rounds and appends them to the log.
func (m *Model) advance(n int) error {
	for range n {
		if m.game.Done() {
			break
		}
		r, err := m.game.Step()
		if err != nil {
			m.err = err
			m.logger.Error("Match aborted", "error", err)
			return err
		}
		m.lines = append(m.lines, formatRound(r))
	}
	if m.game.Done() {
		p1, p2 := m.game.Names()
		m.lines = append(m.lines, "", report.Outcome(p1, p2, m.game.Result()))
	}
	m.logViewport.SetContent(strings.Join(m.lines, "\n"))
	m.logViewport.GotoBottom()
	return nil
}

func formatRound(r match.RoundResult) string {
	line := fmt.Sprintf("#%-5d %s vs %s", r.Index+1, report.MoveStyle(r.Round.P1), report.MoveStyle(r.Round.P2))
	switch r.Winner {
	case 1:
		return line + "  " + report.WinStyle.Render(fmt.Sprintf("p1 +%d", r.Points))
	case 2:
		return line + "  " + report.LossStyle.Render(fmt.Sprintf("p2 +%d", r.Points))
	default:
		return line + "  " + report.DrawStyle.Render(fmt.Sprintf("draw (%d riding)", r.Carry))
	}
}

func (m *Model) resize() {
	m.logViewport.Width = max(m.width-sidebarWidth-4, 1)
	m.logViewport.Height = max(m.height-4, 1)
	m.p1Bar.Width = sidebarWidth - 2
	m.p2Bar.Width = sidebarWidth - 2
}

// View renders the match
func (m *Model) View() string {
	if m.quitting {
		return ""
	}
	if m.width == 0 || m.height == 0 {
		return "Loading..."
	}

	logPane := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("#626262")).
		Width(m.logViewport.Width).
		Height(m.logViewport.Height).
		Render(m.logViewport.View())

	sidebar := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("#04B575")).
		Width(sidebarWidth).
		Height(m.logViewport.Height).
		Render(m.renderSidebar())

	help := report.InfoStyle.Render("space pause • n step • +/- speed • ↑↓ scroll • q quit")
	return lipgloss.JoinVertical(lipgloss.Left,
		lipgloss.JoinHorizontal(lipgloss.Top, logPane, sidebar),
		help)
}

func (m *Model) renderSidebar() string {
	p1, p2 := m.game.Names()
	s1, s2 := m.game.Score()
	target := float64(m.game.ScoreTarget())

	var b strings.Builder
	b.WriteString(report.HeaderStyle.Render(fmt.Sprintf(" Round %d ", m.game.Result().Rounds+1)))
	b.WriteString("\n\n")
	fmt.Fprintf(&b, "%s %d\n%s\n", p1, s1, m.p1Bar.ViewAs(min(float64(s1)/target, 1)))
	fmt.Fprintf(&b, "%s %d\n%s\n\n", p2, s2, m.p2Bar.ViewAs(min(float64(s2)/target, 1)))
	fmt.Fprintf(&b, "%s %d | %d\n", report.DynamiteStyle.Render("dynamite"), m.game.DynamiteLeft(1), m.game.DynamiteLeft(2))
	fmt.Fprintf(&b, "%s %d\n", report.DrawStyle.Render("riding"), m.game.Carry())
	fmt.Fprintf(&b, "%s %dx", report.LabelStyle.Render("speed"), m.speed)
	if m.paused {
		b.WriteString(" " + report.DrawStyle.Render("paused"))
	}
	return b.String()
}

// Run shows g in the terminal until it finishes and the user quits.
func Run(ctx context.Context, g *match.Game, logger *log.Logger) (statistics.MatchResult, error) {
	model := NewModel(g, logger)
	program := tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(ctx))
	if _, err := program.Run(); err != nil {
		return g.Result(), fmt.Errorf("tui: %w", err)
	}
	return g.Result(), model.Err()
}
