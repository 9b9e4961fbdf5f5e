// Package report renders match and tournament results for the terminal.
package report

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/charmbracelet/lipgloss"
	"github.com/lox/dynamitebots/dynamite"
	"github.com/lox/dynamitebots/internal/statistics"
)

// MoveStyle renders a move letter, highlighting Dynamite and Water.
func MoveStyle(m dynamite.Move) string {
	switch m {
	case dynamite.Dynamite:
		return DynamiteStyle.Render(m.Letter())
	case dynamite.Water:
		return WaterStyle.Render(m.Letter())
	default:
		return m.Letter()
	}
}

// Outcome describes how a match ended.
func Outcome(p1, p2 string, r statistics.MatchResult) string {
	var winner, loser string
	switch r.Winner {
	case 1:
		winner, loser = p1, p2
	case 2:
		winner, loser = p2, p1
	default:
		return DrawStyle.Render(fmt.Sprintf("No winner after %d rounds", r.Rounds))
	}
	if r.Forfeit {
		return WinStyle.Render(fmt.Sprintf("%s wins: %s ran out of dynamite", winner, loser))
	}
	return WinStyle.Render(fmt.Sprintf("%s wins %d-%d", winner, max(r.P1Points, r.P2Points), min(r.P1Points, r.P2Points)))
}

// Match writes a single match summary.
func Match(w io.Writer, p1, p2 string, r statistics.MatchResult) error {
	fmt.Fprintln(w, HeaderStyle.Render(fmt.Sprintf(" %s vs %s ", p1, p2)))

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintf(tw, "%s\t%s\t%s\n", LabelStyle.Render("player"), LabelStyle.Render("points"), LabelStyle.Render("dynamite"))
	fmt.Fprintf(tw, "%s\t%d\t%d\n", p1, r.P1Points, r.P1Dyn)
	fmt.Fprintf(tw, "%s\t%d\t%d\n", p2, r.P2Points, r.P2Dyn)
	if err := tw.Flush(); err != nil {
		return err
	}

	fmt.Fprintf(w, "%s\n", Outcome(p1, p2, r))
	_, err := fmt.Fprintln(w, InfoStyle.Render(fmt.Sprintf("rounds %d, seed %d", r.Rounds, r.Seed)))
	return err
}

// Tournament writes aggregate results from player one's seat.
func Tournament(w io.Writer, p1, p2 string, s *statistics.Statistics) error {
	fmt.Fprintln(w, HeaderStyle.Render(fmt.Sprintf(" %s vs %s: %d matches ", p1, p2, s.Matches)))

	low, high := s.ConfidenceInterval95()
	avgRounds := 0.0
	if s.Matches > 0 {
		avgRounds = float64(s.Rounds) / float64(s.Matches)
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	row := func(label, value string) {
		fmt.Fprintf(tw, "%s\t%s\n", LabelStyle.Render(label), value)
	}
	row("wins", fmt.Sprintf("%s %d  %s %d  unfinished %d", p1, s.P1Wins, p2, s.P2Wins, s.Unfinished))
	row("win rate", rateStyle(s.WinRate()).Render(fmt.Sprintf("%.1f%%", 100*s.WinRate())))
	row("margin", fmt.Sprintf("%+.1f ± %.1f (95%% CI [%.1f, %.1f])", s.Mean(), s.StdError(), low, high))
	row("median", fmt.Sprintf("%+.1f", s.Median()))
	row("rounds", fmt.Sprintf("%.0f avg", avgRounds))
	row("dynamite", fmt.Sprintf("%s %d  %s %d", p1, s.DynamiteUsed[0], p2, s.DynamiteUsed[1]))
	if s.Forfeits > 0 {
		row("forfeits", LossStyle.Render(fmt.Sprintf("%d", s.Forfeits)))
	}
	return tw.Flush()
}

func rateStyle(rate float64) lipgloss.Style {
	switch {
	case rate > 0.5:
		return WinStyle
	case rate < 0.5:
		return LossStyle
	default:
		return DrawStyle
	}
}
