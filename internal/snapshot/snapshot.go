// Package snapshot turns a round history into the fixed-shape numeric input
// the move-prediction model consumes.
//
// The fold is strictly causal: the snapshot for round i only depends on
// rounds 0..i. Short histories are left-padded with a neutral snapshot that
// carries a uniform move distribution and a full dynamite budget.
package snapshot

import (
	"github.com/lox/dynamitebots/dynamite"
)

const (
	// MaxRollover normalises the round index.
	MaxRollover = 1000
	// MaxGameLength normalises the rounds-since counters.
	MaxGameLength = 2500
	// DefaultDynamiteBudget is the number of Dynamite throws per player per match.
	DefaultDynamiteBudget = 100
	// DefaultWindowSize is the number of rounds the model looks at.
	DefaultWindowSize = 50

	// PlayerFeatureDim is rollover, dynamite left, rounds since dynamite,
	// rounds since water, the one-hot move and the move distribution.
	PlayerFeatureDim = 4 + 2*dynamite.NumMoves
	// HistoryFeatureDim is both players' features side by side.
	HistoryFeatureDim = 2 * PlayerFeatureDim
	// StateFeatureDim is both dynamite-left ratios plus the rollover ratio.
	StateFeatureDim = 3
)

// PlayerSnapshot is one player's derived state after a round.
type PlayerSnapshot struct {
	Move                dynamite.Move
	DynamiteLeft        int
	RoundsSinceDynamite int
	RoundsSinceWater    int
	// MoveProbabilities is count/rounds played so far, in canonical order.
	MoveProbabilities [dynamite.NumMoves]float32
}

// Neutral is the padding snapshot: Rock, full budget, zeroed counters and a
// uniform move distribution.
func Neutral(budget int) PlayerSnapshot {
	p := PlayerSnapshot{Move: dynamite.Rock, DynamiteLeft: budget}
	for i := range p.MoveProbabilities {
		p.MoveProbabilities[i] = 1.0 / dynamite.NumMoves
	}
	return p
}

// Features returns the PlayerFeatureDim-long vector for this player.
func (p PlayerSnapshot) Features(rollover int, budget int) []float32 {
	out := make([]float32, 0, PlayerFeatureDim)
	out = append(out,
		ratio(rollover, MaxRollover),
		budgetRatio(p.DynamiteLeft, budget),
		ratio(p.RoundsSinceDynamite, MaxGameLength),
		ratio(p.RoundsSinceWater, MaxGameLength),
	)
	hot := p.Move.OneHot()
	out = append(out, hot[:]...)
	out = append(out, p.MoveProbabilities[:]...)
	return out
}

// GameSnapshot is both players' state after one round.
type GameSnapshot struct {
	Rollover  int
	PlayerOne PlayerSnapshot
	PlayerTwo PlayerSnapshot
}

// NeutralGame is the padding entry of the window.
func NeutralGame(budget int) GameSnapshot {
	return GameSnapshot{PlayerOne: Neutral(budget), PlayerTwo: Neutral(budget)}
}

// CombinedFeatures concatenates both players' feature vectors.
func (g GameSnapshot) CombinedFeatures(budget int) []float32 {
	out := g.PlayerOne.Features(g.Rollover, budget)
	return append(out, g.PlayerTwo.Features(g.Rollover, budget)...)
}

// StateFeatures summarises the resources left at this point of the match.
func (g GameSnapshot) StateFeatures(budget int) []float32 {
	return []float32{
		budgetRatio(g.PlayerOne.DynamiteLeft, budget),
		budgetRatio(g.PlayerTwo.DynamiteLeft, budget),
		ratio(g.Rollover, MaxRollover),
	}
}

func ratio(n, limit int) float32 {
	return min(float32(n)/float32(limit), 1)
}

func budgetRatio(left, budget int) float32 {
	if budget <= 0 {
		return 0
	}
	return float32(left) / float32(budget)
}
