package snapshot

import (
	"testing"

	"github.com/lox/dynamitebots/dynamite"
	"github.com/lox/dynamitebots/internal/predictor"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func repeat(r dynamite.Round, n int) []dynamite.Round {
	rounds := make([]dynamite.Round, n)
	for i := range rounds {
		rounds[i] = r
	}
	return rounds
}

func TestFoldCounters(t *testing.T) {
	t.Parallel()
	rounds := []dynamite.Round{
		{P1: dynamite.Dynamite, P2: dynamite.Rock},
		{P1: dynamite.Rock, P2: dynamite.Water},
		{P1: dynamite.Water, P2: dynamite.Rock},
		{P1: dynamite.Dynamite, P2: dynamite.Paper},
	}
	snaps, err := Fold(rounds, 100)
	require.NoError(t, err)
	require.Len(t, snaps, 4)

	p1 := snaps[3].PlayerOne
	assert.Equal(t, dynamite.Dynamite, p1.Move)
	assert.Equal(t, 98, p1.DynamiteLeft)
	assert.Equal(t, 0, p1.RoundsSinceDynamite)
	assert.Equal(t, 1, p1.RoundsSinceWater)
	assert.Equal(t, [5]float32{0.25, 0, 0, 0.5, 0.25}, p1.MoveProbabilities)

	p2 := snaps[3].PlayerTwo
	assert.Equal(t, 100, p2.DynamiteLeft)
	assert.Equal(t, 4, p2.RoundsSinceDynamite)
	assert.Equal(t, 2, p2.RoundsSinceWater)

	for i, s := range snaps {
		assert.Equal(t, i, s.Rollover)
	}
}

func TestFoldIsCausal(t *testing.T) {
	t.Parallel()
	rounds := []dynamite.Round{
		{P1: dynamite.Rock, P2: dynamite.Paper},
		{P1: dynamite.Scissors, P2: dynamite.Dynamite},
		{P1: dynamite.Water, P2: dynamite.Dynamite},
		{P1: dynamite.Paper, P2: dynamite.Rock},
	}
	full, err := Fold(rounds, 100)
	require.NoError(t, err)
	for n := 1; n <= len(rounds); n++ {
		prefix, err := Fold(rounds[:n], 100)
		require.NoError(t, err)
		assert.Equal(t, full[:n], prefix, "prefix %d", n)
	}
}

func TestDynamiteLeftClampsAtZero(t *testing.T) {
	t.Parallel()
	const budget = 5
	rounds := repeat(dynamite.Round{P1: dynamite.Dynamite, P2: dynamite.Rock}, budget+3)
	snaps, err := Fold(rounds, budget)
	require.NoError(t, err)

	assert.Equal(t, 0, snaps[budget-1].PlayerOne.DynamiteLeft)
	for _, s := range snaps[budget:] {
		assert.Equal(t, 0, s.PlayerOne.DynamiteLeft)
	}
	assert.Equal(t, budget, snaps[len(snaps)-1].PlayerTwo.DynamiteLeft)
}

func TestFeaturesLayout(t *testing.T) {
	t.Parallel()
	p := PlayerSnapshot{
		Move:                dynamite.Scissors,
		DynamiteLeft:        50,
		RoundsSinceDynamite: 5000,
		RoundsSinceWater:    250,
		MoveProbabilities:   [5]float32{0.1, 0.2, 0.3, 0.2, 0.2},
	}
	f := p.Features(500, 100)
	require.Len(t, f, PlayerFeatureDim)
	assert.Equal(t, float32(0.5), f[0])
	assert.Equal(t, float32(0.5), f[1])
	assert.Equal(t, float32(1), f[2], "rounds since dynamite is capped")
	assert.InDelta(t, 0.1, f[3], 1e-6)
	assert.Equal(t, []float32{0, 0, 1, 0, 0}, f[4:9])
	assert.Equal(t, []float32{0.1, 0.2, 0.3, 0.2, 0.2}, f[9:14])

	assert.Equal(t, float32(1), p.Features(5000, 100)[0], "rollover is capped")

	g := GameSnapshot{Rollover: 10, PlayerOne: p, PlayerTwo: Neutral(100)}
	assert.Len(t, g.CombinedFeatures(100), HistoryFeatureDim)
	assert.Equal(t, []float32{0.5, 1, 0.01}, g.StateFeatures(100))
}

func TestEmptyHistoryIsFullyNeutral(t *testing.T) {
	t.Parallel()
	b := NewBuilder()
	inputs, err := b.Inputs(nil)
	require.NoError(t, err)

	history := inputs[predictor.HistoryInput]
	assert.Equal(t, []int64{1, DefaultWindowSize, HistoryFeatureDim}, history.Shape)
	require.NoError(t, history.Validate())

	neutral := NeutralGame(DefaultDynamiteBudget).CombinedFeatures(DefaultDynamiteBudget)
	for i := range DefaultWindowSize {
		row := history.Data[i*HistoryFeatureDim : (i+1)*HistoryFeatureDim]
		assert.Equal(t, neutral, row, "row %d", i)
	}

	state := inputs[predictor.StateInput]
	assert.Equal(t, []int64{1, StateFeatureDim}, state.Shape)
	assert.Equal(t, []float32{1, 1, 0}, state.Data)
}

func TestNeutralSnapshot(t *testing.T) {
	t.Parallel()
	n := Neutral(100)
	assert.Equal(t, dynamite.Rock, n.Move)
	assert.Equal(t, 100, n.DynamiteLeft)
	assert.Zero(t, n.RoundsSinceDynamite)
	assert.Zero(t, n.RoundsSinceWater)
	for _, p := range n.MoveProbabilities {
		assert.InDelta(t, 0.2, p, 1e-7)
	}
}

func TestShortHistoryIsLeftPadded(t *testing.T) {
	t.Parallel()
	b := &Builder{WindowSize: 5, DynamiteBudget: 100}
	rounds := []dynamite.Round{
		{P1: dynamite.Paper, P2: dynamite.Rock},
		{P1: dynamite.Water, P2: dynamite.Dynamite},
	}
	window, err := b.Window(rounds)
	require.NoError(t, err)
	require.Len(t, window, 5)
	for _, g := range window[:3] {
		assert.Equal(t, NeutralGame(100), g)
	}
	assert.Equal(t, dynamite.Paper, window[3].PlayerOne.Move)
	assert.Equal(t, dynamite.Dynamite, window[4].PlayerTwo.Move)
	assert.Equal(t, 99, window[4].PlayerTwo.DynamiteLeft)
}

func TestLongHistoryKeepsMostRecent(t *testing.T) {
	t.Parallel()
	b := &Builder{WindowSize: 3, DynamiteBudget: 100}
	rounds := []dynamite.Round{
		{P1: dynamite.Rock, P2: dynamite.Rock},
		{P1: dynamite.Paper, P2: dynamite.Rock},
		{P1: dynamite.Scissors, P2: dynamite.Rock},
		{P1: dynamite.Dynamite, P2: dynamite.Rock},
		{P1: dynamite.Water, P2: dynamite.Rock},
	}
	all, err := Fold(rounds, 100)
	require.NoError(t, err)

	window, err := b.Window(rounds)
	require.NoError(t, err)
	assert.Equal(t, all[2:], window)

	inputs, err := b.Inputs(rounds)
	require.NoError(t, err)
	assert.Equal(t, []int64{1, 3, HistoryFeatureDim}, inputs[predictor.HistoryInput].Shape)
	assert.Equal(t, all[4].StateFeatures(100), inputs[predictor.StateInput].Data)
}

func TestUnknownMoveFailsFold(t *testing.T) {
	t.Parallel()
	_, err := NewBuilder().Inputs([]dynamite.Round{{P1: dynamite.Rock, P2: dynamite.Move(6)}})
	assert.ErrorIs(t, err, dynamite.ErrUnknownMove)
}

func TestBuilderValidate(t *testing.T) {
	t.Parallel()
	_, err := (&Builder{WindowSize: 0, DynamiteBudget: 100}).Inputs(nil)
	assert.Error(t, err)
	assert.Error(t, (&Builder{WindowSize: 5}).Validate())
	assert.NoError(t, NewBuilder().Validate())

	_, err = (&Builder{WindowSize: -3, DynamiteBudget: 100}).Window(nil)
	assert.ErrorContains(t, err, "window size")
	assert.Empty(t, (&Builder{WindowSize: -3, DynamiteBudget: 100}).Pad(nil))
}
