package snapshot

import (
	"fmt"

	"github.com/lox/dynamitebots/dynamite"
	"github.com/lox/dynamitebots/internal/predictor"
)

// Builder produces model inputs from round history.
type Builder struct {
	WindowSize     int
	DynamiteBudget int
}

// NewBuilder returns a builder with the default window and budget.
func NewBuilder() *Builder {
	return &Builder{WindowSize: DefaultWindowSize, DynamiteBudget: DefaultDynamiteBudget}
}

// Validate rejects non-positive sizes.
func (b *Builder) Validate() error {
	if b.WindowSize <= 0 {
		return fmt.Errorf("window size must be positive, got %d", b.WindowSize)
	}
	if b.DynamiteBudget <= 0 {
		return fmt.Errorf("dynamite budget must be positive, got %d", b.DynamiteBudget)
	}
	return nil
}

// Pad returns exactly WindowSize snapshots: the most recent ones, preceded by
// neutral padding when there are too few.
func (b *Builder) Pad(snaps []GameSnapshot) []GameSnapshot {
	if b.WindowSize <= 0 {
		return nil
	}
	out := make([]GameSnapshot, 0, b.WindowSize)
	neutral := NeutralGame(b.DynamiteBudget)
	for range max(b.WindowSize-len(snaps), 0) {
		out = append(out, neutral)
	}
	if len(snaps) > b.WindowSize {
		snaps = snaps[len(snaps)-b.WindowSize:]
	}
	return append(out, snaps...)
}

// Window folds rounds and pads the result.
func (b *Builder) Window(rounds []dynamite.Round) ([]GameSnapshot, error) {
	if err := b.Validate(); err != nil {
		return nil, err
	}
	snaps, err := Fold(rounds, b.DynamiteBudget)
	if err != nil {
		return nil, err
	}
	return b.Pad(snaps), nil
}

// Inputs builds the named tensors for the predictor: the history window of
// shape (1, WindowSize, HistoryFeatureDim) and the latest state of shape
// (1, StateFeatureDim). An empty history yields an all-neutral window.
func (b *Builder) Inputs(rounds []dynamite.Round) (map[string]predictor.Tensor, error) {
	window, err := b.Window(rounds)
	if err != nil {
		return nil, err
	}

	history := make([]float32, 0, b.WindowSize*HistoryFeatureDim)
	for _, g := range window {
		history = append(history, g.CombinedFeatures(b.DynamiteBudget)...)
	}
	state := window[len(window)-1].StateFeatures(b.DynamiteBudget)

	return map[string]predictor.Tensor{
		predictor.HistoryInput: predictor.NewTensor(history, 1, int64(b.WindowSize), HistoryFeatureDim),
		predictor.StateInput:   predictor.NewTensor(state, 1, StateFeatureDim),
	}, nil
}
