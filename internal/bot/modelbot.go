package bot

import (
	"errors"
	"math"

	"github.com/charmbracelet/log"
	"github.com/lox/dynamitebots/dynamite"
	"github.com/lox/dynamitebots/internal/predictor"
	"github.com/lox/dynamitebots/internal/snapshot"
	"github.com/lox/dynamitebots/internal/strategy"
)

// ModelBot asks a move-prediction model for per-move scores and plays the
// highest scoring legal move. The predictor is held for the bot's lifetime.
type ModelBot struct {
	predictor predictor.Predictor
	builder   *snapshot.Builder
	logger    *log.Logger
}

// NewModelBot takes ownership of p; Close releases it.
func NewModelBot(p predictor.Predictor, builder *snapshot.Builder, logger *log.Logger) (*ModelBot, error) {
	if p == nil {
		return nil, &predictor.ModelLoadError{Err: errors.New("no predictor")}
	}
	if builder == nil {
		builder = snapshot.NewBuilder()
	}
	if err := builder.Validate(); err != nil {
		return nil, err
	}
	if logger == nil {
		logger = discardLogger()
	}
	return &ModelBot{predictor: p, builder: builder, logger: logger.WithPrefix(NameModel)}, nil
}

func (b *ModelBot) Name() string { return NameModel }

func (b *ModelBot) Decide(state *dynamite.Gamestate) (dynamite.Move, error) {
	var rounds []dynamite.Round
	if state != nil {
		rounds = state.Rounds
	}
	inputs, err := b.builder.Inputs(rounds)
	if err != nil {
		return 0, err
	}
	outputs, err := b.predictor.Predict(inputs)
	if err != nil {
		return 0, err
	}
	scores, err := predictor.Scores(outputs)
	if err != nil {
		return 0, err
	}

	canDynamite := strategy.DynamiteLeft(rounds, dynamite.PlayerOne, b.builder.DynamiteBudget) > 0
	move := SelectMove(scores, canDynamite)
	b.logger.Debug("Decision", "round", len(rounds)+1, "scores", scores, "move", move)
	return move, nil
}

// Close releases the predictor.
func (b *ModelBot) Close() error {
	return b.predictor.Close()
}

// SelectMove returns the move with the highest score. Ties go to the first
// move in canonical order and NaN scores never win, so an all-NaN vector
// picks Rock. Dynamite is skipped when allowDynamite is false.
func SelectMove(scores []float32, allowDynamite bool) dynamite.Move {
	best := dynamite.Rock
	bestScore := math.Inf(-1)
	found := false
	for i, s := range scores {
		if i >= dynamite.NumMoves {
			break
		}
		m := dynamite.Moves[i]
		if m == dynamite.Dynamite && !allowDynamite {
			continue
		}
		v := float64(s)
		if math.IsNaN(v) {
			continue
		}
		if !found || v > bestScore {
			best, bestScore, found = m, v, true
		}
	}
	return best
}
