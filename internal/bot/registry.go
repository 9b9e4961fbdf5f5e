package bot

import (
	"fmt"
	"sort"

	"github.com/charmbracelet/log"
	"github.com/lox/dynamitebots/internal/predictor"
	"github.com/lox/dynamitebots/internal/randutil"
	"github.com/lox/dynamitebots/internal/snapshot"
	"github.com/lox/dynamitebots/internal/strategy"
)

// Registered bot names.
const (
	NameRandom          = "random"
	NameWinProb         = "winprob"
	NameWeightedWinProb = "weighted-winprob"
	NameModel           = "model"
)

// Options carries everything the registry needs to build any bot.
type Options struct {
	Seed           int64
	DynamiteBudget int
	ResearchUntil  int
	Weights        strategy.Weights
	Logger         *log.Logger

	ModelKind   string
	ModelPath   string
	LibraryPath string
	WindowSize  int

	// Predictor, when set, is used instead of loading ModelPath.
	Predictor predictor.Predictor
}

// DefaultOptions mirrors the built-in configuration defaults.
func DefaultOptions() Options {
	return Options{
		DynamiteBudget: strategy.DefaultDynamiteBudget,
		ResearchUntil:  strategy.DefaultResearchUntil,
		Weights:        strategy.ConservativeWeights,
		ModelKind:      predictor.KindONNX,
		WindowSize:     snapshot.DefaultWindowSize,
	}
}

type factory func(Options) (Bot, error)

var registry = map[string]factory{
	NameRandom: func(o Options) (Bot, error) {
		return asBot(NewRandBot(randutil.New(o.Seed), o.DynamiteBudget, o.Logger))
	},
	NameWinProb: func(o Options) (Bot, error) {
		return asBot(NewWinProbBot(randutil.New(o.Seed), o.DynamiteBudget, o.ResearchUntil, o.Logger))
	},
	NameWeightedWinProb: func(o Options) (Bot, error) {
		return asBot(NewWeightedWinProbBot(randutil.New(o.Seed), WinProbConfig{
			ResearchUntil:  o.ResearchUntil,
			Weights:        o.Weights,
			DynamiteBudget: o.DynamiteBudget,
		}, o.Logger))
	},
	NameModel: newModelBotFromOptions,
}

func newModelBotFromOptions(o Options) (Bot, error) {
	builder := &snapshot.Builder{WindowSize: o.WindowSize, DynamiteBudget: o.DynamiteBudget}
	if err := builder.Validate(); err != nil {
		return nil, err
	}
	p := o.Predictor
	if p == nil {
		var err error
		p, err = predictor.Open(o.ModelKind, predictor.ONNXConfig{
			ModelPath:   o.ModelPath,
			LibraryPath: o.LibraryPath,
			WindowSize:  o.WindowSize,
			HistoryDim:  snapshot.HistoryFeatureDim,
			StateDim:    snapshot.StateFeatureDim,
		})
		if err != nil {
			return nil, err
		}
	}
	b, err := NewModelBot(p, builder, o.Logger)
	if err != nil {
		p.Close()
		return nil, err
	}
	return b, nil
}

// asBot keeps a failed constructor from leaking a typed nil into Bot.
func asBot[T Bot](b T, err error) (Bot, error) {
	if err != nil {
		return nil, err
	}
	return b, nil
}

// New builds the named bot.
func New(name string, opts Options) (Bot, error) {
	f, ok := registry[name]
	if !ok {
		return nil, fmt.Errorf("unknown bot %q (available: %v)", name, Names())
	}
	if opts.Logger == nil {
		opts.Logger = discardLogger()
	}
	return f(opts)
}

// Names lists the registered bots in sorted order.
func Names() []string {
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
