package predictor

import (
	"fmt"
	"os"
	"sync"

	"github.com/lox/dynamitebots/dynamite"
	ort "github.com/yalue/onnxruntime_go"
)

// ONNXConfig describes an exported model and the runtime library to load it with.
type ONNXConfig struct {
	ModelPath   string
	LibraryPath string // onnxruntime shared library; empty uses the platform default
	WindowSize  int
	HistoryDim  int
	StateDim    int
}

// ONNX runs an exported model through ONNX Runtime. Input and output tensors
// are allocated once and reused for every prediction.
type ONNX struct {
	mu      sync.Mutex
	session *ort.AdvancedSession
	history *ort.Tensor[float32]
	state   *ort.Tensor[float32]
	output  *ort.Tensor[float32]
}

var ortInit sync.Mutex

func initRuntime(libPath string) error {
	ortInit.Lock()
	defer ortInit.Unlock()
	if ort.IsInitialized() {
		return nil
	}
	if libPath != "" {
		ort.SetSharedLibraryPath(libPath)
	}
	return ort.InitializeEnvironment()
}

// LoadONNX opens the model described by cfg. Every failure is a *ModelLoadError.
func LoadONNX(cfg ONNXConfig) (*ONNX, error) {
	fail := func(err error) (*ONNX, error) {
		return nil, &ModelLoadError{Path: cfg.ModelPath, Err: err}
	}
	if cfg.WindowSize <= 0 || cfg.HistoryDim <= 0 || cfg.StateDim <= 0 {
		return fail(fmt.Errorf("invalid input dimensions window=%d history=%d state=%d",
			cfg.WindowSize, cfg.HistoryDim, cfg.StateDim))
	}
	if _, err := os.Stat(cfg.ModelPath); err != nil {
		return fail(err)
	}
	if cfg.LibraryPath != "" {
		if _, err := os.Stat(cfg.LibraryPath); err != nil {
			return fail(fmt.Errorf("onnxruntime library: %w", err))
		}
	}
	if err := initRuntime(cfg.LibraryPath); err != nil {
		return fail(fmt.Errorf("initialise onnxruntime: %w", err))
	}

	o := &ONNX{}
	var err error
	o.history, err = ort.NewEmptyTensor[float32](ort.NewShape(1, int64(cfg.WindowSize), int64(cfg.HistoryDim)))
	if err != nil {
		return fail(fmt.Errorf("history tensor: %w", err))
	}
	o.state, err = ort.NewEmptyTensor[float32](ort.NewShape(1, int64(cfg.StateDim)))
	if err != nil {
		o.Close()
		return fail(fmt.Errorf("state tensor: %w", err))
	}
	o.output, err = ort.NewEmptyTensor[float32](ort.NewShape(1, dynamite.NumMoves))
	if err != nil {
		o.Close()
		return fail(fmt.Errorf("output tensor: %w", err))
	}

	o.session, err = ort.NewAdvancedSession(cfg.ModelPath,
		[]string{HistoryInput, StateInput}, []string{Output},
		[]ort.Value{o.history, o.state}, []ort.Value{o.output}, nil)
	if err != nil {
		o.Close()
		return fail(fmt.Errorf("create session: %w", err))
	}
	return o, nil
}

func (o *ONNX) Predict(inputs map[string]Tensor) (map[string]Tensor, error) {
	history, err := requireInput(inputs, HistoryInput)
	if err != nil {
		return nil, err
	}
	state, err := requireInput(inputs, StateInput)
	if err != nil {
		return nil, err
	}

	o.mu.Lock()
	defer o.mu.Unlock()
	if o.session == nil {
		return nil, fmt.Errorf("onnx predictor is closed")
	}
	if len(history.Data) != len(o.history.GetData()) {
		return nil, fmt.Errorf("history input has %d values, model expects %d", len(history.Data), len(o.history.GetData()))
	}
	if len(state.Data) != len(o.state.GetData()) {
		return nil, fmt.Errorf("state input has %d values, model expects %d", len(state.Data), len(o.state.GetData()))
	}
	copy(o.history.GetData(), history.Data)
	copy(o.state.GetData(), state.Data)

	if err := o.session.Run(); err != nil {
		return nil, fmt.Errorf("run onnx session: %w", err)
	}

	scores := make([]float32, len(o.output.GetData()))
	copy(scores, o.output.GetData())
	return map[string]Tensor{Output: NewTensor(scores, 1, int64(len(scores)))}, nil
}

// Close releases the session and tensors. It is safe to call more than once.
func (o *ONNX) Close() error {
	o.mu.Lock()
	defer o.mu.Unlock()
	var firstErr error
	if o.session != nil {
		firstErr = o.session.Destroy()
		o.session = nil
	}
	for _, t := range []*ort.Tensor[float32]{o.history, o.state, o.output} {
		if t == nil {
			continue
		}
		if err := t.Destroy(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	o.history, o.state, o.output = nil, nil, nil
	return firstErr
}
