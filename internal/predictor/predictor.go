// Package predictor defines the capability the model-driven bot depends on:
// named float tensors in, a per-move score vector out. Backends wrap ONNX
// Runtime or a go-deep network; tests use Func.
package predictor

import (
	"fmt"

	"github.com/lox/dynamitebots/dynamite"
)

// Stable tensor names shared with the exported model.
const (
	HistoryInput = "history_input"
	StateInput   = "state_input"
	Output       = "output"
)

// Tensor is a dense float32 tensor in row-major order.
type Tensor struct {
	Shape []int64
	Data  []float32
}

// NewTensor wraps data with the given shape.
func NewTensor(data []float32, shape ...int64) Tensor {
	return Tensor{Shape: shape, Data: data}
}

// Size is the element count implied by Shape.
func (t Tensor) Size() int64 {
	if len(t.Shape) == 0 {
		return 0
	}
	n := int64(1)
	for _, d := range t.Shape {
		n *= d
	}
	return n
}

// Validate checks that Data holds exactly Size elements.
func (t Tensor) Validate() error {
	if int64(len(t.Data)) != t.Size() {
		return fmt.Errorf("tensor shape %v needs %d values, got %d", t.Shape, t.Size(), len(t.Data))
	}
	return nil
}

// SameShape reports whether t and o have identical shapes.
func (t Tensor) SameShape(o Tensor) bool {
	if len(t.Shape) != len(o.Shape) {
		return false
	}
	for i := range t.Shape {
		if t.Shape[i] != o.Shape[i] {
			return false
		}
	}
	return true
}

// Predictor runs a model over named inputs. Implementations hold their
// runtime resources until Close.
type Predictor interface {
	Predict(inputs map[string]Tensor) (map[string]Tensor, error)
	Close() error
}

// Func adapts a function into a Predictor with a no-op Close.
type Func func(inputs map[string]Tensor) (map[string]Tensor, error)

func (f Func) Predict(inputs map[string]Tensor) (map[string]Tensor, error) {
	return f(inputs)
}

func (Func) Close() error { return nil }

// Constant returns a predictor that always answers with scores.
func Constant(scores ...float32) Func {
	return func(map[string]Tensor) (map[string]Tensor, error) {
		out := make([]float32, len(scores))
		copy(out, scores)
		return map[string]Tensor{Output: NewTensor(out, 1, int64(len(out)))}, nil
	}
}

// Scores extracts the per-move score vector from a prediction. The output
// must be named Output and hold exactly one score per move.
func Scores(outputs map[string]Tensor) ([]float32, error) {
	out, ok := outputs[Output]
	if !ok {
		return nil, &ModelOutputError{Reason: fmt.Sprintf("missing output %q", Output)}
	}
	if len(out.Data) != dynamite.NumMoves {
		return nil, &ModelOutputError{Reason: fmt.Sprintf("expected %d scores, got %d", dynamite.NumMoves, len(out.Data))}
	}
	if len(out.Shape) > 0 && out.Size() != int64(len(out.Data)) {
		return nil, &ModelOutputError{Reason: fmt.Sprintf("output shape %v does not match %d values", out.Shape, len(out.Data))}
	}
	return out.Data, nil
}

func requireInput(inputs map[string]Tensor, name string) (Tensor, error) {
	t, ok := inputs[name]
	if !ok {
		return Tensor{}, fmt.Errorf("missing input %q", name)
	}
	if err := t.Validate(); err != nil {
		return Tensor{}, fmt.Errorf("input %q: %w", name, err)
	}
	return t, nil
}
