package predictor

import (
	"errors"
	"fmt"
)

var (
	// ErrModelLoad is matched by every *ModelLoadError.
	ErrModelLoad = errors.New("model load failed")
	// ErrModelOutput is matched by every *ModelOutputError.
	ErrModelOutput = errors.New("unexpected model output")
)

// ModelLoadError means the predictor could not be acquired. A bot cannot
// play without it.
type ModelLoadError struct {
	Path string
	Err  error
}

func (e *ModelLoadError) Error() string {
	return fmt.Sprintf("load model %s: %v", e.Path, e.Err)
}

func (e *ModelLoadError) Unwrap() error { return e.Err }

func (e *ModelLoadError) Is(target error) bool { return target == ErrModelLoad }

// ModelOutputError means the predictor answered with the wrong name or shape.
type ModelOutputError struct {
	Reason string
}

func (e *ModelOutputError) Error() string {
	return "model output: " + e.Reason
}

func (e *ModelOutputError) Is(target error) bool { return target == ErrModelOutput }
