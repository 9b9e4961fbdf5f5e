package predictor

import "fmt"

// Backend names accepted by Open.
const (
	KindONNX = "onnx"
	KindDeep = "deep"
)

// Open loads a predictor of the given kind. Unknown kinds are load errors.
func Open(kind string, cfg ONNXConfig) (Predictor, error) {
	switch kind {
	case KindONNX, "":
		p, err := LoadONNX(cfg)
		if err != nil {
			return nil, err
		}
		return p, nil
	case KindDeep:
		p, err := LoadNetwork(cfg.ModelPath)
		if err != nil {
			return nil, err
		}
		return p, nil
	default:
		return nil, &ModelLoadError{Path: cfg.ModelPath, Err: fmt.Errorf("unknown predictor kind %q", kind)}
	}
}
