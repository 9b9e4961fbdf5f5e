package predictor

import (
	"fmt"
	"os"

	deep "github.com/patrikeh/go-deep"
)

// Network scores moves with a go-deep feed-forward network. The input vector
// is the flattened history window followed by the state features.
type Network struct {
	net *deep.Neural
}

// NewNetwork wraps an in-memory network.
func NewNetwork(net *deep.Neural) *Network {
	return &Network{net: net}
}

// LoadNetwork reads a network serialised with (*deep.Neural).Marshal.
func LoadNetwork(path string) (*Network, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &ModelLoadError{Path: path, Err: err}
	}
	net, err := deep.Unmarshal(data)
	if err != nil {
		return nil, &ModelLoadError{Path: path, Err: fmt.Errorf("decode network: %w", err)}
	}
	return &Network{net: net}, nil
}

// Inputs is the length of the vector the network expects.
func (n *Network) Inputs() int {
	return n.net.Config.Inputs
}

func (n *Network) Predict(inputs map[string]Tensor) (map[string]Tensor, error) {
	history, err := requireInput(inputs, HistoryInput)
	if err != nil {
		return nil, err
	}
	state, err := requireInput(inputs, StateInput)
	if err != nil {
		return nil, err
	}

	x := make([]float64, 0, len(history.Data)+len(state.Data))
	for _, v := range history.Data {
		x = append(x, float64(v))
	}
	for _, v := range state.Data {
		x = append(x, float64(v))
	}
	if len(x) != n.Inputs() {
		return nil, fmt.Errorf("network expects %d inputs, got %d", n.Inputs(), len(x))
	}

	y := n.net.Predict(x)
	scores := make([]float32, len(y))
	for i, v := range y {
		scores[i] = float32(v)
	}
	return map[string]Tensor{Output: NewTensor(scores, 1, int64(len(scores)))}, nil
}

func (n *Network) Close() error { return nil }
