package dynamite

import (
	"encoding/json"
	"fmt"
	"io"
)

// DecodeGamestate reads a JSON game state in the match runner's format:
//
//	{"rounds":[{"p1":"R","p2":"S"}, ...]}
func DecodeGamestate(r io.Reader) (*Gamestate, error) {
	var state Gamestate
	if err := json.NewDecoder(r).Decode(&state); err != nil {
		return nil, fmt.Errorf("decode gamestate: %w", err)
	}
	if err := Validate(state.Rounds); err != nil {
		return nil, err
	}
	return &state, nil
}

// EncodeGamestate writes state in the same format DecodeGamestate reads.
func EncodeGamestate(w io.Writer, state *Gamestate) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(state)
}
