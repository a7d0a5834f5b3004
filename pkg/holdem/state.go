package holdem

import "encoding/json"

// State represents the stage of the current hand
type State int

// constants for State
const (
	StateWaiting State = iota
	StatePreflop
	StateFlop
	StateTurn
	StateRiver
	StateShowdown
	StateFinished
)

func (s State) String() string {
	switch s {
	case StateWaiting:
		return "waiting"
	case StatePreflop:
		return "preflop"
	case StateFlop:
		return "flop"
	case StateTurn:
		return "turn"
	case StateRiver:
		return "river"
	case StateShowdown:
		return "showdown"
	case StateFinished:
		return "finished"
	}

	return ""
}

// MarshalJSON encodes JSON
func (s State) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		ID   int    `json:"id"`
		Name string `json:"name"`
	}{
		ID:   int(s),
		Name: s.String(),
	})
}
