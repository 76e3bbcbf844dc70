package app

import "fmt"

// State identifies one application screen. The set is closed: every value
// below stateEnd has exactly one ActionBundle in the StateTable.
type State int

const (
	StateMainMenu State = iota
	StateSolidColors
	StateGrayscale
	StateGradients
	StateChessboard
	StateDisplayInfo

	stateEnd
)

// StateCount is the number of application states.
const StateCount = int(stateEnd)

// InitialState is where every Run starts.
const InitialState = StateMainMenu

var stateNames = [StateCount]string{
	StateMainMenu:    "main-menu",
	StateSolidColors: "solid-colors",
	StateGrayscale:   "grayscale",
	StateGradients:   "gradients",
	StateChessboard:  "chessboard",
	StateDisplayInfo: "display-info",
}

func (s State) Valid() bool { return s >= 0 && s < stateEnd }

func (s State) String() string {
	if !s.Valid() {
		return fmt.Sprintf("state(%d)", int(s))
	}
	return stateNames[s]
}

// States lists every state in table order.
func States() []State {
	out := make([]State, StateCount)
	for i := range out {
		out[i] = State(i)
	}
	return out
}
