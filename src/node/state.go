package node

import (
	"sync/atomic"
)

// State captures the lifecycle of a Runner: Handshaking, Running, InputClosed
// or Shutdown.
type State uint32

const (
	// Handshaking is the initial state, until init_ok is written.
	Handshaking State = iota
	// Running delivers events to the node.
	Running
	// InputClosed still delivers injected events, but no more input will
	// arrive.
	InputClosed
	// Shutdown is shutdown
	Shutdown
)

// String ...
func (s State) String() string {
	switch s {
	case Handshaking:
		return "Handshaking"
	case Running:
		return "Running"
	case InputClosed:
		return "InputClosed"
	case Shutdown:
		return "Shutdown"
	default:
		return "Unknown"
	}
}

type state struct {
	state State
}

func (b *state) getState() State {
	stateAddr := (*uint32)(&b.state)
	return State(atomic.LoadUint32(stateAddr))
}

func (b *state) setState(s State) {
	stateAddr := (*uint32)(&b.state)
	atomic.StoreUint32(stateAddr, uint32(s))
}
