package node

import (
	"fmt"

	"github.com/mosaicnetworks/gossamer/src/message"
)

// EventKind distinguishes the events delivered to a Node.
type EventKind uint8

const (
	// Inbound carries a message decoded from the input.
	Inbound EventKind = iota
	// Injected carries a Signal pushed by the node's own producers.
	Injected
	// EndOfInput is delivered once, after the last Inbound event.
	EndOfInput
	// failure carries a fatal error from a producer. It never reaches a Node.
	failure
)

func (k EventKind) String() string {
	switch k {
	case Inbound:
		return "inbound"
	case Injected:
		return "injected"
	case EndOfInput:
		return "end_of_input"
	case failure:
		return "failure"
	default:
		return "unknown"
	}
}

// Signal is a self-originated event, injected by a node into its own queue.
type Signal string

// Event is the unit of work delivered to Node.Step.
type Event struct {
	Kind    EventKind
	Message *message.Envelope
	Signal  Signal

	err error
}

// InboundEvent wraps a decoded message.
func InboundEvent(e *message.Envelope) Event {
	return Event{Kind: Inbound, Message: e}
}

// InjectedEvent wraps a signal.
func InjectedEvent(s Signal) Event {
	return Event{Kind: Injected, Signal: s}
}

// EndOfInputEvent marks the end of the input stream.
func EndOfInputEvent() Event {
	return Event{Kind: EndOfInput}
}

func failureEvent(err error) Event {
	return Event{Kind: failure, err: err}
}

func (ev Event) String() string {
	switch ev.Kind {
	case Inbound:
		return fmt.Sprintf("%s %s", ev.Kind, ev.Message)
	case Injected:
		return fmt.Sprintf("%s %s", ev.Kind, ev.Signal)
	default:
		return ev.Kind.String()
	}
}
