// Package echo implements a node that sends every echo message back to its
// sender.
package echo

import (
	"github.com/mosaicnetworks/gossamer/src/message"
	"github.com/mosaicnetworks/gossamer/src/node"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

// Echo requests an EchoOk carrying the same text.
type Echo struct {
	Echo string `codec:"echo"`
}

type EchoOk struct {
	Echo string `codec:"echo"`
}

func (*Echo) Type() string   { return "echo" }
func (*EchoOk) Type() string { return "echo_ok" }

// Vocabulary lists the messages understood by an echo node.
var Vocabulary = message.Vocabulary{
	"echo":    func() message.Payload { return &Echo{} },
	"echo_ok": func() message.Payload { return &EchoOk{} },
}

// Node is an echo node.
type Node struct {
	ids    *message.Sequence
	logger *logrus.Entry
}

// New returns an echo node.
func New(logger *logrus.Entry) *Node {
	return &Node{
		ids:    message.NewSequence(1),
		logger: logger,
	}
}

// NewKind returns the echo node.Kind.
func NewKind() node.Kind {
	return node.Kind{
		Name:       "echo",
		Vocabulary: Vocabulary,
		New: func(init *message.Init, injector node.Injector, logger *logrus.Entry) (node.Node, error) {
			return New(logger), nil
		},
	}
}

// Step implements the node.Node interface.
func (n *Node) Step(ev node.Event, out message.Sender) error {
	switch ev.Kind {
	case node.Inbound:
	case node.EndOfInput:
		return nil
	default:
		return errors.Errorf("unexpected %s", ev)
	}

	e := ev.Message
	switch p := e.Body.Payload.(type) {
	case *Echo:
		return out.Send(e.Reply(n.ids.NextID(), &EchoOk{Echo: p.Echo}))
	case *EchoOk:
		return nil
	default:
		return errors.Errorf("unexpected %s", e)
	}
}
