// Package uniqueids implements a node handing out cluster-wide unique ids
// without coordination. An id is the node id followed by a message id of that
// node, which is never reused.
package uniqueids

import (
	"fmt"

	"github.com/mosaicnetworks/gossamer/src/message"
	"github.com/mosaicnetworks/gossamer/src/node"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

type Generate struct{}

type GenerateOk struct {
	ID string `codec:"id"`
}

func (*Generate) Type() string   { return "generate" }
func (*GenerateOk) Type() string { return "generate_ok" }

// Vocabulary lists the messages understood by a unique-ids node.
var Vocabulary = message.Vocabulary{
	"generate":    func() message.Payload { return &Generate{} },
	"generate_ok": func() message.Payload { return &GenerateOk{} },
}

// Node is a unique-ids node.
type Node struct {
	self      string
	ids       *message.Sequence
	generated int
	logger    *logrus.Entry
}

func New(self string, logger *logrus.Entry) *Node {
	return &Node{
		self:   self,
		ids:    message.NewSequence(1),
		logger: logger,
	}
}

// NewKind returns the unique-ids node.Kind.
func NewKind() node.Kind {
	return node.Kind{
		Name:       "unique-ids",
		Vocabulary: Vocabulary,
		New: func(init *message.Init, injector node.Injector, logger *logrus.Entry) (node.Node, error) {
			return New(init.NodeID, logger), nil
		},
	}
}

// Step implements the node.Node interface.
func (n *Node) Step(ev node.Event, out message.Sender) error {
	switch ev.Kind {
	case node.Inbound:
	case node.EndOfInput:
		n.logger.WithField("generated", n.generated).Debug("End of input")
		return nil
	default:
		return errors.Errorf("unexpected %s", ev)
	}

	e := ev.Message
	switch e.Body.Payload.(type) {
	case *Generate:
		id := n.ids.Next()
		n.generated++
		return out.Send(e.Reply(message.ID(id), &GenerateOk{ID: fmt.Sprintf("%s-%d", n.self, id)}))
	case *GenerateOk:
		return nil
	default:
		return errors.Errorf("unexpected %s", e)
	}
}
