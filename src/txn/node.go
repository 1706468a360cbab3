package txn

import (
	"github.com/mosaicnetworks/gossamer/src/message"
	"github.com/mosaicnetworks/gossamer/src/node"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

// Node is a txn node.
type Node struct {
	store  *Store
	ids    *message.Sequence
	logger *logrus.Entry
}

func New(logger *logrus.Entry) (*Node, error) {
	store, err := NewStore()
	if err != nil {
		return nil, err
	}
	return &Node{
		store:  store,
		ids:    message.NewSequence(1),
		logger: logger,
	}, nil
}

// NewKind returns the txn node.Kind.
func NewKind() node.Kind {
	return node.Kind{
		Name:       "txn",
		Vocabulary: Vocabulary,
		New: func(init *message.Init, injector node.Injector, logger *logrus.Entry) (node.Node, error) {
			return New(logger)
		},
	}
}

// Step implements the node.Node interface. A transaction that cannot be
// applied is a protocol violation and is fatal.
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
	case *Txn:
		res, err := n.store.Apply(p.Txn)
		if err != nil {
			return errors.Wrapf(err, "applying txn %v", p.Txn)
		}
		n.logger.WithField("ops", len(res)).Debug("Txn")
		return out.Send(e.Reply(n.ids.NextID(), &TxnOk{Txn: res}))
	case *TxnOk:
		return nil
	default:
		return errors.Errorf("unexpected %s", e)
	}
}
