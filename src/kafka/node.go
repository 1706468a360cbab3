package kafka

import (
	"github.com/mosaicnetworks/gossamer/src/common"
	"github.com/mosaicnetworks/gossamer/src/message"
	"github.com/mosaicnetworks/gossamer/src/node"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

// Node is a kafka node.
type Node struct {
	store  *Store
	ids    *message.Sequence
	logger *logrus.Entry
}

func New(logger *logrus.Entry) *Node {
	return &Node{
		store:  NewStore(),
		ids:    message.NewSequence(1),
		logger: logger,
	}
}

// NewKind returns the kafka node.Kind.
func NewKind() node.Kind {
	return node.Kind{
		Name:       "kafka",
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
		return n.handle(ev.Message, out)
	case node.EndOfInput:
		n.logger.WithField("keys", n.store.Keys()).Debug("End of input")
		return nil
	default:
		return errors.Errorf("unexpected %s", ev)
	}
}

func (n *Node) handle(e *message.Envelope, out message.Sender) error {
	switch p := e.Body.Payload.(type) {
	case *Send:
		offset := n.store.Append(p.Key, p.Msg)
		return out.Send(e.Reply(n.ids.NextID(), &SendOk{Offset: offset}))

	case *Poll:
		msgs := make(map[string][][2]int, len(p.Offsets))
		for key, from := range p.Offsets {
			entries := n.store.Poll(key, from)
			pairs := make([][2]int, len(entries))
			for i, entry := range entries {
				pairs[i] = [2]int{entry.Offset, entry.Msg}
			}
			msgs[key] = pairs
		}
		return out.Send(e.Reply(n.ids.NextID(), &PollOk{Msgs: msgs}))

	case *CommitOffsets:
		for key, offset := range p.Offsets {
			n.store.Commit(key, offset)
		}
		return out.Send(e.Reply(n.ids.NextID(), &CommitOffsetsOk{}))

	case *ListCommittedOffsets:
		offsets := make(map[string]int, len(p.Keys))
		for _, key := range p.Keys {
			offset, err := n.store.Committed(key)
			if common.IsStore(err, common.KeyNotFound) {
				continue
			}
			if err != nil {
				return err
			}
			offsets[key] = offset
		}
		return out.Send(e.Reply(n.ids.NextID(), &ListCommittedOffsetsOk{Offsets: offsets}))

	case *SendOk, *PollOk, *CommitOffsetsOk, *ListCommittedOffsetsOk:
		return nil

	default:
		return errors.Errorf("unexpected %s", e)
	}
}
