package broadcast

import (
	"github.com/mosaicnetworks/gossamer/src/message"
	"github.com/mosaicnetworks/gossamer/src/node"
	"github.com/mosaicnetworks/gossamer/src/peers"
	"github.com/mosaicnetworks/gossamer/src/telemetry"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

// GossipTick is injected by the gossip timer.
const GossipTick node.Signal = "gossip"

// Node is a broadcast node. It is driven by a node.Runner and is not safe for
// concurrent use.
type Node struct {
	conf   Config
	self   string
	peers  *peers.PeerSet
	rand   Rand
	ids    *message.Sequence
	logger *logrus.Entry

	// messages is the local copy of the set.
	messages intSet

	// known[p] holds the values that peer p is known to hold. There is an
	// entry for every peer of the roster.
	known map[string]intSet

	// neighborhood is the row of self in the last topology received.
	neighborhood []string
}

// New returns a broadcast node for the cluster described by init. It does not
// start the gossip timer.
func New(conf *Config, init *message.Init, logger *logrus.Entry) *Node {
	roster := peers.NewPeerSetFromIDs(init.NodeIDs)

	known := make(map[string]intSet, roster.Len())
	for _, id := range roster.IDs() {
		known[id] = intSet{}
	}

	return &Node{
		conf:     *conf,
		self:     init.NodeID,
		peers:    roster,
		rand:     conf.rand(),
		ids:      message.NewSequence(1),
		logger:   logger,
		messages: intSet{},
		known:    known,
	}
}

// NewKind returns the broadcast node.Kind. Its nodes run a gossip timer with
// the period of conf.
func NewKind(conf *Config) node.Kind {
	return node.Kind{
		Name:       "broadcast",
		Vocabulary: Vocabulary,
		New: func(init *message.Init, injector node.Injector, logger *logrus.Entry) (node.Node, error) {
			n := New(conf, init, logger)
			go node.NewControlTimer(injector, GossipTick).Run(conf.GossipInterval)
			return n, nil
		},
	}
}

// Step implements the node.Node interface.
func (n *Node) Step(ev node.Event, out message.Sender) error {
	switch ev.Kind {
	case node.Inbound:
		return n.handle(ev.Message, out)
	case node.Injected:
		if ev.Signal != GossipTick {
			return errors.Errorf("unexpected signal %q", ev.Signal)
		}
		return n.gossip(out)
	case node.EndOfInput:
		// The timer keeps running until the process is terminated.
		n.logger.WithField("values", len(n.messages)).Debug("End of input")
	}
	return nil
}

func (n *Node) handle(e *message.Envelope, out message.Sender) error {
	switch p := e.Body.Payload.(type) {
	case *Broadcast:
		n.messages.add(p.Message)
		telemetry.BroadcastValues.Set(float64(len(n.messages)))
		return out.Send(e.Reply(n.ids.NextID(), &BroadcastOk{}))

	case *Read:
		return out.Send(e.Reply(n.ids.NextID(), &ReadOk{Messages: n.messages.sorted()}))

	case *Topology:
		neighborhood, err := n.peers.Neighborhood(p.Topology, n.self)
		if err != nil {
			return errors.Wrap(err, "topology")
		}
		n.neighborhood = neighborhood
		n.logger.WithField("neighbors", neighborhood).Debug("Topology")
		return out.Send(e.Reply(n.ids.NextID(), &TopologyOk{}))

	case *Gossip:
		known, ok := n.known[e.Source]
		if !ok {
			return errors.Errorf("gossip from unknown node %s", e.Source)
		}
		known.addAll(p.Seen)
		n.messages.addAll(p.Seen)
		telemetry.BroadcastValues.Set(float64(len(n.messages)))
		return nil

	case *BroadcastOk, *ReadOk, *TopologyOk:
		return nil

	default:
		return errors.Errorf("unexpected %s", e)
	}
}
