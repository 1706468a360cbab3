package broadcast

import (
	"github.com/mosaicnetworks/gossamer/src/message"
)

// Broadcast adds Message to the set.
type Broadcast struct {
	Message int `codec:"message"`
}

// BroadcastOk acknowledges a Broadcast.
type BroadcastOk struct{}

// Read requests the content of the set.
type Read struct{}

// ReadOk answers a Read with every value of the set, in ascending order.
type ReadOk struct {
	Messages []int `codec:"messages"`
}

// Topology maps every node to its neighbors.
type Topology struct {
	Topology map[string][]string `codec:"topology"`
}

// TopologyOk acknowledges a Topology.
type TopologyOk struct{}

// Gossip carries values between neighbors. It is never acknowledged.
type Gossip struct {
	Seen []int `codec:"seen"`
}

func (*Broadcast) Type() string   { return "broadcast" }
func (*BroadcastOk) Type() string { return "broadcast_ok" }
func (*Read) Type() string        { return "read" }
func (*ReadOk) Type() string      { return "read_ok" }
func (*Topology) Type() string    { return "topology" }
func (*TopologyOk) Type() string  { return "topology_ok" }
func (*Gossip) Type() string      { return "gossip" }

// Vocabulary lists the messages understood by a broadcast node.
var Vocabulary = message.Vocabulary{
	"broadcast":    func() message.Payload { return &Broadcast{} },
	"broadcast_ok": func() message.Payload { return &BroadcastOk{} },
	"read":         func() message.Payload { return &Read{} },
	"read_ok":      func() message.Payload { return &ReadOk{} },
	"topology":     func() message.Payload { return &Topology{} },
	"topology_ok":  func() message.Payload { return &TopologyOk{} },
	"gossip":       func() message.Payload { return &Gossip{} },
}
