package node

import (
	"github.com/mosaicnetworks/gossamer/src/message"
	"github.com/sirupsen/logrus"
)

// Node is the decision logic of a node kind. Step is called once per event, by
// a single goroutine, in the order events were queued. Messages are emitted
// through out. Any error returned by Step is fatal.
type Node interface {
	Step(ev Event, out message.Sender) error
}

// Factory builds a Node once the handshake is over. The injector lets the node
// start its own event producers; logger is already scoped to the node id.
type Factory func(init *message.Init, injector Injector, logger *logrus.Entry) (Node, error)

// Kind is a node kind selectable at process start.
type Kind struct {
	// Name identifies the kind on the command line.
	Name string

	// Vocabulary lists the payloads the kind accepts after the handshake.
	Vocabulary message.Vocabulary

	New Factory
}
