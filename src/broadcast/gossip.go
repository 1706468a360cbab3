package broadcast

import (
	"sort"

	"github.com/mosaicnetworks/gossamer/src/message"
	"github.com/mosaicnetworks/gossamer/src/telemetry"
	"github.com/pkg/errors"
)

// gossip sends one gossip message to every neighbor. Before the first
// topology there are no neighbors and nothing is sent.
func (n *Node) gossip(out message.Sender) error {
	if len(n.neighborhood) == 0 {
		return nil
	}

	values := n.messages.sorted()

	for _, peer := range n.neighborhood {
		seen := n.selectFor(peer, values)

		e := &message.Envelope{
			Source:      n.self,
			Destination: peer,
			Body:        message.Body{Payload: &Gossip{Seen: seen}},
		}
		if err := out.Send(e); err != nil {
			return errors.Wrapf(err, "gossip to %s", peer)
		}
		telemetry.GossipValuesSentTotal.Add(float64(len(seen)))
	}

	return nil
}

// selectFor returns the values to gossip to peer: every value peer is not
// known to hold, plus a random sample of the values it is known to hold. Each
// known value is picked with probability budget/len(alreadyKnown), where the
// budget is Redundancy percent of the new values, capped at the number of
// known values. values must be sorted so that the sampling only depends on
// the Rand.
func (n *Node) selectFor(peer string, values []int) []int {
	known := n.known[peer]

	notifyOf := make([]int, 0, len(values))
	var alreadyKnown []int
	for _, v := range values {
		if known.contains(v) {
			alreadyKnown = append(alreadyKnown, v)
		} else {
			notifyOf = append(notifyOf, v)
		}
	}

	budget := n.conf.Redundancy * len(notifyOf) / 100
	if budget > len(alreadyKnown) {
		budget = len(alreadyKnown)
	}
	if budget <= 0 {
		return notifyOf
	}

	for _, v := range alreadyKnown {
		if n.rand.Intn(len(alreadyKnown)) < budget {
			notifyOf = append(notifyOf, v)
		}
	}
	sort.Ints(notifyOf)

	return notifyOf
}
