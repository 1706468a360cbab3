// Package broadcast implements a node replicating a grow-only set of integers
// across the cluster.
//
// Clients add values with broadcast and read the local copy of the set with
// read. Values spread between neighbors through periodic gossip. There are no
// acknowledgements: instead, every node remembers, for each peer, which values
// that peer is known to hold, and only tells a neighbor about values it is not
// known to hold. A peer becomes known to hold a value when it gossips that
// value to us.
//
// Since a neighbor that received our values does not echo them back unless it
// learns about new ones, each gossip also carries a small random sample of
// values the neighbor is already known to hold. That redundancy, 10% of the
// new values by default, lets peers discover what we hold without flooding.
// Gossip is lost silently during partitions and resent on every tick until the
// neighbor confirms it, so the set converges on every connected topology once
// the network heals.
package broadcast
