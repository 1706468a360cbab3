package peers

import (
	"sort"

	"github.com/pkg/errors"
)

// PeerSet is the roster of a cluster.
type PeerSet struct {
	Peers []*Peer
	ByID  map[string]*Peer
}

// NewPeerSet creates a new PeerSet from a list of Peers. Duplicate ids are
// collapsed.
func NewPeerSet(peers []*Peer) *PeerSet {
	peerSet := &PeerSet{
		ByID: make(map[string]*Peer),
	}

	for _, peer := range peers {
		if _, ok := peerSet.ByID[peer.ID]; ok {
			continue
		}
		peerSet.ByID[peer.ID] = peer
		peerSet.Peers = append(peerSet.Peers, peer)
	}

	return peerSet
}

// NewPeerSetFromIDs creates a PeerSet from the node ids listed in init.
func NewPeerSetFromIDs(ids []string) *PeerSet {
	peers := make([]*Peer, 0, len(ids))
	for _, id := range ids {
		peers = append(peers, NewPeer(id))
	}
	return NewPeerSet(peers)
}

// IDs returns the ids of the PeerSet, in roster order.
func (peerSet *PeerSet) IDs() []string {
	res := make([]string, 0, len(peerSet.Peers))
	for _, peer := range peerSet.Peers {
		res = append(res, peer.ID)
	}
	return res
}

// Contains reports whether id belongs to the PeerSet.
func (peerSet *PeerSet) Contains(id string) bool {
	_, ok := peerSet.ByID[id]
	return ok
}

// Len returns the number of Peers in the PeerSet
func (peerSet *PeerSet) Len() int {
	return len(peerSet.Peers)
}

// Neighborhood extracts the row of self from topology. The row must exist and
// every neighbor must belong to the PeerSet. Self and duplicates are dropped
// from the result, which keeps the order of the row.
func (peerSet *PeerSet) Neighborhood(topology map[string][]string, self string) ([]string, error) {
	row, ok := topology[self]
	if !ok {
		return nil, errors.Errorf("no topology given for node %s (rows: %v)", self, rows(topology))
	}

	res := make([]string, 0, len(row))
	seen := make(map[string]bool, len(row))
	for _, n := range row {
		if !peerSet.Contains(n) {
			return nil, errors.Errorf("neighbor %s of %s is not a known peer", n, self)
		}
		if n == self || seen[n] {
			continue
		}
		seen[n] = true
		res = append(res, n)
	}

	return res, nil
}

func rows(topology map[string][]string) []string {
	res := make([]string, 0, len(topology))
	for id := range topology {
		res = append(res, id)
	}
	sort.Strings(res)
	return res
}
