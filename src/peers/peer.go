package peers

// Peer is a node of the cluster.
type Peer struct {
	ID string
}

// NewPeer returns the Peer identified by id.
func NewPeer(id string) *Peer {
	return &Peer{ID: id}
}
