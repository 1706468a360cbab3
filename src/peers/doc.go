// Package peers manages the roster of a Gossamer cluster and the topology laid
// over it.
//
// The roster is the list of node ids received in init. It is fixed for the
// lifetime of a node; nodes never join or leave. Clients of the cluster talk to
// nodes too, but they are not peers and never appear in the roster.
//
// The topology is chosen by the harness and delivered to every node in a
// topology message. A node keeps only its own row, its neighborhood, which is
// the list of peers it gossips with.
package peers
