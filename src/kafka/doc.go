// Package kafka implements a node serving append-only logs, one per key.
//
// Every message sent to a log gets an offset. Offsets come from a single
// counter shared by every key, so they increase within a log but are not
// contiguous. Consumers poll logs from a given offset and commit the offset up
// to which they processed a log.
package kafka
