// Package node implements the runtime that drives a Gossamer node.
//
// A node talks to the rest of the cluster through a single line-oriented input
// stream and a single output stream, both owned by an external harness. The
// runtime turns that stream into an ordered sequence of events and hands them,
// one at a time, to the node logic.
//
// # Handshake
//
// The first line of input must be an init message naming the node and listing
// every node in the cluster. The runtime replies with init_ok, then builds the
// node through the Factory of the selected Kind. Nothing else runs until the
// handshake is over, so node construction never races with input.
//
// # Events
//
// After the handshake, events come from independent producers feeding one
// unbounded queue:
//
//   - the input producer decodes every following line into an Inbound event,
//     and pushes a single EndOfInput event when the input is closed;
//   - nodes may start their own producers, typically a ControlTimer that
//     injects a Signal at a fixed period through the Injector handed to the
//     Factory.
//
// The queue is FIFO for every producer but does not order events of different
// producers beyond their arrival. A single goroutine pops events and calls
// Node.Step for each of them. Step is never called concurrently, so node state
// needs no locking, and all output goes through that same goroutine.
//
// # Lifecycle
//
// Producers have no cancellation signal: they stop the first time they fail
// to push into the queue, which only happens once the queue is closed. The
// consumer does not stop at EndOfInput either. The harness ends the process
// when it is done with it. Shutdown exists for embedding a Runner in tests or
// in another process, and is never called by the gossamer binary.
//
// # Errors
//
// Any error returned by Step, any malformed input line and any failed write is
// fatal: Run returns it and the caller is expected to exit.
package node
