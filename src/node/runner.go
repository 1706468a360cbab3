package node

import (
	"io"
	"strconv"
	"sync"
	"sync/atomic"
	"time"

	"github.com/mosaicnetworks/gossamer/src/message"
	"github.com/mosaicnetworks/gossamer/src/telemetry"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

// Runner drives a single node of a given Kind over an input and an output
// stream.
type Runner struct {
	state

	kind   Kind
	in     io.Reader
	out    message.Sender
	logger *logrus.Entry

	queue        *mailbox
	shutdownCh   chan struct{}
	shutdownOnce sync.Once

	start  time.Time
	events uint64
	nodeID atomic.Value
}

// NewRunner returns a Runner for kind, reading records from in and writing
// records to out.
func NewRunner(kind Kind, in io.Reader, out io.Writer, logger *logrus.Entry) *Runner {
	return &Runner{
		kind:       kind,
		in:         in,
		out:        &meteredSender{next: message.NewEncoder(out)},
		logger:     logger.WithField("kind", kind.Name),
		queue:      newMailbox(),
		shutdownCh: make(chan struct{}),
		start:      time.Now(),
	}
}

// Run performs the handshake then delivers events to the node until a fatal
// error occurs or Shutdown is called. It does not return at the end of the
// input.
func (r *Runner) Run() error {
	defer r.Shutdown()

	dec := message.NewDecoder(r.in)

	n, logger, err := r.handshake(dec)
	if err != nil {
		return err
	}

	r.setState(Running)
	logger.Debug("Running")

	go r.readInput(dec)

	return r.loop(n, logger)
}

func (r *Runner) loop(n Node, logger *logrus.Entry) error {
	for {
		ev, ok := r.queue.pop(r.shutdownCh)
		if !ok {
			return nil
		}
		if ev.Kind == failure {
			return ev.err
		}

		telemetry.EventsTotal.WithLabelValues(ev.Kind.String()).Inc()
		atomic.AddUint64(&r.events, 1)

		start := time.Now()
		if err := n.Step(ev, r.out); err != nil {
			return errors.Wrapf(err, "processing %s", ev)
		}
		telemetry.StepDuration.Observe(time.Since(start).Seconds())

		if ev.Kind == EndOfInput {
			r.setState(InputClosed)
			logger.Debug("End of input, waiting for termination")
		}
	}
}

// readInput is the input producer. It stops at the end of the input, on the
// first decoding error, or when the queue is closed.
func (r *Runner) readInput(dec *message.Decoder) {
	for {
		e, err := dec.Decode(r.kind.Vocabulary)
		if err == io.EOF {
			r.queue.push(EndOfInputEvent())
			return
		}
		if err != nil {
			r.queue.push(failureEvent(errors.Wrap(err, "reading input")))
			return
		}
		if !r.queue.push(InboundEvent(e)) {
			return
		}
	}
}

// Shutdown closes the event queue, which stops every producer the next time
// it pushes, and makes Run return. It does not interrupt a pending handshake.
func (r *Runner) Shutdown() {
	r.shutdownOnce.Do(func() {
		r.logger.Debug("Shutdown")
		r.setState(Shutdown)
		close(r.shutdownCh)
		r.queue.close()
	})
}

// State returns the current lifecycle state.
func (r *Runner) State() State {
	return r.getState()
}

func (r *Runner) setNodeID(id string) {
	r.nodeID.Store(id)
}

// NodeID returns the id received in init, or an empty string before the
// handshake.
func (r *Runner) NodeID() string {
	id, _ := r.nodeID.Load().(string)
	return id
}

// GetStats returns a snapshot of the runner's counters. It is safe to call
// from any goroutine.
func (r *Runner) GetStats() map[string]string {
	timeElapsed := time.Since(r.start)
	events := atomic.LoadUint64(&r.events)

	return map[string]string{
		"id":                r.NodeID(),
		"kind":              r.kind.Name,
		"state":             r.getState().String(),
		"events":            strconv.FormatUint(events, 10),
		"queued_events":     strconv.Itoa(r.queue.len()),
		"events_per_second": strconv.FormatFloat(float64(events)/timeElapsed.Seconds(), 'f', 2, 64),
		"uptime":            timeElapsed.Truncate(time.Millisecond).String(),
	}
}

// meteredSender counts outgoing messages by type.
type meteredSender struct {
	next message.Sender
}

func (s *meteredSender) Send(e *message.Envelope) error {
	if err := s.next.Send(e); err != nil {
		return err
	}
	telemetry.MessagesSentTotal.WithLabelValues(e.Type()).Inc()
	return nil
}
