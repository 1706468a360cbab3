package node

import (
	"sync"

	"github.com/pkg/errors"
)

// ErrQueueClosed is returned to producers once the consumer is gone. It is the
// only termination signal producers get.
var ErrQueueClosed = errors.New("event queue closed")

// Injector lets a node push signals into its own event queue.
type Injector interface {
	Inject(s Signal) error
}

// mailbox is an unbounded multi-producer single-consumer queue of events.
// Pushes never block; events of one producer are popped in the order that
// producer pushed them.
type mailbox struct {
	mu      sync.Mutex
	items   []Event
	closed  bool
	readyCh chan struct{}
}

func newMailbox() *mailbox {
	return &mailbox{
		readyCh: make(chan struct{}, 1),
	}
}

// push appends ev to the queue. It returns false if the queue is closed.
func (m *mailbox) push(ev Event) bool {
	m.mu.Lock()
	if m.closed {
		m.mu.Unlock()
		return false
	}
	m.items = append(m.items, ev)
	m.mu.Unlock()

	select {
	case m.readyCh <- struct{}{}:
	default:
	}
	return true
}

// pop removes the oldest event, waiting for one if the queue is empty. It
// returns false when doneCh is closed before an event is available.
func (m *mailbox) pop(doneCh <-chan struct{}) (Event, bool) {
	for {
		m.mu.Lock()
		if len(m.items) > 0 {
			ev := m.items[0]
			m.items[0] = Event{}
			m.items = m.items[1:]
			m.mu.Unlock()
			return ev, true
		}
		m.mu.Unlock()

		select {
		case <-m.readyCh:
		case <-doneCh:
			return Event{}, false
		}
	}
}

// close makes every later push fail. Queued events are dropped.
func (m *mailbox) close() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.closed = true
	m.items = nil
}

func (m *mailbox) len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.items)
}

// Inject implements the Injector interface.
func (m *mailbox) Inject(s Signal) error {
	if !m.push(InjectedEvent(s)) {
		return ErrQueueClosed
	}
	return nil
}
