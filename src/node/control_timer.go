package node

import (
	"time"
)

type timerFactory func(time.Duration) <-chan time.Time

// ControlTimer injects the same Signal into a node's event queue at a fixed
// period. It has no cancellation of its own: Run returns the first time the
// injection fails, which happens once the queue is closed.
type ControlTimer struct {
	timerFactory timerFactory
	injector     Injector
	signal       Signal
}

// NewControlTimer returns a ControlTimer pushing signal through injector.
func NewControlTimer(injector Injector, signal Signal) *ControlTimer {
	return &ControlTimer{
		timerFactory: time.After,
		injector:     injector,
		signal:       signal,
	}
}

// Run blocks, injecting the signal every period. A period that is not strictly
// positive disables the timer.
func (c *ControlTimer) Run(period time.Duration) {
	if period <= 0 {
		return
	}
	for {
		<-c.timerFactory(period)
		if err := c.injector.Inject(c.signal); err != nil {
			return
		}
	}
}
