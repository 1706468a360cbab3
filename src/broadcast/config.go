package broadcast

import (
	"math/rand"
	"time"
)

// Default configuration values.
const (
	DefaultGossipInterval = 100 * time.Millisecond
	DefaultRedundancy     = 10
)

// Rand is the source of randomness used to sample redundant values.
type Rand interface {
	// Intn returns a uniform value in [0, n). n is always positive.
	Intn(n int) int
}

// Config tunes a broadcast node.
type Config struct {
	// GossipInterval is the period of the gossip timer. A value that is not
	// strictly positive disables the timer.
	GossipInterval time.Duration

	// Redundancy is the percentage of new values added, as a sample of
	// already known values, to each gossip.
	Redundancy int

	// Seed seeds the default Rand. Zero picks a seed from the clock.
	Seed int64

	// Rand overrides the default source of randomness.
	Rand Rand
}

// NewDefaultConfig returns a config object with default values.
func NewDefaultConfig() *Config {
	return &Config{
		GossipInterval: DefaultGossipInterval,
		Redundancy:     DefaultRedundancy,
	}
}

func (c *Config) rand() Rand {
	if c.Rand != nil {
		return c.Rand
	}
	seed := c.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return rand.New(rand.NewSource(seed))
}
