package waitlist

import (
	"sync/atomic"
)

// ArrivalClock hands out strictly increasing arrival ticks for claims.
type ArrivalClock interface {
	Tick() uint64
}

// SequenceClock is a monotonic counter implementing ArrivalClock.
type SequenceClock struct {
	last atomic.Uint64
}

// NewSequenceClock creates a SequenceClock whose first Tick returns start+1.
func NewSequenceClock(start uint64) *SequenceClock {
	c := &SequenceClock{}
	c.last.Store(start)

	return c
}

// Tick returns the next arrival tick.
func (c *SequenceClock) Tick() uint64 {
	return c.last.Add(1)
}
