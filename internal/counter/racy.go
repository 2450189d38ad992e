package counter

// RacyCounter is a plain integer with no synchronization whatsoever.
//
// Concurrent Inc calls perform an unsynchronized read-modify-write, so under
// contention the final value is undefined and observably less than or equal
// to the number of Inc calls. This is the entire point of the race demo:
// do not add locking or atomics here.
type RacyCounter struct {
	value int64
}

// NewRacyCounter returns a zeroed unsynchronized counter.
func NewRacyCounter() *RacyCounter {
	return &RacyCounter{}
}

// Name returns the strategy identifier.
func (c *RacyCounter) Name() string { return StrategyNone }

// Inc performs an unsynchronized read-modify-write of the counter.
func (c *RacyCounter) Inc() {
	c.value++ // intentional data race under concurrent use
}

// Value returns the current value with an unsynchronized read.
func (c *RacyCounter) Value() int64 {
	return c.value
}
