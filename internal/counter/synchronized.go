package counter

import (
	"sync"
	"sync/atomic"
)

// MutexCounter protects the shared value with a sync.Mutex. Every access,
// including reads, takes the lock.
type MutexCounter struct {
	mu    sync.Mutex
	value int64
}

// NewMutexCounter returns a zeroed mutex-protected counter.
func NewMutexCounter() *MutexCounter {
	return &MutexCounter{}
}

// Name returns the strategy identifier.
func (c *MutexCounter) Name() string { return StrategyMutex }

// Inc adds one under the lock.
func (c *MutexCounter) Inc() {
	c.mu.Lock()
	c.value++
	c.mu.Unlock()
}

// Value reads the current value under the lock.
func (c *MutexCounter) Value() int64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.value
}

// AtomicCounter uses sync/atomic for lock-free synchronized increments.
type AtomicCounter struct {
	value atomic.Int64
}

// NewAtomicCounter returns a zeroed atomic counter.
func NewAtomicCounter() *AtomicCounter {
	return &AtomicCounter{}
}

// Name returns the strategy identifier.
func (c *AtomicCounter) Name() string { return StrategyAtomic }

// Inc adds one atomically.
func (c *AtomicCounter) Inc() {
	c.value.Add(1)
}

// Value atomically loads the current value.
func (c *AtomicCounter) Value() int64 {
	return c.value.Load()
}
