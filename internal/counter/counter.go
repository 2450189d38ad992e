package counter

import (
	"fmt"
	"sort"
)

// Counter is a shared integer counter incremented by demo workers.
//
// Implementations differ only in their synchronization discipline; the racy
// implementation deliberately has none, which is the property the race demo
// exists to exhibit.
type Counter interface {
	// Name returns the identifier of the synchronization strategy.
	Name() string
	// Inc adds one to the counter.
	Inc()
	// Value returns the current counter value. For the racy strategy the
	// returned value is unspecified while workers are still running.
	Value() int64
}

// Factory creates counters by strategy name. It mirrors the shape of a
// pluggable-strategy registry: callers select one strategy, all strategies,
// or enumerate the available names for flag validation and help text.
type Factory interface {
	// Get returns a fresh counter for the named strategy, or an error if
	// the name is unknown.
	Get(name string) (Counter, error)
	// GetAll returns one fresh counter per registered strategy.
	GetAll() []Counter
	// List returns the registered strategy names in sorted order.
	List() []string
}

// defaultFactory is the standard registry of counter strategies.
type defaultFactory struct {
	constructors map[string]func() Counter
}

// NewDefaultFactory returns a factory with all built-in strategies
// registered: "none" (unsynchronized), "mutex", "atomic" and "channel".
func NewDefaultFactory() Factory {
	return &defaultFactory{
		constructors: map[string]func() Counter{
			StrategyNone:    func() Counter { return NewRacyCounter() },
			StrategyMutex:   func() Counter { return NewMutexCounter() },
			StrategyAtomic:  func() Counter { return NewAtomicCounter() },
			StrategyChannel: func() Counter { return NewChannelCounter() },
		},
	}
}

// Strategy names registered in the default factory.
const (
	StrategyNone    = "none"
	StrategyMutex   = "mutex"
	StrategyAtomic  = "atomic"
	StrategyChannel = "channel"
)

// Get returns a fresh counter for the named strategy.
func (f *defaultFactory) Get(name string) (Counter, error) {
	ctor, ok := f.constructors[name]
	if !ok {
		return nil, fmt.Errorf("unknown sync strategy %q (available: %v)", name, f.List())
	}
	return ctor(), nil
}

// GetAll returns one fresh counter per registered strategy, ordered by name.
func (f *defaultFactory) GetAll() []Counter {
	names := f.List()
	counters := make([]Counter, 0, len(names))
	for _, name := range names {
		c, _ := f.Get(name)
		counters = append(counters, c)
	}
	return counters
}

// List returns the registered strategy names in sorted order.
func (f *defaultFactory) List() []string {
	names := make([]string, 0, len(f.constructors))
	for name := range f.constructors {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// IsSynchronized reports whether the named strategy guarantees that
// concurrent increments are never lost. The "none" strategy is the only
// unsynchronized one.
func IsSynchronized(name string) bool {
	return name != StrategyNone
}
