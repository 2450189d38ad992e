package counter

import (
	"io"
	"sync"
	"testing"
)

// closeIfCloser releases counters that own background goroutines.
func closeIfCloser(t *testing.T, c Counter) {
	t.Helper()
	if closer, ok := c.(io.Closer); ok {
		if err := closer.Close(); err != nil {
			t.Errorf("Close() returned error: %v", err)
		}
	}
}

// TestSequentialIncrements verifies that every strategy counts correctly
// when used from a single goroutine. The racy strategy is deterministic in
// this setting because no concurrent access occurs.
func TestSequentialIncrements(t *testing.T) {
	const n = 1000
	for _, c := range NewDefaultFactory().GetAll() {
		t.Run(c.Name(), func(t *testing.T) {
			defer closeIfCloser(t, c)
			for i := 0; i < n; i++ {
				c.Inc()
			}
			if got := c.Value(); got != n {
				t.Errorf("%s counter = %d after %d sequential increments, want %d", c.Name(), got, n, n)
			}
		})
	}
}

// TestSynchronizedConcurrentIncrements verifies that the synchronized
// strategies never lose increments under contention. The racy strategy is
// deliberately excluded: its concurrent behavior is undefined and would trip
// the race detector, which is exactly what it exists to demonstrate.
func TestSynchronizedConcurrentIncrements(t *testing.T) {
	const (
		goroutines    = 8
		perGoroutine  = 10000
		expectedTotal = goroutines * perGoroutine
	)

	factory := NewDefaultFactory()
	for _, name := range factory.List() {
		if !IsSynchronized(name) {
			continue
		}
		t.Run(name, func(t *testing.T) {
			c, err := factory.Get(name)
			if err != nil {
				t.Fatalf("Get(%q) failed: %v", name, err)
			}
			defer closeIfCloser(t, c)

			var wg sync.WaitGroup
			for g := 0; g < goroutines; g++ {
				wg.Add(1)
				go func() {
					defer wg.Done()
					for i := 0; i < perGoroutine; i++ {
						c.Inc()
					}
				}()
			}
			wg.Wait()

			if got := c.Value(); got != expectedTotal {
				t.Errorf("%s counter = %d, want exactly %d", name, got, expectedTotal)
			}
		})
	}
}

// TestFactory verifies strategy registration and lookup.
func TestFactory(t *testing.T) {
	factory := NewDefaultFactory()

	t.Run("List returns all strategies sorted", func(t *testing.T) {
		want := []string{StrategyAtomic, StrategyChannel, StrategyMutex, StrategyNone}
		got := factory.List()
		if len(got) != len(want) {
			t.Fatalf("List() = %v, want %v", got, want)
		}
		for i := range want {
			if got[i] != want[i] {
				t.Errorf("List()[%d] = %q, want %q", i, got[i], want[i])
			}
		}
	})

	t.Run("Get returns counter matching name", func(t *testing.T) {
		for _, name := range factory.List() {
			c, err := factory.Get(name)
			if err != nil {
				t.Fatalf("Get(%q) failed: %v", name, err)
			}
			if c.Name() != name {
				t.Errorf("Get(%q).Name() = %q", name, c.Name())
			}
			closeIfCloser(t, c)
		}
	})

	t.Run("Get unknown strategy fails", func(t *testing.T) {
		if _, err := factory.Get("spinlock"); err == nil {
			t.Error("Get(\"spinlock\") should fail")
		}
	})

	t.Run("Get returns fresh instances", func(t *testing.T) {
		a, _ := factory.Get(StrategyMutex)
		b, _ := factory.Get(StrategyMutex)
		a.Inc()
		if b.Value() != 0 {
			t.Error("factory should return independent counter instances")
		}
	})

	t.Run("GetAll returns one counter per strategy", func(t *testing.T) {
		counters := factory.GetAll()
		if len(counters) != len(factory.List()) {
			t.Errorf("GetAll() returned %d counters, want %d", len(counters), len(factory.List()))
		}
		for _, c := range counters {
			closeIfCloser(t, c)
		}
	})
}

// TestIsSynchronized verifies the synchronization classification.
func TestIsSynchronized(t *testing.T) {
	tests := []struct {
		name string
		want bool
	}{
		{StrategyNone, false},
		{StrategyMutex, true},
		{StrategyAtomic, true},
		{StrategyChannel, true},
	}
	for _, tt := range tests {
		if got := IsSynchronized(tt.name); got != tt.want {
			t.Errorf("IsSynchronized(%q) = %v, want %v", tt.name, got, tt.want)
		}
	}
}

// TestChannelCounter_ValueObservesPriorIncrements verifies the owner
// goroutine drains enqueued increments before answering a read.
func TestChannelCounter_ValueObservesPriorIncrements(t *testing.T) {
	c := NewChannelCounter()
	defer closeIfCloser(t, c)

	for i := 0; i < channelCounterBuffer/2; i++ {
		c.Inc()
	}
	if got := c.Value(); got != channelCounterBuffer/2 {
		t.Errorf("Value() = %d, want %d", got, channelCounterBuffer/2)
	}
}
