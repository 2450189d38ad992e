// Package metrics provides runtime memory instrumentation for the
// demonstration runs. Heap growth and GC activity are displayed in the TUI
// dashboard and logged in verbose mode so that the cost of each counter
// strategy can be compared.
package metrics

import (
	"fmt"
	"runtime"
)

// MemorySnapshot holds a point-in-time memory reading.
type MemorySnapshot struct {
	HeapAlloc    uint64 // bytes in use by application
	HeapSys      uint64 // bytes obtained from OS for heap
	Sys          uint64 // total bytes obtained from OS
	NumGC        uint32 // number of completed GC cycles
	PauseTotalNs uint64 // cumulative GC pause time
	HeapObjects  uint64 // number of allocated heap objects
}

// MemoryCollector reads runtime memory statistics.
type MemoryCollector struct {
	baseline MemorySnapshot
}

// NewMemoryCollector creates a collector whose Delta readings are relative
// to the memory state at construction time.
func NewMemoryCollector() *MemoryCollector {
	mc := &MemoryCollector{}
	mc.baseline = mc.Snapshot()
	return mc
}

// Snapshot reads current memory statistics.
func (mc *MemoryCollector) Snapshot() MemorySnapshot {
	var m runtime.MemStats
	runtime.ReadMemStats(&m)
	return MemorySnapshot{
		HeapAlloc:    m.HeapAlloc,
		HeapSys:      m.HeapSys,
		Sys:          m.Sys,
		NumGC:        m.NumGC,
		PauseTotalNs: m.PauseTotalNs,
		HeapObjects:  m.HeapObjects,
	}
}

// Delta reports the change in GC cycles and cumulative pause time since the
// collector was created. Heap fields are reported as-is because allocation
// counters only grow monotonically between GC cycles.
func (mc *MemoryCollector) Delta() MemorySnapshot {
	cur := mc.Snapshot()
	cur.NumGC -= mc.baseline.NumGC
	cur.PauseTotalNs -= mc.baseline.PauseTotalNs
	return cur
}

// FormatBytes renders a byte count in a human-readable unit (B, KiB, MiB, GiB).
func FormatBytes(b uint64) string {
	const unit = 1024
	if b < unit {
		return fmt.Sprintf("%d B", b)
	}
	div, exp := uint64(unit), 0
	for n := b / unit; n >= unit && exp < 2; n /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f %ciB", float64(b)/float64(div), "KMG"[exp])
}
