// Package progress defines the progress update type shared between the
// worker orchestration layer and the presentation layers (CLI spinner, TUI).
package progress

// Update carries a single progress report from one worker.
type Update struct {
	// WorkerIndex identifies the reporting worker (0-based).
	WorkerIndex int
	// Value is the normalized progress of that worker (0.0 to 1.0).
	Value float64
}
