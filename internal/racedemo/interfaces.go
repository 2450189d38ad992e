//go:generate mockgen -source=interfaces.go -destination=mocks/mock_interfaces.go -package=mocks

package racedemo

import (
	"io"
	"sync"

	"github.com/darknoon/debugtargets/internal/progress"
)

// ProgressReporter defines the interface for displaying run progress.
// This interface decouples the orchestration layer from the presentation
// layer: implementations handle the visual representation (spinner, progress
// bar, TUI) while orchestration focuses on coordinating the workers.
type ProgressReporter interface {
	// DisplayProgress starts displaying progress updates from the channel.
	// It should be called in a separate goroutine and runs until
	// progressChan is closed, then signals wg.
	DisplayProgress(wg *sync.WaitGroup, progressChan <-chan progress.Update, numWorkers int, out io.Writer)
}

// ProgressReporterFunc is a function adapter that implements ProgressReporter.
type ProgressReporterFunc func(wg *sync.WaitGroup, progressChan <-chan progress.Update, numWorkers int, out io.Writer)

// DisplayProgress calls the underlying function.
func (f ProgressReporterFunc) DisplayProgress(wg *sync.WaitGroup, progressChan <-chan progress.Update, numWorkers int, out io.Writer) {
	f(wg, progressChan, numWorkers, out)
}

// NullProgressReporter is a no-op implementation of ProgressReporter.
// It drains the progress channel without displaying anything.
// Useful for quiet mode or testing.
type NullProgressReporter struct{}

// DisplayProgress drains the channel without output.
func (NullProgressReporter) DisplayProgress(wg *sync.WaitGroup, progressChan <-chan progress.Update, _ int, _ io.Writer) {
	defer wg.Done()
	for range progressChan {
		// Drain channel silently
	}
}

// ResultPresenter defines the interface for presenting run results,
// allowing different output formats (CLI table, quiet single-line) without
// modifying the orchestration logic.
type ResultPresenter interface {
	// PresentComparisonTable displays the per-strategy comparison table.
	PresentComparisonTable(results []RunResult, out io.Writer)

	// PresentResult displays the final outcome of a single run.
	PresentResult(result RunResult, verbose bool, out io.Writer)
}

// ErrorHandler handles run errors and returns exit codes.
type ErrorHandler interface {
	HandleError(err error, out io.Writer) int
}
