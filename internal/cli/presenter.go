package cli

import (
	"fmt"
	"io"
	"sync"

	apperrors "github.com/darknoon/debugtargets/internal/errors"
	"github.com/darknoon/debugtargets/internal/format"
	"github.com/darknoon/debugtargets/internal/metrics"
	"github.com/darknoon/debugtargets/internal/progress"
	"github.com/darknoon/debugtargets/internal/racedemo"
	"github.com/darknoon/debugtargets/internal/ui"
)

// CLIProgressReporter implements racedemo.ProgressReporter for terminal
// output. It wraps DisplayProgress to provide a spinner and progress bar
// while the workers run.
type CLIProgressReporter struct{}

var _ racedemo.ProgressReporter = CLIProgressReporter{}

// DisplayProgress displays a spinner and progress bar for the ongoing run.
func (CLIProgressReporter) DisplayProgress(wg *sync.WaitGroup, progressChan <-chan progress.Update, numWorkers int, out io.Writer) {
	DisplayProgress(wg, progressChan, numWorkers, out)
}

// CLIResultPresenter implements racedemo.ResultPresenter and
// racedemo.ErrorHandler with formatted, colorized terminal output.
type CLIResultPresenter struct{}

var (
	_ racedemo.ResultPresenter = CLIResultPresenter{}
	_ racedemo.ErrorHandler    = CLIResultPresenter{}
)

// PresentComparisonTable displays the per-strategy comparison with durations,
// final values, lost updates, and status in a tabular layout. Padding is
// computed from the uncolored cell text so ANSI codes do not skew alignment.
func (CLIResultPresenter) PresentComparisonTable(results []racedemo.RunResult, out io.Writer) {
	fmt.Fprintf(out, "\n--- Strategy Comparison ---\n")

	maxNameLen := len("Strategy")
	maxDurationLen := len("Duration")
	maxValueLen := len("Final value")
	for _, res := range results {
		if len(res.Strategy) > maxNameLen {
			maxNameLen = len(res.Strategy)
		}
		if d := durationCell(res); len(d) > maxDurationLen {
			maxDurationLen = len(d)
		}
		if v := fmt.Sprintf("%d", res.Actual); len(v) > maxValueLen {
			maxValueLen = len(v)
		}
	}

	fmt.Fprintf(out, "%s%s   %s%s   %s%s   %s\n",
		ui.Underline("Strategy"), pad(maxNameLen-len("Strategy")),
		ui.Underline("Duration"), pad(maxDurationLen-len("Duration")),
		ui.Underline("Final value"), pad(maxValueLen-len("Final value")),
		ui.Underline("Status"))

	for _, res := range results {
		status := statusCell(res)
		duration := durationCell(res)
		value := fmt.Sprintf("%d", res.Actual)
		fmt.Fprintf(out, "%s%s   %s%s   %s%s   %s\n",
			ui.ColorPrimary(res.Strategy), pad(maxNameLen-len(res.Strategy)),
			ui.ColorWarning(duration), pad(maxDurationLen-len(duration)),
			value, pad(maxValueLen-len(value)),
			status)
	}
}

func durationCell(res racedemo.RunResult) string {
	if res.Duration == 0 {
		return "< 1µs"
	}
	return format.FormatExecutionDuration(res.Duration)
}

func statusCell(res racedemo.RunResult) string {
	switch {
	case res.Err != nil:
		return ui.ColorError(fmt.Sprintf("failed (%v)", res.Err))
	case res.Lost() > 0:
		return ui.ColorWarning(fmt.Sprintf("lost %d updates (%.1f%%)", res.Lost(), res.LossPercent()))
	default:
		return ui.ColorSuccess("exact")
	}
}

// pad returns a string of n spaces.
func pad(n int) string {
	if n <= 0 {
		return ""
	}
	return fmt.Sprintf("%*s", n, "")
}

// PresentResult displays the final outcome of a single run in the canonical
// three-line form. Verbose mode adds duration and loss details.
func (CLIResultPresenter) PresentResult(result racedemo.RunResult, verbose bool, out io.Writer) {
	DisplayResult(result, verbose, out)
}

// HandleError prints the error and returns the matching process exit code.
func (CLIResultPresenter) HandleError(err error, out io.Writer) int {
	fmt.Fprintf(out, "%s %v\n", ui.ColorError("Error:"), err)
	return apperrors.ExitCodeForError(err)
}

// DisplayResult prints the canonical result lines. The hint line is part of
// the program's contract and is printed regardless of the observed value.
func DisplayResult(result racedemo.RunResult, verbose bool, out io.Writer) {
	fmt.Fprintf(out, "Expected: %d\n", result.Expected)
	fmt.Fprintf(out, "Actual:   %d\n", result.Actual)
	fmt.Fprintln(out, "(If Actual < Expected, you've observed a race condition.)")

	if verbose {
		fmt.Fprintf(out, "\nStrategy: %s\n", result.Strategy)
		fmt.Fprintf(out, "Duration: %s\n", format.FormatExecutionDuration(result.Duration))
		fmt.Fprintf(out, "Lost:     %d (%.2f%%)\n", result.Lost(), result.LossPercent())
	}
}

// DisplayMemoryStats shows memory statistics after a run in verbose mode.
func DisplayMemoryStats(snap metrics.MemorySnapshot, out io.Writer) {
	fmt.Fprintf(out, "\nMemory Stats:\n")
	fmt.Fprintf(out, "  Heap in use:     %s\n", metrics.FormatBytes(snap.HeapAlloc))
	fmt.Fprintf(out, "  From OS:         %s\n", metrics.FormatBytes(snap.Sys))
	fmt.Fprintf(out, "  GC cycles:       %d\n", snap.NumGC)
	fmt.Fprintf(out, "  GC pause total:  %.2fms\n", float64(snap.PauseTotalNs)/1e6)
}
