package tui

import (
	"io"
	"sync"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	apperrors "github.com/darknoon/debugtargets/internal/errors"
	"github.com/darknoon/debugtargets/internal/format"
	"github.com/darknoon/debugtargets/internal/progress"
	"github.com/darknoon/debugtargets/internal/racedemo"
)

// programRef is a shared reference to the tea.Program.
// Because bubbletea copies the model on every Update, we need a pointer
// that survives copies so the bridge goroutines can send messages.
type programRef struct {
	mu      sync.RWMutex
	program *tea.Program
}

// SetProgram sets the tea.Program reference (thread-safe).
func (r *programRef) SetProgram(p *tea.Program) {
	r.mu.Lock()
	r.program = p
	r.mu.Unlock()
}

// Send sends a message to the bubbletea program (thread-safe).
func (r *programRef) Send(msg tea.Msg) {
	r.mu.RLock()
	p := r.program
	r.mu.RUnlock()
	if p != nil {
		p.Send(msg)
	}
}

// TUIProgressReporter implements racedemo.ProgressReporter.
// It drains the progress channel and forwards updates as bubbletea messages.
type TUIProgressReporter struct {
	ref *programRef
}

var _ racedemo.ProgressReporter = (*TUIProgressReporter)(nil)

// DisplayProgress drains the progress channel and sends ProgressMsg to the TUI.
func (t *TUIProgressReporter) DisplayProgress(wg *sync.WaitGroup, progressChan <-chan progress.Update, numWorkers int, _ io.Writer) {
	defer wg.Done()

	if numWorkers <= 0 {
		for range progressChan {
		}
		return
	}

	tracker := format.NewProgressWithETA(numWorkers)
	for update := range progressChan {
		avg, eta := tracker.UpdateWithETA(update.WorkerIndex, update.Value)
		t.ref.Send(ProgressMsg{
			WorkerIndex:     update.WorkerIndex,
			Value:           update.Value,
			AverageProgress: avg,
			ETA:             eta,
		})
	}
	t.ref.Send(ProgressDoneMsg{})
}

// TUIResultPresenter implements racedemo.ResultPresenter.
// It sends result messages to the TUI instead of writing to stdout.
type TUIResultPresenter struct {
	ref *programRef
}

var (
	_ racedemo.ResultPresenter = (*TUIResultPresenter)(nil)
	_ racedemo.ErrorHandler    = (*TUIResultPresenter)(nil)
)

// PresentComparisonTable sends comparison results to the TUI.
func (t *TUIResultPresenter) PresentComparisonTable(results []racedemo.RunResult, _ io.Writer) {
	t.ref.Send(ComparisonResultsMsg{Results: results})
}

// PresentResult sends the final result to the TUI.
func (t *TUIResultPresenter) PresentResult(result racedemo.RunResult, verbose bool, _ io.Writer) {
	t.ref.Send(FinalResultMsg{Result: result, Verbose: verbose})
}

// HandleError sends an error message to the TUI and returns the exit code.
func (t *TUIResultPresenter) HandleError(err error, _ io.Writer) int {
	t.ref.Send(ErrorMsg{Err: err})
	return apperrors.ExitCodeForError(err)
}

// Messages exchanged between the bridge goroutines and the model.
type (
	// ProgressMsg carries one worker progress update plus the aggregate.
	ProgressMsg struct {
		WorkerIndex     int
		Value           float64
		AverageProgress float64
		ETA             time.Duration
	}

	// ProgressDoneMsg signals that the progress channel closed.
	ProgressDoneMsg struct{}

	// ComparisonResultsMsg carries the per-strategy results of a comparison run.
	ComparisonResultsMsg struct {
		Results []racedemo.RunResult
	}

	// FinalResultMsg carries the winning result of the run.
	FinalResultMsg struct {
		Result  racedemo.RunResult
		Verbose bool
	}

	// ErrorMsg carries a run failure.
	ErrorMsg struct {
		Err error
	}

	// RunCompleteMsg signals the orchestration finished with an exit code.
	RunCompleteMsg struct {
		ExitCode   int
		Generation uint64
	}

	// ContextCancelledMsg signals external cancellation.
	ContextCancelledMsg struct {
		Err        error
		Generation uint64
	}

	// TickMsg drives periodic stat sampling.
	TickMsg time.Time

	// MemStatsMsg carries a runtime memory sample.
	MemStatsMsg struct {
		Alloc        uint64
		HeapSys      uint64
		NumGC        uint32
		PauseTotalNs uint64
		NumGoroutine int
	}

	// SysStatsMsg carries a system-wide CPU/memory sample.
	SysStatsMsg struct {
		CPUPercent float64
		MemPercent float64
	}
)
