package cli

import (
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/briandowns/spinner"

	"github.com/darknoon/debugtargets/internal/format"
	"github.com/darknoon/debugtargets/internal/progress"
)

const (
	// ProgressRefreshRate defines the refresh frequency of the progress bar.
	// 200ms keeps the terminal responsive without flooding it with redraws.
	ProgressRefreshRate = 200 * time.Millisecond
	// ProgressBarWidth defines the width in characters of the progress bar.
	ProgressBarWidth = 40
)

// Spinner abstracts the behavior of a terminal spinner. It decouples
// DisplayProgress from a specific spinner implementation, which makes the
// progress loop testable without a real terminal.
type Spinner interface {
	// Start begins the spinner animation.
	Start()
	// Stop halts the spinner animation.
	Stop()
	// UpdateSuffix sets the text that is displayed after the spinner.
	UpdateSuffix(suffix string)
}

// realSpinner wraps spinner.Spinner to satisfy the Spinner interface.
type realSpinner struct {
	s *spinner.Spinner
}

func (rs *realSpinner) Start() {
	rs.s.Start()
}

func (rs *realSpinner) Stop() {
	rs.s.Stop()
}

func (rs *realSpinner) UpdateSuffix(suffix string) {
	rs.s.Suffix = suffix
}

var newSpinner = func(options ...spinner.Option) Spinner {
	// Same interval as ProgressRefreshRate so the suffix and the animation
	// update in lockstep.
	s := spinner.New(spinner.CharSets[11], ProgressRefreshRate, options...)
	return &realSpinner{s}
}

// DisplayProgress consumes worker progress updates and drives a spinner with
// an aggregated progress bar and ETA as its suffix. It runs until
// progressChan is closed, then signals wg. Call it in its own goroutine.
func DisplayProgress(wg *sync.WaitGroup, progressChan <-chan progress.Update, numWorkers int, out io.Writer) {
	defer wg.Done()

	if numWorkers <= 0 {
		for range progressChan {
		}
		return
	}

	tracker := format.NewProgressWithETA(numWorkers)

	sp := newSpinner(spinner.WithWriter(out))
	sp.UpdateSuffix(format.FormatProgressBarWithETA(0, 0, ProgressBarWidth))
	sp.Start()
	defer sp.Stop()

	lastRefresh := time.Now()
	for update := range progressChan {
		avg, eta := tracker.UpdateWithETA(update.WorkerIndex, update.Value)
		// Throttle suffix rewrites; updates arrive far faster than the
		// terminal needs them.
		if now := time.Now(); now.Sub(lastRefresh) >= ProgressRefreshRate || avg >= 1.0 {
			sp.UpdateSuffix(format.FormatProgressBarWithETA(avg, eta, ProgressBarWidth))
			lastRefresh = now
		}
	}

	sp.UpdateSuffix(fmt.Sprintf(" [%s] 100.0%%", format.ProgressBar(1.0, ProgressBarWidth)))
}
