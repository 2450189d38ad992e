package format

import (
	"fmt"
	"strings"
	"time"
)

// ProgressState tracks the individual progress of each worker and computes
// the average, which provides a consolidated progress view when multiple
// workers are running in parallel.
type ProgressState struct {
	progresses []float64
	numWorkers int
}

// NewProgressState creates and initializes a new ProgressState for the given
// number of workers.
func NewProgressState(numWorkers int) *ProgressState {
	return &ProgressState{
		progresses: make([]float64, numWorkers),
		numWorkers: numWorkers,
	}
}

// Update records a new progress value for a specific worker. Updates are
// only applied for valid worker indices.
func (ps *ProgressState) Update(index int, value float64) {
	if index >= 0 && index < len(ps.progresses) {
		ps.progresses[index] = value
	}
}

// CalculateAverage computes the average progress across all tracked workers.
func (ps *ProgressState) CalculateAverage() float64 {
	if ps.numWorkers == 0 {
		return 0.0
	}
	var total float64
	for _, p := range ps.progresses {
		total += p
	}
	return total / float64(ps.numWorkers)
}

// etaSmoothingFactor is the exponential smoothing weight applied to the
// observed progress rate. A lower factor favors the historical rate and keeps
// the ETA stable when individual workers report in bursts.
const etaSmoothingFactor = 0.3

// ProgressWithETA extends ProgressState with an estimated time remaining,
// derived from an exponentially smoothed progress rate.
type ProgressWithETA struct {
	*ProgressState
	numWorkers   int
	startTime    time.Time
	lastUpdate   time.Time
	lastProgress float64
	progressRate float64 // progress units per second
}

// NewProgressWithETA creates a progress tracker with ETA estimation for the
// given number of workers.
func NewProgressWithETA(numWorkers int) *ProgressWithETA {
	now := time.Now()
	return &ProgressWithETA{
		ProgressState: NewProgressState(numWorkers),
		numWorkers:    numWorkers,
		startTime:     now,
		lastUpdate:    now,
	}
}

// UpdateWithETA records a progress value for one worker and returns the new
// average progress together with the estimated time remaining.
func (p *ProgressWithETA) UpdateWithETA(index int, value float64) (float64, time.Duration) {
	p.Update(index, value)
	avg := p.CalculateAverage()

	now := time.Now()
	elapsed := now.Sub(p.lastUpdate).Seconds()
	if elapsed > 0 && avg > p.lastProgress {
		instantRate := (avg - p.lastProgress) / elapsed
		if p.progressRate == 0 {
			p.progressRate = instantRate
		} else {
			p.progressRate = etaSmoothingFactor*instantRate + (1-etaSmoothingFactor)*p.progressRate
		}
		p.lastUpdate = now
		p.lastProgress = avg
	}

	return avg, p.GetETA()
}

// GetETA returns the current estimated time remaining. It returns 0 when no
// rate has been established yet or when progress is complete.
func (p *ProgressWithETA) GetETA() time.Duration {
	avg := p.CalculateAverage()
	if p.progressRate <= 0 || avg >= 1.0 {
		return 0
	}
	remaining := 1.0 - avg
	return time.Duration(remaining / p.progressRate * float64(time.Second))
}

// FormatETA renders an ETA duration in a compact human-readable form.
// Zero and negative durations render as "calculating..." because no reliable
// rate estimate exists yet.
func FormatETA(eta time.Duration) string {
	switch {
	case eta <= 0:
		return "calculating..."
	case eta < time.Second:
		return "< 1s"
	case eta < time.Minute:
		return fmt.Sprintf("%ds", int(eta.Seconds()))
	case eta < time.Hour:
		m := int(eta.Minutes())
		s := int(eta.Seconds()) % 60
		if s == 0 {
			return fmt.Sprintf("%dm", m)
		}
		return fmt.Sprintf("%dm%ds", m, s)
	default:
		h := int(eta.Hours())
		m := int(eta.Minutes()) % 60
		if m == 0 {
			return fmt.Sprintf("%dh", h)
		}
		return fmt.Sprintf("%dh%dm", h, m)
	}
}

// ProgressBar renders a textual progress bar of the given character width.
// Progress values outside [0, 1] are clamped.
func ProgressBar(progress float64, width int) string {
	if progress > 1.0 {
		progress = 1.0
	}
	if progress < 0.0 {
		progress = 0.0
	}
	count := int(progress * float64(width))
	var b strings.Builder
	b.Grow(width)
	for i := 0; i < width; i++ {
		if i < count {
			b.WriteRune('█')
		} else {
			b.WriteRune('░')
		}
	}
	return b.String()
}

// FormatProgressBarWithETA combines a progress bar, a percentage, and an ETA
// into the single-line form used as a spinner suffix.
func FormatProgressBarWithETA(progress float64, eta time.Duration, width int) string {
	return fmt.Sprintf(" [%s] %.1f%% | ETA: %s", ProgressBar(progress, width), progress*100, FormatETA(eta))
}
