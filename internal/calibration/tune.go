package calibration

import (
	"time"

	"github.com/darknoon/debugtargets/internal/counter"
	"github.com/darknoon/debugtargets/internal/logging"
)

const (
	// DefaultSampleIterations is the measurement workload. Large enough to
	// amortize timer resolution, small enough to finish in a few milliseconds.
	DefaultSampleIterations = 5_000_000

	// MinIterations and MaxIterations bound the tuned per-worker count so a
	// bad measurement cannot produce a degenerate or runaway run.
	MinIterations = 10_000
	MaxIterations = 1_000_000_000
)

// MeasureIncrementCost runs sample unsynchronized increments on a single
// goroutine and returns the per-increment cost in nanoseconds. Single
// threaded, so the measurement itself is race free.
func MeasureIncrementCost(sample int64) float64 {
	if sample <= 0 {
		sample = DefaultSampleIterations
	}
	ctr := counter.NewRacyCounter()
	start := time.Now()
	for i := int64(0); i < sample; i++ {
		ctr.Inc()
	}
	elapsed := time.Since(start)
	// Read the value so the loop cannot be optimized away.
	_ = ctr.Value()
	return float64(elapsed.Nanoseconds()) / float64(sample)
}

// EstimateIterations converts a target wall time into a per-worker iteration
// count given the measured increment cost. Workers run in parallel, so the
// wall time is dominated by one worker's iteration count, not the total.
// The result is clamped to [MinIterations, MaxIterations].
func EstimateIterations(costNs float64, target time.Duration) int64 {
	if costNs <= 0 || target <= 0 {
		return MinIterations
	}
	iterations := int64(float64(target.Nanoseconds()) / costNs)
	if iterations < MinIterations {
		return MinIterations
	}
	if iterations > MaxIterations {
		return MaxIterations
	}
	return iterations
}

// AutoTune returns the per-worker iteration count for the target wall time,
// reusing the cached profile when it is valid and fresh, measuring and
// re-caching otherwise. A cache write failure only costs the next run a
// re-measurement, so it is logged and ignored.
func AutoTune(target time.Duration, profilePath string, logger logging.Logger) int64 {
	profile, loaded := LoadOrCreateProfile(profilePath)
	if loaded && !profile.IsStale(DefaultMaxProfileAge) && profile.IncrementCostNs > 0 {
		logger.Debug("using cached calibration profile", logging.String("path", profilePath))
		return EstimateIterations(profile.IncrementCostNs, target)
	}

	logger.Debug("measuring increment cost", logging.Int64("sample", DefaultSampleIterations))
	profile.IncrementCostNs = MeasureIncrementCost(DefaultSampleIterations)
	profile.SampleIterations = DefaultSampleIterations
	profile.CalibratedAt = time.Now()

	if err := profile.SaveProfile(profilePath); err != nil {
		logger.Debug("could not cache calibration profile", logging.Err(err))
	}

	return EstimateIterations(profile.IncrementCostNs, target)
}
