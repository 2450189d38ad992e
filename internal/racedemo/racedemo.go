package racedemo

import (
	"context"
	"runtime"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"golang.org/x/sync/errgroup"

	"github.com/darknoon/debugtargets/internal/counter"
	apperrors "github.com/darknoon/debugtargets/internal/errors"
	"github.com/darknoon/debugtargets/internal/progress"
)

// Canonical demo parameters, matching the original demonstration: 8 workers,
// one million increments each, yielding every 65,536 iterations.
const (
	DefaultWorkers    = 8
	DefaultIterations = 1_000_000
	DefaultYieldEvery = 0x10000
)

// tracerName identifies this package's OpenTelemetry tracer.
const tracerName = "github.com/darknoon/debugtargets/internal/racedemo"

// Options configures a single demo run.
type Options struct {
	// Workers is the number of goroutines incrementing the shared counter.
	Workers int
	// Iterations is the number of increments each worker performs.
	Iterations int64
	// YieldEvery is the iteration interval at which workers yield the
	// processor to encourage interleaving. Must be a power of two so the
	// check compiles to a mask test, like the original's i & 0xFFFF.
	YieldEvery int64
}

// DefaultOptions returns the canonical demo parameters.
func DefaultOptions() Options {
	return Options{
		Workers:    DefaultWorkers,
		Iterations: DefaultIterations,
		YieldEvery: DefaultYieldEvery,
	}
}

// Validate checks the option invariants.
func (o Options) Validate() error {
	if o.Workers < 1 {
		return apperrors.ValidationError{Field: "workers", Message: "must be at least 1"}
	}
	if o.Iterations < 1 {
		return apperrors.ValidationError{Field: "iterations", Message: "must be at least 1"}
	}
	if o.YieldEvery < 1 || o.YieldEvery&(o.YieldEvery-1) != 0 {
		return apperrors.ValidationError{Field: "yield-every", Message: "must be a power of two"}
	}
	return nil
}

// Expected returns the theoretical final counter value: workers x iterations.
func (o Options) Expected() int64 {
	return int64(o.Workers) * o.Iterations
}

// RunResult encapsulates the outcome of one demo run with one counter
// strategy. It is the shared domain type between orchestration and
// presentation layers.
type RunResult struct {
	// Strategy is the counter strategy name (e.g. "none", "mutex").
	Strategy string
	// Expected is workers x iterations.
	Expected int64
	// Actual is the final counter value read after all workers terminated.
	// For the "none" strategy it is unspecified and typically below Expected.
	Actual int64
	// Duration is the wall time of the run.
	Duration time.Duration
	// Err contains any error that interrupted the run.
	Err error
}

// Lost returns the number of increments lost to the race. Zero for
// synchronized strategies.
func (r RunResult) Lost() int64 {
	return r.Expected - r.Actual
}

// LossPercent returns the lost increments as a percentage of Expected.
func (r RunResult) LossPercent() float64 {
	if r.Expected == 0 {
		return 0
	}
	return float64(r.Lost()) / float64(r.Expected) * 100
}

// Run executes one demo run against the given counter: it spawns
// opts.Workers goroutines that each perform opts.Iterations increments,
// yielding the processor at the configured interval, then blocks until every
// worker has terminated and reads the final value.
//
// Progress updates are sent to progressChan if it is non-nil; sends never
// block, so a slow consumer only loses updates, never stalls a worker. The
// channel is NOT closed by Run; the caller owns it.
//
// Cancellation is observed at yield boundaries only, preserving the tight
// unsynchronized increment loop between them.
func Run(ctx context.Context, ctr counter.Counter, opts Options, progressChan chan<- progress.Update) RunResult {
	result := RunResult{
		Strategy: ctr.Name(),
		Expected: opts.Expected(),
	}
	if err := opts.Validate(); err != nil {
		result.Err = err
		return result
	}

	ctx, span := otel.Tracer(tracerName).Start(ctx, "racedemo.run")
	span.SetAttributes(
		attribute.String("strategy", ctr.Name()),
		attribute.Int("workers", opts.Workers),
		attribute.Int64("iterations", opts.Iterations),
	)
	defer span.End()

	mask := opts.YieldEvery - 1
	start := time.Now()

	g, ctx := errgroup.WithContext(ctx)
	for w := 0; w < opts.Workers; w++ {
		workerIndex := w
		g.Go(func() error {
			for i := int64(0); i < opts.Iterations; i++ {
				ctr.Inc()
				if i&mask == 0 {
					// Occasional yield to mix schedules, as in the
					// original demo. Cancellation piggybacks on the
					// same boundary.
					select {
					case <-ctx.Done():
						return ctx.Err()
					default:
					}
					reportProgress(progressChan, workerIndex, float64(i+1)/float64(opts.Iterations))
					runtime.Gosched()
				}
			}
			reportProgress(progressChan, workerIndex, 1.0)
			return nil
		})
	}

	err := g.Wait()
	result.Duration = time.Since(start)
	result.Actual = ctr.Value()
	if err != nil {
		result.Err = apperrors.RunError{Cause: err}
		span.RecordError(err)
		return result
	}

	span.SetAttributes(
		attribute.Int64("actual", result.Actual),
		attribute.Int64("lost", result.Lost()),
	)
	return result
}

// reportProgress performs a non-blocking send of one progress update.
func reportProgress(ch chan<- progress.Update, workerIndex int, value float64) {
	if ch == nil {
		return
	}
	select {
	case ch <- progress.Update{WorkerIndex: workerIndex, Value: value}:
	default:
	}
}
