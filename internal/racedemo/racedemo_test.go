package racedemo_test

import (
	"context"
	"errors"
	"testing"

	"github.com/darknoon/debugtargets/internal/counter"
	apperrors "github.com/darknoon/debugtargets/internal/errors"
	"github.com/darknoon/debugtargets/internal/progress"
	"github.com/darknoon/debugtargets/internal/racedemo"
)

// smallOptions returns run parameters sized for fast tests.
func smallOptions() racedemo.Options {
	return racedemo.Options{Workers: 4, Iterations: 10_000, YieldEvery: 1024}
}

// TestOptionsValidate checks the option invariants.
func TestOptionsValidate(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name      string
		opts      racedemo.Options
		wantField string
	}{
		{"defaults are valid", racedemo.DefaultOptions(), ""},
		{"zero workers", racedemo.Options{Workers: 0, Iterations: 1, YieldEvery: 2}, "workers"},
		{"negative iterations", racedemo.Options{Workers: 1, Iterations: -1, YieldEvery: 2}, "iterations"},
		{"zero iterations", racedemo.Options{Workers: 1, Iterations: 0, YieldEvery: 2}, "iterations"},
		{"yield not power of two", racedemo.Options{Workers: 1, Iterations: 1, YieldEvery: 3}, "yield-every"},
		{"zero yield", racedemo.Options{Workers: 1, Iterations: 1, YieldEvery: 0}, "yield-every"},
		{"yield of one is valid", racedemo.Options{Workers: 1, Iterations: 1, YieldEvery: 1}, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			err := tt.opts.Validate()
			if tt.wantField == "" {
				if err != nil {
					t.Errorf("Validate() = %v, want nil", err)
				}
				return
			}
			var verr apperrors.ValidationError
			if !errors.As(err, &verr) {
				t.Fatalf("Validate() = %v, want ValidationError", err)
			}
			if verr.Field != tt.wantField {
				t.Errorf("Validate() field = %q, want %q", verr.Field, tt.wantField)
			}
		})
	}
}

// TestOptionsExpected verifies the theoretical maximum.
func TestOptionsExpected(t *testing.T) {
	t.Parallel()
	opts := racedemo.DefaultOptions()
	if got := opts.Expected(); got != 8_000_000 {
		t.Errorf("default Expected() = %d, want 8000000", got)
	}
}

// TestRun_SynchronizedExact verifies that runs over synchronized counters
// land exactly on workers x iterations.
func TestRun_SynchronizedExact(t *testing.T) {
	factory := counter.NewDefaultFactory()
	for _, name := range factory.List() {
		if !counter.IsSynchronized(name) {
			continue
		}
		t.Run(name, func(t *testing.T) {
			ctr, err := factory.Get(name)
			if err != nil {
				t.Fatalf("Get(%q): %v", name, err)
			}
			opts := smallOptions()
			res := racedemo.Run(context.Background(), ctr, opts, nil)

			if res.Err != nil {
				t.Fatalf("Run() error = %v", res.Err)
			}
			if res.Actual != opts.Expected() {
				t.Errorf("Actual = %d, want exactly %d", res.Actual, opts.Expected())
			}
			if res.Lost() != 0 {
				t.Errorf("Lost() = %d, want 0", res.Lost())
			}
			if res.Duration <= 0 {
				t.Error("Duration should be positive")
			}
			if res.Strategy != name {
				t.Errorf("Strategy = %q, want %q", res.Strategy, name)
			}
		})
	}
}

// TestRun_RacySingleWorker verifies the unsynchronized counter with a single
// worker, where no concurrent access occurs and the result is deterministic.
// Multi-worker racy behavior is deliberately untestable: the final value is
// unspecified, which is what the demo exists to show.
func TestRun_RacySingleWorker(t *testing.T) {
	opts := racedemo.Options{Workers: 1, Iterations: 50_000, YieldEvery: 4096}
	res := racedemo.Run(context.Background(), counter.NewRacyCounter(), opts, nil)

	if res.Err != nil {
		t.Fatalf("Run() error = %v", res.Err)
	}
	if res.Actual != opts.Expected() {
		t.Errorf("single-worker racy Actual = %d, want %d", res.Actual, opts.Expected())
	}
}

// TestRun_InvalidOptions verifies validation failures surface in the result.
func TestRun_InvalidOptions(t *testing.T) {
	t.Parallel()
	opts := racedemo.Options{Workers: 0, Iterations: 1, YieldEvery: 2}
	res := racedemo.Run(context.Background(), counter.NewAtomicCounter(), opts, nil)

	var verr apperrors.ValidationError
	if !errors.As(res.Err, &verr) {
		t.Fatalf("Run() error = %v, want ValidationError", res.Err)
	}
}

// TestRun_Canceled verifies cancellation is observed at yield boundaries.
func TestRun_Canceled(t *testing.T) {
	t.Parallel()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	opts := racedemo.Options{Workers: 2, Iterations: 1 << 20, YieldEvery: 256}
	res := racedemo.Run(ctx, counter.NewMutexCounter(), opts, nil)

	if !errors.Is(res.Err, context.Canceled) {
		t.Fatalf("Run() error = %v, want context.Canceled", res.Err)
	}
	if res.Actual >= opts.Expected() {
		t.Errorf("canceled run completed all %d increments", opts.Expected())
	}
}

// TestRun_ProgressUpdates verifies workers report progress at yield
// boundaries without ever blocking on the channel.
func TestRun_ProgressUpdates(t *testing.T) {
	opts := racedemo.Options{Workers: 2, Iterations: 4096, YieldEvery: 1024}
	progressChan := make(chan progress.Update, 64)

	res := racedemo.Run(context.Background(), counter.NewAtomicCounter(), opts, progressChan)
	if res.Err != nil {
		t.Fatalf("Run() error = %v", res.Err)
	}
	close(progressChan)

	sawFinal := false
	count := 0
	for u := range progressChan {
		count++
		if u.WorkerIndex < 0 || u.WorkerIndex >= opts.Workers {
			t.Errorf("update has worker index %d, want [0, %d)", u.WorkerIndex, opts.Workers)
		}
		if u.Value < 0 || u.Value > 1 {
			t.Errorf("update has value %f, want [0, 1]", u.Value)
		}
		if u.Value == 1.0 {
			sawFinal = true
		}
	}
	if count == 0 {
		t.Error("expected at least one progress update")
	}
	if !sawFinal {
		t.Error("expected a final 1.0 progress update")
	}
}

// TestRunResult_Loss verifies the drift accessors.
func TestRunResult_Loss(t *testing.T) {
	t.Parallel()
	res := racedemo.RunResult{Strategy: "none", Expected: 8_000_000, Actual: 7_400_000}
	if res.Lost() != 600_000 {
		t.Errorf("Lost() = %d, want 600000", res.Lost())
	}
	if got := res.LossPercent(); got != 7.5 {
		t.Errorf("LossPercent() = %f, want 7.5", got)
	}

	empty := racedemo.RunResult{}
	if empty.LossPercent() != 0 {
		t.Errorf("LossPercent() on zero Expected = %f, want 0", empty.LossPercent())
	}
}
