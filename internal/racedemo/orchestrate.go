package racedemo

import (
	"context"
	"fmt"
	"io"
	"sort"
	"sync"

	"github.com/darknoon/debugtargets/internal/counter"
	apperrors "github.com/darknoon/debugtargets/internal/errors"
	"github.com/darknoon/debugtargets/internal/progress"
)

// ProgressBufferMultiplier defines the buffer size multiplier for the
// progress channel. A larger buffer reduces the likelihood of dropped
// updates when the UI is slow to consume them.
const ProgressBufferMultiplier = 5

// GetCountersToRun resolves the -sync flag value to the counters to run:
// a single strategy, or every registered strategy for "all".
func GetCountersToRun(sync string, factory counter.Factory) ([]counter.Counter, error) {
	if sync == "all" {
		return factory.GetAll(), nil
	}
	c, err := factory.Get(sync)
	if err != nil {
		return nil, apperrors.NewConfigError("%v", err)
	}
	return []counter.Counter{c}, nil
}

// ExecuteRuns performs one demo run per counter, sequentially so that the
// strategies never contend with each other, and collects their results.
// Each run gets its own progress channel and reporter goroutine; counters
// that own background goroutines are released afterwards.
func ExecuteRuns(ctx context.Context, counters []counter.Counter, opts Options, reporter ProgressReporter, out io.Writer) []RunResult {
	results := make([]RunResult, 0, len(counters))

	for _, ctr := range counters {
		progressChan := make(chan progress.Update, opts.Workers*ProgressBufferMultiplier)

		var displayWg sync.WaitGroup
		displayWg.Add(1)
		go reporter.DisplayProgress(&displayWg, progressChan, opts.Workers, out)

		res := Run(ctx, ctr, opts, progressChan)

		close(progressChan)
		displayWg.Wait()

		if closer, ok := ctr.(io.Closer); ok {
			closer.Close()
		}
		results = append(results, res)
	}

	return results
}

// AnalyzeComparisonResults processes the results of a multi-strategy run and
// generates a summary report.
//
// It sorts the results by execution time, validates that the synchronized
// strategies all landed exactly on Expected and agree with each other, and
// displays a comparative table. The racy strategy's final value is reported
// but never asserted: its relationship to Expected is inherently
// nondeterministic.
func AnalyzeComparisonResults(results []RunResult, presenter ResultPresenter, errHandler ErrorHandler, verbose bool, out io.Writer) int {
	sort.Slice(results, func(i, j int) bool {
		if (results[i].Err == nil) != (results[j].Err == nil) {
			return results[i].Err == nil
		}
		return results[i].Duration < results[j].Duration
	})

	var firstError error
	successCount := 0
	for i := range results {
		if results[i].Err != nil {
			if firstError == nil {
				firstError = results[i].Err
			}
		} else {
			successCount++
		}
	}

	presenter.PresentComparisonTable(results, out)

	if successCount == 0 {
		fmt.Fprintf(out, "\nGlobal Status: Failure. No strategy could complete the run.\n")
		return errHandler.HandleError(firstError, out)
	}

	// Synchronized strategies are deterministic: each must land exactly on
	// Expected, and therefore on each other.
	var firstSynced *RunResult
	for i := range results {
		res := &results[i]
		if res.Err != nil || !counter.IsSynchronized(res.Strategy) {
			continue
		}
		if firstSynced == nil {
			firstSynced = res
			continue
		}
		if res.Actual != firstSynced.Actual {
			fmt.Fprintf(out, "\nGlobal Status: CRITICAL ERROR! Synchronized strategies disagree on the final count.\n")
			return errHandler.HandleError(apperrors.MismatchError{
				StrategyA: firstSynced.Strategy,
				ValueA:    firstSynced.Actual,
				StrategyB: res.Strategy,
				ValueB:    res.Actual,
			}, out)
		}
	}
	if firstSynced != nil && firstSynced.Actual != firstSynced.Expected {
		fmt.Fprintf(out, "\nGlobal Status: CRITICAL ERROR! Synchronized strategy lost increments.\n")
		return errHandler.HandleError(apperrors.MismatchError{
			StrategyA: firstSynced.Strategy,
			ValueA:    firstSynced.Actual,
			StrategyB: "expected",
			ValueB:    firstSynced.Expected,
		}, out)
	}

	fmt.Fprintf(out, "\nGlobal Status: Success. All runs completed.\n")
	presenter.PresentResult(results[0], verbose, out)
	return apperrors.ExitSuccess
}
