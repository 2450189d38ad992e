package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os/signal"
	"syscall"

	"github.com/darknoon/debugtargets/internal/cli"
	apperrors "github.com/darknoon/debugtargets/internal/errors"
	"github.com/darknoon/debugtargets/internal/logging"
	"github.com/darknoon/debugtargets/internal/metrics"
	"github.com/darknoon/debugtargets/internal/racedemo"
	"github.com/darknoon/debugtargets/internal/server"
	"github.com/darknoon/debugtargets/internal/sysmon"
	"github.com/darknoon/debugtargets/internal/ui"
)

// runDemo orchestrates the CLI demonstration run.
func (a *Application) runDemo(ctx context.Context, out io.Writer) int {
	// Lifecycle: timeout plus SIGINT/SIGTERM.
	ctx, cancelTimeout := context.WithTimeout(ctx, a.Config.Timeout)
	defer cancelTimeout()
	ctx, stopSignals := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stopSignals()

	counters, err := racedemo.GetCountersToRun(a.Config.Sync, a.Factory)
	if err != nil {
		return cli.CLIResultPresenter{}.HandleError(err, a.ErrWriter)
	}

	// The metrics server outlives the run context so a last scrape can still
	// observe the final values; it stops when runDemo returns.
	metricsSrv := a.startMetricsServer()
	defer a.stopMetricsServer()

	memCollector := metrics.NewMemoryCollector()

	if !a.Config.Quiet {
		a.printBanner(out)
	}

	var progressReporter racedemo.ProgressReporter
	progressOut := out
	if a.Config.Quiet {
		progressOut = io.Discard
		progressReporter = racedemo.NullProgressReporter{}
	} else {
		progressReporter = cli.CLIProgressReporter{}
	}

	opts := a.Config.ToRunOptions()
	if metricsSrv != nil {
		metricsSrv.Metrics().SetActiveWorkers(opts.Workers)
	}

	results := racedemo.ExecuteRuns(ctx, counters, opts, progressReporter, progressOut)

	if metricsSrv != nil {
		metricsSrv.Metrics().SetActiveWorkers(0)
		for _, res := range results {
			metricsSrv.Metrics().RecordRun(res.Strategy, res.Duration.Seconds(), res.Lost())
		}
	}

	outputCfg := cli.OutputConfig{
		OutputFile: a.Config.OutputFile,
		Quiet:      a.Config.Quiet,
		Verbose:    a.Config.Verbose,
	}

	var exitCode int
	if len(results) > 1 {
		exitCode = a.analyzeComparison(results, outputCfg, out)
	} else {
		exitCode = a.presentSingle(results[0], outputCfg, out)
	}

	if a.Config.Verbose && !a.Config.Quiet {
		cli.DisplayMemoryStats(memCollector.Delta(), out)
	}

	return exitCode
}

// presentSingle handles the default one-strategy path. The racy strategy's
// final value is printed without any assertion; only a run error (timeout,
// cancellation) produces a nonzero exit code.
func (a *Application) presentSingle(result racedemo.RunResult, outputCfg cli.OutputConfig, out io.Writer) int {
	if result.Err != nil {
		if errors.Is(result.Err, context.DeadlineExceeded) {
			return cli.CLIResultPresenter{}.HandleError(apperrors.TimeoutError{
				Operation: result.Strategy,
				Limit:     a.Config.Timeout,
			}, a.ErrWriter)
		}
		return cli.CLIResultPresenter{}.HandleError(result.Err, a.ErrWriter)
	}

	if err := cli.DisplayResultWithConfig(out, result, outputCfg); err != nil {
		fmt.Fprintf(a.ErrWriter, "Error saving report: %v\n", err)
		return apperrors.ExitErrorGeneric
	}
	return apperrors.ExitSuccess
}

// analyzeComparison handles the -sync all path: comparison table, mismatch
// detection, and the optional report file.
func (a *Application) analyzeComparison(results []racedemo.RunResult, outputCfg cli.OutputConfig, out io.Writer) int {
	presenter := cli.CLIResultPresenter{}
	exitCode := racedemo.AnalyzeComparisonResults(results, presenter, presenter, a.Config.Verbose, out)

	if outputCfg.OutputFile != "" {
		if err := cli.WriteResultToFile(results, outputCfg); err != nil {
			fmt.Fprintf(a.ErrWriter, "Error saving report: %v\n", err)
			return apperrors.ExitErrorGeneric
		}
		if !outputCfg.Quiet {
			fmt.Fprintf(out, "\n%s %s\n",
				ui.ColorSuccess("✓ Report saved to:"), ui.ColorPrimary(outputCfg.OutputFile))
		}
	}

	return exitCode
}

// printBanner prints the run parameters and a host summary. Real parallelism
// is what makes the demonstration work, so the core count is worth surfacing.
func (a *Application) printBanner(out io.Writer) {
	host := sysmon.CollectHostInfo()
	fmt.Fprintf(out, "%s %s\n", ui.ColorSecondary("Host:"), host)
	fmt.Fprintf(out, "%s strategy=%s workers=%d iterations=%d yield-every=%d\n\n",
		ui.ColorSecondary("Run: "),
		ui.ColorPrimary(a.Config.Sync), a.Config.Workers, a.Config.Iterations, a.Config.YieldEvery)
}

// startMetricsServer launches the Prometheus endpoint when -metrics-addr is
// set. Returns nil when the server is disabled.
func (a *Application) startMetricsServer() *server.Server {
	if a.Config.MetricsAddr == "" {
		return nil
	}

	srv := server.New(a.Config.MetricsAddr, a.Logger)
	ctx, cancel := context.WithCancel(context.Background())
	a.metricsCancel = cancel
	a.metricsDone = make(chan struct{})
	a.metricsSrv = srv

	go func() {
		defer close(a.metricsDone)
		if err := srv.Start(ctx); err != nil {
			a.Logger.Error("metrics server failed", err, logging.String("addr", a.Config.MetricsAddr))
		}
	}()
	return srv
}

// stopMetricsServer shuts the endpoint down and waits for it to exit.
func (a *Application) stopMetricsServer() {
	if a.metricsCancel == nil {
		return
	}
	a.metricsCancel()
	<-a.metricsDone
	a.metricsCancel = nil
	a.metricsSrv = nil
}
