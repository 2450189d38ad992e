package config

import (
	"flag"
	"fmt"
	"io"
	"strings"
	"time"

	apperrors "github.com/darknoon/debugtargets/internal/errors"
	"github.com/darknoon/debugtargets/internal/racedemo"
)

// EnvPrefix is the prefix for all environment variable overrides.
const EnvPrefix = "RACEDEMO_"

// DefaultTimeout bounds a run's wall time. The default demo finishes in well
// under a second on any multi-core machine; the generous bound only matters
// for absurd flag combinations.
const DefaultTimeout = 5 * time.Minute

// SyncAll selects every registered counter strategy for a comparison run.
const SyncAll = "all"

// AppConfig holds the complete race demo configuration. The zero-flag
// invocation reproduces the original demonstration: 8 workers, one million
// unsynchronized increments each.
type AppConfig struct {
	// Workers is the number of parallel workers.
	Workers int
	// Iterations is the number of increments per worker.
	Iterations int64
	// YieldEvery is the yield interval in iterations (power of two).
	YieldEvery int64
	// Sync selects the counter strategy ("none", "mutex", "atomic",
	// "channel") or "all" for a comparison run.
	Sync string
	// Timeout bounds the total run duration.
	Timeout time.Duration
	// Quiet reduces output to the essential result lines.
	Quiet bool
	// Verbose enables additional run details in the output.
	Verbose bool
	// OutputFile is a path to save the run report (empty for none).
	OutputFile string
	// MetricsAddr is the listen address for the Prometheus endpoint
	// (empty disables the server).
	MetricsAddr string
	// TUI launches the interactive dashboard instead of the CLI output.
	TUI bool
	// NoColor disables ANSI colors in the output.
	NoColor bool
	// AutoTune scales the iteration count toward TargetDuration using the
	// cached calibration profile.
	AutoTune bool
	// TargetDuration is the wall time auto-tune aims for.
	TargetDuration time.Duration
}

// ToRunOptions converts the configuration to the orchestration options.
func (c AppConfig) ToRunOptions() racedemo.Options {
	return racedemo.Options{
		Workers:    c.Workers,
		Iterations: c.Iterations,
		YieldEvery: c.YieldEvery,
	}
}

// ParseConfig parses command-line arguments into an AppConfig, applying the
// priority chain: CLI flags > environment variables > defaults.
//
// availableStrategies is used for flag validation and usage text; it comes
// from the counter factory so config stays decoupled from the registry.
func ParseConfig(programName string, args []string, errWriter io.Writer, availableStrategies []string) (AppConfig, error) {
	cfg := AppConfig{
		Workers:        racedemo.DefaultWorkers,
		Iterations:     racedemo.DefaultIterations,
		YieldEvery:     racedemo.DefaultYieldEvery,
		Sync:           "none",
		Timeout:        DefaultTimeout,
		TargetDuration: time.Second,
	}

	fs := flag.NewFlagSet(programName, flag.ContinueOnError)
	fs.SetOutput(errWriter)

	fs.IntVar(&cfg.Workers, "workers", cfg.Workers, "number of parallel workers incrementing the shared counter")
	fs.Int64Var(&cfg.Iterations, "iterations", cfg.Iterations, "increments performed by each worker")
	fs.Int64Var(&cfg.YieldEvery, "yield-every", cfg.YieldEvery, "yield the processor every N iterations (power of two)")
	fs.StringVar(&cfg.Sync, "sync", cfg.Sync, fmt.Sprintf("counter strategy: %s, or %q to compare all", strings.Join(availableStrategies, ", "), SyncAll))
	fs.DurationVar(&cfg.Timeout, "timeout", cfg.Timeout, "maximum run duration")
	fs.BoolVar(&cfg.Quiet, "quiet", cfg.Quiet, "print only the essential result lines")
	fs.BoolVar(&cfg.Quiet, "q", cfg.Quiet, "shorthand for -quiet")
	fs.BoolVar(&cfg.Verbose, "verbose", cfg.Verbose, "print additional run details")
	fs.BoolVar(&cfg.Verbose, "v", cfg.Verbose, "shorthand for -verbose")
	fs.StringVar(&cfg.OutputFile, "o", cfg.OutputFile, "write the run report to this file")
	fs.StringVar(&cfg.OutputFile, "output", cfg.OutputFile, "write the run report to this file")
	fs.StringVar(&cfg.MetricsAddr, "metrics-addr", cfg.MetricsAddr, "serve Prometheus metrics on this address while running")
	fs.BoolVar(&cfg.TUI, "tui", cfg.TUI, "launch the interactive dashboard")
	fs.BoolVar(&cfg.NoColor, "no-color", cfg.NoColor, "disable colored output")
	fs.BoolVar(&cfg.AutoTune, "auto-tune", cfg.AutoTune, "scale iterations toward -target-duration using the calibration cache")
	fs.DurationVar(&cfg.TargetDuration, "target-duration", cfg.TargetDuration, "wall time auto-tune aims for")

	if err := fs.Parse(args); err != nil {
		return AppConfig{}, err
	}
	if fs.NArg() > 0 {
		return AppConfig{}, apperrors.NewConfigError("unexpected argument %q", fs.Arg(0))
	}

	applyEnvOverrides(&cfg, fs)

	if err := validate(cfg, availableStrategies); err != nil {
		fmt.Fprintf(errWriter, "Error: %v\n", err)
		return AppConfig{}, err
	}

	return cfg, nil
}

// validate checks cross-field configuration invariants beyond what the
// orchestration options validate themselves.
func validate(cfg AppConfig, availableStrategies []string) error {
	if err := cfg.ToRunOptions().Validate(); err != nil {
		return apperrors.NewConfigError("%v", err)
	}
	if cfg.Sync != SyncAll {
		found := false
		for _, s := range availableStrategies {
			if cfg.Sync == s {
				found = true
				break
			}
		}
		if !found {
			return apperrors.NewConfigError("unknown -sync value %q (available: %s, %s)",
				cfg.Sync, strings.Join(availableStrategies, ", "), SyncAll)
		}
	}
	if cfg.Timeout <= 0 {
		return apperrors.NewConfigError("-timeout must be positive, got %s", cfg.Timeout)
	}
	if cfg.AutoTune && cfg.TargetDuration <= 0 {
		return apperrors.NewConfigError("-target-duration must be positive, got %s", cfg.TargetDuration)
	}
	if cfg.TUI && cfg.Quiet {
		return apperrors.NewConfigError("-tui and -quiet are mutually exclusive")
	}
	return nil
}
