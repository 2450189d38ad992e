// Package app wires configuration, orchestration, and presentation into the
// racedemo executable. The entry point in cmd/racedemo stays thin: it builds
// an Application from os.Args and maps Run's return value to the process exit
// code.
package app

import (
	"context"
	"errors"
	"flag"
	"io"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog"

	"github.com/darknoon/debugtargets/internal/calibration"
	"github.com/darknoon/debugtargets/internal/config"
	"github.com/darknoon/debugtargets/internal/counter"
	"github.com/darknoon/debugtargets/internal/logging"
	"github.com/darknoon/debugtargets/internal/server"
	"github.com/darknoon/debugtargets/internal/tui"
	"github.com/darknoon/debugtargets/internal/ui"
)

// Application represents the racedemo application instance.
type Application struct {
	Config    config.AppConfig
	Factory   counter.Factory
	ErrWriter io.Writer
	Logger    logging.Logger

	metricsSrv    *server.Server
	metricsCancel context.CancelFunc
	metricsDone   chan struct{}
}

// AppOption configures an Application during construction.
type AppOption func(*Application)

// WithFactory sets a custom counter Factory for the application.
func WithFactory(f counter.Factory) AppOption {
	return func(a *Application) { a.Factory = f }
}

// WithLogger sets a custom logger for the application.
func WithLogger(l logging.Logger) AppOption {
	return func(a *Application) { a.Logger = l }
}

// New creates a new Application instance by parsing command-line arguments.
func New(args []string, errWriter io.Writer, opts ...AppOption) (*Application, error) {
	app := &Application{ErrWriter: errWriter}
	for _, opt := range opts {
		opt(app)
	}
	if app.Factory == nil {
		app.Factory = counter.NewDefaultFactory()
	}
	if app.Logger == nil {
		app.Logger = logging.NewDefaultLogger()
	}

	availableStrategies := app.Factory.List()

	programName := "racedemo"
	var cmdArgs []string
	if len(args) > 0 {
		programName = args[0]
		cmdArgs = args[1:]
	}

	cfg, err := config.ParseConfig(programName, cmdArgs, errWriter, availableStrategies)
	if err != nil {
		return nil, err
	}

	app.Config = cfg
	return app, nil
}

// Run executes the application based on the configured mode.
func (a *Application) Run(ctx context.Context, out io.Writer) int {
	switch {
	case a.Config.Quiet:
		zerolog.SetGlobalLevel(zerolog.ErrorLevel)
	case a.Config.Verbose:
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	default:
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	}
	ui.InitTheme(a.Config.NoColor)

	if a.Config.AutoTune {
		a.Config.Iterations = calibration.AutoTune(
			a.Config.TargetDuration, calibration.GetDefaultProfilePath(), a.Logger)
	}

	if a.Config.TUI {
		return a.runTUI(ctx)
	}

	return a.runDemo(ctx, out)
}

// runTUI launches the interactive dashboard.
func (a *Application) runTUI(ctx context.Context) int {
	ctx, cancelTimeout := context.WithTimeout(ctx, a.Config.Timeout)
	defer cancelTimeout()
	ctx, stopSignals := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stopSignals()

	return tui.Run(ctx, a.Factory, a.Config, Version)
}

// IsHelpError checks if the error is a help flag error (--help was used).
func IsHelpError(err error) bool {
	return errors.Is(err, flag.ErrHelp)
}
