package app

import (
	"flag"
	"fmt"
	"io"

	apperrors "github.com/darknoon/debugtargets/internal/errors"
	"github.com/darknoon/debugtargets/internal/fixture"
)

// RunSimple runs the deterministic fixture program. It has a tiny flag
// surface of its own because its whole point is a stable, predictable
// transcript for stepping through under a debugger.
func RunSimple(args []string, out, errWriter io.Writer) int {
	programName := "simple"
	var cmdArgs []string
	if len(args) > 0 {
		programName = args[0]
		cmdArgs = args[1:]
	}

	fs := flag.NewFlagSet(programName, flag.ContinueOnError)
	fs.SetOutput(errWriter)

	opts := fixture.DefaultOptions()
	fs.IntVar(&opts.LoopN, "n", opts.LoopN, "number of loop iterations")
	fs.BoolVar(&opts.Quiet, "quiet", opts.Quiet, "suppress per-iteration trace lines")

	if err := fs.Parse(cmdArgs); err != nil {
		if IsHelpError(err) {
			return apperrors.ExitSuccess
		}
		return apperrors.ExitErrorConfig
	}
	if fs.NArg() > 0 {
		fmt.Fprintf(errWriter, "%s: unexpected argument %q\n", programName, fs.Arg(0))
		return apperrors.ExitErrorConfig
	}
	if opts.LoopN < 0 {
		fmt.Fprintf(errWriter, "%s: -n must be >= 0\n", programName)
		return apperrors.ExitErrorConfig
	}

	fixture.Run(out, opts)
	return apperrors.ExitSuccess
}
