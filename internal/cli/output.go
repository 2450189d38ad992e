// # Naming Conventions
//
// Functions in this package follow consistent naming patterns based on their behavior:
//
//   - Display* functions write formatted output to an [io.Writer].
//     They handle presentation logic and colorization.
//     Examples: [DisplayResult], [DisplayQuietResult], [DisplayProgress].
//
//   - Format* functions return a formatted string without performing I/O.
//     They are pure functions suitable for composition.
//     Example: [FormatQuietResult].
//
//   - Write* functions write data to files on the filesystem.
//     They handle file creation, directory setup, and error handling.
//     Example: [WriteResultToFile].

package cli

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	apperrors "github.com/darknoon/debugtargets/internal/errors"
	"github.com/darknoon/debugtargets/internal/racedemo"
	"github.com/darknoon/debugtargets/internal/ui"
)

// OutputConfig holds configuration for result output.
type OutputConfig struct {
	// OutputFile is the path to save the run report (empty for no file output).
	OutputFile string
	// Quiet mode suppresses everything except the final counter value.
	Quiet bool
	// Verbose adds duration and loss details to the result display.
	Verbose bool
}

// WriteResultToFile writes a run report to a file, creating parent
// directories as needed. A nil or empty path is a no-op.
func WriteResultToFile(results []racedemo.RunResult, config OutputConfig) error {
	if config.OutputFile == "" {
		return nil
	}

	dir := filepath.Dir(config.OutputFile)
	if dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return apperrors.WrapError(err, "failed to create directory")
		}
	}

	file, err := os.Create(config.OutputFile)
	if err != nil {
		return apperrors.WrapError(err, "failed to create output file")
	}
	defer file.Close()

	fmt.Fprintf(file, "# Shared Counter Run Report\n")
	fmt.Fprintf(file, "# Generated: %s\n", time.Now().Format(time.RFC3339))
	fmt.Fprintf(file, "# Runs: %d\n", len(results))
	fmt.Fprintf(file, "\n")

	for _, res := range results {
		fmt.Fprintf(file, "strategy=%s expected=%d actual=%d lost=%d duration=%s",
			res.Strategy, res.Expected, res.Actual, res.Lost(), res.Duration)
		if res.Err != nil {
			fmt.Fprintf(file, " error=%q", res.Err)
		}
		fmt.Fprintf(file, "\n")
	}

	return nil
}

// FormatQuietResult formats a result for quiet mode output.
// Returns the final counter value alone, suitable for scripting.
func FormatQuietResult(result racedemo.RunResult) string {
	return fmt.Sprintf("%d", result.Actual)
}

// DisplayQuietResult outputs a result in quiet mode (minimal output).
func DisplayQuietResult(out io.Writer, result racedemo.RunResult) {
	fmt.Fprintln(out, FormatQuietResult(result))
}

// DisplayResultWithConfig displays a result honoring the output
// configuration, then appends the run report to the output file if one is
// configured. This is the unified path for all non-TUI output modes.
func DisplayResultWithConfig(out io.Writer, result racedemo.RunResult, config OutputConfig) error {
	if config.Quiet {
		DisplayQuietResult(out, result)
	} else {
		DisplayResult(result, config.Verbose, out)
	}

	if config.OutputFile != "" {
		if err := WriteResultToFile([]racedemo.RunResult{result}, config); err != nil {
			return err
		}
		if !config.Quiet {
			fmt.Fprintf(out, "\n%s %s\n",
				ui.ColorSuccess("✓ Report saved to:"), ui.ColorPrimary(config.OutputFile))
		}
	}

	return nil
}
