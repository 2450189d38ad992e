package app

import (
	"fmt"
	"io"
)

// Version is the application version, set at build time via
// -ldflags "-X github.com/darknoon/debugtargets/internal/app.Version=...".
var Version = "dev"

// HasVersionFlag reports whether args contain a version flag.
// Checked before full flag parsing so -version works without a valid config.
func HasVersionFlag(args []string) bool {
	for _, arg := range args {
		switch arg {
		case "-version", "--version", "-V":
			return true
		}
	}
	return false
}

// PrintVersion writes the version string.
func PrintVersion(out io.Writer) {
	fmt.Fprintf(out, "racedemo %s\n", Version)
}
