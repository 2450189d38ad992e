package main

import (
	"os"

	"github.com/darknoon/debugtargets/internal/app"
)

func main() {
	os.Exit(app.RunSimple(os.Args, os.Stdout, os.Stderr))
}
