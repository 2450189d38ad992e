// Command generate-golden regenerates the fixture transcript golden file
// used by the fixture package tests. Run it from the repository root after
// any deliberate change to the transcript format:
//
//	go run ./cmd/generate-golden
package main

import (
	"bytes"
	"flag"
	"fmt"
	"os"

	"github.com/darknoon/debugtargets/internal/fixture"
)

const defaultGoldenPath = "internal/fixture/testdata/simple_golden.txt"

func main() {
	outPath := flag.String("o", defaultGoldenPath, "output path for the golden file")
	flag.Parse()

	var buf bytes.Buffer
	fixture.Run(&buf, fixture.DefaultOptions())

	if err := os.WriteFile(*outPath, buf.Bytes(), 0o644); err != nil {
		fmt.Fprintf(os.Stderr, "generate-golden: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("wrote %d bytes to %s\n", buf.Len(), *outPath)
}
