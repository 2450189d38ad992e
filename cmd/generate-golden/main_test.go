package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/darknoon/debugtargets/internal/fixture"
)

// TestGoldenFileUpToDate fails when the checked-in golden file no longer
// matches the transcript the fixture actually produces.
func TestGoldenFileUpToDate(t *testing.T) {
	var buf bytes.Buffer
	fixture.Run(&buf, fixture.DefaultOptions())

	goldenPath := filepath.Join("..", "..", "internal", "fixture", "testdata", "simple_golden.txt")
	golden, err := os.ReadFile(goldenPath)
	if err != nil {
		t.Fatalf("reading golden file: %v", err)
	}

	if !bytes.Equal(buf.Bytes(), golden) {
		t.Errorf("golden file out of date, regenerate with go run ./cmd/generate-golden\ngot:\n%s\nwant:\n%s",
			buf.String(), golden)
	}
}
