package fixture

import (
	"fmt"
	"io"
)

// Add returns the sum of two integers.
func Add(a, b int) int {
	result := a + b
	return result
}

// Multiply returns the product of two integers.
func Multiply(a, b int) int {
	result := a * b
	return result
}

// CalculationResult aggregates the sum and product of one input pair.
type CalculationResult struct {
	Sum     int
	Product int
}

// Calculate combines Add and Multiply over the same inputs. It exists to
// give a debugger a nested call to step through.
func Calculate(x, y int) CalculationResult {
	sumResult := Add(x, y)
	productResult := Multiply(x, y)
	return CalculationResult{Sum: sumResult, Product: productResult}
}

// LoopExample accumulates the indices 0..n-1, printing one trace line per
// iteration with the running total. It returns the final total, which for
// n >= 0 equals n*(n-1)/2.
func LoopExample(w io.Writer, n int) int {
	total := 0
	for i := 0; i < n; i++ {
		total += i
		fmt.Fprintf(w, "Loop iteration %d, total so far: %d\n", i, total)
	}
	return total
}

// StringExample prints a composed greeting, giving a debugger string
// values to inspect.
func StringExample(w io.Writer) {
	greeting := "hello"
	name := "world"
	combined := fmt.Sprintf("%s, %s!", greeting, name)
	fmt.Fprintln(w, combined)
}

// Options controls the fixture transcript.
type Options struct {
	// LoopN is the iteration count passed to LoopExample.
	LoopN int
	// Quiet suppresses the per-iteration loop trace lines, keeping only the
	// function results.
	Quiet bool
}

// DefaultOptions returns the canonical fixture settings.
func DefaultOptions() Options {
	return Options{LoopN: 5}
}

// Run writes the full fixture transcript to w and always succeeds: every
// operation in the program is total over its inputs. The default transcript
// is fixed-format so debugger harnesses can assert on it byte for byte.
func Run(w io.Writer, opts Options) {
	fmt.Fprintln(w, "Starting simple")

	// Basic function call
	result := Add(5, 3)
	fmt.Fprintf(w, "add(5, 3) = %d\n", result)

	// Nested function calls
	calcResult := Calculate(4, 7)
	fmt.Fprintf(w, "calculate(4, 7) = {sum: %d, product: %d}\n", calcResult.Sum, calcResult.Product)

	// Loop with per-iteration trace
	loopOut := w
	if opts.Quiet {
		loopOut = io.Discard
	}
	loopResult := LoopExample(loopOut, opts.LoopN)
	fmt.Fprintf(w, "loop_example(%d) = %d\n", opts.LoopN, loopResult)

	// String handling
	StringExample(w)

	fmt.Fprintln(w, "Finished simple")
}
