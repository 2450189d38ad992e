// Package racedemo orchestrates the shared-counter demonstration: it spawns
// a fixed number of parallel workers that each perform a fixed number of
// increments on one shared counter, yielding periodically to encourage
// interleaving, and blocks until every worker has terminated before reading
// the final value.
//
// With the default unsynchronized counter the final value is undefined by
// design; that observable drift is the purpose of the program. The package
// also runs the synchronized strategies side by side for comparison, where
// the final value must be exact.
package racedemo
