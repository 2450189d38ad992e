// Package counter provides the shared counter implementations exercised by
// the race demo: one deliberately unsynchronized strategy and three
// synchronized ones (mutex, atomic, channel ownership) for comparison runs.
package counter
