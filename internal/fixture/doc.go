// Package fixture implements the deterministic arithmetic/loop program used
// as a debugger target. Every function is pure and total; the transcript
// produced by Run is fixed-format and asserted byte for byte in tests.
package fixture
