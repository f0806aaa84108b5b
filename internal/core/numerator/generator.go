// Package numerator provides domain contracts for business-number generation.
// Implementations live in pkg/numerator.
package numerator

// Generator produces human-readable business identifiers such as
// INV-1718000000000-k3j9x0a1b.
//
// Numbers are a uniqueness heuristic only: the storage layer's unique index
// on the number column is the enforcement point.
type Generator interface {
	// Next returns a fresh number for the given prefix.
	Next(prefix Prefix) string
}
