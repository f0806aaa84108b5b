package storage

import (
	"sync/atomic"
)

// Mode names the backend serving requests.
type Mode string

const (
	ModePostgres Mode = "postgres"
	ModeMemory   Mode = "memory"
)

var degraded atomic.Bool

// MarkDegraded records that the database was unreachable at startup and the
// process is serving from the in-memory store. The flag is never cleared.
func MarkDegraded() {
	degraded.Store(true)
}

// Degraded reports whether MarkDegraded was called.
func Degraded() bool {
	return degraded.Load()
}
