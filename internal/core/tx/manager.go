// Package tx defines the transaction boundary used by domain services.
// Postgres and the in-memory store each provide an implementation.
package tx

import "context"

// Manager runs a unit of work. A nil error from fn commits it; any error
// rolls it back. Calls made while a transaction is already carried by ctx
// join that transaction.
type Manager interface {
	RunInTransaction(ctx context.Context, fn func(ctx context.Context) error) error
}

// ReadOnlyManager is implemented by managers that can open read-only
// snapshots. List reads use it so the total count and the page agree.
type ReadOnlyManager interface {
	Manager
	ReadOnly(ctx context.Context, fn func(ctx context.Context) error) error
}

// Read runs fn read-only when m supports it and directly otherwise.
func Read(ctx context.Context, m Manager, fn func(ctx context.Context) error) error {
	if ro, ok := m.(ReadOnlyManager); ok {
		return ro.ReadOnly(ctx, fn)
	}
	return fn(ctx)
}
