// Package refs resolves references between entities before a write.
//
// A reference that does not resolve is a client error (400), never a 404:
// the request itself is addressable, only its payload points nowhere.
// Resolution stops at the first failure and has no side effects.
package refs

import (
	"context"
	"fmt"

	"boxfactory/internal/core/apperror"
	"boxfactory/internal/core/id"
)

// Lookup loads a referenced entity. It must return a NOT_FOUND AppError
// when the entity does not exist.
type Lookup[T any] func(ctx context.Context, ref id.ID) (T, error)

// NotFound is the error for an unresolved single reference ("Client not found").
func NotFound(kind, field string, ref any) *apperror.AppError {
	return apperror.NewValidation(kind+" not found").
		WithDetail("field", field).
		WithDetail("id", ref)
}

// LineNotFound is the error for an unresolved list entry
// ("Product with ID 0190... not found").
func LineNotFound(kind, field string, ref any) *apperror.AppError {
	return apperror.NewValidation(fmt.Sprintf("%s with ID %v not found", kind, ref)).
		WithDetail("field", field).
		WithDetail("id", ref)
}

// Resolve loads a required reference.
func Resolve[T any](ctx context.Context, lookup Lookup[T], kind, field string, ref id.ID) (T, error) {
	return resolve(ctx, lookup, ref, func() error { return NotFound(kind, field, ref.String()) })
}

// ResolveOptional loads a reference only when it is set. ok reports whether
// a value was loaded.
func ResolveOptional[T any](ctx context.Context, lookup Lookup[T], kind, field string, ref *id.ID) (v T, ok bool, err error) {
	if ref == nil {
		return v, false, nil
	}
	v, err = Resolve(ctx, lookup, kind, field, *ref)
	if err != nil {
		return v, false, err
	}
	return v, true, nil
}

// ResolveLine loads a reference held by a list entry.
func ResolveLine[T any](ctx context.Context, lookup Lookup[T], kind, field string, ref id.ID) (T, error) {
	return resolve(ctx, lookup, ref, func() error { return LineNotFound(kind, field, ref.String()) })
}

func resolve[T any](ctx context.Context, lookup Lookup[T], ref id.ID, notFound func() error) (T, error) {
	var zero T
	if id.IsNil(ref) {
		return zero, notFound()
	}
	v, err := lookup(ctx, ref)
	if err != nil {
		if apperror.IsNotFound(err) {
			return zero, notFound()
		}
		return zero, fmt.Errorf("resolve reference %s: %w", ref, err)
	}
	return v, nil
}
