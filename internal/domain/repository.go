// Package domain provides core business logic interfaces and types.
package domain

import (
	"context"

	"boxfactory/internal/core/entity"
	"boxfactory/internal/core/id"
	"boxfactory/internal/domain/filter"
)

// --- Filter & Pagination ---

// ListFilter contains common filtering options for list operations.
type ListFilter struct {
	// Search matches the name column case-insensitively (catalogs only)
	Search string

	// Conditions are ANDed together
	Conditions []filter.Item

	// OrderBy is a column name, "-" prefix for descending (e.g. "-created_at")
	OrderBy string

	// Pagination
	Limit  int
	Offset int
}

// DefaultOrderBy lists newest records first.
const DefaultOrderBy = "-created_at"

// Where appends a condition and returns the filter for chaining.
func (f ListFilter) Where(items ...filter.Item) ListFilter {
	f.Conditions = append(append([]filter.Item(nil), f.Conditions...), items...)
	return f
}

// ListResult contains one page of results and the total match count.
type ListResult[T any] struct {
	Items      []T   `json:"items"`
	TotalCount int64 `json:"totalCount"`
	Limit      int   `json:"limit"`
	Offset     int   `json:"offset"`
}

// --- Repository Interfaces ---

// Repository defines CRUD operations shared by every entity store.
type Repository[T entity.Entity] interface {
	// Create inserts a new entity. Unique-key violations return a DUPLICATE_ENTRY AppError.
	Create(ctx context.Context, entity T) error

	// GetByID retrieves entity by ID (NOT_FOUND AppError if absent)
	GetByID(ctx context.Context, id id.ID) (T, error)

	// Update modifies existing entity (with optimistic locking)
	Update(ctx context.Context, entity T) error

	// Delete physically removes the entity. No cascade.
	Delete(ctx context.Context, id id.ID) error

	// List retrieves entities with filtering and pagination
	List(ctx context.Context, filter ListFilter) (ListResult[T], error)

	// Exists checks if entity with given ID exists
	Exists(ctx context.Context, id id.ID) (bool, error)
}

// --- Hooks ---

// HookEvent represents lifecycle event type.
type HookEvent string

const (
	BeforeCreate HookEvent = "before_create"
	AfterCreate  HookEvent = "after_create"
	BeforeDelete HookEvent = "before_delete"
	AfterDelete  HookEvent = "after_delete"
)

// Hook is a function that runs at specific lifecycle points.
type Hook[T any] func(ctx context.Context, entity T) error

// UpdateHook sees the stored state and the merged state of an update.
type UpdateHook[T any] func(ctx context.Context, prev, next T) error

// HookRegistry stores lifecycle hooks for an entity type.
type HookRegistry[T any] struct {
	hooks        map[HookEvent][]Hook[T]
	beforeUpdate []UpdateHook[T]
	afterUpdate  []UpdateHook[T]
}

// NewHookRegistry creates an empty hook registry.
func NewHookRegistry[T any]() *HookRegistry[T] {
	return &HookRegistry[T]{
		hooks: make(map[HookEvent][]Hook[T]),
	}
}

// On registers a hook for the specified event.
func (r *HookRegistry[T]) On(event HookEvent, hook Hook[T]) {
	r.hooks[event] = append(r.hooks[event], hook)
}

// Run executes all hooks for the specified event, stopping at the first error.
func (r *HookRegistry[T]) Run(ctx context.Context, event HookEvent, entity T) error {
	for _, hook := range r.hooks[event] {
		if err := hook(ctx, entity); err != nil {
			return err
		}
	}
	return nil
}

// OnBeforeCreate registers a hook to run before create.
func (r *HookRegistry[T]) OnBeforeCreate(hook Hook[T]) {
	r.On(BeforeCreate, hook)
}

// OnAfterCreate registers a hook to run after create.
func (r *HookRegistry[T]) OnAfterCreate(hook Hook[T]) {
	r.On(AfterCreate, hook)
}

// OnBeforeUpdate registers a hook to run before update.
func (r *HookRegistry[T]) OnBeforeUpdate(hook UpdateHook[T]) {
	r.beforeUpdate = append(r.beforeUpdate, hook)
}

// OnAfterUpdate registers a hook to run after update.
func (r *HookRegistry[T]) OnAfterUpdate(hook UpdateHook[T]) {
	r.afterUpdate = append(r.afterUpdate, hook)
}

// OnBeforeDelete registers a hook to run before delete.
func (r *HookRegistry[T]) OnBeforeDelete(hook Hook[T]) {
	r.On(BeforeDelete, hook)
}

// OnAfterDelete registers a hook to run after delete.
func (r *HookRegistry[T]) OnAfterDelete(hook Hook[T]) {
	r.On(AfterDelete, hook)
}

// RunBeforeCreate executes all before-create hooks.
func (r *HookRegistry[T]) RunBeforeCreate(ctx context.Context, entity T) error {
	return r.Run(ctx, BeforeCreate, entity)
}

// RunAfterCreate executes all after-create hooks.
func (r *HookRegistry[T]) RunAfterCreate(ctx context.Context, entity T) error {
	return r.Run(ctx, AfterCreate, entity)
}

// RunBeforeUpdate executes all before-update hooks.
func (r *HookRegistry[T]) RunBeforeUpdate(ctx context.Context, prev, next T) error {
	return runUpdate(ctx, r.beforeUpdate, prev, next)
}

// RunAfterUpdate executes all after-update hooks.
func (r *HookRegistry[T]) RunAfterUpdate(ctx context.Context, prev, next T) error {
	return runUpdate(ctx, r.afterUpdate, prev, next)
}

// RunBeforeDelete executes all before-delete hooks.
func (r *HookRegistry[T]) RunBeforeDelete(ctx context.Context, entity T) error {
	return r.Run(ctx, BeforeDelete, entity)
}

// RunAfterDelete executes all after-delete hooks.
func (r *HookRegistry[T]) RunAfterDelete(ctx context.Context, entity T) error {
	return r.Run(ctx, AfterDelete, entity)
}

func runUpdate[T any](ctx context.Context, hooks []UpdateHook[T], prev, next T) error {
	for _, hook := range hooks {
		if err := hook(ctx, prev, next); err != nil {
			return err
		}
	}
	return nil
}
