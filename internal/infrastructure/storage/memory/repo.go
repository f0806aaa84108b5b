// Package memory is the in-process storage backend used when Postgres is
// unreachable at startup, and by tests. Records are deep-copied through JSON
// on every read and write so callers never share state with the store.
package memory

import (
	"context"
	"encoding/json"
	"fmt"
	"reflect"
	"sort"
	"strings"
	"sync"

	"boxfactory/internal/core/apperror"
	"boxfactory/internal/core/entity"
	"boxfactory/internal/core/id"
	"boxfactory/internal/domain"
	"boxfactory/internal/infrastructure/storage"
)

// Repo is a generic in-memory implementation of domain.Repository.
type Repo[T entity.Entity] struct {
	mu         sync.RWMutex
	rows       map[id.ID]T
	entityName string
	unique     []storage.UniqueKey
}

// NewRepo creates an empty collection. unique keys are checked on every write.
func NewRepo[T entity.Entity](entityName string, unique []storage.UniqueKey) *Repo[T] {
	return &Repo[T]{
		rows:       make(map[id.ID]T),
		entityName: entityName,
		unique:     unique,
	}
}

// Create inserts a copy of e.
func (r *Repo[T]) Create(ctx context.Context, e T) error {
	stored, err := clone(e)
	if err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.rows[e.GetID()]; ok {
		return apperror.NewConflict(fmt.Sprintf("%s %s already exists", r.entityName, e.GetID()))
	}
	if err := r.checkUnique(stored); err != nil {
		return err
	}
	r.rows[e.GetID()] = stored
	return nil
}

// GetByID returns a copy of the stored record.
func (r *Repo[T]) GetByID(ctx context.Context, entityID id.ID) (T, error) {
	r.mu.RLock()
	row, ok := r.rows[entityID]
	r.mu.RUnlock()

	if !ok {
		var zero T
		return zero, apperror.NewNotFound(r.entityName, entityID)
	}
	return clone(row)
}

// Update replaces the stored record when its version matches e's,
// then bumps the version on both.
func (r *Repo[T]) Update(ctx context.Context, e T) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	current, ok := r.rows[e.GetID()]
	if !ok {
		return apperror.NewNotFound(r.entityName, e.GetID())
	}
	if current.GetVersion() != e.GetVersion() {
		return apperror.NewConcurrentModification(r.entityName, e.GetID())
	}

	stored, err := clone(e)
	if err != nil {
		return err
	}
	if err := r.checkUnique(stored); err != nil {
		return err
	}

	stored.SetVersion(e.GetVersion() + 1)
	r.rows[e.GetID()] = stored
	e.SetVersion(stored.GetVersion())
	return nil
}

// Delete removes the record. Referencing records are left untouched.
func (r *Repo[T]) Delete(ctx context.Context, entityID id.ID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.rows[entityID]; !ok {
		return apperror.NewNotFound(r.entityName, entityID)
	}
	delete(r.rows, entityID)
	return nil
}

// Exists checks if a record with the given ID is stored.
func (r *Repo[T]) Exists(ctx context.Context, entityID id.ID) (bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.rows[entityID]
	return ok, nil
}

// List filters, sorts and pages the collection.
func (r *Repo[T]) List(ctx context.Context, f domain.ListFilter) (domain.ListResult[T], error) {
	type candidate struct {
		row  T
		cols map[string]any
	}

	r.mu.RLock()
	matched := make([]candidate, 0, len(r.rows))
	for _, row := range r.rows {
		cols := storage.StructToMap(row)
		if !r.accept(cols, f) {
			continue
		}
		matched = append(matched, candidate{row: row, cols: cols})
	}
	r.mu.RUnlock()

	column, desc := parseOrderBy(f.OrderBy)
	sort.SliceStable(matched, func(i, j int) bool {
		c, _ := compare(matched[i].cols[column], matched[j].cols[column])
		if c == 0 {
			c, _ = compare(matched[i].cols["id"], matched[j].cols["id"])
		}
		if desc {
			return c > 0
		}
		return c < 0
	})

	total := int64(len(matched))
	start := min(max(f.Offset, 0), len(matched))
	end := len(matched)
	if f.Limit > 0 {
		end = min(start+f.Limit, len(matched))
	}

	items := make([]T, 0, end-start)
	for _, c := range matched[start:end] {
		item, err := clone(c.row)
		if err != nil {
			return domain.ListResult[T]{}, err
		}
		items = append(items, item)
	}

	return domain.ListResult[T]{
		Items:      items,
		TotalCount: total,
		Limit:      f.Limit,
		Offset:     f.Offset,
	}, nil
}

// All returns copies of every stored record in no particular order.
func (r *Repo[T]) All(ctx context.Context) ([]T, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]T, 0, len(r.rows))
	for _, row := range r.rows {
		item, err := clone(row)
		if err != nil {
			return nil, err
		}
		out = append(out, item)
	}
	return out, nil
}

func (r *Repo[T]) accept(cols map[string]any, f domain.ListFilter) bool {
	// documents have no name column and ignore search
	if name, ok := cols["name"].(string); ok && f.Search != "" {
		if !strings.Contains(strings.ToLower(name), strings.ToLower(f.Search)) {
			return false
		}
	}
	for _, cond := range f.Conditions {
		if !matches(cols, cond) {
			return false
		}
	}
	return true
}

// checkUnique must be called with the write lock held.
func (r *Repo[T]) checkUnique(e T) error {
	if len(r.unique) == 0 {
		return nil
	}
	cols := storage.StructToMap(e)
	for _, key := range r.unique {
		value, _ := normalize(cols[key.Column]).(string)
		if value == "" {
			continue
		}
		for otherID, other := range r.rows {
			if otherID == e.GetID() {
				continue
			}
			if equal(storage.StructToMap(other)[key.Column], value) {
				return apperror.NewDuplicate(r.entityName, key.Field, value)
			}
		}
	}
	return nil
}

func parseOrderBy(orderBy string) (string, bool) {
	if orderBy == "" {
		orderBy = domain.DefaultOrderBy
	}
	if strings.HasPrefix(orderBy, "-") {
		return orderBy[1:], true
	}
	return orderBy, false
}

// clone deep-copies v through its JSON form. Unexported fields are dropped.
func clone[T any](v T) (T, error) {
	var out T
	raw, err := json.Marshal(v)
	if err != nil {
		return out, fmt.Errorf("clone marshal: %w", err)
	}

	t := reflect.TypeOf(v)
	if t.Kind() == reflect.Ptr {
		ptr := reflect.New(t.Elem())
		if err := json.Unmarshal(raw, ptr.Interface()); err != nil {
			return out, fmt.Errorf("clone unmarshal: %w", err)
		}
		return ptr.Interface().(T), nil
	}

	if err := json.Unmarshal(raw, &out); err != nil {
		return out, fmt.Errorf("clone unmarshal: %w", err)
	}
	return out, nil
}
