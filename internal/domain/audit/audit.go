// Package audit records create, update and delete events for every entity.
// Creates and deletes store a full snapshot, updates store a field diff.
package audit

import (
	"context"
	"encoding/json"
	"fmt"
	"reflect"
	"time"

	"boxfactory/internal/core/entity"
	"boxfactory/internal/core/id"
	"boxfactory/internal/domain"
)

// Action represents the type of audited operation.
type Action string

const (
	ActionCreate Action = "create"
	ActionUpdate Action = "update"
	ActionDelete Action = "delete"
)

// DefaultHistoryLimit caps a history query when the caller passes no limit.
const DefaultHistoryLimit = 100

// Entry is a single audit record.
type Entry struct {
	ID         id.ID           `json:"id"`
	EntityType string          `json:"entityType"`
	EntityID   id.ID           `json:"entityId"`
	Action     Action          `json:"action"`
	Changes    json.RawMessage `json:"changes"`
	CreatedAt  time.Time       `json:"createdAt"`
}

// Log persists and reads audit entries.
type Log interface {
	Record(ctx context.Context, entry Entry) error
	// History returns entries for one entity, newest first.
	History(ctx context.Context, entityType string, entityID id.ID, limit int) ([]Entry, error)
}

// ignoredFields change on every write and would make every diff noisy.
var ignoredFields = map[string]struct{}{
	"updatedAt": {},
	"version":   {},
}

// Attach registers after-hooks on hooks that write to log under entityType.
// Failures surface as after-hook errors, which the service logs and drops.
func Attach[T entity.Entity](hooks *domain.HookRegistry[T], log Log, entityType string) {
	hooks.OnAfterCreate(func(ctx context.Context, e T) error {
		return record(ctx, log, entityType, e.GetID(), ActionCreate, e)
	})
	hooks.OnAfterUpdate(func(ctx context.Context, prev, next T) error {
		oldState, err := snapshot(prev)
		if err != nil {
			return err
		}
		newState, err := snapshot(next)
		if err != nil {
			return err
		}
		changes := Diff(oldState, newState)
		if len(changes) == 0 {
			return nil
		}
		return record(ctx, log, entityType, next.GetID(), ActionUpdate, changes)
	})
	hooks.OnAfterDelete(func(ctx context.Context, e T) error {
		return record(ctx, log, entityType, e.GetID(), ActionDelete, e)
	})
}

func record(ctx context.Context, log Log, entityType string, entityID id.ID, action Action, payload any) error {
	changes, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshal audit payload: %w", err)
	}
	return log.Record(ctx, Entry{
		ID:         id.New(),
		EntityType: entityType,
		EntityID:   entityID,
		Action:     action,
		Changes:    changes,
		CreatedAt:  time.Now().UTC(),
	})
}

// snapshot renders v through its JSON field names.
func snapshot(v any) (map[string]any, error) {
	raw, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("marshal snapshot: %w", err)
	}
	var out map[string]any
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil, fmt.Errorf("unmarshal snapshot: %w", err)
	}
	return out, nil
}

// Diff calculates the difference between old and new entity states.
// Each changed key maps to {"old": ..., "new": ...}.
func Diff(oldState, newState map[string]any) map[string]any {
	changes := make(map[string]any)

	for key, newVal := range newState {
		if _, skip := ignoredFields[key]; skip {
			continue
		}
		oldVal, exists := oldState[key]
		if !exists {
			changes[key] = map[string]any{"old": nil, "new": newVal}
		} else if !reflect.DeepEqual(oldVal, newVal) {
			changes[key] = map[string]any{"old": oldVal, "new": newVal}
		}
	}

	for key, oldVal := range oldState {
		if _, skip := ignoredFields[key]; skip {
			continue
		}
		if _, exists := newState[key]; !exists {
			changes[key] = map[string]any{"old": oldVal, "new": nil}
		}
	}

	return changes
}
