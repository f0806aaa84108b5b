package audit

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDiff(t *testing.T) {
	oldState := map[string]any{
		"name":      "Acme",
		"status":    "active",
		"items":     []any{map[string]any{"quantity": 1.0}},
		"updatedAt": "2026-01-01T00:00:00Z",
		"removed":   "x",
	}
	newState := map[string]any{
		"name":      "Acme Corp",
		"status":    "active",
		"items":     []any{map[string]any{"quantity": 1.0}},
		"updatedAt": "2026-02-01T00:00:00Z",
		"added":     true,
	}

	changes := Diff(oldState, newState)

	assert.Equal(t, map[string]any{
		"name":    map[string]any{"old": "Acme", "new": "Acme Corp"},
		"added":   map[string]any{"old": nil, "new": true},
		"removed": map[string]any{"old": "x", "new": nil},
	}, changes)
}

func TestDiff_NoChanges(t *testing.T) {
	state := map[string]any{"name": "Acme", "version": 1.0}
	next := map[string]any{"name": "Acme", "version": 2.0}
	assert.Empty(t, Diff(state, next))
}
