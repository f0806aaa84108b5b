package memory

import (
	"context"
	"sync"

	"boxfactory/internal/core/id"
	"boxfactory/internal/domain/audit"
)

// AuditLog keeps audit entries in process memory.
type AuditLog struct {
	mu      sync.RWMutex
	entries []audit.Entry
}

var _ audit.Log = (*AuditLog)(nil)

// NewAuditLog creates an empty log.
func NewAuditLog() *AuditLog {
	return &AuditLog{}
}

// Record appends an entry.
func (l *AuditLog) Record(ctx context.Context, entry audit.Entry) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.entries = append(l.entries, entry)
	return nil
}

// History returns entries for one entity, newest first.
func (l *AuditLog) History(ctx context.Context, entityType string, entityID id.ID, limit int) ([]audit.Entry, error) {
	if limit <= 0 {
		limit = audit.DefaultHistoryLimit
	}

	l.mu.RLock()
	defer l.mu.RUnlock()

	// entries are appended in time order
	out := make([]audit.Entry, 0)
	for i := len(l.entries) - 1; i >= 0 && len(out) < limit; i-- {
		e := l.entries[i]
		if e.EntityType == entityType && e.EntityID == entityID {
			out = append(out, e)
		}
	}
	return out, nil
}
