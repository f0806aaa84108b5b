package entity

import (
	"context"
	"time"

	"boxfactory/internal/core/id"
)

// Validatable is implemented by entities that support self-validation.
// Validation checks field invariants only (no storage access).
type Validatable interface {
	// Validate checks entity invariants.
	// Returns nil if valid, AppError with the collected field errors otherwise.
	Validate(ctx context.Context) error
}

// Entity is the contract shared by every stored record.
// Implemented by *T for any T embedding BaseEntity plus a Validate method.
type Entity interface {
	Validatable
	GetID() id.ID
	GetVersion() int
	SetVersion(v int)
	StampCreated(now time.Time)
	StampUpdated(now time.Time)
}

// BaseEntity contains common fields for all entities.
type BaseEntity struct {
	// ID is the primary key (UUIDv7)
	ID id.ID `db:"id" json:"id"`

	// Version for optimistic locking (incremented on each update)
	Version int `db:"version" json:"version"`

	CreatedAt time.Time `db:"created_at" json:"createdAt"`
	UpdatedAt time.Time `db:"updated_at" json:"updatedAt"`
}

// NewBaseEntity creates a new BaseEntity with generated ID.
func NewBaseEntity() BaseEntity {
	return BaseEntity{
		ID:      id.New(),
		Version: 1,
	}
}

// GetID returns the entity ID.
func (b *BaseEntity) GetID() id.ID {
	return b.ID
}

// GetVersion returns the optimistic-lock version.
func (b *BaseEntity) GetVersion() int {
	return b.Version
}

// SetVersion updates the version number (used by repository after sync).
func (b *BaseEntity) SetVersion(v int) {
	b.Version = v
}

// StampCreated assigns identity and both timestamps for a new record.
// An ID that was set beforehand is kept.
func (b *BaseEntity) StampCreated(now time.Time) {
	if id.IsNil(b.ID) {
		b.ID = id.New()
	}
	if b.Version == 0 {
		b.Version = 1
	}
	b.CreatedAt = now
	b.UpdatedAt = now
}

// StampUpdated refreshes the modification timestamp.
func (b *BaseEntity) StampUpdated(now time.Time) {
	b.UpdatedAt = now
}
