package order

import (
	"context"

	"boxfactory/internal/core/id"
	"boxfactory/internal/domain"
)

// Repository defines the interface for Order persistence.
type Repository interface {
	domain.Repository[*Order]

	// FindByItemID returns the order that contains the item
	// (NOT_FOUND AppError if no order does).
	FindByItemID(ctx context.Context, itemID id.ID) (*Order, error)
}
