package client

import (
	"boxfactory/internal/domain"
)

// Repository defines the interface for Client persistence.
// Email uniqueness is enforced by the implementation (DUPLICATE_ENTRY).
type Repository interface {
	domain.Repository[*Client]
}
