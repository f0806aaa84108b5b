package product

import (
	"boxfactory/internal/domain"
)

// Repository defines the interface for Product persistence.
type Repository interface {
	domain.Repository[*Product]
}
