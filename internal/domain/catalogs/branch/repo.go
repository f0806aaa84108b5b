package branch

import (
	"boxfactory/internal/domain"
)

// Repository defines the interface for Branch persistence.
type Repository interface {
	domain.Repository[*Branch]
}
