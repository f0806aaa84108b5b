package material

import (
	"boxfactory/internal/domain"
)

// Repository defines the interface for Material persistence.
type Repository interface {
	domain.Repository[*Material]
}
