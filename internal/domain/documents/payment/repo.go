package payment

import (
	"boxfactory/internal/domain"
)

// Repository defines the interface for Payment persistence.
type Repository interface {
	domain.Repository[*Payment]
}
