package shipment

import (
	"boxfactory/internal/domain"
)

// Repository defines the interface for Shipment persistence.
type Repository interface {
	domain.Repository[*Shipment]
}
