package invoice

import (
	"boxfactory/internal/domain"
)

// Repository defines the interface for Invoice persistence.
// InvoiceNumber uniqueness is enforced by the implementation (DUPLICATE_ENTRY).
type Repository interface {
	domain.Repository[*Invoice]
}
