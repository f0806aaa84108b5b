package entity

// Document is the base type for business transactions issued to a client:
// orders, invoices, payments and shipments.
type Document struct {
	BaseEntity
	ClientAware

	Notes string `db:"notes" json:"notes"`
}

// NewDocument creates a new Document with generated ID.
func NewDocument() Document {
	return Document{
		BaseEntity: NewBaseEntity(),
	}
}
