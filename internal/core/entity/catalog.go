package entity

// Catalog is the base type for reference records that carry a display name:
// clients, branches, materials and products.
type Catalog struct {
	BaseEntity

	// Name is the display name; list search matches against it.
	Name string `db:"name" json:"name"`
}

// NewCatalog creates a new Catalog with generated ID.
func NewCatalog(name string) Catalog {
	return Catalog{
		BaseEntity: NewBaseEntity(),
		Name:       name,
	}
}
