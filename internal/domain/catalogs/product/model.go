// Package product provides the Product catalog with its bill of materials.
package product

import (
	"context"
	"fmt"
	"strings"

	"boxfactory/internal/core/entity"
	"boxfactory/internal/core/id"
)

// Status of a product.
type Status string

const (
	StatusActive   Status = "active"
	StatusInactive Status = "inactive"
)

// Statuses lists the accepted values.
var Statuses = []string{string(StatusActive), string(StatusInactive)}

// MaterialLine is one entry of the bill of materials.
//
// MaterialName and Unit are snapshots taken from the material when the line
// is written. Renaming the material later does not touch existing products.
type MaterialLine struct {
	MaterialID   id.ID   `json:"materialId"`
	MaterialName string  `json:"materialName"`
	Quantity     float64 `json:"quantity"`
	Unit         string  `json:"unit"`
	UnitPrice    float64 `json:"unitPrice"`
}

// Product is a box model the factory sells.
type Product struct {
	entity.Catalog

	Description string  `db:"description" json:"description"`
	Price       float64 `db:"price" json:"price"`
	Status      Status  `db:"status" json:"status"`

	// Materials is stored as a JSON document, in order
	Materials []MaterialLine `db:"materials" json:"materials"`

	materialsReplaced bool
}

// NewProduct creates an active product with an empty bill of materials.
func NewProduct(name, description string) *Product {
	return &Product{
		Catalog:     entity.NewCatalog(name),
		Description: description,
		Status:      StatusActive,
		Materials:   []MaterialLine{},
	}
}

// Validate implements entity.Validatable interface.
func (p *Product) Validate(ctx context.Context) error {
	var v entity.Problems

	v.Require(p.Name, "Name is required")
	v.Require(p.Description, "Description is required")
	v.NonNegative(p.Price, "Price must be a non-negative number")
	v.OneOf(string(p.Status), Statuses, entity.EnumMessage("Status", Statuses))

	for i, line := range p.Materials {
		n := i + 1
		v.Check(!id.IsNil(line.MaterialID), fmt.Sprintf("Material %d: materialId is required", n))
		v.NonNegative(line.Quantity, fmt.Sprintf("Material %d: quantity must be a non-negative number", n))
		v.NonNegative(line.UnitPrice, fmt.Sprintf("Material %d: unitPrice must be a non-negative number", n))
	}

	return v.Err()
}

// ReplaceMaterials sets a new bill of materials. The lines are resolved
// against the material catalog before the product is saved.
func (p *Product) ReplaceMaterials(lines []MaterialLine) {
	if lines == nil {
		lines = []MaterialLine{}
	}
	p.Materials = lines
	p.materialsReplaced = true
}

// MaterialsReplaced reports whether ReplaceMaterials was called on this value.
func (p *Product) MaterialsReplaced() bool {
	return p.materialsReplaced
}

// Normalize trims the display name and makes Materials non-nil.
func (p *Product) Normalize() {
	p.Name = strings.TrimSpace(p.Name)
	if p.Materials == nil {
		p.Materials = []MaterialLine{}
	}
}
