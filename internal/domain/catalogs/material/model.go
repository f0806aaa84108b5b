// Package material provides the Material catalog: raw stock consumed by
// products (board, glue, ink, tape).
package material

import (
	"context"
	"strings"

	"boxfactory/internal/core/entity"
)

// Unit of measure for stock.
type Unit string

const (
	UnitKg     Unit = "kg"
	UnitLbs    Unit = "lbs"
	UnitPcs    Unit = "pcs"
	UnitM      Unit = "m"
	UnitSqm    Unit = "sqm"
	UnitLiters Unit = "liters"
	UnitSheets Unit = "sheets"
	UnitRolls  Unit = "rolls"
)

// Units lists the accepted units.
var Units = []string{"kg", "lbs", "pcs", "m", "sqm", "liters", "sheets", "rolls"}

// StockStatus is derived from stock and threshold; input values are ignored.
type StockStatus string

const (
	StatusInStock    StockStatus = "in_stock"
	StatusLowStock   StockStatus = "low_stock"
	StatusOutOfStock StockStatus = "out_of_stock"
)

// DefaultLowStockThreshold applies when a material is created without one.
const DefaultLowStockThreshold = 10

// Material is a stock item.
type Material struct {
	entity.Catalog

	Description       string  `db:"description" json:"description"`
	Unit              Unit    `db:"unit" json:"unit"`
	CurrentStock      float64 `db:"current_stock" json:"currentStock"`
	Price             float64 `db:"price" json:"price"`
	LowStockThreshold float64 `db:"low_stock_threshold" json:"lowStockThreshold"`

	Status StockStatus `db:"status" json:"status"`
}

// NewMaterial creates a material with the default threshold and derived status.
func NewMaterial(name string, unit Unit) *Material {
	m := &Material{
		Catalog:           entity.NewCatalog(name),
		Unit:              unit,
		LowStockThreshold: DefaultLowStockThreshold,
	}
	m.RecalculateStatus()
	return m
}

// Validate implements entity.Validatable interface.
func (m *Material) Validate(ctx context.Context) error {
	var p entity.Problems

	p.Require(m.Name, "Name is required")
	if strings.TrimSpace(string(m.Unit)) == "" {
		p.Add("Unit is required")
	} else {
		p.OneOf(string(m.Unit), Units, entity.EnumMessage("Unit", Units))
	}
	p.NonNegative(m.CurrentStock, "Current stock must be a non-negative number")
	p.NonNegative(m.Price, "Price must be a non-negative number")
	p.NonNegative(m.LowStockThreshold, "Low stock threshold must be a non-negative number")

	return p.Err()
}

// StatusFor derives the stock status.
func StatusFor(currentStock, lowStockThreshold float64) StockStatus {
	switch {
	case currentStock <= 0:
		return StatusOutOfStock
	case currentStock <= lowStockThreshold:
		return StatusLowStock
	default:
		return StatusInStock
	}
}

// RecalculateStatus overwrites Status from the stock fields.
func (m *Material) RecalculateStatus() {
	m.Status = StatusFor(m.CurrentStock, m.LowStockThreshold)
}

// IsLowStock reports whether stock is at or below the threshold.
// Out-of-stock materials are low stock too.
func (m *Material) IsLowStock() bool {
	return m.CurrentStock <= m.LowStockThreshold
}
