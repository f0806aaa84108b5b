package material

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"boxfactory/internal/core/apperror"
)

func TestStatusFor(t *testing.T) {
	tests := []struct {
		stock, threshold float64
		want             StockStatus
	}{
		{0, 10, StatusOutOfStock},
		{-1, 10, StatusOutOfStock},
		{5, 10, StatusLowStock},
		{10, 10, StatusLowStock},
		{11, 10, StatusInStock},
		{1, 0, StatusInStock},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, StatusFor(tt.stock, tt.threshold), "stock=%v threshold=%v", tt.stock, tt.threshold)
	}
}

func TestNewMaterial_Defaults(t *testing.T) {
	m := NewMaterial("Glue", UnitKg)
	assert.Equal(t, float64(DefaultLowStockThreshold), m.LowStockThreshold)
	assert.Equal(t, StatusOutOfStock, m.Status)
}

func TestValidate(t *testing.T) {
	m := &Material{Unit: "boxes", CurrentStock: -1, Price: -2, LowStockThreshold: -3}

	err := m.Validate(context.Background())
	appErr, ok := apperror.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, []string{
		"Name is required",
		"Unit must be one of: kg, lbs, pcs, m, sqm, liters, sheets, rolls",
		"Current stock must be a non-negative number",
		"Price must be a non-negative number",
		"Low stock threshold must be a non-negative number",
	}, appErr.FieldErrors())

	m.Unit = ""
	appErr, _ = apperror.AsAppError(m.Validate(context.Background()))
	assert.Contains(t, appErr.FieldErrors(), "Unit is required")
}
