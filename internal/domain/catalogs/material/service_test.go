package material_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"boxfactory/internal/domain/catalogs/material"
	"boxfactory/internal/infrastructure/storage/memory"
)

func TestService_StatusIsDerived(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()
	svc := material.NewService(store.Materials, store.TxManager)

	m := material.NewMaterial("  Kraft board ", material.UnitSheets)
	m.CurrentStock = 5
	m.Status = material.StatusInStock
	require.NoError(t, svc.Create(ctx, m))
	assert.Equal(t, material.StatusLowStock, m.Status)
	assert.Equal(t, "Kraft board", m.Name)

	prev, err := svc.GetByID(ctx, m.ID)
	require.NoError(t, err)
	next := *prev
	next.CurrentStock = 0
	require.NoError(t, svc.Update(ctx, prev, &next))

	stored, err := svc.GetByID(ctx, m.ID)
	require.NoError(t, err)
	assert.Equal(t, material.StatusOutOfStock, stored.Status)
}
