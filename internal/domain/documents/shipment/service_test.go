package shipment_test

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"boxfactory/internal/core/apperror"
	"boxfactory/internal/core/id"
	"boxfactory/internal/domain/catalogs/client"
	"boxfactory/internal/domain/documents"
	"boxfactory/internal/domain/documents/shipment"
	"boxfactory/internal/infrastructure/storage/memory"
	"boxfactory/pkg/numerator"
)

func TestCreate(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()

	c := client.NewClient("Acme", "sales@acme.com")
	c.Phone, c.Address, c.City, c.State, c.ZipCode = "1", "2", "3", "4", "5"
	require.NoError(t, client.NewService(store.Clients, store.TxManager).Create(ctx, c))

	svc := shipment.NewService(store.Shipments, store.TxManager, documents.NewClientResolver(store.Clients.GetByID), store.Orders.GetByID, numerator.New())

	sh := shipment.NewShipment(c.ID, "  1Z999 ")
	require.NoError(t, svc.Create(ctx, sh))
	assert.True(t, strings.HasPrefix(sh.ShipmentNumber, "SHIP-"))
	assert.Equal(t, "1Z999", sh.TrackingNumber)
	assert.Equal(t, shipment.StatusPending, sh.Status)

	missing := shipment.NewShipment(id.New(), "1Z1000")
	err := svc.Create(ctx, missing)
	require.Error(t, err)
	assert.Equal(t, "Client not found", err.(*apperror.AppError).Message)

	blank := shipment.NewShipment(c.ID, " ")
	assert.True(t, apperror.IsValidation(svc.Create(ctx, blank)))
}
