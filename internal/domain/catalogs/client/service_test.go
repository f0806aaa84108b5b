package client_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"boxfactory/internal/core/apperror"
	"boxfactory/internal/core/id"
	"boxfactory/internal/domain/catalogs/branch"
	"boxfactory/internal/domain/catalogs/client"
	"boxfactory/internal/infrastructure/storage/memory"
)

func newClient(name, email string) *client.Client {
	c := client.NewClient(name, email)
	c.Phone, c.Address, c.City, c.State, c.ZipCode = "555-0100", "1 Dock St", "Springfield", "IL", "62701"
	return c
}

func TestService_EmailIsUniqueIgnoringCase(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()
	svc := client.NewService(store.Clients, store.TxManager)

	require.NoError(t, svc.Create(ctx, newClient("Acme", "sales@acme.com")))

	err := svc.Create(ctx, newClient("Acme Two", " SALES@acme.com"))
	require.Error(t, err)
	assert.True(t, apperror.IsDuplicate(err))
	assert.Equal(t, 409, apperror.GetHTTPStatus(err))
}

func TestService_GetIsIdempotent(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()
	svc := client.NewService(store.Clients, store.TxManager)

	c := newClient("Acme", "sales@acme.com")
	require.NoError(t, svc.Create(ctx, c))

	first, err := svc.GetByID(ctx, c.ID)
	require.NoError(t, err)
	second, err := svc.GetByID(ctx, c.ID)
	require.NoError(t, err)
	assert.Equal(t, first, second)

	_, err = svc.GetByID(ctx, id.New())
	assert.Equal(t, "Client not found", err.(*apperror.AppError).Message)
}

func TestBranch_RequiresExistingClient(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()
	clients := client.NewService(store.Clients, store.TxManager)
	branches := branch.NewService(store.Branches, store.TxManager, store.Clients.GetByID)

	b := branch.NewBranch("North", id.New())
	b.Location = "Warehouse district"
	err := branches.Create(ctx, b)
	require.Error(t, err)
	assert.Equal(t, "Client not found", err.(*apperror.AppError).Message)
	assert.Equal(t, 400, apperror.GetHTTPStatus(err))

	exists, err := store.Branches.Exists(ctx, b.ID)
	require.NoError(t, err)
	assert.False(t, exists)

	c := newClient("Acme", "sales@acme.com")
	require.NoError(t, clients.Create(ctx, c))
	b.ClientID = c.ID
	require.NoError(t, branches.Create(ctx, b))
}
