package payment_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"boxfactory/internal/core/apperror"
	"boxfactory/internal/core/id"
	corenum "boxfactory/internal/core/numerator"
	"boxfactory/internal/domain/catalogs/client"
	"boxfactory/internal/domain/documents"
	"boxfactory/internal/domain/documents/payment"
	"boxfactory/internal/infrastructure/storage/memory"
)

func TestCreate(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()

	c := client.NewClient("Acme", "sales@acme.com")
	c.Phone, c.Address, c.City, c.State, c.ZipCode = "1", "2", "3", "4", "5"
	require.NoError(t, client.NewService(store.Clients, store.TxManager).Create(ctx, c))

	gen := &corenum.MockGenerator{NextFunc: func(p corenum.Prefix) string { return string(p) + "-1" }}
	svc := payment.NewService(store.Payments, store.TxManager, documents.NewClientResolver(store.Clients.GetByID), store.Invoices.GetByID, gen)

	t.Run("numbered and stamped", func(t *testing.T) {
		p := payment.NewPayment(c.ID, 75, payment.MethodUPI)
		require.NoError(t, svc.Create(ctx, p))
		assert.Equal(t, "PAY-1", p.PaymentNumber)
		assert.Equal(t, "Acme", p.ClientName)
		assert.False(t, p.Date.IsZero())
	})

	t.Run("unknown invoice", func(t *testing.T) {
		missing := id.New()
		p := payment.NewPayment(c.ID, 75, payment.MethodCash)
		p.PaymentNumber = "PAY-2"
		p.InvoiceID = &missing
		err := svc.Create(ctx, p)
		require.Error(t, err)
		assert.Equal(t, "Invoice not found", err.(*apperror.AppError).Message)
	})

	t.Run("method required", func(t *testing.T) {
		p := payment.NewPayment(c.ID, 75, "")
		appErr, ok := apperror.AsAppError(svc.Create(ctx, p))
		require.True(t, ok)
		assert.Equal(t, []string{"Payment method is required"}, appErr.FieldErrors())
	})
}
