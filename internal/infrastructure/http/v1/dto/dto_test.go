package dto

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"boxfactory/internal/core/apperror"
	"boxfactory/internal/core/id"
	"boxfactory/internal/domain/documents/invoice"
	"boxfactory/internal/domain/documents/order"
)

func TestDate_UnmarshalJSON(t *testing.T) {
	tests := []struct {
		in   string
		want time.Time
	}{
		{`"2026-03-04"`, time.Date(2026, 3, 4, 0, 0, 0, 0, time.UTC)},
		{`"2026-03-04T10:20:30"`, time.Date(2026, 3, 4, 10, 20, 30, 0, time.UTC)},
		{`"2026-03-04T10:20:30+02:00"`, time.Date(2026, 3, 4, 8, 20, 30, 0, time.UTC)},
		{`""`, time.Time{}},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			var d Date
			require.NoError(t, json.Unmarshal([]byte(tt.in), &d))
			assert.True(t, tt.want.Equal(d.Time), d.Time)
		})
	}

	var d Date
	assert.Error(t, json.Unmarshal([]byte(`"04/03/2026"`), &d))
}

func TestUpdateInvoice_OptionalOrderRef(t *testing.T) {
	orderID := id.New()
	prev := invoice.NewInvoice(id.New(), 10)
	prev.OrderID = &orderID

	// absent keeps the link
	next, err := UpdateInvoiceRequest{}.ApplyTo(prev)
	require.NoError(t, err)
	assert.Equal(t, &orderID, next.OrderID)

	// blank clears it
	blank := ""
	next, err = UpdateInvoiceRequest{OrderID: &blank}.ApplyTo(prev)
	require.NoError(t, err)
	assert.Nil(t, next.OrderID)
	assert.Equal(t, &orderID, prev.OrderID)

	// malformed cannot resolve
	bad := "42"
	_, err = UpdateInvoiceRequest{OrderID: &bad}.ApplyTo(prev)
	require.Error(t, err)
	assert.True(t, apperror.IsValidation(err))
	assert.Equal(t, "Order not found", err.(*apperror.AppError).Message)
}

func TestCreateOrder_ItemsIgnoreDerivedFields(t *testing.T) {
	var req CreateOrderRequest
	require.NoError(t, json.Unmarshal([]byte(`{
		"clientId": "`+id.New().String()+`",
		"deliveryDate": "2026-06-01",
		"totalAmount": 999,
		"items": [{"productId": "`+id.New().String()+`", "quantity": 2, "unitPrice": 3, "totalPrice": 100, "productName": "x"}]
	}`), &req))

	o, err := req.ToEntity()
	require.NoError(t, err)
	assert.Equal(t, order.StatusNew, o.Status)
	assert.Equal(t, order.PriorityMedium, o.Priority)
	require.Len(t, o.Items, 1)
	assert.Zero(t, o.Items[0].TotalPrice)
	assert.Empty(t, o.Items[0].ProductName)
	assert.True(t, o.ItemsReplaced())
}

func TestUpdateOrder_KeepsItemsWhenAbsent(t *testing.T) {
	prev := order.NewOrder(id.New(), time.Now())
	prev.Items = []order.Item{{ID: id.New(), ProductID: id.New(), Quantity: 1, UnitPrice: 2}}

	status := string(order.StatusPacked)
	next, err := UpdateOrderRequest{Status: &status}.ApplyTo(prev)
	require.NoError(t, err)
	assert.Equal(t, order.StatusPacked, next.Status)
	assert.Len(t, next.Items, 1)
	assert.False(t, next.ItemsReplaced())
	assert.Equal(t, order.StatusNew, prev.Status)
}
