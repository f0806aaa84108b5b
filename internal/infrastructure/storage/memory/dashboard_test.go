package memory

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"boxfactory/internal/core/id"
	"boxfactory/internal/domain/audit"
	"boxfactory/internal/domain/catalogs/client"
	"boxfactory/internal/domain/catalogs/material"
	"boxfactory/internal/domain/dashboard"
	"boxfactory/internal/domain/documents/order"
	"boxfactory/internal/domain/documents/payment"
)

func TestDashboard_Stats(t *testing.T) {
	ctx := context.Background()
	s := NewStore()
	now := time.Date(2026, time.May, 20, 12, 0, 0, 0, time.UTC)

	acme := client.NewClient("Acme", "acme@example.com")
	acme.StampCreated(now)
	require.NoError(t, s.Clients.Create(ctx, acme))

	for _, st := range []order.Status{order.StatusNew, order.StatusConfirmed, order.StatusCompleted} {
		o := order.NewOrder(acme.ID, now)
		o.Status = st
		o.OrderDate = now
		o.TotalAmount = 100
		o.StampCreated(now)
		require.NoError(t, s.Orders.Create(ctx, o))
	}
	old := order.NewOrder(id.New(), now)
	old.OrderDate = time.Date(2025, time.November, 30, 0, 0, 0, 0, time.UTC)
	old.TotalAmount = 999
	old.StampCreated(now.Add(-time.Hour))
	require.NoError(t, s.Orders.Create(ctx, old))

	low := material.NewMaterial("Glue", material.Unit("kg"))
	low.CurrentStock, low.LowStockThreshold = 2, 10
	require.NoError(t, s.Materials.Create(ctx, low))
	ok := material.NewMaterial("Board", material.Unit("sheets"))
	ok.CurrentStock, ok.LowStockThreshold = 200, 10
	require.NoError(t, s.Materials.Create(ctx, ok))

	pay := payment.NewPayment(id.New(), 50.5, payment.MethodCash)
	pay.StampCreated(now)
	require.NoError(t, s.Payments.Create(ctx, pay))

	svc := dashboard.NewService(s.Dashboard).WithClock(func() time.Time { return now })
	stats, err := svc.GetStats(ctx)
	require.NoError(t, err)

	assert.Equal(t, int64(4), stats.TotalOrders)
	assert.Equal(t, int64(3), stats.PendingOrders)
	assert.Equal(t, int64(1), stats.CompletedOrders)
	assert.Equal(t, int64(1), stats.TotalClients)
	assert.Equal(t, int64(2), stats.TotalMaterials)
	assert.Equal(t, int64(1), stats.LowStockMaterials)
	assert.Equal(t, 50.5, stats.TotalRevenue)
	assert.Equal(t, int64(1), stats.PendingPayments)

	require.Len(t, stats.RecentOrders, 4)
	assert.Equal(t, "Acme", stats.RecentOrders[0].ClientName)
	assert.Equal(t, dashboard.UnknownClient, stats.RecentOrders[3].ClientName)
	require.Len(t, stats.RecentPayments, 1)
	assert.Equal(t, dashboard.UnknownClient, stats.RecentPayments[0].ClientName)

	require.Len(t, stats.LowStockItems, 1)
	assert.Equal(t, "Glue", stats.LowStockItems[0].Name)

	assert.Equal(t, []dashboard.MonthlyRevenue{{Month: "May", Revenue: 300}}, stats.MonthlyRevenue)
}

func TestDashboard_Empty(t *testing.T) {
	stats, err := dashboard.NewService(NewStore().Dashboard).GetStats(context.Background())
	require.NoError(t, err)
	assert.Zero(t, stats.TotalOrders)
	assert.Empty(t, stats.RecentOrders)
	assert.NotNil(t, stats.LowStockItems)
	assert.Empty(t, stats.MonthlyRevenue)
}

func TestAuditLog_History(t *testing.T) {
	ctx := context.Background()
	log := NewAuditLog()
	target := id.New()

	for i, action := range []audit.Action{audit.ActionCreate, audit.ActionUpdate, audit.ActionDelete} {
		require.NoError(t, log.Record(ctx, audit.Entry{
			ID: id.New(), EntityType: "client", EntityID: target, Action: action,
			CreatedAt: time.Unix(int64(i), 0),
		}))
	}
	require.NoError(t, log.Record(ctx, audit.Entry{ID: id.New(), EntityType: "client", EntityID: id.New()}))

	entries, err := log.History(ctx, "client", target, 2)
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, audit.ActionDelete, entries[0].Action)
	assert.Equal(t, audit.ActionUpdate, entries[1].Action)
}
