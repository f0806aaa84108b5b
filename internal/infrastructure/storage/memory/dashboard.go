package memory

import (
	"context"
	"sort"
	"time"

	"boxfactory/internal/core/id"
	"boxfactory/internal/core/types"
	"boxfactory/internal/domain/catalogs/material"
	"boxfactory/internal/domain/dashboard"
	"boxfactory/internal/domain/documents/order"
	"boxfactory/internal/domain/documents/payment"
)

// DashboardRepo computes dashboard aggregates by scanning the collections.
type DashboardRepo struct {
	store *Store
}

var _ dashboard.Repository = (*DashboardRepo)(nil)

func (r *DashboardRepo) CountOrders(ctx context.Context) (dashboard.OrderCounts, error) {
	orders, err := r.store.Orders.All(ctx)
	if err != nil {
		return dashboard.OrderCounts{}, err
	}
	var c dashboard.OrderCounts
	for _, o := range orders {
		c.Total++
		if o.IsPending() {
			c.Pending++
		}
		if o.Status == order.StatusCompleted {
			c.Completed++
		}
	}
	return c, nil
}

func (r *DashboardRepo) CountClients(ctx context.Context) (dashboard.ClientCounts, error) {
	clients, err := r.store.Clients.All(ctx)
	if err != nil {
		return dashboard.ClientCounts{}, err
	}
	var c dashboard.ClientCounts
	for _, cl := range clients {
		c.Total++
		if cl.IsActive() {
			c.Active++
		}
	}
	return c, nil
}

func (r *DashboardRepo) CountMaterials(ctx context.Context) (dashboard.MaterialCounts, error) {
	materials, err := r.store.Materials.All(ctx)
	if err != nil {
		return dashboard.MaterialCounts{}, err
	}
	var c dashboard.MaterialCounts
	for _, m := range materials {
		c.Total++
		if m.IsLowStock() {
			c.LowStock++
		}
	}
	return c, nil
}

func (r *DashboardRepo) PaymentTotals(ctx context.Context) (dashboard.PaymentTotals, error) {
	payments, err := r.store.Payments.All(ctx)
	if err != nil {
		return dashboard.PaymentTotals{}, err
	}
	var t dashboard.PaymentTotals
	amounts := make([]float64, 0, len(payments))
	for _, p := range payments {
		amounts = append(amounts, p.Amount)
		if p.Status == payment.StatusPending {
			t.Pending++
		}
	}
	t.Revenue = types.Sum(amounts...)
	return t, nil
}

func (r *DashboardRepo) RecentOrders(ctx context.Context, limit int) ([]*order.Order, error) {
	orders, err := r.store.Orders.All(ctx)
	if err != nil {
		return nil, err
	}
	sort.Slice(orders, func(i, j int) bool { return newer(orders[i].CreatedAt, orders[j].CreatedAt, orders[i].ID, orders[j].ID) })
	orders = orders[:min(limit, len(orders))]

	names, err := r.clientNames(ctx)
	if err != nil {
		return nil, err
	}
	for _, o := range orders {
		o.ClientName = liveName(names, o.ClientID)
	}
	return orders, nil
}

func (r *DashboardRepo) RecentPayments(ctx context.Context, limit int) ([]*payment.Payment, error) {
	payments, err := r.store.Payments.All(ctx)
	if err != nil {
		return nil, err
	}
	sort.Slice(payments, func(i, j int) bool {
		return newer(payments[i].CreatedAt, payments[j].CreatedAt, payments[i].ID, payments[j].ID)
	})
	payments = payments[:min(limit, len(payments))]

	names, err := r.clientNames(ctx)
	if err != nil {
		return nil, err
	}
	for _, p := range payments {
		p.ClientName = liveName(names, p.ClientID)
	}
	return payments, nil
}

func (r *DashboardRepo) LowStockMaterials(ctx context.Context) ([]dashboard.LowStockItem, error) {
	materials, err := r.store.Materials.All(ctx)
	if err != nil {
		return nil, err
	}
	sort.Slice(materials, func(i, j int) bool { return materials[i].Name < materials[j].Name })

	out := make([]dashboard.LowStockItem, 0)
	for _, m := range materials {
		if !m.IsLowStock() {
			continue
		}
		out = append(out, lowStockItem(m))
	}
	return out, nil
}

func (r *DashboardRepo) MonthlyRevenue(ctx context.Context, since time.Time) ([]dashboard.MonthBucket, error) {
	orders, err := r.store.Orders.All(ctx)
	if err != nil {
		return nil, err
	}

	type key struct{ year, month int }
	sums := make(map[key]types.Money)
	for _, o := range orders {
		if o.OrderDate.Before(since) {
			continue
		}
		d := o.OrderDate.UTC()
		k := key{d.Year(), int(d.Month())}
		sums[k] = sums[k].Add(types.NewMoney(o.TotalAmount))
	}

	out := make([]dashboard.MonthBucket, 0, len(sums))
	for k, v := range sums {
		out = append(out, dashboard.MonthBucket{Year: k.year, Month: k.month, Revenue: types.ToFloat(v)})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Year != out[j].Year {
			return out[i].Year < out[j].Year
		}
		return out[i].Month < out[j].Month
	})
	return out, nil
}

func (r *DashboardRepo) clientNames(ctx context.Context) (map[id.ID]string, error) {
	clients, err := r.store.Clients.All(ctx)
	if err != nil {
		return nil, err
	}
	names := make(map[id.ID]string, len(clients))
	for _, c := range clients {
		names[c.ID] = c.Name
	}
	return names, nil
}

func liveName(names map[id.ID]string, clientID id.ID) string {
	if name, ok := names[clientID]; ok {
		return name
	}
	return dashboard.UnknownClient
}

func newer(a, b time.Time, aID, bID id.ID) bool {
	if !a.Equal(b) {
		return a.After(b)
	}
	return aID.String() > bID.String()
}

func lowStockItem(m *material.Material) dashboard.LowStockItem {
	return dashboard.LowStockItem{
		ID:                m.ID,
		Name:              m.Name,
		CurrentStock:      m.CurrentStock,
		LowStockThreshold: m.LowStockThreshold,
		Unit:              string(m.Unit),
	}
}
