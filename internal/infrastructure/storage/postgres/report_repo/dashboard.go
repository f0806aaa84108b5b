// Package report_repo holds the read-only aggregate queries behind the dashboard.
package report_repo

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/georgysavva/scany/v2/pgxscan"

	"boxfactory/internal/domain/dashboard"
	"boxfactory/internal/domain/documents/order"
	"boxfactory/internal/domain/documents/payment"
	"boxfactory/internal/infrastructure/storage"
	"boxfactory/internal/infrastructure/storage/postgres"
)

// DashboardRepo implements dashboard.Repository with hand-written SQL.
type DashboardRepo struct {
	txManager *postgres.TxManager
}

var _ dashboard.Repository = (*DashboardRepo)(nil)

// NewDashboardRepo creates a new dashboard repository.
func NewDashboardRepo(txManager *postgres.TxManager) *DashboardRepo {
	return &DashboardRepo{txManager: txManager}
}

var (
	countOrdersSQL = fmt.Sprintf(`
		SELECT
			COUNT(*) AS total,
			COUNT(*) FILTER (WHERE status IN (%s)) AS pending,
			COUNT(*) FILTER (WHERE status = '%s') AS completed
		FROM %s`, quoteList(order.PendingStatuses), order.StatusCompleted, storage.TableOrders)

	countClientsSQL = `
		SELECT
			COUNT(*) AS total,
			COUNT(*) FILTER (WHERE status = 'active') AS active
		FROM ` + storage.TableClients

	countMaterialsSQL = `
		SELECT
			COUNT(*) AS total,
			COUNT(*) FILTER (WHERE current_stock <= low_stock_threshold) AS low_stock
		FROM ` + storage.TableMaterials

	paymentTotalsSQL = `
		SELECT
			COALESCE(SUM(amount), 0)::float8 AS revenue,
			COUNT(*) FILTER (WHERE status = 'Pending') AS pending
		FROM ` + storage.TablePayments

	lowStockSQL = `
		SELECT id, name, current_stock, low_stock_threshold, unit
		FROM ` + storage.TableMaterials + `
		WHERE current_stock <= low_stock_threshold
		ORDER BY name, id`

	monthlyRevenueSQL = `
		SELECT
			EXTRACT(YEAR FROM order_date AT TIME ZONE 'UTC')::int AS year,
			EXTRACT(MONTH FROM order_date AT TIME ZONE 'UTC')::int AS month,
			COALESCE(SUM(total_amount), 0)::float8 AS revenue
		FROM ` + storage.TableOrders + `
		WHERE order_date >= $1
		GROUP BY year, month
		ORDER BY year, month`

	recentOrdersSQL   = recentSQL(storage.TableOrders, storage.ExtractDBColumns[order.Order]())
	recentPaymentsSQL = recentSQL(storage.TablePayments, storage.ExtractDBColumns[payment.Payment]())
)

// recentSQL selects the newest rows of table with client_name replaced by
// the live client name.
func recentSQL(table string, cols []string) string {
	sel := make([]string, 0, len(cols))
	for _, col := range cols {
		if col == "client_name" {
			sel = append(sel, fmt.Sprintf("COALESCE(c.name, '%s') AS client_name", dashboard.UnknownClient))
			continue
		}
		sel = append(sel, "t."+col)
	}
	return fmt.Sprintf(`
		SELECT %s
		FROM %s t
		LEFT JOIN %s c ON c.id = t.client_id
		ORDER BY t.created_at DESC, t.id DESC
		LIMIT $1`, strings.Join(sel, ", "), table, storage.TableClients)
}

func quoteList(values []string) string {
	quoted := make([]string, len(values))
	for i, v := range values {
		quoted[i] = "'" + strings.ReplaceAll(v, "'", "''") + "'"
	}
	return strings.Join(quoted, ", ")
}

func (r *DashboardRepo) CountOrders(ctx context.Context) (dashboard.OrderCounts, error) {
	var c dashboard.OrderCounts
	err := pgxscan.Get(ctx, r.txManager.GetQuerier(ctx), &c, countOrdersSQL)
	return c, err
}

func (r *DashboardRepo) CountClients(ctx context.Context) (dashboard.ClientCounts, error) {
	var c dashboard.ClientCounts
	err := pgxscan.Get(ctx, r.txManager.GetQuerier(ctx), &c, countClientsSQL)
	return c, err
}

func (r *DashboardRepo) CountMaterials(ctx context.Context) (dashboard.MaterialCounts, error) {
	var c dashboard.MaterialCounts
	err := pgxscan.Get(ctx, r.txManager.GetQuerier(ctx), &c, countMaterialsSQL)
	return c, err
}

func (r *DashboardRepo) PaymentTotals(ctx context.Context) (dashboard.PaymentTotals, error) {
	var t dashboard.PaymentTotals
	err := pgxscan.Get(ctx, r.txManager.GetQuerier(ctx), &t, paymentTotalsSQL)
	return t, err
}

func (r *DashboardRepo) RecentOrders(ctx context.Context, limit int) ([]*order.Order, error) {
	var items []*order.Order
	if err := pgxscan.Select(ctx, r.txManager.GetQuerier(ctx), &items, recentOrdersSQL, limit); err != nil {
		return nil, fmt.Errorf("recent orders: %w", err)
	}
	return items, nil
}

func (r *DashboardRepo) RecentPayments(ctx context.Context, limit int) ([]*payment.Payment, error) {
	var items []*payment.Payment
	if err := pgxscan.Select(ctx, r.txManager.GetQuerier(ctx), &items, recentPaymentsSQL, limit); err != nil {
		return nil, fmt.Errorf("recent payments: %w", err)
	}
	return items, nil
}

func (r *DashboardRepo) LowStockMaterials(ctx context.Context) ([]dashboard.LowStockItem, error) {
	items := make([]dashboard.LowStockItem, 0)
	if err := pgxscan.Select(ctx, r.txManager.GetQuerier(ctx), &items, lowStockSQL); err != nil {
		return nil, fmt.Errorf("low stock: %w", err)
	}
	return items, nil
}

func (r *DashboardRepo) MonthlyRevenue(ctx context.Context, since time.Time) ([]dashboard.MonthBucket, error) {
	var items []dashboard.MonthBucket
	if err := pgxscan.Select(ctx, r.txManager.GetQuerier(ctx), &items, monthlyRevenueSQL, since); err != nil {
		return nil, fmt.Errorf("monthly revenue: %w", err)
	}
	return items, nil
}
