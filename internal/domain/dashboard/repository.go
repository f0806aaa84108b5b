package dashboard

import (
	"context"
	"time"

	"boxfactory/internal/domain/documents/order"
	"boxfactory/internal/domain/documents/payment"
)

// Repository defines the read-only aggregate queries behind the dashboard.
// Every method must be safe to call concurrently with the others.
type Repository interface {
	CountOrders(ctx context.Context) (OrderCounts, error)
	CountClients(ctx context.Context) (ClientCounts, error)
	CountMaterials(ctx context.Context) (MaterialCounts, error)
	PaymentTotals(ctx context.Context) (PaymentTotals, error)

	// RecentOrders and RecentPayments return the newest records by creation
	// time, with ClientName set to the live client name or UnknownClient.
	RecentOrders(ctx context.Context, limit int) ([]*order.Order, error)
	RecentPayments(ctx context.Context, limit int) ([]*payment.Payment, error)

	LowStockMaterials(ctx context.Context) ([]LowStockItem, error)

	// MonthlyRevenue sums order totalAmount by (year, month) of orderDate
	// for orders placed on or after since, in ascending order.
	MonthlyRevenue(ctx context.Context, since time.Time) ([]MonthBucket, error)
}
