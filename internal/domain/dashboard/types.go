// Package dashboard aggregates the headline numbers shown on the home screen.
package dashboard

import (
	"boxfactory/internal/core/id"
	"boxfactory/internal/domain/documents/order"
	"boxfactory/internal/domain/documents/payment"
)

// UnknownClient replaces the client name when the reference is dangling.
const UnknownClient = "Unknown Client"

// RecentLimit is the number of recent orders and payments returned.
const RecentLimit = 5

// TrailingMonths is the width of the monthly revenue window, current month included.
const TrailingMonths = 6

// OrderCounts groups order totals by status.
type OrderCounts struct {
	Total     int64 `db:"total"`
	Pending   int64 `db:"pending"`
	Completed int64 `db:"completed"`
}

// ClientCounts groups client totals by status.
type ClientCounts struct {
	Total  int64 `db:"total"`
	Active int64 `db:"active"`
}

// MaterialCounts counts materials at or below their threshold.
type MaterialCounts struct {
	Total    int64 `db:"total"`
	LowStock int64 `db:"low_stock"`
}

// PaymentTotals sums every payment regardless of status.
type PaymentTotals struct {
	Revenue float64 `db:"revenue"`
	Pending int64   `db:"pending"`
}

// LowStockItem is a material that needs reordering.
type LowStockItem struct {
	ID                id.ID   `db:"id" json:"id"`
	Name              string  `db:"name" json:"name"`
	CurrentStock      float64 `db:"current_stock" json:"currentStock"`
	LowStockThreshold float64 `db:"low_stock_threshold" json:"lowStockThreshold"`
	Unit              string  `db:"unit" json:"unit"`
}

// MonthBucket is order revenue for one calendar month.
type MonthBucket struct {
	Year    int     `db:"year"`
	Month   int     `db:"month"`
	Revenue float64 `db:"revenue"`
}

// MonthlyRevenue is a labelled bucket in the response.
type MonthlyRevenue struct {
	Month   string  `json:"month"`
	Revenue float64 `json:"revenue"`
}

// Stats is the flat dashboard payload.
type Stats struct {
	TotalOrders       int64 `json:"totalOrders"`
	PendingOrders     int64 `json:"pendingOrders"`
	CompletedOrders   int64 `json:"completedOrders"`
	TotalClients      int64 `json:"totalClients"`
	ActiveClients     int64 `json:"activeClients"`
	TotalMaterials    int64 `json:"totalMaterials"`
	LowStockMaterials int64 `json:"lowStockMaterials"`

	TotalRevenue    float64 `json:"totalRevenue"`
	PendingPayments int64   `json:"pendingPayments"`

	// ClientName on these records is the live client name, not the snapshot
	RecentOrders   []*order.Order     `json:"recentOrders"`
	RecentPayments []*payment.Payment `json:"recentPayments"`

	LowStockItems  []LowStockItem   `json:"lowStockItems"`
	MonthlyRevenue []MonthlyRevenue `json:"monthlyRevenue"`
}
