package dashboard

import (
	"context"
	"fmt"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/codes"
	"golang.org/x/sync/errgroup"

	"boxfactory/internal/core/apperror"
	"boxfactory/internal/domain/documents/order"
	"boxfactory/internal/domain/documents/payment"
)

var tracer = otel.Tracer("boxfactory/dashboard")

// Service provides dashboard statistics.
type Service struct {
	repo Repository
	now  func() time.Time
}

// NewService creates a new dashboard service.
func NewService(repo Repository) *Service {
	return &Service{
		repo: repo,
		now:  func() time.Time { return time.Now().UTC() },
	}
}

// WithClock overrides the reference time (tests).
func (s *Service) WithClock(now func() time.Time) *Service {
	s.now = now
	return s
}

// GetStats runs the eight aggregate queries concurrently and merges them.
// Any failure fails the whole call; partial results are never returned.
func (s *Service) GetStats(ctx context.Context) (*Stats, error) {
	ctx, span := tracer.Start(ctx, "dashboard.GetStats")
	defer span.End()

	var (
		orders    OrderCounts
		clients   ClientCounts
		materials MaterialCounts
		payments  PaymentTotals
		recentOrd []*order.Order
		recentPay []*payment.Payment
		lowStock  []LowStockItem
		buckets   []MonthBucket
	)

	now := s.now()
	since := WindowStart(now)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) { orders, err = s.repo.CountOrders(gctx); return wrap("count orders", err) })
	g.Go(func() (err error) { clients, err = s.repo.CountClients(gctx); return wrap("count clients", err) })
	g.Go(func() (err error) { materials, err = s.repo.CountMaterials(gctx); return wrap("count materials", err) })
	g.Go(func() (err error) { payments, err = s.repo.PaymentTotals(gctx); return wrap("payment totals", err) })
	g.Go(func() (err error) {
		recentOrd, err = s.repo.RecentOrders(gctx, RecentLimit)
		return wrap("recent orders", err)
	})
	g.Go(func() (err error) {
		recentPay, err = s.repo.RecentPayments(gctx, RecentLimit)
		return wrap("recent payments", err)
	})
	g.Go(func() (err error) { lowStock, err = s.repo.LowStockMaterials(gctx); return wrap("low stock", err) })
	g.Go(func() (err error) {
		buckets, err = s.repo.MonthlyRevenue(gctx, since)
		return wrap("monthly revenue", err)
	})

	if err := g.Wait(); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "dashboard query failed")
		return nil, apperror.NewDatabase("dashboard stats", err)
	}

	stats := &Stats{
		TotalOrders:       orders.Total,
		PendingOrders:     orders.Pending,
		CompletedOrders:   orders.Completed,
		TotalClients:      clients.Total,
		ActiveClients:     clients.Active,
		TotalMaterials:    materials.Total,
		LowStockMaterials: materials.LowStock,
		TotalRevenue:      payments.Revenue,
		PendingPayments:   payments.Pending,
		RecentOrders:      nonNil(recentOrd),
		RecentPayments:    nonNil(recentPay),
		LowStockItems:     nonNil(lowStock),
		MonthlyRevenue:    LabelMonths(buckets),
	}

	return stats, nil
}

// WindowStart is the first instant of the month five months before now's month.
func WindowStart(now time.Time) time.Time {
	y, m, _ := now.Date()
	return time.Date(y, m-(TrailingMonths-1), 1, 0, 0, 0, 0, now.Location())
}

// LabelMonths converts buckets to short month names ("Jan"), keeping order.
func LabelMonths(buckets []MonthBucket) []MonthlyRevenue {
	out := make([]MonthlyRevenue, 0, len(buckets))
	for _, b := range buckets {
		out = append(out, MonthlyRevenue{
			Month:   time.Month(b.Month).String()[:3],
			Revenue: b.Revenue,
		})
	}
	return out
}

func wrap(op string, err error) error {
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

func nonNil[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}
