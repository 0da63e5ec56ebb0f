package application

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"

	"github.com/storeline/storefront-api/internal/domains/analytics/ports"
	ordersdomain "github.com/storeline/storefront-api/internal/domains/orders/domain"
)

const (
	dashboardWindow = 30 * 24 * time.Hour
	seriesDays      = 7
	lowStockLimit   = 10
)

// ProductTotals summarizes the catalog.
type ProductTotals struct {
	Total      int `json:"total"`
	Active     int `json:"active"`
	Inactive   int `json:"inactive"`
	OutOfStock int `json:"out_of_stock"`
}

// OrderTotals summarizes orders over a window. Revenue counts delivered
// orders only and is formatted to two decimal places.
type OrderTotals struct {
	Total     int    `json:"total"`
	Pending   int    `json:"pending"`
	Delivered int    `json:"delivered"`
	Revenue   string `json:"revenue"`
}

// SeriesPoint is one calendar day of the order time series.
type SeriesPoint struct {
	Date  string `json:"date"`
	Count int    `json:"count"`
}

// Dashboard is the retailer dashboard aggregate.
type Dashboard struct {
	Products  ProductTotals           `json:"products"`
	Orders    OrderTotals             `json:"orders"`
	LowStock  []ports.LowStockProduct `json:"low_stock"`
	OrderFlow []SeriesPoint           `json:"order_flow"`
}

// OrderStats is the all-time variant: per-status counts plus delivered revenue.
type OrderStats struct {
	Total    int            `json:"total"`
	ByStatus map[string]int `json:"by_status"`
	Revenue  string         `json:"revenue"`
}

// Service folds raw rows into dashboard and statistics aggregates. Both
// surfaces share one aggregation primitive parameterized by time window.
type Service struct {
	reader ports.Reader
	now    func() time.Time
}

type Option func(*Service)

// WithClock overrides the time source; tests pin it for deterministic series.
func WithClock(now func() time.Time) Option {
	return func(s *Service) {
		s.now = now
	}
}

func NewService(reader ports.Reader, opts ...Option) *Service {
	s := &Service{reader: reader, now: time.Now}
	for _, opt := range opts {
		if opt != nil {
			opt(s)
		}
	}
	return s
}

// Dashboard issues its four fetches concurrently and joins them before
// aggregation. Any single failure fails the whole request; no partial
// dashboard is ever returned.
func (s *Service) Dashboard(ctx context.Context, retailerID string) (*Dashboard, error) {
	now := s.now().UTC()
	var (
		flags      []ports.ProductFlag
		windowed   []ports.OrderFacts
		lowStock   []ports.LowStockProduct
		orderTimes []time.Time
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		flags, err = s.reader.ProductFlags(gctx, retailerID)
		return err
	})
	g.Go(func() error {
		var err error
		windowed, err = s.reader.OrdersSince(gctx, retailerID, now.Add(-dashboardWindow))
		return err
	})
	g.Go(func() error {
		var err error
		lowStock, err = s.reader.LowestStock(gctx, retailerID, lowStockLimit)
		return err
	})
	g.Go(func() error {
		var err error
		orderTimes, err = s.reader.OrderTimesSince(gctx, retailerID, startOfDay(now).AddDate(0, 0, -(seriesDays-1)))
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	products := ProductTotals{Total: len(flags)}
	for _, f := range flags {
		if f.Active {
			products.Active++
		} else {
			products.Inactive++
		}
		if f.Stock == 0 {
			products.OutOfStock++
		}
	}

	agg := aggregateOrders(windowed)
	if lowStock == nil {
		lowStock = []ports.LowStockProduct{}
	}
	return &Dashboard{
		Products: products,
		Orders: OrderTotals{
			Total:     agg.total,
			Pending:   agg.byStatus[string(ordersdomain.StatusPending)],
			Delivered: agg.byStatus[string(ordersdomain.StatusDelivered)],
			Revenue:   agg.revenue.StringFixed(2),
		},
		LowStock:  lowStock,
		OrderFlow: buildSeries(now, orderTimes),
	}, nil
}

// OrderStats folds all-time orders into per-status counts and delivered
// revenue.
func (s *Service) OrderStats(ctx context.Context, retailerID string) (*OrderStats, error) {
	orders, err := s.reader.OrdersSince(ctx, retailerID, time.Time{})
	if err != nil {
		return nil, err
	}
	agg := aggregateOrders(orders)
	byStatus := make(map[string]int, len(ordersdomain.Statuses()))
	for _, status := range ordersdomain.Statuses() {
		byStatus[string(status)] = agg.byStatus[string(status)]
	}
	return &OrderStats{
		Total:    agg.total,
		ByStatus: byStatus,
		Revenue:  agg.revenue.StringFixed(2),
	}, nil
}

type orderAggregate struct {
	total    int
	byStatus map[string]int
	revenue  decimal.Decimal
}

// aggregateOrders is the shared fold: counts per status and sums revenue over
// delivered orders only. Every other status is excluded from revenue
// regardless of amount.
func aggregateOrders(orders []ports.OrderFacts) orderAggregate {
	agg := orderAggregate{byStatus: map[string]int{}, revenue: decimal.Zero}
	for _, order := range orders {
		agg.total++
		agg.byStatus[order.Status]++
		if order.Status == string(ordersdomain.StatusDelivered) {
			agg.revenue = agg.revenue.Add(order.TotalAmount)
		}
	}
	return agg
}

// buildSeries seeds one entry per UTC calendar day ending today, all at zero,
// then bumps the matching day per order. Always exactly seriesDays entries,
// oldest first.
func buildSeries(now time.Time, orderTimes []time.Time) []SeriesPoint {
	start := startOfDay(now).AddDate(0, 0, -(seriesDays - 1))
	index := make(map[string]int, seriesDays)
	series := make([]SeriesPoint, seriesDays)
	for i := 0; i < seriesDays; i++ {
		date := start.AddDate(0, 0, i).Format("2006-01-02")
		index[date] = i
		series[i] = SeriesPoint{Date: date, Count: 0}
	}
	for _, t := range orderTimes {
		date := t.UTC().Format("2006-01-02")
		if i, ok := index[date]; ok {
			series[i].Count++
		}
	}
	return series
}

func startOfDay(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
