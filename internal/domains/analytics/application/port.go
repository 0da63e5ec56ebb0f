package application

import "context"

// Port exposes the aggregation use cases to adapters.
type Port interface {
	Dashboard(ctx context.Context, retailerID string) (*Dashboard, error)
	OrderStats(ctx context.Context, retailerID string) (*OrderStats, error)
}

var _ Port = (*Service)(nil)
