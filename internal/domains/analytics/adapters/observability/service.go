package observability

import (
	"context"
	"io"
	"log/slog"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
	nooptrace "go.opentelemetry.io/otel/trace/noop"

	"github.com/storeline/storefront-api/internal/domains/analytics/application"
)

const tracerName = "github.com/storeline/storefront-api/internal/domains/analytics/adapters/observability/service"

// Service decorates the aggregation service with tracing, logging, and metrics.
type Service struct {
	inner   application.Port
	tracer  trace.Tracer
	logger  *slog.Logger
	renders metric.Int64Counter
}

type Option func(*Service)

func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) {
		s.logger = logger
	}
}

func WithTracer(tr trace.Tracer) Option {
	return func(s *Service) {
		s.tracer = tr
	}
}

func WithMeter(m metric.Meter) Option {
	return func(s *Service) {
		if m != nil {
			s.renders, _ = m.Int64Counter("dashboard.renders")
		}
	}
}

// New wraps the core aggregation service.
func New(inner application.Port, opts ...Option) application.Port {
	s := &Service{
		inner:  inner,
		tracer: nooptrace.NewTracerProvider().Tracer(tracerName),
		logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(s)
		}
	}
	return s
}

func (s *Service) Dashboard(ctx context.Context, retailerID string) (*application.Dashboard, error) {
	ctx, span := s.tracer.Start(ctx, "Analytics.Dashboard",
		trace.WithAttributes(attribute.String("retailer.id", retailerID)))
	defer span.End()

	result, err := s.inner.Dashboard(ctx, retailerID)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		s.logger.LogAttrs(ctx, slog.LevelWarn, "dashboard aggregation failed", slog.String("error", err.Error()))
		return nil, err
	}
	if s.renders != nil {
		s.renders.Add(ctx, 1)
	}
	return result, nil
}

func (s *Service) OrderStats(ctx context.Context, retailerID string) (*application.OrderStats, error) {
	ctx, span := s.tracer.Start(ctx, "Analytics.OrderStats",
		trace.WithAttributes(attribute.String("retailer.id", retailerID)))
	defer span.End()

	result, err := s.inner.OrderStats(ctx, retailerID)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		s.logger.LogAttrs(ctx, slog.LevelWarn, "order stats aggregation failed", slog.String("error", err.Error()))
		return nil, err
	}
	return result, nil
}
