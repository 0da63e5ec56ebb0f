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

	ordersdomain "github.com/storeline/storefront-api/internal/domains/orders/domain"
	ordersports "github.com/storeline/storefront-api/internal/domains/orders/ports"
)

const tracerName = "github.com/storeline/storefront-api/internal/domains/orders/adapters/observability/service"

// Service decorates the order service with tracing, logging, and metrics.
type Service struct {
	inner   ordersports.Service
	tracer  trace.Tracer
	logger  *slog.Logger
	metrics serviceMetrics
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
		s.metrics = newServiceMetrics(m)
	}
}

// New wraps the core order service.
func New(inner ordersports.Service, opts ...Option) ordersports.Service {
	s := &Service{
		inner:   inner,
		tracer:  nooptrace.NewTracerProvider().Tracer(tracerName),
		logger:  slog.New(slog.NewTextHandler(io.Discard, nil)),
		metrics: newServiceMetrics(nil),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(s)
		}
	}
	if s.tracer == nil {
		s.tracer = nooptrace.NewTracerProvider().Tracer(tracerName)
	}
	return s
}

func (s *Service) Create(ctx context.Context, input ordersports.CreateOrderInput) (*ordersports.OrderWithProduct, error) {
	ctx, span := s.tracer.Start(ctx, "OrderService.Create",
		trace.WithAttributes(
			attribute.String("order.product_id", input.ProductID),
			attribute.Int("order.quantity", input.Quantity),
		))
	defer span.End()

	result, err := s.inner.Create(ctx, input)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to create order",
			slog.String("product_id", input.ProductID), slog.Int("quantity", input.Quantity))
	}
	s.metrics.recordCreated(ctx)
	s.logInfo(ctx, "order created",
		slog.String("order_id", result.Order.ID),
		slog.String("total", result.Order.TotalAmount.String()))
	return result, nil
}

func (s *Service) GetByID(ctx context.Context, retailerID, id string) (*ordersports.OrderWithProduct, error) {
	ctx, span := s.tracer.Start(ctx, "OrderService.GetByID",
		trace.WithAttributes(attribute.String("order.id", id)))
	defer span.End()

	result, err := s.inner.GetByID(ctx, retailerID, id)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to load order", slog.String("order_id", id))
	}
	return result, nil
}

func (s *Service) List(ctx context.Context, retailerID string, filter ordersports.ListFilter) ([]*ordersdomain.Order, int64, error) {
	ctx, span := s.tracer.Start(ctx, "OrderService.List",
		trace.WithAttributes(attribute.String("filter.status", filter.Status)))
	defer span.End()

	orders, total, err := s.inner.List(ctx, retailerID, filter)
	if err != nil {
		return nil, 0, s.handleError(ctx, span, err, "failed to list orders")
	}
	return orders, total, nil
}

func (s *Service) UpdateStatus(ctx context.Context, retailerID, id string, input ordersports.UpdateOrderInput) (*ordersdomain.Order, error) {
	ctx, span := s.tracer.Start(ctx, "OrderService.UpdateStatus",
		trace.WithAttributes(attribute.String("order.id", id), attribute.String("order.status", input.Status)))
	defer span.End()

	result, err := s.inner.UpdateStatus(ctx, retailerID, id, input)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to update order status", slog.String("order_id", id))
	}
	s.logInfo(ctx, "order status updated",
		slog.String("order_id", result.ID), slog.String("status", string(result.Status)))
	return result, nil
}

func (s *Service) Delete(ctx context.Context, retailerID, id string) error {
	ctx, span := s.tracer.Start(ctx, "OrderService.Delete",
		trace.WithAttributes(attribute.String("order.id", id)))
	defer span.End()

	if err := s.inner.Delete(ctx, retailerID, id); err != nil {
		return s.handleError(ctx, span, err, "failed to delete order", slog.String("order_id", id))
	}
	s.metrics.recordDeleted(ctx)
	s.logInfo(ctx, "order deleted", slog.String("order_id", id))
	return nil
}

func (s *Service) logInfo(ctx context.Context, msg string, attrs ...slog.Attr) {
	if s.logger == nil {
		return
	}
	s.logger.LogAttrs(ctx, slog.LevelInfo, msg, attrs...)
}

func (s *Service) handleError(ctx context.Context, span trace.Span, err error, msg string, attrs ...slog.Attr) error {
	span.RecordError(err)
	span.SetStatus(codes.Error, err.Error())
	if s.logger != nil {
		attrs = append(attrs, slog.String("error", err.Error()))
		s.logger.LogAttrs(ctx, slog.LevelWarn, msg, attrs...)
	}
	return err
}

var _ ordersports.Service = (*Service)(nil)

type serviceMetrics struct {
	created metric.Int64Counter
	deleted metric.Int64Counter
}

func newServiceMetrics(m metric.Meter) serviceMetrics {
	if m == nil {
		return serviceMetrics{}
	}
	created, _ := m.Int64Counter("orders.created")
	deleted, _ := m.Int64Counter("orders.deleted")
	return serviceMetrics{created: created, deleted: deleted}
}

func (m serviceMetrics) recordCreated(ctx context.Context) {
	if m.created != nil {
		m.created.Add(ctx, 1)
	}
}

func (m serviceMetrics) recordDeleted(ctx context.Context) {
	if m.deleted != nil {
		m.deleted.Add(ctx, 1)
	}
}
