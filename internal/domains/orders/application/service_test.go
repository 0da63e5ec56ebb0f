package application

import (
	"context"
	"fmt"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/storeline/storefront-api/internal/domains/orders/domain"
	"github.com/storeline/storefront-api/internal/domains/orders/ports"
)

// fakeOrderRepo mirrors the storage contract: Create decrements stock behind
// the stock >= quantity guard, Delete restores stock for pending orders.
type fakeOrderRepo struct {
	orders  map[string]*domain.Order
	product *ports.ProductSummary
	nextID  int
}

func newFakeOrderRepo(product *ports.ProductSummary) *fakeOrderRepo {
	return &fakeOrderRepo{orders: map[string]*domain.Order{}, product: product}
}

func (f *fakeOrderRepo) GetForSale(_ context.Context, _, productID string) (*ports.ProductSummary, error) {
	if f.product == nil || f.product.ID != productID {
		return nil, ports.ErrProductUnavailable
	}
	copy := *f.product
	return &copy, nil
}

func (f *fakeOrderRepo) Create(_ context.Context, order *domain.Order) (*domain.Order, error) {
	if f.product.Stock < order.Quantity {
		return nil, ports.ErrInsufficientStock
	}
	f.product.Stock -= order.Quantity
	f.nextID++
	copy := *order
	copy.ID = fmt.Sprintf("order-%d", f.nextID)
	f.orders[copy.ID] = &copy
	saved := copy
	return &saved, nil
}

func (f *fakeOrderRepo) GetByID(_ context.Context, retailerID, id string) (*domain.Order, error) {
	order, ok := f.orders[id]
	if !ok || order.RetailerID != retailerID {
		return nil, ports.ErrNotFound
	}
	copy := *order
	return &copy, nil
}

func (f *fakeOrderRepo) List(_ context.Context, retailerID string, filter ports.ListFilter) ([]*domain.Order, int64, error) {
	var list []*domain.Order
	for _, order := range f.orders {
		if order.RetailerID != retailerID {
			continue
		}
		if filter.Status != "" && string(order.Status) != filter.Status {
			continue
		}
		copy := *order
		list = append(list, &copy)
	}
	return list, int64(len(list)), nil
}

func (f *fakeOrderRepo) Update(_ context.Context, order *domain.Order) (*domain.Order, error) {
	if _, ok := f.orders[order.ID]; !ok {
		return nil, ports.ErrNotFound
	}
	copy := *order
	f.orders[order.ID] = &copy
	saved := copy
	return &saved, nil
}

func (f *fakeOrderRepo) Delete(_ context.Context, order *domain.Order) error {
	if _, ok := f.orders[order.ID]; !ok {
		return ports.ErrNotFound
	}
	if order.RestoresStockOnDelete() {
		f.product.Stock += order.Quantity
	}
	delete(f.orders, order.ID)
	return nil
}

func (f *fakeOrderRepo) CountByProduct(_ context.Context, retailerID, productID string) (int64, error) {
	var count int64
	for _, order := range f.orders {
		if order.RetailerID == retailerID && order.ProductID == productID {
			count++
		}
	}
	return count, nil
}

func testProduct(stock int) *ports.ProductSummary {
	return &ports.ProductSummary{
		ID:    "prod-1",
		Name:  "Ceramic Mug",
		Price: decimal.RequireFromString("12.50"),
		Stock: stock,
	}
}

func createInput(quantity int) ports.CreateOrderInput {
	return ports.CreateOrderInput{
		RetailerID:   "ret-1",
		ProductID:    "prod-1",
		CustomerName: "Ada",
		Quantity:     quantity,
	}
}

func TestCreate_SnapshotsPriceAndDecrementsStock(t *testing.T) {
	repo := newFakeOrderRepo(testProduct(10))
	svc := NewService(repo, repo)

	result, err := svc.Create(context.Background(), createInput(3))
	require.NoError(t, err)
	require.Equal(t, domain.StatusPending, result.Order.Status)
	require.True(t, result.Order.UnitPrice.Equal(decimal.RequireFromString("12.50")))
	require.True(t, result.Order.TotalAmount.Equal(decimal.RequireFromString("37.50")))
	require.Equal(t, 7, result.Product.Stock)
	require.Equal(t, 7, repo.product.Stock)
}

func TestCreate_InsufficientStock(t *testing.T) {
	repo := newFakeOrderRepo(testProduct(2))
	svc := NewService(repo, repo)

	_, err := svc.Create(context.Background(), createInput(5))
	var stockErr *InsufficientStockError
	require.ErrorAs(t, err, &stockErr)
	require.Equal(t, 2, stockErr.Available)
	require.Equal(t, 5, stockErr.Requested)
	require.Equal(t, 2, repo.product.Stock)
	require.Empty(t, repo.orders)
}

func TestCreate_LostRaceReportsCurrentStock(t *testing.T) {
	// Pre-check passes but the guarded decrement fails, as when a concurrent
	// order drained the stock between check and insert.
	repo := newFakeOrderRepo(testProduct(10))
	svc := NewService(repo, &raceCatalog{repo: repo, seen: testProduct(10)})

	repo.product.Stock = 1
	_, err := svc.Create(context.Background(), createInput(5))
	var stockErr *InsufficientStockError
	require.ErrorAs(t, err, &stockErr)
	require.Equal(t, 1, stockErr.Available)
	require.Equal(t, 1, repo.product.Stock)
}

// raceCatalog serves a stale snapshot on the first read and the live product
// afterwards.
type raceCatalog struct {
	repo *fakeOrderRepo
	seen *ports.ProductSummary
}

func (c *raceCatalog) GetForSale(ctx context.Context, retailerID, productID string) (*ports.ProductSummary, error) {
	if c.seen != nil {
		stale := *c.seen
		c.seen = nil
		return &stale, nil
	}
	return c.repo.GetForSale(ctx, retailerID, productID)
}

func TestCreate_ProductUnavailable(t *testing.T) {
	repo := newFakeOrderRepo(nil)
	svc := NewService(repo, repo)

	_, err := svc.Create(context.Background(), createInput(1))
	require.ErrorIs(t, err, ports.ErrProductUnavailable)
}

func TestCreate_RejectsBlankCustomerName(t *testing.T) {
	repo := newFakeOrderRepo(testProduct(5))
	svc := NewService(repo, repo)

	input := createInput(1)
	input.CustomerName = "   "
	_, err := svc.Create(context.Background(), input)
	require.ErrorIs(t, err, ErrInvalidInput)
	require.Equal(t, 5, repo.product.Stock)
}

func TestUpdateStatus_AcceptsAnyMemberOfSet(t *testing.T) {
	repo := newFakeOrderRepo(testProduct(10))
	svc := NewService(repo, repo)

	created, err := svc.Create(context.Background(), createInput(1))
	require.NoError(t, err)

	// No transition graph: delivered straight from pending is fine, and so is
	// moving back.
	updated, err := svc.UpdateStatus(context.Background(), "ret-1", created.Order.ID, ports.UpdateOrderInput{Status: "delivered"})
	require.NoError(t, err)
	require.Equal(t, domain.StatusDelivered, updated.Status)

	updated, err = svc.UpdateStatus(context.Background(), "ret-1", created.Order.ID, ports.UpdateOrderInput{Status: "processing"})
	require.NoError(t, err)
	require.Equal(t, domain.StatusProcessing, updated.Status)
}

func TestUpdateStatus_RejectsUnknownStatus(t *testing.T) {
	repo := newFakeOrderRepo(testProduct(10))
	svc := NewService(repo, repo)

	created, err := svc.Create(context.Background(), createInput(1))
	require.NoError(t, err)

	_, err = svc.UpdateStatus(context.Background(), "ret-1", created.Order.ID, ports.UpdateOrderInput{Status: "returned"})
	require.ErrorIs(t, err, ErrInvalidInput)
}

func TestUpdateStatus_SetsNotes(t *testing.T) {
	repo := newFakeOrderRepo(testProduct(10))
	svc := NewService(repo, repo)

	created, err := svc.Create(context.Background(), createInput(1))
	require.NoError(t, err)

	notes := "ship before friday"
	updated, err := svc.UpdateStatus(context.Background(), "ret-1", created.Order.ID, ports.UpdateOrderInput{Status: "confirmed", Notes: &notes})
	require.NoError(t, err)
	require.Equal(t, notes, updated.Notes)
}

func TestDelete_PendingRestoresStock(t *testing.T) {
	repo := newFakeOrderRepo(testProduct(10))
	svc := NewService(repo, repo)

	created, err := svc.Create(context.Background(), createInput(4))
	require.NoError(t, err)
	require.Equal(t, 6, repo.product.Stock)

	require.NoError(t, svc.Delete(context.Background(), "ret-1", created.Order.ID))
	require.Equal(t, 10, repo.product.Stock)
	require.Empty(t, repo.orders)
}

func TestDelete_CancelledDoesNotRestoreStock(t *testing.T) {
	repo := newFakeOrderRepo(testProduct(10))
	svc := NewService(repo, repo)

	created, err := svc.Create(context.Background(), createInput(4))
	require.NoError(t, err)
	_, err = svc.UpdateStatus(context.Background(), "ret-1", created.Order.ID, ports.UpdateOrderInput{Status: "cancelled"})
	require.NoError(t, err)

	require.NoError(t, svc.Delete(context.Background(), "ret-1", created.Order.ID))
	require.Equal(t, 6, repo.product.Stock)
}

func TestDelete_RejectsShippedOrder(t *testing.T) {
	repo := newFakeOrderRepo(testProduct(10))
	svc := NewService(repo, repo)

	created, err := svc.Create(context.Background(), createInput(1))
	require.NoError(t, err)
	_, err = svc.UpdateStatus(context.Background(), "ret-1", created.Order.ID, ports.UpdateOrderInput{Status: "shipped"})
	require.NoError(t, err)

	err = svc.Delete(context.Background(), "ret-1", created.Order.ID)
	require.ErrorIs(t, err, ErrNotDeletable)
	require.Len(t, repo.orders, 1)
}

func TestList_RejectsUnknownStatusFilter(t *testing.T) {
	repo := newFakeOrderRepo(testProduct(10))
	svc := NewService(repo, repo)

	_, _, err := svc.List(context.Background(), "ret-1", ports.ListFilter{Status: "archived"})
	require.ErrorIs(t, err, ErrInvalidInput)
}

func TestGetByID_ToleratesUnavailableProduct(t *testing.T) {
	repo := newFakeOrderRepo(testProduct(10))
	svc := NewService(repo, repo)

	created, err := svc.Create(context.Background(), createInput(1))
	require.NoError(t, err)

	// Product deactivated after the sale: the order must still resolve.
	repo.product = nil
	result, err := svc.GetByID(context.Background(), "ret-1", created.Order.ID)
	require.NoError(t, err)
	require.Nil(t, result.Product)
	require.Equal(t, created.Order.ID, result.Order.ID)
}

func TestGetByID_ScopedToTenant(t *testing.T) {
	repo := newFakeOrderRepo(testProduct(10))
	svc := NewService(repo, repo)

	created, err := svc.Create(context.Background(), createInput(1))
	require.NoError(t, err)

	_, err = svc.GetByID(context.Background(), "ret-other", created.Order.ID)
	require.ErrorIs(t, err, ports.ErrNotFound)
}
