package application

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/storeline/storefront-api/internal/domains/products/adapters/memory"
	"github.com/storeline/storefront-api/internal/domains/products/domain"
	"github.com/storeline/storefront-api/internal/domains/products/ports"
)

// fakeOrderCounter reports per-product reference counts.
type fakeOrderCounter struct {
	counts map[string]int64
}

func (f *fakeOrderCounter) CountByProduct(_ context.Context, _, productID string) (int64, error) {
	return f.counts[productID], nil
}

func newCatalogService() (*Service, *fakeOrderCounter) {
	counter := &fakeOrderCounter{counts: map[string]int64{}}
	return NewService(memory.NewRepository(), counter), counter
}

func createInput(name string) ports.CreateProductInput {
	return ports.CreateProductInput{
		RetailerID: "ret-1",
		Name:       name,
		Price:      decimal.RequireFromString("9.99"),
		Stock:      5,
		Category:   "kitchen",
	}
}

func TestCreate_StartsActive(t *testing.T) {
	svc, _ := newCatalogService()

	product, err := svc.Create(context.Background(), createInput("Ceramic Mug"))
	require.NoError(t, err)
	require.NotEmpty(t, product.ID)
	require.True(t, product.IsActive)
	require.Equal(t, 5, product.Stock)
}

func TestCreate_Invalid(t *testing.T) {
	svc, _ := newCatalogService()

	input := createInput("  ")
	_, err := svc.Create(context.Background(), input)
	require.ErrorIs(t, err, ErrInvalidInput)

	input = createInput("Mug")
	input.Price = decimal.NewFromInt(-1)
	_, err = svc.Create(context.Background(), input)
	require.ErrorIs(t, err, ErrInvalidInput)

	input = createInput("Mug")
	input.Stock = -1
	_, err = svc.Create(context.Background(), input)
	require.ErrorIs(t, err, ErrInvalidInput)
}

func TestUpdate_PartialLeavesOtherFields(t *testing.T) {
	svc, _ := newCatalogService()

	product, err := svc.Create(context.Background(), createInput("Ceramic Mug"))
	require.NoError(t, err)

	price := decimal.RequireFromString("14.00")
	updated, err := svc.Update(context.Background(), "ret-1", product.ID, ports.UpdateProductInput{Price: &price})
	require.NoError(t, err)
	require.True(t, updated.Price.Equal(price))
	require.Equal(t, "Ceramic Mug", updated.Name)
	require.Equal(t, 5, updated.Stock)
	require.Equal(t, "kitchen", updated.Category)
}

func TestUpdate_RejectsNegativeStock(t *testing.T) {
	svc, _ := newCatalogService()

	product, err := svc.Create(context.Background(), createInput("Ceramic Mug"))
	require.NoError(t, err)

	stock := -3
	_, err = svc.Update(context.Background(), "ret-1", product.ID, ports.UpdateProductInput{Stock: &stock})
	require.ErrorIs(t, err, ErrInvalidInput)
}

func TestUpdate_ScopedToTenant(t *testing.T) {
	svc, _ := newCatalogService()

	product, err := svc.Create(context.Background(), createInput("Ceramic Mug"))
	require.NoError(t, err)

	name := "Stolen Mug"
	_, err = svc.Update(context.Background(), "ret-other", product.ID, ports.UpdateProductInput{Name: &name})
	require.ErrorIs(t, err, ports.ErrNotFound)
}

func TestToggleStatus_FlipsOnlyActive(t *testing.T) {
	svc, _ := newCatalogService()

	product, err := svc.Create(context.Background(), createInput("Ceramic Mug"))
	require.NoError(t, err)

	toggled, err := svc.ToggleStatus(context.Background(), "ret-1", product.ID)
	require.NoError(t, err)
	require.False(t, toggled.IsActive)
	require.Equal(t, product.Stock, toggled.Stock)

	toggled, err = svc.ToggleStatus(context.Background(), "ret-1", product.ID)
	require.NoError(t, err)
	require.True(t, toggled.IsActive)
}

// saleBeforeWriteRepo lets a guarded sale land between the service's read and
// its write, exercising the column-targeted update path.
type saleBeforeWriteRepo struct {
	*memory.Repository
	retailerID string
	productID  string
	quantity   int
	sold       bool
}

func (r *saleBeforeWriteRepo) Update(ctx context.Context, retailerID, id string, fields ports.UpdateProductInput) (*domain.Product, error) {
	if !r.sold {
		r.sold = true
		ok, err := r.AdjustStock(ctx, r.retailerID, r.productID, -r.quantity)
		if err != nil || !ok {
			return nil, ports.ErrNotFound
		}
	}
	return r.Repository.Update(ctx, retailerID, id, fields)
}

func TestToggleStatus_KeepsConcurrentSale(t *testing.T) {
	repo := memory.NewRepository()
	svc := NewService(repo, &fakeOrderCounter{counts: map[string]int64{}})

	input := createInput("Ceramic Mug")
	input.Stock = 10
	product, err := svc.Create(context.Background(), input)
	require.NoError(t, err)

	racing := &saleBeforeWriteRepo{Repository: repo, retailerID: "ret-1", productID: product.ID, quantity: 3}
	svc = NewService(racing, &fakeOrderCounter{counts: map[string]int64{}})

	toggled, err := svc.ToggleStatus(context.Background(), "ret-1", product.ID)
	require.NoError(t, err)
	require.False(t, toggled.IsActive)
	require.Equal(t, 7, toggled.Stock, "toggle must not write back stock read before the sale")
}

func TestUpdate_KeepsConcurrentSaleWhenStockOmitted(t *testing.T) {
	repo := memory.NewRepository()
	svc := NewService(repo, &fakeOrderCounter{counts: map[string]int64{}})

	input := createInput("Ceramic Mug")
	input.Stock = 10
	product, err := svc.Create(context.Background(), input)
	require.NoError(t, err)

	racing := &saleBeforeWriteRepo{Repository: repo, retailerID: "ret-1", productID: product.ID, quantity: 3}
	svc = NewService(racing, &fakeOrderCounter{counts: map[string]int64{}})

	name := "Stoneware Mug"
	updated, err := svc.Update(context.Background(), "ret-1", product.ID, ports.UpdateProductInput{Name: &name})
	require.NoError(t, err)
	require.Equal(t, "Stoneware Mug", updated.Name)
	require.Equal(t, 7, updated.Stock, "rename must not write back stock read before the sale")
}

func TestDelete_BlockedWhileReferenced(t *testing.T) {
	svc, counter := newCatalogService()

	product, err := svc.Create(context.Background(), createInput("Ceramic Mug"))
	require.NoError(t, err)
	counter.counts[product.ID] = 2

	err = svc.Delete(context.Background(), "ret-1", product.ID)
	require.ErrorIs(t, err, ErrProductReferenced)

	// Still present.
	_, err = svc.GetByID(context.Background(), "ret-1", product.ID)
	require.NoError(t, err)
}

func TestDelete_Unreferenced(t *testing.T) {
	svc, _ := newCatalogService()

	product, err := svc.Create(context.Background(), createInput("Ceramic Mug"))
	require.NoError(t, err)

	require.NoError(t, svc.Delete(context.Background(), "ret-1", product.ID))
	_, err = svc.GetByID(context.Background(), "ret-1", product.ID)
	require.ErrorIs(t, err, ports.ErrNotFound)
}

func TestListPublic_ActiveInStockOnly(t *testing.T) {
	svc, _ := newCatalogService()
	ctx := context.Background()

	visible, err := svc.Create(ctx, createInput("Ceramic Mug"))
	require.NoError(t, err)

	outOfStock := createInput("Empty Shelf")
	outOfStock.Stock = 0
	_, err = svc.Create(ctx, outOfStock)
	require.NoError(t, err)

	inactive, err := svc.Create(ctx, createInput("Retired Mug"))
	require.NoError(t, err)
	_, err = svc.ToggleStatus(ctx, "ret-1", inactive.ID)
	require.NoError(t, err)

	public, err := svc.ListPublic(ctx, "ret-1")
	require.NoError(t, err)
	require.Len(t, public, 1)
	require.Equal(t, visible.ID, public[0].ID)
}

func TestList_DefaultsPagination(t *testing.T) {
	svc, _ := newCatalogService()
	ctx := context.Background()

	for i := 0; i < 12; i++ {
		_, err := svc.Create(ctx, createInput("Mug"))
		require.NoError(t, err)
	}

	products, total, err := svc.List(ctx, "ret-1", ports.ListFilter{})
	require.NoError(t, err)
	require.EqualValues(t, 12, total)
	require.Len(t, products, 10)
}
