//go:build integration

package postgres

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	tcpostgres "github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/storeline/storefront-api/internal/domains/orders/domain"
	"github.com/storeline/storefront-api/internal/domains/orders/ports"
	productspostgres "github.com/storeline/storefront-api/internal/domains/products/adapters/persistence/postgres"
	productsdomain "github.com/storeline/storefront-api/internal/domains/products/domain"
	"github.com/storeline/storefront-api/internal/platform/migrations"
)

func setupOrdersPostgresContainer(t *testing.T) (*gorm.DB, func()) {
	ctx := context.Background()

	pgContainer, err := tcpostgres.RunContainer(ctx,
		testcontainers.WithImage("postgres:15-alpine"),
		tcpostgres.WithDatabase("storefront_test"),
		tcpostgres.WithUsername("test"),
		tcpostgres.WithPassword("test"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second),
		),
	)
	require.NoError(t, err)

	dsn, err := pgContainer.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	require.NoError(t, err)

	err = migrations.Run(db)
	require.NoError(t, err)

	cleanup := func() {
		sqlDB, _ := db.DB()
		if sqlDB != nil {
			sqlDB.Close()
		}
		pgContainer.Terminate(ctx)
	}

	return db, cleanup
}

func seedProduct(t *testing.T, db *gorm.DB, retailerID string, stock int) *productsdomain.Product {
	t.Helper()
	seed, err := productsdomain.NewProduct(retailerID, "Ceramic Mug", "", decimal.RequireFromString("12.50"), stock, "kitchen", "")
	require.NoError(t, err)
	product, err := productspostgres.NewRepository(db).Create(context.Background(), seed)
	require.NoError(t, err)
	return product
}

func newTestOrder(t *testing.T, retailerID, productID string, quantity int) *domain.Order {
	t.Helper()
	order, err := domain.NewOrder(retailerID, productID, "Ada", "ada@example.com", "", quantity, decimal.RequireFromString("12.50"), "")
	require.NoError(t, err)
	return order
}

func productStock(t *testing.T, db *gorm.DB, productID string) int {
	t.Helper()
	var stock int
	err := db.Table("products").Select("stock").Where("id = ?", productID).Scan(&stock).Error
	require.NoError(t, err)
	return stock
}

func TestRepository_CreateDecrementsStock(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	db, cleanup := setupOrdersPostgresContainer(t)
	defer cleanup()

	repo := NewRepository(db)
	ctx := context.Background()
	retailerID := uuid.NewString()
	product := seedProduct(t, db, retailerID, 10)

	saved, err := repo.Create(ctx, newTestOrder(t, retailerID, product.ID, 3))
	require.NoError(t, err)
	assert.NotEmpty(t, saved.ID)
	assert.Equal(t, domain.StatusPending, saved.Status)
	assert.True(t, saved.TotalAmount.Equal(decimal.RequireFromString("37.50")))
	assert.Equal(t, 7, productStock(t, db, product.ID))

	fetched, err := repo.GetByID(ctx, retailerID, saved.ID)
	require.NoError(t, err)
	assert.Equal(t, saved.ID, fetched.ID)
	assert.True(t, fetched.UnitPrice.Equal(decimal.RequireFromString("12.50")))
}

func TestRepository_CreateInsufficientStockRollsBack(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	db, cleanup := setupOrdersPostgresContainer(t)
	defer cleanup()

	repo := NewRepository(db)
	ctx := context.Background()
	retailerID := uuid.NewString()
	product := seedProduct(t, db, retailerID, 2)

	_, err := repo.Create(ctx, newTestOrder(t, retailerID, product.ID, 5))
	require.ErrorIs(t, err, ports.ErrInsufficientStock)
	assert.Equal(t, 2, productStock(t, db, product.ID))

	_, total, err := repo.List(ctx, retailerID, ports.ListFilter{Page: 1, Limit: 10})
	require.NoError(t, err)
	assert.Zero(t, total)
}

func TestRepository_DeletePendingRestoresStock(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	db, cleanup := setupOrdersPostgresContainer(t)
	defer cleanup()

	repo := NewRepository(db)
	ctx := context.Background()
	retailerID := uuid.NewString()
	product := seedProduct(t, db, retailerID, 10)

	saved, err := repo.Create(ctx, newTestOrder(t, retailerID, product.ID, 4))
	require.NoError(t, err)
	require.Equal(t, 6, productStock(t, db, product.ID))

	require.NoError(t, repo.Delete(ctx, saved))
	assert.Equal(t, 10, productStock(t, db, product.ID))

	_, err = repo.GetByID(ctx, retailerID, saved.ID)
	assert.ErrorIs(t, err, ports.ErrNotFound)
}

func TestRepository_DeleteCancelledKeepsStock(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	db, cleanup := setupOrdersPostgresContainer(t)
	defer cleanup()

	repo := NewRepository(db)
	ctx := context.Background()
	retailerID := uuid.NewString()
	product := seedProduct(t, db, retailerID, 10)

	saved, err := repo.Create(ctx, newTestOrder(t, retailerID, product.ID, 4))
	require.NoError(t, err)
	require.NoError(t, saved.SetStatus(domain.StatusCancelled))
	cancelled, err := repo.Update(ctx, saved)
	require.NoError(t, err)

	require.NoError(t, repo.Delete(ctx, cancelled))
	assert.Equal(t, 6, productStock(t, db, product.ID))
}

func TestRepository_UpdateTouchesOnlyStatusAndNotes(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	db, cleanup := setupOrdersPostgresContainer(t)
	defer cleanup()

	repo := NewRepository(db)
	ctx := context.Background()
	retailerID := uuid.NewString()
	product := seedProduct(t, db, retailerID, 10)

	saved, err := repo.Create(ctx, newTestOrder(t, retailerID, product.ID, 2))
	require.NoError(t, err)

	require.NoError(t, saved.SetStatus(domain.StatusShipped))
	saved.Notes = "left at the door"
	saved.TotalAmount = decimal.NewFromInt(999)

	updated, err := repo.Update(ctx, saved)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusShipped, updated.Status)
	assert.Equal(t, "left at the door", updated.Notes)
	// Snapshot survives the write.
	assert.True(t, updated.TotalAmount.Equal(decimal.RequireFromString("25.00")))
}

func TestRepository_ListFilters(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	db, cleanup := setupOrdersPostgresContainer(t)
	defer cleanup()

	repo := NewRepository(db)
	ctx := context.Background()
	retailerID := uuid.NewString()
	product := seedProduct(t, db, retailerID, 100)

	names := []string{"Ada Lovelace", "Grace Hopper", "Adam West"}
	for _, name := range names {
		order, err := domain.NewOrder(retailerID, product.ID, name, "", "", 1, decimal.NewFromInt(5), "")
		require.NoError(t, err)
		_, err = repo.Create(ctx, order)
		require.NoError(t, err)
	}

	orders, total, err := repo.List(ctx, retailerID, ports.ListFilter{CustomerName: "ada", Page: 1, Limit: 10})
	require.NoError(t, err)
	assert.EqualValues(t, 2, total)
	assert.Len(t, orders, 2)

	orders, total, err = repo.List(ctx, retailerID, ports.ListFilter{Status: "pending", Page: 1, Limit: 2})
	require.NoError(t, err)
	assert.EqualValues(t, 3, total)
	assert.Len(t, orders, 2)

	_, total, err = repo.List(ctx, uuid.NewString(), ports.ListFilter{Page: 1, Limit: 10})
	require.NoError(t, err)
	assert.Zero(t, total)
}

func TestRepository_GetForSale(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	db, cleanup := setupOrdersPostgresContainer(t)
	defer cleanup()

	repo := NewRepository(db)
	ctx := context.Background()
	retailerID := uuid.NewString()
	product := seedProduct(t, db, retailerID, 10)

	summary, err := repo.GetForSale(ctx, retailerID, product.ID)
	require.NoError(t, err)
	assert.Equal(t, product.ID, summary.ID)
	assert.Equal(t, 10, summary.Stock)

	require.NoError(t, db.Table("products").Where("id = ?", product.ID).UpdateColumn("is_active", false).Error)
	_, err = repo.GetForSale(ctx, retailerID, product.ID)
	assert.ErrorIs(t, err, ports.ErrProductUnavailable)
}
