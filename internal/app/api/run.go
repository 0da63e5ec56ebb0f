package api

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
	"gorm.io/gorm"

	analyticsmemory "github.com/storeline/storefront-api/internal/domains/analytics/adapters/memory"
	analyticsobs "github.com/storeline/storefront-api/internal/domains/analytics/adapters/observability"
	analyticspostgres "github.com/storeline/storefront-api/internal/domains/analytics/adapters/persistence/postgres"
	analyticsapp "github.com/storeline/storefront-api/internal/domains/analytics/application"
	analyticsports "github.com/storeline/storefront-api/internal/domains/analytics/ports"
	ordersmemory "github.com/storeline/storefront-api/internal/domains/orders/adapters/memory"
	ordersobs "github.com/storeline/storefront-api/internal/domains/orders/adapters/observability"
	orderspostgres "github.com/storeline/storefront-api/internal/domains/orders/adapters/persistence/postgres"
	ordersapp "github.com/storeline/storefront-api/internal/domains/orders/application"
	ordersports "github.com/storeline/storefront-api/internal/domains/orders/ports"
	productsmemory "github.com/storeline/storefront-api/internal/domains/products/adapters/memory"
	productspostgres "github.com/storeline/storefront-api/internal/domains/products/adapters/persistence/postgres"
	productsapp "github.com/storeline/storefront-api/internal/domains/products/application"
	productsports "github.com/storeline/storefront-api/internal/domains/products/ports"
	retailersmemory "github.com/storeline/storefront-api/internal/domains/retailers/adapters/memory"
	retailerspostgres "github.com/storeline/storefront-api/internal/domains/retailers/adapters/persistence/postgres"
	retailersapp "github.com/storeline/storefront-api/internal/domains/retailers/application"
	retailersports "github.com/storeline/storefront-api/internal/domains/retailers/ports"
	"github.com/storeline/storefront-api/internal/platform/auth"
	"github.com/storeline/storefront-api/internal/platform/migrations"
	"github.com/storeline/storefront-api/internal/platform/objectstore"
	platformobservability "github.com/storeline/storefront-api/internal/platform/observability"
	platformpostgres "github.com/storeline/storefront-api/internal/platform/postgres"
	"github.com/storeline/storefront-api/internal/platform/rediscache"
	httpapi "github.com/storeline/storefront-api/internal/transport/http"
)

// Run boots the storefront HTTP API with observability, repositories, and
// the router wired. It blocks until ctx is cancelled, then drains in-flight
// requests before returning.
func Run(ctx context.Context) error {
	const serviceName = "storefront-api"

	cfg, err := LoadConfig()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	instruments, shutdown, err := platformobservability.Init(ctx, serviceName)
	if err != nil {
		return fmt.Errorf("failed to initialize observability: %w", err)
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := shutdown(shutdownCtx); err != nil {
			instruments.Logger.Error("failed to shutdown observability", slog.String("error", err.Error()))
		}
	}()
	logger := instruments.Logger

	db, closeDB := platformpostgres.ConnectOptional(ctx, cfg.PostgresDSN, logger)
	defer closeDB()
	if db != nil {
		if err := migrations.Run(db); err != nil {
			return fmt.Errorf("failed to run migrations: %w", err)
		}
	}

	repos := buildRepositories(db, logger)

	retailerService := retailersapp.NewService(repos.retailers)
	productService := productsapp.NewService(repos.products, repos.counter)

	coreOrderService := ordersapp.NewService(repos.orders, repos.catalog)
	orderService := ordersobs.New(
		coreOrderService,
		ordersobs.WithLogger(logger),
		ordersobs.WithTracer(instruments.Tracer("internal.orders.application")),
		ordersobs.WithMeter(instruments.Meter("internal.orders.application")),
	)

	coreAnalytics := analyticsapp.NewService(repos.analytics)
	analyticsService := analyticsobs.New(
		coreAnalytics,
		analyticsobs.WithLogger(logger),
		analyticsobs.WithTracer(instruments.Tracer("internal.analytics.application")),
		analyticsobs.WithMeter(instruments.Meter("internal.analytics.application")),
	)

	var cache *rediscache.Cache
	if cfg.RedisAddr != "" {
		cache, err = rediscache.Connect(ctx, cfg.RedisAddr)
		if err != nil {
			logger.Warn("redis unavailable, storefront cache disabled", slog.String("error", err.Error()))
		}
	}
	defer cache.Close()

	store, err := buildObjectStore(ctx, cfg, logger)
	if err != nil {
		return fmt.Errorf("failed to configure upload storage: %w", err)
	}

	router := httpapi.NewRouter(httpapi.Deps{
		Verifier:        auth.NewVerifier(cfg.JWTSecret),
		Retailers:       retailerService,
		RetailerAPI:     httpapi.NewRetailerAPI(retailerService, analyticsService),
		ProductAPI:      httpapi.NewProductAPI(productService),
		OrderAPI:        httpapi.NewOrderAPI(orderService, analyticsService),
		StorefrontAPI:   httpapi.NewStorefrontAPI(retailerService, productService, cache),
		UploadAPI:       httpapi.NewUploadAPI(store),
		PublicRateRPS:   cfg.PublicRateRPS,
		PublicRateBurst: cfg.PublicRateBurst,
		Middleware:      []gin.HandlerFunc{otelgin.Middleware(serviceName)},
	})

	server := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}
	errCh := make(chan error, 1)
	go func() {
		logger.Info("storefront API listening", slog.String("addr", server.Addr))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			logger.Error("storefront API server exited", slog.String("error", err.Error()))
			return err
		}
		return nil
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	logger.Info("shutting down storefront API")
	if err := server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("failed to shut down server: %w", err)
	}
	return nil
}

// repositories groups the persistence ports the services consume. The orders
// repository doubles as the product catalog and the order counter so that the
// stock decrement, the sale snapshot, and the delete guard all observe the
// same storage.
type repositories struct {
	retailers retailersports.Repository
	products  productsports.Repository
	orders    ordersports.Repository
	catalog   ordersports.ProductCatalog
	counter   productsports.OrderCounter
	analytics analyticsports.Reader
}

func buildRepositories(db *gorm.DB, logger *slog.Logger) repositories {
	if db != nil {
		logger.Info("repositories configured with postgres")
		ordersRepo := orderspostgres.NewRepository(db)
		return repositories{
			retailers: retailerspostgres.NewRepository(db),
			products:  productspostgres.NewRepository(db),
			orders:    ordersRepo,
			catalog:   ordersRepo,
			counter:   ordersRepo,
			analytics: analyticspostgres.NewReader(db),
		}
	}
	logger.Info("repositories configured in-memory")
	productsRepo := productsmemory.NewRepository()
	ordersRepo := ordersmemory.NewRepository(productsRepo)
	return repositories{
		retailers: retailersmemory.NewRepository(),
		products:  productsRepo,
		orders:    ordersRepo,
		catalog:   ordersRepo,
		counter:   ordersRepo,
		analytics: analyticsmemory.NewReader(productsRepo, ordersRepo),
	}
}

func buildObjectStore(ctx context.Context, cfg Config, logger *slog.Logger) (objectstore.Store, error) {
	if cfg.S3Bucket != "" {
		logger.Info("uploads configured with S3", slog.String("bucket", cfg.S3Bucket))
		return objectstore.NewS3Store(ctx, objectstore.S3Config{
			Bucket:   cfg.S3Bucket,
			Region:   cfg.S3Region,
			Endpoint: cfg.S3Endpoint,
			BaseURL:  cfg.S3BaseURL,
		})
	}
	logger.Info("uploads configured with local storage", slog.String("dir", cfg.UploadDir))
	return objectstore.NewLocalStore(cfg.UploadDir, cfg.UploadBaseURL), nil
}
