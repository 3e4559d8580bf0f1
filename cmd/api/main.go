package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/multierr"

	"github.com/minjaepark/commerce-backend/api/routes"
	"github.com/minjaepark/commerce-backend/internal/brands"
	"github.com/minjaepark/commerce-backend/internal/inventory"
	"github.com/minjaepark/commerce-backend/internal/likes"
	"github.com/minjaepark/commerce-backend/internal/orders"
	"github.com/minjaepark/commerce-backend/internal/products"
	"github.com/minjaepark/commerce-backend/internal/users"
	"github.com/minjaepark/commerce-backend/pkg/config"
	"github.com/minjaepark/commerce-backend/pkg/db"
	"github.com/minjaepark/commerce-backend/pkg/logger"
	"github.com/minjaepark/commerce-backend/pkg/metrics"
	"github.com/minjaepark/commerce-backend/pkg/migrate"
	"github.com/minjaepark/commerce-backend/pkg/redis"
)

const shutdownTimeout = 15 * time.Second

func main() {
	logg := logger.New(logger.Options{ServiceName: "api"})

	if err := godotenv.Load(); err != nil {
		logg.Warn(context.Background(), ".env file not found, relying on environment")
	}

	cfg, err := config.Load()
	if err != nil {
		logg.Error(context.Background(), "failed to load config", err)
		os.Exit(1)
	}

	logg = logger.New(logger.Options{
		ServiceName: "api",
		Level:       logger.ParseLevel(cfg.App.LogLevel),
		WarnStack:   cfg.App.LogWarnStack,
	})

	dbClient, err := db.New(context.Background(), cfg.DB, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to bootstrap database", err)
		os.Exit(1)
	}

	if err := migrate.MaybeRunDev(context.Background(), cfg, logg, dbClient); err != nil {
		logg.Error(context.Background(), "failed to run dev migrations", err)
		os.Exit(1)
	}

	redisClient, err := redis.New(context.Background(), cfg.Redis, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to bootstrap redis", err)
		os.Exit(1)
	}

	registry := prometheus.NewRegistry()
	httpMetrics := metrics.NewHTTPMetrics(registry)
	orderMetrics := metrics.NewOrderMetrics(registry)

	gormDB := dbClient.DB()

	userService, err := users.NewService(users.NewRepository(gormDB), cfg.Password)
	if err != nil {
		logg.Error(context.Background(), "failed to create user service", err)
		os.Exit(1)
	}

	brandService, err := brands.NewService(brands.NewRepository(gormDB), dbClient, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to create brand service", err)
		os.Exit(1)
	}

	productService, err := products.NewService(products.NewRepository(gormDB))
	if err != nil {
		logg.Error(context.Background(), "failed to create product service", err)
		os.Exit(1)
	}

	likesService, err := likes.NewService(likes.NewRepository(gormDB), redisClient, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to create likes service", err)
		os.Exit(1)
	}

	orderService, err := orders.NewService(
		orders.NewRepository(gormDB),
		dbClient,
		inventory.NewGuard(),
		orders.NewCatalogSource(),
		orderMetrics,
	)
	if err != nil {
		logg.Error(context.Background(), "failed to create order service", err)
		os.Exit(1)
	}

	port := os.Getenv("PORT")
	if port == "" {
		port = cfg.App.Port
	}
	addr := ":" + port

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	ctx = logg.WithFields(ctx, map[string]any{
		"env":  cfg.App.Env,
		"addr": addr,
	})
	logg.Info(ctx, "starting api server")

	server := &http.Server{
		Addr: addr,
		Handler: routes.NewRouter(
			cfg,
			logg,
			dbClient,
			redisClient,
			registry,
			httpMetrics,
			userService,
			brandService,
			productService,
			likesService,
			orderService,
		),
	}

	serverErr := make(chan error, 1)
	go func() {
		serverErr <- server.ListenAndServe()
	}()

	select {
	case err := <-serverErr:
		if err != nil && err != http.ErrServerClosed {
			logg.Error(ctx, "api server stopped unexpectedly", err)
			os.Exit(1)
		}
	case <-ctx.Done():
		logg.Info(ctx, "shutdown signal received")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	closeErr := multierr.Combine(
		server.Shutdown(shutdownCtx),
		redisClient.Close(),
		dbClient.Close(),
	)
	if closeErr != nil {
		logg.Error(ctx, "error during shutdown", closeErr)
		os.Exit(1)
	}

	logg.Info(ctx, "api server shut down gracefully")
}
