package main

import (
	"context"
	"net/http"
	"os"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/orderdesk/backoffice-backend/api/routes"
	"github.com/orderdesk/backoffice-backend/internal/assignments"
	"github.com/orderdesk/backoffice-backend/internal/orderlifecycle"
	"github.com/orderdesk/backoffice-backend/internal/vendororders"
	"github.com/orderdesk/backoffice-backend/pkg/config"
	"github.com/orderdesk/backoffice-backend/pkg/db"
	"github.com/orderdesk/backoffice-backend/pkg/logger"
	"github.com/orderdesk/backoffice-backend/pkg/metrics"
	"github.com/orderdesk/backoffice-backend/pkg/migrate"
	"github.com/orderdesk/backoffice-backend/pkg/outbox"
	"github.com/orderdesk/backoffice-backend/pkg/redis"
)

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
	defer func() {
		if err := dbClient.Close(); err != nil {
			logg.Error(context.Background(), "error closing database", err)
		}
	}()

	if err := migrate.MaybeRunDev(context.Background(), cfg, logg, dbClient); err != nil {
		logg.Error(context.Background(), "failed to run dev migrations", err)
		os.Exit(1)
	}

	redisClient, err := redis.New(context.Background(), cfg.Redis, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to bootstrap redis", err)
		os.Exit(1)
	}
	defer func() {
		if err := redisClient.Close(); err != nil {
			logg.Error(context.Background(), "error closing redis", err)
		}
	}()

	metricsRegistry := prometheus.NewRegistry()
	decisionMetrics := metrics.NewDecisionMetrics(metricsRegistry)

	outboxSvc := outbox.NewService(outbox.NewRepository(dbClient.DB()), logg)

	recalculator, err := orderlifecycle.NewRecalculator(orderlifecycle.NewRepository(dbClient.DB()), outboxSvc)
	if err != nil {
		logg.Error(context.Background(), "failed to create order recalculator", err)
		os.Exit(1)
	}

	assignmentsSvc, err := assignments.NewService(
		assignments.NewRepository(dbClient.DB()),
		dbClient,
		outboxSvc,
		recalculator,
		decisionMetrics,
		logg,
	)
	if err != nil {
		logg.Error(context.Background(), "failed to create assignments service", err)
		os.Exit(1)
	}

	vendorOrdersSvc, err := vendororders.NewService(vendororders.NewRepository(dbClient.DB()), logg)
	if err != nil {
		logg.Error(context.Background(), "failed to create vendor orders service", err)
		os.Exit(1)
	}

	port := os.Getenv("PORT")
	if port == "" {
		port = cfg.App.Port
	}
	addr := ":" + port
	ctx := logg.WithFields(context.Background(), map[string]any{
		"env":  cfg.App.Env,
		"addr": addr,
	})
	logg.Info(ctx, "starting api server")

	server := &http.Server{
		Addr:    addr,
		Handler: routes.NewRouter(cfg, logg, dbClient, redisClient, metricsRegistry, assignmentsSvc, vendorOrdersSvc),
	}

	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logg.Error(ctx, "api server stopped unexpectedly", err)
		os.Exit(1)
	}
}
