package main

import (
	"context"
	"net/http"
	"os"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"github.com/jpcarreras/garagehub-admin/api/routes"
	"github.com/jpcarreras/garagehub-admin/internal/auth"
	"github.com/jpcarreras/garagehub-admin/internal/commission"
	"github.com/jpcarreras/garagehub-admin/internal/garages"
	"github.com/jpcarreras/garagehub-admin/internal/notifications"
	"github.com/jpcarreras/garagehub-admin/internal/owners"
	"github.com/jpcarreras/garagehub-admin/internal/payments"
	"github.com/jpcarreras/garagehub-admin/internal/points"
	"github.com/jpcarreras/garagehub-admin/internal/settlement"
	"github.com/jpcarreras/garagehub-admin/pkg/auth/session"
	"github.com/jpcarreras/garagehub-admin/pkg/config"
	"github.com/jpcarreras/garagehub-admin/pkg/db"
	"github.com/jpcarreras/garagehub-admin/pkg/logger"
	"github.com/jpcarreras/garagehub-admin/pkg/metrics"
	"github.com/jpcarreras/garagehub-admin/pkg/migrate"
	"github.com/jpcarreras/garagehub-admin/pkg/redis"
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

	sessionManager, err := session.NewManager(redisClient, cfg.JWT)
	if err != nil {
		logg.Error(context.Background(), "failed to create session manager", err)
		os.Exit(1)
	}

	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	jobMetrics := metrics.NewAdminJobMetrics(registry)

	gormDB := dbClient.DB()

	ownersRepo := owners.NewRepository(gormDB)
	ownersService, err := owners.NewService(ownersRepo)
	if err != nil {
		logg.Error(context.Background(), "failed to create owners service", err)
		os.Exit(1)
	}

	settlementService, err := settlement.NewService(
		settlement.NewRepository(gormDB), ownersService, dbClient, cfg.Settlement, jobMetrics)
	if err != nil {
		logg.Error(context.Background(), "failed to create settlement service", err)
		os.Exit(1)
	}

	commissionService, err := commission.NewService(
		commission.NewRepository(gormDB), ownersRepo, dbClient, cfg.Settlement, jobMetrics)
	if err != nil {
		logg.Error(context.Background(), "failed to create commission service", err)
		os.Exit(1)
	}

	paymentsService, err := payments.NewService(payments.NewRepository(gormDB), dbClient)
	if err != nil {
		logg.Error(context.Background(), "failed to create payments service", err)
		os.Exit(1)
	}

	pointsService, err := points.NewService(points.NewRepository(gormDB))
	if err != nil {
		logg.Error(context.Background(), "failed to create points service", err)
		os.Exit(1)
	}

	garagesService, err := garages.NewService(garages.NewRepository(gormDB))
	if err != nil {
		logg.Error(context.Background(), "failed to create garages service", err)
		os.Exit(1)
	}

	notificationsService, err := notifications.NewService(notifications.NewRepository(gormDB))
	if err != nil {
		logg.Error(context.Background(), "failed to create notifications service", err)
		os.Exit(1)
	}

	authService, err := auth.NewService(auth.ServiceParams{
		Repo:           auth.NewRepository(gormDB),
		SessionManager: sessionManager,
		JWTConfig:      cfg.JWT,
	})
	if err != nil {
		logg.Error(context.Background(), "failed to create auth service", err)
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
	logg.Info(ctx, "starting admin api server")

	server := &http.Server{
		Addr: addr,
		Handler: routes.NewRouter(cfg, logg, dbClient, redisClient, sessionManager, registry, routes.Services{
			Auth:          authService,
			Owners:        ownersService,
			Commission:    commissionService,
			Settlement:    settlementService,
			Payments:      paymentsService,
			Points:        pointsService,
			Garages:       garagesService,
			Notifications: notificationsService,
		}),
	}

	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logg.Error(ctx, "admin api server stopped unexpectedly", err)
		os.Exit(1)
	}
}
