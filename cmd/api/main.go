package main

import (
	"context"
	"net/http"
	"os"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/surangaprinters/printshop-backend/api/routes"
	internalauth "github.com/surangaprinters/printshop-backend/internal/auth"
	"github.com/surangaprinters/printshop-backend/internal/catalog"
	"github.com/surangaprinters/printshop-backend/internal/deliveryareas"
	"github.com/surangaprinters/printshop-backend/internal/portfolio"
	"github.com/surangaprinters/printshop-backend/internal/quotes"
	"github.com/surangaprinters/printshop-backend/internal/reviews"
	"github.com/surangaprinters/printshop-backend/internal/settings"
	"github.com/surangaprinters/printshop-backend/internal/users"
	"github.com/surangaprinters/printshop-backend/pkg/auth/session"
	"github.com/surangaprinters/printshop-backend/pkg/config"
	"github.com/surangaprinters/printshop-backend/pkg/db"
	"github.com/surangaprinters/printshop-backend/pkg/logger"
	"github.com/surangaprinters/printshop-backend/pkg/metrics"
	"github.com/surangaprinters/printshop-backend/pkg/migrate"
	"github.com/surangaprinters/printshop-backend/pkg/redis"
	"github.com/surangaprinters/printshop-backend/pkg/storage/cloudinary"
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

	storageClient, err := cloudinary.NewClient(context.Background(), cfg.Cloudinary, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to bootstrap cloudinary", err)
		os.Exit(1)
	}

	sessionManager, err := session.NewManager(redisClient, cfg.JWT)
	if err != nil {
		logg.Error(context.Background(), "failed to create session manager", err)
		os.Exit(1)
	}

	intakeMetrics := metrics.NewQuoteIntakeMetrics(prometheus.DefaultRegisterer)

	usersRepo := users.NewRepository(dbClient.DB())
	if err := users.EnsureAdmin(context.Background(), usersRepo, cfg.AdminSeed, cfg.Password, logg); err != nil {
		logg.Error(context.Background(), "failed to seed admin account", err)
		os.Exit(1)
	}

	authService, err := internalauth.NewService(usersRepo, sessionManager, cfg.JWT, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to create auth service", err)
		os.Exit(1)
	}

	areaService, err := deliveryareas.NewService(deliveryareas.NewRepository(dbClient.DB()))
	if err != nil {
		logg.Error(context.Background(), "failed to create delivery area service", err)
		os.Exit(1)
	}

	quoteService, err := quotes.NewService(
		quotes.NewRepository(dbClient.DB()),
		storageClient,
		areaService,
		logg,
		intakeMetrics,
		quotes.Options{
			MaxFiles:     cfg.Upload.MaxQuoteFiles,
			MaxFileBytes: cfg.Upload.MaxQuoteFileMB << 20,
		},
	)
	if err != nil {
		logg.Error(context.Background(), "failed to create quote service", err)
		os.Exit(1)
	}

	catalogService, err := catalog.NewService(catalog.NewRepository(dbClient.DB()), storageClient, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to create catalog service", err)
		os.Exit(1)
	}
	if cfg.FeatureFlags.SeedCatalog {
		if err := catalogService.SeedDefaults(context.Background()); err != nil {
			logg.Error(context.Background(), "failed to seed catalog", err)
			os.Exit(1)
		}
	}

	portfolioService, err := portfolio.NewService(portfolio.NewRepository(dbClient.DB()), storageClient, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to create portfolio service", err)
		os.Exit(1)
	}

	reviewService, err := reviews.NewService(reviews.NewRepository(dbClient.DB()))
	if err != nil {
		logg.Error(context.Background(), "failed to create review service", err)
		os.Exit(1)
	}

	settingsService, err := settings.NewService(settings.NewRepository(dbClient.DB()))
	if err != nil {
		logg.Error(context.Background(), "failed to create settings service", err)
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
		Addr: addr,
		Handler: routes.NewRouter(cfg, logg, dbClient, redisClient, storageClient, sessionManager, routes.Services{
			Auth:          authService,
			Quotes:        quoteService,
			Catalog:       catalogService,
			Portfolio:     portfolioService,
			Reviews:       reviewService,
			DeliveryAreas: areaService,
			Settings:      settingsService,
		}),
	}

	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logg.Error(ctx, "api server stopped unexpectedly", err)
		os.Exit(1)
	}
}
