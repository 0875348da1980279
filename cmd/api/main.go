package main

import (
	"context"
	"net/http"
	"os"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/campusmkt/campusmkt-backend/api/routes"
	"github.com/campusmkt/campusmkt-backend/internal/bundles"
	"github.com/campusmkt/campusmkt-backend/internal/engagement"
	"github.com/campusmkt/campusmkt-backend/internal/listings"
	"github.com/campusmkt/campusmkt-backend/internal/offers"
	"github.com/campusmkt/campusmkt-backend/internal/recommendations"
	"github.com/campusmkt/campusmkt-backend/internal/reports"
	"github.com/campusmkt/campusmkt-backend/internal/reviews"
	"github.com/campusmkt/campusmkt-backend/internal/sales"
	"github.com/campusmkt/campusmkt-backend/internal/views"
	"github.com/campusmkt/campusmkt-backend/pkg/config"
	"github.com/campusmkt/campusmkt-backend/pkg/db"
	"github.com/campusmkt/campusmkt-backend/pkg/logger"
	"github.com/campusmkt/campusmkt-backend/pkg/metrics"
	"github.com/campusmkt/campusmkt-backend/pkg/migrate"
	"github.com/campusmkt/campusmkt-backend/pkg/ratelimit"
	"github.com/campusmkt/campusmkt-backend/pkg/redis"
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

	dbClient, err := db.New(context.Background(), cfg.DB, cfg.FeatureFlags, logg)
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

	// Without Redis the budget is per-instance, which is fine for a single
	// dev process.
	var limiter ratelimit.Limiter = ratelimit.NewMemoryLimiter()
	if cfg.Redis.Enabled() {
		redisClient, err := redis.New(context.Background(), cfg.Redis)
		if err != nil {
			logg.Error(context.Background(), "failed to bootstrap redis", err)
			os.Exit(1)
		}
		defer func() {
			if err := redisClient.Close(); err != nil {
				logg.Error(context.Background(), "error closing redis", err)
			}
		}()
		limiter = ratelimit.NewRedisLimiter(redisClient)
	}

	operationMetrics := metrics.NewOperationMetrics(prometheus.DefaultRegisterer)

	listingsService, err := listings.NewService(listings.ServiceParams{
		Repo: listings.NewRepository(dbClient.DB()),
	})
	requireService(logg, "listings", err)

	offersService, err := offers.NewService(offers.ServiceParams{
		Repo:    offers.NewRepository(dbClient.DB()),
		Tx:      dbClient,
		Limiter: limiter,
		Limits:  cfg.RateLimit,
		Metrics: operationMetrics,
	})
	requireService(logg, "offers", err)

	salesService, err := sales.NewService(sales.ServiceParams{
		Repo:    sales.NewRepository(dbClient.DB()),
		Tx:      dbClient,
		Metrics: operationMetrics,
	})
	requireService(logg, "sales", err)

	reviewsService, err := reviews.NewService(reviews.ServiceParams{
		Repo:    reviews.NewRepository(dbClient.DB()),
		Limiter: limiter,
		Limits:  cfg.RateLimit,
		Metrics: operationMetrics,
	})
	requireService(logg, "reviews", err)

	engagementService, err := engagement.NewService(engagement.ServiceParams{
		Repo:   engagement.NewRepository(dbClient.DB()),
		Logger: logg,
	})
	requireService(logg, "engagement", err)

	viewsService, err := views.NewService(views.ServiceParams{
		Repo:   views.NewRepository(dbClient.DB()),
		Tx:     dbClient,
		Engine: cfg.Engine,
		Logger: logg,
	})
	requireService(logg, "views", err)

	recommendationsService, err := recommendations.NewService(recommendations.ServiceParams{
		Repo:   recommendations.NewRepository(dbClient.DB()),
		Engine: cfg.Engine,
	})
	requireService(logg, "recommendations", err)

	bundlesService, err := bundles.NewService(bundles.ServiceParams{
		Repo: bundles.NewRepository(dbClient.DB()),
		Tx:   dbClient,
	})
	requireService(logg, "bundles", err)

	reportsService, err := reports.NewService(reports.ServiceParams{
		Repo:    reports.NewRepository(dbClient.DB()),
		Limiter: limiter,
		Limits:  cfg.RateLimit,
	})
	requireService(logg, "reports", err)

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
		Handler: routes.NewRouter(
			cfg,
			logg,
			dbClient,
			listingsService,
			offersService,
			salesService,
			reviewsService,
			engagementService,
			viewsService,
			recommendationsService,
			bundlesService,
			reportsService,
		),
	}

	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logg.Error(ctx, "api server stopped unexpectedly", err)
		os.Exit(1)
	}
}

func requireService(logg *logger.Logger, name string, err error) {
	if err == nil {
		return
	}
	logg.Error(context.Background(), "failed to create "+name+" service", err)
	os.Exit(1)
}
