// @title           Restaurant POS API
// @version         1.0
// @description     Orders, QR menus, kitchen notifications and back-office for a single restaurant.
// @BasePath        /
//
// @securityDefinitions.apikey  BearerAuth
// @in                          header
// @name                        Authorization
// @description                 Type "Bearer" followed by a space and the JWT.
package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/mongo/readpref"

	"github.com/mesapos/restaurant-pos/internal/api"
	"github.com/mesapos/restaurant-pos/internal/api/handler"
	"github.com/mesapos/restaurant-pos/internal/core/domain"
	"github.com/mesapos/restaurant-pos/internal/core/service"
	"github.com/mesapos/restaurant-pos/internal/infrastructure/config"
	mongodb "github.com/mesapos/restaurant-pos/internal/infrastructure/db/mongo"
	redisdb "github.com/mesapos/restaurant-pos/internal/infrastructure/db/redis"
	"github.com/mesapos/restaurant-pos/internal/infrastructure/queue"
	"github.com/mesapos/restaurant-pos/pkg/logger"
	"github.com/mesapos/restaurant-pos/pkg/qr"
)

const (
	tokenTTL        = 24 * time.Hour
	shutdownTimeout = 10 * time.Second
)

func main() {
	ctx := context.Background()

	cfg, err := config.Load(ctx)
	if err != nil {
		// The logger is not configured yet.
		boot := logger.New(logger.Options{Output: os.Stderr})
		boot.Fatal().Err(err).Msg("config")
	}

	log := logger.Init(logger.Options{
		Service: "pos-api",
		Level:   cfg.LogLevel,
		Pretty:  cfg.Development(),
	})

	mongoClient, db, err := mongodb.Connect(ctx, mongodb.Config{URI: cfg.Mongo.URI, Database: cfg.Mongo.Database})
	if err != nil {
		log.Fatal().Err(err).Msg("mongo")
	}
	rdb, err := redisdb.Connect(ctx, redisdb.Config{Addr: cfg.Redis.Addr, Password: cfg.Redis.Password, DB: cfg.Redis.DB})
	if err != nil {
		log.Fatal().Err(err).Msg("redis")
	}

	// --- Repositories ---
	users := mongodb.NewUserRepository(db)
	orders := mongodb.NewOrderRepository(db)
	categories := mongodb.NewCategoryRepository(db)
	products := mongodb.NewProductRepository(db)
	tables := mongodb.NewTableRepository(db)
	expenses := mongodb.NewExpenseRepository(db)
	settingsRepo := mongodb.NewSettingsRepository(db)

	if err := mongodb.EnsureIndexes(ctx, users, orders, categories, products, tables, expenses); err != nil {
		log.Fatal().Err(err).Msg("mongo indexes")
	}

	gen, err := qr.NewGenerator(cfg.PublicOrigin)
	if err != nil {
		log.Fatal().Err(err).Msg("qr generator")
	}

	// --- Services ---
	settingsSvc := service.NewSettingsService(settingsRepo, domain.Settings{
		RestaurantName: cfg.RestaurantName,
		Currency:       cfg.Currency,
	})
	notificationSvc := service.NewNotificationService(
		redisdb.NewNotificationStream(rdb, log),
		func() string { return settingsSvc.Currency(context.Background()) },
		log,
	)

	dispatcher := queue.NewDispatcher(cfg.NotifyWorkers, notificationSvc, log)
	workerCtx, stopWorkers := context.WithCancel(context.Background())
	dispatcher.Start(workerCtx)

	e := api.NewRouter(api.Deps{
		Auth:          service.NewAuthService(users, cfg.JWTSecret, tokenTTL),
		Users:         service.NewUserService(users),
		Orders:        service.NewOrderService(orders, products, tables, redisdb.NewOrderDeduper(rdb), dispatcher, log),
		Notifications: notificationSvc,
		Catalog:       service.NewCatalogService(categories, products),
		Tables:        service.NewTableService(tables, categories, products, orders, gen, log),
		Settings:      settingsSvc,
		Expenses:      service.NewExpenseService(expenses),
		Reports:       service.NewReportService(orders, expenses),
		Checks:        readinessChecks(mongoClient, rdb),
		JWTSecret:     cfg.JWTSecret,
		Log:           log,
	})

	go func() {
		log.Info().Str("port", cfg.Port).Str("env", cfg.Env).Msg("server starting")
		if err := e.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("server error")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info().Msg("shutdown signal received")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("http shutdown")
	}

	// No new events can arrive now; let the workers flush what is queued.
	stopWorkers()
	dispatcher.Wait()

	if err := rdb.Close(); err != nil {
		log.Error().Err(err).Msg("redis close")
	}
	if err := mongoClient.Disconnect(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("mongo disconnect")
	}
	log.Info().Msg("server stopped gracefully")
}

type mongoPinger interface {
	Ping(ctx context.Context, rp *readpref.ReadPref) error
}

type redisPinger interface {
	Ping(ctx context.Context) *redis.StatusCmd
}

// readinessChecks backs GET /health/ready with one ping per store.
func readinessChecks(m mongoPinger, r redisPinger) map[string]handler.DependencyCheck {
	return map[string]handler.DependencyCheck{
		"mongodb": func(ctx context.Context) error { return m.Ping(ctx, readpref.Primary()) },
		"redis":   func(ctx context.Context) error { return r.Ping(ctx).Err() },
	}
}
