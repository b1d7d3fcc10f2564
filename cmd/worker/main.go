package main

import (
	"context"
	"flag"
	"log"
	"os/signal"
	"syscall"

	"github.com/khoahotran/portfolio/adapters/event"
	"github.com/khoahotran/portfolio/adapters/persistence"
	analyticsUC "github.com/khoahotran/portfolio/internal/application/usecase/analytics"
	"github.com/khoahotran/portfolio/internal/config"
	"github.com/khoahotran/portfolio/pkg/logger"
	"github.com/khoahotran/portfolio/pkg/tracing"
)

func main() {
	migrationsDir := flag.String("migrations", "migrations", "directory holding the SQL migrations")
	flag.Parse()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("FATAL: cannot load config: %v", err)
	}

	appLogger := logger.NewZapLogger(cfg.App.Env)
	defer appLogger.Sync()
	appLogger.Info("Starting portfolio view worker...")

	if !cfg.Analytics.Enabled {
		appLogger.Warn("Analytics is disabled, nothing to consume")
		return
	}

	shutdownTracing, err := tracing.Setup(ctx, cfg, appLogger, "portfolio-worker")
	if err != nil {
		appLogger.Fatal("Cannot initialize tracing", err)
	}
	defer shutdownTracing(context.Background())

	// Database
	if err := persistence.Migrate(cfg.DB.DSN, *migrationsDir, appLogger); err != nil {
		appLogger.Fatal("Cannot migrate database", err)
	}
	dbPool, err := persistence.NewPostgresPool(ctx, cfg, appLogger)
	if err != nil {
		appLogger.Fatal("Cannot connect Postgres", err)
	}
	defer dbPool.Close()

	redisClient, err := persistence.NewRedisClient(ctx, cfg, appLogger)
	if err != nil {
		appLogger.Fatal("Cannot connect Redis", err)
	}
	defer redisClient.Close()

	// Repositories
	counter := persistence.NewRedisViewCounter(redisClient, appLogger)
	pageViewRepo := persistence.NewPostgresPageViewRepo(dbPool, appLogger)

	// Worker Use Case
	recordViewUseCase := analyticsUC.NewRecordViewUseCase(counter, pageViewRepo, appLogger)

	// Kafka Consumer
	consumer := event.NewKafkaViewConsumer(cfg, recordViewUseCase, appLogger)
	defer consumer.Close()

	if err := consumer.Run(ctx); err != nil {
		appLogger.Error("View consumer stopped with error", err)
		return
	}
	appLogger.Info("Worker stopped")
}
