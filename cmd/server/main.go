package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/khoahotran/portfolio/adapters/content"
	"github.com/khoahotran/portfolio/adapters/event"
	httpAdapter "github.com/khoahotran/portfolio/adapters/http"
	"github.com/khoahotran/portfolio/adapters/media_storage"
	"github.com/khoahotran/portfolio/adapters/persistence"
	"github.com/khoahotran/portfolio/internal/application/service"
	analyticsUC "github.com/khoahotran/portfolio/internal/application/usecase/analytics"
	portfolioUC "github.com/khoahotran/portfolio/internal/application/usecase/portfolio"
	"github.com/khoahotran/portfolio/internal/config"
	"github.com/khoahotran/portfolio/pkg/logger"
	"github.com/khoahotran/portfolio/pkg/tracing"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("FATAL: cannot load config: %v", err)
	}

	appLogger := logger.NewZapLogger(cfg.App.Env)
	defer appLogger.Sync()
	appLogger.Info("Starting portfolio server...", zap.String("env", cfg.App.Env))

	// Tracing
	shutdownTracing, err := tracing.Setup(ctx, cfg, appLogger, "portfolio-server")
	if err != nil {
		appLogger.Fatal("Cannot initialize tracing", err)
	}
	defer shutdownTracing(context.Background())

	// Content and images
	source := content.NewSanityClient(cfg, appLogger)
	images, err := media_storage.NewImageURLBuilder(cfg, appLogger)
	if err != nil {
		appLogger.Fatal("Failed to initialize image delivery", err)
	}

	scale, ok := portfolioUC.ScaleByName(cfg.Display.ProficiencyScale)
	if !ok {
		appLogger.Warn("Unknown proficiency scale, using default",
			zap.String("scale", cfg.Display.ProficiencyScale), zap.String("default", scale.Name))
	}
	layout := portfolioUC.LayoutPolicy{
		WideWhenGroups: cfg.Display.WideWhenGroups,
		WideCount:      cfg.Display.WideCount,
	}

	// Analytics
	var publisher service.ViewPublisher = event.NopPublisher{}
	var statsHandler *httpAdapter.StatsHandler
	if cfg.Analytics.Enabled {
		producer, err := event.NewKafkaViewProducer(cfg, appLogger)
		if err != nil {
			appLogger.Fatal("Cannot init Kafka", err)
		}
		defer producer.Close()
		publisher = producer

		redisClient, err := persistence.NewRedisClient(ctx, cfg, appLogger)
		if err != nil {
			appLogger.Fatal("Cannot connect Redis", err)
		}
		defer redisClient.Close()

		dbPool, err := persistence.NewPostgresPool(ctx, cfg, appLogger)
		if err != nil {
			appLogger.Fatal("Cannot connect Postgres", err)
		}
		defer dbPool.Close()

		counter := persistence.NewRedisViewCounter(redisClient, appLogger)
		pageViewRepo := persistence.NewPostgresPageViewRepo(dbPool, appLogger)
		statsHandler = httpAdapter.NewStatsHandler(analyticsUC.NewViewStatsUseCase(counter, pageViewRepo, appLogger), appLogger)
	}

	// Use Cases
	builder := portfolioUC.NewViewBuilder(images, scale, layout)
	loadPortfolioUseCase := portfolioUC.NewLoadPortfolioUseCase(source, builder, appLogger)
	projectFeedUseCase := portfolioUC.NewProjectFeedUseCase(source, cfg.App.SiteURL, appLogger)
	trackViewUseCase := analyticsUC.NewTrackViewUseCase(publisher, appLogger)

	// HTTP
	tmpl, err := httpAdapter.LoadTemplates()
	if err != nil {
		appLogger.Fatal("Cannot parse templates", err)
	}
	router := httpAdapter.NewRouter(httpAdapter.Handlers{
		Page:      httpAdapter.NewPageHandler(loadPortfolioUseCase, trackViewUseCase, appLogger),
		Portfolio: httpAdapter.NewPortfolioHandler(loadPortfolioUseCase, appLogger),
		Feed:      httpAdapter.NewFeedHandler(projectFeedUseCase, appLogger),
		Stats:     statsHandler,
	}, tmpl, appLogger)

	srv := &http.Server{
		Addr:              ":" + cfg.App.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		appLogger.Info("Server running", zap.String("port", cfg.App.Port))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		appLogger.Error("Server stopped with error", err)
		return
	}
	appLogger.Info("Server stopped")
}
