package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	"github.com/prometheus/client_golang/prometheus"

	"media_syncer/internal/api"
	"media_syncer/internal/config"
	"media_syncer/internal/cover"
	"media_syncer/internal/metrics"
	"media_syncer/internal/publisher"
	"media_syncer/internal/scheduler"
	"media_syncer/internal/service"
	"media_syncer/internal/source"
	"media_syncer/internal/source/catalog"
	"media_syncer/internal/source/lists"
	"media_syncer/internal/storage/postgres"
)

func main() {
	configPath := flag.String("config", "config.yaml", "path to config file")
	flag.Parse()

	logger := setupLogger("info")

	cfg, err := config.Load(*configPath)
	if err != nil {
		logger.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	logger = setupLogger(cfg.LogLevel)

	if err := run(cfg, logger); err != nil {
		logger.Error("syncer stopped with error", "error", err)
		os.Exit(1)
	}
}

func run(cfg *config.Config, logger *slog.Logger) error {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go func() {
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		sig := <-sigCh
		logger.Info("received shutdown signal", "signal", sig)
		cancel()
	}()

	db, err := sqlx.Connect("postgres", cfg.Database.DSN())
	if err != nil {
		return fmt.Errorf("connect to database: %w", err)
	}
	defer db.Close()
	logger.Info("connected to database")

	m := metrics.New(prometheus.DefaultRegisterer)

	contentStore := postgres.NewContentStore(db)
	creditStore := postgres.NewCreditStore(db)
	trailerStore := postgres.NewTrailerStore(db)
	listStore := postgres.NewListStore(db)
	listItemStore := postgres.NewListItemStore(db)
	txManager := postgres.NewTransactionManager(db)

	watcher, err := postgres.NewContentWatcher(cfg.Database.DSN(), contentStore, logger)
	if err != nil {
		return fmt.Errorf("start content watcher: %w", err)
	}
	defer watcher.Close()
	go watcher.Run(ctx)

	var changes service.Publisher
	if cfg.RabbitMQ.URL != "" {
		rabbitMQ, err := publisher.NewRabbitMQ(publisher.Config{
			URL:        cfg.RabbitMQ.URL,
			Exchange:   cfg.RabbitMQ.Exchange,
			RoutingKey: cfg.RabbitMQ.RoutingKey,
			QueueName:  cfg.RabbitMQ.QueueName,
		}, logger)
		if err != nil {
			return err
		}
		defer rabbitMQ.Close()
		changes = rabbitMQ
	} else {
		logger.Info("rabbitmq not configured, change publishing disabled")
	}

	catalogClient := catalog.New(catalog.Config{
		Config:       remoteConfig("catalog", cfg.Catalog.RemoteConfig),
		ImageBaseURL: cfg.Catalog.ImageBaseURL,
	}, m, logger)
	listClient := lists.New(remoteConfig("list_service", cfg.ListService), m, logger)

	reconciler := service.NewReconciler(
		contentStore,
		creditStore,
		trailerStore,
		cover.NewCache(cfg.Covers.Dir),
		changes,
		m,
		logger,
	)
	resolver := service.NewResolver(contentStore, catalogClient, reconciler, logger)
	listSync := service.NewListSynchronizer(
		listClient,
		listStore,
		listItemStore,
		contentStore,
		resolver,
		txManager,
		cfg.ListService.UserID,
		m,
		logger,
	)
	favoritesSync := service.NewFavoritesSynchronizer(
		listClient,
		contentStore,
		resolver,
		cfg.ListService.UserID,
		m,
		logger,
	)

	sched := scheduler.New(cfg.Sync.RunTimeout, logger)
	if cfg.Sync.FavoritesSchedule != "" {
		err := sched.Schedule(cfg.Sync.FavoritesSchedule, service.FavoritesSyncJob, func(ctx context.Context) error {
			_, err := favoritesSync.SyncFavorites(ctx)
			return err
		})
		if err != nil {
			return err
		}
	}
	if cfg.Sync.ListsSchedule != "" {
		listIDs := cfg.Sync.ListIDs
		err := sched.Schedule(cfg.Sync.ListsSchedule, service.ListSyncJob, func(ctx context.Context) error {
			_, err := listSync.SyncLists(ctx, listIDs)
			return err
		})
		if err != nil {
			return err
		}
	}

	server := api.NewServer(api.Deps{
		Scheduler: sched,
		Favorites: favoritesSync,
		Lists:     listSync,
		Contents:  contentStore,
		Refresher: service.NewRefresher(catalogClient, reconciler, logger),
		Browser:   service.NewBrowser(catalogClient, reconciler, logger),
		Watcher:   watcher,
		DB:        db,
		Gatherer:  prometheus.DefaultGatherer,
	}, api.Options{
		SyncRequests: cfg.HTTP.SyncRateLimit,
		SyncWindow:   time.Minute,
		CORSOrigins:  cfg.HTTP.CORSOrigins,
	}, logger)

	httpServer := &http.Server{
		Addr:              cfg.HTTP.Addr,
		Handler:           server.Router(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logger.Info("http server listening", "addr", cfg.HTTP.Addr)
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("http server failed", "error", err)
			cancel()
		}
	}()

	logger.Info("starting media syncer",
		"favorites_schedule", cfg.Sync.FavoritesSchedule,
		"lists_schedule", cfg.Sync.ListsSchedule,
		"lists", len(cfg.Sync.ListIDs),
	)

	err = sched.Start(ctx)

	shutdownCtx, stop := context.WithTimeout(context.Background(), cfg.HTTP.ShutdownTimeout)
	defer stop()
	if shutdownErr := httpServer.Shutdown(shutdownCtx); shutdownErr != nil {
		logger.Warn("http server shutdown", "error", shutdownErr)
	}

	if err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	return nil
}

func remoteConfig(name string, rc config.RemoteConfig) source.Config {
	return source.Config{
		Name:            name,
		BaseURL:         rc.BaseURL,
		APIKey:          rc.APIKey,
		Timeout:         rc.Timeout,
		MaxAttempts:     rc.Retry.MaxAttempts,
		InitialBackoff:  rc.Retry.InitialBackoff,
		MaxBackoff:      rc.Retry.MaxBackoff,
		RateLimit:       rc.RateLimit.RequestsPerSecond,
		Burst:           rc.RateLimit.Burst,
		BreakerFailures: rc.Breaker.Failures,
		BreakerTimeout:  rc.Breaker.Timeout,
	}
}

func setupLogger(level string) *slog.Logger {
	var logLevel slog.Level
	switch level {
	case "debug":
		logLevel = slog.LevelDebug
	case "warn":
		logLevel = slog.LevelWarn
	case "error":
		logLevel = slog.LevelError
	default:
		logLevel = slog.LevelInfo
	}

	opts := &slog.HandlerOptions{Level: logLevel}
	handler := slog.NewJSONHandler(os.Stdout, opts)
	return slog.New(handler)
}
