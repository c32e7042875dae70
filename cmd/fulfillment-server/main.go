// cmd/fulfillment-server/main.go
package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"minimart-assistant/internal/catalog"
	"minimart-assistant/internal/common/alerts"
	"minimart-assistant/internal/common/config"
	"minimart-assistant/internal/common/database"
	"minimart-assistant/internal/common/logger"
	"minimart-assistant/internal/common/observability"
	"minimart-assistant/internal/stockquery"
	"minimart-assistant/internal/webhook"
)

// retryWithBackoff attempts to execute a function with exponential backoff
func retryWithBackoff(operation func() error, maxRetries int, initialDelay time.Duration, log *zap.Logger, operationName string) error {
	var err error
	delay := initialDelay

	for i := 0; i < maxRetries; i++ {
		err = operation()
		if err == nil {
			return nil
		}

		if i < maxRetries-1 {
			log.Warn(fmt.Sprintf("%s failed, retrying...", operationName),
				zap.Error(err),
				zap.Int("attempt", i+1),
				zap.Int("maxRetries", maxRetries),
				zap.Duration("nextRetryIn", delay),
			)
			time.Sleep(delay)
			delay *= 2 // Exponential backoff
		}
	}

	return fmt.Errorf("%s failed after %d attempts: %w", operationName, maxRetries, err)
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		bootstrap := logger.New("info", "console")
		bootstrap.Fatal("config load failed", zap.Error(err))
	}

	zapLog := logger.New(cfg.Logging.Level, cfg.Logging.Format)
	defer zapLog.Sync()

	log := logger.NewZapAdapter(zapLog)
	zapLog.Info("Starting fulfillment server...",
		zap.String("app", cfg.App.Name),
		zap.String("environment", cfg.App.Environment),
	)

	obs := observability.New(cfg.App.Name)
	defer obs.Shutdown()

	ctx := context.Background()

	// --- Init PostgreSQL with retry ---
	var pg *database.PostgresClient
	err = retryWithBackoff(func() error {
		var err error
		pg, err = database.NewPostgres(cfg.Database.Postgres)
		if err != nil {
			return err
		}
		return pg.Ping(ctx)
	}, 15, 2*time.Second, zapLog, "PostgreSQL connection")
	if err != nil {
		zapLog.Fatal("postgres failed after retries", zap.Error(err))
	}
	defer pg.Close()
	zapLog.Info("PostgreSQL connected")

	// --- Init Elasticsearch (optional prefilter, service runs without it) ---
	var search *catalog.SearchIndex
	if cfg.Database.Elasticsearch.Enabled {
		es, err := database.NewElasticsearch(cfg.Database.Elasticsearch)
		if err != nil {
			zapLog.Warn("elasticsearch unavailable, name search falls back to SQL", zap.Error(err))
		} else if err := es.Ping(); err != nil {
			zapLog.Warn("elasticsearch ping failed, name search falls back to SQL", zap.Error(err))
		} else {
			search = catalog.NewSearchIndex(es.Client, cfg.Database.Elasticsearch.ItemIndex)
			zapLog.Info("Elasticsearch connected", zap.Strings("addresses", cfg.Database.Elasticsearch.Addresses))
		}
	}

	// --- Catalog provider chain ---
	var provider catalog.Provider = catalog.NewPostgresProvider(pg.GetDB(), search, log)

	if cfg.Cache.Enabled {
		rdb, err := database.NewRedis(cfg.Database.Redis)
		if err != nil {
			zapLog.Warn("redis unavailable, snapshot cache disabled", zap.Error(err))
		} else {
			defer rdb.Close()
			if err := rdb.Ping(ctx); err != nil {
				zapLog.Warn("redis ping failed, snapshot cache disabled", zap.Error(err))
			} else {
				ttl := time.Duration(cfg.Cache.TTLSeconds) * time.Second
				provider = catalog.NewCachedProvider(provider, rdb.GetClient(), ttl, log)
				zapLog.Info("Snapshot cache enabled", zap.Duration("ttl", ttl))
			}
		}
	}

	// --- Ops alerting ---
	var notifier alerts.Notifier = alerts.NoopNotifier{}
	if cfg.Alerts.Enabled {
		snsNotifier, err := alerts.NewSNSNotifier(ctx, cfg.Alerts.Region, cfg.Alerts.TopicARN, log)
		if err != nil {
			zapLog.Warn("sns notifier init failed, alerts disabled", zap.Error(err))
		} else {
			notifier = snsNotifier
			zapLog.Info("SNS alerts enabled", zap.String("topic", cfg.Alerts.TopicARN))
		}
	}

	// --- Engine + HTTP surface ---
	engine := stockquery.New(stockquery.Config{
		AmbiguityPolicy: stockquery.AmbiguityPolicy(cfg.Resolver.AmbiguityPolicy),
		SummaryLimit:    cfg.Resolver.SummaryLimit,
	}, log)

	handler := webhook.NewHandler(provider, engine, notifier, obs, log)

	mux := http.NewServeMux()
	mux.HandleFunc("/v1/fulfillment", handler.Fulfill)
	mux.HandleFunc("/healthz", handler.Healthz)
	mux.Handle("/metrics", promhttp.Handler())

	server := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      mux,
		ReadTimeout:  config.GetDuration(cfg.Server.ReadTimeout),
		WriteTimeout: config.GetDuration(cfg.Server.WriteTimeout),
	}

	go func() {
		zapLog.Info("HTTP server listening", zap.Int("port", cfg.Server.Port))
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			zapLog.Fatal("http server failed", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	zapLog.Info("Shutting down server...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), config.GetDuration(cfg.Server.ShutdownTimeout))
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		zapLog.Error("graceful shutdown failed", zap.Error(err))
	}
	zapLog.Info("Server stopped")
}
