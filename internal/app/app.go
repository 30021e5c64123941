package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/storekit/catalog-search/pkg/database"
	"github.com/storekit/catalog-search/pkg/health"
	pkgkafka "github.com/storekit/catalog-search/pkg/kafka"
	"github.com/storekit/catalog-search/pkg/tracing"

	"github.com/storekit/catalog-search/internal/config"
	"github.com/storekit/catalog-search/internal/event"
	"github.com/storekit/catalog-search/internal/execctx"
	handler "github.com/storekit/catalog-search/internal/handler/http"
	"github.com/storekit/catalog-search/internal/pricing"
	"github.com/storekit/catalog-search/internal/repository"
	"github.com/storekit/catalog-search/internal/repository/postgres"
	"github.com/storekit/catalog-search/internal/repository/rediscache"
	"github.com/storekit/catalog-search/internal/searchindex"
	esindex "github.com/storekit/catalog-search/internal/searchindex/elasticsearch"
	"github.com/storekit/catalog-search/internal/searchindex/memory"
	"github.com/storekit/catalog-search/internal/service"
)

const serviceVersion = "1.0.0"

// App wires together all dependencies and runs the catalog-search service.
type App struct {
	cfg             *config.Config
	logger          *slog.Logger
	consumers       []*pkgkafka.Consumer
	httpServer      *http.Server
	shutdownTracing func(context.Context) error
	closePool       func()
}

// NewApp creates a new application instance, initializing all dependencies.
func NewApp(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*App, error) {
	shutdownTracing, err := tracing.InitTracer(ctx, tracing.Config{
		ServiceName:    "catalog-search",
		ServiceVersion: serviceVersion,
		Environment:    cfg.Environment,
		OTLPEndpoint:   cfg.OTLPEndpoint,
		SampleRate:     1.0,
		Enabled:        cfg.TracingEnabled,
	})
	if err != nil {
		return nil, fmt.Errorf("init tracing: %w", err)
	}

	pgCfg := cfg.Postgres()
	pool, err := database.NewPostgresPool(ctx, &pgCfg, logger)
	if err != nil {
		return nil, fmt.Errorf("init postgres: %w", err)
	}

	var store repository.CatalogStore = postgres.NewCatalogRepository(pool)

	redisClient, err := database.NewRedisClient(ctx, cfg.Redis())
	if err != nil {
		logger.Warn("redis unavailable, currency caching disabled", slog.String("error", err.Error()))
	} else {
		store = rediscache.NewCurrencyCache(store, redisClient, cfg.CurrencyCacheTTL, logger)
	}

	// Search index, wrapped in a circuit breaker either way.
	var (
		index   searchindex.ProductSearchIndex
		esIndex *esindex.Index
	)
	switch cfg.SearchEngine {
	case "elasticsearch":
		esIndex, err = esindex.New(cfg.ElasticsearchURL, cfg.ElasticsearchIndex, logger)
		if err != nil {
			pool.Close()
			return nil, fmt.Errorf("init elasticsearch index: %w", err)
		}
		index = esIndex
		logger.Info("elasticsearch index initialized",
			slog.String("url", cfg.ElasticsearchURL),
			slog.String("index", cfg.ElasticsearchIndex),
		)
	default:
		index = memory.New()
		logger.Info("in-memory index initialized")
	}
	index = searchindex.NewBreakerIndex(index, searchindex.DefaultBreakerConfig("search-index"), logger)

	formatter, err := pricing.NewLocaleFormatter(cfg.DefaultLocale)
	if err != nil {
		pool.Close()
		return nil, fmt.Errorf("init price formatter: %w", err)
	}
	pricer := pricing.NewHelper(store, pricing.DefaultPolicy{MinDisplayDigits: cfg.MinDisplayDigits}, formatter)

	scope := execctx.NewScope(execctx.State{
		LanguageID: cfg.DefaultLanguageID,
		Locale:     cfg.DefaultLocale,
	})

	aggregator := service.NewSearchAggregator(store, index, pricer, scope, logger)

	// Kafka consumers keep the index in sync with catalog changes.
	eventConsumer := event.NewConsumer(index, logger)
	topics := []string{
		event.TopicProductCreated,
		event.TopicProductUpdated,
		event.TopicProductDeleted,
	}

	var consumers []*pkgkafka.Consumer
	for _, topic := range topics {
		consumerCfg := pkgkafka.ConsumerConfig{
			Brokers:  cfg.KafkaBrokers,
			GroupID:  cfg.KafkaConsumerGroup,
			Topic:    topic,
			MinBytes: 1,
			MaxBytes: 10e6, // 10 MB
		}
		consumers = append(consumers, pkgkafka.NewConsumer(consumerCfg, eventConsumer.Handle, logger))
	}
	logger.Info("kafka consumers initialized",
		slog.Any("brokers", cfg.KafkaBrokers),
		slog.Int("topic_count", len(topics)),
	)

	healthHandler := health.NewHandler()
	healthHandler.Register("postgres", pool.Ping)
	if redisClient != nil {
		healthHandler.Register("redis", func(ctx context.Context) error {
			return redisClient.Ping(ctx).Err()
		})
	}
	if esIndex != nil {
		healthHandler.Register("elasticsearch", esIndex.Ping)
	}
	healthHandler.Register("kafka", func(ctx context.Context) error {
		return pkgkafka.PingBrokers(ctx, cfg.KafkaBrokers)
	})

	router := handler.NewRouter(aggregator, healthHandler, logger)

	httpServer := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.HTTPPort),
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	return &App{
		cfg:             cfg,
		logger:          logger,
		consumers:       consumers,
		httpServer:      httpServer,
		shutdownTracing: shutdownTracing,
		closePool:       pool.Close,
	}, nil
}

// Run starts the HTTP server and Kafka consumers, blocking until the context
// is canceled or a component fails.
func (a *App) Run(ctx context.Context) error {
	errCh := make(chan error, 1+len(a.consumers))

	for _, c := range a.consumers {
		go func() {
			if err := c.Start(ctx); err != nil {
				errCh <- fmt.Errorf("kafka consumer: %w", err)
			}
		}()
	}

	go func() {
		a.logger.Info("starting HTTP server", slog.String("addr", a.httpServer.Addr))
		if err := a.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- fmt.Errorf("http server: %w", err)
		}
	}()

	select {
	case <-ctx.Done():
		a.logger.Info("shutdown signal received")
	case err := <-errCh:
		return err
	}

	return a.Shutdown()
}

// Shutdown gracefully stops all components.
func (a *App) Shutdown() error {
	a.logger.Info("shutting down application...")

	var errs []error

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := a.httpServer.Shutdown(shutdownCtx); err != nil {
		a.logger.Error("http server shutdown error", slog.String("error", err.Error()))
		errs = append(errs, err)
	}

	for _, c := range a.consumers {
		if err := c.Close(); err != nil {
			a.logger.Error("kafka consumer close error", slog.String("error", err.Error()))
			errs = append(errs, err)
		}
	}

	if err := a.shutdownTracing(shutdownCtx); err != nil {
		a.logger.Error("tracing shutdown error", slog.String("error", err.Error()))
		errs = append(errs, err)
	}

	a.closePool()

	a.logger.Info("application shutdown complete")
	return errors.Join(errs...)
}
