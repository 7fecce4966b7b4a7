// Package bootstrap assembles the fulfillment services from configuration.
// Both the HTTP server and the integrity CLI start from New.
package bootstrap

import (
	"context"
	"fmt"
	"time"

	"github.com/fekuna/omnipos-fulfillment-service/config"
	"github.com/fekuna/omnipos-fulfillment-service/internal/broker"
	"github.com/fekuna/omnipos-fulfillment-service/internal/cache"
	"github.com/fekuna/omnipos-fulfillment-service/internal/catalog"
	catRepo "github.com/fekuna/omnipos-fulfillment-service/internal/catalog/repository"
	"github.com/fekuna/omnipos-fulfillment-service/internal/database"
	"github.com/fekuna/omnipos-fulfillment-service/internal/invoice"
	invListener "github.com/fekuna/omnipos-fulfillment-service/internal/invoice/listener"
	invRepo "github.com/fekuna/omnipos-fulfillment-service/internal/invoice/repository"
	invUC "github.com/fekuna/omnipos-fulfillment-service/internal/invoice/usecase"
	"github.com/fekuna/omnipos-fulfillment-service/internal/logger"
	"github.com/fekuna/omnipos-fulfillment-service/internal/metrics"
	"github.com/fekuna/omnipos-fulfillment-service/internal/order"
	ordRepo "github.com/fekuna/omnipos-fulfillment-service/internal/order/repository"
	ordUC "github.com/fekuna/omnipos-fulfillment-service/internal/order/usecase"
	"github.com/fekuna/omnipos-fulfillment-service/internal/pod"
	podRepo "github.com/fekuna/omnipos-fulfillment-service/internal/pod/repository"
	podUC "github.com/fekuna/omnipos-fulfillment-service/internal/pod/usecase"
	"github.com/fekuna/omnipos-fulfillment-service/internal/recordstore"
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"
)

const (
	BackendMemory   = "memory"
	BackendPostgres = "postgres"
	BackendSQLite   = "sqlite"
	BackendRedis    = "redis"
)

type App struct {
	Config   *config.Config
	Logger   logger.ZapLogger
	Store    recordstore.Store
	Registry *prometheus.Registry
	Metrics  *metrics.FulfillmentMetrics

	Catalog  catalog.Repository
	Orders   order.UseCase
	Invoices invoice.UseCase
	PODs     pod.UseCase

	consumer *broker.KafkaConsumer
	closers  []func() error
}

// NewLogger builds the process logger. Development mode switches to console output.
func NewLogger(cfg *config.Config) logger.ZapLogger {
	logConfig := &logger.ZapLoggerConfig{
		IsDevelopment:     false,
		Encoding:          cfg.Logger.Encoding,
		Level:             cfg.Logger.Level,
		DisableCaller:     cfg.Logger.DisableCaller,
		DisableStacktrace: cfg.Logger.DisableStacktrace,
	}
	if cfg.Server.AppEnv == "development" {
		logConfig.IsDevelopment = true
		logConfig.Encoding = "console"
		logConfig.Level = "debug"
	}
	return logger.NewZapLogger(logConfig)
}

// New connects the configured backends and wires the use cases. Call Close
// when done, also after an error.
func New(ctx context.Context, cfg *config.Config, log logger.ZapLogger) (*App, error) {
	app := &App{Config: cfg, Logger: log}

	var redisClient *cache.RedisClient
	if cfg.Redis.Enabled || cfg.Store.Backend == BackendRedis {
		client, err := cache.NewRedisClient(&cache.Config{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		if err != nil {
			return app, fmt.Errorf("could not connect to redis: %w", err)
		}
		app.closers = append(app.closers, client.Close)
		redisClient = client
		log.Info("Connected to Redis", zap.String("addr", cfg.Redis.Addr))
	}

	store, err := app.openStore(ctx, redisClient)
	if err != nil {
		return app, err
	}
	app.Store = store
	log.Info("Record store ready", zap.String("backend", cfg.Store.Backend))

	var locker cache.Locker = cache.NewLocalLocker()
	if cfg.Redis.Enabled {
		locker = redisClient
	}

	app.Registry = prometheus.NewRegistry()
	if cfg.Metrics.Enabled {
		m, err := metrics.New(app.Registry)
		if err != nil {
			return app, fmt.Errorf("register metrics: %w", err)
		}
		app.Metrics = m
	}

	var publisher ordUC.EventPublisher
	if cfg.Kafka.Enabled {
		brokerCfg := &broker.Config{
			Brokers: cfg.Kafka.Brokers,
			Topic:   cfg.Kafka.Topic,
			GroupID: cfg.Kafka.GroupID,
		}
		producer := broker.NewProducer(brokerCfg)
		app.closers = append(app.closers, producer.Close)
		publisher = producer

		app.consumer = broker.NewConsumer(brokerCfg)
		app.closers = append(app.closers, app.consumer.Close)
		log.Info("Kafka enabled", zap.Strings("brokers", cfg.Kafka.Brokers), zap.String("topic", cfg.Kafka.Topic))
	}

	orders := ordRepo.NewStoreRepository(store)
	invoices := invRepo.NewStoreRepository(store)
	pods := podRepo.NewStoreRepository(store)
	app.Catalog = catRepo.NewStoreRepository(store)

	app.Orders = ordUC.NewOrderUseCase(orders, invoices, publisher, log.With(zap.String("service", "order")))
	app.Invoices = invUC.NewInvoiceUseCase(invoices, orders, app.Catalog, app.Metrics, log.With(zap.String("service", "invoice")))
	app.PODs = podUC.NewPODUseCase(pods, orders, invoices, locker,
		podUC.Config{LockTTL: time.Duration(cfg.Redis.LockTTLSec) * time.Second},
		app.Metrics, log.With(zap.String("service", "pod")))

	return app, nil
}

func (a *App) openStore(ctx context.Context, redisClient *cache.RedisClient) (recordstore.Store, error) {
	cfg := a.Config
	switch cfg.Store.Backend {
	case "", BackendMemory:
		return recordstore.NewMemoryStore(), nil

	case BackendPostgres:
		db, err := database.NewPostgres(&database.PostgresConfig{
			Host:            cfg.Postgres.Host,
			Port:            cfg.Postgres.Port,
			User:            cfg.Postgres.User,
			Password:        cfg.Postgres.Password,
			DBName:          cfg.Postgres.DBName,
			SSLMode:         cfg.Postgres.SSLMode,
			MaxOpenConns:    cfg.Postgres.MaxOpenConns,
			MaxIdleConns:    cfg.Postgres.MaxIdleConns,
			ConnMaxLifetime: time.Duration(cfg.Postgres.ConnMaxLifetime) * time.Second,
			ConnMaxIdleTime: time.Duration(cfg.Postgres.ConnMaxIdleTime) * time.Second,
		})
		if err != nil {
			return nil, err
		}
		a.closers = append(a.closers, db.Close)
		return migrated(ctx, recordstore.NewSQLStore(db))

	case BackendSQLite:
		db, err := database.NewSQLite(cfg.Store.SQLitePath)
		if err != nil {
			return nil, err
		}
		a.closers = append(a.closers, db.Close)
		return migrated(ctx, recordstore.NewSQLStore(db))

	case BackendRedis:
		return recordstore.NewRedisStore(redisClient.Client), nil

	default:
		return nil, fmt.Errorf("unknown store backend %q", cfg.Store.Backend)
	}
}

func migrated(ctx context.Context, s *recordstore.SQLStore) (recordstore.Store, error) {
	if err := s.Migrate(ctx); err != nil {
		return nil, fmt.Errorf("migrate record store: %w", err)
	}
	return s, nil
}

// InvoiceListener returns the OrderCompleted consumer, or nil when Kafka is disabled.
func (a *App) InvoiceListener() *invListener.InvoiceListener {
	if a.consumer == nil {
		return nil
	}
	return invListener.NewInvoiceListener(a.consumer, a.Invoices, a.Logger.With(zap.String("component", "invoice-listener")))
}

// Close releases backends in reverse order of acquisition.
func (a *App) Close() error {
	var first error
	for i := len(a.closers) - 1; i >= 0; i-- {
		if err := a.closers[i](); err != nil && first == nil {
			first = err
		}
	}
	a.closers = nil
	return first
}
