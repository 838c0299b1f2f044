// Package initializer builds the infrastructure of each binary from
// configuration.
package initializer

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/amirasaad/corebank/infra"
	"github.com/amirasaad/corebank/infra/cache"
	infra_eventbus "github.com/amirasaad/corebank/infra/eventbus"
	"github.com/amirasaad/corebank/infra/provider/identity"
	infra_repository "github.com/amirasaad/corebank/infra/repository"
	"github.com/amirasaad/corebank/pkg/app"
	"github.com/amirasaad/corebank/pkg/config"
	"github.com/amirasaad/corebank/pkg/eventbus"
	"github.com/amirasaad/corebank/pkg/repository"
)

// Cleanup releases what an initializer opened.
type Cleanup func() error

// InitializeIdentity prepares the identity service: database and publisher.
func InitializeIdentity(cfg *config.App) (*app.Deps, Cleanup, error) {
	logger := setupLogger(cfg.Log).With("app", cfg.ServiceName)
	closers := &closerList{}

	uow, err := initDatabase(cfg, logger, closers)
	if err != nil {
		return nil, closers.Close, err
	}
	publisher := initPublisher(cfg.RabbitMQ, logger)
	if c, ok := publisher.(io.Closer); ok {
		closers.add(c)
	}
	return &app.Deps{
		Uow:       uow,
		Publisher: publisher,
		Logger:    logger,
	}, closers.Close, nil
}

// InitializeMovement prepares the financial-movement service: database,
// identity lookup client, and processed-event store.
func InitializeMovement(cfg *config.App) (*app.Deps, Cleanup, error) {
	logger := setupLogger(cfg.Log).With("app", cfg.ServiceName)
	closers := &closerList{}

	uow, err := initDatabase(cfg, logger, closers)
	if err != nil {
		return nil, closers.Close, err
	}
	store, err := initProcessedStore(cfg.Redis, logger)
	if err != nil {
		return nil, closers.Close, err
	}
	if c, ok := store.(io.Closer); ok {
		closers.add(c)
	}
	return &app.Deps{
		Uow:            uow,
		CustomerLookup: identity.NewClient(cfg.Identity, logger),
		ProcessedStore: store,
		Logger:         logger,
	}, closers.Close, nil
}

// NewConsumer returns the broker consumer when RABBITMQ_URL is set and nil
// otherwise.
func NewConsumer(cfg *config.RabbitMQ, handler eventbus.HandlerFunc, logger *slog.Logger) eventbus.Consumer {
	if cfg == nil || cfg.URL == "" {
		logger.Warn("RABBITMQ_URL not set, customer events will not be consumed")
		return nil
	}
	return infra_eventbus.NewRabbitConsumer(cfg, handler, logger)
}

func initDatabase(cfg *config.App, logger *slog.Logger, closers *closerList) (repository.UnitOfWork, error) {
	if cfg.DB == nil {
		return nil, errors.New("database configuration is missing")
	}
	db, err := infra.NewDBConnection(cfg.DB, cfg.Env)
	if err != nil {
		logger.Error("Failed to initialize database", "error", err)
		return nil, err
	}
	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	closers.add(sqlDB)
	if err := infra.Migrate(db, cfg.DB.MigrationsPath, logger); err != nil {
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}
	return infra_repository.NewUoW(db), nil
}

// initPublisher picks RabbitMQ when configured and the in-memory publisher
// otherwise.
func initPublisher(cfg *config.RabbitMQ, logger *slog.Logger) eventbus.Publisher {
	if cfg == nil || cfg.URL == "" {
		logger.Warn("RABBITMQ_URL not set, events stay in memory")
		return infra_eventbus.NewWithMemory(logger)
	}
	return infra_eventbus.NewRabbitPublisher(cfg, logger)
}

// initProcessedStore picks Redis when configured and an in-memory store
// otherwise.
func initProcessedStore(cfg *config.Redis, logger *slog.Logger) (repository.ProcessedEventStore, error) {
	if cfg == nil || cfg.URL == "" {
		return cache.NewMemoryProcessedStore(processedTTL(cfg)), nil
	}
	store, err := cache.NewRedisProcessedStore(cfg.URL, cfg.KeyPrefix, cfg.ProcessedTTL, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to create Redis processed-event store: %w", err)
	}
	return store, nil
}

func processedTTL(cfg *config.Redis) (ttl time.Duration) {
	if cfg != nil {
		ttl = cfg.ProcessedTTL
	}
	return
}

type closerList struct {
	closers []io.Closer
}

func (l *closerList) add(c io.Closer) { l.closers = append(l.closers, c) }

// Close closes in reverse order of registration.
func (l *closerList) Close() error {
	var errs []error
	for i := len(l.closers) - 1; i >= 0; i-- {
		errs = append(errs, l.closers[i].Close())
	}
	return errors.Join(errs...)
}

// Run starts the consumer and blocks until ctx ends.
func Run(ctx context.Context, consumer eventbus.Consumer) error {
	if consumer == nil {
		<-ctx.Done()
		return nil
	}
	defer consumer.Close() //nolint: errcheck
	return consumer.Start(ctx)
}
