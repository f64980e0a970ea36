// Package bootstrap opens the backends selected by configuration.
package bootstrap

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/noah-isme/startupathon-api/internal/repository"
	"github.com/noah-isme/startupathon-api/internal/repository/memstore"
	"github.com/noah-isme/startupathon-api/internal/repository/mongostore"
	"github.com/noah-isme/startupathon-api/internal/service"
	"github.com/noah-isme/startupathon-api/pkg/config"
	"github.com/noah-isme/startupathon-api/pkg/database"
	"github.com/noah-isme/startupathon-api/pkg/retry"
)

// Store bundles the repositories of one backend with its health probe.
type Store struct {
	Driver      string
	Users       service.UserRepository
	Challenges  service.ChallengeRepository
	Completers  service.CompleterRepository
	Subscribers service.SubscriberRepository
	Founders    service.FounderRepository
	Probe       database.Probe
	Close       func(ctx context.Context) error
}

// MemoryStore returns a fresh in-process store.
func MemoryStore() *Store {
	return &Store{
		Driver:      config.DriverMemory,
		Users:       memstore.NewUserRepository(),
		Challenges:  memstore.NewChallengeRepository(),
		Completers:  memstore.NewCompleterRepository(),
		Subscribers: memstore.NewSubscriberRepository(),
		Founders:    memstore.NewFounderRepository(),
		Probe:       database.AlwaysUp,
		Close:       func(context.Context) error { return nil },
	}
}

// OpenStore connects to the backend named by DB_DRIVER, retrying with backoff.
func OpenStore(ctx context.Context, cfg *config.Config, logger *zap.Logger) (*Store, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	policy := retry.DefaultPolicy(cfg.Database.ConnectRetries)
	onRetry := func(attempt int, err error, wait time.Duration) {
		logger.Warn("data store not reachable, retrying",
			zap.String("driver", cfg.Database.Driver),
			zap.Int("attempt", attempt),
			zap.Duration("wait", wait),
			zap.Error(err))
	}

	switch cfg.Database.Driver {
	case config.DriverMemory:
		logger.Warn("using in-memory store, data is lost on restart")
		return MemoryStore(), nil
	case config.DriverPostgres:
		return openPostgres(ctx, cfg, policy, onRetry)
	case config.DriverMongo:
		return openMongo(ctx, cfg, policy, onRetry)
	default:
		return nil, fmt.Errorf("unsupported DB_DRIVER %q", cfg.Database.Driver)
	}
}

func openPostgres(ctx context.Context, cfg *config.Config, policy retry.Policy, onRetry func(int, error, time.Duration)) (*Store, error) {
	var store *Store
	err := retry.Do(ctx, policy, func(ctx context.Context) error {
		db, err := database.NewPostgres(ctx, cfg.Database)
		if err != nil {
			return err
		}
		timeout := cfg.Database.QueryTimeout
		store = &Store{
			Driver:      config.DriverPostgres,
			Users:       repository.NewUserRepository(db, timeout),
			Challenges:  repository.NewChallengeRepository(db, timeout),
			Completers:  repository.NewCompleterRepository(db, timeout),
			Subscribers: repository.NewSubscriberRepository(db, timeout),
			Founders:    repository.NewFounderRepository(db, timeout),
			Probe:       database.PostgresProbe(db),
			Close:       func(context.Context) error { return db.Close() },
		}
		return nil
	}, onRetry)
	if err != nil {
		return nil, fmt.Errorf("connect postgres: %w", err)
	}
	return store, nil
}

func openMongo(ctx context.Context, cfg *config.Config, policy retry.Policy, onRetry func(int, error, time.Duration)) (*Store, error) {
	var store *Store
	err := retry.Do(ctx, policy, func(ctx context.Context) error {
		client, err := database.NewMongo(ctx, cfg.Mongo, cfg.Database.ConnectTimeout, cfg.Database.MaxOpenConns)
		if err != nil {
			return err
		}
		db := client.Database(cfg.Mongo.Database)
		if err := mongostore.EnsureIndexes(ctx, db); err != nil {
			_ = client.Disconnect(context.Background())
			return retry.Permanent(fmt.Errorf("ensure indexes: %w", err))
		}
		timeout := cfg.Database.QueryTimeout
		store = &Store{
			Driver:      config.DriverMongo,
			Users:       mongostore.NewUserRepository(db, timeout),
			Challenges:  mongostore.NewChallengeRepository(db, timeout),
			Completers:  mongostore.NewCompleterRepository(db, timeout),
			Subscribers: mongostore.NewSubscriberRepository(db, timeout),
			Founders:    mongostore.NewFounderRepository(db, timeout),
			Probe:       database.MongoProbe(client),
			Close:       client.Disconnect,
		}
		return nil
	}, onRetry)
	if err != nil {
		return nil, fmt.Errorf("connect mongo: %w", err)
	}
	return store, nil
}
