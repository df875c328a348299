// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package userstore opens the credential store selected by STORE_DRIVER.

It owns the backend client (Mongo client, pgx pool or Redis client), prepares
the schema (unique index or migrations), and hands the API server and the
provisioning tool a ready [auth.UserRepository].
*/
package userstore

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/taibuivan/usergate/internal/platform/config"
	"github.com/taibuivan/usergate/internal/platform/migration"
	mongostore "github.com/taibuivan/usergate/internal/platform/mongo"
	pgstore "github.com/taibuivan/usergate/internal/platform/postgres"
	redisstore "github.com/taibuivan/usergate/internal/platform/redis"
	"github.com/taibuivan/usergate/internal/users/auth"
)

// Store is an opened credential store and the means to release it.
type Store struct {
	// Driver is the STORE_DRIVER value the store was opened with.
	Driver string

	// Users is the repository backed by the driver.
	Users auth.UserRepository

	close func(ctx context.Context) error
}

// Close releases the underlying client.
func (store *Store) Close(ctx context.Context) error {
	if store.close == nil {
		return nil
	}
	return store.close(ctx)
}

/*
Open connects the backend named by cfg.StoreDriver.

Parameters:
  - ctx: Startup context bounding connection and schema preparation.
  - cfg: *config.Config
  - logger: *slog.Logger

Returns:
  - *Store: Ready store; callers must Close it
  - error: Connection or schema failures
*/
func Open(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*Store, error) {
	switch cfg.StoreDriver {
	case config.DriverMongo:
		return openMongo(ctx, cfg, logger)
	case config.DriverPostgres:
		return openPostgres(ctx, cfg, logger)
	case config.DriverRedis:
		return openRedis(ctx, cfg, logger)
	case config.DriverMemory:
		logger.Warn("memory_store_selected", slog.String("note", "records are lost on exit"))
		return &Store{Driver: config.DriverMemory, Users: auth.NewMemoryUserRepository()}, nil
	default:
		return nil, fmt.Errorf("userstore: unknown driver %q", cfg.StoreDriver)
	}
}

func openMongo(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*Store, error) {
	client, err := mongostore.NewClient(ctx, cfg.MongoConnectionURI(), logger)
	if err != nil {
		return nil, err
	}

	collection := client.Database(cfg.MongoDatabase).Collection(cfg.MongoCollection)
	repository := auth.NewMongoUserRepository(collection)

	if err := repository.EnsureIndexes(ctx); err != nil {
		_ = client.Disconnect(ctx)
		return nil, err
	}

	logger.Info("user_store_ready",
		slog.String("driver", config.DriverMongo),
		slog.String("database", cfg.MongoDatabase),
		slog.String("collection", cfg.MongoCollection),
	)

	return &Store{
		Driver: config.DriverMongo,
		Users:  repository,
		close:  client.Disconnect,
	}, nil
}

func openPostgres(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*Store, error) {
	if err := migration.RunUp(cfg.DatabaseURL, logger); err != nil {
		return nil, err
	}

	pool, err := pgstore.NewPool(ctx, cfg.DatabaseURL, logger)
	if err != nil {
		return nil, err
	}

	logger.Info("user_store_ready", slog.String("driver", config.DriverPostgres))

	return &Store{
		Driver: config.DriverPostgres,
		Users:  auth.NewPostgresUserRepository(pool),
		close: func(context.Context) error {
			pool.Close()
			return nil
		},
	}, nil
}

func openRedis(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*Store, error) {
	client, err := redisstore.NewClient(ctx, cfg.RedisURL, logger)
	if err != nil {
		return nil, err
	}

	logger.Info("user_store_ready", slog.String("driver", config.DriverRedis))

	return &Store{
		Driver: config.DriverRedis,
		Users:  auth.NewRedisUserRepository(client),
		close: func(context.Context) error {
			return client.Close()
		},
	}, nil
}
