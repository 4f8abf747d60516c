// Package container builds the application's shared components once at
// startup and hands them to the router explicitly.
package container

import (
	"context"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/recipe-api/config"
	"github.com/oksasatya/recipe-api/internal/application"
	repo "github.com/oksasatya/recipe-api/internal/domain/repository"
	"github.com/oksasatya/recipe-api/internal/infrastructure/catalog"
	pginfra "github.com/oksasatya/recipe-api/internal/infrastructure/postgres"
	sqliteinfra "github.com/oksasatya/recipe-api/internal/infrastructure/sqlite"
	"github.com/oksasatya/recipe-api/pkg/helpers"
)

type Container struct {
	Config *config.Config
	Logger *logrus.Logger

	Users repo.UserRepository
	Redis *redis.Client
	JWT   *helpers.JWTManager

	UserService *application.UserService
	Catalog     *application.CatalogService
}

// New wires services around an already initialized user store. rdb may be
// nil, in which case rate limiting is disabled.
func New(cfg *config.Config, logger *logrus.Logger, users repo.UserRepository, rdb *redis.Client) (*Container, error) {
	cat, err := application.NewCatalogService(catalog.FromDir(cfg.CatalogDir))
	if err != nil {
		return nil, fmt.Errorf("load catalog: %w", err)
	}
	return &Container{
		Config:      cfg,
		Logger:      logger,
		Users:       users,
		Redis:       rdb,
		JWT:         helpers.NewJWTManager(cfg.JWTAccessSecret, cfg.AccessTTL),
		UserService: application.NewUserService(users, logger),
		Catalog:     cat,
	}, nil
}

// OpenStore opens the user store selected by cfg.StoreDriver and makes sure
// its schema exists.
func OpenStore(ctx context.Context, cfg *config.Config, logger *logrus.Logger) (repo.UserRepository, error) {
	var (
		store repo.UserRepository
		err   error
	)
	switch cfg.StoreDriver {
	case config.DriverSQLite:
		store, err = openSQLite(ctx, cfg.SQLitePath)
	case config.DriverPostgres:
		store, err = openPostgres(ctx, cfg, logger)
	default:
		return nil, fmt.Errorf("unknown store driver %q", cfg.StoreDriver)
	}
	if err != nil {
		return nil, err
	}

	if err := store.Initialize(ctx); err != nil {
		_ = store.Close()
		return nil, fmt.Errorf("initialize %s store: %w", cfg.StoreDriver, err)
	}
	logger.WithField("driver", cfg.StoreDriver).Info("user store ready")
	return store, nil
}

func openSQLite(ctx context.Context, path string) (repo.UserRepository, error) {
	db, err := sqliteinfra.Open(ctx, path)
	if err != nil {
		return nil, err
	}
	return sqliteinfra.NewUserRepository(db), nil
}

func openPostgres(ctx context.Context, cfg *config.Config, logger *logrus.Logger) (repo.UserRepository, error) {
	dsn := cfg.PostgresDSN()
	pool, err := pginfra.NewPool(ctx, dsn, pginfra.PoolOptions{
		MaxConns:    cfg.DBMaxConns,
		MinConns:    cfg.DBMinConns,
		MaxConnLife: cfg.DBMaxConnLife,
	})
	if err != nil {
		return nil, err
	}
	return pginfra.NewUserRepository(pool, dsn, logger), nil
}

// Close releases the store and the Redis client.
func (c *Container) Close() error {
	var errs []error
	if c.Users != nil {
		errs = append(errs, c.Users.Close())
	}
	if c.Redis != nil {
		errs = append(errs, c.Redis.Close())
	}
	return errors.Join(errs...)
}
