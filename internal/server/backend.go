package server

import (
	"context"
	"fmt"

	"github.com/go-redis/redis/v8"
	"gorm.io/gorm"

	"github.com/HeyDYF/Money-Manager/internal/config"
	"github.com/HeyDYF/Money-Manager/internal/database"
	"github.com/HeyDYF/Money-Manager/internal/logger"
	"github.com/HeyDYF/Money-Manager/internal/storage"
)

// Backend is the ledger store chosen by STORE_DRIVER. DB is set for the SQL
// drivers so audit entries can share the connection.
type Backend struct {
	Store storage.Store
	DB    *gorm.DB

	closers []func() error
}

// OpenBackend connects the configured store and prepares its schema.
func OpenBackend(ctx context.Context, cfg *config.Config) (*Backend, error) {
	log := logger.Named("store")
	b := &Backend{}

	switch cfg.StoreDriver {
	case config.StoreMemory:
		mem := storage.NewMemoryStore(nil)
		b.Store = mem
		b.closers = append(b.closers, mem.Close)

	case config.StoreSQLite, config.StorePostgres:
		dbManager, err := database.NewManager(database.NewConfig(cfg))
		if err != nil {
			return nil, fmt.Errorf("failed to create database manager: %w", err)
		}
		if err := dbManager.Migrate(); err != nil {
			_ = dbManager.Close()
			return nil, fmt.Errorf("failed to run database migrations: %w", err)
		}
		b.Store = storage.NewGormStore(dbManager.DB())
		b.DB = dbManager.DB()
		b.closers = append(b.closers, dbManager.Close)

	case config.StoreRedis:
		client := redis.NewClient(&redis.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		})
		if err := client.Ping(ctx).Err(); err != nil {
			_ = client.Close()
			return nil, fmt.Errorf("failed to reach redis at %s: %w", cfg.RedisAddr, err)
		}
		b.Store = storage.NewRedisStore(client, cfg.RedisPrefix)
		b.closers = append(b.closers, client.Close)

	default:
		return nil, fmt.Errorf("unsupported store driver %q", cfg.StoreDriver)
	}

	log.Infow("ledger store ready", "driver", cfg.StoreDriver)
	return b, nil
}

// Close releases the store's connections.
func (b *Backend) Close() error {
	var first error
	for _, c := range b.closers {
		if err := c(); err != nil && first == nil {
			first = err
		}
	}
	return first
}
