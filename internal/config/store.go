package config

import (
	"context"
	"fmt"

	"blood-connect/internal/repository"
)

// NewRecordStore opens the backend named by StoreDriver. The returned close
// func releases the underlying client and is never nil.
func NewRecordStore(ctx context.Context, cfg *Config) (repository.RecordStore, func() error, error) {
	switch cfg.StoreDriver {
	case StoreRedis:
		client, err := NewRedisClient(ctx, cfg)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to connect to redis: %w", err)
		}
		return repository.NewRedisStore(client, cfg.StoreKeyPrefix), client.Close, nil

	case StorePostgres:
		db, err := NewPostgresDB(ctx, cfg)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to connect to database: %w", err)
		}
		store := repository.NewPostgresStore(db)
		if err := store.EnsureSchema(ctx); err != nil {
			_ = db.Close()
			return nil, nil, fmt.Errorf("failed to prepare schema: %w", err)
		}
		return store, db.Close, nil

	case StoreMemory, "":
		return repository.NewMemoryStore(), func() error { return nil }, nil

	default:
		return nil, nil, fmt.Errorf("unknown store driver %q", cfg.StoreDriver)
	}
}
