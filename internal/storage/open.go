package storage

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Veraticus/dual-count/internal/common"
	"github.com/Veraticus/dual-count/internal/config"
	"github.com/Veraticus/dual-count/internal/service"
)

// Open creates the backend selected by cfg. SQLite databases are migrated
// before they are returned.
func Open(ctx context.Context, cfg config.StorageConfig) (service.StateStore, error) {
	switch cfg.Backend {
	case config.BackendSQLite:
		store, err := NewSQLiteStorage(cfg.Path)
		if err != nil {
			return nil, err
		}
		if err := store.Migrate(ctx); err != nil {
			_ = store.Close()
			return nil, fmt.Errorf("failed to migrate database: %w", err)
		}
		return store, nil
	case config.BackendRedis:
		return openRedis(ctx, cfg.Redis)
	default:
		return nil, fmt.Errorf("%w: storage backend %q", common.ErrUnsupported, cfg.Backend)
	}
}

// openRedis retries the initial connection so a server that is still
// starting does not fail the command.
func openRedis(ctx context.Context, cfg config.RedisConfig) (*RedisStorage, error) {
	var store *RedisStorage
	err := common.WithRetry(ctx, func() error {
		s, err := NewRedisStorage(ctx, cfg)
		if errors.Is(err, ErrEmptyString) || errors.Is(err, ErrNilContext) {
			return common.Permanent(err)
		}
		if err != nil {
			return err
		}
		store = s
		return nil
	}, common.RetryOptions{
		MaxAttempts:  3,
		InitialDelay: 100 * time.Millisecond,
		MaxDelay:     time.Second,
	})
	if err != nil {
		return nil, err
	}
	return store, nil
}
