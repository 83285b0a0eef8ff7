package storage

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"

	"github.com/Veraticus/dual-count/internal/common"
	"github.com/Veraticus/dual-count/internal/config"
	"github.com/redis/go-redis/v9"
)

// RedisStorage implements service.StateStore on top of a redis server.
type RedisStorage struct {
	client *redis.Client
	prefix string
	closed atomic.Bool
}

// NewRedisStorage connects to the server described by cfg and verifies the
// connection.
func NewRedisStorage(ctx context.Context, cfg config.RedisConfig) (*RedisStorage, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	if err := validateString(cfg.Addr, "addr"); err != nil {
		return nil, err
	}

	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("failed to ping redis: %w", err)
	}

	return NewRedisStorageFromClient(client, cfg.Prefix), nil
}

// NewRedisStorageFromClient wraps an existing client. Keys are stored as
// prefix+key.
func NewRedisStorageFromClient(client *redis.Client, prefix string) *RedisStorage {
	return &RedisStorage{
		client: client,
		prefix: prefix,
	}
}

// Close closes the underlying client. Blob operations fail with
// common.ErrStoreClosed afterwards.
func (r *RedisStorage) Close() error {
	if r.closed.Swap(true) {
		return nil
	}
	return r.client.Close()
}

// LoadBlob returns the data stored under key.
func (r *RedisStorage) LoadBlob(ctx context.Context, key string) ([]byte, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	if err := validateString(key, "key"); err != nil {
		return nil, err
	}
	if r.closed.Load() {
		return nil, common.ErrStoreClosed
	}

	data, err := r.client.Get(ctx, r.prefix+key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, fmt.Errorf("blob %q: %w", key, common.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load blob: %w", err)
	}
	return data, nil
}

// SaveBlob stores data under key with no expiry.
func (r *RedisStorage) SaveBlob(ctx context.Context, key string, data []byte) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validateBlob(key, data); err != nil {
		return err
	}
	if r.closed.Load() {
		return common.ErrStoreClosed
	}

	if err := r.client.Set(ctx, r.prefix+key, data, 0).Err(); err != nil {
		return fmt.Errorf("failed to save blob: %w", err)
	}
	return nil
}
