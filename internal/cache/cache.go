package cache

import (
	"context"
	"fmt"
	"go-forum-app/internal/config"
	"time"
)

// Store is a byte-oriented key/value cache with per-entry expiry.
// A miss is reported as (nil, nil).
type Store interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
	Close() error
}

// New creates the Store selected by cfg.Driver.
func New(cfg config.CacheConfig) (Store, error) {
	switch cfg.Driver {
	case "", "sqlite":
		return NewSQLite(cfg.FilePath)
	case "redis":
		return NewRedis(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
	default:
		return nil, fmt.Errorf("unknown cache driver %q", cfg.Driver)
	}
}
