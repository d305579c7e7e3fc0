// Package tokenstore holds the session token stores the API client can be
// configured with.
package tokenstore

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/redis/go-redis/v9"

	"github.com/devilmonastery/warehouse/internal/client"
	"github.com/devilmonastery/warehouse/internal/config"
)

// Keys under which the two tokens are persisted
const (
	AccessTokenKey  = "access_token"
	RefreshTokenKey = "refresh_token"
)

// Store kinds accepted in session.store
const (
	KindFile      = "file"
	KindEncrypted = "encrypted"
	KindRedis     = "redis"
	KindMemory    = "memory"
)

// New builds the token store selected by cfg.Session.Store
func New(ctx context.Context, cfg *config.Config) (client.TokenStore, error) {
	switch cfg.Session.Store {
	case KindMemory:
		return NewMemoryStore(), nil
	case KindFile, "":
		path, err := sessionPath(cfg)
		if err != nil {
			return nil, err
		}
		return NewFileStore(path), nil
	case KindEncrypted:
		path, err := sessionPath(cfg)
		if err != nil {
			return nil, err
		}
		return NewEncryptedFileStore(path, cfg.Session.EncryptionKey)
	case KindRedis:
		rdb := redis.NewClient(&redis.Options{
			Addr:     cfg.Session.Redis.Addr,
			Password: cfg.Session.Redis.Password,
			DB:       cfg.Session.Redis.DB,
		})
		if err := rdb.Ping(ctx).Err(); err != nil {
			rdb.Close()
			return nil, fmt.Errorf("failed to connect to redis at %s: %w", cfg.Session.Redis.Addr, err)
		}
		return NewRedisStore(rdb, cfg.Session.Redis.Prefix), nil
	default:
		return nil, fmt.Errorf("unknown session store %q", cfg.Session.Store)
	}
}

func sessionPath(cfg *config.Config) (string, error) {
	if cfg.Session.Path != "" {
		return cfg.Session.Path, nil
	}
	return DefaultPath(cfg.Environment)
}

// DefaultPath returns the per-environment credentials file,
// ~/.config/warehouse/credentials-<env>.json
func DefaultPath(environment string) (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}
	if environment == "" {
		environment = config.EnvDevelopment
	}
	return filepath.Join(homeDir, ".config", "warehouse", fmt.Sprintf("credentials-%s.json", environment)), nil
}
