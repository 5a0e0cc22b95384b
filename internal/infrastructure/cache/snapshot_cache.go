// Package cache implementa el cache de snapshots de permisos sobre Redis.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/cotelbo/cotel-admin-api/internal/application/auth"
	"github.com/cotelbo/cotel-admin-api/pkg/config"
)

var _ auth.SnapshotCache = (*RedisSnapshotCache)(nil)

const snapshotKeyPrefix = "authz:perms:"

// RedisSnapshotCache guarda el snapshot de permisos por usuario con TTL.
// El TTL acota la ventana de permisos obsoletos cuando una mutación no pasa
// por la invalidación explícita (p.ej. desactivar un permiso del catálogo).
type RedisSnapshotCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedisSnapshotCache construye el cache y verifica la conexión.
func NewRedisSnapshotCache(ctx context.Context, cfg config.RedisConfig) (*RedisSnapshotCache, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("redis ping: %w", err)
	}
	return &RedisSnapshotCache{
		client: client,
		ttl:    time.Duration(cfg.TTLMinutes) * time.Minute,
	}, nil
}

// Get devuelve el snapshot cacheado del usuario, o (nil, nil) en miss.
func (c *RedisSnapshotCache) Get(ctx context.Context, userID string) (*auth.Snapshot, error) {
	val, err := c.client.Get(ctx, snapshotKeyPrefix+userID).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, fmt.Errorf("redis get snapshot: %w", err)
	}
	var s auth.Snapshot
	if err := json.Unmarshal([]byte(val), &s); err != nil {
		// Entrada corrupta: se descarta y se trata como miss.
		_ = c.client.Del(ctx, snapshotKeyPrefix+userID).Err()
		return nil, nil
	}
	return &s, nil
}

// Set guarda el snapshot del usuario con el TTL configurado.
func (c *RedisSnapshotCache) Set(ctx context.Context, userID string, s *auth.Snapshot) error {
	data, err := json.Marshal(s)
	if err != nil {
		return fmt.Errorf("marshal snapshot: %w", err)
	}
	if err := c.client.Set(ctx, snapshotKeyPrefix+userID, data, c.ttl).Err(); err != nil {
		return fmt.Errorf("redis set snapshot: %w", err)
	}
	return nil
}

// Invalidate elimina los snapshots de los usuarios dados.
func (c *RedisSnapshotCache) Invalidate(ctx context.Context, userIDs ...string) error {
	if len(userIDs) == 0 {
		return nil
	}
	keys := make([]string, len(userIDs))
	for i, id := range userIDs {
		keys[i] = snapshotKeyPrefix + id
	}
	if err := c.client.Del(ctx, keys...).Err(); err != nil {
		return fmt.Errorf("redis invalidate snapshots: %w", err)
	}
	return nil
}

// Close cierra la conexión con Redis.
func (c *RedisSnapshotCache) Close() error {
	return c.client.Close()
}
