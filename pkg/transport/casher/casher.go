// Package casher provides Redis-based caching for module, content and
// playlist snapshots so read-heavy list screens can be served without
// touching the database.
package casher

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/Koyo-os/learnhub-admin/pkg/logger"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// ENTITY_KEY_TEMPLATE defines the format for Redis keys
// It prefixes all keys with "entity:" to create a namespace
const ENTITY_KEY_TEMPLATE = "entity:%s"

// Casher handles caching operations using Redis as the backend
type Casher struct {
	client *redis.Client  // Redis client for storage operations
	logger *logger.Logger // Logger for error tracking and debugging
}

// Init creates a new Casher instance with the provided Redis client and logger
func Init(client *redis.Client, logger *logger.Logger) *Casher {
	return &Casher{
		client: client,
		logger: logger,
	}
}

func (c *Casher) Close() error {
	return c.client.Close()
}

func (c *Casher) IsHealthy() bool {
	return c.client.Ping(context.Background()).Err() == nil
}

// AddToCash stores a payload in Redis under the namespaced key. The payload
// is serialized to JSON and stored without expiration, so it lives until an
// explicit eviction.
func (c *Casher) AddToCash(ctx context.Context, key string, payload any) error {
	data, err := json.Marshal(payload)
	if err != nil {
		c.logger.Error("error encode payload for cashing",
			zap.String("key", key),
			zap.Error(err))
		return err
	}

	res := c.client.Set(ctx, fmt.Sprintf(ENTITY_KEY_TEMPLATE, key), data, 0)

	if err := res.Err(); err != nil {
		c.logger.Error("failed to cash payload with",
			zap.String("key", key),
			zap.Error(err),
		)
		return err
	}

	return nil
}

// RemoveFromCash evicts the entry stored under key.
func (c *Casher) RemoveFromCash(ctx context.Context, key string) error {
	res := c.client.Del(ctx, fmt.Sprintf(ENTITY_KEY_TEMPLATE, key))

	if err := res.Err(); err != nil {
		c.logger.Error("error delete from redis",
			zap.String("key", key),
			zap.Error(err))
		return err
	}

	return nil
}

// GetCashFor retrieves the cached JSON snapshot for the specified key.
// A missing key is reported as redis.Nil.
func (c *Casher) GetCashFor(ctx context.Context, key string) ([]byte, error) {
	res := c.client.Get(ctx, fmt.Sprintf(ENTITY_KEY_TEMPLATE, key))
	if err := res.Err(); err != nil {
		if errors.Is(err, redis.Nil) {
			c.logger.Debug("cash miss", zap.String("key", key))
			return nil, err
		}

		c.logger.Error("error get cash",
			zap.String("key", key),
			zap.Error(err),
		)
		return nil, err
	}

	data, err := res.Bytes()
	if err != nil {
		c.logger.Error("error get cashed bytes",
			zap.String("key", key),
			zap.Error(err),
		)
		return nil, err
	}

	return data, nil
}
