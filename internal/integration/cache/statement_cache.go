// Package cache provides the redis backed statement cache.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/ventureboard/backend/internal/application/adapter"
	"github.com/ventureboard/backend/internal/domain/finance"
)

const keyPrefix = "ventureboard:consolidation:"

// redisStatementCache implements the adapter.StatementCache interface.
type redisStatementCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedisStatementCache creates a statement cache on the given client.
func NewRedisStatementCache(client *redis.Client, ttl time.Duration) adapter.StatementCache {
	return &redisStatementCache{
		client: client,
		ttl:    ttl,
	}
}

func consolidationKey(ownerID uuid.UUID) string {
	return keyPrefix + ownerID.String()
}

// GetConsolidation returns the cached consolidation of the owner, or nil on a miss.
func (c *redisStatementCache) GetConsolidation(ctx context.Context, ownerID uuid.UUID) (*finance.ConsolidationResult, error) {
	payload, err := c.client.Get(ctx, consolidationKey(ownerID)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to read cached consolidation: %w", err)
	}

	var result finance.ConsolidationResult
	if err := json.Unmarshal(payload, &result); err != nil {
		// A payload we cannot decode is treated as a miss and dropped.
		_ = c.client.Del(ctx, consolidationKey(ownerID)).Err()
		return nil, nil
	}
	return &result, nil
}

// SetConsolidation stores the consolidation of the owner for the configured TTL.
func (c *redisStatementCache) SetConsolidation(ctx context.Context, ownerID uuid.UUID, result *finance.ConsolidationResult) error {
	payload, err := json.Marshal(result)
	if err != nil {
		return fmt.Errorf("failed to encode consolidation: %w", err)
	}
	if err := c.client.Set(ctx, consolidationKey(ownerID), payload, c.ttl).Err(); err != nil {
		return fmt.Errorf("failed to cache consolidation: %w", err)
	}
	return nil
}

// InvalidateOwner drops the cached consolidation of the owner.
func (c *redisStatementCache) InvalidateOwner(ctx context.Context, ownerID uuid.UUID) error {
	if err := c.client.Del(ctx, consolidationKey(ownerID)).Err(); err != nil {
		return fmt.Errorf("failed to invalidate consolidation: %w", err)
	}
	return nil
}

// noopStatementCache is used when the statement cache feature is off.
type noopStatementCache struct{}

// NewNoopStatementCache creates a cache that never hits.
func NewNoopStatementCache() adapter.StatementCache {
	return noopStatementCache{}
}

func (noopStatementCache) GetConsolidation(context.Context, uuid.UUID) (*finance.ConsolidationResult, error) {
	return nil, nil
}

func (noopStatementCache) SetConsolidation(context.Context, uuid.UUID, *finance.ConsolidationResult) error {
	return nil
}

func (noopStatementCache) InvalidateOwner(context.Context, uuid.UUID) error {
	return nil
}
