// Package cache implementa el atajo de deduplicación de webhooks sobre Redis.
package cache

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/loudbaby/easyops-api/internal/application/webhook"
)

var _ webhook.DedupCache = (*RedisDedupCache)(nil)

const dedupKeyPrefix = "webhook:processed:"

// RedisDedupCache marca órdenes ya procesadas con SETNX + TTL. Es solo un
// atajo: si Redis se cae o la clave expira, el constraint único de
// webhook_events sigue garantizando exactamente-una-vez.
type RedisDedupCache struct {
	client *redis.Client
}

// NewRedisDedupCache construye el cache sobre un cliente Redis existente.
func NewRedisDedupCache(client *redis.Client) *RedisDedupCache {
	return &RedisDedupCache{client: client}
}

// IsProcessed consulta si la orden ya fue marcada.
func (c *RedisDedupCache) IsProcessed(ctx context.Context, eventID string) (bool, error) {
	n, err := c.client.Exists(ctx, dedupKeyPrefix+eventID).Result()
	if err != nil {
		return false, fmt.Errorf("redis exists: %w", err)
	}
	return n > 0, nil
}

// MarkProcessed marca la orden con SETNX. Devuelve true si esta llamada fue la
// que creó la marca (false = ya estaba marcada).
func (c *RedisDedupCache) MarkProcessed(ctx context.Context, eventID string, ttl time.Duration) (bool, error) {
	ok, err := c.client.SetNX(ctx, dedupKeyPrefix+eventID, "1", ttl).Result()
	if err != nil {
		return false, fmt.Errorf("redis setnx: %w", err)
	}
	return ok, nil
}
