package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/jdramirez/farmapos-api/internal/domain/entity"
)

const productKeyPrefix = "farmapos:product:"

// RedisCache guarda productos serializados en JSON con TTL fijo.
type RedisCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedis construye el caché sobre un cliente ya conectado.
func NewRedis(client *redis.Client, ttl time.Duration) *RedisCache {
	return &RedisCache{client: client, ttl: ttl}
}

func productKey(productID string) string {
	return productKeyPrefix + productID
}

// Get retorna (nil, nil) si la clave no existe o expiró.
func (c *RedisCache) Get(ctx context.Context, productID string) (*entity.Product, error) {
	val, err := c.client.Get(ctx, productKey(productID)).Result()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("cache get: %w", err)
	}
	var product entity.Product
	if err := json.Unmarshal([]byte(val), &product); err != nil {
		return nil, fmt.Errorf("cache unmarshal: %w", err)
	}
	return &product, nil
}

func (c *RedisCache) Set(ctx context.Context, product *entity.Product) error {
	b, err := json.Marshal(product)
	if err != nil {
		return fmt.Errorf("cache marshal: %w", err)
	}
	if err := c.client.Set(ctx, productKey(product.ID), b, c.ttl).Err(); err != nil {
		return fmt.Errorf("cache set: %w", err)
	}
	return nil
}

func (c *RedisCache) Delete(ctx context.Context, productIDs ...string) error {
	if len(productIDs) == 0 {
		return nil
	}
	keys := make([]string, 0, len(productIDs))
	for _, id := range productIDs {
		keys = append(keys, productKey(id))
	}
	if err := c.client.Del(ctx, keys...).Err(); err != nil {
		return fmt.Errorf("cache delete: %w", err)
	}
	return nil
}

var _ ProductCache = (*RedisCache)(nil)
