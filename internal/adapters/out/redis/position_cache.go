// Package redis caches the latest rider position per order. The cache is a
// best-effort mirror of the orders table: writes happen after a position
// commits, reads fall back to the row on a miss or an outage.
package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"brewride/internal/core/domain/model/kernel"

	"github.com/go-redis/redis/v8"
)

// positionTTL bounds staleness: a rider that stops reporting drops out of
// the cache and tracking falls back to the persisted row.
const positionTTL = 5 * time.Minute

type positionPayload struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// PositionCache implements the position cache port on a Redis client.
type PositionCache struct {
	client *redis.Client
}

// NewPositionCache connects to Redis and verifies the connection.
func NewPositionCache(addr string) (*PositionCache, error) {
	client := redis.NewClient(&redis.Options{
		Addr: addr,
	})

	if _, err := client.Ping(context.Background()).Result(); err != nil {
		return nil, err
	}

	return &PositionCache{client: client}, nil
}

// Close releases the Redis connection.
func (c *PositionCache) Close() error {
	return c.client.Close()
}

// SetPosition stores the rider's latest position for an order.
func (c *PositionCache) SetPosition(ctx context.Context, orderID kernel.UUID, position kernel.GeoPoint) error {
	data, err := json.Marshal(positionPayload{
		Lat: position.Lat(),
		Lng: position.Lng(),
	})
	if err != nil {
		return err
	}

	return c.client.Set(ctx, positionKey(orderID), data, positionTTL).Err()
}

// GetPosition returns the cached position for an order, or nil on a miss.
func (c *PositionCache) GetPosition(ctx context.Context, orderID kernel.UUID) (*kernel.GeoPoint, error) {
	data, err := c.client.Get(ctx, positionKey(orderID)).Bytes()
	if err != nil {
		if err == redis.Nil {
			return nil, nil // Cache miss
		}
		return nil, err
	}

	var payload positionPayload
	if err := json.Unmarshal(data, &payload); err != nil {
		return nil, err
	}

	point, err := kernel.NewGeoPoint(payload.Lat, payload.Lng)
	if err != nil {
		return nil, err
	}

	return &point, nil
}

func positionKey(orderID kernel.UUID) string {
	return fmt.Sprintf("rider_position:%s", orderID.String())
}
