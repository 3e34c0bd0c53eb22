package cache

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/aditya/go-ridepool/internal/models"
)

const activeTripsKey = "marketplace:active_trips"

// MarketplaceCache holds the rendered public trip listing for a short TTL so
// the busiest read path does not hit Postgres on every request. Any trip
// mutation invalidates it.
type MarketplaceCache interface {
	GetActiveTrips(ctx context.Context) ([]models.TripResponse, error)
	SetActiveTrips(ctx context.Context, trips []models.TripResponse) error
	Invalidate(ctx context.Context) error
}

type marketplaceCache struct {
	redis *redis.Client
	ttl   time.Duration
}

func NewMarketplaceCache(redisClient *redis.Client, ttl time.Duration) MarketplaceCache {
	return &marketplaceCache{redis: redisClient, ttl: ttl}
}

// GetActiveTrips returns (nil, nil) on a cache miss.
func (c *marketplaceCache) GetActiveTrips(ctx context.Context) ([]models.TripResponse, error) {
	data, err := c.redis.Get(ctx, activeTripsKey).Bytes()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	var trips []models.TripResponse
	if err := json.Unmarshal(data, &trips); err != nil {
		return nil, err
	}
	return trips, nil
}

func (c *marketplaceCache) SetActiveTrips(ctx context.Context, trips []models.TripResponse) error {
	data, err := json.Marshal(trips)
	if err != nil {
		return err
	}
	return c.redis.Set(ctx, activeTripsKey, data, c.ttl).Err()
}

func (c *marketplaceCache) Invalidate(ctx context.Context) error {
	return c.redis.Del(ctx, activeTripsKey).Err()
}
