package weather

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"dinevoice/models"

	"github.com/go-redis/redis/v8"
)

const forecastPrefix = "weather:forecast:"

// ForecastCache stores provider results keyed by location and fetch day.
type ForecastCache interface {
	Get(ctx context.Context, key string) ([]models.ForecastRecord, bool, error)
	Set(ctx context.Context, key string, records []models.ForecastRecord) error
}

type RedisForecastCache struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRedisForecastCache(client *redis.Client, ttl time.Duration) *RedisForecastCache {
	return &RedisForecastCache{client: client, ttl: ttl}
}

func (c *RedisForecastCache) Get(ctx context.Context, key string) ([]models.ForecastRecord, bool, error) {
	data, err := c.client.Get(ctx, forecastPrefix+key).Result()
	if err == redis.Nil {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	var records []models.ForecastRecord
	if err := json.Unmarshal([]byte(data), &records); err != nil {
		return nil, false, err
	}
	return records, true, nil
}

func (c *RedisForecastCache) Set(ctx context.Context, key string, records []models.ForecastRecord) error {
	b, err := json.Marshal(records)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, forecastPrefix+key, b, c.ttl).Err()
}

func cacheKey(lat, lon float64, day string) string {
	return fmt.Sprintf("%.3f:%.3f:%s", lat, lon, day)
}
