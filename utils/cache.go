// File: utils/cache.go
package utils

import (
	"context"
	"log"
	"time"

	"dinevoice/config"

	"github.com/go-redis/redis/v8"
)

var (
	// SessionClient holds conversation snapshots.
	SessionClient *redis.Client
	// CacheClient holds provider lookups such as forecasts.
	CacheClient *redis.Client
)

func newRedisClient(db int, label string) *redis.Client {
	client := redis.NewClient(&redis.Options{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       db,
	})
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if _, err := client.Ping(ctx).Result(); err != nil {
		log.Fatalf("Failed to connect to Redis (%s): %v", label, err)
	}
	return client
}

// InitRedis initializes every Redis client the server uses.
func InitRedis() {
	GetSessionClient()
	GetCacheClient()
}

// GetSessionClient returns the Redis client for conversation snapshots.
func GetSessionClient() *redis.Client {
	if SessionClient == nil {
		SessionClient = newRedisClient(config.AppConfig.RedisSessionDB, "Session")
	}
	return SessionClient
}

// GetCacheClient returns the generic cache client.
func GetCacheClient() *redis.Client {
	if CacheClient == nil {
		CacheClient = newRedisClient(config.AppConfig.RedisCacheDB, "Cache")
	}
	return CacheClient
}

// RedisClients lists initialized clients for the health monitor.
func RedisClients() []*redis.Client {
	var out []*redis.Client
	for _, c := range []*redis.Client{SessionClient, CacheClient} {
		if c != nil {
			out = append(out, c)
		}
	}
	return out
}
