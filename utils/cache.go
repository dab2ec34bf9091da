package utils

import (
	"context"
	"fmt"
	"time"

	"bookiteasy/config"

	"github.com/go-redis/redis/v8"
)

// RateLimitClient backs the Redis rate limiter.
var RateLimitClient *redis.Client

// InitRedis initializes the Redis client used for rate limiting and pings it.
func InitRedis() error {
	client := redis.NewClient(&redis.Options{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisRateLimitDB,
	})
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return fmt.Errorf("failed to connect to Redis (rate limit): %w", err)
	}
	RateLimitClient = client
	return nil
}

// GetRateLimitClient returns the rate limit client, or nil if Redis is not initialized.
func GetRateLimitClient() *redis.Client {
	return RateLimitClient
}
