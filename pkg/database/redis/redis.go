package redis

import (
	"context"
	"fmt"
	"time"

	"customerAgent/pkg/config"

	"github.com/redis/go-redis/v9"
)

// Options builds client options from config. The password is only sent
// with the "default" ACL user when one is configured.
func Options(cfg *config.Config) *redis.Options {
	opts := &redis.Options{
		Addr:         fmt.Sprintf("%s:%s", cfg.Redis.RedisHost, cfg.Redis.RedisPort),
		DB:           cfg.Redis.RedisDB,
		DialTimeout:  5 * time.Second,
		ReadTimeout:  3 * time.Second,
		WriteTimeout: 3 * time.Second,
		PoolSize:     10,
		MinIdleConns: 2,
	}

	if cfg.Redis.RedisPassword != "" {
		opts.Username = "default"
		opts.Password = cfg.Redis.RedisPassword
	}

	return opts
}

func NewRedisClient(cfg *config.Config) (*redis.Client, error) {
	client := redis.NewClient(Options(cfg))

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	return client, nil
}

// CloseRedisClient closes the Redis connection
func CloseRedisClient(client *redis.Client) error {
	if client != nil {
		return client.Close()
	}

	return nil
}
