package cache

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/klasora/console-go/pkg/config"
)

// NewRedis returns a configured Redis client for the demo server's
// refresh-token store. The caller decides whether redis is in play at all
// (an empty address means the in-memory store is used instead).
func NewRedis(cfg config.DemoServerConfig) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, err
	}

	return client, nil
}
