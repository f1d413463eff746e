package rdx

import (
	"context"
	"os"

	"github.com/redis/go-redis/v9"
)

var Conn *redis.Client

// Connect opens the Redis connection used by the Redis store backend and
// the event publisher.
func Connect(ctx context.Context) error {
	addr := os.Getenv("REDIS_ADDR")
	if addr == "" {
		addr = "localhost:6379"
	}

	Conn = redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: os.Getenv("REDIS_PASSWORD"),
	})
	return Conn.Ping(ctx).Err()
}
