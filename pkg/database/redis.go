package database

import (
	"context"
	"log"

	"github.com/go-redis/redis/v8"
)

// NewRedisClient connects to Redis. An empty address, or a failed ping, returns nil so callers can
// run single-instance without Redis.
func NewRedisClient(ctx context.Context, addr, password string, db int) *redis.Client {
	if addr == "" {
		log.Println("REDIS_ADDR not set, continuing without Redis")
		return nil
	}

	rdb := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})

	if err := rdb.Ping(ctx).Err(); err != nil {
		log.Printf("Redis connection failed, continuing without Redis: %v", err)
		_ = rdb.Close()
		return nil
	}

	log.Println("Redis connection established")
	return rdb
}
