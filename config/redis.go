package config

import (
	"context"
	"log"
	"os"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisClient is a global Redis client instance, nil when REDIS_ADDR is unset
// or the server did not answer a ping.
var RedisClient *redis.Client

func InitRedis() {
	addr := os.Getenv("REDIS_ADDR")
	if addr == "" {
		RedisClient = nil
		log.Println("Redis not configured, using in-process sync lock.")
		return
	}
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: os.Getenv("REDIS_PASS"),
		DB:       0,
	})
	ctx, cancel := context.WithTimeout(RedisCtx(), 2*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		log.Printf("Redis configured but not reachable (%v), using in-process sync lock.", err)
		_ = client.Close()
		RedisClient = nil
		return
	}
	log.Println("Redis connection successful.")
	RedisClient = client
}

func RedisCtx() context.Context {
	return context.Background()
}
