package database

import (
	"context"
	"log"
	"time"

	"github.com/go-redis/redis/v8"

	"shuleni_backend/internals/configs"
)

// Redis holds pending M-PESA checkout sessions and other short-lived state.
var Redis *redis.Client

func ConnectRedis() {
	Redis = redis.NewClient(&redis.Options{
		Addr:     configs.GetEnv("REDIS_ADDR", "localhost:6379"),
		Password: configs.GetEnv("REDIS_PASSWORD", ""),
		DB:       0,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	if err := Redis.Ping(ctx).Err(); err != nil {
		// Not fatal: STK sessions degrade, everything else keeps working.
		log.Printf("⚠️ Redis unreachable: %v", err)
		return
	}
	log.Println("✅ Redis connected.")
}
