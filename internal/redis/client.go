package redisdb

import (
	"github.com/redis/go-redis/v9"

	"github.com/RidwanHaque/Agentic-Memory-AI-Agent/internal/config"
)

func NewClient(cfg *config.Config) *redis.Client {
	return redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
}
