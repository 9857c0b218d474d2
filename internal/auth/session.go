package auth

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const sessionKeyFmt = "session:%d"

// SessionDuration is the single source for the session lifetime: it bounds
// both the JWT expiry and the Redis session TTL so the two cannot drift.
const SessionDuration = 30 * time.Minute

func SetSession(rdb *redis.Client, userId uint, token string, duration time.Duration) error {
	ctx := context.Background()
	key := fmt.Sprintf(sessionKeyFmt, userId)
	return rdb.Set(ctx, key, token, duration).Err()
}

func GetSession(rdb *redis.Client, userId uint) (string, error) {
	ctx := context.Background()
	key := fmt.Sprintf(sessionKeyFmt, userId)
	return rdb.Get(ctx, key).Result()
}

func DeleteSession(rdb *redis.Client, userId uint) error {
	ctx := context.Background()
	key := fmt.Sprintf(sessionKeyFmt, userId)
	return rdb.Del(ctx, key).Err()
}
