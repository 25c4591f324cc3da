package auth

import (
	"context"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
)

const tokenCachePrefix = "auth:token:"

// TokenCache maps opaque tokens to user ids so that token resolution does not
// hit Postgres on every request. A miss is never an error: callers fall back
// to the token repository.
type TokenCache interface {
	Get(ctx context.Context, token string) (int64, bool)
	Set(ctx context.Context, token string, userID int64)
}

type redisTokenCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedisTokenCache builds a Redis-backed token cache.
func NewRedisTokenCache(client *redis.Client, ttl time.Duration) TokenCache {
	if ttl <= 0 {
		ttl = time.Hour
	}
	return &redisTokenCache{client: client, ttl: ttl}
}

func (c *redisTokenCache) Get(ctx context.Context, token string) (int64, bool) {
	val, err := c.client.Get(ctx, tokenCachePrefix+token).Result()
	if err != nil {
		return 0, false
	}
	userID, err := strconv.ParseInt(val, 10, 64)
	if err != nil {
		return 0, false
	}
	return userID, true
}

func (c *redisTokenCache) Set(ctx context.Context, token string, userID int64) {
	_ = c.client.Set(ctx, tokenCachePrefix+token, strconv.FormatInt(userID, 10), c.ttl).Err()
}
