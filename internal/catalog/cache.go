package catalog

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// Cache is a small read-through cache for display-only catalog data
// (category summaries, search results). Staleness within the TTL is
// acceptable; inventory state is never cached.
type Cache interface {
	Get(ctx context.Context, key string) (string, bool, error)
	Set(ctx context.Context, key string, value string, ttl time.Duration) error
	Key(operation, arg string) string
}

type redisCache struct {
	client *redis.Client
	prefix string
}

// NewRedisCache connects a catalog cache to the given redis address.
func NewRedisCache(addr, passwd string, db int) Cache {
	return &redisCache{
		client: redis.NewClient(&redis.Options{Addr: addr, Password: passwd, DB: db}),
		prefix: "catalog",
	}
}

func (r *redisCache) Get(ctx context.Context, key string) (string, bool, error) {
	val, err := r.client.Get(ctx, key).Result()
	if err == redis.Nil {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return val, true, nil
}

func (r *redisCache) Set(ctx context.Context, key string, value string, ttl time.Duration) error {
	return r.client.Set(ctx, key, value, ttl).Err()
}

func (r *redisCache) Key(operation, arg string) string {
	return fmt.Sprintf("%s:%s:%s", r.prefix, operation, arg)
}
