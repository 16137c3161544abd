package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"

	"stockdash/internal/model"
)

// RedisCache shares latest quotes across processes via Redis. Values are
// JSON under quote:<SYMBOL> keys with a TTL, so stale prices age out on
// their own.
type RedisCache struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRedisCache(addr, password string, db int, ttl time.Duration) (*RedisCache, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})
	if err := client.Ping(context.Background()).Err(); err != nil {
		return nil, fmt.Errorf("connect to redis: %w", err)
	}
	if ttl <= 0 {
		ttl = 5 * time.Minute
	}
	return &RedisCache{client: client, ttl: ttl}, nil
}

func quoteKey(symbol string) string {
	return "quote:" + strings.ToUpper(symbol)
}

func (c *RedisCache) Put(ctx context.Context, quotes []model.BatchQuote) error {
	pipe := c.client.Pipeline()
	for _, q := range quotes {
		data, err := json.Marshal(q)
		if err != nil {
			return fmt.Errorf("marshal quote %s: %w", q.Symbol, err)
		}
		pipe.Set(ctx, quoteKey(q.Symbol), data, c.ttl)
	}
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("set quotes in redis: %w", err)
	}
	return nil
}

func (c *RedisCache) Get(ctx context.Context, symbol string) (model.BatchQuote, bool) {
	data, err := c.client.Get(ctx, quoteKey(symbol)).Bytes()
	if err != nil {
		return model.BatchQuote{}, false
	}
	var q model.BatchQuote
	if err := json.Unmarshal(data, &q); err != nil {
		return model.BatchQuote{}, false
	}
	return q, true
}

func (c *RedisCache) Close() error {
	return c.client.Close()
}
