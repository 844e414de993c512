package embedding

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"log"
	"sync/atomic"
	"time"

	"career-match/internal/domain/skill"

	"github.com/redis/go-redis/v9"
)

const vectorKeyPrefix = "embed:v1:"

// RedisCache memoizes embedding vectors across processes and restarts.
// When Redis is unreachable it bypasses itself and delegates straight to
// the underlying provider; a cache outage must never fail a match pass.
type RedisCache struct {
	client *redis.Client
	next   Provider
	ttl    time.Duration
	logger *log.Logger

	warnedUnavailable atomic.Bool
}

func NewRedisCache(addr, password string, ttl time.Duration, next Provider, logger *log.Logger) *RedisCache {
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}

	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       0,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		if logger != nil {
			logger.Printf("[EmbedCache] Redis unavailable, bypassing cache: %v", err)
		}
		_ = client.Close()
		return &RedisCache{client: nil, next: next, ttl: ttl, logger: logger}
	}

	return &RedisCache{client: client, next: next, ttl: ttl, logger: logger}
}

func (c *RedisCache) Close() error {
	if c == nil || c.client == nil {
		return nil
	}
	return c.client.Close()
}

func (c *RedisCache) isUnavailable() bool {
	return c == nil || c.client == nil
}

func (c *RedisCache) warnUnavailableOnce(err error) {
	if c == nil || c.logger == nil {
		return
	}
	if c.warnedUnavailable.CompareAndSwap(false, true) {
		c.logger.Printf("[EmbedCache] Redis unavailable, bypassing cache: %v", err)
	}
}

func vectorKey(text string) string {
	sum := sha256.Sum256([]byte(skill.Normalize(text)))
	return vectorKeyPrefix + hex.EncodeToString(sum[:])
}

func (c *RedisCache) Embed(ctx context.Context, texts []string) ([]skill.Vector, error) {
	if len(texts) == 0 {
		return nil, nil
	}
	if c.isUnavailable() {
		return c.next.Embed(ctx, texts)
	}

	keys := make([]string, len(texts))
	for i, t := range texts {
		keys[i] = vectorKey(t)
	}

	out := make([]skill.Vector, len(texts))
	missIdx := make([]int, 0, len(texts))

	vals, err := c.client.MGet(ctx, keys...).Result()
	if err != nil && !errors.Is(err, redis.Nil) {
		c.warnUnavailableOnce(err)
		return c.next.Embed(ctx, texts)
	}
	for i := range texts {
		var raw string
		if i < len(vals) {
			raw, _ = vals[i].(string)
		}
		if raw == "" {
			missIdx = append(missIdx, i)
			continue
		}
		var v skill.Vector
		if jsonErr := json.Unmarshal([]byte(raw), &v); jsonErr != nil || len(v) == 0 {
			missIdx = append(missIdx, i)
			continue
		}
		out[i] = v
	}

	if len(missIdx) == 0 {
		return out, nil
	}

	missTexts := make([]string, len(missIdx))
	for i, idx := range missIdx {
		missTexts[i] = texts[idx]
	}

	fresh, err := c.next.Embed(ctx, missTexts)
	if err != nil {
		return nil, err
	}
	if len(fresh) != len(missIdx) {
		return nil, ErrProviderUnavailable
	}

	pipe := c.client.Pipeline()
	for i, idx := range missIdx {
		out[idx] = fresh[i]
		if b, jsonErr := json.Marshal(fresh[i]); jsonErr == nil {
			pipe.Set(ctx, keys[idx], b, c.ttl)
		}
	}
	if _, err := pipe.Exec(ctx); err != nil {
		c.warnUnavailableOnce(err)
	}

	return out, nil
}
