package cache

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/saransh1220/linkhub/internal/modules/profile/domain"
)

const keyPrefix = "profile:"

// RedisProfileCache caches public profiles by username. Cache failures are
// logged and treated as misses.
type RedisProfileCache struct {
	client *redis.Client
	ttl    time.Duration
	logger *slog.Logger
}

func NewRedisProfileCache(client *redis.Client, ttl time.Duration, logger *slog.Logger) *RedisProfileCache {
	if ttl <= 0 {
		ttl = 10 * time.Minute
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &RedisProfileCache{client: client, ttl: ttl, logger: logger}
}

func Key(username string) string {
	return keyPrefix + username
}

func (c *RedisProfileCache) Get(ctx context.Context, username string) (*domain.Profile, bool) {
	val, err := c.client.Get(ctx, Key(username)).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			c.logger.Warn("profile cache read failed", "username", username, "error", err)
		}
		return nil, false
	}

	var profile domain.Profile
	if err := json.Unmarshal(val, &profile); err != nil {
		c.logger.Warn("profile cache entry corrupt", "username", username, "error", err)
		c.client.Del(ctx, Key(username))
		return nil, false
	}
	return &profile, true
}

func (c *RedisProfileCache) Set(ctx context.Context, profile *domain.Profile) {
	body, err := json.Marshal(profile)
	if err != nil {
		return
	}
	if err := c.client.Set(ctx, Key(profile.Username), body, c.ttl).Err(); err != nil {
		c.logger.Warn("profile cache write failed", "username", profile.Username, "error", err)
	}
}

func (c *RedisProfileCache) Invalidate(ctx context.Context, usernames ...string) {
	keys := make([]string, 0, len(usernames))
	for _, u := range usernames {
		if u != "" {
			keys = append(keys, Key(u))
		}
	}
	if len(keys) == 0 {
		return
	}
	if err := c.client.Del(ctx, keys...).Err(); err != nil {
		c.logger.Warn("profile cache invalidation failed", "keys", keys, "error", err)
	}
}

// Noop is used when redis is disabled.
type Noop struct{}

func (Noop) Get(context.Context, string) (*domain.Profile, bool) { return nil, false }
func (Noop) Set(context.Context, *domain.Profile)                {}
func (Noop) Invalidate(context.Context, ...string)               {}
