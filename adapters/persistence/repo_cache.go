package persistence

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/khoahotran/devconnector-profile/internal/application/service"
	"github.com/khoahotran/devconnector-profile/pkg/logger"
)

const repoCacheKeyPrefix = "github:repos:"

// RedisRepoCache is a read-through cache in front of a RepoLookup. Only successful
// lookups are stored. When Redis is unavailable every call goes straight to the
// wrapped lookup.
type RedisRepoCache struct {
	rdb    *redis.Client
	next   service.RepoLookup
	ttl    time.Duration
	logger logger.Logger
}

func NewRedisRepoCache(rdb *redis.Client, next service.RepoLookup, ttl time.Duration, log logger.Logger) *RedisRepoCache {
	return &RedisRepoCache{rdb: rdb, next: next, ttl: ttl, logger: log}
}

// GitHub handles are case-insensitive.
func repoCacheKey(handle string) string {
	return repoCacheKeyPrefix + strings.ToLower(handle)
}

func (c *RedisRepoCache) FetchPublicRepos(ctx context.Context, handle string) ([]json.RawMessage, error) {
	key := repoCacheKey(handle)

	cached, err := c.rdb.Get(ctx, key).Bytes()
	switch {
	case err == nil:
		var repos []json.RawMessage
		if err := json.Unmarshal(cached, &repos); err == nil {
			return repos, nil
		}
		c.logger.Warn("Discarding corrupt repo cache entry", zap.String("key", key))
	case !errors.Is(err, redis.Nil):
		c.logger.Warn("Repo cache read failed", zap.String("key", key), zap.Error(err))
	}

	repos, err := c.next.FetchPublicRepos(ctx, handle)
	if err != nil {
		return nil, err
	}

	data, err := json.Marshal(repos)
	if err != nil {
		return repos, nil
	}
	if err := c.rdb.Set(ctx, key, data, c.ttl).Err(); err != nil {
		c.logger.Warn("Repo cache write failed", zap.String("key", key), zap.Error(err))
	}
	return repos, nil
}

func (c *RedisRepoCache) EvictRepos(ctx context.Context, handle string) error {
	return c.rdb.Del(ctx, repoCacheKey(handle)).Err()
}
