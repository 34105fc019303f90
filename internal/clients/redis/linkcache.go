// Package redis caches short-link code lookups so the /s/:code redirect
// does not hit postgres on every hop. The cache is best effort: callers
// fall back to the database on any miss or error.
package redis

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/google/uuid"
	goredis "github.com/redis/go-redis/v9"

	"github.com/foodgram/foodgram-backend/internal/pkg/logger"
)

type LinkCache interface {
	GetRecipeID(ctx context.Context, code string) (uuid.UUID, bool)
	SetRecipeID(ctx context.Context, code string, recipeID uuid.UUID)
	Close() error
}

type linkCache struct {
	log *logger.Logger
	rdb *goredis.Client
	ttl time.Duration
}

func NewLinkCache(log *logger.Logger) (LinkCache, error) {
	if log == nil {
		return nil, fmt.Errorf("logger required")
	}

	addr := strings.TrimSpace(os.Getenv("REDIS_ADDR"))
	if addr == "" {
		return nil, fmt.Errorf("missing REDIS_ADDR")
	}

	rdb := goredis.NewClient(&goredis.Options{
		Addr:        addr,
		DialTimeout: 5 * time.Second,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("redis ping: %w", err)
	}

	return &linkCache{
		log: log.With("client", "RedisLinkCache"),
		rdb: rdb,
		ttl: 24 * time.Hour,
	}, nil
}

func (lc *linkCache) key(code string) string {
	return "shortlink:" + code
}

func (lc *linkCache) GetRecipeID(ctx context.Context, code string) (uuid.UUID, bool) {
	raw, err := lc.rdb.Get(ctx, lc.key(code)).Result()
	if err != nil {
		if err != goredis.Nil {
			lc.log.Warn("shortlink cache get failed", "code", code, "error", err)
		}
		return uuid.Nil, false
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		lc.log.Warn("shortlink cache holds bad value", "code", code, "value", raw)
		return uuid.Nil, false
	}
	return id, true
}

func (lc *linkCache) SetRecipeID(ctx context.Context, code string, recipeID uuid.UUID) {
	if err := lc.rdb.Set(ctx, lc.key(code), recipeID.String(), lc.ttl).Err(); err != nil {
		lc.log.Warn("shortlink cache set failed", "code", code, "error", err)
	}
}

func (lc *linkCache) Close() error {
	return lc.rdb.Close()
}
