package cache

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/bytedance/sonic"
	"github.com/company-sys/backend/internal/config"
	"github.com/company-sys/backend/internal/modules/policy"
	"github.com/company-sys/backend/internal/modules/repo"
	"github.com/google/uuid"
	"github.com/redis/go-redis/extra/redisotel/v9"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

func New(cfg *config.Config) *redis.Client {
	return redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
		PoolSize: cfg.Redis.PoolSize,
	})
}

func RegisterOpenTelemetryPlugin(rdb *redis.Client) error {
	if err := redisotel.InstrumentTracing(rdb); err != nil {
		return fmt.Errorf("instrument redis tracing: %w", err)
	}
	return nil
}

// PrincipalCache resolves a user id to a principal, keeping the result in
// redis for ttl. A role change becomes visible once the entry expires or
// Forget is called.
type PrincipalCache struct {
	rdb   *redis.Client
	users repo.UserRepo
	ttl   time.Duration
	log   *zap.Logger
}

func NewPrincipalCache(rdb *redis.Client, users repo.UserRepo, ttl time.Duration, log *zap.Logger) *PrincipalCache {
	return &PrincipalCache{rdb: rdb, users: users, ttl: ttl, log: log}
}

func principalKey(id uuid.UUID) string { return "principal:" + id.String() }

func (c *PrincipalCache) Load(ctx context.Context, id uuid.UUID) (*policy.Principal, error) {
	key := principalKey(id)
	if raw, err := c.rdb.Get(ctx, key).Bytes(); err == nil {
		var p policy.Principal
		if err := sonic.Unmarshal(raw, &p); err == nil {
			return &p, nil
		}
	} else if !errors.Is(err, redis.Nil) {
		c.log.Warn("principal cache read failed", zap.Error(err))
	}

	u, err := c.users.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	p := &policy.Principal{UserID: u.ID, Username: u.Username, Role: u.Role}

	if c.ttl > 0 {
		if raw, err := sonic.Marshal(p); err == nil {
			if err := c.rdb.Set(ctx, key, raw, c.ttl).Err(); err != nil {
				c.log.Warn("principal cache write failed", zap.Error(err))
			}
		}
	}
	return p, nil
}

func (c *PrincipalCache) Forget(ctx context.Context, id uuid.UUID) error {
	return c.rdb.Del(ctx, principalKey(id)).Err()
}
