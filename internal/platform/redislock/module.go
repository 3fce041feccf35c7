package redislock

import (
	"context"

	goredis "github.com/redis/go-redis/v9"
	"go.uber.org/fx"
	"go.uber.org/zap"

	cfgpkg "github.com/toomate/cashier/pkg/config"
)

func NewLocker(lc fx.Lifecycle, cfg *cfgpkg.Config, l *zap.SugaredLogger) Locker {
	if cfg.Redis.Addr == "" {
		l.Infow("redis address empty, request locking disabled")
		return NopLocker{}
	}
	rdb := goredis.NewClient(&goredis.Options{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			if err := rdb.Ping(ctx).Err(); err != nil {
				l.Warnw("redis ping failed", "addr", cfg.Redis.Addr, "error", err)
			}
			return nil
		},
		OnStop: func(ctx context.Context) error {
			l.Infow("closing redis client")
			return rdb.Close()
		},
	})
	return NewRedisLocker(rdb, cfg.Redis.LockTTL, l)
}

var Module = fx.Options(
	fx.Provide(NewLocker),
)
