package redislock

import (
	"context"
	"errors"
	"time"

	goredis "github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/toomate/cashier/pkg/logctx"
	"github.com/toomate/cashier/pkg/tool"
)

const (
	keyPrefix  = "cashier:lock:"
	defaultTTL = 30 * time.Second
)

// ErrLocked is returned when another request already holds the key.
var ErrLocked = errors.New("request already in progress")

// Locker serializes work on a key across API instances. The returned release
// func is always non-nil when err is nil and is safe to call more than once.
type Locker interface {
	Acquire(ctx context.Context, key string) (release func(), err error)
}

// only the holder's token may delete the key
var releaseScript = goredis.NewScript(`
if redis.call("GET", KEYS[1]) == ARGV[1] then
	return redis.call("DEL", KEYS[1])
end
return 0
`)

// RedisLocker is a SETNX lock with a TTL. Redis being unreachable does not
// block requests: Acquire logs and proceeds without a lock.
type RedisLocker struct {
	rdb goredis.UniversalClient
	ttl time.Duration
	log *zap.SugaredLogger
}

func NewRedisLocker(rdb goredis.UniversalClient, ttl time.Duration, log *zap.SugaredLogger) *RedisLocker {
	if ttl <= 0 {
		ttl = defaultTTL
	}
	return &RedisLocker{rdb: rdb, ttl: ttl, log: log}
}

func (l *RedisLocker) Acquire(ctx context.Context, key string) (func(), error) {
	lockKey := keyPrefix + key
	token := tool.GenerateTraceID()
	lg := logctx.FromCtx(ctx, l.log)

	ok, err := l.rdb.SetNX(ctx, lockKey, token, l.ttl).Result()
	if err != nil {
		lg.Warnw("redis lock unavailable, continuing without lock", "key", lockKey, "error", err)
		return func() {}, nil
	}
	if !ok {
		return nil, ErrLocked
	}

	var released bool
	return func() {
		if released {
			return
		}
		released = true
		// the request ctx may already be canceled
		rctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), 2*time.Second)
		defer cancel()
		if err := releaseScript.Run(rctx, l.rdb, []string{lockKey}, token).Err(); err != nil {
			lg.Warnw("redis lock release failed", "key", lockKey, "error", err)
		}
	}, nil
}

// NopLocker never contends. Used when no Redis address is configured.
type NopLocker struct{}

func (NopLocker) Acquire(context.Context, string) (func(), error) { return func() {}, nil }

// Key builds the lock key for one subscription change of one user.
func Key(subscriptionID, userID string) string {
	return "subscription:" + subscriptionID + ":user:" + userID
}
