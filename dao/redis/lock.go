package redis

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/redis/go-redis/v9"
)

type lockClient interface {
	SetNX(ctx context.Context, key string, value interface{}, expiration time.Duration) *redis.BoolCmd
	Eval(ctx context.Context, script string, keys []string, args ...interface{}) *redis.Cmd
}

// Locker 基于 SET NX PX 的分布式锁，多个实例之间按资源串行
type Locker struct {
	client        lockClient
	retryInterval time.Duration
}

func NewLocker(client lockClient) *Locker {
	return &Locker{client: client, retryInterval: 20 * time.Millisecond}
}

// Lock 阻塞直到拿到锁或 ctx 结束，ttl 过后锁自动失效，防止持有者崩溃后死锁
func (l *Locker) Lock(ctx context.Context, name string, ttl time.Duration) (func(), error) {
	key := KeyLockStringPF + name
	token := uuid.NewString()

	for {
		ok, err := l.client.SetNX(ctx, key, token, ttl).Result()
		if err != nil {
			return nil, errors.Wrap(err, "redis:Lock: SetNX")
		}
		if ok {
			return func() { l.unlock(key, token) }, nil
		}

		select {
		case <-time.After(l.retryInterval):
		case <-ctx.Done():
			return nil, errors.Wrapf(ctx.Err(), "redis:Lock: wait %s", key)
		}
	}
}

func (l *Locker) unlock(key, token string) {
	// 使用独立的 ctx，请求的 ctx 可能已经结束
	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	l.client.Eval(ctx, LuaUnlock, []string{key}, token)
}
