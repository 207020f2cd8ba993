package memory

import (
	"context"
	"sync"
	"time"
)

// KeyedLocker 是进程内的按 key 互斥锁，单实例部署或测试时替代 redis 锁
type KeyedLocker struct {
	mu    sync.Mutex
	locks map[string]chan struct{}
}

func NewKeyedLocker() *KeyedLocker {
	return &KeyedLocker{locks: make(map[string]chan struct{})}
}

// Lock 阻塞直到拿到锁或 ctx 结束，ttl 在进程内没有意义，忽略
func (l *KeyedLocker) Lock(ctx context.Context, key string, _ time.Duration) (func(), error) {
	for {
		l.mu.Lock()
		ch, held := l.locks[key]
		if !held {
			ch = make(chan struct{})
			l.locks[key] = ch
			l.mu.Unlock()
			return func() { l.release(key, ch) }, nil
		}
		l.mu.Unlock()

		select {
		case <-ch:
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
}

func (l *KeyedLocker) release(key string, ch chan struct{}) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.locks[key] == ch {
		delete(l.locks, key)
		close(ch)
	}
}
