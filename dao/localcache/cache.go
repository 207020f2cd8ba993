package localcache

import (
	"time"

	"github.com/bluele/gcache"
)

// New 创建一个 LRU 缓存，expiration 为 0 时永不过期
func New(size int, expiration time.Duration) gcache.Cache {
	builder := gcache.New(size).LRU()
	if expiration > 0 {
		builder = builder.Expiration(expiration)
	}
	return builder.Build()
}
