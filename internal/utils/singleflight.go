package utils

import (
	dailyfeed "dailyfeed/errors"
	"context"
	"time"

	"github.com/pkg/errors"
	"golang.org/x/sync/singleflight"
)

// SfDoWithTimeout 合并同一个 key 的并发读，超过 timeout 返回 ErrTimeout
//
// interval 后 forget key，避免一次失败的结果被后续请求一直共享
func SfDoWithTimeout(ctx context.Context, sfGrp *singleflight.Group, key string, timeout, interval time.Duration, fn func() (any, error)) (any, error) {
	ch := sfGrp.DoChan(key, fn)

	time.AfterFunc(interval, func() {
		sfGrp.Forget(key)
	})

	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()
	select {
	case res := <-ch:
		return res.Val, errors.Wrap(res.Err, "utils:SfDoWithTimeout: fn")
	case <-ctx.Done():
		return nil, errors.Wrap(dailyfeed.ErrTimeout, "utils:SfDoWithTimeout: fn")
	}
}
