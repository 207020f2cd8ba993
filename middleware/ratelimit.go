package middleware

import (
	controller "dailyfeed/controller/Common"

	"github.com/gin-gonic/gin"
	"github.com/juju/ratelimit"
)

// 限流中间件，如果没有可用令牌，直接拒绝请求
//
// rate：令牌生成速率，例如，rate = 0.1，代表每秒生成 0.1 * capacity 个令牌
//
// capacity：令牌桶大小
func RateLimit(rate float64, capacity int64) gin.HandlerFunc {
	bucket := ratelimit.NewBucketWithRate(rate*float64(capacity), capacity)
	return func(ctx *gin.Context) {
		if bucket.TakeAvailable(1) != 1 {
			controller.ResponseError(ctx, controller.CodeServerBusy)
			ctx.Abort()
			return
		}
		ctx.Next()
	}
}
