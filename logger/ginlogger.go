package logger

import (
	"errors"
	"net"
	"net/http"
	"net/http/httputil"
	"os"
	"runtime/debug"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
)

// GinLogger 记录每个请求的状态码、耗时、来源以及调用者
func GinLogger() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		start := time.Now()
		ctx.Next()

		Infof("| %3d | %13v | %15v | member=%d | %-7s \"%s\"",
			ctx.Writer.Status(),
			time.Since(start),
			ctx.ClientIP(),
			ctx.GetInt64("user_id"),
			ctx.Request.Method,
			ctx.Request.URL)
	}
}

func GinRecovery(stack bool) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		defer func() {
			rec := recover()
			if rec == nil {
				return
			}

			httpRequest, _ := httputil.DumpRequest(ctx.Request, false)
			if isBrokenPipe(rec) {
				// 连接已经断开，无法再写回响应
				Errorf("%s: connection lost: %v\n%s", ctx.Request.URL.Path, rec, httpRequest)
				if err, ok := rec.(error); ok {
					ctx.Error(err) // nolint: errcheck
				}
				ctx.Abort()
				return
			}

			if stack {
				Errorf("[Recovery from panic]\nError: %v\nRequest: %s\nStack trace:\n%s", rec, httpRequest, debug.Stack())
			} else {
				Errorf("[Recovery from panic]\nError: %v\nRequest: %s\n", rec, httpRequest)
			}
			ctx.AbortWithStatus(http.StatusInternalServerError)
		}()
		ctx.Next()
	}
}

func isBrokenPipe(rec any) bool {
	err, ok := rec.(error)
	if !ok {
		return false
	}
	var opErr *net.OpError
	if !errors.As(err, &opErr) {
		return false
	}
	var sysErr *os.SyscallError
	if !errors.As(opErr.Err, &sysErr) {
		return false
	}
	msg := strings.ToLower(sysErr.Error())
	return strings.Contains(msg, "broken pipe") || strings.Contains(msg, "connection reset by peer")
}
