package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// 解决跨域问题，frontendPath 为空时不设置任何响应头
func CORF(frontendPath string) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		if frontendPath == "" {
			ctx.Next()
			return
		}

		h := ctx.Writer.Header()
		h.Set("Access-Control-Allow-Origin", frontendPath)
		h.Set("Access-Control-Allow-Headers", "Authorization, Content-Type")
		h.Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		h.Set("Access-Control-Allow-Credentials", "true")
		h.Set("Access-Control-Max-Age", "86400")

		if ctx.Request.Method == http.MethodOptions {
			ctx.AbortWithStatus(http.StatusOK)
			return
		}
		ctx.Next()
	}
}
