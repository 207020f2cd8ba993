package middleware

import (
	controller "dailyfeed/controller/Common"
	dailyfeed "dailyfeed/errors"
	"dailyfeed/internal/utils"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/pkg/errors"
)

// 认证中间件，基于 JWT
//
// 原始 token 保存在上下文中，同步 RPC 通道会把它转发给活动服务
func Auth() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		header := ctx.Request.Header.Get("Authorization")
		if len(header) == 0 {
			controller.ResponseError(ctx, controller.CodeNeedLogin)
			ctx.Abort()
			return
		}

		// 使用 Bearer 作为协议
		parts := strings.SplitN(header, " ", 2)
		if len(parts) != 2 || parts[0] != "Bearer" {
			controller.ResponseError(ctx, controller.CodeUnsupportedAuthProtocol)
			ctx.Abort()
			return
		}
		if parts[1] == "" || parts[1] == "null" {
			controller.ResponseError(ctx, controller.CodeInvalidToken)
			ctx.Abort()
			return
		}

		claims, err := utils.ParseToken(parts[1])
		if err != nil {
			if errors.Is(err, dailyfeed.ErrExpiredToken) {
				controller.ResponseError(ctx, controller.CodeExpiredToken)
			} else if errors.Is(err, dailyfeed.ErrInvalidToken) {
				controller.ResponseError(ctx, controller.CodeInvalidToken)
			} else {
				controller.ResponseErrorWithMsg(ctx, controller.CodeInternalErr, "解析 token 失败")
			}
			ctx.Abort()
			return
		}

		ctx.Set("user_id", claims.MemberID)
		ctx.Set("user_name", claims.Name)
		ctx.Set("access_token", parts[1])
		ctx.Next()
	}
}
