package controller

import (
	common "dailyfeed/controller/Common"
	dailyfeed "dailyfeed/errors"
	"dailyfeed/logger"
	"dailyfeed/models"

	"github.com/gin-gonic/gin"
	"github.com/pkg/errors"
)

// getActor 从 Auth 中间件写入的上下文中构造调用方
func getActor(ctx *gin.Context) (*models.Actor, bool) {
	memberID := ctx.GetInt64("user_id")
	if memberID == 0 {
		common.ResponseError(ctx, common.CodeNeedLogin)
		return nil, false
	}
	return &models.Actor{
		MemberID:    memberID,
		DisplayName: ctx.GetString("user_name"),
		Token:       ctx.GetString("access_token"),
	}, true
}

var errCodes = []struct {
	err  error
	code common.Code
}{
	{dailyfeed.ErrInvalidParam, common.CodeInvalidParam},
	{dailyfeed.ErrForbidden, common.CodeForbidden},
	{dailyfeed.ErrPostNotFound, common.CodeNoSuchPost},
	{dailyfeed.ErrCommentNotFound, common.CodeNoSuchComment},
	{dailyfeed.ErrParentNotFound, common.CodeNoSuchParent},
	{dailyfeed.ErrDepthLimitExceeded, common.CodeDepthLimitExceeded},
	{dailyfeed.ErrParentPostMismatch, common.CodeParentPostMismatch},
	{dailyfeed.ErrAlreadyLiked, common.CodeAlreadyLiked},
	{dailyfeed.ErrLikeNotFound, common.CodeLikeNotFound},
	{dailyfeed.ErrTimeout, common.CodeTimeOut},
}

// responseLogicError 把 logic 层的错误转换为业务码
//
// 限流和事件丢失时变更已经提交，data 不为空则一并返回
func responseLogicError(ctx *gin.Context, err error, data any) {
	for _, e := range errCodes {
		if errors.Is(err, e.err) {
			common.ResponseError(ctx, e.code)
			return
		}
	}

	switch {
	case errors.Is(err, dailyfeed.ErrTooManyRequests):
		common.ResponseErrorWithData(ctx, common.CodeTooManyRequests, data)
	case errors.Is(err, dailyfeed.ErrPublishAndFallbackFailed):
		logger.ErrorWithStack(err)
		common.ResponseErrorWithData(ctx, common.CodePublishFailed, data)
	default:
		logger.ErrorWithStack(err)
		common.ResponseError(ctx, common.CodeInternalErr)
	}
}
