package controller

import (
	"context"
	common "dailyfeed/controller/Common"
	"dailyfeed/internal/utils"
	"dailyfeed/logic"
	"dailyfeed/models"

	"github.com/gin-gonic/gin"
)

type likeFunc func(svc *logic.ContentService, ctx context.Context, actor *models.Actor, id int64) error

func PostLikeHandler(ctx *gin.Context) {
	postLike(ctx, (*logic.ContentService).LikePost)
}

func PostUnlikeHandler(ctx *gin.Context) {
	postLike(ctx, (*logic.ContentService).UnlikePost)
}

func CommentLikeHandler(ctx *gin.Context) {
	commentLike(ctx, (*logic.ContentService).LikeComment)
}

func CommentUnlikeHandler(ctx *gin.Context) {
	commentLike(ctx, (*logic.ContentService).UnlikeComment)
}

func postLike(ctx *gin.Context, fn likeFunc) {
	uri := new(models.ParamPostID)
	if err := ctx.ShouldBindUri(uri); err != nil {
		common.ResponseErrorWithMsg(ctx, common.CodeInvalidParam, utils.ParseToValidationError(err))
		return
	}
	doLike(ctx, fn, uri.PostID)
}

func commentLike(ctx *gin.Context, fn likeFunc) {
	uri := new(models.ParamCommentID)
	if err := ctx.ShouldBindUri(uri); err != nil {
		common.ResponseErrorWithMsg(ctx, common.CodeInvalidParam, utils.ParseToValidationError(err))
		return
	}
	doLike(ctx, fn, uri.CommentID)
}

func doLike(ctx *gin.Context, fn likeFunc, id int64) {
	actor, ok := getActor(ctx)
	if !ok {
		return
	}
	if err := fn(logic.GetContentService(), ctx.Request.Context(), actor, id); err != nil {
		responseLogicError(ctx, err, nil)
		return
	}
	common.ResponseSuccess(ctx, nil)
}
