package controller

import (
	common "dailyfeed/controller/Common"
	"dailyfeed/internal/utils"
	"dailyfeed/logic"
	"dailyfeed/models"

	"github.com/gin-gonic/gin"
)

// CommentCreateHandler 创建评论接口，parent_id 不为空时是回复
func CommentCreateHandler(ctx *gin.Context) {
	param := new(models.ParamCommentCreate)
	if err := ctx.ShouldBindJSON(param); err != nil {
		common.ResponseErrorWithMsg(ctx, common.CodeInvalidParam, utils.ParseToValidationError(err))
		return
	}
	actor, ok := getActor(ctx)
	if !ok {
		return
	}

	comment, err := logic.GetContentService().CreateComment(ctx.Request.Context(), actor, param.PostID, param.Content, param.ParentID)
	if err != nil {
		var data any
		if comment != nil {
			data = &common.ResponseCommentCreate{CommentID: comment.ID, Depth: comment.Depth}
		}
		responseLogicError(ctx, err, data)
		return
	}

	common.ResponseSuccess(ctx, &common.ResponseCommentCreate{CommentID: comment.ID, Depth: comment.Depth})
}

func CommentUpdateHandler(ctx *gin.Context) {
	uri := new(models.ParamCommentID)
	if err := ctx.ShouldBindUri(uri); err != nil {
		common.ResponseErrorWithMsg(ctx, common.CodeInvalidParam, utils.ParseToValidationError(err))
		return
	}
	param := new(models.ParamCommentUpdate)
	if err := ctx.ShouldBindJSON(param); err != nil {
		common.ResponseErrorWithMsg(ctx, common.CodeInvalidParam, utils.ParseToValidationError(err))
		return
	}
	actor, ok := getActor(ctx)
	if !ok {
		return
	}

	comment, err := logic.GetContentService().UpdateComment(ctx.Request.Context(), actor, uri.CommentID, param.Content)
	if err != nil {
		var data any
		if comment != nil {
			data = comment.DTO()
		}
		responseLogicError(ctx, err, data)
		return
	}

	common.ResponseSuccess(ctx, comment.DTO())
}

// CommentRemoveHandler 删除评论，所有回复一起删除
func CommentRemoveHandler(ctx *gin.Context) {
	uri := new(models.ParamCommentID)
	if err := ctx.ShouldBindUri(uri); err != nil {
		common.ResponseErrorWithMsg(ctx, common.CodeInvalidParam, utils.ParseToValidationError(err))
		return
	}
	actor, ok := getActor(ctx)
	if !ok {
		return
	}

	if err := logic.GetContentService().DeleteComment(ctx.Request.Context(), actor, uri.CommentID); err != nil {
		responseLogicError(ctx, err, nil)
		return
	}

	common.ResponseSuccess(ctx, nil)
}
