package controller

import (
	common "dailyfeed/controller/Common"
	"dailyfeed/internal/utils"
	"dailyfeed/logic"
	"dailyfeed/models"

	"github.com/gin-gonic/gin"
)

// CreatePostHandler 创建帖子接口
func CreatePostHandler(ctx *gin.Context) {
	param := new(models.ParamPostCreate)
	if err := ctx.ShouldBindJSON(param); err != nil {
		common.ResponseErrorWithMsg(ctx, common.CodeInvalidParam, utils.ParseToValidationError(err))
		return
	}
	actor, ok := getActor(ctx)
	if !ok {
		return
	}

	post, err := logic.GetContentService().CreatePost(ctx.Request.Context(), actor, param.Title, param.Content)
	if err != nil {
		var data any
		if post != nil {
			data = &common.ResponsePostCreate{PostID: post.ID}
		}
		responseLogicError(ctx, err, data)
		return
	}

	common.ResponseSuccess(ctx, &common.ResponsePostCreate{PostID: post.ID})
}

// UpdatePostHandler 修改帖子接口，只有作者可以修改
func UpdatePostHandler(ctx *gin.Context) {
	uri := new(models.ParamPostID)
	if err := ctx.ShouldBindUri(uri); err != nil {
		common.ResponseErrorWithMsg(ctx, common.CodeInvalidParam, utils.ParseToValidationError(err))
		return
	}
	param := new(models.ParamPostUpdate)
	if err := ctx.ShouldBindJSON(param); err != nil {
		common.ResponseErrorWithMsg(ctx, common.CodeInvalidParam, utils.ParseToValidationError(err))
		return
	}
	actor, ok := getActor(ctx)
	if !ok {
		return
	}

	post, err := logic.GetContentService().UpdatePost(ctx.Request.Context(), actor, uri.PostID, param.Title, param.Content)
	if err != nil {
		var data any
		if post != nil {
			data = post.DTO()
		}
		responseLogicError(ctx, err, data)
		return
	}

	common.ResponseSuccess(ctx, post.DTO())
}

// DeletePostHandler 删除帖子接口（软删除）
func DeletePostHandler(ctx *gin.Context) {
	uri := new(models.ParamPostID)
	if err := ctx.ShouldBindUri(uri); err != nil {
		common.ResponseErrorWithMsg(ctx, common.CodeInvalidParam, utils.ParseToValidationError(err))
		return
	}
	actor, ok := getActor(ctx)
	if !ok {
		return
	}

	if err := logic.GetContentService().DeletePost(ctx.Request.Context(), actor, uri.PostID); err != nil {
		responseLogicError(ctx, err, nil)
		return
	}

	common.ResponseSuccess(ctx, nil)
}

// PostHistoryHandler 帖子所有的历史版本
func PostHistoryHandler(ctx *gin.Context) {
	uri := new(models.ParamPostID)
	if err := ctx.ShouldBindUri(uri); err != nil {
		common.ResponseErrorWithMsg(ctx, common.CodeInvalidParam, utils.ParseToValidationError(err))
		return
	}

	docs, err := logic.GetContentService().PostHistory(ctx.Request.Context(), uri.PostID)
	if err != nil {
		responseLogicError(ctx, err, nil)
		return
	}

	common.ResponseSuccess(ctx, &common.ResponsePostHistory{PostID: uri.PostID, Versions: docs})
}
