package dailyfeed

import "github.com/pkg/errors"

var (
	// common
	ErrInvalidToken = errors.New("无效的 Token")
	ErrExpiredToken = errors.New("过期的 Token")
	ErrInvalidParam = errors.New("无效参数")
	ErrTimeout      = errors.New("超时")
	ErrForbidden    = errors.New("没有权限")

	// post
	ErrPostNotFound = errors.New("帖子不存在或已删除")

	// comment
	ErrCommentNotFound    = errors.New("评论不存在或已删除")
	ErrParentNotFound     = errors.New("父评论不存在或已删除")
	ErrDepthLimitExceeded = errors.New("超过评论最大层级")
	ErrParentPostMismatch = errors.New("父评论不属于该帖子")

	// like
	ErrAlreadyLiked = errors.New("已经点过赞")
	ErrLikeNotFound = errors.New("没有点过赞")

	// mirror
	ErrMirrorNotFound = errors.New("镜像文档不存在")
	ErrMirrorConflict = errors.New("镜像文档已被并发替换")

	// activity
	ErrPublishFailed            = errors.New("活动事件投递失败")
	ErrPublishAndFallbackFailed = errors.New("活动事件投递和死信保存都失败")
	ErrTooManyRequests          = errors.New("活动服务请求过多，已被拒绝")
)
