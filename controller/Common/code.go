package controller

type Code uint

const (
	CodeSuccess Code = iota + 1000
	CodeInternalErr
	CodeServerBusy
	CodeInvalidParam
	CodeUnsupportedAuthProtocol
	CodeInvalidToken
	CodeExpiredToken
	CodeNeedLogin
	CodeTimeOut
	CodeForbidden

	CodeNoSuchPost
	CodeNoSuchComment
	CodeNoSuchParent
	CodeDepthLimitExceeded
	CodeParentPostMismatch

	CodeAlreadyLiked
	CodeLikeNotFound

	CodeTooManyRequests
	CodePublishFailed
)

var codeMsgMap = map[Code]string{
	CodeSuccess:                 "成功",
	CodeInternalErr:             "服务繁忙",
	CodeServerBusy:              "触发限流",
	CodeInvalidParam:            "无效参数",
	CodeUnsupportedAuthProtocol: "不支持的认证协议",
	CodeInvalidToken:            "无效 Token",
	CodeExpiredToken:            "过期 Token",
	CodeNeedLogin:               "需要登录",
	CodeTimeOut:                 "请求超时",
	CodeForbidden:               "没有权限",

	CodeNoSuchPost:         "没有该帖子",
	CodeNoSuchComment:      "没有该评论",
	CodeNoSuchParent:       "回复的评论不存在",
	CodeDepthLimitExceeded: "超过评论最大层数",
	CodeParentPostMismatch: "回复的评论不属于该帖子",

	CodeAlreadyLiked: "已经点过赞",
	CodeLikeNotFound: "还没有点赞",

	CodeTooManyRequests: "活动服务繁忙，稍后再试",
	CodePublishFailed:   "操作已完成，但活动记录失败",
}

func (c Code) getMsg() string {
	msg, ok := codeMsgMap[c]
	if !ok {
		return "无效错误码"
	}
	return msg
}
