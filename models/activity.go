package models

import "time"

type SubjectType string

const (
	SubjectPost    SubjectType = "post"
	SubjectComment SubjectType = "comment"
)

type ActivityKind string

const (
	ActivityCreate     ActivityKind = "create"
	ActivityUpdate     ActivityKind = "update"
	ActivitySoftDelete ActivityKind = "soft_delete"
	ActivityLike       ActivityKind = "like"
	ActivityUnlike     ActivityKind = "unlike"
)

// 死信的分类，同时作为 routing key
const (
	CategoryPost        = "post"
	CategoryComment     = "comment"
	CategoryPostLike    = "post_like"
	CategoryCommentLike = "comment_like"
)

// Actor 是调用方（已认证的用户）
type Actor struct {
	MemberID    int64
	DisplayName string
	Token       string // 透传给同步 RPC 通道
}

// ActivityEvent 描述一次已完成的变更，只在死信中持久化
type ActivityEvent struct {
	MemberID    int64        `json:"member_id,string"`
	SubjectType SubjectType  `json:"subject_type"`
	SubjectID   int64        `json:"subject_id,string"`
	PostID      int64        `json:"post_id,string"`
	Kind        ActivityKind `json:"kind"`
	OccurredAt  time.Time    `json:"occurred_at"`
}

func (e *ActivityEvent) Category() string {
	like := e.Kind == ActivityLike || e.Kind == ActivityUnlike
	switch {
	case e.SubjectType == SubjectPost && like:
		return CategoryPostLike
	case e.SubjectType == SubjectComment && like:
		return CategoryCommentLike
	case e.SubjectType == SubjectComment:
		return CategoryComment
	default:
		return CategoryPost
	}
}

type DeadLetterRecord struct {
	RoutingKey  string    `bson:"routing_key" json:"routing_key"`
	MessageKey  string    `bson:"message_key" json:"message_key"`
	Channel     string    `bson:"channel" json:"channel"`
	Payload     string    `bson:"payload" json:"payload"`
	CapturedAt  time.Time `bson:"captured_at" json:"captured_at"`
	IsCompleted bool      `bson:"is_completed" json:"is_completed"`
	IsEditing   bool      `bson:"is_editing" json:"is_editing"`
}
