package models

import "time"

// ContentDocument 是帖子/评论正文在文档库中的版本化镜像，只追加不原地修改
type ContentDocument struct {
	SubjectPK int64     `bson:"subject_pk" json:"subject_pk,string"`
	PostPK    int64     `bson:"post_pk,omitempty" json:"post_pk,string,omitempty"`   // 仅评论
	ParentPK  int64     `bson:"parent_pk,omitempty" json:"parent_pk,string,omitempty"` // 仅回复
	Title     string    `bson:"title,omitempty" json:"title,omitempty"`
	Content   string    `bson:"content" json:"content"`
	CreatedAt time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt time.Time `bson:"updated_at" json:"updated_at"`
	IsDeleted bool      `bson:"is_deleted" json:"is_deleted"`
	IsCurrent bool      `bson:"is_current" json:"is_current"`
	Version   int64     `bson:"version" json:"version"`
}

func (d *ContentDocument) Clone() *ContentDocument {
	cp := *d
	return &cp
}

// LikeMarker 记录 (subject, member) 的点赞，唯一索引保证幂等
type LikeMarker struct {
	SubjectPK int64     `bson:"subject_pk" json:"subject_pk,string"`
	MemberID  int64     `bson:"member_id" json:"member_id,string"`
	CreatedAt time.Time `bson:"created_at" json:"created_at"`
}
