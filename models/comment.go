package models

import "time"

// 评论，parent_id 为空时是根评论（depth = 0）
type Comment struct {
	ID        int64     `gorm:"primaryKey;autoIncrement:false" json:"comment_id,string"`
	PostID    int64     `gorm:"type:bigint;not null;index" json:"post_id,string"`
	ParentID  *int64    `gorm:"type:bigint;index" json:"parent_id,string,omitempty"`
	AuthorID  int64     `gorm:"type:bigint;not null" json:"author_id,string"`
	Depth     int       `gorm:"not null;default:0" json:"depth"`
	Content   string    `gorm:"type:varchar(8192);not null" json:"content"`
	LikeCount int64     `gorm:"not null;default:0" json:"like_count"`
	IsDeleted bool      `gorm:"not null;default:false;index" json:"is_deleted"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (c *Comment) IsReply() bool {
	return c.ParentID != nil
}

type CommentDTO struct {
	CommentID int64     `json:"comment_id,string"`
	PostID    int64     `json:"post_id,string"`
	ParentID  int64     `json:"parent_id,string,omitempty"`
	AuthorID  int64     `json:"author_id,string"`
	Depth     int       `json:"depth"`
	Content   string    `json:"content"`
	LikeCount int64     `json:"like_count"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (c *Comment) DTO() *CommentDTO {
	dto := &CommentDTO{
		CommentID: c.ID,
		PostID:    c.PostID,
		AuthorID:  c.AuthorID,
		Depth:     c.Depth,
		Content:   c.Content,
		LikeCount: c.LikeCount,
		CreatedAt: c.CreatedAt,
		UpdatedAt: c.UpdatedAt,
	}
	if c.ParentID != nil {
		dto.ParentID = *c.ParentID
	}
	return dto
}
