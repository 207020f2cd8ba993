package models

import "time"

type Post struct {
	ID        int64     `gorm:"primaryKey;autoIncrement:false" json:"post_id,string"`
	AuthorID  int64     `gorm:"type:bigint;not null;index" json:"author_id,string"`
	Title     string    `gorm:"type:varchar(128);not null" json:"title"`
	Content   string    `gorm:"type:longtext;not null" json:"content"`
	ViewCount int64     `gorm:"not null;default:0" json:"view_count"`
	LikeCount int64     `gorm:"not null;default:0" json:"like_count"`
	IsDeleted bool      `gorm:"not null;default:false;index" json:"is_deleted"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type PostDTO struct {
	PostID    int64     `json:"post_id,string"`
	AuthorID  int64     `json:"author_id,string"`
	Title     string    `json:"title"`
	Content   string    `json:"content"`
	ViewCount int64     `json:"view_count"`
	LikeCount int64     `json:"like_count"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (p *Post) DTO() *PostDTO {
	return &PostDTO{
		PostID:    p.ID,
		AuthorID:  p.AuthorID,
		Title:     p.Title,
		Content:   p.Content,
		ViewCount: p.ViewCount,
		LikeCount: p.LikeCount,
		CreatedAt: p.CreatedAt,
		UpdatedAt: p.UpdatedAt,
	}
}
