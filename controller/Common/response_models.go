package controller

import "dailyfeed/models"

type ResponsePostCreate struct {
	PostID int64 `json:"post_id,string"`
}

type ResponseCommentCreate struct {
	CommentID int64 `json:"comment_id,string"`
	Depth     int   `json:"depth"`
}

type ResponsePostHistory struct {
	PostID   int64                     `json:"post_id,string"`
	Versions []*models.ContentDocument `json:"versions"`
}
