package models

/*
	存放所有有关请求参数的结构体
*/

/* Post */
type ParamPostCreate struct {
	Title   string `json:"title" binding:"omitempty,max=128"`
	Content string `json:"content" binding:"required,max=8192"`
}

type ParamPostUpdate struct {
	Title   string `json:"title" binding:"omitempty,max=128"`
	Content string `json:"content" binding:"required,max=8192"`
}

type ParamPostID struct {
	PostID int64 `uri:"post_id" binding:"required,gt=0"`
}

/* Comment */
type ParamCommentCreate struct {
	PostID   int64  `json:"post_id,string" binding:"required,gt=0"`
	ParentID int64  `json:"parent_id,string"` // 0 代表根评论
	Content  string `json:"content" binding:"required,min=1,max=8192"`
}

type ParamCommentUpdate struct {
	Content string `json:"content" binding:"required,min=1,max=8192"`
}

type ParamCommentID struct {
	CommentID int64 `uri:"comment_id" binding:"required,gt=0"`
}
