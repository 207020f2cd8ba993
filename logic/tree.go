package logic

import (
	"dailyfeed/dao/mysql"
	dailyfeed "dailyfeed/errors"
	"dailyfeed/models"
	"time"

	"github.com/pkg/errors"
	"gorm.io/gorm"
)

// CommentTree 维护评论的父子关系
//
// maxDepth 是允许的层数，根评论在第 0 层，所以最深的评论 depth = maxDepth - 1
type CommentTree struct {
	store    *mysql.Store
	maxDepth int
}

func NewCommentTree(store *mysql.Store, maxDepth int) *CommentTree {
	if maxDepth <= 0 {
		maxDepth = 1
	}
	return &CommentTree{store: store, maxDepth: maxDepth}
}

func (t *CommentTree) MaxDepth() int {
	return t.maxDepth
}

// ResolveDepth 计算新评论的 depth，parentID 为 0 时是根评论
func (t *CommentTree) ResolveDepth(tx *gorm.DB, postID, parentID int64) (int, error) {
	if parentID == 0 {
		return 0, nil
	}

	parent, err := t.store.SelectCommentByIDNotDeleted(tx, parentID)
	if err != nil {
		if errors.Is(err, dailyfeed.ErrCommentNotFound) {
			return 0, dailyfeed.ErrParentNotFound
		}
		return 0, errors.Wrap(err, "logic:ResolveDepth: SelectCommentByIDNotDeleted")
	}
	return t.childDepth(parent, postID)
}

func (t *CommentTree) childDepth(parent *models.Comment, postID int64) (int, error) {
	if parent.Depth+1 >= t.maxDepth {
		return 0, dailyfeed.ErrDepthLimitExceeded
	}
	if parent.PostID != postID {
		return 0, dailyfeed.ErrParentPostMismatch
	}
	return parent.Depth + 1, nil
}

// Cascade 软删除评论及其所有子孙，返回被删除的 ID
func (t *CommentTree) Cascade(tx *gorm.DB, commentID int64, at time.Time) ([]int64, error) {
	ids, err := t.store.SoftDeleteCommentCascade(tx, commentID, t.maxDepth, at)
	if err != nil {
		return nil, errors.Wrap(err, "logic:Cascade: SoftDeleteCommentCascade")
	}
	return ids, nil
}
