package mysql

import (
	dailyfeed "dailyfeed/errors"
	"dailyfeed/models"
	"time"

	"github.com/pkg/errors"
	"gorm.io/gorm"
)

func (s *Store) CreateComment(tx *gorm.DB, comment *models.Comment) error {
	useDB := s.getUseDB(tx)

	res := useDB.Create(comment)
	return errors.Wrap(res.Error, "mysql:CreateComment: Create")
}

// SelectCommentByIDNotDeleted 评论不存在或已删除时返回 ErrCommentNotFound
func (s *Store) SelectCommentByIDNotDeleted(tx *gorm.DB, commentID int64) (*models.Comment, error) {
	useDB := s.getUseDB(tx)

	comment := new(models.Comment)
	res := useDB.Where("id = ? AND is_deleted = ?", commentID, false).Take(comment)
	if res.Error != nil {
		if errors.Is(res.Error, gorm.ErrRecordNotFound) {
			return nil, dailyfeed.ErrCommentNotFound
		}
		return nil, errors.Wrap(res.Error, "mysql:SelectCommentByIDNotDeleted: Take")
	}
	return comment, nil
}

func (s *Store) UpdateCommentContent(tx *gorm.DB, commentID int64, content string, updatedAt time.Time) error {
	useDB := s.getUseDB(tx)

	res := useDB.Model(&models.Comment{}).
		Where("id = ? AND is_deleted = ?", commentID, false).
		Updates(map[string]any{"content": content, "updated_at": updatedAt})
	if res.Error != nil {
		return errors.Wrap(res.Error, "mysql:UpdateCommentContent: Updates")
	}
	if res.RowsAffected == 0 {
		return dailyfeed.ErrCommentNotFound
	}
	return nil
}

// SoftDeleteCommentCascade 软删除评论及其所有子孙评论，返回被删除的评论 ID（包括自身）
//
// 逐层向下，每层一条 UPDATE。层数由 maxDepth 限定，不会无限递归
func (s *Store) SoftDeleteCommentCascade(tx *gorm.DB, commentID int64, maxDepth int, deletedAt time.Time) ([]int64, error) {
	useDB := s.getUseDB(tx)

	res := useDB.Model(&models.Comment{}).
		Where("id = ? AND is_deleted = ?", commentID, false).
		Updates(map[string]any{"is_deleted": true, "updated_at": deletedAt})
	if res.Error != nil {
		return nil, errors.Wrap(res.Error, "mysql:SoftDeleteCommentCascade: Updates(self)")
	}
	if res.RowsAffected == 0 {
		return nil, dailyfeed.ErrCommentNotFound
	}

	deleted := []int64{commentID}
	level := []int64{commentID}
	for i := 0; i <= maxDepth && len(level) > 0; i++ {
		var children []int64
		res = useDB.Model(&models.Comment{}).
			Where("parent_id IN ? AND is_deleted = ?", level, false).
			Pluck("id", &children)
		if res.Error != nil {
			return nil, errors.Wrap(res.Error, "mysql:SoftDeleteCommentCascade: Pluck")
		}
		if len(children) == 0 {
			break
		}

		res = useDB.Model(&models.Comment{}).
			Where("id IN ?", children).
			Updates(map[string]any{"is_deleted": true, "updated_at": deletedAt})
		if res.Error != nil {
			return nil, errors.Wrap(res.Error, "mysql:SoftDeleteCommentCascade: Updates(children)")
		}

		deleted = append(deleted, children...)
		level = children
	}
	return deleted, nil
}

func (s *Store) IncrCommentLikeCount(tx *gorm.DB, commentID int64, delta int) error {
	return errors.Wrap(s.incrLikeCount(tx, &models.Comment{}, commentID, delta), "mysql:IncrCommentLikeCount")
}
