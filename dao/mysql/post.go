package mysql

import (
	dailyfeed "dailyfeed/errors"
	"dailyfeed/models"
	"time"

	"github.com/pkg/errors"
	"gorm.io/gorm"
)

func (s *Store) CreatePost(tx *gorm.DB, post *models.Post) error {
	useDB := s.getUseDB(tx)

	res := useDB.Create(post)
	return errors.Wrap(res.Error, "mysql:CreatePost: Create")
}

// SelectPostByIDNotDeleted 帖子不存在或已删除时返回 ErrPostNotFound
func (s *Store) SelectPostByIDNotDeleted(tx *gorm.DB, postID int64) (*models.Post, error) {
	useDB := s.getUseDB(tx)

	post := new(models.Post)
	res := useDB.Where("id = ? AND is_deleted = ?", postID, false).Take(post)
	if res.Error != nil {
		if errors.Is(res.Error, gorm.ErrRecordNotFound) {
			return nil, dailyfeed.ErrPostNotFound
		}
		return nil, errors.Wrap(res.Error, "mysql:SelectPostByIDNotDeleted: Take")
	}
	return post, nil
}

func (s *Store) UpdatePostContent(tx *gorm.DB, postID int64, title, content string, updatedAt time.Time) error {
	useDB := s.getUseDB(tx)

	res := useDB.Model(&models.Post{}).
		Where("id = ? AND is_deleted = ?", postID, false).
		Updates(map[string]any{"title": title, "content": content, "updated_at": updatedAt})
	if res.Error != nil {
		return errors.Wrap(res.Error, "mysql:UpdatePostContent: Updates")
	}
	if res.RowsAffected == 0 {
		return dailyfeed.ErrPostNotFound
	}
	return nil
}

func (s *Store) SoftDeletePost(tx *gorm.DB, postID int64, deletedAt time.Time) error {
	useDB := s.getUseDB(tx)

	res := useDB.Model(&models.Post{}).
		Where("id = ? AND is_deleted = ?", postID, false).
		Updates(map[string]any{"is_deleted": true, "updated_at": deletedAt})
	if res.Error != nil {
		return errors.Wrap(res.Error, "mysql:SoftDeletePost: Updates")
	}
	if res.RowsAffected == 0 {
		return dailyfeed.ErrPostNotFound
	}
	return nil
}

// IncrPostLikeCount delta 为负数时，like_count 不会减到 0 以下
func (s *Store) IncrPostLikeCount(tx *gorm.DB, postID int64, delta int) error {
	return errors.Wrap(s.incrLikeCount(tx, &models.Post{}, postID, delta), "mysql:IncrPostLikeCount")
}

func (s *Store) incrLikeCount(tx *gorm.DB, model any, id int64, delta int) error {
	useDB := s.getUseDB(tx)

	query := useDB.Model(model).Where("id = ? AND is_deleted = ?", id, false)
	if delta < 0 {
		query = query.Where("like_count >= ?", -delta)
	}
	res := query.UpdateColumn("like_count", gorm.Expr("like_count + ?", delta))
	return res.Error
}
