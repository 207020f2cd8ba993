package logic

import (
	"context"
	dailyfeed "dailyfeed/errors"
	"dailyfeed/logger"
	"dailyfeed/models"

	"github.com/pkg/errors"
	"gorm.io/gorm"
)

func (s *ContentService) LikePost(ctx context.Context, actor *models.Actor, postID int64) error {
	var post *models.Post
	err := s.addLike(ctx, s.postLikes, postID, actor.MemberID, func(tx *gorm.DB) (err error) {
		post, err = s.store.SelectPostByIDNotDeleted(tx, postID)
		return err
	}, func(tx *gorm.DB) error {
		return s.store.IncrPostLikeCount(tx, postID, 1)
	})
	if err != nil {
		return err
	}
	return s.publishAfterCommit(ctx, s.postPublisher, actor, postEvent(post, models.ActivityLike))
}

func (s *ContentService) UnlikePost(ctx context.Context, actor *models.Actor, postID int64) error {
	var post *models.Post
	err := s.removeLike(ctx, s.postLikes, postID, actor.MemberID, func(tx *gorm.DB) (err error) {
		post, err = s.store.SelectPostByIDNotDeleted(tx, postID)
		return err
	}, func(tx *gorm.DB) error {
		return s.store.IncrPostLikeCount(tx, postID, -1)
	})
	if err != nil {
		return err
	}
	return s.publishAfterCommit(ctx, s.postPublisher, actor, postEvent(post, models.ActivityUnlike))
}

func (s *ContentService) LikeComment(ctx context.Context, actor *models.Actor, commentID int64) error {
	var comment *models.Comment
	err := s.addLike(ctx, s.commentLikes, commentID, actor.MemberID, func(tx *gorm.DB) (err error) {
		comment, err = s.store.SelectCommentByIDNotDeleted(tx, commentID)
		return err
	}, func(tx *gorm.DB) error {
		return s.store.IncrCommentLikeCount(tx, commentID, 1)
	})
	if err != nil {
		return err
	}
	return s.publishAfterCommit(ctx, s.commentPublisher, actor, commentEvent(comment, models.ActivityLike))
}

func (s *ContentService) UnlikeComment(ctx context.Context, actor *models.Actor, commentID int64) error {
	var comment *models.Comment
	err := s.removeLike(ctx, s.commentLikes, commentID, actor.MemberID, func(tx *gorm.DB) (err error) {
		comment, err = s.store.SelectCommentByIDNotDeleted(tx, commentID)
		return err
	}, func(tx *gorm.DB) error {
		return s.store.IncrCommentLikeCount(tx, commentID, -1)
	})
	if err != nil {
		return err
	}
	return s.publishAfterCommit(ctx, s.commentPublisher, actor, commentEvent(comment, models.ActivityUnlike))
}

func (s *ContentService) publishAfterCommit(ctx context.Context, p *Publisher, actor *models.Actor, event *models.ActivityEvent) error {
	commitCtx, cancel := s.afterCommit(ctx)
	defer cancel()
	return s.publish(commitCtx, p, actor, event)
}

// addLike 在事务中写点赞标记并更新计数
//
// Exists 只是快速路径，并发的重复点赞由唯一索引拦截。
// 标记写入后事务失败（包括提交失败）时删除标记
func (s *ContentService) addLike(ctx context.Context, likes LikeStore, subjectPK, memberID int64, check, incr func(tx *gorm.DB) error) error {
	inserted := false
	err := s.store.Transaction(ctx, func(tx *gorm.DB) error {
		if err := check(tx); err != nil {
			return err
		}

		exists, err := likes.Exists(ctx, subjectPK, memberID)
		if err != nil {
			return errors.Wrap(err, "logic:addLike: Exists")
		}
		if exists {
			return dailyfeed.ErrAlreadyLiked
		}

		err = likes.Insert(ctx, &models.LikeMarker{SubjectPK: subjectPK, MemberID: memberID, CreatedAt: s.now()})
		if err != nil {
			return errors.Wrap(err, "logic:addLike: Insert")
		}
		inserted = true

		return errors.Wrap(incr(tx), "logic:addLike: incr")
	})
	if err != nil && inserted {
		// 请求的 ctx 可能已经取消
		if rmErr := likes.Delete(context.WithoutCancel(ctx), subjectPK, memberID); rmErr != nil {
			logger.Errorf("logic:addLike: compensate marker (%d, %d) failed: %v", subjectPK, memberID, rmErr)
		}
	}
	return err
}

// removeLike 标记不存在时直接返回 ErrLikeNotFound，不修改计数
//
// 标记删除后事务失败时重新写回标记
func (s *ContentService) removeLike(ctx context.Context, likes LikeStore, subjectPK, memberID int64, check, decr func(tx *gorm.DB) error) error {
	removed := false
	err := s.store.Transaction(ctx, func(tx *gorm.DB) error {
		if err := check(tx); err != nil {
			return err
		}

		if err := likes.Delete(ctx, subjectPK, memberID); err != nil {
			return errors.Wrap(err, "logic:removeLike: Delete")
		}
		removed = true

		return errors.Wrap(decr(tx), "logic:removeLike: decr")
	})
	if err != nil && removed {
		marker := &models.LikeMarker{SubjectPK: subjectPK, MemberID: memberID, CreatedAt: s.now()}
		if addErr := likes.Insert(context.WithoutCancel(ctx), marker); addErr != nil {
			logger.Errorf("logic:removeLike: compensate marker (%d, %d) failed: %v", subjectPK, memberID, addErr)
		}
	}
	return err
}
