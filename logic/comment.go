package logic

import (
	"context"
	dailyfeed "dailyfeed/errors"
	"dailyfeed/internal/utils"
	"dailyfeed/logger"
	"dailyfeed/models"

	"github.com/pkg/errors"
	"gorm.io/gorm"
)

// CreateComment parentID 为 0 时创建根评论
//
// 回复需要满足：父评论存在且未删除、没有超过最大层数、与父评论属于同一个帖子
func (s *ContentService) CreateComment(ctx context.Context, actor *models.Actor, postID int64, content string, parentID int64) (*models.Comment, error) {
	if err := validateContent(content); err != nil {
		return nil, err
	}

	now := s.now()
	comment := &models.Comment{
		ID:        s.genID(),
		PostID:    postID,
		AuthorID:  actor.MemberID,
		Content:   content,
		CreatedAt: now,
		UpdatedAt: now,
	}
	err := s.store.Transaction(ctx, func(tx *gorm.DB) error {
		if _, err := s.store.SelectPostByIDNotDeleted(tx, postID); err != nil {
			return err
		}

		depth, err := s.tree.ResolveDepth(tx, postID, parentID)
		if err != nil {
			return err
		}
		comment.Depth = depth
		if parentID != 0 {
			comment.ParentID = &parentID
		}

		return errors.Wrap(s.store.CreateComment(tx, comment), "logic:CreateComment: CreateComment")
	})
	if err != nil {
		return nil, err
	}

	commitCtx, cancel := s.afterCommit(ctx)
	defer cancel()

	err = s.commentMirror.Insert(commitCtx, &models.ContentDocument{
		SubjectPK: comment.ID,
		PostPK:    postID,
		ParentPK:  parentID,
		Content:   content,
		CreatedAt: now,
		UpdatedAt: now,
	})
	if err != nil {
		s.mirrorFailed("CreateComment", models.SubjectComment, comment.ID, err)
	}

	return comment, s.publish(commitCtx, s.commentPublisher, actor, commentEvent(comment, models.ActivityCreate))
}

func (s *ContentService) UpdateComment(ctx context.Context, actor *models.Actor, commentID int64, content string) (*models.Comment, error) {
	if err := validateContent(content); err != nil {
		return nil, err
	}

	var comment *models.Comment
	now := s.now()
	err := s.store.Transaction(ctx, func(tx *gorm.DB) error {
		var err error
		comment, err = s.ownedComment(tx, actor, commentID)
		if err != nil {
			return err
		}
		if err := s.store.UpdateCommentContent(tx, commentID, content, now); err != nil {
			return errors.Wrap(err, "logic:UpdateComment: UpdateCommentContent")
		}
		comment.Content, comment.UpdatedAt = content, now
		return nil
	})
	if err != nil {
		return nil, err
	}

	commitCtx, cancel := s.afterCommit(ctx)
	defer cancel()

	if _, err := s.commentMirror.Supersede(commitCtx, commentID, "", content, now); err != nil {
		s.mirrorFailed("UpdateComment", models.SubjectComment, commentID, err)
	}

	return comment, s.publish(commitCtx, s.commentPublisher, actor, commentEvent(comment, models.ActivityUpdate))
}

// DeleteComment 软删除评论以及它的所有回复
func (s *ContentService) DeleteComment(ctx context.Context, actor *models.Actor, commentID int64) error {
	var (
		comment *models.Comment
		deleted []int64
	)
	now := s.now()
	err := s.store.Transaction(ctx, func(tx *gorm.DB) error {
		var err error
		comment, err = s.ownedComment(tx, actor, commentID)
		if err != nil {
			return err
		}
		deleted, err = s.tree.Cascade(tx, commentID, now)
		return err
	})
	if err != nil {
		return err
	}

	logger.Debugf("DeleteComment: comment %d removed with replies %v", commentID, utils.FormatIDs(deleted[1:]))

	commitCtx, cancel := s.afterCommit(ctx)
	defer cancel()

	for _, id := range deleted {
		if err := s.commentMirror.SoftDelete(commitCtx, id, now); err != nil {
			s.mirrorFailed("DeleteComment", models.SubjectComment, id, err)
		}
	}

	return s.publish(commitCtx, s.commentPublisher, actor, commentEvent(comment, models.ActivitySoftDelete))
}

func (s *ContentService) ownedComment(tx *gorm.DB, actor *models.Actor, commentID int64) (*models.Comment, error) {
	comment, err := s.store.SelectCommentByIDNotDeleted(tx, commentID)
	if err != nil {
		return nil, err
	}
	if comment.AuthorID != actor.MemberID {
		return nil, dailyfeed.ErrForbidden
	}
	return comment, nil
}

func commentEvent(comment *models.Comment, kind models.ActivityKind) *models.ActivityEvent {
	return &models.ActivityEvent{
		SubjectType: models.SubjectComment,
		SubjectID:   comment.ID,
		PostID:      comment.PostID,
		Kind:        kind,
	}
}
