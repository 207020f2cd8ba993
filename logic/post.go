package logic

import (
	"context"
	dailyfeed "dailyfeed/errors"
	"dailyfeed/internal/utils"
	"dailyfeed/logger"
	"dailyfeed/models"
	"time"

	"github.com/pkg/errors"
	"gorm.io/gorm"
)

func (s *ContentService) CreatePost(ctx context.Context, actor *models.Actor, title, content string) (*models.Post, error) {
	if err := validateContent(content); err != nil {
		return nil, err
	}

	now := s.now()
	post := &models.Post{
		ID:        s.genID(),
		AuthorID:  actor.MemberID,
		Title:     title,
		Content:   content,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.store.CreatePost(s.store.DB().WithContext(ctx), post); err != nil {
		return nil, errors.Wrap(err, "logic:CreatePost: CreatePost")
	}
	logger.Debugf("CreatePost: post %d by %d: %s", post.ID, actor.MemberID, utils.Substr(content, 0, 32))

	commitCtx, cancel := s.afterCommit(ctx)
	defer cancel()

	err := s.postMirror.Insert(commitCtx, &models.ContentDocument{
		SubjectPK: post.ID,
		Title:     post.Title,
		Content:   post.Content,
		CreatedAt: now,
		UpdatedAt: now,
	})
	if err != nil {
		s.mirrorFailed("CreatePost", models.SubjectPost, post.ID, err)
	}

	return post, s.publish(commitCtx, s.postPublisher, actor, postEvent(post, models.ActivityCreate))
}

// UpdatePost 只有作者可以修改，帖子不存在或已删除时返回 ErrPostNotFound
func (s *ContentService) UpdatePost(ctx context.Context, actor *models.Actor, postID int64, title, content string) (*models.Post, error) {
	if err := validateContent(content); err != nil {
		return nil, err
	}

	var post *models.Post
	now := s.now()
	err := s.store.Transaction(ctx, func(tx *gorm.DB) error {
		var err error
		post, err = s.ownedPost(tx, actor, postID)
		if err != nil {
			return err
		}
		if err := s.store.UpdatePostContent(tx, postID, title, content, now); err != nil {
			return errors.Wrap(err, "logic:UpdatePost: UpdatePostContent")
		}
		post.Title, post.Content, post.UpdatedAt = title, content, now
		return nil
	})
	if err != nil {
		return nil, err
	}

	commitCtx, cancel := s.afterCommit(ctx)
	defer cancel()

	if _, err := s.postMirror.Supersede(commitCtx, postID, title, content, now); err != nil {
		s.mirrorFailed("UpdatePost", models.SubjectPost, postID, err)
	}

	return post, s.publish(commitCtx, s.postPublisher, actor, postEvent(post, models.ActivityUpdate))
}

// DeletePost 软删除帖子和它的镜像文档，不物理删除
func (s *ContentService) DeletePost(ctx context.Context, actor *models.Actor, postID int64) error {
	var post *models.Post
	now := s.now()
	err := s.store.Transaction(ctx, func(tx *gorm.DB) error {
		var err error
		post, err = s.ownedPost(tx, actor, postID)
		if err != nil {
			return err
		}
		return errors.Wrap(s.store.SoftDeletePost(tx, postID, now), "logic:DeletePost: SoftDeletePost")
	})
	if err != nil {
		return err
	}

	commitCtx, cancel := s.afterCommit(ctx)
	defer cancel()

	if err := s.postMirror.SoftDelete(commitCtx, postID, now); err != nil {
		s.mirrorFailed("DeletePost", models.SubjectPost, postID, err)
	}

	return s.publish(commitCtx, s.postPublisher, actor, postEvent(post, models.ActivitySoftDelete))
}

// PostHistory 返回帖子所有的镜像版本，并发的相同查询会被合并
func (s *ContentService) PostHistory(ctx context.Context, postID int64) ([]*models.ContentDocument, error) {
	if _, err := s.store.SelectPostByIDNotDeleted(s.store.DB().WithContext(ctx), postID); err != nil {
		return nil, err
	}

	v, err := utils.SfDoWithTimeout(ctx, &s.sfGrp, "post:history:"+utils.FormatID(postID), s.cfg.HistoryTimeout, 100*time.Millisecond, func() (any, error) {
		return s.postMirror.History(context.WithoutCancel(ctx), postID)
	})
	if err != nil {
		return nil, errors.Wrap(err, "logic:PostHistory: History")
	}
	return v.([]*models.ContentDocument), nil
}

func (s *ContentService) ownedPost(tx *gorm.DB, actor *models.Actor, postID int64) (*models.Post, error) {
	post, err := s.store.SelectPostByIDNotDeleted(tx, postID)
	if err != nil {
		return nil, err
	}
	if post.AuthorID != actor.MemberID {
		return nil, dailyfeed.ErrForbidden
	}
	return post, nil
}

func postEvent(post *models.Post, kind models.ActivityKind) *models.ActivityEvent {
	return &models.ActivityEvent{
		SubjectType: models.SubjectPost,
		SubjectID:   post.ID,
		PostID:      post.ID,
		Kind:        kind,
	}
}
