package mysql

import (
	"context"
	dailyfeed "dailyfeed/errors"
	"dailyfeed/models"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	s, err := NewStore(db)
	require.NoError(t, err)
	return s
}

func ptr(v int64) *int64 { return &v }

func TestStore_PostLifecycle(t *testing.T) {
	s := newTestStore(t)
	now := time.Now()

	require.NoError(t, s.CreatePost(nil, &models.Post{ID: 1, AuthorID: 10, Title: "t", Content: "hello"}))

	post, err := s.SelectPostByIDNotDeleted(nil, 1)
	require.NoError(t, err)
	assert.Equal(t, "hello", post.Content)

	require.NoError(t, s.UpdatePostContent(nil, 1, "t2", "hello v2", now))
	post, err = s.SelectPostByIDNotDeleted(nil, 1)
	require.NoError(t, err)
	assert.Equal(t, "t2", post.Title)
	assert.Equal(t, "hello v2", post.Content)

	require.NoError(t, s.SoftDeletePost(nil, 1, now))
	_, err = s.SelectPostByIDNotDeleted(nil, 1)
	assert.ErrorIs(t, err, dailyfeed.ErrPostNotFound)

	// 行仍然存在
	var count int64
	s.DB().Model(&models.Post{}).Where("id = ?", 1).Count(&count)
	assert.Equal(t, int64(1), count)

	assert.ErrorIs(t, s.SoftDeletePost(nil, 1, now), dailyfeed.ErrPostNotFound)
	assert.ErrorIs(t, s.UpdatePostContent(nil, 1, "x", "x", now), dailyfeed.ErrPostNotFound)
}

func TestStore_PostLikeCountNeverNegative(t *testing.T) {
	s := newTestStore(t)
	require.NoError(t, s.CreatePost(nil, &models.Post{ID: 1, AuthorID: 10, Title: "t", Content: "c"}))

	require.NoError(t, s.IncrPostLikeCount(nil, 1, 1))
	require.NoError(t, s.IncrPostLikeCount(nil, 1, -1))
	require.NoError(t, s.IncrPostLikeCount(nil, 1, -1))

	post, err := s.SelectPostByIDNotDeleted(nil, 1)
	require.NoError(t, err)
	assert.Equal(t, int64(0), post.LikeCount)
}

func TestStore_TransactionRollback(t *testing.T) {
	s := newTestStore(t)

	err := s.Transaction(context.Background(), func(tx *gorm.DB) error {
		if err := s.CreatePost(tx, &models.Post{ID: 1, AuthorID: 10, Title: "t", Content: "c"}); err != nil {
			return err
		}
		return dailyfeed.ErrForbidden
	})
	assert.ErrorIs(t, err, dailyfeed.ErrForbidden)

	_, err = s.SelectPostByIDNotDeleted(nil, 1)
	assert.ErrorIs(t, err, dailyfeed.ErrPostNotFound)
}

func TestStore_SoftDeleteCommentCascade(t *testing.T) {
	s := newTestStore(t)
	now := time.Now()

	// c1 -> c2 -> c3, c1 -> c4, c5 是另一个根评论
	comments := []*models.Comment{
		{ID: 1, PostID: 100, AuthorID: 1, Depth: 0, Content: "c1"},
		{ID: 2, PostID: 100, AuthorID: 1, ParentID: ptr(1), Depth: 1, Content: "c2"},
		{ID: 3, PostID: 100, AuthorID: 1, ParentID: ptr(2), Depth: 2, Content: "c3"},
		{ID: 4, PostID: 100, AuthorID: 1, ParentID: ptr(1), Depth: 1, Content: "c4"},
		{ID: 5, PostID: 100, AuthorID: 1, Depth: 0, Content: "c5"},
	}
	for _, c := range comments {
		require.NoError(t, s.CreateComment(nil, c))
	}

	deleted, err := s.SoftDeleteCommentCascade(nil, 1, 3, now)
	require.NoError(t, err)
	assert.ElementsMatch(t, []int64{1, 2, 3, 4}, deleted)

	for _, id := range []int64{1, 2, 3, 4} {
		_, err := s.SelectCommentByIDNotDeleted(nil, id)
		assert.ErrorIs(t, err, dailyfeed.ErrCommentNotFound)
	}
	_, err = s.SelectCommentByIDNotDeleted(nil, 5)
	assert.NoError(t, err)

	var rows int64
	s.DB().Model(&models.Comment{}).Count(&rows)
	assert.Equal(t, int64(5), rows)

	_, err = s.SoftDeleteCommentCascade(nil, 1, 3, now)
	assert.ErrorIs(t, err, dailyfeed.ErrCommentNotFound)
}

func TestStore_SoftDeleteCommentCascadeBoundedByDepth(t *testing.T) {
	s := newTestStore(t)

	require.NoError(t, s.CreateComment(nil, &models.Comment{ID: 1, PostID: 100, AuthorID: 1, Content: "c1"}))
	require.NoError(t, s.CreateComment(nil, &models.Comment{ID: 2, PostID: 100, AuthorID: 1, ParentID: ptr(1), Depth: 1, Content: "c2"}))
	require.NoError(t, s.CreateComment(nil, &models.Comment{ID: 3, PostID: 100, AuthorID: 1, ParentID: ptr(2), Depth: 2, Content: "c3"}))

	// maxDepth = 0 时只向下一层
	deleted, err := s.SoftDeleteCommentCascade(nil, 1, 0, time.Now())
	require.NoError(t, err)
	assert.ElementsMatch(t, []int64{1, 2}, deleted)
}

func TestStore_CommentUpdateAndLikes(t *testing.T) {
	s := newTestStore(t)
	now := time.Now()
	require.NoError(t, s.CreateComment(nil, &models.Comment{ID: 1, PostID: 100, AuthorID: 1, Content: "c1"}))

	require.NoError(t, s.UpdateCommentContent(nil, 1, "edited", now))
	require.NoError(t, s.IncrCommentLikeCount(nil, 1, 1))
	require.NoError(t, s.IncrCommentLikeCount(nil, 1, 1))
	require.NoError(t, s.IncrCommentLikeCount(nil, 1, -1))

	c, err := s.SelectCommentByIDNotDeleted(nil, 1)
	require.NoError(t, err)
	assert.Equal(t, "edited", c.Content)
	assert.Equal(t, int64(1), c.LikeCount)

	assert.ErrorIs(t, s.UpdateCommentContent(nil, 99, "x", now), dailyfeed.ErrCommentNotFound)
}
