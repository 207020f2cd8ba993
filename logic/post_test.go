package logic

import (
	"context"
	dailyfeed "dailyfeed/errors"
	"dailyfeed/models"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func currentDocs(t *testing.T, docs []*models.ContentDocument) []*models.ContentDocument {
	t.Helper()
	var res []*models.ContentDocument
	for _, d := range docs {
		if d.IsCurrent && !d.IsDeleted {
			res = append(res, d)
		}
	}
	return res
}

func TestCreateThenUpdatePost(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	post, err := f.svc.CreatePost(ctx, actor(7), "A", "x")
	require.NoError(t, err)
	assert.Equal(t, int64(7), post.AuthorID)

	doc, err := f.postDocs.FindCurrent(ctx, post.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), doc.Version)
	assert.Equal(t, "x", doc.Content)

	updated, err := f.svc.UpdatePost(ctx, actor(7), post.ID, "A", "y")
	require.NoError(t, err)
	assert.Equal(t, "y", updated.Content)

	docs, err := f.postDocs.History(ctx, post.ID)
	require.NoError(t, err)
	require.Len(t, docs, 2)
	assert.Equal(t, "x", docs[0].Content)
	assert.False(t, docs[0].IsCurrent)
	assert.True(t, docs[0].IsDeleted)
	assert.Equal(t, int64(2), docs[1].Version)
	assert.Equal(t, "y", docs[1].Content)
	assert.True(t, docs[1].IsCurrent)

	stored, err := f.store.SelectPostByIDNotDeleted(f.store.DB(), post.ID)
	require.NoError(t, err)
	assert.Equal(t, "y", stored.Content)

	assert.Equal(t, []models.ActivityKind{models.ActivityCreate, models.ActivityUpdate}, f.channel.kinds())
	for _, e := range f.channel.events {
		assert.Equal(t, int64(7), e.MemberID)
		assert.Equal(t, post.ID, e.SubjectID)
		assert.Equal(t, post.ID, e.PostID)
		assert.Equal(t, models.SubjectPost, e.SubjectType)
		assert.Equal(t, fixedNow, e.OccurredAt)
	}
	assert.Equal(t, []string{"access-token", "access-token"}, f.channel.tokens)
	assert.Zero(t, f.deadLetters.Len())
}

func TestUpdatePost_OneCurrentVersion(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	post, err := f.svc.CreatePost(ctx, actor(1), "t", "v1")
	require.NoError(t, err)
	for _, c := range []string{"v2", "v3", "v4"} {
		_, err := f.svc.UpdatePost(ctx, actor(1), post.ID, "t", c)
		require.NoError(t, err)
	}

	docs, err := f.postDocs.History(ctx, post.ID)
	require.NoError(t, err)
	require.Len(t, docs, 4)
	for i, d := range docs {
		assert.Equal(t, int64(i+1), d.Version)
	}
	cur := currentDocs(t, docs)
	require.Len(t, cur, 1)
	assert.Equal(t, "v4", cur[0].Content)
}

func TestUpdatePost_Rejected(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	post, err := f.svc.CreatePost(ctx, actor(1), "t", "x")
	require.NoError(t, err)

	_, err = f.svc.UpdatePost(ctx, actor(2), post.ID, "t", "y")
	assert.ErrorIs(t, err, dailyfeed.ErrForbidden)

	_, err = f.svc.UpdatePost(ctx, actor(1), 404, "t", "y")
	assert.ErrorIs(t, err, dailyfeed.ErrPostNotFound)

	_, err = f.svc.UpdatePost(ctx, actor(1), post.ID, "t", "   ")
	assert.ErrorIs(t, err, dailyfeed.ErrInvalidParam)

	docs, err := f.postDocs.History(ctx, post.ID)
	require.NoError(t, err)
	assert.Len(t, docs, 1)
	assert.Equal(t, []models.ActivityKind{models.ActivityCreate}, f.channel.kinds())
}

func TestDeletePost(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	post, err := f.svc.CreatePost(ctx, actor(1), "t", "x")
	require.NoError(t, err)

	assert.ErrorIs(t, f.svc.DeletePost(ctx, actor(2), post.ID), dailyfeed.ErrForbidden)
	require.NoError(t, f.svc.DeletePost(ctx, actor(1), post.ID))

	_, err = f.store.SelectPostByIDNotDeleted(f.store.DB(), post.ID)
	assert.ErrorIs(t, err, dailyfeed.ErrPostNotFound)
	_, err = f.postDocs.FindCurrent(ctx, post.ID)
	assert.ErrorIs(t, err, dailyfeed.ErrMirrorNotFound)

	_, err = f.svc.UpdatePost(ctx, actor(1), post.ID, "t", "y")
	assert.ErrorIs(t, err, dailyfeed.ErrPostNotFound)
	assert.ErrorIs(t, f.svc.DeletePost(ctx, actor(1), post.ID), dailyfeed.ErrPostNotFound)

	assert.Equal(t, []models.ActivityKind{models.ActivityCreate, models.ActivitySoftDelete}, f.channel.kinds())
}

func TestUpdatePost_MirrorMissing(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	post, err := f.svc.CreatePost(ctx, actor(1), "t", "x")
	require.NoError(t, err)
	require.NoError(t, f.postDocs.MarkDeleted(ctx, post.ID, fixedNow))

	updated, err := f.svc.UpdatePost(ctx, actor(1), post.ID, "t", "y")
	require.NoError(t, err)
	assert.Equal(t, "y", updated.Content)

	stored, err := f.store.SelectPostByIDNotDeleted(f.store.DB(), post.ID)
	require.NoError(t, err)
	assert.Equal(t, "y", stored.Content)
	assert.Equal(t, []models.ActivityKind{models.ActivityCreate, models.ActivityUpdate}, f.channel.kinds())
}

func TestPostHistory(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	post, err := f.svc.CreatePost(ctx, actor(1), "t", "x")
	require.NoError(t, err)
	_, err = f.svc.UpdatePost(ctx, actor(1), post.ID, "t", "y")
	require.NoError(t, err)

	docs, err := f.svc.PostHistory(ctx, post.ID)
	require.NoError(t, err)
	require.Len(t, docs, 2)
	assert.Equal(t, "y", docs[1].Content)

	_, err = f.svc.PostHistory(ctx, 404)
	assert.ErrorIs(t, err, dailyfeed.ErrPostNotFound)
}
