package logic

import (
	"context"
	"dailyfeed/dao/memory"
	dailyfeed "dailyfeed/errors"
	"dailyfeed/models"
	"testing"
	"time"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// disconnectingDocuments 在提交后的第一次镜像访问时取消请求的 ctx，模拟客户端断开
type disconnectingDocuments struct {
	*memory.DocumentStore
	cancel context.CancelFunc
}

func (d *disconnectingDocuments) disconnect(ctx context.Context) error {
	if d.cancel != nil {
		d.cancel()
	}
	return ctx.Err()
}

func (d *disconnectingDocuments) Insert(ctx context.Context, doc *models.ContentDocument) error {
	if err := d.disconnect(ctx); err != nil {
		return err
	}
	return d.DocumentStore.Insert(ctx, doc)
}

func (d *disconnectingDocuments) FindCurrent(ctx context.Context, subjectPK int64) (*models.ContentDocument, error) {
	if err := d.disconnect(ctx); err != nil {
		return nil, err
	}
	return d.DocumentStore.FindCurrent(ctx, subjectPK)
}

func (d *disconnectingDocuments) MarkDeleted(ctx context.Context, subjectPK int64, at time.Time) error {
	if err := d.disconnect(ctx); err != nil {
		return err
	}
	return d.DocumentStore.MarkDeleted(ctx, subjectPK, at)
}

// ctxDeadLetters 和 mongo 实现一样，ctx 结束后写入失败
type ctxDeadLetters struct {
	*memory.DeadLetterStore
}

func (d ctxDeadLetters) Capture(ctx context.Context, record *models.DeadLetterRecord) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return d.DeadLetterStore.Capture(ctx, record)
}

func TestPostMutations_SurviveClientDisconnect(t *testing.T) {
	docs := &disconnectingDocuments{DocumentStore: memory.NewDocumentStore()}
	dl := ctxDeadLetters{DeadLetterStore: memory.NewDeadLetterStore()}
	f := newFixture(t, withPostDocuments(docs), withDeadLetters(dl))

	request := func() context.Context {
		ctx, cancel := context.WithCancel(context.Background())
		docs.cancel = cancel
		return ctx
	}

	ctx := request()
	post, err := f.svc.CreatePost(ctx, actor(1), "t", "x")
	require.NoError(t, err)
	require.ErrorIs(t, ctx.Err(), context.Canceled)

	cur, err := docs.DocumentStore.FindCurrent(context.Background(), post.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), cur.Version)

	_, err = f.svc.UpdatePost(request(), actor(1), post.ID, "t", "y")
	require.NoError(t, err)
	cur, err = docs.DocumentStore.FindCurrent(context.Background(), post.ID)
	require.NoError(t, err)
	assert.Equal(t, "y", cur.Content)
	assert.Equal(t, int64(2), cur.Version)

	require.NoError(t, f.svc.DeletePost(request(), actor(1), post.ID))
	_, err = docs.DocumentStore.FindCurrent(context.Background(), post.ID)
	assert.ErrorIs(t, err, dailyfeed.ErrMirrorNotFound)

	assert.Equal(t, []models.ActivityKind{models.ActivityCreate, models.ActivityUpdate, models.ActivitySoftDelete}, f.channel.kinds())
	assert.Zero(t, dl.Len())
}

func TestCapture_SurvivesClientDisconnect(t *testing.T) {
	docs := &disconnectingDocuments{DocumentStore: memory.NewDocumentStore()}
	dl := ctxDeadLetters{DeadLetterStore: memory.NewDeadLetterStore()}
	f := newFixture(t, withPostDocuments(docs), withDeadLetters(dl))
	f.channel.setErr(errors.New("broker unavailable"))

	ctx, cancel := context.WithCancel(context.Background())
	docs.cancel = cancel

	post, err := f.svc.CreatePost(ctx, actor(1), "t", "x")
	require.NoError(t, err)

	records, err := dl.FindByRoutingKey(context.Background(), models.CategoryPost)
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, post.ID, f.channel.events[0].SubjectID)
}
