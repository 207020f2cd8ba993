package logic

import (
	"context"
	"dailyfeed/dao/memory"
	dailyfeed "dailyfeed/errors"
	"dailyfeed/models"
	"encoding/json"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestPublisher_States(t *testing.T) {
	ctx := context.Background()
	event := &models.ActivityEvent{MemberID: 1, SubjectType: models.SubjectPost, SubjectID: 2, PostID: 2, Kind: models.ActivityCreate}

	t.Run("delivered", func(t *testing.T) {
		dl := memory.NewDeadLetterStore()
		d, err := NewPublisher(&recordingChannel{}, dl).Publish(ctx, event, "")
		require.NoError(t, err)
		assert.Equal(t, DeliveryDelivered, d.State)
		assert.Zero(t, dl.Len())
	})

	t.Run("captured", func(t *testing.T) {
		dl := memory.NewDeadLetterStore()
		d, err := NewPublisher(&recordingChannel{err: errors.New("broker down")}, dl).Publish(ctx, event, "")
		require.NoError(t, err)
		assert.Equal(t, DeliveryCaptured, d.State)
		assert.ErrorIs(t, d.Cause, dailyfeed.ErrPublishFailed)
		assert.Contains(t, d.Cause.Error(), "broker down")
		assert.Equal(t, 1, dl.Len())
	})

	t.Run("lost", func(t *testing.T) {
		dl := new(mockDeadLetters)
		dl.On("Capture", mock.Anything, mock.Anything).Return(errors.New("mongo down")).Once()
		d, err := NewPublisher(&recordingChannel{err: errors.New("broker down")}, dl).Publish(ctx, event, "")
		assert.ErrorIs(t, err, dailyfeed.ErrPublishAndFallbackFailed)
		assert.Equal(t, DeliveryLost, d.State)
		dl.AssertExpectations(t)
	})

	t.Run("rejected", func(t *testing.T) {
		dl := memory.NewDeadLetterStore()
		d, err := NewPublisher(&recordingChannel{err: dailyfeed.ErrTooManyRequests}, dl).Publish(ctx, event, "")
		assert.ErrorIs(t, err, dailyfeed.ErrTooManyRequests)
		assert.Equal(t, DeliveryRejected, d.State)
		assert.Zero(t, dl.Len())
	})
}

func TestCreatePost_DeadLetterCapture(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.channel.setErr(errors.New("broker unavailable"))

	post, err := f.svc.CreatePost(ctx, actor(7), "t", "x")
	require.NoError(t, err)

	records, err := f.deadLetters.FindByRoutingKey(ctx, models.CategoryPost)
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "recording", records[0].Channel)
	assert.False(t, records[0].IsCompleted)

	var replayed models.ActivityEvent
	require.NoError(t, json.Unmarshal([]byte(records[0].Payload), &replayed))
	require.Len(t, f.channel.events, 1)
	assert.Equal(t, f.channel.events[0], replayed)
	assert.Equal(t, post.ID, replayed.SubjectID)
	assert.Equal(t, models.ActivityCreate, replayed.Kind)
}

func TestCreatePost_EventLost(t *testing.T) {
	dl := new(mockDeadLetters)
	dl.On("Capture", mock.Anything, mock.Anything).Return(errors.New("mongo down"))

	f := newFixture(t, withDeadLetters(dl))
	ctx := context.Background()
	f.channel.setErr(errors.New("broker unavailable"))

	post, err := f.svc.CreatePost(ctx, actor(7), "t", "x")
	assert.ErrorIs(t, err, dailyfeed.ErrPublishAndFallbackFailed)
	require.NotNil(t, post)

	_, err = f.store.SelectPostByIDNotDeleted(f.store.DB(), post.ID)
	assert.NoError(t, err)
	doc, err := f.postDocs.FindCurrent(ctx, post.ID)
	require.NoError(t, err)
	assert.Equal(t, "x", doc.Content)
	dl.AssertNumberOfCalls(t, "Capture", 1)
}

func TestCreatePost_EventLostLogged(t *testing.T) {
	dl := new(mockDeadLetters)
	dl.On("Capture", mock.Anything, mock.Anything).Return(errors.New("mongo down"))

	f := newFixture(t, withDeadLetters(dl), withLostEventPolicy(LostEventLog))
	f.channel.setErr(errors.New("broker unavailable"))

	post, err := f.svc.CreatePost(context.Background(), actor(7), "t", "x")
	require.NoError(t, err)
	assert.NotZero(t, post.ID)
}

func TestCreateComment_TooManyRequests(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	post, err := f.svc.CreatePost(ctx, actor(1), "t", "x")
	require.NoError(t, err)

	f.channel.setErr(errors.Wrap(dailyfeed.ErrTooManyRequests, "activityrpc: status 429"))
	comment, err := f.svc.CreateComment(ctx, actor(2), post.ID, "hi", 0)
	assert.ErrorIs(t, err, dailyfeed.ErrTooManyRequests)
	require.NotNil(t, comment)

	_, err = f.store.SelectCommentByIDNotDeleted(f.store.DB(), comment.ID)
	assert.NoError(t, err)
	assert.Zero(t, f.deadLetters.Len())
}
