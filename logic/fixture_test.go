package logic

import (
	"context"
	"dailyfeed/dao/memory"
	"dailyfeed/dao/mysql"
	"dailyfeed/models"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var fixedNow = time.Date(2026, 10, 19, 9, 30, 0, 0, time.UTC)

// recordingChannel 记录所有投递的事件，err 不为空时投递失败
type recordingChannel struct {
	mu     sync.Mutex
	err    error
	events []models.ActivityEvent
	tokens []string
}

func (c *recordingChannel) Name() string { return "recording" }

// Deliver 和真实的通道一样，ctx 结束后直接失败
func (c *recordingChannel) Deliver(ctx context.Context, event *models.ActivityEvent, token string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.events = append(c.events, *event)
	c.tokens = append(c.tokens, token)
	return c.err
}

func (c *recordingChannel) setErr(err error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.err = err
}

func (c *recordingChannel) kinds() []models.ActivityKind {
	c.mu.Lock()
	defer c.mu.Unlock()
	res := make([]models.ActivityKind, 0, len(c.events))
	for _, e := range c.events {
		res = append(res, e.Kind)
	}
	return res
}

type mockDeadLetters struct {
	mock.Mock
}

func (m *mockDeadLetters) Capture(ctx context.Context, record *models.DeadLetterRecord) error {
	args := m.Called(ctx, record)
	return args.Error(0)
}

func (m *mockDeadLetters) FindByRoutingKey(ctx context.Context, routingKey string) ([]*models.DeadLetterRecord, error) {
	args := m.Called(ctx, routingKey)
	return args.Get(0).([]*models.DeadLetterRecord), args.Error(1)
}

type fixture struct {
	svc          *ContentService
	store        *mysql.Store
	postDocs     *memory.DocumentStore
	commentDocs  *memory.DocumentStore
	postLikes    *memory.LikeStore
	commentLikes *memory.LikeStore
	deadLetters  *memory.DeadLetterStore
	channel      *recordingChannel
}

type fixtureOption func(*Config, *Dependencies)

func withDeadLetters(store DeadLetterStore) fixtureOption {
	return func(_ *Config, deps *Dependencies) {
		deps.PostPublisher = NewPublisher(deps.PostPublisher.channel, store)
		deps.CommentPublisher = NewPublisher(deps.CommentPublisher.channel, store)
	}
}

func withPostDocuments(store DocumentStore) fixtureOption {
	return func(_ *Config, deps *Dependencies) {
		deps.PostDocuments = store
	}
}

func withLostEventPolicy(policy string) fixtureOption {
	return func(cfg *Config, _ *Dependencies) {
		cfg.LostEventPolicy = policy
	}
}

func newTestDB(t *testing.T) *mysql.Store {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	store, err := mysql.NewStore(db)
	require.NoError(t, err)
	return store
}

func newFixture(t *testing.T, opts ...fixtureOption) *fixture {
	t.Helper()
	f := &fixture{
		store:        newTestDB(t),
		postDocs:     memory.NewDocumentStore(),
		commentDocs:  memory.NewDocumentStore(),
		postLikes:    memory.NewLikeStore(),
		commentLikes: memory.NewLikeStore(),
		deadLetters:  memory.NewDeadLetterStore(),
		channel:      &recordingChannel{},
	}

	deps := Dependencies{
		Store:            f.store,
		PostDocuments:    f.postDocs,
		CommentDocuments: f.commentDocs,
		PostLikes:        f.postLikes,
		CommentLikes:     f.commentLikes,
		Locker:           memory.NewKeyedLocker(),
		PostPublisher:    NewPublisher(f.channel, f.deadLetters),
		CommentPublisher: NewPublisher(f.channel, f.deadLetters),
	}
	cfg := Config{MaxCommentDepth: 2, MirrorLockTTL: time.Second}
	for _, opt := range opts {
		opt(&cfg, &deps)
	}

	f.svc = NewContentService(deps, cfg)
	f.svc.now = func() time.Time { return fixedNow }
	var seq int64
	f.svc.genID = func() int64 { return atomic.AddInt64(&seq, 1) }
	return f
}

func actor(id int64) *models.Actor {
	return &models.Actor{MemberID: id, DisplayName: "member", Token: "access-token"}
}

func withMaxDepth(depth int) fixtureOption {
	return func(cfg *Config, _ *Dependencies) {
		cfg.MaxCommentDepth = depth
	}
}
