package logic

import (
	"context"
	"dailyfeed/dao/mysql"
	dailyfeed "dailyfeed/errors"
	"dailyfeed/internal/utils"
	"dailyfeed/logger"
	"dailyfeed/models"
	"strings"
	"time"

	"github.com/pkg/errors"
	"golang.org/x/sync/singleflight"
)

// 事件丢失（通道和死信都失败）时的处理策略
const (
	LostEventFail = "fail" // 返回 ErrPublishAndFallbackFailed，已提交的数据不回滚
	LostEventLog  = "log"  // 只记录错误日志
)

type Config struct {
	MaxCommentDepth int
	LostEventPolicy string
	MirrorLockTTL   time.Duration
	HistoryTimeout  time.Duration
	// AfterCommitTimeout 限制提交之后镜像写入和事件投递的总时长
	AfterCommitTimeout time.Duration
}

type Dependencies struct {
	Store            *mysql.Store
	PostDocuments    DocumentStore
	CommentDocuments DocumentStore
	PostLikes        LikeStore
	CommentLikes     LikeStore
	Locker           Locker
	PostPublisher    *Publisher
	CommentPublisher *Publisher
}

// ContentService 编排帖子、评论的变更：
// 关系库事务 -> 提交 -> 镜像文档 -> 活动事件
type ContentService struct {
	store            *mysql.Store
	postMirror       *Mirror
	commentMirror    *Mirror
	postLikes        LikeStore
	commentLikes     LikeStore
	tree             *CommentTree
	postPublisher    *Publisher
	commentPublisher *Publisher
	cfg              Config

	sfGrp singleflight.Group
	now   func() time.Time
	genID func() int64
}

func NewContentService(deps Dependencies, cfg Config) *ContentService {
	if cfg.LostEventPolicy != LostEventLog {
		cfg.LostEventPolicy = LostEventFail
	}
	if cfg.HistoryTimeout <= 0 {
		cfg.HistoryTimeout = 3 * time.Second
	}
	if cfg.AfterCommitTimeout <= 0 {
		cfg.AfterCommitTimeout = 10 * time.Second
	}
	return &ContentService{
		store:            deps.Store,
		postMirror:       NewMirror(string(models.SubjectPost), deps.PostDocuments, deps.Locker, cfg.MirrorLockTTL),
		commentMirror:    NewMirror(string(models.SubjectComment), deps.CommentDocuments, deps.Locker, cfg.MirrorLockTTL),
		postLikes:        deps.PostLikes,
		commentLikes:     deps.CommentLikes,
		tree:             NewCommentTree(deps.Store, cfg.MaxCommentDepth),
		postPublisher:    deps.PostPublisher,
		commentPublisher: deps.CommentPublisher,
		cfg:              cfg,
		now:              time.Now,
		genID:            utils.GenSnowflakeID,
	}
}

// afterCommit 关系库提交之后，镜像和投递必须执行完，不能随请求（客户端断开）一起取消
func (s *ContentService) afterCommit(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.WithoutCancel(ctx), s.cfg.AfterCommitTimeout)
}

// mirrorFailed 关系库已经提交，镜像失败只记录，不影响本次操作的结果
func (s *ContentService) mirrorFailed(op string, subjectType models.SubjectType, id int64, err error) {
	if errors.Is(err, dailyfeed.ErrMirrorNotFound) {
		logger.Errorf("%s: mirror of %s(%d) diverged from relational store: %v", op, subjectType, id, err)
		return
	}
	logger.Errorf("%s: mirror write of %s(%d) failed", op, subjectType, id)
	logger.ErrorWithStack(err)
}

// publish 按策略处理投递结果，返回值直接作为变更操作的错误
func (s *ContentService) publish(ctx context.Context, p *Publisher, actor *models.Actor, event *models.ActivityEvent) error {
	event.MemberID = actor.MemberID
	event.OccurredAt = s.now()

	d, err := p.Publish(ctx, event, actor.Token)
	if err == nil {
		if d.State == DeliveryCaptured {
			logger.Infof("activity %s %s(%d) captured to dead letter", event.Kind, event.SubjectType, event.SubjectID)
		}
		return nil
	}
	if errors.Is(err, dailyfeed.ErrTooManyRequests) {
		return err
	}

	// 事件已丢失
	logger.Errorf("activity %s %s(%d) lost: %v", event.Kind, event.SubjectType, event.SubjectID, err)
	if s.cfg.LostEventPolicy == LostEventLog {
		return nil
	}
	return err
}

func validateContent(content string) error {
	if strings.TrimSpace(content) == "" {
		return errors.Wrap(dailyfeed.ErrInvalidParam, "content is empty")
	}
	return nil
}
