package logic

import (
	"context"
	"dailyfeed/models"
	"time"
)

// DocumentStore 保存某一类实体的镜像文档，实现见 dao/mongodb 与 dao/memory
type DocumentStore interface {
	Insert(ctx context.Context, doc *models.ContentDocument) error
	// FindCurrent 没有当前且未删除的文档时返回 ErrMirrorNotFound
	FindCurrent(ctx context.Context, subjectPK int64) (*models.ContentDocument, error)
	// MarkSuperseded 以 version 为条件，文档已不是当前版本时返回 ErrMirrorConflict
	MarkSuperseded(ctx context.Context, subjectPK, version int64, at time.Time) error
	MarkDeleted(ctx context.Context, subjectPK int64, at time.Time) error
	History(ctx context.Context, subjectPK int64) ([]*models.ContentDocument, error)
}

type LikeStore interface {
	Exists(ctx context.Context, subjectPK, memberID int64) (bool, error)
	// Insert 重复时返回 ErrAlreadyLiked
	Insert(ctx context.Context, marker *models.LikeMarker) error
	// Delete 不存在时返回 ErrLikeNotFound
	Delete(ctx context.Context, subjectPK, memberID int64) error
}

type DeadLetterStore interface {
	Capture(ctx context.Context, record *models.DeadLetterRecord) error
	FindByRoutingKey(ctx context.Context, routingKey string) ([]*models.DeadLetterRecord, error)
}

// Locker 按资源名互斥，返回的函数用于释放
type Locker interface {
	Lock(ctx context.Context, name string, ttl time.Duration) (func(), error)
}

// Channel 是活动事件的投递通道：kafka 或同步 RPC
type Channel interface {
	Name() string
	Deliver(ctx context.Context, event *models.ActivityEvent, token string) error
}
