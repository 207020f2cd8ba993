package logic

import (
	"context"
	"dailyfeed/models"
	"strconv"
	"time"

	"github.com/pkg/errors"
)

// Mirror 维护实体正文的只追加版本历史
//
// 对同一实体的 Supersede / SoftDelete 通过 locker 串行，MarkSuperseded 的 version 条件兜底
type Mirror struct {
	name    string
	store   DocumentStore
	locker  Locker
	lockTTL time.Duration
}

func NewMirror(name string, store DocumentStore, locker Locker, lockTTL time.Duration) *Mirror {
	if lockTTL <= 0 {
		lockTTL = 5 * time.Second
	}
	return &Mirror{name: name, store: store, locker: locker, lockTTL: lockTTL}
}

// Insert 写入第一个版本
func (m *Mirror) Insert(ctx context.Context, doc *models.ContentDocument) error {
	doc.Version = 1
	doc.IsCurrent = true
	doc.IsDeleted = false
	return errors.Wrap(m.store.Insert(ctx, doc), "logic:Mirror.Insert: Insert")
}

// Supersede 把当前版本标记为非当前并删除，再追加 version+1 的新版本
func (m *Mirror) Supersede(ctx context.Context, subjectPK int64, title, content string, updatedAt time.Time) (*models.ContentDocument, error) {
	unlock, err := m.lock(ctx, subjectPK)
	if err != nil {
		return nil, err
	}
	defer unlock()

	cur, err := m.store.FindCurrent(ctx, subjectPK)
	if err != nil {
		return nil, errors.Wrap(err, "logic:Mirror.Supersede: FindCurrent")
	}
	if err := m.store.MarkSuperseded(ctx, subjectPK, cur.Version, updatedAt); err != nil {
		return nil, errors.Wrap(err, "logic:Mirror.Supersede: MarkSuperseded")
	}

	next := cur.Clone()
	next.Title = title
	next.Content = content
	next.UpdatedAt = updatedAt
	next.Version = cur.Version + 1
	next.IsCurrent = true
	next.IsDeleted = false
	if err := m.store.Insert(ctx, next); err != nil {
		return nil, errors.Wrap(err, "logic:Mirror.Supersede: Insert")
	}
	return next, nil
}

// SoftDelete 只标记删除，不产生新版本
func (m *Mirror) SoftDelete(ctx context.Context, subjectPK int64, at time.Time) error {
	unlock, err := m.lock(ctx, subjectPK)
	if err != nil {
		return err
	}
	defer unlock()

	return errors.Wrap(m.store.MarkDeleted(ctx, subjectPK, at), "logic:Mirror.SoftDelete: MarkDeleted")
}

func (m *Mirror) Current(ctx context.Context, subjectPK int64) (*models.ContentDocument, error) {
	return m.store.FindCurrent(ctx, subjectPK)
}

func (m *Mirror) History(ctx context.Context, subjectPK int64) ([]*models.ContentDocument, error) {
	return m.store.History(ctx, subjectPK)
}

func (m *Mirror) lock(ctx context.Context, subjectPK int64) (func(), error) {
	lockCtx, cancel := context.WithTimeout(ctx, m.lockTTL)
	defer cancel()

	unlock, err := m.locker.Lock(lockCtx, m.name+":"+strconv.FormatInt(subjectPK, 10), m.lockTTL)
	if err != nil {
		return nil, errors.Wrap(err, "logic:Mirror.lock: Lock")
	}
	return unlock, nil
}
