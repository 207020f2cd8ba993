package memory

import (
	"context"
	dailyfeed "dailyfeed/errors"
	"dailyfeed/models"
	"sort"
	"sync"
	"time"

	"github.com/pkg/errors"
)

// DocumentStore 是镜像文档的内存实现，与 mongo 实现语义一致
type DocumentStore struct {
	mu   sync.RWMutex
	docs map[int64][]*models.ContentDocument // subject_pk -> 所有版本
}

func NewDocumentStore() *DocumentStore {
	return &DocumentStore{docs: make(map[int64][]*models.ContentDocument)}
}

func (s *DocumentStore) Insert(_ context.Context, doc *models.ContentDocument) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	// 与 mongo 中 (subject_pk, version) 唯一索引一致
	for _, d := range s.docs[doc.SubjectPK] {
		if d.Version == doc.Version {
			return errors.Wrapf(dailyfeed.ErrMirrorConflict, "memory:Insert: subject %d version %d exists", doc.SubjectPK, doc.Version)
		}
	}
	s.docs[doc.SubjectPK] = append(s.docs[doc.SubjectPK], doc.Clone())
	return nil
}

func (s *DocumentStore) FindCurrent(_ context.Context, subjectPK int64) (*models.ContentDocument, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, d := range s.docs[subjectPK] {
		if d.IsCurrent && !d.IsDeleted {
			return d.Clone(), nil
		}
	}
	return nil, dailyfeed.ErrMirrorNotFound
}

func (s *DocumentStore) MarkSuperseded(_ context.Context, subjectPK, version int64, at time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, d := range s.docs[subjectPK] {
		if d.Version == version && d.IsCurrent && !d.IsDeleted {
			d.IsCurrent = false
			d.IsDeleted = true
			d.UpdatedAt = at
			return nil
		}
	}
	return dailyfeed.ErrMirrorConflict
}

func (s *DocumentStore) MarkDeleted(_ context.Context, subjectPK int64, at time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, d := range s.docs[subjectPK] {
		if d.IsCurrent && !d.IsDeleted {
			d.IsDeleted = true
			d.UpdatedAt = at
			return nil
		}
	}
	return dailyfeed.ErrMirrorNotFound
}

func (s *DocumentStore) History(_ context.Context, subjectPK int64) ([]*models.ContentDocument, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	res := make([]*models.ContentDocument, 0, len(s.docs[subjectPK]))
	for _, d := range s.docs[subjectPK] {
		res = append(res, d.Clone())
	}
	sort.Slice(res, func(i, j int) bool { return res[i].Version < res[j].Version })
	return res, nil
}
