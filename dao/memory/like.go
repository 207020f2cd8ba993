package memory

import (
	"context"
	dailyfeed "dailyfeed/errors"
	"dailyfeed/models"
	"sync"
)

type likeKey struct {
	subjectPK int64
	memberID  int64
}

type LikeStore struct {
	mu      sync.Mutex
	markers map[likeKey]*models.LikeMarker
}

func NewLikeStore() *LikeStore {
	return &LikeStore{markers: make(map[likeKey]*models.LikeMarker)}
}

func (s *LikeStore) Exists(_ context.Context, subjectPK, memberID int64) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, ok := s.markers[likeKey{subjectPK, memberID}]
	return ok, nil
}

// Insert 相同 (subject, member) 已存在时返回 ErrAlreadyLiked
func (s *LikeStore) Insert(_ context.Context, marker *models.LikeMarker) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	key := likeKey{marker.SubjectPK, marker.MemberID}
	if _, ok := s.markers[key]; ok {
		return dailyfeed.ErrAlreadyLiked
	}
	cp := *marker
	s.markers[key] = &cp
	return nil
}

func (s *LikeStore) Delete(_ context.Context, subjectPK, memberID int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	key := likeKey{subjectPK, memberID}
	if _, ok := s.markers[key]; !ok {
		return dailyfeed.ErrLikeNotFound
	}
	delete(s.markers, key)
	return nil
}
