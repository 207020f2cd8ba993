package memory

import (
	"context"
	"dailyfeed/models"
	"sync"
)

type DeadLetterStore struct {
	mu      sync.Mutex
	records []*models.DeadLetterRecord
}

func NewDeadLetterStore() *DeadLetterStore {
	return &DeadLetterStore{}
}

func (s *DeadLetterStore) Capture(_ context.Context, record *models.DeadLetterRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	cp := *record
	s.records = append(s.records, &cp)
	return nil
}

func (s *DeadLetterStore) FindByRoutingKey(_ context.Context, routingKey string) ([]*models.DeadLetterRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	res := make([]*models.DeadLetterRecord, 0)
	for _, r := range s.records {
		if r.RoutingKey == routingKey {
			cp := *r
			res = append(res, &cp)
		}
	}
	return res, nil
}

func (s *DeadLetterStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.records)
}
