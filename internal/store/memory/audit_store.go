package memory

import (
	"context"
	"sync"
	"time"

	"tasktrack/internal/models"
	"tasktrack/internal/store"
)

var _ store.AuditStore = (*AuditStore)(nil)

// AuditStore keeps audit records in append order, so slice order is id order.
type AuditStore struct {
	mu     sync.RWMutex
	nextID int64
	logs   []models.AuditLog
	now    func() time.Time
}

func NewAuditStore() *AuditStore {
	return &AuditStore{now: func() time.Time { return time.Now().UTC() }}
}

func (s *AuditStore) AppendAudit(ctx context.Context, entry *models.AuditLog) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.nextID++
	entry.ID = s.nextID
	entry.CreatedAt = s.now()
	s.logs = append(s.logs, *entry)
	return nil
}

func (s *AuditStore) ListAudit(ctx context.Context, q store.AuditQuery) ([]models.AuditLog, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := []models.AuditLog{}
	for i := len(s.logs) - 1; i >= 0; i-- {
		l := s.logs[i]
		if l.OrgID != q.OrgID {
			continue
		}
		if q.AfterID > 0 && l.ID >= q.AfterID {
			continue
		}
		out = append(out, l)
		if q.Limit > 0 && len(out) == q.Limit {
			break
		}
	}
	return out, nil
}
