package store

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"gorm.io/gorm"

	"tasktrack/internal/models"
)

var (
	_ TaskStore  = (*Gorm)(nil)
	_ AuditStore = (*Gorm)(nil)
	_ UserStore  = (*Gorm)(nil)
)

// Gorm implements the stores on a relational database. Audit appends are
// serialized so the timestamp is taken in the same step the id is assigned.
type Gorm struct {
	DB *gorm.DB

	auditMu sync.Mutex
	now     func() time.Time
}

func NewGorm(db *gorm.DB) *Gorm {
	return &Gorm{DB: db, now: func() time.Time { return time.Now().UTC() }}
}

func (s *Gorm) CreateTask(ctx context.Context, task *models.Task) error {
	if err := s.DB.WithContext(ctx).Create(task).Error; err != nil {
		return fmt.Errorf("create task: %w", err)
	}
	return nil
}

func (s *Gorm) ListTasks(ctx context.Context, orgID int64) ([]models.Task, error) {
	var tasks []models.Task
	err := s.DB.WithContext(ctx).
		Where("org_id = ?", orgID).
		Order("id ASC").
		Find(&tasks).Error
	if err != nil {
		return nil, fmt.Errorf("list tasks: %w", err)
	}
	return tasks, nil
}

func (s *Gorm) FindTask(ctx context.Context, id, orgID int64) (*models.Task, error) {
	var task models.Task
	err := s.DB.WithContext(ctx).
		Where("id = ? AND org_id = ?", id, orgID).
		First(&task).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("find task: %w", err)
	}
	return &task, nil
}

func (s *Gorm) UpdateTask(ctx context.Context, id, orgID int64, fields TaskFields) (int64, error) {
	cols := fields.Columns()
	if len(cols) == 0 {
		return 0, nil
	}
	res := s.DB.WithContext(ctx).
		Model(&models.Task{}).
		Where("id = ? AND org_id = ?", id, orgID).
		Updates(cols)
	if res.Error != nil {
		return 0, fmt.Errorf("update task: %w", res.Error)
	}
	return res.RowsAffected, nil
}

func (s *Gorm) DeleteTask(ctx context.Context, id, orgID int64) (int64, error) {
	res := s.DB.WithContext(ctx).
		Where("id = ? AND org_id = ?", id, orgID).
		Delete(&models.Task{})
	if res.Error != nil {
		return 0, fmt.Errorf("delete task: %w", res.Error)
	}
	return res.RowsAffected, nil
}

func (s *Gorm) AppendAudit(ctx context.Context, entry *models.AuditLog) error {
	s.auditMu.Lock()
	defer s.auditMu.Unlock()

	entry.CreatedAt = s.now()
	if err := s.DB.WithContext(ctx).Create(entry).Error; err != nil {
		return fmt.Errorf("append audit: %w", err)
	}
	return nil
}

func (s *Gorm) ListAudit(ctx context.Context, q AuditQuery) ([]models.AuditLog, error) {
	query := s.DB.WithContext(ctx).
		Model(&models.AuditLog{}).
		Where("org_id = ?", q.OrgID).
		Order("id DESC")
	if q.AfterID > 0 {
		query = query.Where("id < ?", q.AfterID)
	}
	if q.Limit > 0 {
		query = query.Limit(q.Limit)
	}

	var logs []models.AuditLog
	if err := query.Find(&logs).Error; err != nil {
		return nil, fmt.Errorf("list audit: %w", err)
	}
	return logs, nil
}

func (s *Gorm) FindUser(ctx context.Context, id int64) (*models.User, error) {
	var user models.User
	err := s.DB.WithContext(ctx).First(&user, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("find user: %w", err)
	}
	return &user, nil
}
