package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"tasktrack/internal/models"
	"tasktrack/internal/store"
)

var _ store.TaskStore = (*TaskStore)(nil)

// TaskStore is an in-memory task store for development and testing.
type TaskStore struct {
	mu     sync.RWMutex
	nextID int64
	tasks  map[int64]*models.Task
	now    func() time.Time
}

func NewTaskStore() *TaskStore {
	return &TaskStore{
		tasks: make(map[int64]*models.Task),
		now:   func() time.Time { return time.Now().UTC() },
	}
}

func (s *TaskStore) CreateTask(ctx context.Context, task *models.Task) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.nextID++
	now := s.now()
	task.ID = s.nextID
	task.CreatedAt = now
	task.UpdatedAt = now

	cp := *task
	s.tasks[task.ID] = &cp
	return nil
}

func (s *TaskStore) ListTasks(ctx context.Context, orgID int64) ([]models.Task, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := []models.Task{}
	for _, t := range s.tasks {
		if t.OrgID == orgID {
			out = append(out, *t)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (s *TaskStore) FindTask(ctx context.Context, id, orgID int64) (*models.Task, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	t, ok := s.tasks[id]
	if !ok || t.OrgID != orgID {
		return nil, store.ErrNotFound
	}
	cp := *t
	return &cp, nil
}

func (s *TaskStore) UpdateTask(ctx context.Context, id, orgID int64, fields store.TaskFields) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	t, ok := s.tasks[id]
	if !ok || t.OrgID != orgID || len(fields.Columns()) == 0 {
		return 0, nil
	}
	if fields.Title != nil {
		t.Title = *fields.Title
	}
	if fields.Description != nil {
		t.Description = *fields.Description
	}
	if fields.Status != nil {
		t.Status = *fields.Status
	}
	if fields.Category != nil {
		t.Category = *fields.Category
	}
	t.UpdatedAt = s.now()
	return 1, nil
}

func (s *TaskStore) DeleteTask(ctx context.Context, id, orgID int64) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	t, ok := s.tasks[id]
	if !ok || t.OrgID != orgID {
		return 0, nil
	}
	delete(s.tasks, id)
	return 1, nil
}
