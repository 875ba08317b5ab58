package memory

import (
	"context"
	"sync"

	"tasktrack/internal/models"
	"tasktrack/internal/store"
)

var _ store.UserStore = (*UserStore)(nil)

type UserStore struct {
	mu    sync.RWMutex
	users map[int64]models.User
}

func NewUserStore() *UserStore {
	return &UserStore{users: make(map[int64]models.User)}
}

// Put inserts or replaces a user, keyed by its ID.
func (s *UserStore) Put(u models.User) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.users[u.ID] = u
}

func (s *UserStore) FindUser(ctx context.Context, id int64) (*models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	u, ok := s.users[id]
	if !ok {
		return nil, store.ErrNotFound
	}
	return &u, nil
}
