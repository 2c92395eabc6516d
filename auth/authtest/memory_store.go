// Package authtest provides an in-memory account store for tests that need
// the auth flows without a MongoDB deployment.
package authtest

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/princinho/schoolpanel/auth"
	"github.com/princinho/schoolpanel/models"
)

type MemoryStore struct {
	mu    sync.Mutex
	users map[string]models.User

	// Err, when set, is returned by every call.
	Err error
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{users: make(map[string]models.User)}
}

func (m *MemoryStore) FindByEmail(_ context.Context, email string) (*models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err != nil {
		return nil, m.Err
	}
	for _, u := range m.users {
		if u.Email == email {
			return &u, nil
		}
	}
	return nil, auth.ErrAccountNotFound
}

func (m *MemoryStore) FindByID(_ context.Context, id string) (*models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err != nil {
		return nil, m.Err
	}
	u, ok := m.users[id]
	if !ok {
		return nil, auth.ErrAccountNotFound
	}
	return &u, nil
}

func (m *MemoryStore) Count(context.Context) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err != nil {
		return 0, m.Err
	}
	return int64(len(m.users)), nil
}

func (m *MemoryStore) Create(_ context.Context, user *models.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err != nil {
		return m.Err
	}
	for _, u := range m.users {
		if u.Email == user.Email {
			return auth.ErrDuplicateEmail
		}
	}
	m.users[user.ID] = *user
	return nil
}

func (m *MemoryStore) UpdatePassword(_ context.Context, id, hash string, at time.Time) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err != nil {
		return m.Err
	}
	u, ok := m.users[id]
	if !ok {
		return auth.ErrAccountNotFound
	}
	u.HashedPassword = hash
	u.UpdatedAt = at
	m.users[id] = u
	return nil
}

func (m *MemoryStore) List(context.Context) ([]models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err != nil {
		return nil, m.Err
	}
	out := make([]models.User, 0, len(m.users))
	for _, u := range m.users {
		out = append(out, u)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	return out, nil
}

func (m *MemoryStore) Update(_ context.Context, id string, patch models.UserPatch, at time.Time) (*models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err != nil {
		return nil, m.Err
	}
	u, ok := m.users[id]
	if !ok {
		return nil, auth.ErrAccountNotFound
	}
	patch.Apply(&u, at)
	m.users[id] = u
	return &u, nil
}

func (m *MemoryStore) Delete(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err != nil {
		return m.Err
	}
	if _, ok := m.users[id]; !ok {
		return auth.ErrAccountNotFound
	}
	delete(m.users, id)
	return nil
}

// Put stores user as-is, bypassing the duplicate email check.
func (m *MemoryStore) Put(user models.User) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.users[user.ID] = user
}
