package repository

import (
	"context"
	"sync"
	"time"

	"advisor-api/internal/domain/user"
	advisor_errors "advisor-api/pkg/errors"

	"github.com/google/uuid"
)

// MemoryUserRepository keeps users in process memory. It backs
// STORE_DRIVER=memory and the service tests.
type MemoryUserRepository struct {
	mu      sync.RWMutex
	byEmail map[string]user.User
}

func NewMemoryUserRepository() *MemoryUserRepository {
	return &MemoryUserRepository{byEmail: make(map[string]user.User)}
}

func (r *MemoryUserRepository) Create(_ context.Context, u *user.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.byEmail[u.Email]; exists {
		return advisor_errors.ErrAlreadyExists
	}
	if u.CreatedAt.IsZero() {
		u.CreatedAt = time.Now().UTC()
	}
	u.ID = uuid.NewString()
	r.byEmail[u.Email] = *u
	return nil
}

func (r *MemoryUserRepository) GetUserByEmail(_ context.Context, email string) (user.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	u, ok := r.byEmail[email]
	if !ok {
		return user.User{}, advisor_errors.ErrNotFound
	}
	return u, nil
}

func (r *MemoryUserRepository) EnsureSchema(context.Context) error {
	return nil
}

func (r *MemoryUserRepository) Ping(context.Context) error {
	return nil
}

// Count returns the number of stored users.
func (r *MemoryUserRepository) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.byEmail)
}
