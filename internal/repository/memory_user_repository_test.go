package repository

import (
	"context"
	"errors"
	"sync"
	"testing"

	"advisor-api/internal/domain/user"
	advisor_errors "advisor-api/pkg/errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryUserRepository_CreateAndGet(t *testing.T) {
	repo := NewMemoryUserRepository()
	ctx := context.Background()

	u := &user.User{FullName: "Ann", Email: "a@x.com", PasswordHash: "hash"}
	require.NoError(t, repo.Create(ctx, u))
	assert.NotEmpty(t, u.ID)

	got, err := repo.GetUserByEmail(ctx, "a@x.com")
	require.NoError(t, err)
	assert.Equal(t, *u, got)

	_, err = repo.GetUserByEmail(ctx, "A@x.com")
	assert.ErrorIs(t, err, advisor_errors.ErrNotFound, "email lookup is case-sensitive")
}

func TestMemoryUserRepository_DuplicateEmail(t *testing.T) {
	repo := NewMemoryUserRepository()
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, &user.User{FullName: "Ann", Email: "a@x.com"}))
	err := repo.Create(ctx, &user.User{FullName: "Other", Email: "a@x.com"})

	assert.ErrorIs(t, err, advisor_errors.ErrAlreadyExists)
	assert.Equal(t, 1, repo.Count())
}

func TestMemoryUserRepository_ConcurrentCreateKeepsOneRecord(t *testing.T) {
	repo := NewMemoryUserRepository()
	ctx := context.Background()

	const workers = 32
	var (
		wg        sync.WaitGroup
		mu        sync.Mutex
		created   int
		conflicts int
	)
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			err := repo.Create(ctx, &user.User{FullName: "Ann", Email: "a@x.com"})
			mu.Lock()
			defer mu.Unlock()
			switch {
			case err == nil:
				created++
			case errors.Is(err, advisor_errors.ErrAlreadyExists):
				conflicts++
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, 1, created)
	assert.Equal(t, workers-1, conflicts)
	assert.Equal(t, 1, repo.Count())
}
