//go:build integration

package repository

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"advisor-api/internal/domain/user"
	"advisor-api/pkg/database"
	advisor_errors "advisor-api/pkg/errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/mongodb"
	"go.mongodb.org/mongo-driver/v2/bson"
)

// setupMongoRepository starts a MongoDB container and returns a repository
// over a fresh database with its schema in place.
func setupMongoRepository(t *testing.T) *MongoUserRepository {
	t.Helper()
	ctx := context.Background()

	container, err := mongodb.Run(ctx, "mongo:7")
	testcontainers.CleanupContainer(t, container)
	require.NoError(t, err)

	uri, err := container.ConnectionString(ctx)
	require.NoError(t, err)

	client, err := database.ConnectMongo(ctx, uri)
	require.NoError(t, err)
	t.Cleanup(func() { _ = client.Disconnect(context.Background()) })

	repo := NewMongoUserRepository(client, "advisor_test").(*MongoUserRepository)
	require.NoError(t, repo.EnsureSchema(ctx))
	return repo
}

func TestMongoUserRepository(t *testing.T) {
	repo := setupMongoRepository(t)
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	t.Run("create and get", func(t *testing.T) {
		u := &user.User{FullName: "Ann", Email: "a@x.com", PasswordHash: "hash"}
		require.NoError(t, repo.Create(ctx, u))
		assert.Len(t, u.ID, 24)

		got, err := repo.GetUserByEmail(ctx, "a@x.com")
		require.NoError(t, err)
		assert.Equal(t, u.ID, got.ID)
		assert.Equal(t, "Ann", got.FullName)
		assert.Equal(t, "hash", got.PasswordHash)
	})

	t.Run("duplicate email", func(t *testing.T) {
		err := repo.Create(ctx, &user.User{FullName: "Other", Email: "a@x.com", PasswordHash: "hash2"})
		assert.ErrorIs(t, err, advisor_errors.ErrAlreadyExists)

		count, err := repo.users.CountDocuments(ctx, bson.D{{Key: "email", Value: "a@x.com"}})
		require.NoError(t, err)
		assert.Equal(t, int64(1), count)
	})

	t.Run("missing email", func(t *testing.T) {
		_, err := repo.GetUserByEmail(ctx, "nobody@x.com")
		assert.ErrorIs(t, err, advisor_errors.ErrNotFound)
	})

	t.Run("schema is idempotent and unique", func(t *testing.T) {
		require.NoError(t, repo.EnsureSchema(ctx))

		indexes, err := repo.users.Indexes().ListSpecifications(ctx)
		require.NoError(t, err)
		var found bool
		for _, idx := range indexes {
			if idx.Name == "idx_users_email" {
				found = true
				require.NotNil(t, idx.Unique)
				assert.True(t, *idx.Unique)
			}
		}
		assert.True(t, found, "email index missing")
	})

	t.Run("concurrent creates keep one record", func(t *testing.T) {
		const workers = 16
		var (
			wg        sync.WaitGroup
			mu        sync.Mutex
			created   int
			conflicts int
		)
		for i := 0; i < workers; i++ {
			wg.Add(1)
			go func(i int) {
				defer wg.Done()
				err := repo.Create(ctx, &user.User{FullName: fmt.Sprintf("U%d", i), Email: "race@x.com", PasswordHash: "hash"})
				mu.Lock()
				defer mu.Unlock()
				switch {
				case err == nil:
					created++
				case assert.ErrorIs(t, err, advisor_errors.ErrAlreadyExists):
					conflicts++
				}
			}(i)
		}
		wg.Wait()

		assert.Equal(t, 1, created)
		assert.Equal(t, workers-1, conflicts)
	})

	t.Run("ping", func(t *testing.T) {
		assert.NoError(t, repo.Ping(ctx))
	})
}
