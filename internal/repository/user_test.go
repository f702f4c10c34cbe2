package repository

import (
	"context"
	"testing"
	"time"

	"inkwell/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUserRepository_CreateDefaults(t *testing.T) {
	db := newTestDB(t)
	repo := NewUserRepository(db)
	ctx := context.Background()

	user := &models.User{Username: "alice", Email: "alice@example.com", Password: "hashed"}
	require.NoError(t, repo.Create(ctx, user))

	got, err := repo.GetByID(ctx, user.ID)
	require.NoError(t, err)
	assert.False(t, got.IsDeleted)
	assert.False(t, got.IsSuperuser)
	assert.False(t, got.CreatedAt.IsZero())
	assert.Equal(t, got.CreatedAt.Unix(), got.UpdatedAt.Unix())
}

func TestUserRepository_SoftDeleteHidesRow(t *testing.T) {
	db := newTestDB(t)
	repo := NewUserRepository(db)
	ctx := context.Background()

	user := createTestUser(t, db, "alice")

	require.NoError(t, repo.SoftDelete(ctx, user.ID))

	// Hidden from every default accessor.
	_, err := repo.GetByID(ctx, user.ID)
	assertNotFound(t, err)

	byName, err := repo.GetByUsername(ctx, "alice")
	require.NoError(t, err)
	assert.Nil(t, byName)

	page, err := repo.List(ctx, Pagination{Limit: 10})
	require.NoError(t, err)
	assert.Empty(t, page.Items)
	assert.EqualValues(t, 0, page.Total)

	// Still reachable through the superuser accessor.
	any, err := repo.GetByIDAny(ctx, user.ID)
	require.NoError(t, err)
	assert.True(t, any.IsDeleted)
}

func TestUserRepository_SoftDeleteTwiceFails(t *testing.T) {
	db := newTestDB(t)
	repo := NewUserRepository(db)
	ctx := context.Background()

	user := createTestUser(t, db, "alice")
	require.NoError(t, repo.SoftDelete(ctx, user.ID))

	err := repo.SoftDelete(ctx, user.ID)
	assertNotFound(t, err)
}

func TestUserRepository_SoftDeleteMissingRow(t *testing.T) {
	db := newTestDB(t)
	repo := NewUserRepository(db)

	err := repo.SoftDelete(context.Background(), 9999)
	assertNotFound(t, err)
}

func TestUserRepository_SoftDeleteRefreshesUpdatedAt(t *testing.T) {
	db := newTestDB(t)
	repo := NewUserRepository(db)
	ctx := context.Background()

	user := createTestUser(t, db, "alice")
	before := user.UpdatedAt

	time.Sleep(20 * time.Millisecond)
	require.NoError(t, repo.SoftDelete(ctx, user.ID))

	any, err := repo.GetByIDAny(ctx, user.ID)
	require.NoError(t, err)
	assert.True(t, any.UpdatedAt.After(before))
}

func TestUserRepository_UpdateDeletedRowFails(t *testing.T) {
	db := newTestDB(t)
	repo := NewUserRepository(db)
	ctx := context.Background()

	user := createTestUser(t, db, "alice")
	require.NoError(t, repo.SoftDelete(ctx, user.ID))

	user.Email = "new@example.com"
	err := repo.Update(ctx, user)
	assertNotFound(t, err)
}

func TestUserRepository_UpdateRefreshesUpdatedAt(t *testing.T) {
	db := newTestDB(t)
	repo := NewUserRepository(db)
	ctx := context.Background()

	user := createTestUser(t, db, "alice")
	before := user.UpdatedAt

	time.Sleep(20 * time.Millisecond)
	user.Email = "new@example.com"
	require.NoError(t, repo.Update(ctx, user))

	got, err := repo.GetByID(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, "new@example.com", got.Email)
	assert.True(t, got.UpdatedAt.After(before))
	assert.Equal(t, user.CreatedAt.Unix(), got.CreatedAt.Unix())
}

func TestUserRepository_ListAnyIncludesDeleted(t *testing.T) {
	db := newTestDB(t)
	repo := NewUserRepository(db)
	ctx := context.Background()

	alive := createTestUser(t, db, "alice")
	gone := createTestUser(t, db, "bob")
	require.NoError(t, repo.SoftDelete(ctx, gone.ID))

	page, err := repo.List(ctx, Pagination{Limit: 10})
	require.NoError(t, err)
	require.Len(t, page.Items, 1)
	assert.Equal(t, alive.ID, page.Items[0].ID)

	all, err := repo.ListAny(ctx, Pagination{Limit: 10})
	require.NoError(t, err)
	assert.Len(t, all.Items, 2)
	assert.EqualValues(t, 2, all.Total)
}
