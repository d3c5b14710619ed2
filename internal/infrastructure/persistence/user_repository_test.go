package persistence

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pos/backend/internal/domain/identity"
	"github.com/pos/backend/internal/domain/shared"
)

func TestGormUserRepository_CreateAndFind(t *testing.T) {
	db := setupTestDB(t)
	repo := NewGormUserRepository(db)
	ctx := context.Background()

	user, err := identity.NewUser("Maria", "maria@store.com", "s3cret-pass", identity.UserRoleOperator)
	require.NoError(t, err)
	require.NoError(t, repo.Create(ctx, user))

	found, err := repo.FindByUsername(ctx, "MARIA")
	require.NoError(t, err)
	assert.Equal(t, user.ID, found.ID)
	assert.Equal(t, identity.UserRoleOperator, found.Role)
	assert.True(t, found.VerifyPassword("s3cret-pass"))

	_, err = repo.FindByUsername(ctx, "nobody")
	assert.ErrorIs(t, err, shared.ErrNotFound)
}

func TestGormUserRepository_SavePersistsLoginAndStatus(t *testing.T) {
	db := setupTestDB(t)
	repo := NewGormUserRepository(db)
	ctx := context.Background()

	user, err := identity.NewUser("maria", "maria@store.com", "s3cret-pass", identity.UserRoleAdmin)
	require.NoError(t, err)
	require.NoError(t, repo.Create(ctx, user))

	user.RecordLogin()
	user.Deactivate()
	require.NoError(t, repo.Save(ctx, user))

	found, err := repo.FindByID(ctx, user.ID)
	require.NoError(t, err)
	assert.NotNil(t, found.LastLoginAt)
	assert.Equal(t, identity.UserStatusInactive, found.Status)
	assert.Equal(t, 2, found.Version)
}
