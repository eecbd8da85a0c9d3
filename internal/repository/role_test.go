package repository

import (
	"context"
	"testing"

	"inkwell/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRoleRepository_GetByName(t *testing.T) {
	db := setupTestDB(t)
	repo := NewRoleRepository(db)
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, &models.Role{Name: "admin"}))

	role, err := repo.GetByName(ctx, "admin")
	require.NoError(t, err)
	require.NotNil(t, role)

	role, err = repo.GetByName(ctx, "missing")
	require.NoError(t, err)
	assert.Nil(t, role)
}

func TestRoleRepository_AssignAndRemove(t *testing.T) {
	db := setupTestDB(t)
	users := NewUserRepository(db)
	repo := NewRoleRepository(db)
	ctx := context.Background()

	user := createUser(t, users, "holder", "holder@example.com")
	admin := &models.Role{Name: "admin"}
	editor := &models.Role{Name: "editor"}
	require.NoError(t, repo.Create(ctx, admin))
	require.NoError(t, repo.Create(ctx, editor))

	require.NoError(t, repo.AssignToUser(ctx, user.ID, admin.ID))
	require.NoError(t, repo.AssignToUser(ctx, user.ID, editor.ID))

	roles, err := repo.GetUserRoles(ctx, user.ID)
	require.NoError(t, err)
	assert.Len(t, roles, 2)

	// Assigning the same role twice does not duplicate it
	require.NoError(t, repo.AssignToUser(ctx, user.ID, admin.ID))
	roles, err = repo.GetUserRoles(ctx, user.ID)
	require.NoError(t, err)
	assert.Len(t, roles, 2)

	require.NoError(t, repo.RemoveFromUser(ctx, user.ID, admin.ID))
	roles, err = repo.GetUserRoles(ctx, user.ID)
	require.NoError(t, err)
	require.Len(t, roles, 1)
	assert.Equal(t, "editor", roles[0].Name)
}
