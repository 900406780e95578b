package service

import (
	"context"
	"errors"
	"testing"

	"github.com/gladgrade/gladgrade-server/internal/dto"
	"github.com/gladgrade/gladgrade-server/internal/model"
	"github.com/gladgrade/gladgrade-server/internal/repository"
	"github.com/gladgrade/gladgrade-server/pkg/apperror"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAdminService_DeleteUser(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()
	svc := NewAdminService(repository.NewUserRepository(db))

	admin := createUserWithRole(t, db, "sub-adm", model.RoleAdmin)
	target := createUserWithRole(t, db, "sub-victim", model.RoleUser)
	actor := actorFor(admin, model.RoleAdmin)

	err := svc.DeleteUser(ctx, actor, admin.ID)
	assert.True(t, errors.Is(err, apperror.ErrBadRequest))

	require.NoError(t, svc.DeleteUser(ctx, actor, target.ID))

	got, _, err := svc.GetUser(ctx, target.ID)
	require.NoError(t, err)
	assert.True(t, got.IsDeleted)
}

func TestAdminService_SecondaryRoles(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()
	svc := NewAdminService(repository.NewUserRepository(db))

	user := createUserWithRole(t, db, "sub-grant", model.RoleUser)

	err := svc.AddSecondaryRole(ctx, user.ID, model.RoleUser)
	assert.True(t, errors.Is(err, apperror.ErrConflict))

	err = svc.AddSecondaryRole(ctx, user.ID, "no_such_role")
	assert.True(t, errors.Is(err, apperror.ErrBadRequest))

	require.NoError(t, svc.AddSecondaryRole(ctx, user.ID, model.RoleModerator))
	// granting a role the user already holds is a no-op
	require.NoError(t, svc.AddSecondaryRole(ctx, user.ID, model.RoleModerator))

	_, roles, err := svc.GetUser(ctx, user.ID)
	require.NoError(t, err)
	require.Len(t, roles, 1)
	assert.Equal(t, model.RoleModerator, roles[0].Name)

	require.NoError(t, svc.RemoveSecondaryRole(ctx, user.ID, model.RoleModerator))
	_, roles, err = svc.GetUser(ctx, user.ID)
	require.NoError(t, err)
	assert.Empty(t, roles)
}

func TestAdminService_ListUsersByRole(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()
	svc := NewAdminService(repository.NewUserRepository(db))

	createUserWithRole(t, db, "sub-u1", model.RoleUser)
	createUserWithRole(t, db, "sub-m1", model.RoleModerator)

	roleName := model.RoleModerator
	users, pagination, err := svc.ListUsers(ctx, dto.UserListQuery{Role: &roleName})
	require.NoError(t, err)
	require.Len(t, users, 1)
	assert.Equal(t, "sub-m1", users[0].SubjectID)
	assert.Equal(t, int64(1), pagination.Total)

	unknown := "no_such_role"
	_, _, err = svc.ListUsers(ctx, dto.UserListQuery{Role: &unknown})
	assert.True(t, errors.Is(err, apperror.ErrBadRequest))
}
