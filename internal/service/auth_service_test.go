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
	"gorm.io/gorm"
)

func newAuthService(db *gorm.DB) AuthService {
	return NewAuthService(
		repository.NewUserRepository(db),
		repository.NewPointsRepository(db),
		nil,
	)
}

func TestAuthService_Register(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()
	svc := newAuthService(db)

	user, err := svc.Register(ctx, "sub-new", dto.RegisterRequest{
		Email:       "new@example.com",
		DisplayName: strPtr("New User"),
	})
	require.NoError(t, err)
	assert.Equal(t, "sub-new", user.SubjectID)
	assert.Equal(t, model.RoleUser, user.Role.Name)
	assert.False(t, user.IsGuest)

	// same identity again conflicts
	_, err = svc.Register(ctx, "sub-new", dto.RegisterRequest{Email: "other@example.com"})
	assert.True(t, errors.Is(err, apperror.ErrConflict))

	// so does a fresh identity reusing a taken email
	_, err = svc.Register(ctx, "sub-another", dto.RegisterRequest{Email: "new@example.com"})
	assert.True(t, errors.Is(err, apperror.ErrConflict))

	var count int64
	db.Model(&model.User{}).Count(&count)
	assert.Equal(t, int64(1), count)
}

func TestAuthService_GuestLoginIdempotent(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()
	svc := newAuthService(db)

	first, err := svc.GuestLogin(ctx, "guest-sub")
	require.NoError(t, err)
	assert.True(t, first.IsGuest)
	assert.Equal(t, model.RoleGuest, first.Role.Name)
	require.NotNil(t, first.DisplayName)

	second, err := svc.GuestLogin(ctx, "guest-sub")
	require.NoError(t, err)
	assert.Equal(t, first.ID, second.ID)

	var count int64
	db.Model(&model.User{}).Where("subject_id = ?", "guest-sub").Count(&count)
	assert.Equal(t, int64(1), count)
}

func TestAuthService_ResolveActor(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()
	svc := newAuthService(db)
	userRepo := repository.NewUserRepository(db)

	t.Run("unknown identity", func(t *testing.T) {
		_, err := svc.ResolveActor(ctx, "nobody")
		assert.True(t, errors.Is(err, apperror.ErrNotFound))
	})

	t.Run("roles include secondary grants", func(t *testing.T) {
		user := createUserWithRole(t, db, "sub-resolve", model.RoleUser)
		modRole, err := userRepo.FindRoleByName(ctx, model.RoleModerator)
		require.NoError(t, err)
		require.NoError(t, userRepo.AddSecondaryRole(ctx, user.ID, modRole.ID))

		actor, err := svc.ResolveActor(ctx, "sub-resolve")
		require.NoError(t, err)
		assert.Equal(t, user.ID, actor.UserID)
		assert.ElementsMatch(t, []string{model.RoleUser, model.RoleModerator}, actor.Roles)
		assert.True(t, actor.HasRole(model.StaffRoles...))
	})

	t.Run("disabled account", func(t *testing.T) {
		user := createUserWithRole(t, db, "sub-disabled", model.RoleUser)
		require.NoError(t, db.Model(&model.User{}).Where("id = ?", user.ID).Update("is_active", false).Error)

		_, err := svc.ResolveActor(ctx, "sub-disabled")
		assert.True(t, errors.Is(err, apperror.ErrForbidden))
	})
}

func TestAuthService_GetProfileIncludesBalance(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()
	svc := newAuthService(db)

	user := createUserWithRole(t, db, "sub-profile", model.RoleUser)
	rating := &model.Rating{UserID: user.ID, PlaceID: strPtr("place-1"), RatingValue: 5}
	require.NoError(t, db.Create(rating).Error)
	require.NoError(t, db.Create(&model.GladPoint{RatingID: rating.ID, UserID: user.ID, Points: model.PointsPerRating}).Error)

	got, points, err := svc.GetProfile(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, user.ID, got.ID)
	assert.Equal(t, int64(model.PointsPerRating), points)
}

func TestAuthService_UpdateProfile(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()
	svc := newAuthService(db)

	user := createUserWithRole(t, db, "sub-update", model.RoleUser)

	got, err := svc.UpdateProfile(ctx, user.ID, dto.UpdateProfileRequest{
		DisplayName: strPtr("Renamed"),
	})
	require.NoError(t, err)
	require.NotNil(t, got.DisplayName)
	assert.Equal(t, "Renamed", *got.DisplayName)
	assert.Equal(t, user.Email, got.Email)
}
