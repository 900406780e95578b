package repository

import (
	"context"
	"errors"
	"testing"

	"github.com/gladgrade/gladgrade-server/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func TestReviewRepository_SoftDelete(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()
	repo := NewReviewRepository(db)

	user := createTestUser(t, db, "sub-review")
	rating := createTestRating(t, db, user.ID, "place-1", 4)

	review := &model.Review{RatingID: rating.ID, UserID: user.ID, Content: "great", IsActive: true}
	require.NoError(t, repo.Create(ctx, review))

	require.NoError(t, repo.SoftDelete(ctx, review.ID))

	got, err := repo.FindByID(ctx, review.ID)
	require.NoError(t, err)
	assert.False(t, got.IsActive)

	// already deactivated: second delete reports not found
	err = repo.SoftDelete(ctx, review.ID)
	assert.True(t, errors.Is(err, gorm.ErrRecordNotFound))
}

func TestReviewRepository_FindByRatingActiveOnly(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()
	repo := NewReviewRepository(db)

	user := createTestUser(t, db, "sub-review2")
	rating := createTestRating(t, db, user.ID, "place-1", 4)

	active := &model.Review{RatingID: rating.ID, UserID: user.ID, Content: "visible", IsActive: true}
	hidden := &model.Review{RatingID: rating.ID, UserID: user.ID, Content: "hidden", IsActive: false}
	require.NoError(t, repo.Create(ctx, active))
	require.NoError(t, repo.Create(ctx, hidden))

	reviews, err := repo.FindByRating(ctx, rating.ID, true)
	require.NoError(t, err)
	require.Len(t, reviews, 1)
	assert.Equal(t, "visible", reviews[0].Content)

	reviews, err = repo.FindByRating(ctx, rating.ID, false)
	require.NoError(t, err)
	assert.Len(t, reviews, 2)
}

func TestImageRepository_SoftDeleteAndActiveLookup(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()
	repo := NewImageRepository(db)

	user := createTestUser(t, db, "sub-image")
	rating := createTestRating(t, db, user.ID, "place-1", 3)

	first := &model.Image{UserID: user.ID, RatingID: &rating.ID, FileURL: "https://cdn/1.jpg", SortOrder: 2, IsActive: true}
	second := &model.Image{UserID: user.ID, RatingID: &rating.ID, FileURL: "https://cdn/2.jpg", SortOrder: 1, IsActive: true}
	require.NoError(t, repo.Create(ctx, first))
	require.NoError(t, repo.Create(ctx, second))

	images, err := repo.FindByRating(ctx, rating.ID)
	require.NoError(t, err)
	require.Len(t, images, 2)
	assert.Equal(t, second.ID, images[0].ID)

	require.NoError(t, repo.SoftDelete(ctx, first.ID))

	images, err = repo.FindByRating(ctx, rating.ID)
	require.NoError(t, err)
	require.Len(t, images, 1)
	assert.Equal(t, second.ID, images[0].ID)

	err = repo.SoftDelete(ctx, first.ID)
	assert.True(t, errors.Is(err, gorm.ErrRecordNotFound))
}

func TestUserRepository_SoftDelete(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()
	repo := NewUserRepository(db)

	admin := createTestUser(t, db, "sub-admin")
	target := createTestUser(t, db, "sub-target")

	require.NoError(t, repo.SoftDelete(ctx, target.ID, admin.ID))

	got, err := repo.FindByID(ctx, target.ID)
	require.NoError(t, err)
	assert.True(t, got.IsDeleted)
	assert.False(t, got.IsActive)

	logs, total, err := repo.FindActivity(ctx, &admin.ID, 0, 10)
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	require.Len(t, logs, 1)
	assert.Equal(t, "user_deleted", logs[0].Action)

	err = repo.SoftDelete(ctx, target.ID, admin.ID)
	assert.True(t, errors.Is(err, gorm.ErrRecordNotFound))
}

func TestUserRepository_FindAllExcludesDeleted(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()
	repo := NewUserRepository(db)

	keep := createTestUser(t, db, "sub-keep")
	gone := createTestUser(t, db, "sub-gone")
	require.NoError(t, repo.SoftDelete(ctx, gone.ID, keep.ID))

	users, total, err := repo.FindAll(ctx, UserFilter{}, 0, 10)
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	require.Len(t, users, 1)
	assert.Equal(t, keep.ID, users[0].ID)

	_, total, err = repo.FindAll(ctx, UserFilter{IncludeDeleted: true}, 0, 10)
	require.NoError(t, err)
	assert.Equal(t, int64(2), total)
}

func TestUserRepository_SecondaryRoles(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()
	repo := NewUserRepository(db)

	user := createTestUser(t, db, "sub-roles")

	modRole, err := repo.FindRoleByName(ctx, model.RoleModerator)
	require.NoError(t, err)

	require.NoError(t, repo.AddSecondaryRole(ctx, user.ID, modRole.ID))

	err = repo.AddSecondaryRole(ctx, user.ID, modRole.ID)
	assert.True(t, errors.Is(err, gorm.ErrDuplicatedKey))

	roles, err := repo.SecondaryRoles(ctx, user.ID)
	require.NoError(t, err)
	require.Len(t, roles, 1)
	assert.Equal(t, model.RoleModerator, roles[0].Name)

	require.NoError(t, repo.RemoveSecondaryRole(ctx, user.ID, modRole.ID))
	roles, err = repo.SecondaryRoles(ctx, user.ID)
	require.NoError(t, err)
	assert.Empty(t, roles)
}
