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

func newReviewService(db *gorm.DB) ReviewService {
	return NewReviewService(
		repository.NewReviewRepository(db),
		repository.NewRatingRepository(db),
		repository.NewImageRepository(db),
	)
}

func createRatingFor(t *testing.T, db *gorm.DB, userID uint) *model.Rating {
	t.Helper()
	rating := &model.Rating{UserID: userID, PlaceID: strPtr("place-1"), RatingValue: 4}
	require.NoError(t, db.Create(rating).Error)
	return rating
}

func TestReviewService_CreateOnOwnRatingOnly(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()
	svc := newReviewService(db)

	owner := createUserWithRole(t, db, "sub-rv-owner", model.RoleUser)
	other := createUserWithRole(t, db, "sub-rv-other", model.RoleUser)
	rating := createRatingFor(t, db, owner.ID)

	_, err := svc.Create(ctx, actorFor(other, model.RoleUser), dto.CreateReviewRequest{
		RatingID: rating.ID,
		Content:  "not my rating",
	})
	assert.True(t, errors.Is(err, apperror.ErrForbidden))

	review, err := svc.Create(ctx, actorFor(owner, model.RoleUser), dto.CreateReviewRequest{
		RatingID: rating.ID,
		Content:  "lovely place",
	})
	require.NoError(t, err)
	assert.Equal(t, owner.ID, review.UserID)
	assert.True(t, review.IsActive)
}

func TestReviewService_GetByIDVisibility(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()
	svc := newReviewService(db)

	owner := createUserWithRole(t, db, "sub-vis-owner", model.RoleUser)
	stranger := createUserWithRole(t, db, "sub-vis-stranger", model.RoleUser)
	moderator := createUserWithRole(t, db, "sub-vis-mod", model.RoleModerator)
	rating := createRatingFor(t, db, owner.ID)

	private, err := svc.Create(ctx, actorFor(owner, model.RoleUser), dto.CreateReviewRequest{
		RatingID:  rating.ID,
		Content:   "private note",
		IsPrivate: true,
	})
	require.NoError(t, err)

	_, err = svc.GetByID(ctx, actorFor(stranger, model.RoleUser), private.ID)
	assert.True(t, errors.Is(err, apperror.ErrNotFound))

	got, err := svc.GetByID(ctx, actorFor(owner, model.RoleUser), private.ID)
	require.NoError(t, err)
	assert.Equal(t, private.ID, got.ID)

	_, err = svc.GetByID(ctx, actorFor(moderator, model.RoleModerator), private.ID)
	require.NoError(t, err)

	// soft-deleted reviews vanish for regular users, stay visible to staff
	require.NoError(t, svc.Delete(ctx, actorFor(owner, model.RoleUser), private.ID))

	_, err = svc.GetByID(ctx, actorFor(owner, model.RoleUser), private.ID)
	assert.True(t, errors.Is(err, apperror.ErrNotFound))

	_, err = svc.GetByID(ctx, actorFor(moderator, model.RoleModerator), private.ID)
	require.NoError(t, err)
}

func TestReviewService_ListForcesPublicActive(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()
	svc := newReviewService(db)

	owner := createUserWithRole(t, db, "sub-list-owner", model.RoleUser)
	stranger := createUserWithRole(t, db, "sub-list-stranger", model.RoleUser)
	moderator := createUserWithRole(t, db, "sub-list-mod", model.RoleModerator)
	rating := createRatingFor(t, db, owner.ID)

	public, err := svc.Create(ctx, actorFor(owner, model.RoleUser), dto.CreateReviewRequest{
		RatingID: rating.ID, Content: "public",
	})
	require.NoError(t, err)
	_, err = svc.Create(ctx, actorFor(owner, model.RoleUser), dto.CreateReviewRequest{
		RatingID: rating.ID, Content: "private", IsPrivate: true,
	})
	require.NoError(t, err)

	reviews, _, err := svc.List(ctx, actorFor(stranger, model.RoleUser), dto.ReviewListQuery{})
	require.NoError(t, err)
	require.Len(t, reviews, 1)
	assert.Equal(t, public.ID, reviews[0].ID)

	// the owner listing their own reviews sees private ones too
	reviews, _, err = svc.List(ctx, actorFor(owner, model.RoleUser), dto.ReviewListQuery{UserID: &owner.ID})
	require.NoError(t, err)
	assert.Len(t, reviews, 2)

	reviews, _, err = svc.List(ctx, actorFor(moderator, model.RoleModerator), dto.ReviewListQuery{})
	require.NoError(t, err)
	assert.Len(t, reviews, 2)
}

func TestReviewService_UpdateSanitizesContent(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()
	svc := newReviewService(db)

	owner := createUserWithRole(t, db, "sub-upd-owner", model.RoleUser)
	rating := createRatingFor(t, db, owner.ID)

	review, err := svc.Create(ctx, actorFor(owner, model.RoleUser), dto.CreateReviewRequest{
		RatingID: rating.ID, Content: "original",
	})
	require.NoError(t, err)

	updated, err := svc.Update(ctx, actorFor(owner, model.RoleUser), review.ID, dto.UpdateReviewRequest{
		Content: strPtr(`edited <img src=x onerror=alert(1)>`),
	})
	require.NoError(t, err)
	assert.NotContains(t, updated.Content, "<img")
	assert.Contains(t, updated.Content, "edited")
}
