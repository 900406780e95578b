package service

import (
	"context"
	"errors"
	"testing"

	"github.com/gladgrade/gladgrade-server/internal/dto"
	"github.com/gladgrade/gladgrade-server/internal/model"
	"github.com/gladgrade/gladgrade-server/pkg/apperror"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRatingService_CreateAwardsPoints(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()
	svc := newRatingService(db)

	user := createUserWithRole(t, db, "sub-create", model.RoleUser)
	actor := actorFor(user, model.RoleUser)

	detail, award, err := svc.Create(ctx, actor, dto.CreateRatingRequest{
		RatingValue: 5,
		PlaceID:     strPtr("place-1"),
		PlaceName:   strPtr("Corner Cafe"),
		Review:      &dto.InlineReview{Content: "best espresso in town"},
	})
	require.NoError(t, err)
	require.NotNil(t, detail)
	require.NotNil(t, award)

	assert.Equal(t, 5, detail.RatingValue)
	assert.True(t, award.Awarded)
	assert.Equal(t, model.PointsPerRating, award.Points)
	require.Len(t, detail.Reviews, 1)
	assert.Equal(t, "best espresso in town", detail.Reviews[0].Content)

	// second award for the same rating is an idempotent no-op
	impl := svc.(*ratingService)
	again := impl.awardPoints(ctx, detail.ID, user.ID)
	assert.False(t, again.Awarded)
	assert.True(t, again.AlreadyAwarded)

	entries, balance, _, err := svc.ListPoints(ctx, user.ID, pageQuery(1, 10))
	require.NoError(t, err)
	assert.Len(t, entries, 1)
	assert.Equal(t, int64(model.PointsPerRating), balance)
}

func TestRatingService_CreateRequiresTarget(t *testing.T) {
	db := setupTestDB(t)
	svc := newRatingService(db)

	user := createUserWithRole(t, db, "sub-notarget", model.RoleUser)

	_, _, err := svc.Create(context.Background(), actorFor(user, model.RoleUser), dto.CreateRatingRequest{
		RatingValue: 3,
	})
	assert.True(t, errors.Is(err, apperror.ErrBadRequest))
}

func TestRatingService_CreateSanitizesReview(t *testing.T) {
	db := setupTestDB(t)
	svc := newRatingService(db)

	user := createUserWithRole(t, db, "sub-sanitize", model.RoleUser)

	detail, _, err := svc.Create(context.Background(), actorFor(user, model.RoleUser), dto.CreateRatingRequest{
		RatingValue: 4,
		PlaceID:     strPtr("place-1"),
		Review:      &dto.InlineReview{Content: `great <script>alert("x")</script>food`},
	})
	require.NoError(t, err)
	require.Len(t, detail.Reviews, 1)
	assert.NotContains(t, detail.Reviews[0].Content, "<script>")
}

func TestRatingService_PlaceSummary(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()
	svc := newRatingService(db)

	user := createUserWithRole(t, db, "sub-summary", model.RoleUser)
	actor := actorFor(user, model.RoleUser)

	for _, value := range []int{5, 4, 5} {
		_, _, err := svc.Create(ctx, actor, dto.CreateRatingRequest{
			RatingValue: value,
			PlaceID:     strPtr("place-a"),
		})
		require.NoError(t, err)
	}
	_, _, err := svc.Create(ctx, actor, dto.CreateRatingRequest{
		RatingValue: 1,
		PlaceID:     strPtr("place-b"),
	})
	require.NoError(t, err)

	summary, err := svc.GetPlaceSummary(ctx, "place-a")
	require.NoError(t, err)

	assert.Equal(t, "place-a", summary.PlaceID)
	assert.Equal(t, 3, summary.TotalRatings)
	assert.InDelta(t, 14.0/3.0, summary.AverageRating, 0.0001)
	assert.Equal(t, map[int]int{1: 0, 2: 0, 3: 0, 4: 1, 5: 2}, summary.RatingCounts)
}

func TestRatingService_PlaceSummaryEmpty(t *testing.T) {
	db := setupTestDB(t)
	svc := newRatingService(db)

	summary, err := svc.GetPlaceSummary(context.Background(), "nowhere")
	require.NoError(t, err)

	assert.Equal(t, 0, summary.TotalRatings)
	assert.Equal(t, float64(0), summary.AverageRating)
	assert.Equal(t, map[int]int{1: 0, 2: 0, 3: 0, 4: 0, 5: 0}, summary.RatingCounts)
}

func TestRatingService_UpdateOwnership(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()
	svc := newRatingService(db)

	owner := createUserWithRole(t, db, "sub-owner", model.RoleUser)
	stranger := createUserWithRole(t, db, "sub-stranger", model.RoleUser)
	moderator := createUserWithRole(t, db, "sub-mod", model.RoleModerator)

	detail, _, err := svc.Create(ctx, actorFor(owner, model.RoleUser), dto.CreateRatingRequest{
		RatingValue: 2,
		PlaceID:     strPtr("place-1"),
	})
	require.NoError(t, err)

	_, err = svc.Update(ctx, actorFor(stranger, model.RoleUser), detail.ID, dto.UpdateRatingRequest{RatingValue: intPtr(5)})
	assert.True(t, errors.Is(err, apperror.ErrForbidden))

	updated, err := svc.Update(ctx, actorFor(owner, model.RoleUser), detail.ID, dto.UpdateRatingRequest{RatingValue: intPtr(4)})
	require.NoError(t, err)
	assert.Equal(t, 4, updated.RatingValue)

	updated, err = svc.Update(ctx, actorFor(moderator, model.RoleModerator), detail.ID, dto.UpdateRatingRequest{RatingValue: intPtr(3)})
	require.NoError(t, err)
	assert.Equal(t, 3, updated.RatingValue)
}

func TestRatingService_DeleteOwnership(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()
	svc := newRatingService(db)

	owner := createUserWithRole(t, db, "sub-del-owner", model.RoleUser)
	stranger := createUserWithRole(t, db, "sub-del-stranger", model.RoleUser)

	detail, _, err := svc.Create(ctx, actorFor(owner, model.RoleUser), dto.CreateRatingRequest{
		RatingValue: 3,
		PlaceID:     strPtr("place-1"),
	})
	require.NoError(t, err)

	err = svc.Delete(ctx, actorFor(stranger, model.RoleUser), detail.ID)
	assert.True(t, errors.Is(err, apperror.ErrForbidden))

	require.NoError(t, svc.Delete(ctx, actorFor(owner, model.RoleUser), detail.ID))

	_, err = svc.GetByID(ctx, actorFor(owner, model.RoleUser), detail.ID)
	assert.True(t, errors.Is(err, apperror.ErrNotFound))
}

func TestRatingService_PrivateReviewVisibility(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()
	svc := newRatingService(db)

	owner := createUserWithRole(t, db, "sub-priv-owner", model.RoleUser)
	stranger := createUserWithRole(t, db, "sub-priv-stranger", model.RoleUser)
	moderator := createUserWithRole(t, db, "sub-priv-mod", model.RoleModerator)

	detail, _, err := svc.Create(ctx, actorFor(owner, model.RoleUser), dto.CreateRatingRequest{
		RatingValue: 4,
		PlaceID:     strPtr("place-1"),
		Review:      &dto.InlineReview{Content: "personal notes", IsPrivate: true},
	})
	require.NoError(t, err)

	got, err := svc.GetByID(ctx, actorFor(stranger, model.RoleUser), detail.ID)
	require.NoError(t, err)
	assert.Empty(t, got.Reviews)

	got, err = svc.GetByID(ctx, actorFor(owner, model.RoleUser), detail.ID)
	require.NoError(t, err)
	assert.Len(t, got.Reviews, 1)

	got, err = svc.GetByID(ctx, actorFor(moderator, model.RoleModerator), detail.ID)
	require.NoError(t, err)
	assert.Len(t, got.Reviews, 1)
}
