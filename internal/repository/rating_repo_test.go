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

func strPtr(s string) *string { return &s }

func createTestRating(t *testing.T, db *gorm.DB, userID uint, placeID string, value int) *model.Rating {
	t.Helper()

	rating := &model.Rating{
		UserID:      userID,
		PlaceID:     strPtr(placeID),
		PlaceName:   strPtr("Test Place"),
		RatingValue: value,
	}
	if err := db.Create(rating).Error; err != nil {
		t.Fatalf("failed to create test rating: %v", err)
	}
	return rating
}

func TestRatingRepository_DeleteCascade(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()
	repo := NewRatingRepository(db)

	user := createTestUser(t, db, "sub-cascade")
	rating := createTestRating(t, db, user.ID, "place-1", 4)

	review := &model.Review{RatingID: rating.ID, UserID: user.ID, Content: "solid", IsActive: true}
	require.NoError(t, db.Create(review).Error)

	reviewID := review.ID
	require.NoError(t, db.Create(&model.Image{UserID: user.ID, RatingID: &rating.ID, FileURL: "https://cdn/a.jpg", IsActive: true}).Error)
	require.NoError(t, db.Create(&model.Image{UserID: user.ID, ReviewID: &reviewID, FileURL: "https://cdn/b.jpg", IsActive: true}).Error)
	require.NoError(t, db.Create(&model.GladPoint{RatingID: rating.ID, UserID: user.ID, Points: model.PointsPerRating}).Error)

	question := &model.SurveyQuestion{QuestionText: "Was it clean?", IsActive: true}
	require.NoError(t, db.Create(question).Error)
	require.NoError(t, db.Create(&model.SurveyAnswer{RatingID: rating.ID, UserID: user.ID, QuestionID: question.ID, AnswerText: strPtr("yes")}).Error)

	require.NoError(t, repo.DeleteCascade(ctx, rating.ID))

	var count int64
	db.Model(&model.Rating{}).Where("id = ?", rating.ID).Count(&count)
	assert.Equal(t, int64(0), count)

	db.Model(&model.Review{}).Where("rating_id = ?", rating.ID).Count(&count)
	assert.Equal(t, int64(0), count)

	db.Model(&model.Image{}).Where("rating_id = ? OR review_id = ?", rating.ID, reviewID).Count(&count)
	assert.Equal(t, int64(0), count)

	db.Model(&model.GladPoint{}).Where("rating_id = ?", rating.ID).Count(&count)
	assert.Equal(t, int64(0), count)

	db.Model(&model.SurveyAnswer{}).Where("rating_id = ?", rating.ID).Count(&count)
	assert.Equal(t, int64(0), count)

	// unrelated rows survive
	db.Model(&model.SurveyQuestion{}).Count(&count)
	assert.Equal(t, int64(1), count)
}

func TestRatingRepository_DeleteCascadeMissing(t *testing.T) {
	db := setupTestDB(t)
	repo := NewRatingRepository(db)

	err := repo.DeleteCascade(context.Background(), 9999)
	assert.True(t, errors.Is(err, gorm.ErrRecordNotFound))
}

func TestRatingRepository_FindAllFilters(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()
	repo := NewRatingRepository(db)

	alice := createTestUser(t, db, "sub-alice")
	bob := createTestUser(t, db, "sub-bob")

	createTestRating(t, db, alice.ID, "place-1", 5)
	createTestRating(t, db, alice.ID, "place-2", 2)
	createTestRating(t, db, bob.ID, "place-1", 3)

	ratings, total, err := repo.FindAll(ctx, RatingFilter{UserID: &alice.ID}, 0, 10)
	require.NoError(t, err)
	assert.Equal(t, int64(2), total)
	assert.Len(t, ratings, 2)

	placeID := "place-1"
	min := 4
	ratings, total, err = repo.FindAll(ctx, RatingFilter{PlaceID: &placeID, MinValue: &min}, 0, 10)
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	require.Len(t, ratings, 1)
	assert.Equal(t, 5, ratings[0].RatingValue)
}

func TestPointsRepository_AwardDuplicate(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()
	repo := NewPointsRepository(db)

	user := createTestUser(t, db, "sub-points")
	rating := createTestRating(t, db, user.ID, "place-1", 5)

	require.NoError(t, repo.Award(ctx, &model.GladPoint{
		RatingID: rating.ID,
		UserID:   user.ID,
		Points:   model.PointsPerRating,
	}))

	err := repo.Award(ctx, &model.GladPoint{
		RatingID: rating.ID,
		UserID:   user.ID,
		Points:   model.PointsPerRating,
	})
	assert.True(t, errors.Is(err, gorm.ErrDuplicatedKey))

	total, err := repo.TotalForUser(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(model.PointsPerRating), total)
}

func TestPointsRepository_TotalForUserEmpty(t *testing.T) {
	db := setupTestDB(t)
	repo := NewPointsRepository(db)

	total, err := repo.TotalForUser(context.Background(), 42)
	require.NoError(t, err)
	assert.Equal(t, int64(0), total)
}
