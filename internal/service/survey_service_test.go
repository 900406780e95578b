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

func newSurveyService(db *gorm.DB) SurveyService {
	return NewSurveyService(
		repository.NewSurveyRepository(db),
		repository.NewRatingRepository(db),
	)
}

func TestSurveyService_QuestionLifecycle(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()
	svc := newSurveyService(db)

	question, err := svc.CreateQuestion(ctx, dto.CreateSurveyQuestionRequest{
		QuestionText: "How was the service?",
		Options: []dto.SurveyOptionInput{
			{OptionText: "Fast", SortOrder: 1},
			{OptionText: "Slow", SortOrder: 2},
		},
	})
	require.NoError(t, err)
	require.Len(t, question.Options, 2)

	// replacing the option set drops the old rows
	updated, err := svc.UpdateQuestion(ctx, question.ID, dto.UpdateSurveyQuestionRequest{
		Options: &[]dto.SurveyOptionInput{{OptionText: "Average", SortOrder: 1}},
	})
	require.NoError(t, err)
	require.Len(t, updated.Options, 1)
	assert.Equal(t, "Average", updated.Options[0].OptionText)

	var optionCount int64
	db.Model(&model.SurveyOption{}).Where("question_id = ?", question.ID).Count(&optionCount)
	assert.Equal(t, int64(1), optionCount)

	require.NoError(t, svc.DeleteQuestion(ctx, question.ID))

	_, err = svc.GetQuestion(ctx, question.ID)
	assert.True(t, errors.Is(err, apperror.ErrNotFound))
	db.Model(&model.SurveyOption{}).Where("question_id = ?", question.ID).Count(&optionCount)
	assert.Equal(t, int64(0), optionCount)
}

func TestSurveyService_ListQuestionsActiveFilter(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()
	svc := newSurveyService(db)

	active, err := svc.CreateQuestion(ctx, dto.CreateSurveyQuestionRequest{QuestionText: "visible"})
	require.NoError(t, err)
	hidden, err := svc.CreateQuestion(ctx, dto.CreateSurveyQuestionRequest{QuestionText: "retired"})
	require.NoError(t, err)

	inactive := false
	_, err = svc.UpdateQuestion(ctx, hidden.ID, dto.UpdateSurveyQuestionRequest{IsActive: &inactive})
	require.NoError(t, err)

	questions, _, err := svc.ListQuestions(ctx, dto.SurveyQuestionListQuery{}, false)
	require.NoError(t, err)
	require.Len(t, questions, 1)
	assert.Equal(t, active.ID, questions[0].ID)

	questions, _, err = svc.ListQuestions(ctx, dto.SurveyQuestionListQuery{}, true)
	require.NoError(t, err)
	assert.Len(t, questions, 2)
}

func TestSurveyService_SubmitAnswers(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()
	svc := newSurveyService(db)

	owner := createUserWithRole(t, db, "sub-sv-owner", model.RoleUser)
	other := createUserWithRole(t, db, "sub-sv-other", model.RoleUser)
	moderator := createUserWithRole(t, db, "sub-sv-mod", model.RoleModerator)
	rating := createRatingFor(t, db, owner.ID)

	question, err := svc.CreateQuestion(ctx, dto.CreateSurveyQuestionRequest{
		QuestionText: "Pick one",
		Options:      []dto.SurveyOptionInput{{OptionText: "A"}, {OptionText: "B"}},
	})
	require.NoError(t, err)

	t.Run("only the rating owner can submit", func(t *testing.T) {
		_, err := svc.SubmitAnswers(ctx, actorFor(other, model.RoleUser), dto.SubmitSurveyAnswersRequest{
			RatingID: rating.ID,
			Answers:  []dto.SurveyAnswerInput{{QuestionID: question.ID}},
		})
		assert.True(t, errors.Is(err, apperror.ErrForbidden))
	})

	t.Run("option must belong to the question", func(t *testing.T) {
		bogus := uint(99999)
		_, err := svc.SubmitAnswers(ctx, actorFor(owner, model.RoleUser), dto.SubmitSurveyAnswersRequest{
			RatingID: rating.ID,
			Answers:  []dto.SurveyAnswerInput{{QuestionID: question.ID, OptionID: &bogus}},
		})
		assert.True(t, errors.Is(err, apperror.ErrBadRequest))
	})

	t.Run("valid batch is stored", func(t *testing.T) {
		answers, err := svc.SubmitAnswers(ctx, actorFor(owner, model.RoleUser), dto.SubmitSurveyAnswersRequest{
			RatingID: rating.ID,
			Answers: []dto.SurveyAnswerInput{
				{QuestionID: question.ID, OptionID: &question.Options[0].ID},
			},
		})
		require.NoError(t, err)
		assert.Len(t, answers, 1)

		got, err := svc.AnswersForRating(ctx, actorFor(owner, model.RoleUser), rating.ID)
		require.NoError(t, err)
		assert.Len(t, got, 1)

		// staff may read answers on any rating, strangers may not
		_, err = svc.AnswersForRating(ctx, actorFor(moderator, model.RoleModerator), rating.ID)
		require.NoError(t, err)

		_, err = svc.AnswersForRating(ctx, actorFor(other, model.RoleUser), rating.ID)
		assert.True(t, errors.Is(err, apperror.ErrForbidden))
	})
}
