package service

import (
	"context"

	"github.com/gladgrade/gladgrade-server/internal/dto"
	"github.com/gladgrade/gladgrade-server/internal/model"
	"github.com/gladgrade/gladgrade-server/internal/repository"
	"github.com/gladgrade/gladgrade-server/pkg/apperror"
	pkgdto "github.com/gladgrade/gladgrade-server/pkg/dto"
	"github.com/gladgrade/gladgrade-server/pkg/response"
)

type SurveyService interface {
	CreateQuestion(ctx context.Context, req dto.CreateSurveyQuestionRequest) (*model.SurveyQuestion, error)
	GetQuestion(ctx context.Context, id uint) (*model.SurveyQuestion, error)
	ListQuestions(ctx context.Context, query dto.SurveyQuestionListQuery, staff bool) ([]*model.SurveyQuestion, *pkgdto.Pagination, error)
	UpdateQuestion(ctx context.Context, id uint, req dto.UpdateSurveyQuestionRequest) (*model.SurveyQuestion, error)
	DeleteQuestion(ctx context.Context, id uint) error

	SubmitAnswers(ctx context.Context, actor response.Actor, req dto.SubmitSurveyAnswersRequest) ([]*model.SurveyAnswer, error)
	AnswersForRating(ctx context.Context, actor response.Actor, ratingID uint) ([]*model.SurveyAnswer, error)
}

type surveyService struct {
	surveyRepo repository.SurveyRepository
	ratingRepo repository.RatingRepository
}

func NewSurveyService(surveyRepo repository.SurveyRepository, ratingRepo repository.RatingRepository) SurveyService {
	return &surveyService{surveyRepo: surveyRepo, ratingRepo: ratingRepo}
}

func (s *surveyService) CreateQuestion(ctx context.Context, req dto.CreateSurveyQuestionRequest) (*model.SurveyQuestion, error) {
	question := &model.SurveyQuestion{
		BusinessTypeID:    req.BusinessTypeID,
		EducationCategory: req.EducationCategory,
		QuestionText:      req.QuestionText,
		SortOrder:         req.SortOrder,
		IsActive:          true,
	}
	for _, opt := range req.Options {
		question.Options = append(question.Options, model.SurveyOption{
			OptionText: opt.OptionText,
			SortOrder:  opt.SortOrder,
		})
	}

	if err := s.surveyRepo.CreateQuestion(ctx, question); err != nil {
		return nil, apperror.FromDB(err)
	}

	return s.surveyRepo.FindQuestionByID(ctx, question.ID)
}

func (s *surveyService) GetQuestion(ctx context.Context, id uint) (*model.SurveyQuestion, error) {
	question, err := s.surveyRepo.FindQuestionByID(ctx, id)
	if err != nil {
		return nil, apperror.FromDB(err)
	}
	return question, nil
}

// ListQuestions serves both the public survey feed (active only) and the
// admin view (everything).
func (s *surveyService) ListQuestions(ctx context.Context, query dto.SurveyQuestionListQuery, staff bool) ([]*model.SurveyQuestion, *pkgdto.Pagination, error) {
	query.Normalize()

	filter := repository.SurveyQuestionFilter{
		BusinessTypeID:    query.BusinessTypeID,
		EducationCategory: query.EducationCategory,
		ActiveOnly:        !staff,
	}

	questions, total, err := s.surveyRepo.FindQuestions(ctx, filter, query.Offset(), query.Limit)
	if err != nil {
		return nil, nil, err
	}

	pagination := pkgdto.NewPagination(total, query.Page, query.Limit)
	return questions, &pagination, nil
}

func (s *surveyService) UpdateQuestion(ctx context.Context, id uint, req dto.UpdateSurveyQuestionRequest) (*model.SurveyQuestion, error) {
	var options []model.SurveyOption
	if req.Options != nil {
		options = make([]model.SurveyOption, 0, len(*req.Options))
		for _, opt := range *req.Options {
			options = append(options, model.SurveyOption{
				OptionText: opt.OptionText,
				SortOrder:  opt.SortOrder,
			})
		}
	}

	if err := s.surveyRepo.UpdateQuestion(ctx, id, req.Fields(), options); err != nil {
		return nil, apperror.FromDB(err)
	}

	return s.surveyRepo.FindQuestionByID(ctx, id)
}

func (s *surveyService) DeleteQuestion(ctx context.Context, id uint) error {
	if err := s.surveyRepo.DeleteQuestionCascade(ctx, id); err != nil {
		return apperror.FromDB(err)
	}
	return nil
}

// SubmitAnswers stores the answer batch against one of the caller's ratings.
// Each answer's question must exist and, for option answers, the option must
// belong to that question.
func (s *surveyService) SubmitAnswers(ctx context.Context, actor response.Actor, req dto.SubmitSurveyAnswersRequest) ([]*model.SurveyAnswer, error) {
	rating, err := s.ratingRepo.FindByID(ctx, req.RatingID)
	if err != nil {
		return nil, apperror.FromDB(err)
	}
	if rating.UserID != actor.UserID {
		return nil, apperror.New(403, "survey answers can only be attached to your own ratings", apperror.ErrForbidden)
	}

	answers := make([]*model.SurveyAnswer, 0, len(req.Answers))
	for _, in := range req.Answers {
		question, err := s.surveyRepo.FindQuestionByID(ctx, in.QuestionID)
		if err != nil {
			return nil, apperror.New(400, "unknown survey question", apperror.ErrBadRequest)
		}

		if in.OptionID != nil {
			found := false
			for _, opt := range question.Options {
				if opt.ID == *in.OptionID {
					found = true
					break
				}
			}
			if !found {
				return nil, apperror.New(400, "option does not belong to the question", apperror.ErrBadRequest)
			}
		}

		answers = append(answers, &model.SurveyAnswer{
			QuestionID: in.QuestionID,
			OptionID:   in.OptionID,
			RatingID:   req.RatingID,
			UserID:     actor.UserID,
			AnswerText: in.AnswerText,
		})
	}

	if err := s.surveyRepo.CreateAnswers(ctx, answers); err != nil {
		return nil, apperror.FromDB(err)
	}

	return answers, nil
}

func (s *surveyService) AnswersForRating(ctx context.Context, actor response.Actor, ratingID uint) ([]*model.SurveyAnswer, error) {
	rating, err := s.ratingRepo.FindByID(ctx, ratingID)
	if err != nil {
		return nil, apperror.FromDB(err)
	}
	if !canModify(actor, rating.UserID) {
		return nil, apperror.New(403, "survey answers are visible to the rating owner and staff", apperror.ErrForbidden)
	}

	return s.surveyRepo.FindAnswersByRating(ctx, ratingID)
}
