package repository

import (
	"context"

	"github.com/gladgrade/gladgrade-server/internal/model"
	"gorm.io/gorm"
)

type SurveyQuestionFilter struct {
	BusinessTypeID    *uint
	EducationCategory *string
	ActiveOnly        bool
}

type SurveyRepository interface {
	CreateQuestion(ctx context.Context, question *model.SurveyQuestion) error
	FindQuestionByID(ctx context.Context, id uint) (*model.SurveyQuestion, error)
	FindQuestions(ctx context.Context, filter SurveyQuestionFilter, offset, limit int) ([]*model.SurveyQuestion, int64, error)
	UpdateQuestion(ctx context.Context, id uint, fields map[string]any, options []model.SurveyOption) error
	DeleteQuestionCascade(ctx context.Context, id uint) error

	CreateAnswers(ctx context.Context, answers []*model.SurveyAnswer) error
	FindAnswersByRating(ctx context.Context, ratingID uint) ([]*model.SurveyAnswer, error)
}

type surveyRepository struct {
	db *gorm.DB
}

func NewSurveyRepository(db *gorm.DB) SurveyRepository {
	return &surveyRepository{db: db}
}

// CreateQuestion inserts the question and its ordered options together;
// GORM persists the Options association in the same transaction.
func (r *surveyRepository) CreateQuestion(ctx context.Context, question *model.SurveyQuestion) error {
	return r.db.WithContext(ctx).Create(question).Error
}

func (r *surveyRepository) FindQuestionByID(ctx context.Context, id uint) (*model.SurveyQuestion, error) {
	var question model.SurveyQuestion
	if err := r.db.WithContext(ctx).
		Preload("Options", func(db *gorm.DB) *gorm.DB {
			return db.Order("sort_order ASC, id ASC")
		}).
		Preload("BusinessType").
		Where("id = ?", id).
		First(&question).Error; err != nil {
		return nil, err
	}
	return &question, nil
}

func (r *surveyRepository) FindQuestions(ctx context.Context, filter SurveyQuestionFilter, offset, limit int) ([]*model.SurveyQuestion, int64, error) {
	var questions []*model.SurveyQuestion
	var total int64

	query := r.db.WithContext(ctx).Model(&model.SurveyQuestion{}).
		Preload("Options", func(db *gorm.DB) *gorm.DB {
			return db.Order("sort_order ASC, id ASC")
		})

	if filter.BusinessTypeID != nil {
		query = query.Where("business_type_id = ?", *filter.BusinessTypeID)
	}
	if filter.EducationCategory != nil {
		query = query.Where("education_category = ?", *filter.EducationCategory)
	}
	if filter.ActiveOnly {
		query = query.Where("is_active = ?", true)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	if err := query.Order("sort_order ASC, id ASC").Offset(offset).Limit(limit).Find(&questions).Error; err != nil {
		return nil, 0, err
	}

	return questions, total, nil
}

// UpdateQuestion applies the partial field update and, when options is
// non-nil, replaces the option set inside the same transaction.
func (r *surveyRepository) UpdateQuestion(ctx context.Context, id uint, fields map[string]any, options []model.SurveyOption) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if len(fields) > 0 {
			res := tx.Model(&model.SurveyQuestion{}).Where("id = ?", id).Updates(fields)
			if res.Error != nil {
				return res.Error
			}
			if res.RowsAffected == 0 {
				return gorm.ErrRecordNotFound
			}
		}

		if options != nil {
			if err := tx.Where("question_id = ?", id).Delete(&model.SurveyOption{}).Error; err != nil {
				return err
			}
			for i := range options {
				options[i].ID = 0
				options[i].QuestionID = id
			}
			if len(options) > 0 {
				if err := tx.Create(&options).Error; err != nil {
					return err
				}
			}
		}

		return nil
	})
}

// DeleteQuestionCascade hard-deletes answers, then options, then the
// question, in that order, atomically.
func (r *surveyRepository) DeleteQuestionCascade(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("question_id = ?", id).Delete(&model.SurveyAnswer{}).Error; err != nil {
			return err
		}
		if err := tx.Where("question_id = ?", id).Delete(&model.SurveyOption{}).Error; err != nil {
			return err
		}

		res := tx.Where("id = ?", id).Delete(&model.SurveyQuestion{})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return nil
	})
}

func (r *surveyRepository) CreateAnswers(ctx context.Context, answers []*model.SurveyAnswer) error {
	if len(answers) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, answer := range answers {
			if err := tx.Create(answer).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

func (r *surveyRepository) FindAnswersByRating(ctx context.Context, ratingID uint) ([]*model.SurveyAnswer, error) {
	var answers []*model.SurveyAnswer
	err := r.db.WithContext(ctx).
		Where("rating_id = ?", ratingID).
		Order("id ASC").
		Find(&answers).Error
	return answers, err
}
