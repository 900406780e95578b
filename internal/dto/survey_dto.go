package dto

import pkgdto "github.com/gladgrade/gladgrade-server/pkg/dto"

type SurveyOptionInput struct {
	OptionText string `json:"optionText" binding:"required,max=255"`
	SortOrder  int    `json:"sortOrder"`
}

type CreateSurveyQuestionRequest struct {
	QuestionText      string              `json:"questionText" binding:"required"`
	BusinessTypeID    *uint               `json:"businessTypeId"`
	EducationCategory *string             `json:"educationCategory" binding:"omitempty,max=100"`
	SortOrder         int                 `json:"sortOrder"`
	Options           []SurveyOptionInput `json:"options"`
}

type UpdateSurveyQuestionRequest struct {
	QuestionText *string              `json:"questionText"`
	SortOrder    *int                 `json:"sortOrder"`
	IsActive     *bool                `json:"isActive"`
	Options      *[]SurveyOptionInput `json:"options"`
}

func (r UpdateSurveyQuestionRequest) Fields() map[string]any {
	fields := map[string]any{}
	if r.QuestionText != nil {
		fields["question_text"] = *r.QuestionText
	}
	if r.SortOrder != nil {
		fields["sort_order"] = *r.SortOrder
	}
	if r.IsActive != nil {
		fields["is_active"] = *r.IsActive
	}
	return fields
}

type SurveyQuestionListQuery struct {
	pkgdto.PageQuery
	BusinessTypeID    *uint   `form:"businessTypeId"`
	EducationCategory *string `form:"educationCategory"`
}

type SurveyAnswerInput struct {
	QuestionID uint    `json:"questionId" binding:"required"`
	OptionID   *uint   `json:"optionId"`
	AnswerText *string `json:"answerText"`
}

type SubmitSurveyAnswersRequest struct {
	RatingID uint                `json:"ratingId" binding:"required"`
	Answers  []SurveyAnswerInput `json:"answers" binding:"required,min=1,dive"`
}
