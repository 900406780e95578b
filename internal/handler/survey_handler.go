package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/gladgrade/gladgrade-server/internal/dto"
	"github.com/gladgrade/gladgrade-server/internal/model"
	"github.com/gladgrade/gladgrade-server/internal/service"
	"github.com/gladgrade/gladgrade-server/pkg/response"
)

type SurveyHandler struct {
	surveyService service.SurveyService
}

func NewSurveyHandler(surveyService service.SurveyService) *SurveyHandler {
	return &SurveyHandler{surveyService: surveyService}
}

func (h *SurveyHandler) CreateQuestion(c *gin.Context) {
	var req dto.CreateSurveyQuestionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, bindError(err))
		return
	}

	question, err := h.surveyService.CreateQuestion(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, question)
}

func (h *SurveyHandler) GetQuestion(c *gin.Context) {
	id, err := pathID(c, "id")
	if err != nil {
		response.Error(c, err)
		return
	}

	question, err := h.surveyService.GetQuestion(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, question)
}

func (h *SurveyHandler) ListQuestions(c *gin.Context) {
	var query dto.SurveyQuestionListQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		response.Error(c, bindError(err))
		return
	}

	actor, _ := response.GetActor(c)
	staff := actor.HasRole(model.StaffRoles...)

	questions, pagination, err := h.surveyService.ListQuestions(c.Request.Context(), query, staff)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.List(c, questions, *pagination)
}

func (h *SurveyHandler) UpdateQuestion(c *gin.Context) {
	id, err := pathID(c, "id")
	if err != nil {
		response.Error(c, err)
		return
	}

	var req dto.UpdateSurveyQuestionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, bindError(err))
		return
	}

	question, err := h.surveyService.UpdateQuestion(c.Request.Context(), id, req)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, question)
}

func (h *SurveyHandler) DeleteQuestion(c *gin.Context) {
	id, err := pathID(c, "id")
	if err != nil {
		response.Error(c, err)
		return
	}

	if err := h.surveyService.DeleteQuestion(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, gin.H{"message": "question deleted"})
}

func (h *SurveyHandler) SubmitAnswers(c *gin.Context) {
	actor, err := response.GetActor(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	var req dto.SubmitSurveyAnswersRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, bindError(err))
		return
	}

	answers, err := h.surveyService.SubmitAnswers(c.Request.Context(), actor, req)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, answers)
}

func (h *SurveyHandler) AnswersForRating(c *gin.Context) {
	actor, err := response.GetActor(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	ratingID, err := pathID(c, "id")
	if err != nil {
		response.Error(c, err)
		return
	}

	answers, err := h.surveyService.AnswersForRating(c.Request.Context(), actor, ratingID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, answers)
}
