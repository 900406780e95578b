package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/gladgrade/gladgrade-server/internal/dto"
	"github.com/gladgrade/gladgrade-server/internal/service"
	"github.com/gladgrade/gladgrade-server/pkg/apperror"
	pkgdto "github.com/gladgrade/gladgrade-server/pkg/dto"
	"github.com/gladgrade/gladgrade-server/pkg/response"
)

type RatingHandler struct {
	ratingService service.RatingService
}

func NewRatingHandler(ratingService service.RatingService) *RatingHandler {
	return &RatingHandler{ratingService: ratingService}
}

func (h *RatingHandler) Create(c *gin.Context) {
	actor, err := response.GetActor(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	var req dto.CreateRatingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, bindError(err))
		return
	}

	detail, award, err := h.ratingService.Create(c.Request.Context(), actor, req)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, gin.H{"rating": detail, "points": award})
}

func (h *RatingHandler) GetByID(c *gin.Context) {
	id, err := pathID(c, "id")
	if err != nil {
		response.Error(c, err)
		return
	}

	// The actor is optional here; anonymous callers see public data only.
	actor, _ := response.GetActor(c)

	detail, err := h.ratingService.GetByID(c.Request.Context(), actor, id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, detail)
}

func (h *RatingHandler) List(c *gin.Context) {
	var query dto.RatingListQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		response.Error(c, bindError(err))
		return
	}

	ratings, pagination, err := h.ratingService.List(c.Request.Context(), query)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.List(c, ratings, *pagination)
}

func (h *RatingHandler) MyRatings(c *gin.Context) {
	actor, err := response.GetActor(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	var query dto.RatingListQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		response.Error(c, bindError(err))
		return
	}
	query.UserID = &actor.UserID

	ratings, pagination, err := h.ratingService.List(c.Request.Context(), query)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.List(c, ratings, *pagination)
}

func (h *RatingHandler) PlaceSummary(c *gin.Context) {
	placeID := c.Param("placeId")
	if placeID == "" {
		response.Error(c, apperror.New(400, "invalid placeId", apperror.ErrBadRequest))
		return
	}

	summary, err := h.ratingService.GetPlaceSummary(c.Request.Context(), placeID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, summary)
}

func (h *RatingHandler) EducationLocationSummary(c *gin.Context) {
	id, err := pathID(c, "id")
	if err != nil {
		response.Error(c, err)
		return
	}

	summary, err := h.ratingService.GetEducationLocationSummary(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, summary)
}

func (h *RatingHandler) Update(c *gin.Context) {
	actor, err := response.GetActor(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	id, err := pathID(c, "id")
	if err != nil {
		response.Error(c, err)
		return
	}

	var req dto.UpdateRatingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, bindError(err))
		return
	}

	rating, err := h.ratingService.Update(c.Request.Context(), actor, id, req)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, rating)
}

func (h *RatingHandler) Delete(c *gin.Context) {
	actor, err := response.GetActor(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	id, err := pathID(c, "id")
	if err != nil {
		response.Error(c, err)
		return
	}

	if err := h.ratingService.Delete(c.Request.Context(), actor, id); err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, gin.H{"message": "rating deleted"})
}

func (h *RatingHandler) MyPoints(c *gin.Context) {
	actor, err := response.GetActor(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	var query pkgdto.PageQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		response.Error(c, bindError(err))
		return
	}

	entries, balance, pagination, err := h.ratingService.ListPoints(c.Request.Context(), actor.UserID, query)
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(200, gin.H{"data": entries, "balance": balance, "pagination": pagination})
}
