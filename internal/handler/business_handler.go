package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/gladgrade/gladgrade-server/internal/dto"
	"github.com/gladgrade/gladgrade-server/internal/service"
	pkgdto "github.com/gladgrade/gladgrade-server/pkg/dto"
	"github.com/gladgrade/gladgrade-server/pkg/response"
)

type BusinessHandler struct {
	businessService service.BusinessService
}

func NewBusinessHandler(businessService service.BusinessService) *BusinessHandler {
	return &BusinessHandler{businessService: businessService}
}

func (h *BusinessHandler) Create(c *gin.Context) {
	actor, err := response.GetActor(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	var req dto.CreateBusinessRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, bindError(err))
		return
	}

	business, err := h.businessService.Create(c.Request.Context(), actor, req)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, business)
}

func (h *BusinessHandler) GetByID(c *gin.Context) {
	id, err := pathID(c, "id")
	if err != nil {
		response.Error(c, err)
		return
	}

	business, err := h.businessService.GetByID(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, business)
}

func (h *BusinessHandler) List(c *gin.Context) {
	var query dto.BusinessListQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		response.Error(c, bindError(err))
		return
	}

	businesses, pagination, err := h.businessService.List(c.Request.Context(), query)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.List(c, businesses, *pagination)
}

func (h *BusinessHandler) ListMine(c *gin.Context) {
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

	businesses, pagination, err := h.businessService.ListMine(c.Request.Context(), actor, query)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.List(c, businesses, *pagination)
}

func (h *BusinessHandler) Update(c *gin.Context) {
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

	var req dto.UpdateBusinessRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, bindError(err))
		return
	}

	business, err := h.businessService.Update(c.Request.Context(), actor, id, req)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, business)
}

func (h *BusinessHandler) Verify(c *gin.Context) {
	id, err := pathID(c, "id")
	if err != nil {
		response.Error(c, err)
		return
	}

	var req dto.VerifyBusinessRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, bindError(err))
		return
	}

	business, err := h.businessService.Verify(c.Request.Context(), id, req.IsVerified)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, business)
}

func (h *BusinessHandler) Delete(c *gin.Context) {
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

	if err := h.businessService.Delete(c.Request.Context(), actor, id); err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, gin.H{"message": "business deleted"})
}

func (h *BusinessHandler) ListSectors(c *gin.Context) {
	sectors, err := h.businessService.ListSectors(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, sectors)
}

func (h *BusinessHandler) CreateSector(c *gin.Context) {
	var req dto.CreateSectorRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, bindError(err))
		return
	}

	sector, err := h.businessService.CreateSector(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, sector)
}

func (h *BusinessHandler) ListTypes(c *gin.Context) {
	var sectorID *uint
	if raw := c.Query("sectorId"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err == nil && parsed > 0 {
			id := uint(parsed)
			sectorID = &id
		}
	}

	types, err := h.businessService.ListTypes(c.Request.Context(), sectorID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, types)
}

func (h *BusinessHandler) CreateType(c *gin.Context) {
	var req dto.CreateBusinessTypeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, bindError(err))
		return
	}

	bt, err := h.businessService.CreateType(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, bt)
}
