package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/gladgrade/gladgrade-server/internal/dto"
	"github.com/gladgrade/gladgrade-server/internal/model"
	"github.com/gladgrade/gladgrade-server/internal/service"
	pkgdto "github.com/gladgrade/gladgrade-server/pkg/dto"
	"github.com/gladgrade/gladgrade-server/pkg/response"
)

type ContentHandler struct {
	contentService service.ContentService
}

func NewContentHandler(contentService service.ContentService) *ContentHandler {
	return &ContentHandler{contentService: contentService}
}

func (h *ContentHandler) CreateFAQ(c *gin.Context) {
	var req dto.CreateFAQRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, bindError(err))
		return
	}

	faq, err := h.contentService.CreateFAQ(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, faq)
}

func (h *ContentHandler) ListFAQs(c *gin.Context) {
	var query dto.FAQListQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		response.Error(c, bindError(err))
		return
	}

	actor, _ := response.GetActor(c)
	staff := actor.HasRole(model.StaffRoles...)

	faqs, pagination, err := h.contentService.ListFAQs(c.Request.Context(), query, staff)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.List(c, faqs, *pagination)
}

func (h *ContentHandler) UpdateFAQ(c *gin.Context) {
	id, err := pathID(c, "id")
	if err != nil {
		response.Error(c, err)
		return
	}

	var req dto.UpdateFAQRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, bindError(err))
		return
	}

	faq, err := h.contentService.UpdateFAQ(c.Request.Context(), id, req)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, faq)
}

func (h *ContentHandler) DeleteFAQ(c *gin.Context) {
	id, err := pathID(c, "id")
	if err != nil {
		response.Error(c, err)
		return
	}

	if err := h.contentService.DeleteFAQ(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, gin.H{"message": "faq deleted"})
}

func (h *ContentHandler) CreateSiteContent(c *gin.Context) {
	var req dto.CreateSiteContentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, bindError(err))
		return
	}

	content, err := h.contentService.CreateSiteContent(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, content)
}

func (h *ContentHandler) GetSiteContent(c *gin.Context) {
	id, err := pathID(c, "id")
	if err != nil {
		response.Error(c, err)
		return
	}

	content, err := h.contentService.GetSiteContent(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, content)
}

func (h *ContentHandler) ListSiteContents(c *gin.Context) {
	var query dto.SiteContentListQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		response.Error(c, bindError(err))
		return
	}

	actor, _ := response.GetActor(c)
	staff := actor.HasRole(model.StaffRoles...)

	contents, pagination, err := h.contentService.ListSiteContents(c.Request.Context(), query, staff)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.List(c, contents, *pagination)
}

func (h *ContentHandler) UpdateSiteContent(c *gin.Context) {
	id, err := pathID(c, "id")
	if err != nil {
		response.Error(c, err)
		return
	}

	var req dto.UpdateSiteContentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, bindError(err))
		return
	}

	content, err := h.contentService.UpdateSiteContent(c.Request.Context(), id, req)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, content)
}

func (h *ContentHandler) DeleteSiteContent(c *gin.Context) {
	id, err := pathID(c, "id")
	if err != nil {
		response.Error(c, err)
		return
	}

	if err := h.contentService.DeleteSiteContent(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, gin.H{"message": "content deleted"})
}

func (h *ContentHandler) ListContentCategories(c *gin.Context) {
	categories, err := h.contentService.ListContentCategories(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, categories)
}

func (h *ContentHandler) ListEnvironmentTypes(c *gin.Context) {
	environments, err := h.contentService.ListEnvironmentTypes(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, environments)
}

func (h *ContentHandler) CreateAd(c *gin.Context) {
	var req dto.CreateAdRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, bindError(err))
		return
	}

	ad, err := h.contentService.CreateAd(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, ad)
}

func (h *ContentHandler) ListAds(c *gin.Context) {
	var query pkgdto.PageQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		response.Error(c, bindError(err))
		return
	}

	ads, pagination, err := h.contentService.ListAds(c.Request.Context(), query)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.List(c, ads, *pagination)
}

// ActiveAds is the public placement feed.
func (h *ContentHandler) ActiveAds(c *gin.Context) {
	ads, err := h.contentService.ActiveAds(c.Request.Context(), c.Query("placement"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, ads)
}

func (h *ContentHandler) UpdateAd(c *gin.Context) {
	id, err := pathID(c, "id")
	if err != nil {
		response.Error(c, err)
		return
	}

	var req dto.UpdateAdRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, bindError(err))
		return
	}

	ad, err := h.contentService.UpdateAd(c.Request.Context(), id, req)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, ad)
}

func (h *ContentHandler) DeleteAd(c *gin.Context) {
	id, err := pathID(c, "id")
	if err != nil {
		response.Error(c, err)
		return
	}

	if err := h.contentService.DeleteAd(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, gin.H{"message": "ad deleted"})
}
