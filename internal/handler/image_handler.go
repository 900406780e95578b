package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/gladgrade/gladgrade-server/internal/dto"
	"github.com/gladgrade/gladgrade-server/internal/service"
	"github.com/gladgrade/gladgrade-server/pkg/apperror"
	"github.com/gladgrade/gladgrade-server/pkg/response"
)

type ImageHandler struct {
	imageService service.ImageService
}

func NewImageHandler(imageService service.ImageService) *ImageHandler {
	return &ImageHandler{imageService: imageService}
}

func (h *ImageHandler) Upload(c *gin.Context) {
	actor, err := response.GetActor(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	var form dto.UploadImageForm
	if err := c.ShouldBind(&form); err != nil {
		response.Error(c, bindError(err))
		return
	}

	file, err := c.FormFile("file")
	if err != nil {
		response.Error(c, apperror.New(400, "an image file is required", apperror.ErrBadRequest))
		return
	}

	image, err := h.imageService.Upload(c.Request.Context(), actor, file, form)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, image)
}

func (h *ImageHandler) GetByID(c *gin.Context) {
	id, err := pathID(c, "id")
	if err != nil {
		response.Error(c, err)
		return
	}

	image, err := h.imageService.GetByID(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, image)
}

// ListForModeration is the staff queue over all images, inactive included.
func (h *ImageHandler) ListForModeration(c *gin.Context) {
	var query dto.ImageListQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		response.Error(c, bindError(err))
		return
	}

	images, pagination, err := h.imageService.ListForModeration(c.Request.Context(), query)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.List(c, images, *pagination)
}

func (h *ImageHandler) Update(c *gin.Context) {
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

	var req dto.UpdateImageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, bindError(err))
		return
	}

	image, err := h.imageService.Update(c.Request.Context(), actor, id, req)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, image)
}

func (h *ImageHandler) Moderate(c *gin.Context) {
	id, err := pathID(c, "id")
	if err != nil {
		response.Error(c, err)
		return
	}

	var req dto.ModerateImageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, bindError(err))
		return
	}

	image, err := h.imageService.Moderate(c.Request.Context(), id, req)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, image)
}

func (h *ImageHandler) Delete(c *gin.Context) {
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

	if err := h.imageService.Delete(c.Request.Context(), actor, id); err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, gin.H{"message": "image removed"})
}
