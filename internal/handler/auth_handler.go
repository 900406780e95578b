package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/gladgrade/gladgrade-server/internal/dto"
	"github.com/gladgrade/gladgrade-server/internal/service"
	"github.com/gladgrade/gladgrade-server/pkg/apperror"
	"github.com/gladgrade/gladgrade-server/pkg/response"
)

type AuthHandler struct {
	authService service.AuthService
}

func NewAuthHandler(authService service.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

func subjectID(c *gin.Context) (string, error) {
	v, exists := c.Get("subject_id")
	if !exists {
		return "", apperror.ErrUnauthorized
	}
	subject, ok := v.(string)
	if !ok || subject == "" {
		return "", apperror.ErrUnauthorized
	}
	return subject, nil
}

// Register creates the internal account for a freshly verified identity.
func (h *AuthHandler) Register(c *gin.Context) {
	subject, err := subjectID(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	var req dto.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, bindError(err))
		return
	}

	user, err := h.authService.Register(c.Request.Context(), subject, req)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, user)
}

// GuestLogin returns the guest account for the subject, creating it on first
// call. Safe to retry.
func (h *AuthHandler) GuestLogin(c *gin.Context) {
	subject, err := subjectID(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	user, err := h.authService.GuestLogin(c.Request.Context(), subject)
	if err != nil {
		response.Error(c, err)
		return
	}

	_ = h.authService.RecordLogin(c.Request.Context(), user.ID)

	response.OK(c, user)
}

func (h *AuthHandler) Me(c *gin.Context) {
	actor, err := response.GetActor(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	user, points, err := h.authService.GetProfile(c.Request.Context(), actor.UserID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, gin.H{"user": user, "gladPoints": points})
}

func (h *AuthHandler) UpdateProfile(c *gin.Context) {
	actor, err := response.GetActor(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	var req dto.UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, bindError(err))
		return
	}

	user, err := h.authService.UpdateProfile(c.Request.Context(), actor.UserID, req)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, user)
}

func (h *AuthHandler) UploadAvatar(c *gin.Context) {
	actor, err := response.GetActor(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	file, err := c.FormFile("file")
	if err != nil {
		response.Error(c, apperror.New(400, "an image file is required", apperror.ErrBadRequest))
		return
	}

	user, err := h.authService.UploadAvatar(c.Request.Context(), actor.UserID, file)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, user)
}
