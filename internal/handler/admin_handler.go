package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/gladgrade/gladgrade-server/internal/dto"
	"github.com/gladgrade/gladgrade-server/internal/service"
	"github.com/gladgrade/gladgrade-server/pkg/response"
)

type AdminHandler struct {
	adminService service.AdminService
}

func NewAdminHandler(adminService service.AdminService) *AdminHandler {
	return &AdminHandler{adminService: adminService}
}

func (h *AdminHandler) ListUsers(c *gin.Context) {
	var query dto.UserListQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		response.Error(c, bindError(err))
		return
	}

	users, pagination, err := h.adminService.ListUsers(c.Request.Context(), query)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.List(c, users, *pagination)
}

func (h *AdminHandler) GetUser(c *gin.Context) {
	id, err := pathID(c, "id")
	if err != nil {
		response.Error(c, err)
		return
	}

	user, secondaryRoles, err := h.adminService.GetUser(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, gin.H{"user": user, "secondaryRoles": secondaryRoles})
}

func (h *AdminHandler) UpdateUser(c *gin.Context) {
	id, err := pathID(c, "id")
	if err != nil {
		response.Error(c, err)
		return
	}

	var req dto.UpdateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, bindError(err))
		return
	}

	user, err := h.adminService.UpdateUser(c.Request.Context(), id, req)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, user)
}

func (h *AdminHandler) DeleteUser(c *gin.Context) {
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

	if err := h.adminService.DeleteUser(c.Request.Context(), actor, id); err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, gin.H{"message": "user deleted"})
}

func (h *AdminHandler) AddSecondaryRole(c *gin.Context) {
	id, err := pathID(c, "id")
	if err != nil {
		response.Error(c, err)
		return
	}

	var req dto.SecondaryRoleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, bindError(err))
		return
	}

	if err := h.adminService.AddSecondaryRole(c.Request.Context(), id, req.Role); err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, gin.H{"message": "role assigned"})
}

func (h *AdminHandler) RemoveSecondaryRole(c *gin.Context) {
	id, err := pathID(c, "id")
	if err != nil {
		response.Error(c, err)
		return
	}

	role := c.Param("role")
	if err := h.adminService.RemoveSecondaryRole(c.Request.Context(), id, role); err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, gin.H{"message": "role removed"})
}

func (h *AdminHandler) ListActivity(c *gin.Context) {
	var query dto.ActivityListQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		response.Error(c, bindError(err))
		return
	}

	entries, pagination, err := h.adminService.ListActivity(c.Request.Context(), query)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.List(c, entries, *pagination)
}
