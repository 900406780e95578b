package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/gladgrade/gladgrade-server/internal/dto"
	"github.com/gladgrade/gladgrade-server/internal/model"
	"github.com/gladgrade/gladgrade-server/internal/service"
	"github.com/gladgrade/gladgrade-server/pkg/response"
)

type EducationHandler struct {
	educationService service.EducationService
}

func NewEducationHandler(educationService service.EducationService) *EducationHandler {
	return &EducationHandler{educationService: educationService}
}

func (h *EducationHandler) ListAreas(c *gin.Context) {
	areas, err := h.educationService.ListAreas(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, areas)
}

func (h *EducationHandler) CreateArea(c *gin.Context) {
	var req dto.CreateAreaRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, bindError(err))
		return
	}

	area, err := h.educationService.CreateArea(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, area)
}

func (h *EducationHandler) ListLocations(c *gin.Context) {
	var query dto.LocationListQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		response.Error(c, bindError(err))
		return
	}

	actor, _ := response.GetActor(c)
	staff := actor.HasRole(model.StaffRoles...)

	locations, pagination, err := h.educationService.ListLocations(c.Request.Context(), query, staff)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.List(c, locations, *pagination)
}

func (h *EducationHandler) GetLocation(c *gin.Context) {
	id, err := pathID(c, "id")
	if err != nil {
		response.Error(c, err)
		return
	}

	detail, err := h.educationService.GetLocation(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, detail)
}

func (h *EducationHandler) CreateLocation(c *gin.Context) {
	var req dto.CreateLocationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, bindError(err))
		return
	}

	location, err := h.educationService.CreateLocation(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, location)
}

func (h *EducationHandler) UpdateLocation(c *gin.Context) {
	id, err := pathID(c, "id")
	if err != nil {
		response.Error(c, err)
		return
	}

	var req dto.UpdateLocationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, bindError(err))
		return
	}

	location, err := h.educationService.UpdateLocation(c.Request.Context(), id, req)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, location)
}

func (h *EducationHandler) ListDorms(c *gin.Context) {
	locationID, err := pathID(c, "id")
	if err != nil {
		response.Error(c, err)
		return
	}

	dorms, err := h.educationService.ListDorms(c.Request.Context(), locationID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, dorms)
}

func (h *EducationHandler) GetDorm(c *gin.Context) {
	id, err := pathID(c, "id")
	if err != nil {
		response.Error(c, err)
		return
	}

	detail, err := h.educationService.GetDorm(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, detail)
}

func (h *EducationHandler) CreateDorm(c *gin.Context) {
	var req dto.CreateDormRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, bindError(err))
		return
	}

	dorm, err := h.educationService.CreateDorm(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, dorm)
}

func (h *EducationHandler) UpdateDorm(c *gin.Context) {
	id, err := pathID(c, "id")
	if err != nil {
		response.Error(c, err)
		return
	}

	var req dto.UpdateDormRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, bindError(err))
		return
	}

	dorm, err := h.educationService.UpdateDorm(c.Request.Context(), id, req)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, dorm)
}

func (h *EducationHandler) ListDepartments(c *gin.Context) {
	locationID, err := pathID(c, "id")
	if err != nil {
		response.Error(c, err)
		return
	}

	departments, err := h.educationService.ListDepartments(c.Request.Context(), locationID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, departments)
}

func (h *EducationHandler) CreateDepartment(c *gin.Context) {
	var req dto.CreateDepartmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, bindError(err))
		return
	}

	department, err := h.educationService.CreateDepartment(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, department)
}

func (h *EducationHandler) ListProfessors(c *gin.Context) {
	departmentID, err := pathID(c, "id")
	if err != nil {
		response.Error(c, err)
		return
	}

	professors, err := h.educationService.ListProfessors(c.Request.Context(), departmentID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, professors)
}

func (h *EducationHandler) CreateProfessor(c *gin.Context) {
	var req dto.CreateProfessorRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, bindError(err))
		return
	}

	professor, err := h.educationService.CreateProfessor(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, professor)
}

func (h *EducationHandler) ListCourses(c *gin.Context) {
	departmentID, err := pathID(c, "id")
	if err != nil {
		response.Error(c, err)
		return
	}

	courses, err := h.educationService.ListCourses(c.Request.Context(), departmentID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, courses)
}

func (h *EducationHandler) CreateCourse(c *gin.Context) {
	var req dto.CreateCourseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, bindError(err))
		return
	}

	course, err := h.educationService.CreateCourse(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, course)
}
