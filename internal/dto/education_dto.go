package dto

import pkgdto "github.com/gladgrade/gladgrade-server/pkg/dto"

type CreateAreaRequest struct {
	Name string `json:"name" binding:"required,max=150"`
}

type CreateLocationRequest struct {
	AreaID       uint    `json:"areaId" binding:"required"`
	Name         string  `json:"name" binding:"required,max=200"`
	Address      *string `json:"address" binding:"omitempty,max=255"`
	LocationType string  `json:"locationType" binding:"omitempty,max=50"`
}

type UpdateLocationRequest struct {
	Name         *string `json:"name" binding:"omitempty,max=200"`
	Address      *string `json:"address" binding:"omitempty,max=255"`
	LocationType *string `json:"locationType" binding:"omitempty,max=50"`
	IsActive     *bool   `json:"isActive"`
}

func (r UpdateLocationRequest) Fields() map[string]any {
	fields := map[string]any{}
	if r.Name != nil {
		fields["name"] = *r.Name
	}
	if r.Address != nil {
		fields["address"] = *r.Address
	}
	if r.LocationType != nil {
		fields["location_type"] = *r.LocationType
	}
	if r.IsActive != nil {
		fields["is_active"] = *r.IsActive
	}
	return fields
}

type LocationListQuery struct {
	pkgdto.PageQuery
	AreaID       *uint  `form:"areaId"`
	Search       string `form:"search"`
	LocationType string `form:"type"`
}

type CreateDormRequest struct {
	LocationID  uint    `json:"locationId" binding:"required"`
	Name        string  `json:"name" binding:"required,max=200"`
	Description *string `json:"description"`
}

type UpdateDormRequest struct {
	Name        *string `json:"name" binding:"omitempty,max=200"`
	Description *string `json:"description"`
	IsActive    *bool   `json:"isActive"`
}

func (r UpdateDormRequest) Fields() map[string]any {
	fields := map[string]any{}
	if r.Name != nil {
		fields["name"] = *r.Name
	}
	if r.Description != nil {
		fields["description"] = *r.Description
	}
	if r.IsActive != nil {
		fields["is_active"] = *r.IsActive
	}
	return fields
}

type CreateDepartmentRequest struct {
	LocationID uint   `json:"locationId" binding:"required"`
	Name       string `json:"name" binding:"required,max=200"`
}

type CreateProfessorRequest struct {
	DepartmentID uint    `json:"departmentId" binding:"required"`
	FirstName    string  `json:"firstName" binding:"required,max=100"`
	LastName     string  `json:"lastName" binding:"required,max=100"`
	Email        *string `json:"email" binding:"omitempty,email"`
}

type CreateCourseRequest struct {
	DepartmentID uint    `json:"departmentId" binding:"required"`
	ProfessorID  *uint   `json:"professorId"`
	Code         string  `json:"code" binding:"required,max=30"`
	Name         string  `json:"name" binding:"required,max=200"`
	Description  *string `json:"description"`
}
