package dto

import pkgdto "github.com/gladgrade/gladgrade-server/pkg/dto"

type CreateBusinessRequest struct {
	Name           string  `json:"name" binding:"required,max=200"`
	BusinessTypeID *uint   `json:"businessTypeId"`
	Address        *string `json:"address" binding:"omitempty,max=255"`
	City           *string `json:"city" binding:"omitempty,max=100"`
	State          *string `json:"state" binding:"omitempty,max=100"`
	PostalCode     *string `json:"postalCode" binding:"omitempty,max=20"`
	Country        *string `json:"country" binding:"omitempty,max=100"`
	Phone          *string `json:"phone" binding:"omitempty,max=30"`
	Email          *string `json:"email" binding:"omitempty,email"`
	Website        *string `json:"website" binding:"omitempty,url"`
	PlaceID        *string `json:"placeId" binding:"omitempty,max=128"`
}

type UpdateBusinessRequest struct {
	Name           *string `json:"name" binding:"omitempty,max=200"`
	BusinessTypeID *uint   `json:"businessTypeId"`
	Address        *string `json:"address" binding:"omitempty,max=255"`
	City           *string `json:"city" binding:"omitempty,max=100"`
	State          *string `json:"state" binding:"omitempty,max=100"`
	PostalCode     *string `json:"postalCode" binding:"omitempty,max=20"`
	Country        *string `json:"country" binding:"omitempty,max=100"`
	Phone          *string `json:"phone" binding:"omitempty,max=30"`
	Email          *string `json:"email" binding:"omitempty,email"`
	Website        *string `json:"website" binding:"omitempty,url"`
	IsActive       *bool   `json:"isActive"`
}

func (r UpdateBusinessRequest) Fields() map[string]any {
	fields := map[string]any{}
	if r.Name != nil {
		fields["name"] = *r.Name
	}
	if r.BusinessTypeID != nil {
		fields["business_type_id"] = *r.BusinessTypeID
	}
	if r.Address != nil {
		fields["address"] = *r.Address
	}
	if r.City != nil {
		fields["city"] = *r.City
	}
	if r.State != nil {
		fields["state"] = *r.State
	}
	if r.PostalCode != nil {
		fields["postal_code"] = *r.PostalCode
	}
	if r.Country != nil {
		fields["country"] = *r.Country
	}
	if r.Phone != nil {
		fields["phone"] = *r.Phone
	}
	if r.Email != nil {
		fields["email"] = *r.Email
	}
	if r.Website != nil {
		fields["website"] = *r.Website
	}
	if r.IsActive != nil {
		fields["is_active"] = *r.IsActive
	}
	return fields
}

type BusinessListQuery struct {
	pkgdto.PageQuery
	SectorID   *uint  `form:"sectorId"`
	TypeID     *uint  `form:"typeId"`
	Search     string `form:"search"`
	IsVerified *bool  `form:"verified"`
}

type VerifyBusinessRequest struct {
	IsVerified bool `json:"isVerified"`
}

type CreateSectorRequest struct {
	Name        string `json:"name" binding:"required,max=100"`
	Description string `json:"description"`
}

type CreateBusinessTypeRequest struct {
	SectorID uint   `json:"sectorId" binding:"required"`
	Name     string `json:"name" binding:"required,max=100"`
}
