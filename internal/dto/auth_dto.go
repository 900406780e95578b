package dto

import pkgdto "github.com/gladgrade/gladgrade-server/pkg/dto"

// RegisterRequest completes a first login: the subject id comes from the
// verified token, the profile fields from the body.
type RegisterRequest struct {
	Email       string  `json:"email" binding:"required,email"`
	FirstName   *string `json:"firstName" binding:"omitempty,max=100"`
	LastName    *string `json:"lastName" binding:"omitempty,max=100"`
	DisplayName *string `json:"displayName" binding:"omitempty,max=100"`
}

type UpdateProfileRequest struct {
	FirstName   *string `json:"firstName" binding:"omitempty,max=100"`
	LastName    *string `json:"lastName" binding:"omitempty,max=100"`
	DisplayName *string `json:"displayName" binding:"omitempty,max=100"`
	AvatarURL   *string `json:"avatarUrl" binding:"omitempty,url"`
}

// Fields enumerates the updatable profile columns. Only fields present in
// the request are included, so absent fields stay untouched.
func (r UpdateProfileRequest) Fields() map[string]any {
	fields := map[string]any{}
	if r.FirstName != nil {
		fields["first_name"] = *r.FirstName
	}
	if r.LastName != nil {
		fields["last_name"] = *r.LastName
	}
	if r.DisplayName != nil {
		fields["display_name"] = *r.DisplayName
	}
	if r.AvatarURL != nil {
		fields["avatar_url"] = *r.AvatarURL
	}
	return fields
}

type UpdateUserRequest struct {
	FirstName   *string `json:"firstName" binding:"omitempty,max=100"`
	LastName    *string `json:"lastName" binding:"omitempty,max=100"`
	DisplayName *string `json:"displayName" binding:"omitempty,max=100"`
	RoleName    *string `json:"roleName" binding:"omitempty"`
	IsActive    *bool   `json:"isActive"`
}

func (r UpdateUserRequest) Fields() map[string]any {
	fields := map[string]any{}
	if r.FirstName != nil {
		fields["first_name"] = *r.FirstName
	}
	if r.LastName != nil {
		fields["last_name"] = *r.LastName
	}
	if r.DisplayName != nil {
		fields["display_name"] = *r.DisplayName
	}
	if r.IsActive != nil {
		fields["is_active"] = *r.IsActive
	}
	return fields
}

type SecondaryRoleRequest struct {
	Role string `json:"role" binding:"required"`
}

type UserListQuery struct {
	pkgdto.PageQuery
	Search         string  `form:"search"`
	Role           *string `form:"role"`
	IsActive       *bool   `form:"isActive"`
	IncludeDeleted bool    `form:"includeDeleted"`
	GuestsOnly     bool    `form:"guestsOnly"`
}

type ActivityListQuery struct {
	pkgdto.PageQuery
	UserID *uint `form:"userId"`
}
