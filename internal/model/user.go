package model

import (
	"time"
)

type Role struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	Name        string    `gorm:"size:50;uniqueIndex;not null" json:"name"`
	Description string    `gorm:"type:text" json:"description"`
	CreatedAt   time.Time `gorm:"autoCreateTime" json:"createdAt"`
}

const (
	RoleAdmin         = "admin"
	RoleModerator     = "moderator"
	RoleContentAdmin  = "content_admin"
	RoleBusinessOwner = "business_owner"
	RoleUser          = "user"
	RoleGuest         = "guest"
)

// StaffRoles are the roles allowed to act on resources they do not own.
var StaffRoles = []string{RoleAdmin, RoleModerator}

type User struct {
	ID          uint       `gorm:"primaryKey" json:"id"`
	SubjectID   string     `gorm:"size:128;uniqueIndex;not null" json:"subjectId"`
	Email       *string    `gorm:"size:100;uniqueIndex" json:"email,omitempty"`
	FirstName   *string    `gorm:"size:100" json:"firstName,omitempty"`
	LastName    *string    `gorm:"size:100" json:"lastName,omitempty"`
	DisplayName *string    `gorm:"size:100" json:"displayName,omitempty"`
	AvatarURL   *string    `gorm:"type:text" json:"avatarUrl,omitempty"`
	RoleID      *uint      `json:"roleId"`
	Role        Role       `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL" json:"role"`
	IsActive    bool       `gorm:"default:true" json:"isActive"`
	IsDeleted   bool       `gorm:"default:false" json:"isDeleted"`
	IsGuest     bool       `gorm:"default:false" json:"isGuest"`
	LastLoginAt *time.Time `json:"lastLoginAt,omitempty"`
	CreatedAt   time.Time  `gorm:"autoCreateTime" json:"createdAt"`
	UpdatedAt   time.Time  `gorm:"autoUpdateTime" json:"updatedAt"`
}

// UserSecondaryRole grants a user additional roles beyond the primary one.
// Authorization checks the union of primary and secondary roles.
type UserSecondaryRole struct {
	ID     uint `gorm:"primaryKey" json:"id"`
	UserID uint `gorm:"not null;uniqueIndex:idx_user_secondary_role" json:"userId"`
	RoleID uint `gorm:"not null;uniqueIndex:idx_user_secondary_role" json:"roleId"`
	Role   Role `json:"role"`
}

// UserActivityLog is an append-only audit trail of notable user actions.
type UserActivityLog struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    uint      `gorm:"index;not null" json:"userId"`
	Action    string    `gorm:"size:100;not null" json:"action"`
	Detail    string    `gorm:"type:text" json:"detail"`
	CreatedAt time.Time `gorm:"autoCreateTime;index" json:"createdAt"`
}
