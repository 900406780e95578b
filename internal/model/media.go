package model

import "time"

// Image is a stored URL reference attached to at most one of rating, review
// or dorm. Soft-deletable via is_active; moderation annotates rather than
// introducing a third state.
type Image struct {
	ID              uint      `gorm:"primaryKey" json:"id"`
	UserID          uint      `gorm:"index;not null" json:"userId"`
	RatingID        *uint     `gorm:"index" json:"ratingId,omitempty"`
	ReviewID        *uint     `gorm:"index" json:"reviewId,omitempty"`
	DormID          *uint     `gorm:"index" json:"dormId,omitempty"`
	FileURL         string    `gorm:"type:text;not null" json:"fileUrl"`
	ImageType       string    `gorm:"size:50" json:"imageType"`
	SortOrder       int       `gorm:"default:0" json:"sortOrder"`
	IsActive        bool      `gorm:"default:true" json:"isActive"`
	ModerationNotes *string   `gorm:"type:text" json:"moderationNotes,omitempty"`
	CreatedAt       time.Time `gorm:"autoCreateTime" json:"createdAt"`
	UpdatedAt       time.Time `gorm:"autoUpdateTime" json:"updatedAt"`
}
