package model

import "time"

// Rating is a 1-5 score a user assigns to a place or an education location.
// Place ratings cache the external place name/address at write time.
type Rating struct {
	ID                  uint               `gorm:"primaryKey" json:"id"`
	UserID              uint               `gorm:"index;not null" json:"userId"`
	User                User               `json:"user"`
	PlaceID             *string            `gorm:"size:128;index" json:"placeId,omitempty"`
	PlaceName           *string            `gorm:"size:200" json:"placeName,omitempty"`
	PlaceAddress        *string            `gorm:"size:255" json:"placeAddress,omitempty"`
	EducationLocationID *uint              `gorm:"index" json:"educationLocationId,omitempty"`
	EducationLocation   *EducationLocation `json:"educationLocation,omitempty"`
	BusinessTypeID      *uint              `json:"businessTypeId,omitempty"`
	BusinessType        *BusinessType      `json:"businessType,omitempty"`
	Subcategory         *string            `gorm:"size:100" json:"subcategory,omitempty"`
	RatingValue         int                `gorm:"not null" json:"ratingValue"`
	CreatedAt           time.Time          `gorm:"autoCreateTime" json:"createdAt"`
	UpdatedAt           time.Time          `gorm:"autoUpdateTime" json:"updatedAt"`
}

// Review is free-text commentary attached to exactly one rating, owned by the
// same user. is_active drives the moderation soft delete.
type Review struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	RatingID  uint      `gorm:"index;not null" json:"ratingId"`
	UserID    uint      `gorm:"index;not null" json:"userId"`
	User      User      `json:"user"`
	Content   string    `gorm:"type:text;not null" json:"content"`
	IsActive  bool      `gorm:"default:true" json:"isActive"`
	IsPrivate bool      `gorm:"default:false" json:"isPrivate"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"createdAt"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updatedAt"`
}

// GladPoint is a loyalty ledger entry. The (rating, user) pair is unique at
// the database level; concurrent duplicate awards rely on that constraint.
type GladPoint struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	RatingID   uint      `gorm:"not null;uniqueIndex:idx_points_rating_user" json:"ratingId"`
	UserID     uint      `gorm:"not null;uniqueIndex:idx_points_rating_user;index" json:"userId"`
	Points     int       `gorm:"not null" json:"points"`
	Redeemable bool      `gorm:"default:true" json:"redeemable"`
	CreatedAt  time.Time `gorm:"autoCreateTime" json:"createdAt"`
}

// PointsPerRating is the fixed award for submitting a rating.
const PointsPerRating = 10
