package dto

import (
	"github.com/gladgrade/gladgrade-server/internal/model"
	pkgdto "github.com/gladgrade/gladgrade-server/pkg/dto"
)

type InlineReview struct {
	Content   string `json:"content" binding:"required"`
	IsPrivate bool   `json:"isPrivate"`
}

// CreateRatingRequest targets either an external place or an education
// location. An optional review may be created in the same call.
type CreateRatingRequest struct {
	RatingValue         int           `json:"ratingValue" binding:"required,min=1,max=5"`
	PlaceID             *string       `json:"placeId" binding:"required_without=EducationLocationID"`
	PlaceName           *string       `json:"placeName" binding:"omitempty,max=200"`
	PlaceAddress        *string       `json:"placeAddress" binding:"omitempty,max=255"`
	EducationLocationID *uint         `json:"educationLocationId"`
	BusinessTypeID      *uint         `json:"businessTypeId"`
	Subcategory         *string       `json:"subcategory" binding:"omitempty,max=100"`
	Review              *InlineReview `json:"review"`
}

type UpdateRatingRequest struct {
	RatingValue    *int    `json:"ratingValue" binding:"omitempty,min=1,max=5"`
	BusinessTypeID *uint   `json:"businessTypeId"`
	Subcategory    *string `json:"subcategory" binding:"omitempty,max=100"`
}

func (r UpdateRatingRequest) Fields() map[string]any {
	fields := map[string]any{}
	if r.RatingValue != nil {
		fields["rating_value"] = *r.RatingValue
	}
	if r.BusinessTypeID != nil {
		fields["business_type_id"] = *r.BusinessTypeID
	}
	if r.Subcategory != nil {
		fields["subcategory"] = *r.Subcategory
	}
	return fields
}

type RatingListQuery struct {
	pkgdto.PageQuery
	UserID         *uint   `form:"userId"`
	PlaceID        *string `form:"placeId"`
	BusinessTypeID *uint   `form:"businessTypeId"`
	MinValue       *int    `form:"minValue" binding:"omitempty,min=1,max=5"`
	MaxValue       *int    `form:"maxValue" binding:"omitempty,min=1,max=5"`
}

// PlaceSummary is the aggregate returned for a place: average over every
// rating, histogram over the 1..5 buckets.
type PlaceSummary struct {
	PlaceID       string      `json:"placeId"`
	AverageRating float64     `json:"averageRating"`
	TotalRatings  int         `json:"totalRatings"`
	RatingCounts  map[int]int `json:"ratingCounts"`
}

// ReviewDetail nests the active images under a review.
type ReviewDetail struct {
	*model.Review
	Images []*model.Image `json:"images"`
}

// RatingDetail is the fully joined rating shape: the row plus its reviews
// (each with images) and its own images.
type RatingDetail struct {
	*model.Rating
	Reviews []ReviewDetail `json:"reviews"`
	Images  []*model.Image `json:"images"`
}

// PointsAwardResult reports the outcome of a points award, including the
// idempotent "already awarded" case.
type PointsAwardResult struct {
	Awarded        bool   `json:"awarded"`
	Points         int    `json:"points"`
	AlreadyAwarded bool   `json:"alreadyAwarded"`
	Message        string `json:"message"`
}
