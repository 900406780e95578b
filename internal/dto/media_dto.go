package dto

import pkgdto "github.com/gladgrade/gladgrade-server/pkg/dto"

// UploadImageForm accompanies the multipart file. The image attaches to at
// most one of rating, review or dorm.
type UploadImageForm struct {
	RatingID  *uint  `form:"ratingId"`
	ReviewID  *uint  `form:"reviewId"`
	DormID    *uint  `form:"dormId"`
	ImageType string `form:"imageType" binding:"omitempty,max=50"`
	SortOrder int    `form:"sortOrder"`
}

type UpdateImageRequest struct {
	ImageType *string `json:"imageType" binding:"omitempty,max=50"`
	SortOrder *int    `json:"sortOrder"`
}

func (r UpdateImageRequest) Fields() map[string]any {
	fields := map[string]any{}
	if r.ImageType != nil {
		fields["image_type"] = *r.ImageType
	}
	if r.SortOrder != nil {
		fields["sort_order"] = *r.SortOrder
	}
	return fields
}

// ModerateImageRequest annotates an image; setting deactivate also flips it
// inactive in the same update.
type ModerateImageRequest struct {
	Notes      string `json:"notes" binding:"required"`
	Deactivate bool   `json:"deactivate"`
}

type ImageListQuery struct {
	pkgdto.PageQuery
	UserID    *uint `form:"userId"`
	IsActive  *bool `form:"isActive"`
	Moderated *bool `form:"moderated"`
}
