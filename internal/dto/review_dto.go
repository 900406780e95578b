package dto

import pkgdto "github.com/gladgrade/gladgrade-server/pkg/dto"

type CreateReviewRequest struct {
	RatingID  uint   `json:"ratingId" binding:"required"`
	Content   string `json:"content" binding:"required"`
	IsPrivate bool   `json:"isPrivate"`
}

type UpdateReviewRequest struct {
	Content   *string `json:"content"`
	IsPrivate *bool   `json:"isPrivate"`
}

func (r UpdateReviewRequest) Fields() map[string]any {
	fields := map[string]any{}
	if r.Content != nil {
		fields["content"] = *r.Content
	}
	if r.IsPrivate != nil {
		fields["is_private"] = *r.IsPrivate
	}
	return fields
}

type ReviewListQuery struct {
	pkgdto.PageQuery
	UserID   *uint  `form:"userId"`
	RatingID *uint  `form:"ratingId"`
	IsActive *bool  `form:"isActive"`
	Search   string `form:"search"`
}
