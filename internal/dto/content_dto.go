package dto

import pkgdto "github.com/gladgrade/gladgrade-server/pkg/dto"

type CreateFAQRequest struct {
	Question  string  `json:"question" binding:"required"`
	Answer    string  `json:"answer" binding:"required"`
	Category  *string `json:"category" binding:"omitempty,max=100"`
	SortOrder int     `json:"sortOrder"`
}

type UpdateFAQRequest struct {
	Question  *string `json:"question"`
	Answer    *string `json:"answer"`
	Category  *string `json:"category" binding:"omitempty,max=100"`
	SortOrder *int    `json:"sortOrder"`
	IsActive  *bool   `json:"isActive"`
}

func (r UpdateFAQRequest) Fields() map[string]any {
	fields := map[string]any{}
	if r.Question != nil {
		fields["question"] = *r.Question
	}
	if r.Answer != nil {
		fields["answer"] = *r.Answer
	}
	if r.Category != nil {
		fields["category"] = *r.Category
	}
	if r.SortOrder != nil {
		fields["sort_order"] = *r.SortOrder
	}
	if r.IsActive != nil {
		fields["is_active"] = *r.IsActive
	}
	return fields
}

type FAQListQuery struct {
	pkgdto.PageQuery
	Category *string `form:"category"`
}

type CreateSiteContentRequest struct {
	Title          string `json:"title" binding:"required,max=200"`
	Body           string `json:"body" binding:"required"`
	CategoryIDs    []uint `json:"categoryIds"`
	EnvironmentIDs []uint `json:"environmentIds"`
}

type UpdateSiteContentRequest struct {
	Title          *string `json:"title" binding:"omitempty,max=200"`
	Body           *string `json:"body"`
	IsActive       *bool   `json:"isActive"`
	CategoryIDs    []uint  `json:"categoryIds"`
	EnvironmentIDs []uint  `json:"environmentIds"`
}

func (r UpdateSiteContentRequest) Fields() map[string]any {
	fields := map[string]any{}
	if r.Title != nil {
		fields["title"] = *r.Title
	}
	if r.Body != nil {
		fields["body"] = *r.Body
	}
	if r.IsActive != nil {
		fields["is_active"] = *r.IsActive
	}
	return fields
}

type SiteContentListQuery struct {
	pkgdto.PageQuery
	CategoryID    *uint `form:"categoryId"`
	EnvironmentID *uint `form:"environmentId"`
}

type CreateAdRequest struct {
	Title     string  `json:"title" binding:"required,max=200"`
	ImageURL  string  `json:"imageUrl" binding:"required,url"`
	TargetURL *string `json:"targetUrl" binding:"omitempty,url"`
	Placement string  `json:"placement" binding:"required,max=50"`
	StartsAt  *string `json:"startsAt"`
	EndsAt    *string `json:"endsAt"`
}

// UpdateAdRequest reschedules as well as edits: an empty startsAt/endsAt
// string clears that side of the window.
type UpdateAdRequest struct {
	Title     *string `json:"title" binding:"omitempty,max=200"`
	ImageURL  *string `json:"imageUrl" binding:"omitempty,url"`
	TargetURL *string `json:"targetUrl" binding:"omitempty,url"`
	Placement *string `json:"placement" binding:"omitempty,max=50"`
	StartsAt  *string `json:"startsAt"`
	EndsAt    *string `json:"endsAt"`
	IsActive  *bool   `json:"isActive"`
}

func (r UpdateAdRequest) Fields() map[string]any {
	fields := map[string]any{}
	if r.Title != nil {
		fields["title"] = *r.Title
	}
	if r.ImageURL != nil {
		fields["image_url"] = *r.ImageURL
	}
	if r.TargetURL != nil {
		fields["target_url"] = *r.TargetURL
	}
	if r.Placement != nil {
		fields["placement"] = *r.Placement
	}
	if r.IsActive != nil {
		fields["is_active"] = *r.IsActive
	}
	return fields
}

type CreateMessageRequest struct {
	Name          string `json:"name" binding:"required,max=150"`
	Email         string `json:"email" binding:"required,email"`
	Subject       string `json:"subject" binding:"required,max=200"`
	Body          string `json:"body" binding:"required"`
	Category      string `json:"category" binding:"omitempty,max=100"`
	RequiresReply bool   `json:"requiresReply"`
}

type MessageListQuery struct {
	pkgdto.PageQuery
	Category      *string `form:"category"`
	IsRead        *bool   `form:"isRead"`
	RequiresReply *bool   `form:"requiresReply"`
}

type ReplyMessageRequest struct {
	ReplyText string `json:"replyText" binding:"required"`
}
