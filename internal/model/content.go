package model

import "time"

type FAQ struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Question  string    `gorm:"type:text;not null" json:"question"`
	Answer    string    `gorm:"type:text;not null" json:"answer"`
	Category  *string   `gorm:"size:100;index" json:"category,omitempty"`
	SortOrder int       `gorm:"default:0" json:"sortOrder"`
	IsActive  bool      `gorm:"default:true" json:"isActive"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"createdAt"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updatedAt"`
}

type ContentCategory struct {
	ID   uint   `gorm:"primaryKey" json:"id"`
	Name string `gorm:"size:100;uniqueIndex;not null" json:"name"`
}

type EnvironmentType struct {
	ID   uint   `gorm:"primaryKey" json:"id"`
	Name string `gorm:"size:100;uniqueIndex;not null" json:"name"`
}

// SiteContent carries many-to-many links to categories and environment types.
// The link rows are replaced in the same transaction as the content write.
type SiteContent struct {
	ID           uint              `gorm:"primaryKey" json:"id"`
	Title        string            `gorm:"size:200;not null" json:"title"`
	Body         string            `gorm:"type:text;not null" json:"body"`
	IsActive     bool              `gorm:"default:true" json:"isActive"`
	Categories   []ContentCategory `gorm:"many2many:site_content_categories" json:"categories"`
	Environments []EnvironmentType `gorm:"many2many:site_content_environments" json:"environments"`
	CreatedAt    time.Time         `gorm:"autoCreateTime" json:"createdAt"`
	UpdatedAt    time.Time         `gorm:"autoUpdateTime" json:"updatedAt"`
}

type Ad struct {
	ID        uint       `gorm:"primaryKey" json:"id"`
	Title     string     `gorm:"size:200;not null" json:"title"`
	ImageURL  string     `gorm:"type:text;not null" json:"imageUrl"`
	TargetURL *string    `gorm:"type:text" json:"targetUrl,omitempty"`
	Placement string     `gorm:"size:50;index" json:"placement"`
	StartsAt  *time.Time `json:"startsAt,omitempty"`
	EndsAt    *time.Time `json:"endsAt,omitempty"`
	IsActive  bool       `gorm:"default:true" json:"isActive"`
	CreatedAt time.Time  `gorm:"autoCreateTime" json:"createdAt"`
}

// Message is an inbound contact message handled from the admin inbox.
type Message struct {
	ID            uint       `gorm:"primaryKey" json:"id"`
	Name          string     `gorm:"size:150;not null" json:"name"`
	Email         string     `gorm:"size:100;not null" json:"email"`
	Subject       string     `gorm:"size:200;not null" json:"subject"`
	Body          string     `gorm:"type:text;not null" json:"body"`
	Category      string     `gorm:"size:100;index" json:"category"`
	IsRead        bool       `gorm:"default:false" json:"isRead"`
	RequiresReply bool       `gorm:"default:false" json:"requiresReply"`
	ReplyText     *string    `gorm:"type:text" json:"replyText,omitempty"`
	RepliedAt     *time.Time `json:"repliedAt,omitempty"`
	CreatedAt     time.Time  `gorm:"autoCreateTime" json:"createdAt"`
}
