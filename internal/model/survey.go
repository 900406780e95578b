package model

import "time"

// SurveyQuestion optionally targets a business type and/or an education
// category; options are ordered.
type SurveyQuestion struct {
	ID                uint           `gorm:"primaryKey" json:"id"`
	BusinessTypeID    *uint          `gorm:"index" json:"businessTypeId,omitempty"`
	BusinessType      *BusinessType  `json:"businessType,omitempty"`
	EducationCategory *string        `gorm:"size:100;index" json:"educationCategory,omitempty"`
	QuestionText      string         `gorm:"type:text;not null" json:"questionText"`
	SortOrder         int            `gorm:"default:0" json:"sortOrder"`
	IsActive          bool           `gorm:"default:true" json:"isActive"`
	Options           []SurveyOption `gorm:"foreignKey:QuestionID" json:"options"`
	CreatedAt         time.Time      `gorm:"autoCreateTime" json:"createdAt"`
}

type SurveyOption struct {
	ID         uint   `gorm:"primaryKey" json:"id"`
	QuestionID uint   `gorm:"index;not null" json:"questionId"`
	OptionText string `gorm:"size:255;not null" json:"optionText"`
	SortOrder  int    `gorm:"default:0" json:"sortOrder"`
}

// SurveyAnswer links a question, an optional chosen option, free text, the
// rating it responds to and the submitting user.
type SurveyAnswer struct {
	ID         uint           `gorm:"primaryKey" json:"id"`
	QuestionID uint           `gorm:"index;not null" json:"questionId"`
	Question   SurveyQuestion `json:"-"`
	OptionID   *uint          `json:"optionId,omitempty"`
	RatingID   uint           `gorm:"index;not null" json:"ratingId"`
	UserID     uint           `gorm:"index;not null" json:"userId"`
	AnswerText *string        `gorm:"type:text" json:"answerText,omitempty"`
	CreatedAt  time.Time      `gorm:"autoCreateTime" json:"createdAt"`
}
