package model

import "time"

// EducationArea -> EducationLocation -> Dorm is a hierarchical directory of
// physical places, independent of the rating flow except that locations may
// be rated.
type EducationArea struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Name      string    `gorm:"size:150;not null" json:"name"`
	IsActive  bool      `gorm:"default:true" json:"isActive"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"createdAt"`
}

type EducationLocation struct {
	ID           uint          `gorm:"primaryKey" json:"id"`
	AreaID       uint          `gorm:"index;not null" json:"areaId"`
	Area         EducationArea `json:"area"`
	Name         string        `gorm:"size:200;not null" json:"name"`
	Address      *string       `gorm:"size:255" json:"address,omitempty"`
	LocationType string        `gorm:"size:50" json:"locationType"`
	IsActive     bool          `gorm:"default:true" json:"isActive"`
	CreatedAt    time.Time     `gorm:"autoCreateTime" json:"createdAt"`
}

type Dorm struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	LocationID  uint      `gorm:"index;not null" json:"locationId"`
	Name        string    `gorm:"size:200;not null" json:"name"`
	Description *string   `gorm:"type:text" json:"description,omitempty"`
	IsActive    bool      `gorm:"default:true" json:"isActive"`
	CreatedAt   time.Time `gorm:"autoCreateTime" json:"createdAt"`
}

type Department struct {
	ID         uint   `gorm:"primaryKey" json:"id"`
	LocationID uint   `gorm:"index;not null" json:"locationId"`
	Name       string `gorm:"size:200;not null" json:"name"`
}

type Professor struct {
	ID           uint    `gorm:"primaryKey" json:"id"`
	DepartmentID uint    `gorm:"index;not null" json:"departmentId"`
	FirstName    string  `gorm:"size:100;not null" json:"firstName"`
	LastName     string  `gorm:"size:100;not null" json:"lastName"`
	Email        *string `gorm:"size:100" json:"email,omitempty"`
}

type Course struct {
	ID           uint    `gorm:"primaryKey" json:"id"`
	DepartmentID uint    `gorm:"index;not null" json:"departmentId"`
	ProfessorID  *uint   `json:"professorId,omitempty"`
	Code         string  `gorm:"size:30;not null" json:"code"`
	Name         string  `gorm:"size:200;not null" json:"name"`
	Description  *string `gorm:"type:text" json:"description,omitempty"`
}

// Per-location reference lists surfaced on the directory pages.
type InternetOption struct {
	ID          uint    `gorm:"primaryKey" json:"id"`
	LocationID  uint    `gorm:"index;not null" json:"locationId"`
	Name        string  `gorm:"size:150;not null" json:"name"`
	Description *string `gorm:"type:text" json:"description,omitempty"`
}

type SecurityOption struct {
	ID          uint    `gorm:"primaryKey" json:"id"`
	LocationID  uint    `gorm:"index;not null" json:"locationId"`
	Name        string  `gorm:"size:150;not null" json:"name"`
	Description *string `gorm:"type:text" json:"description,omitempty"`
}

type SocialOption struct {
	ID          uint    `gorm:"primaryKey" json:"id"`
	LocationID  uint    `gorm:"index;not null" json:"locationId"`
	Name        string  `gorm:"size:150;not null" json:"name"`
	Description *string `gorm:"type:text" json:"description,omitempty"`
}
