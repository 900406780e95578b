package model

import "time"

// BusinessSector is the top level of the two-level business taxonomy.
type BusinessSector struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	Name        string    `gorm:"size:100;uniqueIndex;not null" json:"name"`
	Description string    `gorm:"type:text" json:"description"`
	IsActive    bool      `gorm:"default:true" json:"isActive"`
	CreatedAt   time.Time `gorm:"autoCreateTime" json:"createdAt"`
}

// BusinessType belongs to exactly one sector.
type BusinessType struct {
	ID        uint           `gorm:"primaryKey" json:"id"`
	SectorID  uint           `gorm:"index;not null" json:"sectorId"`
	Sector    BusinessSector `json:"sector"`
	Name      string         `gorm:"size:100;not null" json:"name"`
	IsActive  bool           `gorm:"default:true" json:"isActive"`
	CreatedAt time.Time      `gorm:"autoCreateTime" json:"createdAt"`
}

type Business struct {
	ID             uint          `gorm:"primaryKey" json:"id"`
	OwnerID        uint          `gorm:"index;not null" json:"ownerId"`
	Owner          User          `gorm:"foreignKey:OwnerID" json:"owner"`
	BusinessTypeID *uint         `json:"businessTypeId,omitempty"`
	BusinessType   *BusinessType `json:"businessType,omitempty"`
	Name           string        `gorm:"size:200;not null" json:"name"`
	Address        *string       `gorm:"size:255" json:"address,omitempty"`
	City           *string       `gorm:"size:100" json:"city,omitempty"`
	State          *string       `gorm:"size:100" json:"state,omitempty"`
	PostalCode     *string       `gorm:"size:20" json:"postalCode,omitempty"`
	Country        *string       `gorm:"size:100" json:"country,omitempty"`
	Phone          *string       `gorm:"size:30" json:"phone,omitempty"`
	Email          *string       `gorm:"size:100" json:"email,omitempty"`
	Website        *string       `gorm:"size:255" json:"website,omitempty"`
	PlaceID        *string       `gorm:"size:128;index" json:"placeId,omitempty"`
	IsActive       bool          `gorm:"default:true" json:"isActive"`
	IsVerified     bool          `gorm:"default:false" json:"isVerified"`
	CreatedAt      time.Time     `gorm:"autoCreateTime" json:"createdAt"`
	UpdatedAt      time.Time     `gorm:"autoUpdateTime" json:"updatedAt"`
}
