package bootstrap

import (
	"errors"

	"github.com/gladgrade/gladgrade-server/internal/model"
	"gorm.io/gorm"
)

// Migrate runs the schema auto-migration for every model, parents first.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&model.Role{},
		&model.User{},
		&model.UserSecondaryRole{},
		&model.UserActivityLog{},

		&model.BusinessSector{},
		&model.BusinessType{},
		&model.Business{},

		&model.EducationArea{},
		&model.EducationLocation{},
		&model.Dorm{},
		&model.Department{},
		&model.Professor{},
		&model.Course{},
		&model.InternetOption{},
		&model.SecurityOption{},
		&model.SocialOption{},

		&model.Rating{},
		&model.Review{},
		&model.GladPoint{},
		&model.Image{},

		&model.SurveyQuestion{},
		&model.SurveyOption{},
		&model.SurveyAnswer{},

		&model.FAQ{},
		&model.ContentCategory{},
		&model.EnvironmentType{},
		&model.SiteContent{},
		&model.Ad{},
		&model.Message{},
	)
}

// SeedRoles inserts the fixed role set. Existing roles are left untouched.
func SeedRoles(db *gorm.DB) error {
	roles := []model.Role{
		{Name: model.RoleAdmin, Description: "Full administrative access"},
		{Name: model.RoleModerator, Description: "Moderates user content"},
		{Name: model.RoleContentAdmin, Description: "Manages site content, FAQs, ads and surveys"},
		{Name: model.RoleBusinessOwner, Description: "Owns and manages business listings"},
		{Name: model.RoleUser, Description: "Registered consumer"},
		{Name: model.RoleGuest, Description: "Anonymous session account"},
	}

	for _, role := range roles {
		err := db.Where("name = ?", role.Name).First(&model.Role{}).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			if err := db.Create(&role).Error; err != nil {
				return err
			}
			continue
		}
		if err != nil {
			return err
		}
	}

	return nil
}

// SeedTaxonomy inserts a starter business taxonomy and content reference
// lists so a fresh environment is usable immediately.
func SeedTaxonomy(db *gorm.DB) error {
	var count int64
	if err := db.Model(&model.BusinessSector{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	sectors := map[string][]string{
		"Food & Dining":  {"Restaurant", "Cafe", "Bakery", "Bar"},
		"Retail":         {"Clothing", "Electronics", "Grocery"},
		"Services":       {"Salon", "Auto Repair", "Cleaning"},
		"Health":         {"Clinic", "Pharmacy", "Gym"},
		"Education":      {"University", "College", "High School", "Trade School"},
		"Entertainment":  {"Cinema", "Arcade", "Venue"},
		"Accommodation":  {"Hotel", "Hostel"},
	}

	for sectorName, typeNames := range sectors {
		sector := model.BusinessSector{Name: sectorName, IsActive: true}
		if err := db.Create(&sector).Error; err != nil {
			return err
		}
		for _, typeName := range typeNames {
			bt := model.BusinessType{SectorID: sector.ID, Name: typeName, IsActive: true}
			if err := db.Create(&bt).Error; err != nil {
				return err
			}
		}
	}

	categories := []string{"About", "Help", "Legal", "News"}
	for _, name := range categories {
		if err := db.Create(&model.ContentCategory{Name: name}).Error; err != nil {
			return err
		}
	}

	environments := []string{"web", "mobile", "kiosk"}
	for _, name := range environments {
		if err := db.Create(&model.EnvironmentType{Name: name}).Error; err != nil {
			return err
		}
	}

	return nil
}
