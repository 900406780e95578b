package repository

import (
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/gladgrade/gladgrade-server/internal/bootstrap"
	"github.com/gladgrade/gladgrade-server/internal/model"
	"gorm.io/gorm"
)

// setupTestDB opens an in-memory database with the full schema and the fixed
// role set. TranslateError matches the production connection so constraint
// violations surface as gorm sentinels.
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{TranslateError: true})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}

	if err := bootstrap.Migrate(db); err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}
	if err := bootstrap.SeedRoles(db); err != nil {
		t.Fatalf("failed to seed roles: %v", err)
	}

	return db
}

func createTestUser(t *testing.T, db *gorm.DB, subjectID string) *model.User {
	t.Helper()

	var role model.Role
	if err := db.Where("name = ?", model.RoleUser).First(&role).Error; err != nil {
		t.Fatalf("failed to load user role: %v", err)
	}

	email := subjectID + "@example.com"
	user := &model.User{
		SubjectID: subjectID,
		Email:     &email,
		RoleID:    &role.ID,
		IsActive:  true,
	}
	if err := db.Create(user).Error; err != nil {
		t.Fatalf("failed to create test user: %v", err)
	}
	return user
}
