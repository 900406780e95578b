package service

import (
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/gladgrade/gladgrade-server/internal/bootstrap"
	"github.com/gladgrade/gladgrade-server/internal/model"
	"github.com/gladgrade/gladgrade-server/internal/repository"
	pkgdto "github.com/gladgrade/gladgrade-server/pkg/dto"
	"github.com/gladgrade/gladgrade-server/pkg/ratelimiter"
	"github.com/gladgrade/gladgrade-server/pkg/response"
	"gorm.io/gorm"
)

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

func newRatingService(db *gorm.DB) RatingService {
	return NewRatingService(
		repository.NewRatingRepository(db),
		repository.NewReviewRepository(db),
		repository.NewImageRepository(db),
		repository.NewPointsRepository(db),
		ratelimiter.New(nil),
		10*time.Second,
	)
}

func createUserWithRole(t *testing.T, db *gorm.DB, subjectID, roleName string) *model.User {
	t.Helper()

	var role model.Role
	if err := db.Where("name = ?", roleName).First(&role).Error; err != nil {
		t.Fatalf("failed to load role %s: %v", roleName, err)
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

func actorFor(user *model.User, roles ...string) response.Actor {
	return response.Actor{UserID: user.ID, Roles: roles}
}

func pageQuery(page, limit int) pkgdto.PageQuery {
	return pkgdto.PageQuery{Page: page, Limit: limit}
}

func intPtr(i int) *int { return &i }
