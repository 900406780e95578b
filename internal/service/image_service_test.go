package service

import (
	"context"
	"errors"
	"io"
	"testing"

	"github.com/gladgrade/gladgrade-server/internal/model"
	"github.com/gladgrade/gladgrade-server/internal/repository"
	"github.com/gladgrade/gladgrade-server/pkg/apperror"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// recordingStorage captures provider calls so tests can assert on them.
type recordingStorage struct {
	deleted []string
}

func (s *recordingStorage) UploadImage(_ context.Context, _ io.Reader, folder, fileName string) (string, error) {
	return "https://img.example.com/" + folder + "/" + fileName, nil
}

func (s *recordingStorage) DeleteImage(_ context.Context, fileURL string) error {
	s.deleted = append(s.deleted, fileURL)
	return nil
}

func newImageService(db *gorm.DB, store *recordingStorage) ImageService {
	return NewImageService(
		repository.NewImageRepository(db),
		repository.NewRatingRepository(db),
		repository.NewReviewRepository(db),
		store,
	)
}

func TestImageService_SoftDeleteKeepsStoredFile(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()
	store := &recordingStorage{}
	svc := newImageService(db, store)

	owner := createUserWithRole(t, db, "img-owner", model.RoleUser)
	image := &model.Image{
		UserID:   owner.ID,
		FileURL:  "https://img.example.com/images/cafe.webp",
		IsActive: true,
	}
	require.NoError(t, db.Create(image).Error)

	// only the owner (or staff) may remove it
	stranger := createUserWithRole(t, db, "img-stranger", model.RoleUser)
	err := svc.Delete(ctx, actorFor(stranger), image.ID)
	assert.True(t, errors.Is(err, apperror.ErrForbidden))

	require.NoError(t, svc.Delete(ctx, actorFor(owner), image.ID))

	var got model.Image
	require.NoError(t, db.First(&got, image.ID).Error)
	assert.False(t, got.IsActive)
	assert.Equal(t, image.FileURL, got.FileURL)
	// the provider asset is untouched so the moderation row keeps resolving
	assert.Empty(t, store.deleted)

	// the transition is one-way
	err = svc.Delete(ctx, actorFor(owner), image.ID)
	assert.True(t, errors.Is(err, apperror.ErrNotFound))
}
