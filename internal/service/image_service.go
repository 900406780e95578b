package service

import (
	"context"
	"mime/multipart"
	"path/filepath"
	"strings"

	"github.com/gladgrade/gladgrade-server/internal/dto"
	"github.com/gladgrade/gladgrade-server/internal/model"
	"github.com/gladgrade/gladgrade-server/internal/repository"
	"github.com/gladgrade/gladgrade-server/pkg/apperror"
	pkgdto "github.com/gladgrade/gladgrade-server/pkg/dto"
	"github.com/gladgrade/gladgrade-server/pkg/response"
	"github.com/gladgrade/gladgrade-server/pkg/storage"
)

const maxImageSize = 10 << 20 // 10 MB

var allowedImageExts = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
	".gif":  true,
	".webp": true,
}

type ImageService interface {
	Upload(ctx context.Context, actor response.Actor, file *multipart.FileHeader, form dto.UploadImageForm) (*model.Image, error)
	GetByID(ctx context.Context, id uint) (*model.Image, error)
	ListForModeration(ctx context.Context, query dto.ImageListQuery) ([]*model.Image, *pkgdto.Pagination, error)
	Update(ctx context.Context, actor response.Actor, id uint, req dto.UpdateImageRequest) (*model.Image, error)
	Moderate(ctx context.Context, id uint, req dto.ModerateImageRequest) (*model.Image, error)
	Delete(ctx context.Context, actor response.Actor, id uint) error
}

type imageService struct {
	imageRepo    repository.ImageRepository
	ratingRepo   repository.RatingRepository
	reviewRepo   repository.ReviewRepository
	imageStorage storage.ImageStorage
}

func NewImageService(
	imageRepo repository.ImageRepository,
	ratingRepo repository.RatingRepository,
	reviewRepo repository.ReviewRepository,
	imageStorage storage.ImageStorage,
) ImageService {
	return &imageService{
		imageRepo:    imageRepo,
		ratingRepo:   ratingRepo,
		reviewRepo:   reviewRepo,
		imageStorage: imageStorage,
	}
}

// Upload validates the file, checks the caller owns the attachment target and
// stores the bytes before writing the database row.
func (s *imageService) Upload(ctx context.Context, actor response.Actor, file *multipart.FileHeader, form dto.UploadImageForm) (*model.Image, error) {
	targets := 0
	for _, set := range []bool{form.RatingID != nil, form.ReviewID != nil, form.DormID != nil} {
		if set {
			targets++
		}
	}
	if targets > 1 {
		return nil, apperror.New(400, "an image attaches to at most one target", apperror.ErrBadRequest)
	}

	if file.Size > maxImageSize {
		return nil, apperror.New(400, "image exceeds the 10MB limit", apperror.ErrBadRequest)
	}
	ext := strings.ToLower(filepath.Ext(file.Filename))
	if !allowedImageExts[ext] {
		return nil, apperror.New(400, "unsupported image format", apperror.ErrBadRequest)
	}

	if form.RatingID != nil {
		rating, err := s.ratingRepo.FindByID(ctx, *form.RatingID)
		if err != nil {
			return nil, apperror.FromDB(err)
		}
		if !canModify(actor, rating.UserID) {
			return nil, apperror.New(403, "images can only be attached to your own ratings", apperror.ErrForbidden)
		}
	}
	if form.ReviewID != nil {
		review, err := s.reviewRepo.FindByID(ctx, *form.ReviewID)
		if err != nil {
			return nil, apperror.FromDB(err)
		}
		if !canModify(actor, review.UserID) {
			return nil, apperror.New(403, "images can only be attached to your own reviews", apperror.ErrForbidden)
		}
	}

	f, err := file.Open()
	if err != nil {
		return nil, apperror.New(400, "could not read uploaded file", apperror.ErrBadRequest)
	}
	defer f.Close()

	url, err := s.imageStorage.UploadImage(ctx, f, "images", file.Filename)
	if err != nil {
		return nil, err
	}

	image := &model.Image{
		UserID:    actor.UserID,
		RatingID:  form.RatingID,
		ReviewID:  form.ReviewID,
		DormID:    form.DormID,
		FileURL:   url,
		ImageType: form.ImageType,
		SortOrder: form.SortOrder,
		IsActive:  true,
	}

	if err := s.imageRepo.Create(ctx, image); err != nil {
		// Keep storage consistent with the database when the row fails.
		_ = s.imageStorage.DeleteImage(ctx, url)
		return nil, apperror.FromDB(err)
	}

	return image, nil
}

func (s *imageService) GetByID(ctx context.Context, id uint) (*model.Image, error) {
	image, err := s.imageRepo.FindByID(ctx, id)
	if err != nil {
		return nil, apperror.FromDB(err)
	}
	return image, nil
}

func (s *imageService) ListForModeration(ctx context.Context, query dto.ImageListQuery) ([]*model.Image, *pkgdto.Pagination, error) {
	query.Normalize()

	filter := repository.ImageFilter{
		UserID:    query.UserID,
		IsActive:  query.IsActive,
		Moderated: query.Moderated,
	}

	images, total, err := s.imageRepo.FindAll(ctx, filter, query.Offset(), query.Limit)
	if err != nil {
		return nil, nil, err
	}

	pagination := pkgdto.NewPagination(total, query.Page, query.Limit)
	return images, &pagination, nil
}

func (s *imageService) Update(ctx context.Context, actor response.Actor, id uint, req dto.UpdateImageRequest) (*model.Image, error) {
	image, err := s.imageRepo.FindByID(ctx, id)
	if err != nil {
		return nil, apperror.FromDB(err)
	}

	if !canModify(actor, image.UserID) {
		return nil, apperror.New(403, "you can only modify your own images", apperror.ErrForbidden)
	}

	if err := s.imageRepo.Update(ctx, id, req.Fields()); err != nil {
		return nil, apperror.FromDB(err)
	}

	return s.imageRepo.FindByID(ctx, id)
}

// Moderate annotates the image and optionally deactivates it. Staff only;
// the role gate sits in the route table.
func (s *imageService) Moderate(ctx context.Context, id uint, req dto.ModerateImageRequest) (*model.Image, error) {
	if _, err := s.imageRepo.FindByID(ctx, id); err != nil {
		return nil, apperror.FromDB(err)
	}

	fields := map[string]any{"moderation_notes": req.Notes}
	if req.Deactivate {
		fields["is_active"] = false
	}

	if err := s.imageRepo.Update(ctx, id, fields); err != nil {
		return nil, apperror.FromDB(err)
	}

	return s.imageRepo.FindByID(ctx, id)
}

func (s *imageService) Delete(ctx context.Context, actor response.Actor, id uint) error {
	image, err := s.imageRepo.FindByID(ctx, id)
	if err != nil {
		return apperror.FromDB(err)
	}

	if !canModify(actor, image.UserID) {
		return apperror.New(403, "you can only delete your own images", apperror.ErrForbidden)
	}

	if err := s.imageRepo.SoftDelete(ctx, id); err != nil {
		return apperror.FromDB(err)
	}

	// The stored file stays in place: the inactive row survives as a
	// moderation record and its URL must keep resolving.
	return nil
}
