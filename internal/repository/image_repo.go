package repository

import (
	"context"
	"time"

	"github.com/gladgrade/gladgrade-server/internal/model"
	"gorm.io/gorm"
)

type ImageFilter struct {
	UserID    *uint
	IsActive  *bool
	Moderated *bool // true: only images carrying moderation notes
}

type ImageRepository interface {
	Create(ctx context.Context, image *model.Image) error
	FindByID(ctx context.Context, id uint) (*model.Image, error)
	FindByRating(ctx context.Context, ratingID uint) ([]*model.Image, error)
	FindByReview(ctx context.Context, reviewID uint) ([]*model.Image, error)
	FindByDorm(ctx context.Context, dormID uint) ([]*model.Image, error)
	FindAll(ctx context.Context, filter ImageFilter, offset, limit int) ([]*model.Image, int64, error)
	Update(ctx context.Context, id uint, fields map[string]any) error
	SoftDelete(ctx context.Context, id uint) error
}

type imageRepository struct {
	db *gorm.DB
}

func NewImageRepository(db *gorm.DB) ImageRepository {
	return &imageRepository{db: db}
}

func (r *imageRepository) Create(ctx context.Context, image *model.Image) error {
	return r.db.WithContext(ctx).Create(image).Error
}

func (r *imageRepository) FindByID(ctx context.Context, id uint) (*model.Image, error) {
	var image model.Image
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&image).Error; err != nil {
		return nil, err
	}
	return &image, nil
}

// Attachment lookups only ever return active images, ordered by sort index.

func (r *imageRepository) FindByRating(ctx context.Context, ratingID uint) ([]*model.Image, error) {
	return r.findActive(ctx, "rating_id = ?", ratingID)
}

func (r *imageRepository) FindByReview(ctx context.Context, reviewID uint) ([]*model.Image, error) {
	return r.findActive(ctx, "review_id = ?", reviewID)
}

func (r *imageRepository) FindByDorm(ctx context.Context, dormID uint) ([]*model.Image, error) {
	return r.findActive(ctx, "dorm_id = ?", dormID)
}

func (r *imageRepository) findActive(ctx context.Context, cond string, arg any) ([]*model.Image, error) {
	var images []*model.Image
	err := r.db.WithContext(ctx).
		Where(cond, arg).
		Where("is_active = ?", true).
		Order("sort_order ASC, id ASC").
		Find(&images).Error
	return images, err
}

// FindAll is the moderation view: it can see inactive images.
func (r *imageRepository) FindAll(ctx context.Context, filter ImageFilter, offset, limit int) ([]*model.Image, int64, error) {
	var images []*model.Image
	var total int64

	query := r.db.WithContext(ctx).Model(&model.Image{})

	if filter.UserID != nil {
		query = query.Where("user_id = ?", *filter.UserID)
	}
	if filter.IsActive != nil {
		query = query.Where("is_active = ?", *filter.IsActive)
	}
	if filter.Moderated != nil {
		if *filter.Moderated {
			query = query.Where("moderation_notes IS NOT NULL")
		} else {
			query = query.Where("moderation_notes IS NULL")
		}
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	if err := query.Order("created_at DESC").Offset(offset).Limit(limit).Find(&images).Error; err != nil {
		return nil, 0, err
	}

	return images, total, nil
}

func (r *imageRepository) Update(ctx context.Context, id uint, fields map[string]any) error {
	if len(fields) == 0 {
		return nil
	}
	fields["updated_at"] = time.Now()
	return r.db.WithContext(ctx).
		Model(&model.Image{}).
		Where("id = ?", id).
		Updates(fields).Error
}

// SoftDelete is the only delete an image supports; the transition is
// one-directional.
func (r *imageRepository) SoftDelete(ctx context.Context, id uint) error {
	res := r.db.WithContext(ctx).
		Model(&model.Image{}).
		Where("id = ? AND is_active = ?", id, true).
		Updates(map[string]any{"is_active": false, "updated_at": time.Now()})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
