package repository

import (
	"context"
	"time"

	"github.com/gladgrade/gladgrade-server/internal/model"
	"gorm.io/gorm"
)

type ReviewFilter struct {
	UserID    *uint
	RatingID  *uint
	IsActive  *bool
	IsPrivate *bool
	Search    string
}

type ReviewRepository interface {
	Create(ctx context.Context, review *model.Review) error
	FindByID(ctx context.Context, id uint) (*model.Review, error)
	FindByRating(ctx context.Context, ratingID uint, activeOnly bool) ([]*model.Review, error)
	FindAll(ctx context.Context, filter ReviewFilter, offset, limit int) ([]*model.Review, int64, error)
	Update(ctx context.Context, id uint, fields map[string]any) error
	SoftDelete(ctx context.Context, id uint) error
}

type reviewRepository struct {
	db *gorm.DB
}

func NewReviewRepository(db *gorm.DB) ReviewRepository {
	return &reviewRepository{db: db}
}

func (r *reviewRepository) Create(ctx context.Context, review *model.Review) error {
	return r.db.WithContext(ctx).Create(review).Error
}

func (r *reviewRepository) FindByID(ctx context.Context, id uint) (*model.Review, error) {
	var review model.Review
	if err := r.db.WithContext(ctx).
		Preload("User").
		Where("id = ?", id).
		First(&review).Error; err != nil {
		return nil, err
	}
	return &review, nil
}

func (r *reviewRepository) FindByRating(ctx context.Context, ratingID uint, activeOnly bool) ([]*model.Review, error) {
	var reviews []*model.Review

	query := r.db.WithContext(ctx).
		Preload("User").
		Where("rating_id = ?", ratingID)
	if activeOnly {
		query = query.Where("is_active = ?", true)
	}

	err := query.Order("created_at ASC").Find(&reviews).Error
	return reviews, err
}

func (r *reviewRepository) FindAll(ctx context.Context, filter ReviewFilter, offset, limit int) ([]*model.Review, int64, error) {
	var reviews []*model.Review
	var total int64

	query := r.db.WithContext(ctx).Model(&model.Review{}).Preload("User")

	if filter.UserID != nil {
		query = query.Where("user_id = ?", *filter.UserID)
	}
	if filter.RatingID != nil {
		query = query.Where("rating_id = ?", *filter.RatingID)
	}
	if filter.IsActive != nil {
		query = query.Where("is_active = ?", *filter.IsActive)
	}
	if filter.IsPrivate != nil {
		query = query.Where("is_private = ?", *filter.IsPrivate)
	}
	if filter.Search != "" {
		query = query.Where("LOWER(content) LIKE LOWER(?)", "%"+filter.Search+"%")
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	if err := query.Order("created_at DESC").Offset(offset).Limit(limit).Find(&reviews).Error; err != nil {
		return nil, 0, err
	}

	return reviews, total, nil
}

func (r *reviewRepository) Update(ctx context.Context, id uint, fields map[string]any) error {
	if len(fields) == 0 {
		return nil
	}
	fields["updated_at"] = time.Now()
	return r.db.WithContext(ctx).
		Model(&model.Review{}).
		Where("id = ?", id).
		Updates(fields).Error
}

// SoftDelete deactivates the review; the row stays for moderation history.
func (r *reviewRepository) SoftDelete(ctx context.Context, id uint) error {
	res := r.db.WithContext(ctx).
		Model(&model.Review{}).
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
