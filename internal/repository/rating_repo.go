package repository

import (
	"context"
	"time"

	"github.com/gladgrade/gladgrade-server/internal/model"
	"gorm.io/gorm"
)

type RatingFilter struct {
	UserID              *uint
	PlaceID             *string
	EducationLocationID *uint
	BusinessTypeID      *uint
	MinValue            *int
	MaxValue            *int
}

type RatingRepository interface {
	Create(ctx context.Context, rating *model.Rating) error
	FindByID(ctx context.Context, id uint) (*model.Rating, error)
	FindByPlace(ctx context.Context, placeID string) ([]*model.Rating, error)
	FindByEducationLocation(ctx context.Context, locationID uint) ([]*model.Rating, error)
	FindAll(ctx context.Context, filter RatingFilter, offset, limit int) ([]*model.Rating, int64, error)
	Update(ctx context.Context, id uint, fields map[string]any) error
	DeleteCascade(ctx context.Context, id uint) error
}

type ratingRepository struct {
	db *gorm.DB
}

func NewRatingRepository(db *gorm.DB) RatingRepository {
	return &ratingRepository{db: db}
}

func (r *ratingRepository) Create(ctx context.Context, rating *model.Rating) error {
	return r.db.WithContext(ctx).Create(rating).Error
}

func (r *ratingRepository) FindByID(ctx context.Context, id uint) (*model.Rating, error) {
	var rating model.Rating
	if err := r.db.WithContext(ctx).
		Preload("User").
		Preload("User.Role").
		Preload("BusinessType").
		Preload("EducationLocation").
		Where("id = ?", id).
		First(&rating).Error; err != nil {
		return nil, err
	}
	return &rating, nil
}

func (r *ratingRepository) FindByPlace(ctx context.Context, placeID string) ([]*model.Rating, error) {
	var ratings []*model.Rating
	err := r.db.WithContext(ctx).
		Where("place_id = ?", placeID).
		Order("created_at DESC").
		Find(&ratings).Error
	return ratings, err
}

func (r *ratingRepository) FindByEducationLocation(ctx context.Context, locationID uint) ([]*model.Rating, error) {
	var ratings []*model.Rating
	err := r.db.WithContext(ctx).
		Where("education_location_id = ?", locationID).
		Order("created_at DESC").
		Find(&ratings).Error
	return ratings, err
}

func (r *ratingRepository) FindAll(ctx context.Context, filter RatingFilter, offset, limit int) ([]*model.Rating, int64, error) {
	var ratings []*model.Rating
	var total int64

	query := r.db.WithContext(ctx).Model(&model.Rating{}).
		Preload("User").
		Preload("BusinessType").
		Preload("EducationLocation")

	if filter.UserID != nil {
		query = query.Where("user_id = ?", *filter.UserID)
	}
	if filter.PlaceID != nil {
		query = query.Where("place_id = ?", *filter.PlaceID)
	}
	if filter.EducationLocationID != nil {
		query = query.Where("education_location_id = ?", *filter.EducationLocationID)
	}
	if filter.BusinessTypeID != nil {
		query = query.Where("business_type_id = ?", *filter.BusinessTypeID)
	}
	if filter.MinValue != nil {
		query = query.Where("rating_value >= ?", *filter.MinValue)
	}
	if filter.MaxValue != nil {
		query = query.Where("rating_value <= ?", *filter.MaxValue)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	if err := query.Order("created_at DESC").Offset(offset).Limit(limit).Find(&ratings).Error; err != nil {
		return nil, 0, err
	}

	return ratings, total, nil
}

func (r *ratingRepository) Update(ctx context.Context, id uint, fields map[string]any) error {
	if len(fields) == 0 {
		return nil
	}
	fields["updated_at"] = time.Now()
	return r.db.WithContext(ctx).
		Model(&model.Rating{}).
		Where("id = ?", id).
		Updates(fields).Error
}

// DeleteCascade removes the rating and every dependent row in one
// transaction, children before parent to satisfy foreign keys:
// review images, rating images, survey answers, glad points, reviews, rating.
func (r *ratingRepository) DeleteCascade(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		reviewIDs := tx.Model(&model.Review{}).Select("id").Where("rating_id = ?", id)

		if err := tx.Where("review_id IN (?)", reviewIDs).Delete(&model.Image{}).Error; err != nil {
			return err
		}
		if err := tx.Where("rating_id = ?", id).Delete(&model.Image{}).Error; err != nil {
			return err
		}
		if err := tx.Where("rating_id = ?", id).Delete(&model.SurveyAnswer{}).Error; err != nil {
			return err
		}
		if err := tx.Where("rating_id = ?", id).Delete(&model.GladPoint{}).Error; err != nil {
			return err
		}
		if err := tx.Where("rating_id = ?", id).Delete(&model.Review{}).Error; err != nil {
			return err
		}

		res := tx.Where("id = ?", id).Delete(&model.Rating{})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return nil
	})
}
