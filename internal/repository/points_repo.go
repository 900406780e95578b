package repository

import (
	"context"

	"github.com/gladgrade/gladgrade-server/internal/model"
	"gorm.io/gorm"
)

type PointsRepository interface {
	// Award inserts the ledger row. A duplicate (rating, user) pair surfaces
	// as gorm.ErrDuplicatedKey; the service treats that as idempotent success.
	Award(ctx context.Context, entry *model.GladPoint) error
	FindByUser(ctx context.Context, userID uint, offset, limit int) ([]*model.GladPoint, int64, error)
	TotalForUser(ctx context.Context, userID uint) (int64, error)
}

type pointsRepository struct {
	db *gorm.DB
}

func NewPointsRepository(db *gorm.DB) PointsRepository {
	return &pointsRepository{db: db}
}

func (r *pointsRepository) Award(ctx context.Context, entry *model.GladPoint) error {
	return r.db.WithContext(ctx).Create(entry).Error
}

func (r *pointsRepository) FindByUser(ctx context.Context, userID uint, offset, limit int) ([]*model.GladPoint, int64, error) {
	var entries []*model.GladPoint
	var total int64

	query := r.db.WithContext(ctx).Model(&model.GladPoint{}).Where("user_id = ?", userID)

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	if err := query.Order("created_at DESC").Offset(offset).Limit(limit).Find(&entries).Error; err != nil {
		return nil, 0, err
	}

	return entries, total, nil
}

func (r *pointsRepository) TotalForUser(ctx context.Context, userID uint) (int64, error) {
	var total int64
	err := r.db.WithContext(ctx).
		Model(&model.GladPoint{}).
		Where("user_id = ?", userID).
		Select("COALESCE(SUM(points), 0)").
		Scan(&total).Error
	return total, err
}
