package repository

import (
	"context"
	"time"

	"github.com/gladgrade/gladgrade-server/internal/model"
	"gorm.io/gorm"
)

type BusinessFilter struct {
	OwnerID    *uint
	SectorID   *uint
	TypeID     *uint
	Search     string
	IsVerified *bool
	IsActive   *bool
}

type BusinessRepository interface {
	Create(ctx context.Context, business *model.Business) error
	FindByID(ctx context.Context, id uint) (*model.Business, error)
	FindAll(ctx context.Context, filter BusinessFilter, offset, limit int) ([]*model.Business, int64, error)
	Update(ctx context.Context, id uint, fields map[string]any) error
	Delete(ctx context.Context, id uint) error

	FindSectors(ctx context.Context) ([]*model.BusinessSector, error)
	CreateSector(ctx context.Context, sector *model.BusinessSector) error
	FindTypes(ctx context.Context, sectorID *uint) ([]*model.BusinessType, error)
	FindTypeByID(ctx context.Context, id uint) (*model.BusinessType, error)
	CreateType(ctx context.Context, bt *model.BusinessType) error
	UpdateType(ctx context.Context, id uint, fields map[string]any) error
}

type businessRepository struct {
	db *gorm.DB
}

func NewBusinessRepository(db *gorm.DB) BusinessRepository {
	return &businessRepository{db: db}
}

func (r *businessRepository) Create(ctx context.Context, business *model.Business) error {
	return r.db.WithContext(ctx).Create(business).Error
}

func (r *businessRepository) FindByID(ctx context.Context, id uint) (*model.Business, error) {
	var business model.Business
	if err := r.db.WithContext(ctx).
		Preload("Owner").
		Preload("BusinessType").
		Preload("BusinessType.Sector").
		Where("id = ?", id).
		First(&business).Error; err != nil {
		return nil, err
	}
	return &business, nil
}

func (r *businessRepository) FindAll(ctx context.Context, filter BusinessFilter, offset, limit int) ([]*model.Business, int64, error) {
	var businesses []*model.Business
	var total int64

	query := r.db.WithContext(ctx).Model(&model.Business{}).
		Preload("Owner").
		Preload("BusinessType")

	if filter.OwnerID != nil {
		query = query.Where("owner_id = ?", *filter.OwnerID)
	}
	if filter.TypeID != nil {
		query = query.Where("business_type_id = ?", *filter.TypeID)
	}
	if filter.SectorID != nil {
		typeIDs := r.db.Model(&model.BusinessType{}).Select("id").Where("sector_id = ?", *filter.SectorID)
		query = query.Where("business_type_id IN (?)", typeIDs)
	}
	if filter.Search != "" {
		pattern := "%" + filter.Search + "%"
		query = query.Where("(LOWER(name) LIKE LOWER(?) OR LOWER(city) LIKE LOWER(?))", pattern, pattern)
	}
	if filter.IsVerified != nil {
		query = query.Where("is_verified = ?", *filter.IsVerified)
	}
	if filter.IsActive != nil {
		query = query.Where("is_active = ?", *filter.IsActive)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	if err := query.Order("name ASC").Offset(offset).Limit(limit).Find(&businesses).Error; err != nil {
		return nil, 0, err
	}

	return businesses, total, nil
}

func (r *businessRepository) Update(ctx context.Context, id uint, fields map[string]any) error {
	if len(fields) == 0 {
		return nil
	}
	fields["updated_at"] = time.Now()
	return r.db.WithContext(ctx).
		Model(&model.Business{}).
		Where("id = ?", id).
		Updates(fields).Error
}

func (r *businessRepository) Delete(ctx context.Context, id uint) error {
	res := r.db.WithContext(ctx).Where("id = ?", id).Delete(&model.Business{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *businessRepository) FindSectors(ctx context.Context) ([]*model.BusinessSector, error) {
	var sectors []*model.BusinessSector
	err := r.db.WithContext(ctx).
		Where("is_active = ?", true).
		Order("name ASC").
		Find(&sectors).Error
	return sectors, err
}

func (r *businessRepository) CreateSector(ctx context.Context, sector *model.BusinessSector) error {
	return r.db.WithContext(ctx).Create(sector).Error
}

func (r *businessRepository) FindTypes(ctx context.Context, sectorID *uint) ([]*model.BusinessType, error) {
	var types []*model.BusinessType

	query := r.db.WithContext(ctx).Preload("Sector").Where("is_active = ?", true)
	if sectorID != nil {
		query = query.Where("sector_id = ?", *sectorID)
	}

	err := query.Order("name ASC").Find(&types).Error
	return types, err
}

func (r *businessRepository) FindTypeByID(ctx context.Context, id uint) (*model.BusinessType, error) {
	var bt model.BusinessType
	if err := r.db.WithContext(ctx).Preload("Sector").Where("id = ?", id).First(&bt).Error; err != nil {
		return nil, err
	}
	return &bt, nil
}

func (r *businessRepository) CreateType(ctx context.Context, bt *model.BusinessType) error {
	return r.db.WithContext(ctx).Create(bt).Error
}

func (r *businessRepository) UpdateType(ctx context.Context, id uint, fields map[string]any) error {
	if len(fields) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).
		Model(&model.BusinessType{}).
		Where("id = ?", id).
		Updates(fields).Error
}
