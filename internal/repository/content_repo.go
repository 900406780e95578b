package repository

import (
	"context"
	"time"

	"github.com/gladgrade/gladgrade-server/internal/model"
	"gorm.io/gorm"
)

type FAQFilter struct {
	Category   *string
	ActiveOnly bool
}

type SiteContentFilter struct {
	ActiveOnly    bool
	CategoryID    *uint
	EnvironmentID *uint
}

type ContentRepository interface {
	CreateFAQ(ctx context.Context, faq *model.FAQ) error
	FindFAQByID(ctx context.Context, id uint) (*model.FAQ, error)
	FindFAQs(ctx context.Context, filter FAQFilter, offset, limit int) ([]*model.FAQ, int64, error)
	UpdateFAQ(ctx context.Context, id uint, fields map[string]any) error
	DeleteFAQ(ctx context.Context, id uint) error

	CreateSiteContent(ctx context.Context, content *model.SiteContent, categoryIDs, environmentIDs []uint) error
	FindSiteContentByID(ctx context.Context, id uint) (*model.SiteContent, error)
	FindSiteContents(ctx context.Context, filter SiteContentFilter, offset, limit int) ([]*model.SiteContent, int64, error)
	UpdateSiteContent(ctx context.Context, id uint, fields map[string]any, categoryIDs, environmentIDs []uint) error
	DeleteSiteContentCascade(ctx context.Context, id uint) error

	FindContentCategories(ctx context.Context) ([]*model.ContentCategory, error)
	FindEnvironmentTypes(ctx context.Context) ([]*model.EnvironmentType, error)

	CreateAd(ctx context.Context, ad *model.Ad) error
	FindAdByID(ctx context.Context, id uint) (*model.Ad, error)
	FindAds(ctx context.Context, offset, limit int) ([]*model.Ad, int64, error)
	FindActiveAds(ctx context.Context, placement string, now time.Time) ([]*model.Ad, error)
	UpdateAd(ctx context.Context, id uint, fields map[string]any) error
	DeleteAd(ctx context.Context, id uint) error
}

type contentRepository struct {
	db *gorm.DB
}

func NewContentRepository(db *gorm.DB) ContentRepository {
	return &contentRepository{db: db}
}

func (r *contentRepository) CreateFAQ(ctx context.Context, faq *model.FAQ) error {
	return r.db.WithContext(ctx).Create(faq).Error
}

func (r *contentRepository) FindFAQByID(ctx context.Context, id uint) (*model.FAQ, error) {
	var faq model.FAQ
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&faq).Error; err != nil {
		return nil, err
	}
	return &faq, nil
}

func (r *contentRepository) FindFAQs(ctx context.Context, filter FAQFilter, offset, limit int) ([]*model.FAQ, int64, error) {
	var faqs []*model.FAQ
	var total int64

	query := r.db.WithContext(ctx).Model(&model.FAQ{})

	if filter.Category != nil {
		query = query.Where("category = ?", *filter.Category)
	}
	if filter.ActiveOnly {
		query = query.Where("is_active = ?", true)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	if err := query.Order("sort_order ASC, id ASC").Offset(offset).Limit(limit).Find(&faqs).Error; err != nil {
		return nil, 0, err
	}

	return faqs, total, nil
}

func (r *contentRepository) UpdateFAQ(ctx context.Context, id uint, fields map[string]any) error {
	if len(fields) == 0 {
		return nil
	}
	fields["updated_at"] = time.Now()
	return r.db.WithContext(ctx).
		Model(&model.FAQ{}).
		Where("id = ?", id).
		Updates(fields).Error
}

func (r *contentRepository) DeleteFAQ(ctx context.Context, id uint) error {
	res := r.db.WithContext(ctx).Where("id = ?", id).Delete(&model.FAQ{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// CreateSiteContent writes the content row and its link rows atomically.
func (r *contentRepository) CreateSiteContent(ctx context.Context, content *model.SiteContent, categoryIDs, environmentIDs []uint) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit("Categories", "Environments").Create(content).Error; err != nil {
			return err
		}
		return r.replaceLinks(tx, content, categoryIDs, environmentIDs)
	})
}

func (r *contentRepository) replaceLinks(tx *gorm.DB, content *model.SiteContent, categoryIDs, environmentIDs []uint) error {
	if categoryIDs != nil {
		var categories []model.ContentCategory
		if len(categoryIDs) > 0 {
			if err := tx.Where("id IN ?", categoryIDs).Find(&categories).Error; err != nil {
				return err
			}
		}
		if err := tx.Model(content).Association("Categories").Replace(categories); err != nil {
			return err
		}
	}

	if environmentIDs != nil {
		var environments []model.EnvironmentType
		if len(environmentIDs) > 0 {
			if err := tx.Where("id IN ?", environmentIDs).Find(&environments).Error; err != nil {
				return err
			}
		}
		if err := tx.Model(content).Association("Environments").Replace(environments); err != nil {
			return err
		}
	}

	return nil
}

func (r *contentRepository) FindSiteContentByID(ctx context.Context, id uint) (*model.SiteContent, error) {
	var content model.SiteContent
	if err := r.db.WithContext(ctx).
		Preload("Categories").
		Preload("Environments").
		Where("id = ?", id).
		First(&content).Error; err != nil {
		return nil, err
	}
	return &content, nil
}

func (r *contentRepository) FindSiteContents(ctx context.Context, filter SiteContentFilter, offset, limit int) ([]*model.SiteContent, int64, error) {
	var contents []*model.SiteContent
	var total int64

	query := r.db.WithContext(ctx).Model(&model.SiteContent{}).
		Preload("Categories").
		Preload("Environments")

	if filter.ActiveOnly {
		query = query.Where("is_active = ?", true)
	}
	if filter.CategoryID != nil {
		linked := r.db.Table("site_content_categories").
			Select("site_content_id").
			Where("content_category_id = ?", *filter.CategoryID)
		query = query.Where("id IN (?)", linked)
	}
	if filter.EnvironmentID != nil {
		linked := r.db.Table("site_content_environments").
			Select("site_content_id").
			Where("environment_type_id = ?", *filter.EnvironmentID)
		query = query.Where("id IN (?)", linked)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	if err := query.Order("created_at DESC").Offset(offset).Limit(limit).Find(&contents).Error; err != nil {
		return nil, 0, err
	}

	return contents, total, nil
}

func (r *contentRepository) UpdateSiteContent(ctx context.Context, id uint, fields map[string]any, categoryIDs, environmentIDs []uint) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if len(fields) > 0 {
			fields["updated_at"] = time.Now()
			res := tx.Model(&model.SiteContent{}).Where("id = ?", id).Updates(fields)
			if res.Error != nil {
				return res.Error
			}
			if res.RowsAffected == 0 {
				return gorm.ErrRecordNotFound
			}
		}

		return r.replaceLinks(tx, &model.SiteContent{ID: id}, categoryIDs, environmentIDs)
	})
}

// DeleteSiteContentCascade clears both link tables before removing the
// content row, all in one transaction.
func (r *contentRepository) DeleteSiteContentCascade(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		content := model.SiteContent{ID: id}
		if err := tx.Model(&content).Association("Categories").Clear(); err != nil {
			return err
		}
		if err := tx.Model(&content).Association("Environments").Clear(); err != nil {
			return err
		}

		res := tx.Where("id = ?", id).Delete(&model.SiteContent{})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return nil
	})
}

func (r *contentRepository) FindContentCategories(ctx context.Context) ([]*model.ContentCategory, error) {
	var categories []*model.ContentCategory
	err := r.db.WithContext(ctx).Order("name ASC").Find(&categories).Error
	return categories, err
}

func (r *contentRepository) FindEnvironmentTypes(ctx context.Context) ([]*model.EnvironmentType, error) {
	var environments []*model.EnvironmentType
	err := r.db.WithContext(ctx).Order("name ASC").Find(&environments).Error
	return environments, err
}

func (r *contentRepository) CreateAd(ctx context.Context, ad *model.Ad) error {
	return r.db.WithContext(ctx).Create(ad).Error
}

func (r *contentRepository) FindAdByID(ctx context.Context, id uint) (*model.Ad, error) {
	var ad model.Ad
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&ad).Error; err != nil {
		return nil, err
	}
	return &ad, nil
}

func (r *contentRepository) FindAds(ctx context.Context, offset, limit int) ([]*model.Ad, int64, error) {
	var ads []*model.Ad
	var total int64

	query := r.db.WithContext(ctx).Model(&model.Ad{})

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	if err := query.Order("created_at DESC").Offset(offset).Limit(limit).Find(&ads).Error; err != nil {
		return nil, 0, err
	}

	return ads, total, nil
}

// FindActiveAds returns ads visible for a placement right now: active, past
// their start (or unscheduled) and before their end.
func (r *contentRepository) FindActiveAds(ctx context.Context, placement string, now time.Time) ([]*model.Ad, error) {
	var ads []*model.Ad

	query := r.db.WithContext(ctx).
		Where("is_active = ?", true).
		Where("(starts_at IS NULL OR starts_at <= ?) AND (ends_at IS NULL OR ends_at >= ?)", now, now)
	if placement != "" {
		query = query.Where("placement = ?", placement)
	}

	err := query.Order("created_at DESC").Find(&ads).Error
	return ads, err
}

func (r *contentRepository) UpdateAd(ctx context.Context, id uint, fields map[string]any) error {
	if len(fields) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).
		Model(&model.Ad{}).
		Where("id = ?", id).
		Updates(fields).Error
}

func (r *contentRepository) DeleteAd(ctx context.Context, id uint) error {
	res := r.db.WithContext(ctx).Where("id = ?", id).Delete(&model.Ad{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
