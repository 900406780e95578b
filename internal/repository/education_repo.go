package repository

import (
	"context"

	"github.com/gladgrade/gladgrade-server/internal/model"
	"gorm.io/gorm"
)

type LocationFilter struct {
	AreaID       *uint
	Search       string
	LocationType string
	ActiveOnly   bool
}

type EducationRepository interface {
	FindAreas(ctx context.Context) ([]*model.EducationArea, error)
	CreateArea(ctx context.Context, area *model.EducationArea) error

	FindLocations(ctx context.Context, filter LocationFilter, offset, limit int) ([]*model.EducationLocation, int64, error)
	FindLocationByID(ctx context.Context, id uint) (*model.EducationLocation, error)
	CreateLocation(ctx context.Context, location *model.EducationLocation) error
	UpdateLocation(ctx context.Context, id uint, fields map[string]any) error

	FindDormsByLocation(ctx context.Context, locationID uint) ([]*model.Dorm, error)
	FindDormByID(ctx context.Context, id uint) (*model.Dorm, error)
	CreateDorm(ctx context.Context, dorm *model.Dorm) error
	UpdateDorm(ctx context.Context, id uint, fields map[string]any) error

	FindDepartmentsByLocation(ctx context.Context, locationID uint) ([]*model.Department, error)
	CreateDepartment(ctx context.Context, department *model.Department) error
	FindProfessorsByDepartment(ctx context.Context, departmentID uint) ([]*model.Professor, error)
	CreateProfessor(ctx context.Context, professor *model.Professor) error
	FindCoursesByDepartment(ctx context.Context, departmentID uint) ([]*model.Course, error)
	CreateCourse(ctx context.Context, course *model.Course) error

	FindInternetOptions(ctx context.Context, locationID uint) ([]*model.InternetOption, error)
	FindSecurityOptions(ctx context.Context, locationID uint) ([]*model.SecurityOption, error)
	FindSocialOptions(ctx context.Context, locationID uint) ([]*model.SocialOption, error)
}

type educationRepository struct {
	db *gorm.DB
}

func NewEducationRepository(db *gorm.DB) EducationRepository {
	return &educationRepository{db: db}
}

func (r *educationRepository) FindAreas(ctx context.Context) ([]*model.EducationArea, error) {
	var areas []*model.EducationArea
	err := r.db.WithContext(ctx).
		Where("is_active = ?", true).
		Order("name ASC").
		Find(&areas).Error
	return areas, err
}

func (r *educationRepository) CreateArea(ctx context.Context, area *model.EducationArea) error {
	return r.db.WithContext(ctx).Create(area).Error
}

func (r *educationRepository) FindLocations(ctx context.Context, filter LocationFilter, offset, limit int) ([]*model.EducationLocation, int64, error) {
	var locations []*model.EducationLocation
	var total int64

	query := r.db.WithContext(ctx).Model(&model.EducationLocation{}).Preload("Area")

	if filter.AreaID != nil {
		query = query.Where("area_id = ?", *filter.AreaID)
	}
	if filter.Search != "" {
		query = query.Where("LOWER(name) LIKE LOWER(?)", "%"+filter.Search+"%")
	}
	if filter.LocationType != "" {
		query = query.Where("location_type = ?", filter.LocationType)
	}
	if filter.ActiveOnly {
		query = query.Where("is_active = ?", true)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	if err := query.Order("name ASC").Offset(offset).Limit(limit).Find(&locations).Error; err != nil {
		return nil, 0, err
	}

	return locations, total, nil
}

func (r *educationRepository) FindLocationByID(ctx context.Context, id uint) (*model.EducationLocation, error) {
	var location model.EducationLocation
	if err := r.db.WithContext(ctx).
		Preload("Area").
		Where("id = ?", id).
		First(&location).Error; err != nil {
		return nil, err
	}
	return &location, nil
}

func (r *educationRepository) CreateLocation(ctx context.Context, location *model.EducationLocation) error {
	return r.db.WithContext(ctx).Create(location).Error
}

func (r *educationRepository) UpdateLocation(ctx context.Context, id uint, fields map[string]any) error {
	if len(fields) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).
		Model(&model.EducationLocation{}).
		Where("id = ?", id).
		Updates(fields).Error
}

func (r *educationRepository) FindDormsByLocation(ctx context.Context, locationID uint) ([]*model.Dorm, error) {
	var dorms []*model.Dorm
	err := r.db.WithContext(ctx).
		Where("location_id = ? AND is_active = ?", locationID, true).
		Order("name ASC").
		Find(&dorms).Error
	return dorms, err
}

func (r *educationRepository) FindDormByID(ctx context.Context, id uint) (*model.Dorm, error) {
	var dorm model.Dorm
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&dorm).Error; err != nil {
		return nil, err
	}
	return &dorm, nil
}

func (r *educationRepository) CreateDorm(ctx context.Context, dorm *model.Dorm) error {
	return r.db.WithContext(ctx).Create(dorm).Error
}

func (r *educationRepository) UpdateDorm(ctx context.Context, id uint, fields map[string]any) error {
	if len(fields) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).
		Model(&model.Dorm{}).
		Where("id = ?", id).
		Updates(fields).Error
}

func (r *educationRepository) FindDepartmentsByLocation(ctx context.Context, locationID uint) ([]*model.Department, error) {
	var departments []*model.Department
	err := r.db.WithContext(ctx).
		Where("location_id = ?", locationID).
		Order("name ASC").
		Find(&departments).Error
	return departments, err
}

func (r *educationRepository) CreateDepartment(ctx context.Context, department *model.Department) error {
	return r.db.WithContext(ctx).Create(department).Error
}

func (r *educationRepository) FindProfessorsByDepartment(ctx context.Context, departmentID uint) ([]*model.Professor, error) {
	var professors []*model.Professor
	err := r.db.WithContext(ctx).
		Where("department_id = ?", departmentID).
		Order("last_name ASC, first_name ASC").
		Find(&professors).Error
	return professors, err
}

func (r *educationRepository) CreateProfessor(ctx context.Context, professor *model.Professor) error {
	return r.db.WithContext(ctx).Create(professor).Error
}

func (r *educationRepository) FindCoursesByDepartment(ctx context.Context, departmentID uint) ([]*model.Course, error) {
	var courses []*model.Course
	err := r.db.WithContext(ctx).
		Where("department_id = ?", departmentID).
		Order("code ASC").
		Find(&courses).Error
	return courses, err
}

func (r *educationRepository) CreateCourse(ctx context.Context, course *model.Course) error {
	return r.db.WithContext(ctx).Create(course).Error
}

func (r *educationRepository) FindInternetOptions(ctx context.Context, locationID uint) ([]*model.InternetOption, error) {
	var options []*model.InternetOption
	err := r.db.WithContext(ctx).Where("location_id = ?", locationID).Order("name ASC").Find(&options).Error
	return options, err
}

func (r *educationRepository) FindSecurityOptions(ctx context.Context, locationID uint) ([]*model.SecurityOption, error) {
	var options []*model.SecurityOption
	err := r.db.WithContext(ctx).Where("location_id = ?", locationID).Order("name ASC").Find(&options).Error
	return options, err
}

func (r *educationRepository) FindSocialOptions(ctx context.Context, locationID uint) ([]*model.SocialOption, error) {
	var options []*model.SocialOption
	err := r.db.WithContext(ctx).Where("location_id = ?", locationID).Order("name ASC").Find(&options).Error
	return options, err
}
