package repository

import (
	"context"
	"strconv"
	"time"

	"github.com/gladgrade/gladgrade-server/internal/model"
	"gorm.io/gorm"
)

// UserFilter narrows the paged user listing. Each set field appends one AND
// condition shared by the count and data queries.
type UserFilter struct {
	Search         string
	RoleID         *uint
	IsActive       *bool
	IncludeDeleted bool
	GuestsOnly     bool
}

type UserRepository interface {
	Create(ctx context.Context, user *model.User) error
	FindByID(ctx context.Context, id uint) (*model.User, error)
	FindBySubjectID(ctx context.Context, subjectID string) (*model.User, error)
	FindByEmail(ctx context.Context, email string) (*model.User, error)
	FindAll(ctx context.Context, filter UserFilter, offset, limit int) ([]*model.User, int64, error)
	Update(ctx context.Context, id uint, fields map[string]any) error
	SoftDelete(ctx context.Context, id uint, actorID uint) error
	UpdateLastLogin(ctx context.Context, id uint) error
	FindRoleByName(ctx context.Context, name string) (*model.Role, error)
	SecondaryRoles(ctx context.Context, userID uint) ([]model.Role, error)
	AddSecondaryRole(ctx context.Context, userID, roleID uint) error
	RemoveSecondaryRole(ctx context.Context, userID, roleID uint) error
	LogActivity(ctx context.Context, entry *model.UserActivityLog) error
	FindActivity(ctx context.Context, userID *uint, offset, limit int) ([]*model.UserActivityLog, int64, error)
}

type userRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) UserRepository {
	return &userRepository{db: db}
}

func (r *userRepository) Create(ctx context.Context, user *model.User) error {
	return r.db.WithContext(ctx).Create(user).Error
}

func (r *userRepository) FindByID(ctx context.Context, id uint) (*model.User, error) {
	var user model.User
	if err := r.db.WithContext(ctx).
		Preload("Role").
		Where("id = ?", id).
		First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) FindBySubjectID(ctx context.Context, subjectID string) (*model.User, error) {
	var user model.User
	if err := r.db.WithContext(ctx).
		Preload("Role").
		Where("subject_id = ?", subjectID).
		First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	var user model.User
	if err := r.db.WithContext(ctx).
		Preload("Role").
		Where("email = ?", email).
		First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) FindAll(ctx context.Context, filter UserFilter, offset, limit int) ([]*model.User, int64, error) {
	var users []*model.User
	var total int64

	query := r.db.WithContext(ctx).Model(&model.User{}).Preload("Role")

	if !filter.IncludeDeleted {
		query = query.Where("is_deleted = ?", false)
	}
	if filter.Search != "" {
		pattern := "%" + filter.Search + "%"
		query = query.Where(
			"(LOWER(email) LIKE LOWER(?) OR LOWER(display_name) LIKE LOWER(?))",
			pattern, pattern,
		)
	}
	if filter.RoleID != nil {
		query = query.Where("role_id = ?", *filter.RoleID)
	}
	if filter.IsActive != nil {
		query = query.Where("is_active = ?", *filter.IsActive)
	}
	if filter.GuestsOnly {
		query = query.Where("is_guest = ?", true)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	if err := query.Order("created_at DESC").Offset(offset).Limit(limit).Find(&users).Error; err != nil {
		return nil, 0, err
	}

	return users, total, nil
}

func (r *userRepository) Update(ctx context.Context, id uint, fields map[string]any) error {
	if len(fields) == 0 {
		return nil
	}
	fields["updated_at"] = time.Now()
	return r.db.WithContext(ctx).
		Model(&model.User{}).
		Where("id = ?", id).
		Updates(fields).Error
}

// SoftDelete flips the deletion flags and writes the audit row in one
// transaction. User rows are never hard-deleted.
func (r *userRepository) SoftDelete(ctx context.Context, id uint, actorID uint) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&model.User{}).
			Where("id = ? AND is_deleted = ?", id, false).
			Updates(map[string]any{
				"is_deleted": true,
				"is_active":  false,
				"updated_at": time.Now(),
			})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}

		return tx.Create(&model.UserActivityLog{
			UserID: actorID,
			Action: "user_deleted",
			Detail: "soft-deleted user " + strconv.Itoa(int(id)),
		}).Error
	})
}

func (r *userRepository) UpdateLastLogin(ctx context.Context, id uint) error {
	now := time.Now()
	return r.db.WithContext(ctx).
		Model(&model.User{}).
		Where("id = ?", id).
		Update("last_login_at", now).Error
}

func (r *userRepository) FindRoleByName(ctx context.Context, name string) (*model.Role, error) {
	var role model.Role
	if err := r.db.WithContext(ctx).Where("name = ?", name).First(&role).Error; err != nil {
		return nil, err
	}
	return &role, nil
}

func (r *userRepository) SecondaryRoles(ctx context.Context, userID uint) ([]model.Role, error) {
	var roles []model.Role
	err := r.db.WithContext(ctx).
		Model(&model.Role{}).
		Joins("JOIN user_secondary_roles ON user_secondary_roles.role_id = roles.id").
		Where("user_secondary_roles.user_id = ?", userID).
		Find(&roles).Error
	return roles, err
}

func (r *userRepository) AddSecondaryRole(ctx context.Context, userID, roleID uint) error {
	return r.db.WithContext(ctx).Create(&model.UserSecondaryRole{
		UserID: userID,
		RoleID: roleID,
	}).Error
}

func (r *userRepository) RemoveSecondaryRole(ctx context.Context, userID, roleID uint) error {
	return r.db.WithContext(ctx).
		Where("user_id = ? AND role_id = ?", userID, roleID).
		Delete(&model.UserSecondaryRole{}).Error
}

func (r *userRepository) LogActivity(ctx context.Context, entry *model.UserActivityLog) error {
	return r.db.WithContext(ctx).Create(entry).Error
}

func (r *userRepository) FindActivity(ctx context.Context, userID *uint, offset, limit int) ([]*model.UserActivityLog, int64, error) {
	var entries []*model.UserActivityLog
	var total int64

	query := r.db.WithContext(ctx).Model(&model.UserActivityLog{})
	if userID != nil {
		query = query.Where("user_id = ?", *userID)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	if err := query.Order("created_at DESC").Offset(offset).Limit(limit).Find(&entries).Error; err != nil {
		return nil, 0, err
	}

	return entries, total, nil
}
