package service

import (
	"context"
	"errors"

	"github.com/gladgrade/gladgrade-server/internal/dto"
	"github.com/gladgrade/gladgrade-server/internal/model"
	"github.com/gladgrade/gladgrade-server/internal/repository"
	"github.com/gladgrade/gladgrade-server/pkg/apperror"
	pkgdto "github.com/gladgrade/gladgrade-server/pkg/dto"
	"github.com/gladgrade/gladgrade-server/pkg/response"
	"gorm.io/gorm"
)

// AdminService covers staff-only user administration. Role gating happens at
// the route; the service enforces the rules that depend on the target.
type AdminService interface {
	ListUsers(ctx context.Context, query dto.UserListQuery) ([]*model.User, *pkgdto.Pagination, error)
	GetUser(ctx context.Context, id uint) (*model.User, []model.Role, error)
	UpdateUser(ctx context.Context, id uint, req dto.UpdateUserRequest) (*model.User, error)
	DeleteUser(ctx context.Context, actor response.Actor, id uint) error
	AddSecondaryRole(ctx context.Context, userID uint, roleName string) error
	RemoveSecondaryRole(ctx context.Context, userID uint, roleName string) error
	ListActivity(ctx context.Context, query dto.ActivityListQuery) ([]*model.UserActivityLog, *pkgdto.Pagination, error)
}

type adminService struct {
	userRepo repository.UserRepository
}

func NewAdminService(userRepo repository.UserRepository) AdminService {
	return &adminService{userRepo: userRepo}
}

func (s *adminService) ListUsers(ctx context.Context, query dto.UserListQuery) ([]*model.User, *pkgdto.Pagination, error) {
	query.Normalize()

	filter := repository.UserFilter{
		Search:         query.Search,
		IsActive:       query.IsActive,
		IncludeDeleted: query.IncludeDeleted,
		GuestsOnly:     query.GuestsOnly,
	}
	if query.Role != nil {
		role, err := s.userRepo.FindRoleByName(ctx, *query.Role)
		if err != nil {
			return nil, nil, apperror.New(400, "unknown role", apperror.ErrBadRequest)
		}
		filter.RoleID = &role.ID
	}

	users, total, err := s.userRepo.FindAll(ctx, filter, query.Offset(), query.Limit)
	if err != nil {
		return nil, nil, err
	}

	pagination := pkgdto.NewPagination(total, query.Page, query.Limit)
	return users, &pagination, nil
}

func (s *adminService) GetUser(ctx context.Context, id uint) (*model.User, []model.Role, error) {
	user, err := s.userRepo.FindByID(ctx, id)
	if err != nil {
		return nil, nil, apperror.FromDB(err)
	}

	secondary, err := s.userRepo.SecondaryRoles(ctx, id)
	if err != nil {
		return nil, nil, err
	}

	return user, secondary, nil
}

func (s *adminService) UpdateUser(ctx context.Context, id uint, req dto.UpdateUserRequest) (*model.User, error) {
	if _, err := s.userRepo.FindByID(ctx, id); err != nil {
		return nil, apperror.FromDB(err)
	}

	fields := req.Fields()
	if req.RoleName != nil {
		role, err := s.userRepo.FindRoleByName(ctx, *req.RoleName)
		if err != nil {
			return nil, apperror.New(400, "unknown role", apperror.ErrBadRequest)
		}
		fields["role_id"] = role.ID
	}

	if err := s.userRepo.Update(ctx, id, fields); err != nil {
		return nil, apperror.FromDB(err)
	}

	return s.userRepo.FindByID(ctx, id)
}

// DeleteUser soft-deletes the target; self-deletion is rejected so an admin
// cannot lock themselves out mid-session.
func (s *adminService) DeleteUser(ctx context.Context, actor response.Actor, id uint) error {
	if actor.UserID == id {
		return apperror.New(400, "you cannot delete your own account", apperror.ErrBadRequest)
	}

	if err := s.userRepo.SoftDelete(ctx, id, actor.UserID); err != nil {
		return apperror.FromDB(err)
	}
	return nil
}

func (s *adminService) AddSecondaryRole(ctx context.Context, userID uint, roleName string) error {
	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		return apperror.FromDB(err)
	}

	role, err := s.userRepo.FindRoleByName(ctx, roleName)
	if err != nil {
		return apperror.New(400, "unknown role", apperror.ErrBadRequest)
	}

	if user.RoleID != nil && *user.RoleID == role.ID {
		return apperror.New(409, "role is already the user's primary role", apperror.ErrConflict)
	}

	if err := s.userRepo.AddSecondaryRole(ctx, userID, role.ID); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			// Assigning an already-held role is a no-op.
			return nil
		}
		return apperror.FromDB(err)
	}
	return nil
}

func (s *adminService) RemoveSecondaryRole(ctx context.Context, userID uint, roleName string) error {
	role, err := s.userRepo.FindRoleByName(ctx, roleName)
	if err != nil {
		return apperror.New(400, "unknown role", apperror.ErrBadRequest)
	}
	return s.userRepo.RemoveSecondaryRole(ctx, userID, role.ID)
}

func (s *adminService) ListActivity(ctx context.Context, query dto.ActivityListQuery) ([]*model.UserActivityLog, *pkgdto.Pagination, error) {
	query.Normalize()

	entries, total, err := s.userRepo.FindActivity(ctx, query.UserID, query.Offset(), query.Limit)
	if err != nil {
		return nil, nil, err
	}

	pagination := pkgdto.NewPagination(total, query.Page, query.Limit)
	return entries, &pagination, nil
}
