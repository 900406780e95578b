package service

import (
	"context"
	"errors"
	"mime/multipart"

	"github.com/gladgrade/gladgrade-server/internal/dto"
	"github.com/gladgrade/gladgrade-server/internal/model"
	"github.com/gladgrade/gladgrade-server/internal/repository"
	"github.com/gladgrade/gladgrade-server/pkg/apperror"
	"github.com/gladgrade/gladgrade-server/pkg/response"
	"github.com/gladgrade/gladgrade-server/pkg/storage"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type AuthService interface {
	// ResolveActor maps a verified subject id to the internal user id and
	// the union of primary and secondary role names.
	ResolveActor(ctx context.Context, subjectID string) (response.Actor, error)
	Register(ctx context.Context, subjectID string, req dto.RegisterRequest) (*model.User, error)
	GuestLogin(ctx context.Context, subjectID string) (*model.User, error)
	GetProfile(ctx context.Context, userID uint) (*model.User, int64, error)
	UpdateProfile(ctx context.Context, userID uint, req dto.UpdateProfileRequest) (*model.User, error)
	UploadAvatar(ctx context.Context, userID uint, file *multipart.FileHeader) (*model.User, error)
	RecordLogin(ctx context.Context, userID uint) error
}

type authService struct {
	userRepo     repository.UserRepository
	pointsRepo   repository.PointsRepository
	imageStorage storage.ImageStorage
}

func NewAuthService(userRepo repository.UserRepository, pointsRepo repository.PointsRepository, imageStorage storage.ImageStorage) AuthService {
	return &authService{
		userRepo:     userRepo,
		pointsRepo:   pointsRepo,
		imageStorage: imageStorage,
	}
}

func (s *authService) ResolveActor(ctx context.Context, subjectID string) (response.Actor, error) {
	user, err := s.userRepo.FindBySubjectID(ctx, subjectID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			// Valid token but no user row: distinct from invalid credential.
			return response.Actor{}, apperror.New(404, "no account for this identity", apperror.ErrNotFound)
		}
		return response.Actor{}, err
	}

	if user.IsDeleted || !user.IsActive {
		return response.Actor{}, apperror.New(403, "account is disabled", apperror.ErrForbidden)
	}

	roles := []string{user.Role.Name}
	secondary, err := s.userRepo.SecondaryRoles(ctx, user.ID)
	if err != nil {
		return response.Actor{}, err
	}
	for _, role := range secondary {
		roles = append(roles, role.Name)
	}

	return response.Actor{UserID: user.ID, Roles: roles}, nil
}

func (s *authService) Register(ctx context.Context, subjectID string, req dto.RegisterRequest) (*model.User, error) {
	if _, err := s.userRepo.FindByEmail(ctx, req.Email); err == nil {
		return nil, apperror.New(409, "an account already exists for this identity or email", apperror.ErrConflict)
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	role, err := s.userRepo.FindRoleByName(ctx, model.RoleUser)
	if err != nil {
		return nil, err
	}

	user := &model.User{
		SubjectID:   subjectID,
		Email:       &req.Email,
		FirstName:   req.FirstName,
		LastName:    req.LastName,
		DisplayName: req.DisplayName,
		RoleID:      &role.ID,
		IsActive:    true,
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, apperror.New(409, "an account already exists for this identity or email", apperror.ErrConflict)
		}
		return nil, err
	}

	_ = s.userRepo.LogActivity(ctx, &model.UserActivityLog{
		UserID: user.ID,
		Action: "user_registered",
	})

	return s.userRepo.FindByID(ctx, user.ID)
}

// GuestLogin is idempotent per subject id: the second call with the same
// subject returns the same internal user instead of creating a duplicate.
func (s *authService) GuestLogin(ctx context.Context, subjectID string) (*model.User, error) {
	user, err := s.userRepo.FindBySubjectID(ctx, subjectID)
	if err == nil {
		return user, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	role, err := s.userRepo.FindRoleByName(ctx, model.RoleGuest)
	if err != nil {
		return nil, err
	}

	display := "guest-" + uuid.NewString()[:8]
	guest := &model.User{
		SubjectID:   subjectID,
		DisplayName: &display,
		RoleID:      &role.ID,
		IsActive:    true,
		IsGuest:     true,
	}

	if err := s.userRepo.Create(ctx, guest); err != nil {
		// Two concurrent guest logins can race on the subject id; the
		// unique constraint resolves it, and we read back the winner.
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return s.userRepo.FindBySubjectID(ctx, subjectID)
		}
		return nil, err
	}

	return s.userRepo.FindByID(ctx, guest.ID)
}

func (s *authService) GetProfile(ctx context.Context, userID uint) (*model.User, int64, error) {
	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		return nil, 0, apperror.FromDB(err)
	}

	points, err := s.pointsRepo.TotalForUser(ctx, userID)
	if err != nil {
		return nil, 0, err
	}

	return user, points, nil
}

func (s *authService) UpdateProfile(ctx context.Context, userID uint, req dto.UpdateProfileRequest) (*model.User, error) {
	if err := s.userRepo.Update(ctx, userID, req.Fields()); err != nil {
		return nil, apperror.FromDB(err)
	}
	return s.userRepo.FindByID(ctx, userID)
}

func (s *authService) UploadAvatar(ctx context.Context, userID uint, file *multipart.FileHeader) (*model.User, error) {
	f, err := file.Open()
	if err != nil {
		return nil, apperror.New(400, "could not read uploaded file", apperror.ErrBadRequest)
	}
	defer f.Close()

	url, err := s.imageStorage.UploadImage(ctx, f, "avatars", file.Filename)
	if err != nil {
		return nil, err
	}

	if err := s.userRepo.Update(ctx, userID, map[string]any{"avatar_url": url}); err != nil {
		return nil, apperror.FromDB(err)
	}

	return s.userRepo.FindByID(ctx, userID)
}

func (s *authService) RecordLogin(ctx context.Context, userID uint) error {
	if err := s.userRepo.UpdateLastLogin(ctx, userID); err != nil {
		return err
	}
	return s.userRepo.LogActivity(ctx, &model.UserActivityLog{
		UserID: userID,
		Action: "user_login",
	})
}
