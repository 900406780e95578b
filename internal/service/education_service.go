package service

import (
	"context"

	"github.com/gladgrade/gladgrade-server/internal/dto"
	"github.com/gladgrade/gladgrade-server/internal/model"
	"github.com/gladgrade/gladgrade-server/internal/repository"
	"github.com/gladgrade/gladgrade-server/pkg/apperror"
	pkgdto "github.com/gladgrade/gladgrade-server/pkg/dto"
)

// LocationDetail bundles a location with its directory sub-resources so the
// detail page loads in one request.
type LocationDetail struct {
	*model.EducationLocation
	Dorms           []*model.Dorm           `json:"dorms"`
	Departments     []*model.Department     `json:"departments"`
	InternetOptions []*model.InternetOption `json:"internetOptions"`
	SecurityOptions []*model.SecurityOption `json:"securityOptions"`
	SocialOptions   []*model.SocialOption   `json:"socialOptions"`
}

// DormDetail pairs a dorm with its active gallery images.
type DormDetail struct {
	*model.Dorm
	Images []*model.Image `json:"images"`
}

type EducationService interface {
	ListAreas(ctx context.Context) ([]*model.EducationArea, error)
	CreateArea(ctx context.Context, req dto.CreateAreaRequest) (*model.EducationArea, error)

	ListLocations(ctx context.Context, query dto.LocationListQuery, staff bool) ([]*model.EducationLocation, *pkgdto.Pagination, error)
	GetLocation(ctx context.Context, id uint) (*LocationDetail, error)
	CreateLocation(ctx context.Context, req dto.CreateLocationRequest) (*model.EducationLocation, error)
	UpdateLocation(ctx context.Context, id uint, req dto.UpdateLocationRequest) (*model.EducationLocation, error)

	ListDorms(ctx context.Context, locationID uint) ([]*model.Dorm, error)
	GetDorm(ctx context.Context, id uint) (*DormDetail, error)
	CreateDorm(ctx context.Context, req dto.CreateDormRequest) (*model.Dorm, error)
	UpdateDorm(ctx context.Context, id uint, req dto.UpdateDormRequest) (*model.Dorm, error)

	ListDepartments(ctx context.Context, locationID uint) ([]*model.Department, error)
	CreateDepartment(ctx context.Context, req dto.CreateDepartmentRequest) (*model.Department, error)
	ListProfessors(ctx context.Context, departmentID uint) ([]*model.Professor, error)
	CreateProfessor(ctx context.Context, req dto.CreateProfessorRequest) (*model.Professor, error)
	ListCourses(ctx context.Context, departmentID uint) ([]*model.Course, error)
	CreateCourse(ctx context.Context, req dto.CreateCourseRequest) (*model.Course, error)
}

type educationService struct {
	educationRepo repository.EducationRepository
	imageRepo     repository.ImageRepository
}

func NewEducationService(educationRepo repository.EducationRepository, imageRepo repository.ImageRepository) EducationService {
	return &educationService{educationRepo: educationRepo, imageRepo: imageRepo}
}

func (s *educationService) ListAreas(ctx context.Context) ([]*model.EducationArea, error) {
	return s.educationRepo.FindAreas(ctx)
}

func (s *educationService) CreateArea(ctx context.Context, req dto.CreateAreaRequest) (*model.EducationArea, error) {
	area := &model.EducationArea{Name: req.Name, IsActive: true}
	if err := s.educationRepo.CreateArea(ctx, area); err != nil {
		return nil, apperror.FromDB(err)
	}
	return area, nil
}

func (s *educationService) ListLocations(ctx context.Context, query dto.LocationListQuery, staff bool) ([]*model.EducationLocation, *pkgdto.Pagination, error) {
	query.Normalize()

	filter := repository.LocationFilter{
		AreaID:       query.AreaID,
		Search:       query.Search,
		LocationType: query.LocationType,
		ActiveOnly:   !staff,
	}

	locations, total, err := s.educationRepo.FindLocations(ctx, filter, query.Offset(), query.Limit)
	if err != nil {
		return nil, nil, err
	}

	pagination := pkgdto.NewPagination(total, query.Page, query.Limit)
	return locations, &pagination, nil
}

func (s *educationService) GetLocation(ctx context.Context, id uint) (*LocationDetail, error) {
	location, err := s.educationRepo.FindLocationByID(ctx, id)
	if err != nil {
		return nil, apperror.FromDB(err)
	}

	detail := &LocationDetail{EducationLocation: location}

	if detail.Dorms, err = s.educationRepo.FindDormsByLocation(ctx, id); err != nil {
		return nil, err
	}
	if detail.Departments, err = s.educationRepo.FindDepartmentsByLocation(ctx, id); err != nil {
		return nil, err
	}
	if detail.InternetOptions, err = s.educationRepo.FindInternetOptions(ctx, id); err != nil {
		return nil, err
	}
	if detail.SecurityOptions, err = s.educationRepo.FindSecurityOptions(ctx, id); err != nil {
		return nil, err
	}
	if detail.SocialOptions, err = s.educationRepo.FindSocialOptions(ctx, id); err != nil {
		return nil, err
	}

	return detail, nil
}

func (s *educationService) CreateLocation(ctx context.Context, req dto.CreateLocationRequest) (*model.EducationLocation, error) {
	location := &model.EducationLocation{
		AreaID:       req.AreaID,
		Name:         req.Name,
		Address:      req.Address,
		LocationType: req.LocationType,
		IsActive:     true,
	}
	if err := s.educationRepo.CreateLocation(ctx, location); err != nil {
		return nil, apperror.FromDB(err)
	}
	return s.educationRepo.FindLocationByID(ctx, location.ID)
}

func (s *educationService) UpdateLocation(ctx context.Context, id uint, req dto.UpdateLocationRequest) (*model.EducationLocation, error) {
	if _, err := s.educationRepo.FindLocationByID(ctx, id); err != nil {
		return nil, apperror.FromDB(err)
	}
	if err := s.educationRepo.UpdateLocation(ctx, id, req.Fields()); err != nil {
		return nil, apperror.FromDB(err)
	}
	return s.educationRepo.FindLocationByID(ctx, id)
}

func (s *educationService) ListDorms(ctx context.Context, locationID uint) ([]*model.Dorm, error) {
	return s.educationRepo.FindDormsByLocation(ctx, locationID)
}

func (s *educationService) GetDorm(ctx context.Context, id uint) (*DormDetail, error) {
	dorm, err := s.educationRepo.FindDormByID(ctx, id)
	if err != nil {
		return nil, apperror.FromDB(err)
	}

	images, err := s.imageRepo.FindByDorm(ctx, id)
	if err != nil {
		return nil, err
	}

	return &DormDetail{Dorm: dorm, Images: images}, nil
}

func (s *educationService) CreateDorm(ctx context.Context, req dto.CreateDormRequest) (*model.Dorm, error) {
	if _, err := s.educationRepo.FindLocationByID(ctx, req.LocationID); err != nil {
		return nil, apperror.New(400, "unknown education location", apperror.ErrBadRequest)
	}

	dorm := &model.Dorm{
		LocationID:  req.LocationID,
		Name:        req.Name,
		Description: req.Description,
		IsActive:    true,
	}
	if err := s.educationRepo.CreateDorm(ctx, dorm); err != nil {
		return nil, apperror.FromDB(err)
	}
	return dorm, nil
}

func (s *educationService) UpdateDorm(ctx context.Context, id uint, req dto.UpdateDormRequest) (*model.Dorm, error) {
	if _, err := s.educationRepo.FindDormByID(ctx, id); err != nil {
		return nil, apperror.FromDB(err)
	}
	if err := s.educationRepo.UpdateDorm(ctx, id, req.Fields()); err != nil {
		return nil, apperror.FromDB(err)
	}
	return s.educationRepo.FindDormByID(ctx, id)
}

func (s *educationService) ListDepartments(ctx context.Context, locationID uint) ([]*model.Department, error) {
	return s.educationRepo.FindDepartmentsByLocation(ctx, locationID)
}

func (s *educationService) CreateDepartment(ctx context.Context, req dto.CreateDepartmentRequest) (*model.Department, error) {
	if _, err := s.educationRepo.FindLocationByID(ctx, req.LocationID); err != nil {
		return nil, apperror.New(400, "unknown education location", apperror.ErrBadRequest)
	}

	department := &model.Department{LocationID: req.LocationID, Name: req.Name}
	if err := s.educationRepo.CreateDepartment(ctx, department); err != nil {
		return nil, apperror.FromDB(err)
	}
	return department, nil
}

func (s *educationService) ListProfessors(ctx context.Context, departmentID uint) ([]*model.Professor, error) {
	return s.educationRepo.FindProfessorsByDepartment(ctx, departmentID)
}

func (s *educationService) CreateProfessor(ctx context.Context, req dto.CreateProfessorRequest) (*model.Professor, error) {
	professor := &model.Professor{
		DepartmentID: req.DepartmentID,
		FirstName:    req.FirstName,
		LastName:     req.LastName,
		Email:        req.Email,
	}
	if err := s.educationRepo.CreateProfessor(ctx, professor); err != nil {
		return nil, apperror.FromDB(err)
	}
	return professor, nil
}

func (s *educationService) ListCourses(ctx context.Context, departmentID uint) ([]*model.Course, error) {
	return s.educationRepo.FindCoursesByDepartment(ctx, departmentID)
}

func (s *educationService) CreateCourse(ctx context.Context, req dto.CreateCourseRequest) (*model.Course, error) {
	course := &model.Course{
		DepartmentID: req.DepartmentID,
		ProfessorID:  req.ProfessorID,
		Code:         req.Code,
		Name:         req.Name,
		Description:  req.Description,
	}
	if err := s.educationRepo.CreateCourse(ctx, course); err != nil {
		return nil, apperror.FromDB(err)
	}
	return course, nil
}
