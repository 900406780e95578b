package service

import (
	"context"
	"log"

	"github.com/gladgrade/gladgrade-server/internal/dto"
	"github.com/gladgrade/gladgrade-server/internal/model"
	"github.com/gladgrade/gladgrade-server/internal/repository"
	"github.com/gladgrade/gladgrade-server/pkg/apperror"
	pkgdto "github.com/gladgrade/gladgrade-server/pkg/dto"
	"github.com/gladgrade/gladgrade-server/pkg/response"
)

type BusinessService interface {
	Create(ctx context.Context, actor response.Actor, req dto.CreateBusinessRequest) (*model.Business, error)
	GetByID(ctx context.Context, id uint) (*model.Business, error)
	List(ctx context.Context, query dto.BusinessListQuery) ([]*model.Business, *pkgdto.Pagination, error)
	ListMine(ctx context.Context, actor response.Actor, query pkgdto.PageQuery) ([]*model.Business, *pkgdto.Pagination, error)
	Update(ctx context.Context, actor response.Actor, id uint, req dto.UpdateBusinessRequest) (*model.Business, error)
	Verify(ctx context.Context, id uint, verified bool) (*model.Business, error)
	Delete(ctx context.Context, actor response.Actor, id uint) error

	ListSectors(ctx context.Context) ([]*model.BusinessSector, error)
	CreateSector(ctx context.Context, req dto.CreateSectorRequest) (*model.BusinessSector, error)
	ListTypes(ctx context.Context, sectorID *uint) ([]*model.BusinessType, error)
	CreateType(ctx context.Context, req dto.CreateBusinessTypeRequest) (*model.BusinessType, error)
}

type businessService struct {
	businessRepo repository.BusinessRepository
	search       *SearchService
}

func NewBusinessService(businessRepo repository.BusinessRepository, search *SearchService) BusinessService {
	return &businessService{businessRepo: businessRepo, search: search}
}

func (s *businessService) Create(ctx context.Context, actor response.Actor, req dto.CreateBusinessRequest) (*model.Business, error) {
	if req.BusinessTypeID != nil {
		if _, err := s.businessRepo.FindTypeByID(ctx, *req.BusinessTypeID); err != nil {
			return nil, apperror.New(400, "unknown business type", apperror.ErrBadRequest)
		}
	}

	business := &model.Business{
		OwnerID:        actor.UserID,
		BusinessTypeID: req.BusinessTypeID,
		Name:           req.Name,
		Address:        req.Address,
		City:           req.City,
		State:          req.State,
		PostalCode:     req.PostalCode,
		Country:        req.Country,
		Phone:          req.Phone,
		Email:          req.Email,
		Website:        req.Website,
		PlaceID:        req.PlaceID,
		IsActive:       true,
	}

	if err := s.businessRepo.Create(ctx, business); err != nil {
		return nil, apperror.FromDB(err)
	}

	created, err := s.businessRepo.FindByID(ctx, business.ID)
	if err != nil {
		return nil, apperror.FromDB(err)
	}

	s.syncIndex(created)
	return created, nil
}

// syncIndex mirrors the row into the search index. Index failures are logged,
// never surfaced; the database row is the source of truth.
func (s *businessService) syncIndex(business *model.Business) {
	if err := s.search.IndexBusiness(business); err != nil {
		log.Printf("search index sync failed for business %d: %v", business.ID, err)
	}
}

func (s *businessService) GetByID(ctx context.Context, id uint) (*model.Business, error) {
	business, err := s.businessRepo.FindByID(ctx, id)
	if err != nil {
		return nil, apperror.FromDB(err)
	}
	return business, nil
}

func (s *businessService) List(ctx context.Context, query dto.BusinessListQuery) ([]*model.Business, *pkgdto.Pagination, error) {
	query.Normalize()

	active := true
	filter := repository.BusinessFilter{
		SectorID:   query.SectorID,
		TypeID:     query.TypeID,
		Search:     query.Search,
		IsVerified: query.IsVerified,
		IsActive:   &active,
	}

	businesses, total, err := s.businessRepo.FindAll(ctx, filter, query.Offset(), query.Limit)
	if err != nil {
		return nil, nil, err
	}

	pagination := pkgdto.NewPagination(total, query.Page, query.Limit)
	return businesses, &pagination, nil
}

func (s *businessService) ListMine(ctx context.Context, actor response.Actor, query pkgdto.PageQuery) ([]*model.Business, *pkgdto.Pagination, error) {
	query.Normalize()

	filter := repository.BusinessFilter{OwnerID: &actor.UserID}

	businesses, total, err := s.businessRepo.FindAll(ctx, filter, query.Offset(), query.Limit)
	if err != nil {
		return nil, nil, err
	}

	pagination := pkgdto.NewPagination(total, query.Page, query.Limit)
	return businesses, &pagination, nil
}

func (s *businessService) Update(ctx context.Context, actor response.Actor, id uint, req dto.UpdateBusinessRequest) (*model.Business, error) {
	business, err := s.businessRepo.FindByID(ctx, id)
	if err != nil {
		return nil, apperror.FromDB(err)
	}

	if !canModify(actor, business.OwnerID) {
		return nil, apperror.New(403, "you can only modify your own businesses", apperror.ErrForbidden)
	}

	if req.BusinessTypeID != nil {
		if _, err := s.businessRepo.FindTypeByID(ctx, *req.BusinessTypeID); err != nil {
			return nil, apperror.New(400, "unknown business type", apperror.ErrBadRequest)
		}
	}

	if err := s.businessRepo.Update(ctx, id, req.Fields()); err != nil {
		return nil, apperror.FromDB(err)
	}

	updated, err := s.businessRepo.FindByID(ctx, id)
	if err != nil {
		return nil, apperror.FromDB(err)
	}

	s.syncIndex(updated)
	return updated, nil
}

// Verify flips the verification flag. Verification is a staff action and is
// gated at the route, not here.
func (s *businessService) Verify(ctx context.Context, id uint, verified bool) (*model.Business, error) {
	if _, err := s.businessRepo.FindByID(ctx, id); err != nil {
		return nil, apperror.FromDB(err)
	}

	if err := s.businessRepo.Update(ctx, id, map[string]any{"is_verified": verified}); err != nil {
		return nil, apperror.FromDB(err)
	}

	updated, err := s.businessRepo.FindByID(ctx, id)
	if err != nil {
		return nil, apperror.FromDB(err)
	}

	s.syncIndex(updated)
	return updated, nil
}

func (s *businessService) Delete(ctx context.Context, actor response.Actor, id uint) error {
	business, err := s.businessRepo.FindByID(ctx, id)
	if err != nil {
		return apperror.FromDB(err)
	}

	if !canModify(actor, business.OwnerID) {
		return apperror.New(403, "you can only delete your own businesses", apperror.ErrForbidden)
	}

	if err := s.businessRepo.Delete(ctx, id); err != nil {
		return apperror.FromDB(err)
	}

	if err := s.search.RemoveBusiness(id); err != nil {
		log.Printf("search index removal failed for business %d: %v", id, err)
	}
	return nil
}

func (s *businessService) ListSectors(ctx context.Context) ([]*model.BusinessSector, error) {
	return s.businessRepo.FindSectors(ctx)
}

func (s *businessService) CreateSector(ctx context.Context, req dto.CreateSectorRequest) (*model.BusinessSector, error) {
	sector := &model.BusinessSector{
		Name:        req.Name,
		Description: req.Description,
		IsActive:    true,
	}
	if err := s.businessRepo.CreateSector(ctx, sector); err != nil {
		return nil, apperror.FromDB(err)
	}
	return sector, nil
}

func (s *businessService) ListTypes(ctx context.Context, sectorID *uint) ([]*model.BusinessType, error) {
	return s.businessRepo.FindTypes(ctx, sectorID)
}

func (s *businessService) CreateType(ctx context.Context, req dto.CreateBusinessTypeRequest) (*model.BusinessType, error) {
	bt := &model.BusinessType{
		SectorID: req.SectorID,
		Name:     req.Name,
		IsActive: true,
	}
	if err := s.businessRepo.CreateType(ctx, bt); err != nil {
		return nil, apperror.FromDB(err)
	}
	return s.businessRepo.FindTypeByID(ctx, bt.ID)
}
