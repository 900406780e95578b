package service

import (
	"context"
	"time"

	"github.com/gladgrade/gladgrade-server/internal/dto"
	"github.com/gladgrade/gladgrade-server/internal/model"
	"github.com/gladgrade/gladgrade-server/internal/repository"
	"github.com/gladgrade/gladgrade-server/pkg/apperror"
	pkgdto "github.com/gladgrade/gladgrade-server/pkg/dto"
	"github.com/microcosm-cc/bluemonday"
)

type ContentService interface {
	CreateFAQ(ctx context.Context, req dto.CreateFAQRequest) (*model.FAQ, error)
	ListFAQs(ctx context.Context, query dto.FAQListQuery, staff bool) ([]*model.FAQ, *pkgdto.Pagination, error)
	UpdateFAQ(ctx context.Context, id uint, req dto.UpdateFAQRequest) (*model.FAQ, error)
	DeleteFAQ(ctx context.Context, id uint) error

	CreateSiteContent(ctx context.Context, req dto.CreateSiteContentRequest) (*model.SiteContent, error)
	GetSiteContent(ctx context.Context, id uint) (*model.SiteContent, error)
	ListSiteContents(ctx context.Context, query dto.SiteContentListQuery, staff bool) ([]*model.SiteContent, *pkgdto.Pagination, error)
	UpdateSiteContent(ctx context.Context, id uint, req dto.UpdateSiteContentRequest) (*model.SiteContent, error)
	DeleteSiteContent(ctx context.Context, id uint) error
	ListContentCategories(ctx context.Context) ([]*model.ContentCategory, error)
	ListEnvironmentTypes(ctx context.Context) ([]*model.EnvironmentType, error)

	CreateAd(ctx context.Context, req dto.CreateAdRequest) (*model.Ad, error)
	ListAds(ctx context.Context, query pkgdto.PageQuery) ([]*model.Ad, *pkgdto.Pagination, error)
	ActiveAds(ctx context.Context, placement string) ([]*model.Ad, error)
	UpdateAd(ctx context.Context, id uint, req dto.UpdateAdRequest) (*model.Ad, error)
	DeleteAd(ctx context.Context, id uint) error
}

type contentService struct {
	contentRepo repository.ContentRepository
	// UGC policy keeps basic formatting in rendered site pages; FAQs go
	// through the same filter.
	sanitizer *bluemonday.Policy
}

func NewContentService(contentRepo repository.ContentRepository) ContentService {
	return &contentService{
		contentRepo: contentRepo,
		sanitizer:   bluemonday.UGCPolicy(),
	}
}

func (s *contentService) CreateFAQ(ctx context.Context, req dto.CreateFAQRequest) (*model.FAQ, error) {
	faq := &model.FAQ{
		Question:  req.Question,
		Answer:    s.sanitizer.Sanitize(req.Answer),
		Category:  req.Category,
		SortOrder: req.SortOrder,
		IsActive:  true,
	}
	if err := s.contentRepo.CreateFAQ(ctx, faq); err != nil {
		return nil, apperror.FromDB(err)
	}
	return faq, nil
}

func (s *contentService) ListFAQs(ctx context.Context, query dto.FAQListQuery, staff bool) ([]*model.FAQ, *pkgdto.Pagination, error) {
	query.Normalize()

	filter := repository.FAQFilter{
		Category:   query.Category,
		ActiveOnly: !staff,
	}

	faqs, total, err := s.contentRepo.FindFAQs(ctx, filter, query.Offset(), query.Limit)
	if err != nil {
		return nil, nil, err
	}

	pagination := pkgdto.NewPagination(total, query.Page, query.Limit)
	return faqs, &pagination, nil
}

func (s *contentService) UpdateFAQ(ctx context.Context, id uint, req dto.UpdateFAQRequest) (*model.FAQ, error) {
	if _, err := s.contentRepo.FindFAQByID(ctx, id); err != nil {
		return nil, apperror.FromDB(err)
	}

	fields := req.Fields()
	if answer, ok := fields["answer"].(string); ok {
		fields["answer"] = s.sanitizer.Sanitize(answer)
	}

	if err := s.contentRepo.UpdateFAQ(ctx, id, fields); err != nil {
		return nil, apperror.FromDB(err)
	}
	return s.contentRepo.FindFAQByID(ctx, id)
}

func (s *contentService) DeleteFAQ(ctx context.Context, id uint) error {
	if err := s.contentRepo.DeleteFAQ(ctx, id); err != nil {
		return apperror.FromDB(err)
	}
	return nil
}

func (s *contentService) CreateSiteContent(ctx context.Context, req dto.CreateSiteContentRequest) (*model.SiteContent, error) {
	content := &model.SiteContent{
		Title:    req.Title,
		Body:     s.sanitizer.Sanitize(req.Body),
		IsActive: true,
	}

	if err := s.contentRepo.CreateSiteContent(ctx, content, req.CategoryIDs, req.EnvironmentIDs); err != nil {
		return nil, apperror.FromDB(err)
	}

	return s.contentRepo.FindSiteContentByID(ctx, content.ID)
}

func (s *contentService) GetSiteContent(ctx context.Context, id uint) (*model.SiteContent, error) {
	content, err := s.contentRepo.FindSiteContentByID(ctx, id)
	if err != nil {
		return nil, apperror.FromDB(err)
	}
	return content, nil
}

func (s *contentService) ListSiteContents(ctx context.Context, query dto.SiteContentListQuery, staff bool) ([]*model.SiteContent, *pkgdto.Pagination, error) {
	query.Normalize()

	filter := repository.SiteContentFilter{
		ActiveOnly:    !staff,
		CategoryID:    query.CategoryID,
		EnvironmentID: query.EnvironmentID,
	}

	contents, total, err := s.contentRepo.FindSiteContents(ctx, filter, query.Offset(), query.Limit)
	if err != nil {
		return nil, nil, err
	}

	pagination := pkgdto.NewPagination(total, query.Page, query.Limit)
	return contents, &pagination, nil
}

func (s *contentService) UpdateSiteContent(ctx context.Context, id uint, req dto.UpdateSiteContentRequest) (*model.SiteContent, error) {
	fields := req.Fields()
	if body, ok := fields["body"].(string); ok {
		fields["body"] = s.sanitizer.Sanitize(body)
	}

	if err := s.contentRepo.UpdateSiteContent(ctx, id, fields, req.CategoryIDs, req.EnvironmentIDs); err != nil {
		return nil, apperror.FromDB(err)
	}

	return s.contentRepo.FindSiteContentByID(ctx, id)
}

func (s *contentService) DeleteSiteContent(ctx context.Context, id uint) error {
	if err := s.contentRepo.DeleteSiteContentCascade(ctx, id); err != nil {
		return apperror.FromDB(err)
	}
	return nil
}

func (s *contentService) ListContentCategories(ctx context.Context) ([]*model.ContentCategory, error) {
	return s.contentRepo.FindContentCategories(ctx)
}

func (s *contentService) ListEnvironmentTypes(ctx context.Context) ([]*model.EnvironmentType, error) {
	return s.contentRepo.FindEnvironmentTypes(ctx)
}

func (s *contentService) CreateAd(ctx context.Context, req dto.CreateAdRequest) (*model.Ad, error) {
	ad := &model.Ad{
		Title:     req.Title,
		ImageURL:  req.ImageURL,
		TargetURL: req.TargetURL,
		Placement: req.Placement,
		IsActive:  true,
	}

	var err error
	if ad.StartsAt, err = parseAdTime(req.StartsAt); err != nil {
		return nil, err
	}
	if ad.EndsAt, err = parseAdTime(req.EndsAt); err != nil {
		return nil, err
	}
	if ad.StartsAt != nil && ad.EndsAt != nil && ad.EndsAt.Before(*ad.StartsAt) {
		return nil, apperror.New(400, "an ad cannot end before it starts", apperror.ErrBadRequest)
	}

	if err := s.contentRepo.CreateAd(ctx, ad); err != nil {
		return nil, apperror.FromDB(err)
	}
	return ad, nil
}

func parseAdTime(value *string) (*time.Time, error) {
	if value == nil || *value == "" {
		return nil, nil
	}
	t, err := time.Parse(time.RFC3339, *value)
	if err != nil {
		return nil, apperror.New(400, "schedule timestamps must be RFC 3339", apperror.ErrBadRequest)
	}
	return &t, nil
}

func (s *contentService) ListAds(ctx context.Context, query pkgdto.PageQuery) ([]*model.Ad, *pkgdto.Pagination, error) {
	query.Normalize()

	ads, total, err := s.contentRepo.FindAds(ctx, query.Offset(), query.Limit)
	if err != nil {
		return nil, nil, err
	}

	pagination := pkgdto.NewPagination(total, query.Page, query.Limit)
	return ads, &pagination, nil
}

func (s *contentService) ActiveAds(ctx context.Context, placement string) ([]*model.Ad, error) {
	return s.contentRepo.FindActiveAds(ctx, placement, time.Now())
}

func (s *contentService) UpdateAd(ctx context.Context, id uint, req dto.UpdateAdRequest) (*model.Ad, error) {
	ad, err := s.contentRepo.FindAdByID(ctx, id)
	if err != nil {
		return nil, apperror.FromDB(err)
	}

	fields := req.Fields()

	// The effective window mixes updated and existing bounds; it must stay
	// valid as a whole.
	startsAt, endsAt := ad.StartsAt, ad.EndsAt
	if req.StartsAt != nil {
		if startsAt, err = parseAdTime(req.StartsAt); err != nil {
			return nil, err
		}
		fields["starts_at"] = startsAt
	}
	if req.EndsAt != nil {
		if endsAt, err = parseAdTime(req.EndsAt); err != nil {
			return nil, err
		}
		fields["ends_at"] = endsAt
	}
	if startsAt != nil && endsAt != nil && endsAt.Before(*startsAt) {
		return nil, apperror.New(400, "an ad cannot end before it starts", apperror.ErrBadRequest)
	}

	if err := s.contentRepo.UpdateAd(ctx, id, fields); err != nil {
		return nil, apperror.FromDB(err)
	}

	return s.contentRepo.FindAdByID(ctx, id)
}

func (s *contentService) DeleteAd(ctx context.Context, id uint) error {
	if err := s.contentRepo.DeleteAd(ctx, id); err != nil {
		return apperror.FromDB(err)
	}
	return nil
}
