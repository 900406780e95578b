package service

import (
	"context"

	"github.com/gladgrade/gladgrade-server/internal/dto"
	"github.com/gladgrade/gladgrade-server/internal/model"
	"github.com/gladgrade/gladgrade-server/internal/repository"
	"github.com/gladgrade/gladgrade-server/pkg/apperror"
	pkgdto "github.com/gladgrade/gladgrade-server/pkg/dto"
	"github.com/gladgrade/gladgrade-server/pkg/response"
	"github.com/microcosm-cc/bluemonday"
)

type ReviewService interface {
	Create(ctx context.Context, actor response.Actor, req dto.CreateReviewRequest) (*model.Review, error)
	GetByID(ctx context.Context, actor response.Actor, id uint) (*dto.ReviewDetail, error)
	List(ctx context.Context, actor response.Actor, query dto.ReviewListQuery) ([]*model.Review, *pkgdto.Pagination, error)
	Update(ctx context.Context, actor response.Actor, id uint, req dto.UpdateReviewRequest) (*model.Review, error)
	Delete(ctx context.Context, actor response.Actor, id uint) error
}

type reviewService struct {
	reviewRepo repository.ReviewRepository
	ratingRepo repository.RatingRepository
	imageRepo  repository.ImageRepository
	sanitizer  *bluemonday.Policy
}

func NewReviewService(reviewRepo repository.ReviewRepository, ratingRepo repository.RatingRepository, imageRepo repository.ImageRepository) ReviewService {
	return &reviewService{
		reviewRepo: reviewRepo,
		ratingRepo: ratingRepo,
		imageRepo:  imageRepo,
		sanitizer:  bluemonday.StrictPolicy(),
	}
}

// Create attaches a review to one of the caller's own ratings.
func (s *reviewService) Create(ctx context.Context, actor response.Actor, req dto.CreateReviewRequest) (*model.Review, error) {
	rating, err := s.ratingRepo.FindByID(ctx, req.RatingID)
	if err != nil {
		return nil, apperror.FromDB(err)
	}
	if rating.UserID != actor.UserID {
		return nil, apperror.New(403, "reviews can only be added to your own ratings", apperror.ErrForbidden)
	}

	review := &model.Review{
		RatingID:  req.RatingID,
		UserID:    actor.UserID,
		Content:   s.sanitizer.Sanitize(req.Content),
		IsActive:  true,
		IsPrivate: req.IsPrivate,
	}

	if err := s.reviewRepo.Create(ctx, review); err != nil {
		return nil, apperror.FromDB(err)
	}

	return s.reviewRepo.FindByID(ctx, review.ID)
}

func (s *reviewService) GetByID(ctx context.Context, actor response.Actor, id uint) (*dto.ReviewDetail, error) {
	review, err := s.reviewRepo.FindByID(ctx, id)
	if err != nil {
		return nil, apperror.FromDB(err)
	}

	if !review.IsActive && !actor.HasRole(model.StaffRoles...) {
		return nil, apperror.ErrNotFound
	}
	if review.IsPrivate && !canModify(actor, review.UserID) {
		return nil, apperror.ErrNotFound
	}

	images, err := s.imageRepo.FindByReview(ctx, id)
	if err != nil {
		return nil, err
	}

	return &dto.ReviewDetail{Review: review, Images: images}, nil
}

func (s *reviewService) List(ctx context.Context, actor response.Actor, query dto.ReviewListQuery) ([]*model.Review, *pkgdto.Pagination, error) {
	query.Normalize()

	filter := repository.ReviewFilter{
		UserID:   query.UserID,
		RatingID: query.RatingID,
		IsActive: query.IsActive,
		Search:   query.Search,
	}

	// Non-staff callers only ever see active, public reviews, plus their own.
	if !actor.HasRole(model.StaffRoles...) {
		active := true
		filter.IsActive = &active
		if query.UserID == nil || *query.UserID != actor.UserID {
			public := false
			filter.IsPrivate = &public
		}
	}

	reviews, total, err := s.reviewRepo.FindAll(ctx, filter, query.Offset(), query.Limit)
	if err != nil {
		return nil, nil, err
	}

	pagination := pkgdto.NewPagination(total, query.Page, query.Limit)
	return reviews, &pagination, nil
}

func (s *reviewService) Update(ctx context.Context, actor response.Actor, id uint, req dto.UpdateReviewRequest) (*model.Review, error) {
	review, err := s.reviewRepo.FindByID(ctx, id)
	if err != nil {
		return nil, apperror.FromDB(err)
	}

	if !canModify(actor, review.UserID) {
		return nil, apperror.New(403, "you can only modify your own reviews", apperror.ErrForbidden)
	}

	fields := req.Fields()
	if content, ok := fields["content"].(string); ok {
		fields["content"] = s.sanitizer.Sanitize(content)
	}

	if err := s.reviewRepo.Update(ctx, id, fields); err != nil {
		return nil, apperror.FromDB(err)
	}

	return s.reviewRepo.FindByID(ctx, id)
}

func (s *reviewService) Delete(ctx context.Context, actor response.Actor, id uint) error {
	review, err := s.reviewRepo.FindByID(ctx, id)
	if err != nil {
		return apperror.FromDB(err)
	}

	if !canModify(actor, review.UserID) {
		return apperror.New(403, "you can only delete your own reviews", apperror.ErrForbidden)
	}

	if err := s.reviewRepo.SoftDelete(ctx, id); err != nil {
		return apperror.FromDB(err)
	}
	return nil
}
