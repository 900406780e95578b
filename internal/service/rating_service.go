package service

import (
	"context"
	"errors"
	"time"

	"github.com/gladgrade/gladgrade-server/internal/dto"
	"github.com/gladgrade/gladgrade-server/internal/model"
	"github.com/gladgrade/gladgrade-server/internal/repository"
	"github.com/gladgrade/gladgrade-server/pkg/apperror"
	pkgdto "github.com/gladgrade/gladgrade-server/pkg/dto"
	"github.com/gladgrade/gladgrade-server/pkg/ratelimiter"
	"github.com/gladgrade/gladgrade-server/pkg/response"
	"github.com/microcosm-cc/bluemonday"
	"gorm.io/gorm"
)

type RatingService interface {
	Create(ctx context.Context, actor response.Actor, req dto.CreateRatingRequest) (*dto.RatingDetail, *dto.PointsAwardResult, error)
	GetByID(ctx context.Context, actor response.Actor, id uint) (*dto.RatingDetail, error)
	List(ctx context.Context, query dto.RatingListQuery) ([]*model.Rating, *pkgdto.Pagination, error)
	GetPlaceSummary(ctx context.Context, placeID string) (*dto.PlaceSummary, error)
	GetEducationLocationSummary(ctx context.Context, locationID uint) (*dto.PlaceSummary, error)
	Update(ctx context.Context, actor response.Actor, id uint, req dto.UpdateRatingRequest) (*model.Rating, error)
	Delete(ctx context.Context, actor response.Actor, id uint) error
	ListPoints(ctx context.Context, userID uint, query pkgdto.PageQuery) ([]*model.GladPoint, int64, *pkgdto.Pagination, error)
}

type ratingService struct {
	ratingRepo repository.RatingRepository
	reviewRepo repository.ReviewRepository
	imageRepo  repository.ImageRepository
	pointsRepo repository.PointsRepository
	limiter    *ratelimiter.Limiter
	rateWindow time.Duration
	sanitizer  *bluemonday.Policy
}

func NewRatingService(
	ratingRepo repository.RatingRepository,
	reviewRepo repository.ReviewRepository,
	imageRepo repository.ImageRepository,
	pointsRepo repository.PointsRepository,
	limiter *ratelimiter.Limiter,
	rateWindow time.Duration,
) RatingService {
	return &ratingService{
		ratingRepo: ratingRepo,
		reviewRepo: reviewRepo,
		imageRepo:  imageRepo,
		pointsRepo: pointsRepo,
		limiter:    limiter,
		rateWindow: rateWindow,
		sanitizer:  bluemonday.StrictPolicy(),
	}
}

func (s *ratingService) Create(ctx context.Context, actor response.Actor, req dto.CreateRatingRequest) (*dto.RatingDetail, *dto.PointsAwardResult, error) {
	if req.PlaceID == nil && req.EducationLocationID == nil {
		return nil, nil, apperror.New(400, "a rating must target a place or an education location", apperror.ErrBadRequest)
	}

	if err := s.limiter.Allow(ctx, actor.UserID, "create_rating", s.rateWindow); err != nil {
		var rlErr *ratelimiter.RateLimitError
		if errors.As(err, &rlErr) {
			return nil, nil, apperror.New(429, rlErr.Message, apperror.ErrRateLimitExceeded)
		}
		return nil, nil, err
	}

	rating := &model.Rating{
		UserID:              actor.UserID,
		PlaceID:             req.PlaceID,
		PlaceName:           req.PlaceName,
		PlaceAddress:        req.PlaceAddress,
		EducationLocationID: req.EducationLocationID,
		BusinessTypeID:      req.BusinessTypeID,
		Subcategory:         req.Subcategory,
		RatingValue:         req.RatingValue,
	}

	if err := s.ratingRepo.Create(ctx, rating); err != nil {
		_ = s.limiter.Clear(ctx, actor.UserID, "create_rating")
		return nil, nil, apperror.FromDB(err)
	}

	if req.Review != nil {
		review := &model.Review{
			RatingID:  rating.ID,
			UserID:    actor.UserID,
			Content:   s.sanitizer.Sanitize(req.Review.Content),
			IsActive:  true,
			IsPrivate: req.Review.IsPrivate,
		}
		if err := s.reviewRepo.Create(ctx, review); err != nil {
			return nil, nil, apperror.FromDB(err)
		}
	}

	award := s.awardPoints(ctx, rating.ID, actor.UserID)

	detail, err := s.GetByID(ctx, actor, rating.ID)
	if err != nil {
		return nil, nil, err
	}
	return detail, award, nil
}

// awardPoints credits the fixed rating bonus. A duplicate award for the same
// (rating, user) pair is reported as already awarded, never as an error.
func (s *ratingService) awardPoints(ctx context.Context, ratingID, userID uint) *dto.PointsAwardResult {
	entry := &model.GladPoint{
		RatingID:   ratingID,
		UserID:     userID,
		Points:     model.PointsPerRating,
		Redeemable: true,
	}

	if err := s.pointsRepo.Award(ctx, entry); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return &dto.PointsAwardResult{
				Awarded:        false,
				Points:         0,
				AlreadyAwarded: true,
				Message:        "points were already awarded for this rating",
			}
		}
		// The rating itself succeeded; a failed bonus is reported, not fatal.
		return &dto.PointsAwardResult{
			Awarded: false,
			Message: "points could not be awarded",
		}
	}

	return &dto.PointsAwardResult{
		Awarded: true,
		Points:  model.PointsPerRating,
		Message: "points awarded",
	}
}

func (s *ratingService) GetByID(ctx context.Context, actor response.Actor, id uint) (*dto.RatingDetail, error) {
	rating, err := s.ratingRepo.FindByID(ctx, id)
	if err != nil {
		return nil, apperror.FromDB(err)
	}

	reviews, err := s.reviewRepo.FindByRating(ctx, id, true)
	if err != nil {
		return nil, err
	}

	detail := &dto.RatingDetail{Rating: rating, Reviews: []dto.ReviewDetail{}}
	for _, review := range reviews {
		// Private reviews are visible to their author and to staff only.
		if review.IsPrivate && !canModify(actor, review.UserID) {
			continue
		}
		images, err := s.imageRepo.FindByReview(ctx, review.ID)
		if err != nil {
			return nil, err
		}
		detail.Reviews = append(detail.Reviews, dto.ReviewDetail{Review: review, Images: images})
	}

	images, err := s.imageRepo.FindByRating(ctx, id)
	if err != nil {
		return nil, err
	}
	detail.Images = images

	return detail, nil
}

func (s *ratingService) List(ctx context.Context, query dto.RatingListQuery) ([]*model.Rating, *pkgdto.Pagination, error) {
	query.Normalize()

	filter := repository.RatingFilter{
		UserID:         query.UserID,
		PlaceID:        query.PlaceID,
		BusinessTypeID: query.BusinessTypeID,
		MinValue:       query.MinValue,
		MaxValue:       query.MaxValue,
	}

	ratings, total, err := s.ratingRepo.FindAll(ctx, filter, query.Offset(), query.Limit)
	if err != nil {
		return nil, nil, err
	}

	pagination := pkgdto.NewPagination(total, query.Page, query.Limit)
	return ratings, &pagination, nil
}

func (s *ratingService) GetPlaceSummary(ctx context.Context, placeID string) (*dto.PlaceSummary, error) {
	ratings, err := s.ratingRepo.FindByPlace(ctx, placeID)
	if err != nil {
		return nil, err
	}
	summary := summarize(ratings)
	summary.PlaceID = placeID
	return summary, nil
}

func (s *ratingService) GetEducationLocationSummary(ctx context.Context, locationID uint) (*dto.PlaceSummary, error) {
	ratings, err := s.ratingRepo.FindByEducationLocation(ctx, locationID)
	if err != nil {
		return nil, err
	}
	return summarize(ratings), nil
}

// summarize computes the average and the 1..5 histogram. Every stored rating
// counts toward the total and the average; only in-range values land in a
// histogram bucket. A place with no ratings yields a zero-filled summary.
func summarize(ratings []*model.Rating) *dto.PlaceSummary {
	counts := map[int]int{1: 0, 2: 0, 3: 0, 4: 0, 5: 0}
	sum := 0
	for _, r := range ratings {
		sum += r.RatingValue
		if r.RatingValue >= 1 && r.RatingValue <= 5 {
			counts[r.RatingValue]++
		}
	}

	summary := &dto.PlaceSummary{
		TotalRatings: len(ratings),
		RatingCounts: counts,
	}
	if len(ratings) > 0 {
		summary.AverageRating = float64(sum) / float64(len(ratings))
	}
	return summary
}

func (s *ratingService) Update(ctx context.Context, actor response.Actor, id uint, req dto.UpdateRatingRequest) (*model.Rating, error) {
	rating, err := s.ratingRepo.FindByID(ctx, id)
	if err != nil {
		return nil, apperror.FromDB(err)
	}

	if !canModify(actor, rating.UserID) {
		return nil, apperror.New(403, "you can only modify your own ratings", apperror.ErrForbidden)
	}

	if err := s.ratingRepo.Update(ctx, id, req.Fields()); err != nil {
		return nil, apperror.FromDB(err)
	}

	return s.ratingRepo.FindByID(ctx, id)
}

func (s *ratingService) Delete(ctx context.Context, actor response.Actor, id uint) error {
	rating, err := s.ratingRepo.FindByID(ctx, id)
	if err != nil {
		return apperror.FromDB(err)
	}

	if !canModify(actor, rating.UserID) {
		return apperror.New(403, "you can only delete your own ratings", apperror.ErrForbidden)
	}

	if err := s.ratingRepo.DeleteCascade(ctx, id); err != nil {
		return apperror.FromDB(err)
	}
	return nil
}

func (s *ratingService) ListPoints(ctx context.Context, userID uint, query pkgdto.PageQuery) ([]*model.GladPoint, int64, *pkgdto.Pagination, error) {
	query.Normalize()

	entries, total, err := s.pointsRepo.FindByUser(ctx, userID, query.Offset(), query.Limit)
	if err != nil {
		return nil, 0, nil, err
	}

	balance, err := s.pointsRepo.TotalForUser(ctx, userID)
	if err != nil {
		return nil, 0, nil, err
	}

	pagination := pkgdto.NewPagination(total, query.Page, query.Limit)
	return entries, balance, &pagination, nil
}
