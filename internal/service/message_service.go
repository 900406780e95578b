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
)

type MessageService interface {
	Create(ctx context.Context, actor response.Actor, req dto.CreateMessageRequest) (*model.Message, error)
	GetByID(ctx context.Context, id uint) (*model.Message, error)
	List(ctx context.Context, query dto.MessageListQuery) ([]*model.Message, *pkgdto.Pagination, error)
	MarkRead(ctx context.Context, id uint) (*model.Message, error)
	Reply(ctx context.Context, id uint, req dto.ReplyMessageRequest) (*model.Message, error)
}

type messageService struct {
	messageRepo repository.MessageRepository
	limiter     *ratelimiter.Limiter
	rateWindow  time.Duration
	sanitizer   *bluemonday.Policy
}

func NewMessageService(messageRepo repository.MessageRepository, limiter *ratelimiter.Limiter, rateWindow time.Duration) MessageService {
	return &messageService{
		messageRepo: messageRepo,
		limiter:     limiter,
		rateWindow:  rateWindow,
		sanitizer:   bluemonday.StrictPolicy(),
	}
}

func (s *messageService) Create(ctx context.Context, actor response.Actor, req dto.CreateMessageRequest) (*model.Message, error) {
	if err := s.limiter.Allow(ctx, actor.UserID, "send_message", s.rateWindow); err != nil {
		var rlErr *ratelimiter.RateLimitError
		if errors.As(err, &rlErr) {
			return nil, apperror.New(429, rlErr.Message, apperror.ErrRateLimitExceeded)
		}
		return nil, err
	}

	message := &model.Message{
		Name:          req.Name,
		Email:         req.Email,
		Subject:       s.sanitizer.Sanitize(req.Subject),
		Body:          s.sanitizer.Sanitize(req.Body),
		Category:      req.Category,
		RequiresReply: req.RequiresReply,
	}

	if err := s.messageRepo.Create(ctx, message); err != nil {
		_ = s.limiter.Clear(ctx, actor.UserID, "send_message")
		return nil, apperror.FromDB(err)
	}

	return message, nil
}

func (s *messageService) GetByID(ctx context.Context, id uint) (*model.Message, error) {
	message, err := s.messageRepo.FindByID(ctx, id)
	if err != nil {
		return nil, apperror.FromDB(err)
	}
	return message, nil
}

func (s *messageService) List(ctx context.Context, query dto.MessageListQuery) ([]*model.Message, *pkgdto.Pagination, error) {
	query.Normalize()

	filter := repository.MessageFilter{
		Category:      query.Category,
		IsRead:        query.IsRead,
		RequiresReply: query.RequiresReply,
	}

	messages, total, err := s.messageRepo.FindAll(ctx, filter, query.Offset(), query.Limit)
	if err != nil {
		return nil, nil, err
	}

	pagination := pkgdto.NewPagination(total, query.Page, query.Limit)
	return messages, &pagination, nil
}

func (s *messageService) MarkRead(ctx context.Context, id uint) (*model.Message, error) {
	if err := s.messageRepo.MarkRead(ctx, id); err != nil {
		return nil, apperror.FromDB(err)
	}
	return s.messageRepo.FindByID(ctx, id)
}

func (s *messageService) Reply(ctx context.Context, id uint, req dto.ReplyMessageRequest) (*model.Message, error) {
	message, err := s.messageRepo.FindByID(ctx, id)
	if err != nil {
		return nil, apperror.FromDB(err)
	}
	if message.RepliedAt != nil {
		return nil, apperror.New(409, "message already has a reply", apperror.ErrConflict)
	}

	if err := s.messageRepo.Reply(ctx, id, req.ReplyText); err != nil {
		return nil, apperror.FromDB(err)
	}
	return s.messageRepo.FindByID(ctx, id)
}
