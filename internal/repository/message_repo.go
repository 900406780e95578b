package repository

import (
	"context"
	"time"

	"github.com/gladgrade/gladgrade-server/internal/model"
	"gorm.io/gorm"
)

type MessageFilter struct {
	Category      *string
	IsRead        *bool
	RequiresReply *bool
}

type MessageRepository interface {
	Create(ctx context.Context, message *model.Message) error
	FindByID(ctx context.Context, id uint) (*model.Message, error)
	FindAll(ctx context.Context, filter MessageFilter, offset, limit int) ([]*model.Message, int64, error)
	MarkRead(ctx context.Context, id uint) error
	Reply(ctx context.Context, id uint, replyText string) error
}

type messageRepository struct {
	db *gorm.DB
}

func NewMessageRepository(db *gorm.DB) MessageRepository {
	return &messageRepository{db: db}
}

func (r *messageRepository) Create(ctx context.Context, message *model.Message) error {
	return r.db.WithContext(ctx).Create(message).Error
}

func (r *messageRepository) FindByID(ctx context.Context, id uint) (*model.Message, error) {
	var message model.Message
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&message).Error; err != nil {
		return nil, err
	}
	return &message, nil
}

func (r *messageRepository) FindAll(ctx context.Context, filter MessageFilter, offset, limit int) ([]*model.Message, int64, error) {
	var messages []*model.Message
	var total int64

	query := r.db.WithContext(ctx).Model(&model.Message{})

	if filter.Category != nil {
		query = query.Where("category = ?", *filter.Category)
	}
	if filter.IsRead != nil {
		query = query.Where("is_read = ?", *filter.IsRead)
	}
	if filter.RequiresReply != nil {
		query = query.Where("requires_reply = ?", *filter.RequiresReply)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	if err := query.Order("created_at DESC").Offset(offset).Limit(limit).Find(&messages).Error; err != nil {
		return nil, 0, err
	}

	return messages, total, nil
}

func (r *messageRepository) MarkRead(ctx context.Context, id uint) error {
	res := r.db.WithContext(ctx).
		Model(&model.Message{}).
		Where("id = ?", id).
		Update("is_read", true)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// Reply stamps the reply text and timestamp and marks the message read.
func (r *messageRepository) Reply(ctx context.Context, id uint, replyText string) error {
	now := time.Now()
	res := r.db.WithContext(ctx).
		Model(&model.Message{}).
		Where("id = ?", id).
		Updates(map[string]any{
			"reply_text": replyText,
			"replied_at": now,
			"is_read":    true,
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
