package repository

import (
	"context"
	"errors"

	"vidtube/internal/domain/model"
	domainrepo "vidtube/internal/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type subscriptionGormRepository struct {
	db *gorm.DB
}

func NewSubscriptionGormRepository(db *gorm.DB) domainrepo.SubscriptionRepository {
	return &subscriptionGormRepository{db: db}
}

// 購読をトグル
func (r *subscriptionGormRepository) Toggle(ctx context.Context, subscriberID string, channelID string) (bool, error) {
	var existing model.Subscription

	err := r.db.WithContext(ctx).
		Where("subscriber_id = ? AND channel_id = ?", subscriberID, channelID).
		First(&existing).Error

	if err == nil {
		if delErr := r.db.WithContext(ctx).Delete(&model.Subscription{}, "id = ?", existing.ID).Error; delErr != nil {
			return false, delErr
		}
		return false, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return false, err
	}

	sub := model.Subscription{
		ID:           uuid.NewString(),
		SubscriberID: subscriberID,
		ChannelID:    channelID,
	}
	if err := r.db.WithContext(ctx).Create(&sub).Error; err != nil {
		return false, err
	}
	return true, nil
}

func (r *subscriptionGormRepository) ListSubscribers(ctx context.Context, channelID string) ([]model.UserSummary, error) {
	return r.listUsers(ctx,
		"JOIN subscriptions ON subscriptions.subscriber_id = users.id",
		"subscriptions.channel_id = ?", channelID)
}

func (r *subscriptionGormRepository) ListSubscribedChannels(ctx context.Context, subscriberID string) ([]model.UserSummary, error) {
	return r.listUsers(ctx,
		"JOIN subscriptions ON subscriptions.channel_id = users.id",
		"subscriptions.subscriber_id = ?", subscriberID)
}

func (r *subscriptionGormRepository) listUsers(ctx context.Context, join string, cond string, arg string) ([]model.UserSummary, error) {
	var users []model.UserSummary

	err := r.db.WithContext(ctx).
		Model(&model.User{}).
		Select("users.id, users.username, users.full_name, users.avatar").
		Joins(join).
		Where(cond, arg).
		Order("subscriptions.created_at DESC").
		Find(&users).Error
	if err != nil {
		return nil, err
	}

	return users, nil
}

func (r *subscriptionGormRepository) CountSubscribers(ctx context.Context, channelID string) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).
		Model(&model.Subscription{}).
		Where("channel_id = ?", channelID).
		Count(&n).Error
	return n, err
}

func (r *subscriptionGormRepository) CountSubscribedChannels(ctx context.Context, subscriberID string) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).
		Model(&model.Subscription{}).
		Where("subscriber_id = ?", subscriberID).
		Count(&n).Error
	return n, err
}

func (r *subscriptionGormRepository) IsSubscribed(ctx context.Context, subscriberID string, channelID string) (bool, error) {
	var n int64
	err := r.db.WithContext(ctx).
		Model(&model.Subscription{}).
		Where("subscriber_id = ? AND channel_id = ?", subscriberID, channelID).
		Count(&n).Error
	return n > 0, err
}
