package usecase

import (
	"context"
	"errors"
	"net/http"

	"vidtube/internal/domain/model"
	"vidtube/internal/repository"
)

type SubscriptionUsecase struct {
	subs  repository.SubscriptionRepository
	users repository.UserRepository
}

func NewSubscriptionUsecase(subs repository.SubscriptionRepository, users repository.UserRepository) *SubscriptionUsecase {
	return &SubscriptionUsecase{
		subs:  subs,
		users: users,
	}
}

type SubscribeResult struct {
	Subscribed bool `json:"subscribed"`
}

// Toggleは購読のオン・オフ。自分自身のチャンネルは購読できない
func (u *SubscriptionUsecase) Toggle(ctx context.Context, subscriberID string, channelID string) (*SubscribeResult, error) {
	if subscriberID == channelID {
		return nil, NewHTTPError(http.StatusBadRequest, "cannot subscribe to your own channel")
	}

	if _, err := u.users.FindByID(ctx, channelID); err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil, NewHTTPError(http.StatusNotFound, "channel does not exist")
		}
		return nil, errInternal()
	}

	subscribed, err := u.subs.Toggle(ctx, subscriberID, channelID)
	if err != nil {
		return nil, errInternal()
	}

	return &SubscribeResult{Subscribed: subscribed}, nil
}

func (u *SubscriptionUsecase) Subscribers(ctx context.Context, channelID string) ([]model.UserSummary, error) {
	items, err := u.subs.ListSubscribers(ctx, channelID)
	if err != nil {
		return nil, errInternal()
	}
	return items, nil
}

func (u *SubscriptionUsecase) SubscribedChannels(ctx context.Context, subscriberID string) ([]model.UserSummary, error) {
	items, err := u.subs.ListSubscribedChannels(ctx, subscriberID)
	if err != nil {
		return nil, errInternal()
	}
	return items, nil
}
