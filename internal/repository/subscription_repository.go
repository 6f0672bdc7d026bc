package repository

import (
	"context"

	"vidtube/internal/domain/model"
)

type SubscriptionRepository interface {
	// 購読をトグルする（結果: true=購読中になった）
	Toggle(ctx context.Context, subscriberID string, channelID string) (bool, error)
	// channelの購読者一覧
	ListSubscribers(ctx context.Context, channelID string) ([]model.UserSummary, error)
	// subscriberが購読しているチャンネル一覧
	ListSubscribedChannels(ctx context.Context, subscriberID string) ([]model.UserSummary, error)
	CountSubscribers(ctx context.Context, channelID string) (int64, error)
	CountSubscribedChannels(ctx context.Context, subscriberID string) (int64, error)
	IsSubscribed(ctx context.Context, subscriberID string, channelID string) (bool, error)
}
