package usecase

import (
	"context"

	"vidtube/internal/repository"
)

type DashboardUsecase struct {
	videos repository.VideoRepository
	likes  repository.LikeRepository
	subs   repository.SubscriptionRepository
}

func NewDashboardUsecase(
	videos repository.VideoRepository,
	likes repository.LikeRepository,
	subs repository.SubscriptionRepository,
) *DashboardUsecase {
	return &DashboardUsecase{
		videos: videos,
		likes:  likes,
		subs:   subs,
	}
}

// チャンネルの集計値
type ChannelStats struct {
	TotalVideos      int64 `json:"totalVideos"`
	TotalViews       int64 `json:"totalViews"`
	TotalSubscribers int64 `json:"totalSubscribers"`
	TotalLikes       int64 `json:"totalLikes"`
}

func (u *DashboardUsecase) Stats(ctx context.Context, channelID string) (*ChannelStats, error) {
	total, err := u.videos.CountByOwner(ctx, channelID)
	if err != nil {
		return nil, errInternal()
	}

	views, err := u.videos.SumViewsByOwner(ctx, channelID)
	if err != nil {
		return nil, errInternal()
	}

	subscribers, err := u.subs.CountSubscribers(ctx, channelID)
	if err != nil {
		return nil, errInternal()
	}

	likes, err := u.likes.CountByChannel(ctx, channelID)
	if err != nil {
		return nil, errInternal()
	}

	return &ChannelStats{
		TotalVideos:      total,
		TotalViews:       views,
		TotalSubscribers: subscribers,
		TotalLikes:       likes,
	}, nil
}

// Videosはチャンネルの動画一覧（非公開含む・所有者用）
func (u *DashboardUsecase) Videos(ctx context.Context, channelID string, page int, limit int) (*VideoListOutput, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 20
	}

	items, total, err := u.videos.List(ctx, repository.VideoListQuery{
		Page:    page,
		Limit:   limit,
		OwnerID: channelID,
	})
	if err != nil {
		return nil, errInternal()
	}

	return &VideoListOutput{
		Items: items,
		Total: total,
		Page:  page,
		Limit: limit,
	}, nil
}
