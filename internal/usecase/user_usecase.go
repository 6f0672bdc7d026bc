package usecase

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"vidtube/internal/media"
	"vidtube/internal/repository"
)

type UserUsecase struct {
	users    repository.UserRepository
	subs     repository.SubscriptionRepository
	history  repository.WatchHistoryRepository
	uploader media.Uploader
}

func NewUserUsecase(
	users repository.UserRepository,
	subs repository.SubscriptionRepository,
	history repository.WatchHistoryRepository,
	uploader media.Uploader,
) *UserUsecase {
	return &UserUsecase{
		users:    users,
		subs:     subs,
		history:  history,
		uploader: uploader,
	}
}

// チャンネルプロフィール（購読数＋購読中か）
type ChannelProfileDTO struct {
	ID                string `json:"id"`
	Username          string `json:"username"`
	FullName          string `json:"fullName"`
	Email             string `json:"email"`
	Avatar            string `json:"avatar"`
	CoverImage        string `json:"coverImage"`
	SubscribersCount  int64  `json:"subscribersCount"`
	SubscribedToCount int64  `json:"channelsSubscribedToCount"`
	IsSubscribed      bool   `json:"isSubscribed"`
}

// fullName/emailを更新
func (u *UserUsecase) UpdateAccount(ctx context.Context, userID string, fullName string, email string) (*UserDTO, error) {
	if strings.TrimSpace(fullName) == "" || strings.TrimSpace(email) == "" {
		return nil, NewHTTPError(http.StatusBadRequest, "all fields are required")
	}

	if err := u.users.UpdateAccount(ctx, userID, fullName, email); err != nil {
		if errors.Is(err, repository.ErrDuplicateUser) {
			return nil, NewHTTPError(http.StatusConflict, "email already in use")
		}
		return nil, errInternal()
	}

	return u.reload(ctx, userID)
}

func (u *UserUsecase) UpdateAvatar(ctx context.Context, userID string, file FileInput) (*UserDTO, error) {
	uploaded, err := u.uploader.UploadImage(ctx, file.Reader, file.Filename)
	if err != nil {
		return nil, NewHTTPError(http.StatusBadRequest, "error while uploading avatar")
	}

	if err := u.users.UpdateAvatar(ctx, userID, uploaded.URL); err != nil {
		return nil, errInternal()
	}

	return u.reload(ctx, userID)
}

func (u *UserUsecase) UpdateCoverImage(ctx context.Context, userID string, file FileInput) (*UserDTO, error) {
	uploaded, err := u.uploader.UploadImage(ctx, file.Reader, file.Filename)
	if err != nil {
		return nil, NewHTTPError(http.StatusBadRequest, "error while uploading cover image")
	}

	if err := u.users.UpdateCoverImage(ctx, userID, uploaded.URL); err != nil {
		return nil, errInternal()
	}

	return u.reload(ctx, userID)
}

// ChannelProfileはチャンネルページ用の集計付きプロフィール
func (u *UserUsecase) ChannelProfile(ctx context.Context, username string, viewerID string) (*ChannelProfileDTO, error) {
	if strings.TrimSpace(username) == "" {
		return nil, NewHTTPError(http.StatusBadRequest, "username is missing")
	}

	channel, err := u.users.FindByUsernameOrEmail(ctx, username, username)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil, NewHTTPError(http.StatusNotFound, "channel does not exist")
		}
		return nil, errInternal()
	}

	subscribers, err := u.subs.CountSubscribers(ctx, channel.ID)
	if err != nil {
		return nil, errInternal()
	}
	subscribedTo, err := u.subs.CountSubscribedChannels(ctx, channel.ID)
	if err != nil {
		return nil, errInternal()
	}

	isSubscribed := false
	if viewerID != "" {
		isSubscribed, err = u.subs.IsSubscribed(ctx, viewerID, channel.ID)
		if err != nil {
			return nil, errInternal()
		}
	}

	return &ChannelProfileDTO{
		ID:                channel.ID,
		Username:          channel.Username,
		FullName:          channel.FullName,
		Email:             channel.Email,
		Avatar:            channel.Avatar,
		CoverImage:        channel.CoverImage,
		SubscribersCount:  subscribers,
		SubscribedToCount: subscribedTo,
		IsSubscribed:      isSubscribed,
	}, nil
}

// WatchHistoryは視聴履歴（投稿者サマリ付き動画の新しい順）
func (u *UserUsecase) WatchHistory(ctx context.Context, userID string) ([]repository.VideoWithOwner, error) {
	items, err := u.history.ListByUser(ctx, userID, 50)
	if err != nil {
		return nil, errInternal()
	}
	return items, nil
}

func (u *UserUsecase) reload(ctx context.Context, userID string) (*UserDTO, error) {
	user, err := u.users.FindByID(ctx, userID)
	if err != nil {
		return nil, errInternal()
	}
	dto := toUserDTO(user)
	return &dto, nil
}
