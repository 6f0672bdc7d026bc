package usecase

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"vidtube/internal/domain/model"
	"vidtube/internal/media"
	"vidtube/internal/repository"

	"github.com/google/uuid"
)

type VideoUsecase struct {
	videos   repository.VideoRepository
	likes    repository.LikeRepository
	history  repository.WatchHistoryRepository
	uploader media.Uploader
}

func NewVideoUsecase(
	videos repository.VideoRepository,
	likes repository.LikeRepository,
	history repository.WatchHistoryRepository,
	uploader media.Uploader,
) *VideoUsecase {
	return &VideoUsecase{
		videos:   videos,
		likes:    likes,
		history:  history,
		uploader: uploader,
	}
}

type PublishVideoInput struct {
	Title       string
	Description string
	VideoFile   *FileInput
	Thumbnail   *FileInput
}

type UpdateVideoInput struct {
	Title       string
	Description string
	Thumbnail   *FileInput // 任意
}

type ListVideosInput struct {
	Page    int
	Limit   int
	Query   string
	OwnerID string
	SortBy  string
	SortAsc bool
}

type VideoListOutput struct {
	Items []repository.VideoWithOwner `json:"items"`
	Total int64                       `json:"total"`
	Page  int                         `json:"page"`
	Limit int                         `json:"limit"`
}

type VideoDetailOutput struct {
	repository.VideoWithOwner
	LikesCount int64 `json:"likesCount"`
}

// Publishは動画＋サムネイルをアップロードして公開する
func (u *VideoUsecase) Publish(ctx context.Context, ownerID string, in PublishVideoInput) (*model.Video, error) {
	if strings.TrimSpace(in.Title) == "" || strings.TrimSpace(in.Description) == "" {
		return nil, NewHTTPError(http.StatusBadRequest, "title and description are required")
	}
	if in.VideoFile == nil {
		return nil, NewHTTPError(http.StatusBadRequest, "video file is required")
	}
	if in.Thumbnail == nil {
		return nil, NewHTTPError(http.StatusBadRequest, "thumbnail file is required")
	}

	uploadedVideo, err := u.uploader.UploadVideo(ctx, in.VideoFile.Reader, in.VideoFile.Filename)
	if err != nil {
		return nil, NewHTTPError(http.StatusBadRequest, "error while uploading video")
	}

	uploadedThumb, err := u.uploader.UploadImage(ctx, in.Thumbnail.Reader, in.Thumbnail.Filename)
	if err != nil {
		return nil, NewHTTPError(http.StatusBadRequest, "error while uploading thumbnail")
	}

	video := &model.Video{
		ID:          uuid.NewString(),
		OwnerID:     ownerID,
		VideoFile:   uploadedVideo.URL,
		Thumbnail:   uploadedThumb.URL,
		Title:       in.Title,
		Description: in.Description,
		Duration:    uploadedVideo.Duration,
		IsPublished: true,
	}

	if err := u.videos.Create(ctx, video); err != nil {
		return nil, errInternal()
	}

	return video, nil
}

// Getは動画詳細。再生数を+1して視聴履歴に積む
func (u *VideoUsecase) Get(ctx context.Context, videoID string, viewerID string) (*VideoDetailOutput, error) {
	item, err := u.videos.FindByIDWithOwner(ctx, videoID)
	if err != nil {
		if errors.Is(err, repository.ErrVideoNotFound) {
			return nil, NewHTTPError(http.StatusNotFound, "video not found")
		}
		return nil, errInternal()
	}

	//非公開動画は所有者本人だけ見られる
	if !item.Video.IsPublished && item.Video.OwnerID != viewerID {
		return nil, NewHTTPError(http.StatusNotFound, "video not found")
	}

	likes, err := u.likes.CountByVideo(ctx, videoID)
	if err != nil {
		return nil, errInternal()
	}

	if err := u.videos.IncrementViews(ctx, videoID); err == nil {
		item.Video.Views++
	}

	if viewerID != "" {
		_ = u.history.Record(ctx, viewerID, videoID)
	}

	return &VideoDetailOutput{
		VideoWithOwner: *item,
		LikesCount:     likes,
	}, nil
}

func (u *VideoUsecase) List(ctx context.Context, in ListVideosInput) (*VideoListOutput, error) {
	if in.Page < 1 {
		in.Page = 1
	}
	if in.Limit < 1 || in.Limit > 100 {
		in.Limit = 20
	}

	items, total, err := u.videos.List(ctx, repository.VideoListQuery{
		Page:    in.Page,
		Limit:   in.Limit,
		Query:   in.Query,
		OwnerID: in.OwnerID,
		SortBy:  in.SortBy,
		SortAsc: in.SortAsc,
	})
	if err != nil {
		return nil, errInternal()
	}

	return &VideoListOutput{
		Items: items,
		Total: total,
		Page:  in.Page,
		Limit: in.Limit,
	}, nil
}

// Updateはタイトル・説明・サムネイルの更新（所有者のみ）
func (u *VideoUsecase) Update(ctx context.Context, videoID string, ownerID string, in UpdateVideoInput) (*model.Video, error) {
	video, err := u.mustOwn(ctx, videoID, ownerID)
	if err != nil {
		return nil, err
	}

	if strings.TrimSpace(in.Title) != "" {
		video.Title = in.Title
	}
	if strings.TrimSpace(in.Description) != "" {
		video.Description = in.Description
	}
	if in.Thumbnail != nil {
		uploaded, err := u.uploader.UploadImage(ctx, in.Thumbnail.Reader, in.Thumbnail.Filename)
		if err != nil {
			return nil, NewHTTPError(http.StatusBadRequest, "error while uploading thumbnail")
		}
		video.Thumbnail = uploaded.URL
	}

	if err := u.videos.Update(ctx, video); err != nil {
		return nil, errInternal()
	}

	return video, nil
}

func (u *VideoUsecase) Delete(ctx context.Context, videoID string, ownerID string) (*SuccessResponse, error) {
	if _, err := u.mustOwn(ctx, videoID, ownerID); err != nil {
		return nil, err
	}

	if err := u.videos.Delete(ctx, videoID); err != nil {
		return nil, errInternal()
	}

	return &SuccessResponse{Message: "video deleted"}, nil
}

func (u *VideoUsecase) TogglePublish(ctx context.Context, videoID string, ownerID string) (*model.Video, error) {
	video, err := u.mustOwn(ctx, videoID, ownerID)
	if err != nil {
		return nil, err
	}

	video.IsPublished = !video.IsPublished
	if err := u.videos.Update(ctx, video); err != nil {
		return nil, errInternal()
	}

	return video, nil
}

// mustOwnは動画の存在と所有権を確認する
func (u *VideoUsecase) mustOwn(ctx context.Context, videoID string, ownerID string) (*model.Video, error) {
	video, err := u.videos.FindByID(ctx, videoID)
	if err != nil {
		if errors.Is(err, repository.ErrVideoNotFound) {
			return nil, NewHTTPError(http.StatusNotFound, "video not found")
		}
		return nil, errInternal()
	}

	if video.OwnerID != ownerID {
		return nil, NewHTTPError(http.StatusForbidden, "forbidden")
	}

	return video, nil
}
