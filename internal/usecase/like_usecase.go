package usecase

import (
	"context"
	"errors"
	"net/http"

	"vidtube/internal/repository"
)

type LikeUsecase struct {
	likes    repository.LikeRepository
	videos   repository.VideoRepository
	comments repository.CommentRepository
}

func NewLikeUsecase(
	likes repository.LikeRepository,
	videos repository.VideoRepository,
	comments repository.CommentRepository,
) *LikeUsecase {
	return &LikeUsecase{
		likes:    likes,
		videos:   videos,
		comments: comments,
	}
}

type ToggleResult struct {
	Liked bool `json:"liked"`
}

func (u *LikeUsecase) ToggleVideoLike(ctx context.Context, videoID string, userID string) (*ToggleResult, error) {
	if _, err := u.videos.FindByID(ctx, videoID); err != nil {
		if errors.Is(err, repository.ErrVideoNotFound) {
			return nil, NewHTTPError(http.StatusNotFound, "video not found")
		}
		return nil, errInternal()
	}

	liked, err := u.likes.ToggleVideoLike(ctx, videoID, userID)
	if err != nil {
		return nil, errInternal()
	}

	return &ToggleResult{Liked: liked}, nil
}

func (u *LikeUsecase) ToggleCommentLike(ctx context.Context, commentID string, userID string) (*ToggleResult, error) {
	if _, err := u.comments.FindByID(ctx, commentID); err != nil {
		if errors.Is(err, repository.ErrCommentNotFound) {
			return nil, NewHTTPError(http.StatusNotFound, "comment not found")
		}
		return nil, errInternal()
	}

	liked, err := u.likes.ToggleCommentLike(ctx, commentID, userID)
	if err != nil {
		return nil, errInternal()
	}

	return &ToggleResult{Liked: liked}, nil
}

func (u *LikeUsecase) LikedVideos(ctx context.Context, userID string) ([]repository.VideoWithOwner, error) {
	items, err := u.likes.ListLikedVideos(ctx, userID)
	if err != nil {
		return nil, errInternal()
	}
	return items, nil
}
