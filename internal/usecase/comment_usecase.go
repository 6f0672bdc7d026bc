package usecase

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"vidtube/internal/domain/model"
	"vidtube/internal/repository"

	"github.com/google/uuid"
)

type CommentUsecase struct {
	comments repository.CommentRepository
	videos   repository.VideoRepository
}

func NewCommentUsecase(comments repository.CommentRepository, videos repository.VideoRepository) *CommentUsecase {
	return &CommentUsecase{
		comments: comments,
		videos:   videos,
	}
}

type CommentListOutput struct {
	Items []repository.CommentWithOwner `json:"items"`
	Total int64                         `json:"total"`
	Page  int                           `json:"page"`
	Limit int                           `json:"limit"`
}

func (u *CommentUsecase) ListByVideo(ctx context.Context, videoID string, page int, limit int) (*CommentListOutput, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 20
	}

	if _, err := u.videos.FindByID(ctx, videoID); err != nil {
		if errors.Is(err, repository.ErrVideoNotFound) {
			return nil, NewHTTPError(http.StatusNotFound, "video not found")
		}
		return nil, errInternal()
	}

	items, total, err := u.comments.ListByVideo(ctx, videoID, page, limit)
	if err != nil {
		return nil, errInternal()
	}

	return &CommentListOutput{
		Items: items,
		Total: total,
		Page:  page,
		Limit: limit,
	}, nil
}

func (u *CommentUsecase) Add(ctx context.Context, videoID string, ownerID string, content string) (*model.Comment, error) {
	if strings.TrimSpace(content) == "" {
		return nil, NewHTTPError(http.StatusBadRequest, "content is required")
	}

	if _, err := u.videos.FindByID(ctx, videoID); err != nil {
		if errors.Is(err, repository.ErrVideoNotFound) {
			return nil, NewHTTPError(http.StatusNotFound, "video not found")
		}
		return nil, errInternal()
	}

	comment := &model.Comment{
		ID:      uuid.NewString(),
		VideoID: videoID,
		OwnerID: ownerID,
		Content: content,
	}

	if err := u.comments.Create(ctx, comment); err != nil {
		return nil, errInternal()
	}

	return comment, nil
}

// Updateはコメント本文の更新（本人のみ）
func (u *CommentUsecase) Update(ctx context.Context, commentID string, ownerID string, content string) (*model.Comment, error) {
	if strings.TrimSpace(content) == "" {
		return nil, NewHTTPError(http.StatusBadRequest, "content is required")
	}

	comment, err := u.mustOwn(ctx, commentID, ownerID)
	if err != nil {
		return nil, err
	}

	if err := u.comments.UpdateContent(ctx, commentID, content); err != nil {
		return nil, errInternal()
	}

	comment.Content = content
	return comment, nil
}

func (u *CommentUsecase) Delete(ctx context.Context, commentID string, ownerID string) (*SuccessResponse, error) {
	if _, err := u.mustOwn(ctx, commentID, ownerID); err != nil {
		return nil, err
	}

	if err := u.comments.Delete(ctx, commentID); err != nil {
		return nil, errInternal()
	}

	return &SuccessResponse{Message: "comment deleted"}, nil
}

func (u *CommentUsecase) mustOwn(ctx context.Context, commentID string, ownerID string) (*model.Comment, error) {
	comment, err := u.comments.FindByID(ctx, commentID)
	if err != nil {
		if errors.Is(err, repository.ErrCommentNotFound) {
			return nil, NewHTTPError(http.StatusNotFound, "comment not found")
		}
		return nil, errInternal()
	}

	if comment.OwnerID != ownerID {
		return nil, NewHTTPError(http.StatusForbidden, "forbidden")
	}

	return comment, nil
}
