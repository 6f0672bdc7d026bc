package repository

import (
	"context"
	"errors"

	"vidtube/internal/domain/model"
)

var ErrCommentNotFound = errors.New("comment not found")

type CommentWithOwner struct {
	Comment model.Comment     `json:"comment"`
	Owner   model.UserSummary `json:"owner"`
}

type CommentRepository interface {
	Create(ctx context.Context, comment *model.Comment) error
	FindByID(ctx context.Context, commentID string) (*model.Comment, error)
	// 動画のコメントを新しい順でページング取得
	ListByVideo(ctx context.Context, videoID string, page int, limit int) ([]CommentWithOwner, int64, error)
	UpdateContent(ctx context.Context, commentID string, content string) error
	Delete(ctx context.Context, commentID string) error
}
