package repository

import (
	"context"
	"errors"

	"vidtube/internal/domain/model"
)

var ErrVideoNotFound = errors.New("video not found")

// 動画一覧の検索条件
type VideoListQuery struct {
	Page    int
	Limit   int
	Query   string // タイトル・説明の部分一致
	OwnerID string // 指定時はそのチャンネルの動画のみ
	SortBy  string // created_at / views / duration
	SortAsc bool
}

// 動画＋投稿者のサマリ
type VideoWithOwner struct {
	Video model.Video       `json:"video"`
	Owner model.UserSummary `json:"owner"`
}

type VideoRepository interface {
	Create(ctx context.Context, video *model.Video) error
	FindByID(ctx context.Context, videoID string) (*model.Video, error)
	// 投稿者サマリ付きで1件取得
	FindByIDWithOwner(ctx context.Context, videoID string) (*VideoWithOwner, error)
	List(ctx context.Context, q VideoListQuery) ([]VideoWithOwner, int64, error)
	Update(ctx context.Context, video *model.Video) error
	Delete(ctx context.Context, videoID string) error
	// 再生数を+1する
	IncrementViews(ctx context.Context, videoID string) error
	// チャンネルの動画数
	CountByOwner(ctx context.Context, ownerID string) (int64, error)
	// チャンネルの累計再生数
	SumViewsByOwner(ctx context.Context, ownerID string) (int64, error)
}
