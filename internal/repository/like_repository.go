package repository

import "context"

type LikeRepository interface {
	// 動画へのいいねをトグルする（結果: true=いいね済みになった）
	ToggleVideoLike(ctx context.Context, videoID string, userID string) (bool, error)
	// コメントへのいいねをトグルする
	ToggleCommentLike(ctx context.Context, commentID string, userID string) (bool, error)
	// ユーザーがいいねした動画一覧
	ListLikedVideos(ctx context.Context, userID string) ([]VideoWithOwner, error)
	CountByVideo(ctx context.Context, videoID string) (int64, error)
	// チャンネルの全動画の累計いいね数
	CountByChannel(ctx context.Context, channelID string) (int64, error)
}
