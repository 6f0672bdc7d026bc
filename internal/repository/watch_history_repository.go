package repository

import "context"

type WatchHistoryRepository interface {
	// 視聴を記録する（同じ動画は視聴時刻だけ更新）
	Record(ctx context.Context, userID string, videoID string) error
	// ユーザーの視聴履歴を新しい順で取得
	ListByUser(ctx context.Context, userID string, limit int) ([]VideoWithOwner, error)
}
