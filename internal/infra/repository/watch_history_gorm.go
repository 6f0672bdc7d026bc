package repository

import (
	"context"
	"time"

	"vidtube/internal/domain/model"
	domainrepo "vidtube/internal/repository"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type watchHistoryGormRepository struct {
	db *gorm.DB
}

func NewWatchHistoryGormRepository(db *gorm.DB) domainrepo.WatchHistoryRepository {
	return &watchHistoryGormRepository{db: db}
}

// 視聴を記録（同じ動画は視聴時刻だけ更新）
func (r *watchHistoryGormRepository) Record(ctx context.Context, userID string, videoID string) error {
	entry := model.WatchHistory{
		UserID:    userID,
		VideoID:   videoID,
		WatchedAt: time.Now(),
	}

	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "user_id"}, {Name: "video_id"}},
			DoUpdates: clause.AssignmentColumns([]string{"watched_at"}),
		}).
		Create(&entry).Error
}

// 視聴履歴を新しい順で取得
func (r *watchHistoryGormRepository) ListByUser(ctx context.Context, userID string, limit int) ([]domainrepo.VideoWithOwner, error) {
	var rows []videoOwnerRow

	err := r.db.WithContext(ctx).
		Model(&model.Video{}).
		Select("videos.*, users.username AS owner_username, users.full_name AS owner_full_name, users.avatar AS owner_avatar").
		Joins("JOIN watch_histories ON watch_histories.video_id = videos.id").
		Joins("JOIN users ON users.id = videos.owner_id").
		Where("watch_histories.user_id = ?", userID).
		Order("watch_histories.watched_at DESC").
		Limit(limit).
		Find(&rows).Error
	if err != nil {
		return nil, err
	}

	items := make([]domainrepo.VideoWithOwner, 0, len(rows))
	for _, row := range rows {
		items = append(items, row.toWithOwner())
	}
	return items, nil
}
