package repository

import (
	"context"
	"errors"

	"vidtube/internal/domain/model"
	domainrepo "vidtube/internal/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type likeGormRepository struct {
	db *gorm.DB
}

func NewLikeGormRepository(db *gorm.DB) domainrepo.LikeRepository {
	return &likeGormRepository{db: db}
}

// 動画へのいいねをトグル
func (r *likeGormRepository) ToggleVideoLike(ctx context.Context, videoID string, userID string) (bool, error) {
	return r.toggle(ctx, "video_id", videoID, userID)
}

// コメントへのいいねをトグル
func (r *likeGormRepository) ToggleCommentLike(ctx context.Context, commentID string, userID string) (bool, error) {
	return r.toggle(ctx, "comment_id", commentID, userID)
}

func (r *likeGormRepository) toggle(ctx context.Context, column string, targetID string, userID string) (bool, error) {
	var existing model.Like

	err := r.db.WithContext(ctx).
		Where(column+" = ? AND liked_by_id = ?", targetID, userID).
		First(&existing).Error

	if err == nil {
		// 既にいいね済みなら解除
		if delErr := r.db.WithContext(ctx).Delete(&model.Like{}, "id = ?", existing.ID).Error; delErr != nil {
			return false, delErr
		}
		return false, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return false, err
	}

	like := model.Like{
		ID:        uuid.NewString(),
		LikedByID: userID,
	}
	if column == "video_id" {
		like.VideoID = &targetID
	} else {
		like.CommentID = &targetID
	}

	if err := r.db.WithContext(ctx).Create(&like).Error; err != nil {
		return false, err
	}
	return true, nil
}

// ユーザーがいいねした動画一覧（投稿者サマリ付き）
func (r *likeGormRepository) ListLikedVideos(ctx context.Context, userID string) ([]domainrepo.VideoWithOwner, error) {
	var rows []videoOwnerRow

	err := r.db.WithContext(ctx).
		Model(&model.Video{}).
		Select("videos.*, users.username AS owner_username, users.full_name AS owner_full_name, users.avatar AS owner_avatar").
		Joins("JOIN likes ON likes.video_id = videos.id").
		Joins("JOIN users ON users.id = videos.owner_id").
		Where("likes.liked_by_id = ?", userID).
		Order("likes.created_at DESC").
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

func (r *likeGormRepository) CountByVideo(ctx context.Context, videoID string) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).
		Model(&model.Like{}).
		Where("video_id = ?", videoID).
		Count(&n).Error
	return n, err
}

// チャンネルの全動画の累計いいね数
func (r *likeGormRepository) CountByChannel(ctx context.Context, channelID string) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).
		Model(&model.Like{}).
		Joins("JOIN videos ON videos.id = likes.video_id").
		Where("videos.owner_id = ?", channelID).
		Count(&n).Error
	return n, err
}
