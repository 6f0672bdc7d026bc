package repository

import (
	"context"
	"errors"

	"vidtube/internal/domain/model"
	domainrepo "vidtube/internal/repository"

	"gorm.io/gorm"
)

type commentGormRepository struct {
	db *gorm.DB
}

func NewCommentGormRepository(db *gorm.DB) domainrepo.CommentRepository {
	return &commentGormRepository{db: db}
}

type commentOwnerRow struct {
	model.Comment
	OwnerUsername string
	OwnerFullName string
	OwnerAvatar   string
}

func (r *commentGormRepository) Create(ctx context.Context, comment *model.Comment) error {
	return r.db.WithContext(ctx).Create(comment).Error
}

func (r *commentGormRepository) FindByID(ctx context.Context, commentID string) (*model.Comment, error) {
	var c model.Comment

	err := r.db.WithContext(ctx).
		Where("id = ?", commentID).
		First(&c).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domainrepo.ErrCommentNotFound
		}
		return nil, err
	}

	return &c, nil
}

// 動画のコメントを新しい順でページング取得
func (r *commentGormRepository) ListByVideo(ctx context.Context, videoID string, page int, limit int) ([]domainrepo.CommentWithOwner, int64, error) {
	base := r.db.WithContext(ctx).
		Model(&model.Comment{}).
		Where("comments.video_id = ?", videoID)

	var total int64
	if err := base.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var rows []commentOwnerRow
	err := base.
		Select("comments.*, users.username AS owner_username, users.full_name AS owner_full_name, users.avatar AS owner_avatar").
		Joins("JOIN users ON users.id = comments.owner_id").
		Order("comments.created_at DESC").
		Offset((page - 1) * limit).
		Limit(limit).
		Find(&rows).Error
	if err != nil {
		return nil, 0, err
	}

	items := make([]domainrepo.CommentWithOwner, 0, len(rows))
	for _, row := range rows {
		items = append(items, domainrepo.CommentWithOwner{
			Comment: row.Comment,
			Owner: model.UserSummary{
				ID:       row.Comment.OwnerID,
				Username: row.OwnerUsername,
				FullName: row.OwnerFullName,
				Avatar:   row.OwnerAvatar,
			},
		})
	}

	return items, total, nil
}

func (r *commentGormRepository) UpdateContent(ctx context.Context, commentID string, content string) error {
	res := r.db.WithContext(ctx).
		Model(&model.Comment{}).
		Where("id = ?", commentID).
		Update("content", content)

	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return domainrepo.ErrCommentNotFound
	}
	return nil
}

func (r *commentGormRepository) Delete(ctx context.Context, commentID string) error {
	res := r.db.WithContext(ctx).
		Where("id = ?", commentID).
		Delete(&model.Comment{})

	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return domainrepo.ErrCommentNotFound
	}
	return nil
}
