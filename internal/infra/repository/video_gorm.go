package repository

import (
	"context"
	"errors"
	"fmt"

	"vidtube/internal/domain/model"
	domainrepo "vidtube/internal/repository"

	"gorm.io/gorm"
)

type videoGormRepository struct {
	db *gorm.DB
}

func NewVideoGormRepository(db *gorm.DB) domainrepo.VideoRepository {
	return &videoGormRepository{db: db}
}

// 一覧取得のJOIN付き行
type videoOwnerRow struct {
	model.Video
	OwnerUsername string
	OwnerFullName string
	OwnerAvatar   string
}

func (row videoOwnerRow) toWithOwner() domainrepo.VideoWithOwner {
	return domainrepo.VideoWithOwner{
		Video: row.Video,
		Owner: model.UserSummary{
			ID:       row.Video.OwnerID,
			Username: row.OwnerUsername,
			FullName: row.OwnerFullName,
			Avatar:   row.OwnerAvatar,
		},
	}
}

func (r *videoGormRepository) Create(ctx context.Context, video *model.Video) error {
	return r.db.WithContext(ctx).Create(video).Error
}

func (r *videoGormRepository) FindByID(ctx context.Context, videoID string) (*model.Video, error) {
	var v model.Video

	err := r.db.WithContext(ctx).
		Where("id = ?", videoID).
		First(&v).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domainrepo.ErrVideoNotFound
		}
		return nil, err
	}

	return &v, nil
}

func (r *videoGormRepository) FindByIDWithOwner(ctx context.Context, videoID string) (*domainrepo.VideoWithOwner, error) {
	var row videoOwnerRow

	err := r.db.WithContext(ctx).
		Model(&model.Video{}).
		Select("videos.*, users.username AS owner_username, users.full_name AS owner_full_name, users.avatar AS owner_avatar").
		Joins("JOIN users ON users.id = videos.owner_id").
		Where("videos.id = ?", videoID).
		Take(&row).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domainrepo.ErrVideoNotFound
		}
		return nil, err
	}

	out := row.toWithOwner()
	return &out, nil
}

// 公開動画の検索（所有者指定時は非公開も含めるかは呼び出し側usecaseの責務）
func (r *videoGormRepository) List(ctx context.Context, q domainrepo.VideoListQuery) ([]domainrepo.VideoWithOwner, int64, error) {
	base := r.db.WithContext(ctx).Model(&model.Video{})

	if q.OwnerID != "" {
		base = base.Where("videos.owner_id = ?", q.OwnerID)
	} else {
		base = base.Where("videos.is_published = ?", true)
	}

	if q.Query != "" {
		like := "%" + q.Query + "%"
		base = base.Where("videos.title ILIKE ? OR videos.description ILIKE ?", like, like)
	}

	var total int64
	if err := base.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	//ソート列はホワイトリストで固定
	sortBy := "created_at"
	switch q.SortBy {
	case "views":
		sortBy = "views"
	case "duration":
		sortBy = "duration"
	}
	dir := "DESC"
	if q.SortAsc {
		dir = "ASC"
	}

	var rows []videoOwnerRow
	err := base.
		Select("videos.*, users.username AS owner_username, users.full_name AS owner_full_name, users.avatar AS owner_avatar").
		Joins("JOIN users ON users.id = videos.owner_id").
		Order(fmt.Sprintf("videos.%s %s", sortBy, dir)).
		Offset((q.Page - 1) * q.Limit).
		Limit(q.Limit).
		Find(&rows).Error
	if err != nil {
		return nil, 0, err
	}

	items := make([]domainrepo.VideoWithOwner, 0, len(rows))
	for _, row := range rows {
		items = append(items, row.toWithOwner())
	}

	return items, total, nil
}

func (r *videoGormRepository) Update(ctx context.Context, video *model.Video) error {
	return r.db.WithContext(ctx).Save(video).Error
}

func (r *videoGormRepository) Delete(ctx context.Context, videoID string) error {
	res := r.db.WithContext(ctx).
		Where("id = ?", videoID).
		Delete(&model.Video{})

	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return domainrepo.ErrVideoNotFound
	}
	return nil
}

func (r *videoGormRepository) CountByOwner(ctx context.Context, ownerID string) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).
		Model(&model.Video{}).
		Where("owner_id = ?", ownerID).
		Count(&n).Error
	return n, err
}

func (r *videoGormRepository) SumViewsByOwner(ctx context.Context, ownerID string) (int64, error) {
	var total int64
	err := r.db.WithContext(ctx).
		Model(&model.Video{}).
		Where("owner_id = ?", ownerID).
		Select("COALESCE(SUM(views), 0)").
		Scan(&total).Error
	return total, err
}

func (r *videoGormRepository) IncrementViews(ctx context.Context, videoID string) error {
	res := r.db.WithContext(ctx).
		Model(&model.Video{}).
		Where("id = ?", videoID).
		UpdateColumn("views", gorm.Expr("views + ?", 1))

	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return domainrepo.ErrVideoNotFound
	}
	return nil
}
