package repository

import (
	"context"
	"errors"
	"strings"

	"vidtube/internal/domain/model"
	domainrepo "vidtube/internal/repository"

	"gorm.io/gorm"
)

type userGormRepository struct {
	db *gorm.DB
}

// DI
// main.goでこれをnewしてusecaseに注入します。
func NewUserGormRepository(db *gorm.DB) domainrepo.UserRepository {
	return &userGormRepository{db: db}
}

// Create はユーザーを新規作成
func (r *userGormRepository) Create(ctx context.Context, user *model.User) error {
	if err := r.db.WithContext(ctx).Create(user).Error; err != nil {
		// unique index違反は重複として返す
		if errors.Is(err, gorm.ErrDuplicatedKey) || isUniqueViolation(err) {
			return domainrepo.ErrDuplicateUser
		}
		return err
	}
	return nil
}

// IDでユーザーを1件取得
func (r *userGormRepository) FindByID(ctx context.Context, userID string) (*model.User, error) {
	var u model.User

	err := r.db.WithContext(ctx).
		Where("id = ?", userID).
		First(&u).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domainrepo.ErrUserNotFound
		}
		return nil, err
	}

	return &u, nil
}

// usernameまたはemailでユーザーを1件取得
func (r *userGormRepository) FindByUsernameOrEmail(ctx context.Context, username string, email string) (*model.User, error) {
	var u model.User

	err := r.db.WithContext(ctx).
		Where("username = ? OR email = ?", strings.ToLower(username), email).
		First(&u).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domainrepo.ErrUserNotFound
		}
		return nil, err
	}

	return &u, nil
}

// リフレッシュトークンを無条件で上書き（ログイン）
func (r *userGormRepository) SetRefreshToken(ctx context.Context, userID string, token string) error {
	res := r.db.WithContext(ctx).
		Model(&model.User{}).
		Where("id = ?", userID).
		Update("refresh_token", token)

	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return domainrepo.ErrUserNotFound
	}
	return nil
}

// リフレッシュトークンをクリア（ログアウト・冪等）
func (r *userGormRepository) ClearRefreshToken(ctx context.Context, userID string) error {
	res := r.db.WithContext(ctx).
		Model(&model.User{}).
		Where("id = ?", userID).
		Update("refresh_token", nil)

	if res.Error != nil {
		return res.Error
	}
	// クリア済みでもRowsAffectedは1になる（同値更新）。0はユーザー不在のみ
	if res.RowsAffected == 0 {
		return domainrepo.ErrUserNotFound
	}
	return nil
}

// 保存中の値がpresentedのときだけnextへ置き換える（条件付き更新）
// 同じトークンで競合した2つのローテーションのうち勝てるのは1つだけ
func (r *userGormRepository) RotateRefreshToken(ctx context.Context, userID string, presented string, next string) error {
	res := r.db.WithContext(ctx).
		Model(&model.User{}).
		Where("id = ? AND refresh_token = ?", userID, presented).
		Update("refresh_token", next)

	if res.Error != nil {
		return res.Error
	}

	// 更新件数0は「既にローテーション済み/クリア済み」
	if res.RowsAffected == 0 {
		return domainrepo.ErrRefreshTokenMismatch
	}

	return nil
}

// パスワードハッシュを置き換える
func (r *userGormRepository) UpdatePasswordHash(ctx context.Context, userID string, passwordHash string) error {
	res := r.db.WithContext(ctx).
		Model(&model.User{}).
		Where("id = ?", userID).
		Update("password_hash", passwordHash)

	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return domainrepo.ErrUserNotFound
	}
	return nil
}

// fullName/emailを更新
func (r *userGormRepository) UpdateAccount(ctx context.Context, userID string, fullName string, email string) error {
	res := r.db.WithContext(ctx).
		Model(&model.User{}).
		Where("id = ?", userID).
		Updates(map[string]interface{}{
			"full_name": fullName,
			"email":     email,
		})

	if res.Error != nil {
		if isUniqueViolation(res.Error) {
			return domainrepo.ErrDuplicateUser
		}
		return res.Error
	}
	if res.RowsAffected == 0 {
		return domainrepo.ErrUserNotFound
	}
	return nil
}

func (r *userGormRepository) UpdateAvatar(ctx context.Context, userID string, url string) error {
	return r.updateColumn(ctx, userID, "avatar", url)
}

func (r *userGormRepository) UpdateCoverImage(ctx context.Context, userID string, url string) error {
	return r.updateColumn(ctx, userID, "cover_image", url)
}

func (r *userGormRepository) updateColumn(ctx context.Context, userID string, column string, value string) error {
	res := r.db.WithContext(ctx).
		Model(&model.User{}).
		Where("id = ?", userID).
		Update(column, value)

	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return domainrepo.ErrUserNotFound
	}
	return nil
}

// postgresのunique violation（23505）かどうか
func isUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	return strings.Contains(err.Error(), "23505") ||
		strings.Contains(err.Error(), "duplicate key value")
}
