package repository

import (
	"context"
	"errors"

	"vidtube/internal/domain/model"
)

// ユーザーが見つかりませんを統一
var ErrUserNotFound = errors.New("user not found")

// username/emailの重複
var ErrDuplicateUser = errors.New("username or email already exists")

// 条件付き更新で保存中のリフレッシュトークンが一致しなかった
var ErrRefreshTokenMismatch = errors.New("stored refresh token does not match")

// 認証主体の保存・取得を約束
type UserRepository interface {
	//新規ユーザー作成（username/email重複はErrDuplicateUser）
	Create(ctx context.Context, user *model.User) error
	// IDからユーザーを1件取得する
	FindByID(ctx context.Context, userID string) (*model.User, error)
	// usernameまたはemailでユーザーを1件取得する
	FindByUsernameOrEmail(ctx context.Context, username string, email string) (*model.User, error)
	// リフレッシュトークンを無条件に上書きする（ログイン時）
	SetRefreshToken(ctx context.Context, userID string, token string) error
	// リフレッシュトークンをクリアする（ログアウト時・冪等）
	ClearRefreshToken(ctx context.Context, userID string) error
	// 保存中の値がpresentedと一致する場合だけnextへ置き換える（ローテーション時）
	// 一致しなければErrRefreshTokenMismatch
	RotateRefreshToken(ctx context.Context, userID string, presented string, next string) error
	// パスワードハッシュを置き換える
	UpdatePasswordHash(ctx context.Context, userID string, passwordHash string) error
	// fullName/emailを更新する
	UpdateAccount(ctx context.Context, userID string, fullName string, email string) error
	// avatarのURLを更新する
	UpdateAvatar(ctx context.Context, userID string, url string) error
	// coverImageのURLを更新する
	UpdateCoverImage(ctx context.Context, userID string, url string) error
}
