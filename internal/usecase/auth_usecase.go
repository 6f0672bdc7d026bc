package usecase

import (
	"context"
	"errors"
	"io"
	"net/http"
	"strings"

	"vidtube/internal/domain/model"
	"vidtube/internal/media"
	"vidtube/internal/rate"
	"vidtube/internal/repository"
	"vidtube/internal/token"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

// usecaseがValidatorInterfaceに依存する約束
type AuthValidator interface {
	ValidateRegister(ctx context.Context, username string, email string, fullName string, password string) error
	ValidateLogin(ctx context.Context, identifier string, password string) error
	ValidateChangePassword(ctx context.Context, oldPassword string, newPassword string) error
}

type TokenPair struct {
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
}

type FileInput struct {
	Reader   io.Reader
	Filename string
}

type RegisterInput struct {
	Username   string
	Email      string
	FullName   string
	Password   string
	Avatar     *FileInput // 必須
	CoverImage *FileInput // 任意
}

type LoginInput struct {
	Identifier string // usernameまたはemail
	Password   string
	IP         string
}

type LoginResult struct {
	User   UserDTO   `json:"user"`
	Tokens TokenPair `json:"tokens"`
}

type AuthUsecase struct {
	users     repository.UserRepository
	tokens    *token.Service
	uploader  media.Uploader
	limiter   *rate.Limiter
	validator AuthValidator
}

func NewAuthUsecase(
	users repository.UserRepository,
	tokens *token.Service,
	uploader media.Uploader,
	limiter *rate.Limiter,
	validator AuthValidator,
) *AuthUsecase {
	return &AuthUsecase{
		users:     users,
		tokens:    tokens,
		uploader:  uploader,
		limiter:   limiter,
		validator: validator,
	}
}

func (u *AuthUsecase) Register(ctx context.Context, in RegisterInput) (*UserDTO, error) {
	//入力検証（validatorに寄せる）
	if err := u.validator.ValidateRegister(ctx, in.Username, in.Email, in.FullName, in.Password); err != nil {
		return nil, err
	}

	username := strings.ToLower(strings.TrimSpace(in.Username))

	//username/email重複チェック
	existing, err := u.users.FindByUsernameOrEmail(ctx, username, in.Email)
	if err != nil && !errors.Is(err, repository.ErrUserNotFound) {
		return nil, errInternal()
	}
	if existing != nil {
		return nil, NewHTTPError(http.StatusConflict, "username or email already exists")
	}

	//avatarは必須
	if in.Avatar == nil {
		return nil, NewHTTPError(http.StatusBadRequest, "avatar file is required")
	}

	avatar, err := u.uploader.UploadImage(ctx, in.Avatar.Reader, in.Avatar.Filename)
	if err != nil {
		return nil, NewHTTPError(http.StatusBadRequest, "avatar upload failed")
	}

	coverURL := ""
	if in.CoverImage != nil {
		cover, err := u.uploader.UploadImage(ctx, in.CoverImage.Reader, in.CoverImage.Filename)
		if err != nil {
			return nil, NewHTTPError(http.StatusBadRequest, "cover image upload failed")
		}
		coverURL = cover.URL
	}

	//パスワードは必ずハッシュ化して保存（平文保存しない）
	pwHash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, errInternal()
	}

	user := &model.User{
		ID:           uuid.NewString(),
		Username:     username,
		Email:        in.Email,
		FullName:     in.FullName,
		Avatar:       avatar.URL,
		CoverImage:   coverURL,
		PasswordHash: string(pwHash),
	}

	if err := u.users.Create(ctx, user); err != nil {
		if errors.Is(err, repository.ErrDuplicateUser) {
			return nil, NewHTTPError(http.StatusConflict, "username or email already exists")
		}
		return nil, errInternal()
	}

	dto := toUserDTO(user)
	return &dto, nil
}

func (u *AuthUsecase) Login(ctx context.Context, in LoginInput) (*LoginResult, error) {
	if err := u.validator.ValidateLogin(ctx, in.Identifier, in.Password); err != nil {
		return nil, err
	}

	//試行回数チェック
	if err := u.limiter.CheckLogin(ctx, in.Identifier, in.IP); err != nil {
		return nil, NewHTTPError(http.StatusTooManyRequests, "too many login attempts")
	}

	//ユーザー取得（username/emailどちらでも）
	user, err := u.users.FindByUsernameOrEmail(ctx, in.Identifier, in.Identifier)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil, NewHTTPError(http.StatusNotFound, "user does not exist")
		}
		return nil, errInternal()
	}

	//パスワード照合（bcrypt）
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(in.Password)); err != nil {
		_ = u.limiter.RecordLoginFailure(ctx, in.Identifier, in.IP)
		return nil, errUnauthorized("invalid user credentials")
	}

	pair, err := u.issuePair(ctx, user)
	if err != nil {
		return nil, err
	}

	return &LoginResult{
		User:   toUserDTO(user),
		Tokens: pair,
	}, nil
}

// issuePairはアクセス/リフレッシュの両トークンを発行し、リフレッシュ側を永続化する。
// 永続化に失敗したペアは呼び出し元に渡さない（fail-closed）
func (u *AuthUsecase) issuePair(ctx context.Context, user *model.User) (TokenPair, error) {
	access, err := u.tokens.IssueAccessToken(user)
	if err != nil {
		return TokenPair{}, errInternal()
	}

	refresh, err := u.tokens.IssueRefreshToken(user)
	if err != nil {
		return TokenPair{}, errInternal()
	}

	if err := u.users.SetRefreshToken(ctx, user.ID, refresh); err != nil {
		return TokenPair{}, errInternal()
	}

	return TokenPair{AccessToken: access, RefreshToken: refresh}, nil
}

// Refreshはリフレッシュトークンのローテーション。
// Presented → Verified → Matched → Rotated、失敗はすべて401に落とす
func (u *AuthUsecase) Refresh(ctx context.Context, presented string) (*TokenPair, error) {
	// Presented: トークンが来ていること
	if strings.TrimSpace(presented) == "" {
		return nil, errUnauthorized("unauthorized request")
	}

	// Verified: 署名と期限
	userID, err := u.tokens.VerifyRefresh(presented)
	if err != nil {
		return nil, errUnauthorized("invalid or expired refresh token")
	}

	if err := u.limiter.CheckRefresh(ctx, userID); err != nil {
		return nil, NewHTTPError(http.StatusTooManyRequests, "too many refresh attempts")
	}

	user, err := u.users.FindByID(ctx, userID)
	if err != nil {
		// 発行後に消えたユーザーも401
		return nil, errUnauthorized("invalid refresh token")
	}

	// Matched: 保存中の値とバイト単位で一致すること。
	// ローテーション済みのトークンは署名が有効でもここで落ちる（リプレイ検知）
	if user.RefreshToken == nil || *user.RefreshToken != presented {
		return nil, errUnauthorized("refresh token is expired or used")
	}

	// Rotated: 新しいペアを発行して条件付き更新で差し替える。
	// 同じトークンで並行して来たリフレッシュは片方だけが勝つ
	access, err := u.tokens.IssueAccessToken(user)
	if err != nil {
		return nil, errInternal()
	}
	refresh, err := u.tokens.IssueRefreshToken(user)
	if err != nil {
		return nil, errInternal()
	}

	if err := u.users.RotateRefreshToken(ctx, user.ID, presented, refresh); err != nil {
		if errors.Is(err, repository.ErrRefreshTokenMismatch) {
			return nil, errUnauthorized("refresh token is expired or used")
		}
		return nil, errInternal()
	}

	return &TokenPair{AccessToken: access, RefreshToken: refresh}, nil
}

// Logoutは保存中のリフレッシュトークンを無条件でクリアする（冪等）
func (u *AuthUsecase) Logout(ctx context.Context, userID string) (*SuccessResponse, error) {
	if err := u.users.ClearRefreshToken(ctx, userID); err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil, errUnauthorized("unauthorized")
		}
		return nil, errInternal()
	}

	return &SuccessResponse{Message: "user logged out"}, nil
}

// ChangePasswordは旧パスワード必須。リフレッシュトークンには触れない
// （既存セッションは生き続ける）
func (u *AuthUsecase) ChangePassword(ctx context.Context, userID string, oldPassword string, newPassword string) (*SuccessResponse, error) {
	if err := u.validator.ValidateChangePassword(ctx, oldPassword, newPassword); err != nil {
		return nil, err
	}

	user, err := u.users.FindByID(ctx, userID)
	if err != nil {
		return nil, errUnauthorized("unauthorized")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(oldPassword)); err != nil {
		return nil, errUnauthorized("invalid old password")
	}

	newHash, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return nil, errInternal()
	}

	if err := u.users.UpdatePasswordHash(ctx, userID, string(newHash)); err != nil {
		return nil, errInternal()
	}

	return &SuccessResponse{Message: "password changed successfully"}, nil
}

// Meは現在のユーザーを返す（secrets除去済み）
func (u *AuthUsecase) Me(ctx context.Context, userID string) (*UserDTO, error) {
	user, err := u.users.FindByID(ctx, userID)
	if err != nil {
		return nil, errUnauthorized("unauthorized")
	}

	dto := toUserDTO(user)
	return &dto, nil
}
