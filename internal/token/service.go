package token

import (
	"errors"
	"time"

	"vidtube/internal/domain/model"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

var (
	// 署名不正・形式不正
	ErrInvalidToken = errors.New("invalid token")
	// 期限切れ
	ErrExpiredToken = errors.New("expired token")
)

// アクセストークンのclaims（subに加えてプロフィールの一部を持つ）
type AccessClaims struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	jwt.RegisteredClaims
}

// Serviceはアクセス/リフレッシュの2系統のトークンを発行・検証する。
// 署名鍵もTTLも系統ごとに独立。純関数でI/Oは行わない。
type Service struct {
	accessSecret  []byte
	refreshSecret []byte
	accessTTL     time.Duration
	refreshTTL    time.Duration
}

func NewService(accessSecret string, refreshSecret string, accessTTL time.Duration, refreshTTL time.Duration) *Service {
	return &Service{
		accessSecret:  []byte(accessSecret),
		refreshSecret: []byte(refreshSecret),
		accessTTL:     accessTTL,
		refreshTTL:    refreshTTL,
	}
}

// IssueAccessTokenは短命のアクセストークンを発行する
func (s *Service) IssueAccessToken(user *model.User) (string, error) {
	now := time.Now()

	claims := AccessClaims{
		Username: user.Username,
		Email:    user.Email,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   user.ID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.accessTTL)),
		},
	}

	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return tok.SignedString(s.accessSecret)
}

// IssueRefreshTokenは長命のリフレッシュトークンを発行する。
// jtiを入れて毎回必ず異なるトークンにする（同一秒内のローテーションでも
// 旧トークンと新トークンがバイト一致しないこと）
func (s *Service) IssueRefreshToken(user *model.User) (string, error) {
	now := time.Now()

	claims := jwt.RegisteredClaims{
		Subject:   user.ID,
		ID:        uuid.NewString(),
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(s.refreshTTL)),
	}

	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return tok.SignedString(s.refreshSecret)
}

// VerifyAccessはアクセストークンを検証してclaimsを返す
func (s *Service) VerifyAccess(raw string) (*AccessClaims, error) {
	claims := &AccessClaims{}

	tok, err := jwt.ParseWithClaims(raw, claims, func(t *jwt.Token) (interface{}, error) {
		return s.accessSecret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrExpiredToken
		}
		return nil, ErrInvalidToken
	}
	if !tok.Valid || claims.Subject == "" {
		return nil, ErrInvalidToken
	}

	return claims, nil
}

// VerifyRefreshはリフレッシュトークンを検証してsubject（ユーザーID）を返す。
// 保存値との突き合わせは呼び出し側の責務。ここは署名と期限だけを見る。
func (s *Service) VerifyRefresh(raw string) (string, error) {
	claims := &jwt.RegisteredClaims{}

	tok, err := jwt.ParseWithClaims(raw, claims, func(t *jwt.Token) (interface{}, error) {
		return s.refreshSecret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return "", ErrExpiredToken
		}
		return "", ErrInvalidToken
	}
	if !tok.Valid || claims.Subject == "" {
		return "", ErrInvalidToken
	}

	return claims.Subject, nil
}
