package validator

import (
	"context"
	"net/http"
	"regexp"
	"strings"

	"vidtube/internal/usecase"
)

type authValidator struct{}

// Usecaseはinterfaceを依存注入
func NewAuthValidator() usecase.AuthValidator {
	return &authValidator{}
}

// 会員登録の入力を検証
func (v *authValidator) ValidateRegister(ctx context.Context, username string, email string, fullName string, password string) error {
	//必須チェック（全フィールド）
	for _, field := range []string{username, email, fullName, password} {
		if strings.TrimSpace(field) == "" {
			return usecase.NewHTTPError(http.StatusBadRequest, "all fields are required")
		}
	}

	if !isEmailLike(email) {
		return usecase.NewHTTPError(http.StatusBadRequest, "invalid email format")
	}

	//パスワード最低文字数
	if len(password) < 6 {
		return usecase.NewHTTPError(http.StatusBadRequest, "password must be at least 6 characters")
	}

	return nil
}

// ログインの入力を検証
func (v *authValidator) ValidateLogin(ctx context.Context, identifier string, password string) error {
	if strings.TrimSpace(identifier) == "" {
		return usecase.NewHTTPError(http.StatusBadRequest, "username or email is required")
	}
	if password == "" {
		return usecase.NewHTTPError(http.StatusBadRequest, "password is required")
	}
	return nil
}

// パスワード変更の入力を検証
func (v *authValidator) ValidateChangePassword(ctx context.Context, oldPassword string, newPassword string) error {
	if oldPassword == "" || newPassword == "" {
		return usecase.NewHTTPError(http.StatusBadRequest, "all fields are required")
	}
	if len(newPassword) < 6 {
		return usecase.NewHTTPError(http.StatusBadRequest, "password must be at least 6 characters")
	}
	return nil
}

// 簡易メール形式をチェック
func isEmailLike(s string) bool {
	re := regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
	return re.MatchString(s)
}
