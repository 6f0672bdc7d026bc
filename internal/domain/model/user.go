package model

import "time"

// Userは認証主体（チャンネル所有者）のレコード
type User struct {
	ID           string  `json:"id" gorm:"type:uuid;primaryKey"`
	Username     string  `json:"username" gorm:"uniqueIndex;not null"` // 小文字に正規化して保存
	Email        string  `json:"email" gorm:"uniqueIndex;not null"`
	FullName     string  `json:"fullName" gorm:"not null"`
	Avatar       string  `json:"avatar" gorm:"not null"`
	CoverImage   string  `json:"coverImage"`
	PasswordHash string  `json:"-" gorm:"column:password_hash;not null"`
	RefreshToken *string `json:"-"` // 有効なリフレッシュトークンは常に最大1つ
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

// UserSummaryは一覧に埋め込む投稿者の最小プロフィール
type UserSummary struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	FullName string `json:"fullName"`
	Avatar   string `json:"avatar"`
}

