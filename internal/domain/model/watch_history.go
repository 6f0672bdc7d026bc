package model

import "time"

// WatchHistoryは視聴履歴の1エントリ（ユーザー×動画で1件、視聴時刻は更新）
type WatchHistory struct {
	UserID    string    `json:"userId" gorm:"type:uuid;primaryKey"`
	VideoID   string    `json:"videoId" gorm:"type:uuid;primaryKey"`
	WatchedAt time.Time `json:"watchedAt" gorm:"not null;index"`
}
