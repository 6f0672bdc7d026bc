package model

import "time"

// Likeは動画かコメントのどちらか片方だけを指す
type Like struct {
	ID        string    `json:"id" gorm:"type:uuid;primaryKey"`
	VideoID   *string   `json:"videoId" gorm:"type:uuid;index:idx_likes_video_user"`
	CommentID *string   `json:"commentId" gorm:"type:uuid;index:idx_likes_comment_user"`
	LikedByID string    `json:"likedById" gorm:"type:uuid;not null;index:idx_likes_video_user;index:idx_likes_comment_user"`
	CreatedAt time.Time `json:"createdAt"`
}
