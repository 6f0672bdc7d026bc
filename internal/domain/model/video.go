package model

import "time"

type Video struct {
	ID          string    `json:"id" gorm:"type:uuid;primaryKey"`
	OwnerID     string    `json:"ownerId" gorm:"type:uuid;not null;index"`
	VideoFile   string    `json:"videoFile" gorm:"not null"` // cloudinary URL
	Thumbnail   string    `json:"thumbnail" gorm:"not null"`
	Title       string    `json:"title" gorm:"not null"`
	Description string    `json:"description" gorm:"not null"`
	Duration    float64   `json:"duration" gorm:"not null"`
	Views       int64     `json:"views" gorm:"not null;default:0"`
	IsPublished bool      `json:"isPublished" gorm:"not null;default:true"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}
