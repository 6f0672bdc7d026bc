package model

import "time"

type Comment struct {
	ID        string    `json:"id" gorm:"type:uuid;primaryKey"`
	VideoID   string    `json:"videoId" gorm:"type:uuid;not null;index"`
	OwnerID   string    `json:"ownerId" gorm:"type:uuid;not null;index"`
	Content   string    `json:"content" gorm:"not null"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}
