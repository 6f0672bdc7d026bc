package model

import "time"

// Subscription: subscriberがchannelを購読している
type Subscription struct {
	ID           string    `json:"id" gorm:"type:uuid;primaryKey"`
	SubscriberID string    `json:"subscriberId" gorm:"type:uuid;not null;uniqueIndex:idx_sub_channel"`
	ChannelID    string    `json:"channelId" gorm:"type:uuid;not null;uniqueIndex:idx_sub_channel"`
	CreatedAt    time.Time `json:"createdAt"`
}
