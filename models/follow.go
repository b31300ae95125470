package models

import (
	"time"
)

// Follow est la relation sociale, jamais payante. Elle ne donne aucun droit
// d'accès: seule une Subscription porte un niveau. Les deux relations sont
// volontairement des tables séparées.
type Follow struct {
	ID         string    `json:"id" gorm:"primaryKey;type:uuid;default:gen_random_uuid()"`
	FollowerID string    `json:"followerId" gorm:"column:follower_id;type:uuid;not null"`
	CreatorID  string    `json:"creatorId" gorm:"column:creator_id;type:uuid;not null"`
	CreatedAt  time.Time `json:"createdAt"`
}
