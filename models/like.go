package models

import (
	"time"
)

// Like is add-once: a user can like a content a single time and likes are
// never taken back, so the content counter only grows.
type Like struct {
	ID        string    `json:"id" gorm:"primaryKey;type:uuid;default:gen_random_uuid()"`
	ContentID string    `json:"contentId" gorm:"column:content_id;type:uuid;not null"`
	UserID    string    `json:"userId" gorm:"column:user_id;type:uuid;not null"`
	CreatedAt time.Time `json:"createdAt"`
}
