package models

import (
	"time"
)

type SubscriptionStatus string

const (
	SubscriptionActive   SubscriptionStatus = "ACTIVE"
	SubscriptionCanceled SubscriptionStatus = "CANCELED"
	SubscriptionExpired  SubscriptionStatus = "EXPIRED"
)

// Tier bounds for paid subscriptions. Level 0 means "no paid subscription"
// and never exists as a row.
const (
	MinSubscriptionLevel = 1
	MaxSubscriptionLevel = 3
)

type Subscription struct {
	ID                   string             `json:"id" gorm:"primaryKey;type:uuid;default:gen_random_uuid()"`
	SubscriberID         string             `json:"subscriberId" gorm:"type:uuid;not null;index"`
	CreatorID            string             `json:"creatorId" gorm:"type:uuid;not null;index"`
	Level                int                `json:"level" gorm:"not null"`
	Status               SubscriptionStatus `json:"status" gorm:"type:varchar(20);default:'ACTIVE'"`
	StripeSubscriptionId string             `json:"stripeSubscriptionId"`
	StartDate            time.Time          `json:"startDate"`
	EndDate              time.Time          `json:"endDate"`
	CreatedAt            time.Time          `json:"createdAt"`
	UpdatedAt            time.Time          `json:"updatedAt"`
}

// LevelAt retourne le niveau payé porté par cet abonnement à l'instant donné.
// The time bound is re-checked here on purpose: a stale ACTIVE row whose end
// date already passed must never grant access, even before the expiry sweep
// relabels it.
func (s *Subscription) LevelAt(now time.Time) int {
	if s.Status != SubscriptionActive {
		return 0
	}
	if now.After(s.EndDate) {
		return 0
	}
	return s.Level
}

// SubscriptionCreate model for creating a subscription
type SubscriptionCreate struct {
	CreatorID    string `json:"creatorId" binding:"required"`
	Level        int    `json:"level" binding:"required,min=1,max=3"`
	DurationDays int    `json:"durationDays"`
}
