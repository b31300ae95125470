package subscriptions

import (
	"time"

	"creatorhub-backend/db"
	"creatorhub-backend/models"
)

// CurrentLevel calcule le niveau payé d'un abonné envers un créateur à
// l'instant donné. Lecture directe en base, jamais un drapeau en cache:
// la borne de temps est revérifiée même si le sweep n'est pas encore passé
// sur une ligne ACTIVE périmée.
func CurrentLevel(subscriberID, creatorID string, now time.Time) int {
	var subscription models.Subscription
	err := db.DB.Where("subscriber_id = ? AND creator_id = ? AND status = ?",
		subscriberID, creatorID, models.SubscriptionActive).
		Order("end_date DESC").
		First(&subscription).Error
	if err != nil {
		return 0
	}

	return subscription.LevelAt(now)
}
