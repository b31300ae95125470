package subscriptions

import (
	"fmt"
	"time"

	"creatorhub-backend/db"
	"creatorhub-backend/models"
	"creatorhub-backend/utils"
)

// MarkExpired relabels ACTIVE subscriptions whose end date has passed.
// L'étiquette EXPIRED est terminale. Le contrôle d'accès n'attend pas ce
// sweep: CurrentLevel revérifie la borne de temps à chaque lecture.
func MarkExpired(now time.Time) (int64, error) {
	result := db.DB.Model(&models.Subscription{}).
		Where("status = ? AND end_date < ?", models.SubscriptionActive, now).
		Update("status", models.SubscriptionExpired)
	return result.RowsAffected, result.Error
}

// StartExpirySweep lance le balayage périodique des abonnements périmés.
func StartExpirySweep(interval time.Duration) {
	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		for range ticker.C {
			count, err := MarkExpired(time.Now())
			if err != nil {
				utils.LogError(err, "Erreur lors du balayage des abonnements expirés")
				continue
			}
			if count > 0 {
				utils.LogInfo(fmt.Sprintf("%d abonnement(s) marqué(s) expiré(s)", count))
			}
		}
	}()
}
