package subscriptions

import (
	"errors"
	"net/http"
	"time"

	"creatorhub-backend/db"
	"creatorhub-backend/models"
	"creatorhub-backend/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

const defaultDurationDays = 30

// CreateSubscription records a paid relationship between the caller and a
// creator. La création du paiement lui-même est portée par le collaborateur
// de facturation externe.
// @Summary Subscribe to a creator
// @Description Create a subscription to a content creator at a given tier level (1 to 3)
// @Tags subscriptions
// @Accept json
// @Produce json
// @Param subscription body models.SubscriptionCreate true "Subscription information"
// @Security BearerAuth
// @Success 201 {object} models.Subscription
// @Failure 400 {object} map[string]string "error: Invalid input"
// @Failure 401 {object} map[string]string "error: Unauthorized"
// @Failure 403 {object} map[string]string "error: Can only subscribe to a content creator"
// @Failure 404 {object} map[string]string "error: Creator not found"
// @Failure 409 {object} map[string]string "error: Active subscription already exists"
// @Router /subscriptions [post]
func CreateSubscription(c *gin.Context) {
	userID, exists := c.Get("user_id")
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not found in token"})
		return
	}

	var input models.SubscriptionCreate
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
		return
	}

	if _, err := uuid.Parse(input.CreatorID); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid creator ID"})
		return
	}

	if input.CreatorID == userID.(string) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "You cannot subscribe to yourself"})
		return
	}

	var creator models.User
	if err := db.DB.First(&creator, "id = ?", input.CreatorID).Error; err != nil {
		utils.LogErrorWithUser(userID, err, "Creator not found dans CreateSubscription")
		c.JSON(http.StatusNotFound, gin.H{"error": "Creator not found"})
		return
	}
	if creator.Role != models.CreatorRole {
		utils.LogErrorWithUser(userID, nil, "Can only subscribe to a content creator dans CreateSubscription")
		c.JSON(http.StatusForbidden, gin.H{"error": "Can only subscribe to a content creator"})
		return
	}

	// Au plus un abonnement actif par paire (subscriber, creator). Le
	// changement de niveau passe par un upgrade/downgrade, pas par un doublon.
	var existing models.Subscription
	err := db.DB.Where("subscriber_id = ? AND creator_id = ? AND status = ?",
		userID, creator.ID, models.SubscriptionActive).First(&existing).Error
	if err == nil {
		utils.LogErrorWithUser(userID, nil, "Abonnement actif déjà existant dans CreateSubscription")
		c.JSON(http.StatusConflict, gin.H{"error": "You already have an active subscription with this creator"})
		return
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error checking existing subscriptions"})
		return
	}

	durationDays := input.DurationDays
	if durationDays <= 0 {
		durationDays = defaultDurationDays
	}

	now := time.Now()
	subscription := models.Subscription{
		SubscriberID: userID.(string),
		CreatorID:    creator.ID,
		Level:        input.Level,
		Status:       models.SubscriptionActive,
		StartDate:    now,
		EndDate:      now.AddDate(0, 0, durationDays),
	}

	if err := db.DB.Create(&subscription).Error; err != nil {
		utils.LogErrorWithUser(userID, err, "Erreur lors de la création de l'abonnement dans CreateSubscription")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error creating subscription"})
		return
	}

	utils.LogSuccessWithUser(userID, "Abonnement créé avec succès dans CreateSubscription")
	c.JSON(http.StatusCreated, subscription)
}

// CancelSubscription sets the subscription status to CANCELED. Terminal et
// irréversible par cette API; un second appel est un no-op propre.
// @Summary Cancel a subscription
// @Description Cancel a subscription; only the subscriber may cancel, and cancelling twice is a no-op
// @Tags subscriptions
// @Produce json
// @Param subscriptionId path string true "ID of the subscription to cancel"
// @Security BearerAuth
// @Success 200 {object} models.Subscription
// @Failure 400 {object} map[string]string "error: Invalid subscription ID"
// @Failure 401 {object} map[string]string "error: Unauthorized"
// @Failure 403 {object} map[string]string "error: Insufficient access"
// @Failure 404 {object} map[string]string "error: Subscription not found"
// @Router /subscriptions/{subscriptionId}/cancel [patch]
func CancelSubscription(c *gin.Context) {
	subscriptionId := c.Param("subscriptionId")

	if _, err := uuid.Parse(subscriptionId); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid subscription ID"})
		return
	}

	userID, exists := c.Get("user_id")
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not found in token"})
		return
	}

	var subscription models.Subscription
	if err := db.DB.First(&subscription, "id = ?", subscriptionId).Error; err != nil {
		utils.LogErrorWithUser(userID, err, "Subscription not found dans CancelSubscription")
		c.JSON(http.StatusNotFound, gin.H{"error": "Subscription not found"})
		return
	}

	if subscription.SubscriberID != userID {
		utils.LogErrorWithUser(userID, nil, "Not authorized to cancel this subscription dans CancelSubscription")
		c.JSON(http.StatusForbidden, gin.H{"error": "Insufficient access"})
		return
	}

	// Déjà résilié: rien à faire
	if subscription.Status != models.SubscriptionActive {
		c.JSON(http.StatusOK, subscription)
		return
	}

	if err := db.DB.Model(&subscription).Update("status", models.SubscriptionCanceled).Error; err != nil {
		utils.LogErrorWithUser(userID, err, "Erreur lors de la mise à jour du statut dans CancelSubscription")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error when updating the subscription status"})
		return
	}

	subscription.Status = models.SubscriptionCanceled
	utils.LogSuccessWithUser(userID, "Abonnement annulé avec succès dans CancelSubscription")
	c.JSON(http.StatusOK, subscription)
}

// GetUserSubscriptions get all the subscriptions (active, canceled, expired) of the connected user
// @Summary List the user's subscriptions
// @Description Return all the subscriptions (active, canceled, expired) of the connected user
// @Tags subscriptions
// @Produce json
// @Security BearerAuth
// @Success 200 {array} models.Subscription
// @Failure 401 {object} map[string]string "error: Unauthorized"
// @Router /subscriptions [get]
func GetUserSubscriptions(c *gin.Context) {
	userID, exists := c.Get("user_id")
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not found in token"})
		return
	}

	var subscriptions []models.Subscription
	err := db.DB.Where("subscriber_id = ?", userID).Order("created_at DESC").Find(&subscriptions).Error
	if err != nil {
		utils.LogErrorWithUser(userID, err, "Erreur lors de la récupération des abonnements dans GetUserSubscriptions")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error fetching subscriptions"})
		return
	}

	c.JSON(http.StatusOK, subscriptions)
}

// GetSubscriptionDetail returns the details of a subscription
// @Summary Details of a subscription
// @Description Return the detailed information of a subscription; only visible to its subscriber
// @Tags subscriptions
// @Produce json
// @Param subscriptionId path string true "ID of the subscription"
// @Security BearerAuth
// @Success 200 {object} models.Subscription
// @Failure 400 {object} map[string]string "error: Invalid subscription ID"
// @Failure 401 {object} map[string]string "error: Unauthorized"
// @Failure 403 {object} map[string]string "error: Insufficient access"
// @Failure 404 {object} map[string]string "error: Subscription not found"
// @Router /subscriptions/{subscriptionId} [get]
func GetSubscriptionDetail(c *gin.Context) {
	subscriptionId := c.Param("subscriptionId")

	if _, err := uuid.Parse(subscriptionId); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid subscription ID"})
		return
	}

	userID, exists := c.Get("user_id")
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not found in token"})
		return
	}

	var subscription models.Subscription
	if err := db.DB.First(&subscription, "id = ?", subscriptionId).Error; err != nil {
		utils.LogErrorWithUser(userID, err, "Subscription not found dans GetSubscriptionDetail")
		c.JSON(http.StatusNotFound, gin.H{"error": "Subscription not found"})
		return
	}

	if subscription.SubscriberID != userID {
		c.JSON(http.StatusForbidden, gin.H{"error": "Insufficient access"})
		return
	}

	c.JSON(http.StatusOK, subscription)
}
