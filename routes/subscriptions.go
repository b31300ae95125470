package routes

import (
	"creatorhub-backend/handlers/subscriptions"
	"creatorhub-backend/middleware"

	"github.com/gin-gonic/gin"
)

func SubscriptionsRoutes(r *gin.Engine) {
	subscriptionRoutes := r.Group("/subscriptions")
	subscriptionRoutes.Use(middleware.JWTAuth())
	{
		subscriptionRoutes.POST("", subscriptions.CreateSubscription)
		subscriptionRoutes.PATCH("/:subscriptionId/cancel", subscriptions.CancelSubscription)
		subscriptionRoutes.GET("", subscriptions.GetUserSubscriptions)
		subscriptionRoutes.GET("/:subscriptionId", subscriptions.GetSubscriptionDetail)
	}
}
