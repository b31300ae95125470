package routes

import (
	"creatorhub-backend/handlers/content"
	"creatorhub-backend/handlers/content/likes"
	"creatorhub-backend/middleware"
	"creatorhub-backend/storage"

	"github.com/gin-gonic/gin"
)

func ContentRoutes(r *gin.Engine, gw *storage.Gateway) {
	handler := content.New(gw)

	// Tout passe par l'évaluateur d'accès, donc tout est authentifié
	contentRoutes := r.Group("/content")
	contentRoutes.Use(middleware.JWTAuth())
	{
		contentRoutes.GET("", handler.GetAllContent)
		contentRoutes.GET("/:id", handler.GetContentByID)
		contentRoutes.POST("", handler.CreateContent)
		contentRoutes.PUT("/:id", handler.UpdateContent)
		contentRoutes.DELETE("/:id", handler.DeleteContent)

		contentRoutes.POST("/:id/like", likes.LikeContent)
	}
}
