package routes

import (
	"creatorhub-backend/handlers/users"
	"creatorhub-backend/middleware"
	"creatorhub-backend/storage"

	"github.com/gin-gonic/gin"
)

func UsersRoutes(r *gin.Engine, gw *storage.Gateway) {
	handler := users.New(gw)

	// Route publique
	r.GET("/users/:id", handler.GetUserByID)

	usersRoutes := r.Group("/users")
	usersRoutes.Use(middleware.JWTAuth())
	{
		usersRoutes.GET("/me", handler.GetMe)
		usersRoutes.PUT("/me/profile-picture", handler.UpdateProfilePicture)
	}
}
