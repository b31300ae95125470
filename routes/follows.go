package routes

import (
	"creatorhub-backend/handlers/follows"
	"creatorhub-backend/middleware"

	"github.com/gin-gonic/gin"
)

func FollowsRoutes(r *gin.Engine) {
	r.GET("/users/:id/followers/count", follows.GetFollowersCount)

	followRoutes := r.Group("/users")
	followRoutes.Use(middleware.JWTAuth())
	{
		followRoutes.POST("/:id/follow", follows.ToggleFollow)
	}
}
