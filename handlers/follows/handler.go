package follows

import (
	"net/http"

	"creatorhub-backend/db"
	"creatorhub-backend/models"

	"github.com/gin-gonic/gin"
)

// ToggleFollow suit ou ne suit plus un créateur. Relation sociale pure:
// elle n'ouvre jamais l'accès à un contenu payant.
// @Summary Follow or unfollow a creator
// @Description Toggle the social follow relation towards a creator
// @Tags follows
// @Produce json
// @Param id path string true "Creator ID"
// @Security BearerAuth
// @Success 200 {object} map[string]string "message: Follow added/removed successfully"
// @Failure 400 {object} map[string]string "error: Invalid input"
// @Failure 401 {object} map[string]string "error: Unauthorized"
// @Failure 404 {object} map[string]string "error: Creator not found"
// @Failure 500 {object} map[string]string "error: Error message"
// @Router /users/{id}/follow [post]
func ToggleFollow(c *gin.Context) {
	userID, exists := c.Get("user_id")
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not found in token"})
		return
	}

	creatorID := c.Param("id")
	if creatorID == userID.(string) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "You cannot follow yourself"})
		return
	}

	var creator models.User
	if err := db.DB.First(&creator, "id = ?", creatorID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Creator not found"})
		return
	}

	var follow models.Follow
	result := db.DB.Where("follower_id = ? AND creator_id = ?", userID, creatorID).First(&follow)

	if result.Error == nil {
		// Le follow existe déjà, on le supprime
		if err := db.DB.Delete(&follow).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Error removing follow: " + err.Error()})
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "Follow removed successfully"})
		return
	}

	follow = models.Follow{
		FollowerID: userID.(string),
		CreatorID:  creatorID,
	}

	if err := db.DB.Create(&follow).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error adding follow: " + err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Follow added successfully"})
}

// GetFollowersCount returns the number of followers of a creator
// @Summary Count followers
// @Description Return the number of followers of a creator
// @Tags follows
// @Produce json
// @Param id path string true "Creator ID"
// @Success 200 {object} map[string]int64 "followers: count"
// @Failure 500 {object} map[string]string "error: Error message"
// @Router /users/{id}/followers/count [get]
func GetFollowersCount(c *gin.Context) {
	var count int64
	if err := db.DB.Model(&models.Follow{}).Where("creator_id = ?", c.Param("id")).Count(&count).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error counting followers: " + err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"followers": count})
}
