package likes

import (
	"errors"
	"net/http"

	"creatorhub-backend/db"
	"creatorhub-backend/models"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// LikeContent enregistre un like unique. Pas de toggle: un like ne se
// reprend pas, le compteur du contenu ne décroît jamais.
// @Summary Like a content
// @Description Add a like on a content; liking twice is a no-op
// @Tags content
// @Produce json
// @Param id path string true "Content ID"
// @Security BearerAuth
// @Success 200 {object} map[string]string "message: Like added successfully"
// @Failure 401 {object} map[string]string "error: Unauthorized"
// @Failure 404 {object} map[string]string "error: Content not found"
// @Failure 500 {object} map[string]string "error: Error message"
// @Router /content/{id}/like [post]
func LikeContent(c *gin.Context) {
	userID, exists := c.Get("user_id")
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not found in token"})
		return
	}

	contentID := c.Param("id")

	var contentItem models.Content
	if err := db.DB.First(&contentItem, "id = ?", contentID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Content not found"})
		return
	}

	var like models.Like
	err := db.DB.Where("content_id = ? AND user_id = ?", contentID, userID).First(&like).Error
	if err == nil {
		c.JSON(http.StatusOK, gin.H{"message": "Content already liked"})
		return
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error checking like: " + err.Error()})
		return
	}

	like = models.Like{
		ContentID: contentID,
		UserID:    userID.(string),
	}

	if err := db.DB.Create(&like).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error adding like: " + err.Error()})
		return
	}

	if err := db.DB.Model(&contentItem).UpdateColumn("likes", gorm.Expr("likes + 1")).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error updating like counter: " + err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Like added successfully"})
}
