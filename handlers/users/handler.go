package users

import (
	"errors"
	"net/http"

	"creatorhub-backend/db"
	"creatorhub-backend/models"
	"creatorhub-backend/storage"
	"creatorhub-backend/utils"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	Storage *storage.Gateway
}

func New(gw *storage.Gateway) *Handler {
	return &Handler{Storage: gw}
}

// GetMe returns the connected user's profile
// @Summary Get the connected user
// @Description Return the profile of the connected user
// @Tags users
// @Produce json
// @Security BearerAuth
// @Success 200 {object} models.User
// @Failure 401 {object} map[string]string "error: Unauthorized"
// @Failure 404 {object} map[string]string "error: User not found"
// @Router /users/me [get]
func (h *Handler) GetMe(c *gin.Context) {
	userID, exists := c.Get("user_id")
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not found in token"})
		return
	}

	var user models.User
	if err := db.DB.First(&user, "id = ?", userID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		return
	}

	c.JSON(http.StatusOK, user)
}

// UpdateProfilePicture replaces the user's profile picture. Le nouvel objet
// est écrit avant toute suppression: même si le nettoyage de l'ancien
// échoue, l'utilisateur repart avec une image valide.
// @Summary Update the profile picture
// @Description Upload a new profile picture; the previous object is deleted best-effort after the new one is live
// @Tags users
// @Accept multipart/form-data
// @Produce json
// @Param picture formData file true "Profile picture (JPEG, PNG, WebP or GIF, 5MB max)"
// @Security BearerAuth
// @Success 200 {object} models.User
// @Failure 400 {object} map[string]string "error: Invalid file"
// @Failure 401 {object} map[string]string "error: Unauthorized"
// @Failure 404 {object} map[string]string "error: User not found"
// @Failure 500 {object} map[string]string "error: Error message"
// @Router /users/me/profile-picture [put]
func (h *Handler) UpdateProfilePicture(c *gin.Context) {
	userID, exists := c.Get("user_id")
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not found in token"})
		return
	}

	var user models.User
	if err := db.DB.First(&user, "id = ?", userID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		return
	}

	file, err := c.FormFile("picture")
	if err != nil || file == nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Picture is required"})
		return
	}

	obj, err := h.Storage.Replace(c.Request.Context(), user.ID, file, models.MediaTypeImage, storage.AssetProfilePicture, user.ProfilePictureKey)
	if err != nil {
		var vErr *storage.ValidationError
		if errors.As(err, &vErr) {
			c.JSON(http.StatusBadRequest, gin.H{"error": vErr.Reason})
			return
		}
		utils.LogErrorWithUser(userID, err, "Upload de la photo de profil échoué dans UpdateProfilePicture")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error uploading profile picture"})
		return
	}

	updates := map[string]interface{}{
		"profile_picture":     obj.URL,
		"profile_picture_key": obj.Key,
	}
	if err := db.DB.Model(&user).Updates(updates).Error; err != nil {
		utils.LogErrorWithUser(userID, err, "Erreur lors de la mise à jour du profil dans UpdateProfilePicture")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error updating profile"})
		return
	}

	user.ProfilePicture = obj.URL
	user.ProfilePictureKey = obj.Key

	utils.LogSuccessWithUser(userID, "Photo de profil mise à jour avec succès dans UpdateProfilePicture")
	c.JSON(http.StatusOK, user)
}

// GetUserByID returns a public profile
// @Summary Get a user by ID
// @Description Retrieve a user's public profile
// @Tags users
// @Produce json
// @Param id path string true "User ID"
// @Success 200 {object} models.User
// @Failure 404 {object} map[string]string "error: User not found"
// @Router /users/{id} [get]
func (h *Handler) GetUserByID(c *gin.Context) {
	var user models.User
	if err := db.DB.First(&user, "id = ?", c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		return
	}

	c.JSON(http.StatusOK, user)
}
