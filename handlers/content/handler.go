package content

import (
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"creatorhub-backend/db"
	"creatorhub-backend/handlers/subscriptions"
	"creatorhub-backend/models"
	"creatorhub-backend/storage"
	"creatorhub-backend/utils"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type Handler struct {
	Storage *storage.Gateway
}

func New(gw *storage.Gateway) *Handler {
	return &Handler{Storage: gw}
}

// CreateContent publishes a media item behind a required tier level.
// @Summary Publish a content
// @Description Upload a media file and create the content record with its required tier level
// @Tags content
// @Accept multipart/form-data
// @Produce json
// @Param title formData string false "Content title"
// @Param mediaType formData string true "Media type (IMAGE or VIDEO)"
// @Param requiredLevel formData int false "Minimum tier level (0 to 3, 0 = public)"
// @Param media formData file true "Media file"
// @Security BearerAuth
// @Success 201 {object} models.Content
// @Failure 400 {object} map[string]string "error: Invalid input"
// @Failure 401 {object} map[string]string "error: Unauthorized"
// @Failure 403 {object} map[string]string "error: Only creators can publish content"
// @Failure 500 {object} map[string]string "error: Error message"
// @Router /content [post]
func (h *Handler) CreateContent(c *gin.Context) {
	userID, exists := c.Get("user_id")
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not found in token"})
		return
	}

	userRole, _ := c.Get("user_role")
	if userRole != string(models.CreatorRole) && userRole != string(models.AdminRole) {
		c.JSON(http.StatusForbidden, gin.H{"error": "Only creators can publish content"})
		return
	}

	mediaType := models.MediaType(strings.ToUpper(c.Request.FormValue("mediaType")))
	if mediaType != models.MediaTypeImage && mediaType != models.MediaTypeVideo {
		c.JSON(http.StatusBadRequest, gin.H{"error": "mediaType must be IMAGE or VIDEO"})
		return
	}

	requiredLevel := 0
	if levelStr := c.Request.FormValue("requiredLevel"); levelStr != "" {
		parsed, err := strconv.Atoi(levelStr)
		if err != nil || parsed < 0 || parsed > models.MaxSubscriptionLevel {
			c.JSON(http.StatusBadRequest, gin.H{"error": "requiredLevel must be between 0 and 3"})
			return
		}
		requiredLevel = parsed
	}

	file, err := c.FormFile("media")
	if err != nil || file == nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Media file is required"})
		return
	}

	contentItem := models.Content{
		CreatorID:     userID.(string),
		Title:         c.Request.FormValue("title"),
		MediaType:     mediaType,
		RequiredLevel: requiredLevel,
		Enable:        true,
	}

	// Validation puis stream vers le bucket; aucun enregistrement tant que
	// l'objet n'est pas durable.
	if mediaType == models.MediaTypeImage {
		media, thumb, err := h.Storage.UploadImageWithThumbnail(c.Request.Context(), userID.(string), file, storage.AssetContentMedia)
		if err != nil {
			respondUploadError(c, err)
			return
		}
		contentItem.MediaURL = media.URL
		contentItem.MediaKey = media.Key
		if thumb != nil {
			contentItem.ThumbnailURL = thumb.URL
			contentItem.ThumbnailKey = thumb.Key
		}
	} else {
		media, err := h.Storage.Upload(c.Request.Context(), userID.(string), file, mediaType, storage.AssetContentMedia)
		if err != nil {
			respondUploadError(c, err)
			return
		}
		contentItem.MediaURL = media.URL
		contentItem.MediaKey = media.Key
	}

	if err := db.DB.Create(&contentItem).Error; err != nil {
		// Pas de ligne Content: les objets écrits seraient orphelins
		h.Storage.DeleteQuietly(contentItem.MediaKey)
		if contentItem.ThumbnailKey != "" {
			h.Storage.DeleteQuietly(contentItem.ThumbnailKey)
		}
		utils.LogErrorWithUser(userID, err, "Erreur lors de la création du contenu dans CreateContent")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error creating content"})
		return
	}

	utils.LogSuccessWithUser(userID, "Contenu publié avec succès dans CreateContent")
	c.JSON(http.StatusCreated, contentItem)
}

// GetContentByID returns the content with its media URLs only if the viewer
// is entitled to them.
// @Summary Get a content by ID
// @Description Retrieve a content; media URLs are withheld when the viewer's tier is insufficient
// @Tags content
// @Produce json
// @Param id path string true "Content ID"
// @Security BearerAuth
// @Success 200 {object} models.Content
// @Failure 401 {object} map[string]string "error: Unauthorized"
// @Failure 402 {object} models.ContentGated "locked content without URLs"
// @Failure 404 {object} map[string]string "error: Content not found"
// @Router /content/{id} [get]
func (h *Handler) GetContentByID(c *gin.Context) {
	userID, exists := c.Get("user_id")
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not found in token"})
		return
	}

	var contentItem models.Content
	if err := db.DB.First(&contentItem, "id = ?", c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Content not found"})
		return
	}

	isOwner := contentItem.CreatorID == userID.(string)
	if !contentItem.Enable && !isOwner {
		c.JSON(http.StatusNotFound, gin.H{"error": "Content not found"})
		return
	}

	viewerLevel := 0
	if !isOwner && contentItem.RequiredLevel > 0 {
		viewerLevel = subscriptions.CurrentLevel(userID.(string), contentItem.CreatorID, time.Now())
	}

	if !CanAccess(userID.(string), &contentItem, viewerLevel) {
		c.JSON(http.StatusPaymentRequired, contentItem.Gated())
		return
	}

	// Compteur monotone, incrémenté uniquement sur un accès accordé
	if err := db.DB.Model(&contentItem).UpdateColumn("views", gorm.Expr("views + 1")).Error; err != nil {
		utils.LogErrorWithUser(userID, err, "Erreur lors de l'incrément des vues dans GetContentByID")
	} else {
		contentItem.Views++
	}

	c.JSON(http.StatusOK, contentItem)
}

// GetAllContent lists enabled content, gating each item against the
// viewer's tier per creator.
// @Summary List content
// @Description Retrieve the content feed; locked items keep their metadata but lose their media URLs
// @Tags content
// @Produce json
// @Param creatorId query string false "Filter by creator ID"
// @Security BearerAuth
// @Success 200 {array} interface{}
// @Failure 401 {object} map[string]string "error: Unauthorized"
// @Failure 500 {object} map[string]string "error: Error message"
// @Router /content [get]
func (h *Handler) GetAllContent(c *gin.Context) {
	userID, exists := c.Get("user_id")
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not found in token"})
		return
	}

	query := db.DB.Where("enable = ?", true).Order("created_at DESC")
	if creatorID := c.Query("creatorId"); creatorID != "" {
		query = query.Where("creator_id = ?", creatorID)
	}

	var items []models.Content
	if err := query.Find(&items).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error retrieving content: " + err.Error()})
		return
	}

	now := time.Now()
	// Un seul calcul de niveau par créateur présent dans la page
	levels := make(map[string]int)

	feed := make([]interface{}, 0, len(items))
	for i := range items {
		item := &items[i]
		if item.RequiredLevel > 0 && item.CreatorID != userID.(string) {
			if _, ok := levels[item.CreatorID]; !ok {
				levels[item.CreatorID] = subscriptions.CurrentLevel(userID.(string), item.CreatorID, now)
			}
		}
		if CanAccess(userID.(string), item, levels[item.CreatorID]) {
			feed = append(feed, item)
		} else {
			feed = append(feed, item.Gated())
		}
	}

	c.JSON(http.StatusOK, feed)
}

// UpdateContent updates metadata and optionally replaces the media file.
// @Summary Update a content
// @Description Update content metadata; only the owning creator may change the required tier level
// @Tags content
// @Accept multipart/form-data
// @Produce json
// @Param id path string true "Content ID"
// @Param title formData string false "Content title"
// @Param requiredLevel formData int false "Minimum tier level (0 to 3)"
// @Param enable formData boolean false "Is the content enabled"
// @Param media formData file false "Replacement media file"
// @Security BearerAuth
// @Success 200 {object} models.Content
// @Failure 400 {object} map[string]string "error: Invalid input"
// @Failure 401 {object} map[string]string "error: Unauthorized"
// @Failure 403 {object} map[string]string "error: Insufficient access"
// @Failure 404 {object} map[string]string "error: Content not found"
// @Failure 500 {object} map[string]string "error: Error message"
// @Router /content/{id} [put]
func (h *Handler) UpdateContent(c *gin.Context) {
	userID, exists := c.Get("user_id")
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not found in token"})
		return
	}

	var contentItem models.Content
	if err := db.DB.First(&contentItem, "id = ?", c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Content not found"})
		return
	}

	userRole, _ := c.Get("user_role")
	isOwner := contentItem.CreatorID == userID.(string)
	if !isOwner && userRole != string(models.AdminRole) {
		c.JSON(http.StatusForbidden, gin.H{"error": "Insufficient access"})
		return
	}

	if title := c.Request.FormValue("title"); title != "" {
		contentItem.Title = title
	}

	if enableStr := c.Request.FormValue("enable"); enableStr != "" {
		contentItem.Enable = enableStr == "true"
	}

	if levelStr := c.Request.FormValue("requiredLevel"); levelStr != "" {
		// Seul le créateur propriétaire peut changer le niveau requis
		if !isOwner {
			c.JSON(http.StatusForbidden, gin.H{"error": "Insufficient access"})
			return
		}
		parsed, err := strconv.Atoi(levelStr)
		if err != nil || parsed < 0 || parsed > models.MaxSubscriptionLevel {
			c.JSON(http.StatusBadRequest, gin.H{"error": "requiredLevel must be between 0 and 3"})
			return
		}
		contentItem.RequiredLevel = parsed
	}

	file, err := c.FormFile("media")
	if err == nil && file != nil {
		oldMediaKey := contentItem.MediaKey
		oldThumbKey := contentItem.ThumbnailKey

		// Nouveau média écrit d'abord; les anciens objets ne partent
		// qu'après, en best-effort.
		if contentItem.MediaType == models.MediaTypeImage {
			media, thumb, err := h.Storage.UploadImageWithThumbnail(c.Request.Context(), userID.(string), file, storage.AssetContentMedia)
			if err != nil {
				respondUploadError(c, err)
				return
			}
			contentItem.MediaURL = media.URL
			contentItem.MediaKey = media.Key
			contentItem.ThumbnailURL = ""
			contentItem.ThumbnailKey = ""
			if thumb != nil {
				contentItem.ThumbnailURL = thumb.URL
				contentItem.ThumbnailKey = thumb.Key
			}
		} else {
			media, err := h.Storage.Upload(c.Request.Context(), userID.(string), file, contentItem.MediaType, storage.AssetContentMedia)
			if err != nil {
				respondUploadError(c, err)
				return
			}
			contentItem.MediaURL = media.URL
			contentItem.MediaKey = media.Key
		}

		if oldMediaKey != "" {
			h.Storage.DeleteQuietly(oldMediaKey)
		}
		if oldThumbKey != "" {
			h.Storage.DeleteQuietly(oldThumbKey)
		}
	}

	if err := db.DB.Save(&contentItem).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error updating content: " + err.Error()})
		return
	}

	c.JSON(http.StatusOK, contentItem)
}

// DeleteContent removes the content row and cleans up its stored objects.
// @Summary Delete a content
// @Description Delete a content by its ID; backing objects are removed best-effort
// @Tags content
// @Produce json
// @Param id path string true "Content ID"
// @Security BearerAuth
// @Success 200 {object} map[string]string "message: Content deleted successfully"
// @Failure 401 {object} map[string]string "error: Unauthorized"
// @Failure 403 {object} map[string]string "error: Insufficient access"
// @Failure 404 {object} map[string]string "error: Content not found"
// @Failure 500 {object} map[string]string "error: Error message"
// @Router /content/{id} [delete]
func (h *Handler) DeleteContent(c *gin.Context) {
	userID, exists := c.Get("user_id")
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not found in token"})
		return
	}

	var contentItem models.Content
	if err := db.DB.First(&contentItem, "id = ?", c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Content not found"})
		return
	}

	userRole, _ := c.Get("user_role")
	if contentItem.CreatorID != userID.(string) && userRole != string(models.AdminRole) {
		c.JSON(http.StatusForbidden, gin.H{"error": "Insufficient access"})
		return
	}

	if contentItem.MediaKey != "" {
		h.Storage.DeleteQuietly(contentItem.MediaKey)
	}
	if contentItem.ThumbnailKey != "" {
		h.Storage.DeleteQuietly(contentItem.ThumbnailKey)
	}

	if err := db.DB.Delete(&contentItem).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error deleting content: " + err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Content deleted successfully"})
}

func respondUploadError(c *gin.Context, err error) {
	var vErr *storage.ValidationError
	if errors.As(err, &vErr) {
		c.JSON(http.StatusBadRequest, gin.H{"error": vErr.Reason})
		return
	}
	utils.LogError(err, "Upload du média échoué")
	c.JSON(http.StatusInternalServerError, gin.H{"error": "Error uploading media"})
}
