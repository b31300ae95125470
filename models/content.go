package models

import (
	"time"

	"gorm.io/gorm"
)

type MediaType string

const (
	MediaTypeImage MediaType = "IMAGE"
	MediaTypeVideo MediaType = "VIDEO"
)

// Content est un média publié par un créateur, verrouillé derrière un niveau
// d'abonnement minimum (0 = visible par tout utilisateur connecté).
type Content struct {
	ID            string         `json:"id" gorm:"primaryKey;type:uuid;default:gen_random_uuid()"`
	CreatorID     string         `json:"creatorId" gorm:"type:uuid;not null;index"`
	Title         string         `json:"title"`
	MediaType     MediaType      `json:"mediaType" gorm:"type:varchar(10);not null"`
	MediaURL      string         `json:"mediaUrl"`
	MediaKey      string         `json:"-" gorm:"column:media_key"`
	ThumbnailURL  string         `json:"thumbnailUrl"`
	ThumbnailKey  string         `json:"-" gorm:"column:thumbnail_key"`
	RequiredLevel int            `json:"requiredLevel" gorm:"default:0;index"`
	Likes         int64          `json:"likes" gorm:"default:0"`
	Views         int64          `json:"views" gorm:"default:0"`
	Enable        bool           `json:"enable" gorm:"default:true"`
	CreatedAt     time.Time      `json:"createdAt"`
	UpdatedAt     time.Time      `json:"updatedAt"`
	DeletedAt     gorm.DeletedAt `json:"-" gorm:"index"`
}

func (Content) TableName() string {
	return "contents"
}

// ContentGated is what a viewer without sufficient tier receives: the
// metadata survives, the media URLs do not.
type ContentGated struct {
	ID        string    `json:"id"`
	CreatorID string    `json:"creatorId"`
	Title     string    `json:"title"`
	MediaType MediaType `json:"mediaType"`
	Likes     int64     `json:"likes"`
	Views     int64     `json:"views"`
	Locked    bool      `json:"locked"`
	CreatedAt time.Time `json:"createdAt"`
}

// Gated strips everything entitlement-bearing from the content. The required
// level itself is not echoed back, to avoid tier enumeration.
func (c *Content) Gated() ContentGated {
	return ContentGated{
		ID:        c.ID,
		CreatorID: c.CreatorID,
		Title:     c.Title,
		MediaType: c.MediaType,
		Likes:     c.Likes,
		Views:     c.Views,
		Locked:    true,
		CreatedAt: c.CreatedAt,
	}
}

// ContentUpdate model for updating content metadata
type ContentUpdate struct {
	Title         string `json:"title"`
	RequiredLevel *int   `json:"requiredLevel"`
	Enable        *bool  `json:"enable"`
}
