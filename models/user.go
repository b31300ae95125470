package models

import (
	"time"
)

type Role string

// Définir les valeurs possibles pour le rôle
const (
	AdminRole   Role = "ADMIN"
	UserRole    Role = "USER"
	CreatorRole Role = "CREATOR"
)

type User struct {
	ID                string    `json:"id" gorm:"primaryKey;type:uuid;default:gen_random_uuid()"`
	Email             string    `json:"email" gorm:"uniqueIndex;not null"`
	Password          string    `json:"-"`
	UserName          string    `json:"username"`
	Role              Role      `json:"role" gorm:"type:varchar(20);default:'USER'"`
	Bio               string    `json:"bio"`
	ProfilePicture    string    `json:"profilePicture"`
	ProfilePictureKey string    `json:"-" gorm:"column:profile_picture_key"`
	StripeCustomerId  string    `json:"stripeCustomerId"`
	Enable            bool      `json:"enable" gorm:"default:true"`
	CreatedAt         time.Time `json:"createdAt"`
	UpdatedAt         time.Time `json:"updatedAt"`
}

// UserCreate model for the register and login payloads
type UserCreate struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=6"`
}
