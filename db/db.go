package db

import (
	"os"

	"creatorhub-backend/models"
	"creatorhub-backend/utils"

	"github.com/joho/godotenv"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

var DB *gorm.DB

func InitDB() {
	if err := godotenv.Load(); err != nil {
		utils.LogError(err, "Warning: Impossible to load the .env file")
		utils.LogInfo("The environment variable DB_URL must be defined in the system environment")
	}

	dsn := os.Getenv("DB_URL")
	if dsn == "" {
		utils.LogError(nil, "Variable DB_URL non définie")
		panic("URL de base de données non configurée")
	}

	var err error
	DB, err = gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: utils.GetGormLogger(),
	})
	if err != nil {
		utils.LogError(err, "Error connecting to the database")
		panic("Could not connect to the database")
	}

	err = DB.AutoMigrate(
		&models.User{},
		&models.Subscription{},
		&models.Content{},
		&models.Like{},
		&models.Follow{},
	)
	if err != nil {
		utils.LogError(err, "Error migrating database")
		panic("Could not migrate database")
	}

	// Au plus un abonnement ACTIVE par paire (subscriber, creator). L'unicité
	// est portée par un index partiel, AutoMigrate ne sait pas le générer.
	if err := DB.Exec(`CREATE UNIQUE INDEX IF NOT EXISTS idx_subscriptions_active_pair
		ON subscriptions (subscriber_id, creator_id) WHERE status = 'ACTIVE'`).Error; err != nil {
		utils.LogError(err, "Error creating the active subscription unique index")
		panic("Could not create the active subscription unique index")
	}

	if err := DB.Exec(`CREATE UNIQUE INDEX IF NOT EXISTS idx_likes_content_user
		ON likes (content_id, user_id)`).Error; err != nil {
		utils.LogError(err, "Error creating the likes unique index")
		panic("Could not create the likes unique index")
	}

	utils.LogSuccess("Database connection successful")
}
