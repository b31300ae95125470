package main

import (
	"log"
	"os"
	"time"

	"creatorhub-backend/db"
	_ "creatorhub-backend/docs"
	"creatorhub-backend/handlers/subscriptions"
	"creatorhub-backend/routes"
	"creatorhub-backend/storage"
	"creatorhub-backend/utils"

	"github.com/gin-gonic/gin"
)

// @title API CreatorHub Backend
// @version 1.0
// @description API de publication de contenus à accès par paliers d'abonnement
// @host localhost:8080
// @BasePath /
// @SecurityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Entrez le JWT avec le préfixe Bearer: Bearer <JWT>
func main() {

	gin.SetMode(gin.ReleaseMode)

	// Initialiser la base de données
	db.InitDB()

	// Les clés du collaborateur de facturation sont lues au démarrage:
	// leur absence est fatale, pas une erreur par requête.
	if os.Getenv("JWT_SECRET") == "" {
		log.Fatal("La variable JWT_SECRET doit être définie")
	}
	if os.Getenv("STRIPE_SECRET_KEY") == "" {
		log.Fatal("La variable STRIPE_SECRET_KEY doit être définie")
	}

	// Initialiser le stockage objet
	gateway, err := storage.NewFromEnv()
	if err != nil {
		utils.LogError(err, "Initialisation du stockage objet échouée")
		log.Fatal("Le stockage objet doit être configuré: ", err)
	}

	// Balayage horaire des abonnements périmés
	subscriptions.StartExpirySweep(time.Hour)

	r := routes.SetupRouter(gateway)

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	if err := r.Run(":" + port); err != nil {
		log.Fatal("Erreur lors du démarrage du serveur:", err)
	}
}
