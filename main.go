package main

import (
	"log"
	"os"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"gorm.io/gorm"

	"github.com/yeremiapane/table-order-app/config"
	"github.com/yeremiapane/table-order-app/events"
	"github.com/yeremiapane/table-order-app/models"
	"github.com/yeremiapane/table-order-app/router"
	"github.com/yeremiapane/table-order-app/services"
	"github.com/yeremiapane/table-order-app/utils"
)

func main() {
	// Load .env sebelum apa pun yang baca environment.
	if err := godotenv.Load(); err != nil {
		log.Printf("Warning: .env file not found: %v", err)
	}

	utils.InitLogger()

	db, err := config.InitDB()
	if err != nil {
		utils.ErrorLogger.Fatalf("Failed to connect to database: %v", err)
	}

	if os.Getenv("GIN_MODE") == "release" {
		gin.SetMode(gin.ReleaseMode)
	}

	autoMigrate(db)

	hub := events.NewHub()

	// Poll rekonsiliasi: backstop untuk push yang drop.
	reconciler := services.NewReconciler(db, hub)
	reconciler.Start()
	defer reconciler.Stop()

	r := router.SetupRouter(db, hub)

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	utils.InfoLogger.Printf("Listening on port %s", port)
	if err := r.Run(":" + port); err != nil {
		utils.ErrorLogger.Fatal(err)
	}
}

func autoMigrate(db *gorm.DB) {
	err := db.AutoMigrate(
		&models.User{},
		&models.Menu{},
		&models.Order{},
		&models.OrderItem{},
	)
	if err != nil {
		utils.ErrorLogger.Fatalf("Failed to AutoMigrate: %v", err)
	}
	utils.InfoLogger.Println("AutoMigrate completed.")
}
