package main

import (
	"fmt"
	"log"
	"os"
	"spabook-backend/config"
	"spabook-backend/models"
	"spabook-backend/routes"
	"spabook-backend/services"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
)

func init() {
	// Load environment variables
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found")
	}
	config.ConnectDB()

	config.DB.AutoMigrate(
		&models.User{},
		&models.Spa{},
		&models.Service{},
		&models.Staff{},
		&models.Shift{},
		&models.ShiftDay{},
		&models.TimeOff{},
		&models.Coupon{},
		&models.Booking{},
		&models.Payment{},
		&models.Loyalty{},
		&models.LoyaltyHistory{},
		&models.SystemSetting{},
		&models.Notification{},
	)
}

func main() {

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	notifier := services.NewNotificationService(config.DB)
	reminders := services.NewReminderService(config.DB, notifier)
	reminders.StartScheduler()

	r := routes.SetupRouter()
	printRoutes(r)
	r.Run(":" + port)
}

func printRoutes(r *gin.Engine) {
	routes := r.Routes()
	for _, route := range routes {
		fmt.Printf("%-6s %s\n", route.Method, route.Path)
	}
}
