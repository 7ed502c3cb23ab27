package main

import (
	"fmt"
	"log"
	"os"

	"mariscos-pos/config"
	"mariscos-pos/ledger"
	"mariscos-pos/models"
	"mariscos-pos/printer"
	"mariscos-pos/routes"
	"mariscos-pos/services"

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
		&models.Category{},
		&models.Product{},
		&models.Sale{},
		&models.SaleLine{},
	)

	config.SeedCatalog()
}

func main() {

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	led := ledger.New()
	tickets := printer.NewTicketPrinter(os.Getenv("POS_PRINTER_DEVICE"))
	if !tickets.Enabled() {
		log.Println("POS_PRINTER_DEVICE not set; ticket printing disabled")
	}

	reminders := services.NewCutReminderService(config.DB)
	reminders.StartScheduler()

	r := routes.SetupRouter(led, tickets)
	printRoutes(r)

	// One cashier, one machine: bind to loopback only.
	r.Run("127.0.0.1:" + port)
}

func printRoutes(r *gin.Engine) {
	routes := r.Routes()
	for _, route := range routes {
		fmt.Printf("%-6s %s\n", route.Method, route.Path)
	}
}
