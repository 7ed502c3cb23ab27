package routes

import (
	"mariscos-pos/config"
	"mariscos-pos/controllers"
	"mariscos-pos/ledger"
	"mariscos-pos/printer"
	"mariscos-pos/services"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

func SetupRouter(led *ledger.Ledger, tickets *printer.TicketPrinter) *gin.Engine {
	r := gin.Default()

	// The UI is a local browser front-end; nothing else talks to this API.
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"http://localhost:3000", "http://127.0.0.1:3000"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
	}))

	r.Use(config.PerformanceLogger())

	info := printer.LoadBusinessInfo()
	salesService := services.NewSalesService(config.DB)
	cutService := services.NewCashCutService(config.DB)

	tableController := controllers.NewTableController(led)
	orderController := controllers.NewOrderController(led)
	saleController := controllers.NewSaleController(led, salesService, tickets, info)
	reportController := controllers.NewReportController(cutService, tickets, info)

	api := r.Group("/api")
	{
		// Catalog routes
		categories := api.Group("/categories")
		{
			categories.POST("", controllers.CreateCategory)
			categories.GET("", controllers.GetCategories)
			categories.DELETE("/:id", controllers.DeleteCategory)
		}

		products := api.Group("/products")
		{
			products.POST("", controllers.CreateProduct)
			products.GET("", controllers.GetProducts)
			products.GET("/:id", controllers.GetProduct)
			products.DELETE("/:id", controllers.DeleteProduct)
		}

		// Floor and open-order routes
		tables := api.Group("/tables")
		{
			tables.GET("", tableController.ListTables)
			tables.POST("/:key/open", tableController.OpenTable)
			tables.POST("/:key/close", tableController.CloseTable)
			tables.POST("/:key/transfer", tableController.TransferTable)
			tables.GET("/:key/order", tableController.GetOrder)
			tables.POST("/:key/lines", orderController.AddLine)
			tables.PUT("/:key/lines/:line", orderController.EditLine)
			tables.POST("/:key/lines/:line/quantity", orderController.AdjustQuantity)
			tables.POST("/:key/pay", saleController.Pay)
			tables.POST("/:key/print", saleController.PrintOrder)
		}

		// Sale history routes
		sales := api.Group("/sales")
		{
			sales.GET("", saleController.ListSales)
			sales.GET("/:id", saleController.GetSale)
			sales.POST("/:id/print", saleController.PrintSale)
		}

		// Cash-cut report routes
		reports := api.Group("/reports")
		{
			reports.GET("/current", reportController.CurrentSummary)
			reports.GET("/current/products", reportController.CurrentProducts)
			reports.POST("/current/products/print", reportController.PrintCurrentProducts)
			reports.GET("/cuts", reportController.ListCuts)
			reports.GET("/cuts/:label", reportController.CutSummary)
			reports.GET("/cuts/:label/products", reportController.CutProducts)
			reports.POST("/cuts/:label/products/print", reportController.PrintCutProducts)
			reports.POST("/cuts/:label/print", reportController.PrintCutReport)
			reports.POST("/close", reportController.CloseCut)
		}
	}

	return r
}
