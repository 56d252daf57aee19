package api

import (
	"os"
	"strings"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/codyseavey/tcg-vendor/internal/api/handlers"
	"github.com/codyseavey/tcg-vendor/internal/services"
)

func SetupRouter(
	drafts *services.DraftService,
	inventory *services.InventoryService,
	engine *services.SettlementEngine,
	shows *services.ShowService,
	accounts *services.AccountService,
	sampler *services.ValuationSampler,
	catalog *services.CatalogService,
	refreshWorker *services.PriceRefreshWorker,
) *gin.Engine {
	router := gin.Default()
	router.Use(metricsMiddleware())

	// CORS configuration - allow origins from environment or use defaults
	config := cors.DefaultConfig()
	if corsOrigins := os.Getenv("CORS_ALLOWED_ORIGINS"); corsOrigins != "" {
		config.AllowOrigins = strings.Split(corsOrigins, ",")
	} else {
		config.AllowOrigins = []string{"http://localhost:5173", "http://localhost:3000"}
	}
	config.AllowMethods = []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"}
	config.AllowHeaders = []string{"Origin", "Content-Type", "Accept", "Authorization", "X-Account-ID"}
	config.AllowCredentials = false
	router.Use(cors.New(config))

	// Initialize handlers
	draftHandler := handlers.NewDraftHandler(drafts, inventory)
	tradeHandler := handlers.NewTradeHandler(engine)
	inventoryHandler := handlers.NewInventoryHandler(inventory)
	showHandler := handlers.NewShowHandler(shows)
	dashboardHandler := handlers.NewDashboardHandler(accounts, sampler)
	catalogHandler := handlers.NewCatalogHandler(catalog, refreshWorker)

	// API routes
	api := router.Group("/api")
	{
		// Draft routes
		draft := api.Group("/draft")
		{
			draft.GET("", draftHandler.GetDraft)
			draft.DELETE("", draftHandler.ClearDraft)
			draft.POST("/items", draftHandler.AddItem)
			draft.DELETE("/sides/:side/items/:id", draftHandler.RemoveItem)
			draft.PUT("/sides/:side/cash", draftHandler.SetCash)
			draft.PUT("/sides/:side/cash-method", draftHandler.SetCashMethod)
			draft.PUT("/percentage", draftHandler.SetOfferPercentage)
		}

		// Trade routes
		trades := api.Group("/trades")
		{
			trades.POST("/settle", tradeHandler.Settle)
			trades.GET("", tradeHandler.History)
		}

		// Inventory routes
		inv := api.Group("/inventory")
		{
			inv.GET("", inventoryHandler.List)
			inv.POST("", inventoryHandler.Add)
			inv.DELETE("/:id", inventoryHandler.Delete)
			inv.GET("/stats", inventoryHandler.Stats)
		}

		// Show session routes
		showRoutes := api.Group("/shows")
		{
			showRoutes.GET("", showHandler.List)
			showRoutes.POST("", showHandler.Start)
			showRoutes.POST("/:id/end", showHandler.End)
			showRoutes.GET("/active", showHandler.Active)
		}

		// Dashboard routes
		dashboard := api.Group("/dashboard")
		{
			dashboard.GET("/account", dashboardHandler.Account)
			dashboard.GET("/valuation", dashboardHandler.ValuationHistory)
			dashboard.POST("/funds", dashboardHandler.AdjustFunds)
			dashboard.POST("/clear-pending", dashboardHandler.ClearPendingSales)
		}

		// Catalog routes
		catalogRoutes := api.Group("/catalog")
		{
			catalogRoutes.GET("/search", catalogHandler.Search)
			catalogRoutes.GET("/refresh-status", catalogHandler.RefreshStatus)
		}
	}

	// Health check
	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	// Prometheus scrape endpoint
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	return router
}
