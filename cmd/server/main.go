package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/codyseavey/tcg-vendor/internal/api"
	"github.com/codyseavey/tcg-vendor/internal/database"
	"github.com/codyseavey/tcg-vendor/internal/services"
)

func main() {
	// Database path
	dbPath := os.Getenv("DB_PATH")
	if dbPath == "" {
		dbPath = "./tcg_vendor.db"
	}

	// Initialize database
	if err := database.Initialize(dbPath); err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	db := database.GetDB()

	// Initialize catalog client for card lookups and price refreshes
	catalogAPIKey := os.Getenv("CATALOG_API_KEY")
	catalogDailyLimit := 1000
	if limitStr := os.Getenv("CATALOG_DAILY_LIMIT"); limitStr != "" {
		if limit, err := strconv.Atoi(limitStr); err == nil {
			catalogDailyLimit = limit
		}
	}
	catalogService := services.NewCatalogService(catalogAPIKey, catalogDailyLimit)

	// Initialize core services
	sampler := services.NewValuationSampler(db)
	accountService := services.NewAccountService(db, sampler)
	inventoryService := services.NewInventoryService(db, accountService)
	draftService := services.NewDraftService()
	showService := services.NewShowService(db)
	settlementEngine := services.NewSettlementEngine(db, draftService, accountService, showService)

	// Initialize background market-value refresh worker
	refreshWorker := services.NewPriceRefreshWorker(db, catalogService, accountService)

	// Create a cancellable context for graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Start price refresh worker in background with panic recovery
	go func() {
		for {
			func() {
				defer func() {
					if r := recover(); r != nil {
						log.Printf("PANIC in price refresh worker: %v - restarting in 30 seconds", r)
					}
				}()
				refreshWorker.Start(ctx)
			}()

			select {
			case <-ctx.Done():
				return // Graceful shutdown
			case <-time.After(30 * time.Second):
				log.Println("Price refresh worker restarting after panic recovery...")
			}
		}
	}()

	// Setup router
	router := api.SetupRouter(
		draftService,
		inventoryService,
		settlementEngine,
		showService,
		accountService,
		sampler,
		catalogService,
		refreshWorker,
	)

	// Get port from environment
	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	// Create HTTP server for graceful shutdown
	srv := &http.Server{
		Addr:    ":" + port,
		Handler: router,
	}

	// Start server in a goroutine
	go func() {
		log.Printf("Starting server on port %s", port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("Shutting down server...")

	// Cancel the context to stop the background workers
	cancel()

	// Give outstanding requests a deadline to complete
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Printf("Server forced to shutdown: %v", err)
	}

	log.Println("Server exited")
}
