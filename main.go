// api/main.go
package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"shopsense/api/catalog"
	"shopsense/api/database"
	"shopsense/api/engine"
	"shopsense/api/handlers"
	"shopsense/api/middleware"
	"shopsense/api/store"
)

func main() {
	// Load .env file at the very start
	if err := godotenv.Load(); err != nil {
		log.Printf("No .env file found or error loading .env: %v", err)
	}

	if os.Getenv("GIN_MODE") == "release" {
		gin.SetMode(gin.ReleaseMode)
	}

	// --- Initialize PostgreSQL Database (for users) ---
	dbClient, err := database.NewPostgresDB()
	if err != nil {
		log.Fatalf("Failed to initialize PostgreSQL database: %v", err)
	}
	defer dbClient.Close()

	// --- Initialize ClickHouse Database (for interaction events) ---
	chClient, err := database.NewClickHouseDB()
	if err != nil {
		log.Fatalf("Failed to initialize ClickHouse database: %v", err)
	}
	defer chClient.Close()

	// --- Initialize Stores and Catalog Client ---
	userStore := store.NewUserStore(dbClient.DB)
	eventStore := store.NewClickHouseEventStore(chClient)
	catalogClient := catalog.NewClient()

	// --- Initialize Engine ---
	recorder := engine.NewRecorder(eventStore)
	recommender := engine.NewRecommender(eventStore, catalogClient)
	similarity := engine.NewSimilarityScorer(catalogClient)
	aggregator := engine.NewAggregator(eventStore)

	// --- Initialize Handlers ---
	authHandlers := handlers.NewAuthHandlers(userStore)
	interactionHandlers := handlers.NewInteractionHandlers(recorder, recommender, similarity, catalogClient)
	analyticsHandlers := handlers.NewAnalyticsHandlers(aggregator)

	r := gin.Default()

	r.Use(middleware.CORSMiddleware())

	api := r.Group("/api")
	{
		// Authentication Endpoints (no authentication required)
		api.POST("/signup", authHandlers.Signup)
		api.POST("/login", authHandlers.Login)
		api.POST("/logout", authHandlers.Logout)

		// Similar products are a public storefront feature.
		api.GET("/products/similar", interactionHandlers.GetSimilarProducts)

		// Tracking and recommendations are opt-in for authenticated users;
		// anonymous requests pass through and no-op.
		storefront := api.Group("/")
		storefront.Use(middleware.AuthOptional())
		{
			storefront.POST("/interactions", interactionHandlers.RecordInteraction)
			storefront.GET("/recommendations", interactionHandlers.GetRecommendations)
		}

		// Admin analytics requires a valid JWT with the admin flag.
		admin := api.Group("/admin")
		admin.Use(middleware.AuthRequired(), middleware.AdminRequired())
		{
			admin.GET("/analytics", analyticsHandlers.GetAdminAnalytics)
		}
	}

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	srv := &http.Server{
		Addr:    ":" + port,
		Handler: r,
	}

	go func() {
		log.Printf("Go API server starting on http://localhost:%s", port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Go API server failed to start: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Fatalf("Server forced to shutdown: %v", err)
	}

	log.Println("Server exiting.")
}
