package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"sportsbook/internal/auth"
	"sportsbook/internal/config"
	"sportsbook/internal/database"
	"sportsbook/internal/handlers"
	"sportsbook/internal/jobs"
	"sportsbook/internal/oddsapi"
	"sportsbook/internal/services"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Initialize JWT
	auth.InitJWT(cfg.App.JWTSecret)

	// Connect to database
	if err := database.Connect(cfg.GetDSN()); err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	// Run migrations
	if err := database.AutoMigrate(); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	db := database.GetDB()

	// Initialize services
	oddsClient := oddsapi.NewClient(cfg.OddsAPI.APIKey, cfg.OddsAPI.BaseURL)
	auditService := services.NewAuditService(db)
	authService := services.NewAuthService(db, auditService, cfg.App.AdminEmail)
	ingestionService := services.NewIngestionService(db, oddsClient, auditService)
	betService := services.NewBetService(db)
	settlementService := services.NewSettlementService(db)

	// Initialize handlers
	authHandler := handlers.NewAuthHandler(authService)
	marketHandler := handlers.NewMarketHandler(db)
	betHandler := handlers.NewBetHandler(betService)
	adminHandler := handlers.NewAdminHandler(db, ingestionService, authService, auditService, settlementService)

	// Start the periodic odds refresh job
	refreshJob := jobs.NewOddsRefreshJob(ingestionService)
	if err := refreshJob.Start(cfg.App.RefreshCron); err != nil {
		log.Fatalf("Failed to start odds refresh job: %v", err)
	}
	defer refreshJob.Stop()
	log.Println("Odds refresh job started")

	// Set up Gin router
	router := gin.Default()

	// CORS middleware
	allowedOrigins := []string{
		"http://localhost:3000",
		"http://localhost:5173",
		"http://127.0.0.1:3000",
		"http://127.0.0.1:5173",
	}
	if frontendURL := os.Getenv("FRONTEND_URL"); frontendURL != "" {
		allowedOrigins = append(allowedOrigins, frontendURL)
	}

	router.Use(cors.New(cors.Config{
		AllowOrigins:     allowedOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization", "Accept"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	// Health check endpoint
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status": "ok",
			"time":   time.Now().Format(time.RFC3339),
		})
	})

	// Authentication routes (public)
	authRoutes := router.Group("/auth")
	{
		authRoutes.POST("/register", authHandler.Register)
		authRoutes.POST("/login", authHandler.Login)
	}

	// Authenticated /auth/me route
	authProtected := router.Group("/auth")
	authProtected.Use(auth.AuthMiddleware())
	{
		authProtected.GET("/me", authHandler.GetMe)
	}

	// Public event routes
	router.GET("/api/events", marketHandler.GetEvents)
	router.GET("/api/events/:id", marketHandler.GetEventByID)

	// API routes (protected)
	api := router.Group("/api")
	api.Use(auth.AuthMiddleware())
	{
		api.POST("/bets", betHandler.PlaceBet)
		api.GET("/bets", betHandler.GetMyBets)
	}

	// Admin routes (protected + admin only)
	admin := router.Group("/api/admin")
	admin.Use(auth.AuthMiddleware())
	admin.Use(adminHandler.AdminMiddleware())
	{
		admin.POST("/fetch-odds", adminHandler.FetchOdds)
		admin.POST("/users/reset-password", adminHandler.ResetPassword)
		admin.GET("/users", adminHandler.GetUsers)
		admin.GET("/markets/settleable", adminHandler.GetSettleableMarkets)
		admin.PUT("/markets/:id/status", adminHandler.UpdateMarketStatus)
		admin.GET("/logs", adminHandler.GetLogs)
	}

	// Create HTTP server
	srv := &http.Server{
		Addr:    ":" + cfg.Server.Port,
		Handler: router,
	}

	// Start server in a goroutine
	go func() {
		log.Printf("Server starting on port %s", cfg.Server.Port)

		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down server...")

	// Graceful shutdown with 5 second timeout
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal("Server forced to shutdown:", err)
	}

	log.Println("Server exited")
}
