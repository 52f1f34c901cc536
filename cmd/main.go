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

	"tap-game/internal/auth"
	"tap-game/internal/config"
	"tap-game/internal/database"
	"tap-game/internal/handlers"
	"tap-game/internal/jobs"
	"tap-game/internal/models"
	"tap-game/internal/repository"
	"tap-game/internal/services"
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
	if err := database.Connect(cfg); err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	// Run migrations
	if err := database.AutoMigrate(); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	// Initialize storage layer
	store := repository.New(database.GetDB())

	// Initialize settings, seeding defaults on first start
	settingsService := services.NewSettingsService(store)
	if err := settingsService.EnsureDefaults(context.Background(), models.GameSettings{
		BaseTapPoints:        cfg.Game.BaseTapPoints,
		RegenAmount:          cfg.Game.RegenAmount,
		RegenIntervalSeconds: cfg.Game.RegenIntervalSeconds,
	}); err != nil {
		log.Fatalf("Failed to initialize game settings: %v", err)
	}
	settings := settingsService.Get()

	// Start the energy regeneration schedule
	regenerator := jobs.NewRegenerator(store, settings.RegenAmount, settings.RegenIntervalSeconds)
	regenerator.Start()
	settingsService.AttachRegenerator(regenerator)

	// Initialize services
	tapService := services.NewTapService(store, settingsService)
	wheelService := services.NewWheelService(store, settingsService)
	userService := services.NewUserService(store)

	// Initialize handlers
	gameHandler := handlers.NewGameHandler(tapService, wheelService)
	settingsHandler := handlers.NewSettingsHandler(settingsService)
	userHandler := handlers.NewUserHandler(userService)

	// Set up Gin router
	router := gin.Default()

	// CORS middleware
	allowedOrigins := []string{
		"http://localhost:3000",
		"http://localhost:5173", // Vite dev server
		"http://127.0.0.1:3000",
		"http://127.0.0.1:5173",
	}
	if frontendURL := os.Getenv("FRONTEND_URL"); frontendURL != "" {
		allowedOrigins = append(allowedOrigins, frontendURL)
	}

	router.Use(cors.New(cors.Config{
		AllowOrigins:     allowedOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS", "PATCH"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization", "Accept", "X-Requested-With"},
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

	// Public game routes
	api := router.Group("/api")
	{
		api.POST("/tap", gameHandler.Tap)
		api.POST("/wheel/spin", gameHandler.Spin)
		api.GET("/wheel/last-spin/:userId", gameHandler.LastSpin)
		api.GET("/wheel/history/:userId", gameHandler.SpinHistory)
		api.GET("/settings", settingsHandler.GetSettings)
		api.GET("/users/:id", userHandler.GetUser)
		api.GET("/users/:id/upgrades", userHandler.GetUpgrades)
	}

	// Settings mutation (admin token required)
	settingsAdmin := router.Group("/api")
	settingsAdmin.Use(auth.AuthMiddleware())
	settingsAdmin.Use(auth.AdminMiddleware())
	{
		settingsAdmin.PATCH("/settings", settingsHandler.UpdateSettings)
	}

	// Admin routes (protected + admin only)
	admin := router.Group("/api/admin")
	admin.Use(auth.AuthMiddleware())
	admin.Use(auth.AdminMiddleware())
	{
		admin.POST("/energy-settings", settingsHandler.UpdateEnergySettings)
		admin.GET("/users", userHandler.ListUsers)
	}

	// Create HTTP server
	srv := &http.Server{
		Addr:    ":" + cfg.Server.Port,
		Handler: router,
	}

	// Start server in a goroutine
	go func() {
		log.Printf("Server starting on port %s", cfg.Server.Port)
		log.Printf("Health check: http://localhost:%s/health", cfg.Server.Port)

		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down server...")

	regenerator.Stop()

	// Graceful shutdown with 5 second timeout
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal("Server forced to shutdown:", err)
	}

	log.Println("Server exited")
}
