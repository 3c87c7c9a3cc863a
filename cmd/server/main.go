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

	"peopledex/internal/handlers"
	"peopledex/internal/middleware"
	"peopledex/internal/repositories"
	"peopledex/internal/services"
	"peopledex/pkg/config"
	"peopledex/pkg/database"
	"peopledex/pkg/logger"
)

func main() {
	// Load configuration
	if err := config.Load(); err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	logger.Init()
	gin.SetMode(config.AppConfig.Server.Mode)

	// Initialize database
	if err := database.Init(); err != nil {
		logger.Fatalf("Failed to initialize database: %v", err)
	}
	defer database.Close()

	// Initialize dependencies
	personRepo := repositories.NewPersonRepository(database.DB)
	personService := services.NewPersonService(personRepo)
	searchService := services.NewSearchService(personRepo)

	// Initialize router
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestLogger())

	setupRoutes(router, personService, searchService)

	// Setup server
	server := &http.Server{
		Addr:         ":" + config.AppConfig.Server.Port,
		Handler:      router,
		ReadTimeout:  time.Duration(config.AppConfig.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(config.AppConfig.Server.WriteTimeout) * time.Second,
	}

	go func() {
		logger.Infof("Server starting on :%s", config.AppConfig.Server.Port)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatalf("Server failed to start: %v", err)
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down server...")
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		logger.Errorf("Server shutdown: %v", err)
	}
	logger.Info("Server stopped")
}

func setupRoutes(router *gin.Engine, personService *services.PersonService, searchService *services.SearchService) {
	// Initialize handlers
	personHandler := handlers.NewPersonHandler(personService, searchService)
	healthHandler := handlers.NewHealthHandler()

	people := router.Group("/people")
	{
		people.GET("", personHandler.SearchPeople)
		people.POST("", personHandler.CreatePerson)
		people.GET("/:id", personHandler.GetPerson)
		people.PUT("/:id", personHandler.UpdatePerson)
	}

	// Health check endpoint
	router.GET("/health", healthHandler.HealthCheck)
}
