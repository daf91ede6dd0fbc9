package main

import (
	"fmt"
	"log"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"propswipes/internal/config"
	"propswipes/internal/handler"
	"propswipes/internal/repository"
	"propswipes/internal/service"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

var (
	Version   = "dev"
	BuildTime = "unknown"
	GitCommit = "unknown"
)

func main() {
	log.Printf("PropSwipes Search Service")
	log.Printf("Version: %s", Version)
	log.Printf("Build Time: %s", BuildTime)
	log.Printf("Git Commit: %s", GitCommit)
	log.Println("")

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Set Gin mode
	gin.SetMode(cfg.Server.GinMode)

	// Initialize database connection
	repo, err := repository.NewPostgresRepository(
		cfg.GetPostgreSQLDSN(),
		cfg.PostgreSQL.MaxConnections,
		cfg.PostgreSQL.MaxIdleConnections,
	)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer repo.Close()

	log.Println("Connected to PostgreSQL database")

	// Initialize OpenAI client
	var openaiClient *service.OpenAIClient
	if cfg.OpenAI.Enabled {
		openaiClient = service.NewOpenAIClient(&cfg.OpenAI)
		log.Printf("OpenAI client initialized")
		log.Printf("  - API Base: %s", cfg.OpenAI.APIBase)
		log.Printf("  - Chat model: %s", cfg.OpenAI.ChatModel)
		log.Printf("  - Embedding model: %s", cfg.OpenAI.EmbeddingModel)
	} else {
		log.Println("OpenAI is disabled - smart search will return a configuration error")
		log.Println("Set OPENAI_API_KEY environment variable to enable it")
	}

	// Initialize services
	heuristic := service.NewHeuristicParser()
	smart := service.NewSmartParser(openaiClient)
	searchService := service.NewSearchService(
		repo,
		heuristic,
		smart,
		openaiClient,
		cfg.Search.ResultLimit,
		cfg.Search.SimilarLimit,
	)

	log.Println("Services initialized")

	// Initialize handlers
	searchHandler := handler.NewSearchHandler(searchService)
	embeddingHandler := handler.NewEmbeddingHandler(searchService, cfg.OpenAI.EmbeddingDimensions)
	feedbackHandler := handler.NewFeedbackHandler(searchService)

	// Setup Gin router
	router := gin.Default()

	// CORS configuration
	corsConfig := cors.DefaultConfig()
	corsConfig.AllowOrigins = strings.Split(cfg.Server.AllowedOrigins, ",")
	corsConfig.AllowMethods = strings.Split(cfg.Server.AllowedMethods, ",")
	corsConfig.AllowHeaders = strings.Split(cfg.Server.AllowedHeaders, ",")
	router.Use(cors.New(corsConfig))

	// Health check endpoint
	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":     "healthy",
			"service":    "propswipes-search",
			"version":    Version,
			"build_time": BuildTime,
			"git_commit": GitCommit,
		})
	})

	// Version endpoint
	router.GET("/version", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"version":    Version,
			"build_time": BuildTime,
			"git_commit": GitCommit,
		})
	})

	// API routes
	apiV1 := router.Group("/api/v1")
	{
		// Search endpoints
		apiV1.POST("/search", searchHandler.Search)
		apiV1.POST("/search/smart", searchHandler.SearchSmart)
		apiV1.GET("/listings/:id", searchHandler.GetListing)
		apiV1.GET("/listings/:id/similar", searchHandler.SimilarListings)

		// Embedding maintenance
		apiV1.POST("/embeddings/batch", embeddingHandler.BatchUpdate)

		// Feedback endpoint
		apiV1.POST("/feedback", feedbackHandler.Submit)
	}

	// Start server
	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	log.Printf("Starting server on %s", addr)

	go func() {
		if err := router.Run(addr); err != nil {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down server...")
	log.Println("Server stopped")
}
