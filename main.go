package main

import (
	"log"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"mrparker/ai"
	"mrparker/archive"
	"mrparker/cache"
	"mrparker/config"
	"mrparker/db"
	_ "mrparker/docs" // Swagger docs
	"mrparker/followup"
	"mrparker/handlers"
	"mrparker/service"
	"mrparker/session"
)

func main() {
	cfg := config.GetConfig()

	if cfg.GroqAPIKey == "" {
		log.Fatal("GROQ_API_KEY environment variable is required")
	}

	// Open the dataset and introspect the schema. Schema load is a
	// one-shot startup operation; failure here is fatal.
	database, err := db.New(cfg.DBPath)
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}

	// Initialize interaction archive
	interactionArchive, err := archive.New(cfg.ArchivePath)
	if err != nil {
		log.Fatalf("Failed to initialize archive: %v", err)
	}
	defer interactionArchive.Close()

	// Initialize completion cache
	appCache := cache.New(cfg.CacheTTL)

	// Initialize completion service client
	aiService, err := ai.New(cfg.GroqAPIKey, cfg.ModelName, cfg.APIBaseURL, appCache)
	if err != nil {
		log.Fatalf("Failed to initialize AI service: %v", err)
	}
	defer aiService.Close()

	// Session store and pipeline
	store := session.NewStore(cfg.MaxHistory)
	followupGenerator := followup.New(aiService, database.Schema())
	pipeline := service.NewPipeline(store, database.Schema(), aiService, database, aiService, followupGenerator, interactionArchive)

	h := handlers.New(pipeline, store, followupGenerator, interactionArchive)

	// Setup Gin router
	r := gin.Default()

	// CORS: allow everything, the assistant sits behind internal tooling
	corsConfig := cors.DefaultConfig()
	corsConfig.AllowAllOrigins = true
	corsConfig.AllowHeaders = []string{"Content-Type", "Content-Length", "Accept-Encoding", "Authorization", "Accept", "Origin", "Cache-Control", "X-Requested-With"}
	corsConfig.AllowMethods = []string{"GET", "POST", "PUT", "DELETE", "PATCH", "OPTIONS", "HEAD"}
	r.Use(cors.New(corsConfig))

	// Swagger documentation
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// Routes
	r.GET("/health", h.HealthHandler)
	r.POST("/query", h.QueryHandler)
	r.GET("/context", h.GetContextHandler)
	r.DELETE("/context", h.ClearContextHandler)
	r.GET("/context/export", h.ExportContextHandler)
	r.GET("/context/archive", h.ArchiveHandler)
	r.POST("/followup", h.FollowupHandler)

	log.Printf("Loaded schema with %d tables from %s", len(database.Schema().Tables), cfg.DBPath)
	log.Printf("Server starting on port %s", cfg.Port)
	if err := r.Run(":" + cfg.Port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
