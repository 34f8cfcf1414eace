package main

import (
	"log"

	"github.com/gin-gonic/gin"

	"github.com/Adhikram/ChartIQ-sub000/api"
	"github.com/Adhikram/ChartIQ-sub000/config"
	"github.com/Adhikram/ChartIQ-sub000/database"
	"github.com/Adhikram/ChartIQ-sub000/middleware"
	"github.com/Adhikram/ChartIQ-sub000/models"
	"github.com/Adhikram/ChartIQ-sub000/repository"
	"github.com/Adhikram/ChartIQ-sub000/services"

	"gorm.io/gorm"
)

func main() {
	config.LoadConfig()

	db, err := database.Init(config.AppConfig.Database.DSN)
	if err != nil {
		log.Fatalf("FATAL: [Main] Failed to initialize database: %v", err)
	}
	runMigrations(db)

	// Repositories
	messageRepo := repository.NewMessageRepository(db,
		config.AppConfig.Pagination.DefaultPageSize,
		config.AppConfig.Pagination.MaxPageSize,
	)
	analysisRepo := repository.NewAnalysisRepository(db)
	log.Println("INFO: [Main] Repositories initialized.")

	// Services
	llmClient := services.NewOpenAIClient(config.AppConfig.LLM)
	streamer := services.NewOpenAIStreamer(llmClient)
	captureService := services.NewCaptureService(config.AppConfig.Capture)
	analysisService := services.NewAnalysisService(streamer, config.AppConfig.LLM, config.AppConfig.Capture)
	turnService := services.NewTurnService(messageRepo, analysisRepo, captureService, analysisService)
	assistantService := services.NewAssistantService(
		streamer,
		messageRepo,
		services.NewYahooQuoteProvider(),
		config.AppConfig.LLM,
		config.AppConfig.Assistant,
	)
	symbolService := services.NewSymbolSearchService(config.AppConfig.SymbolSearch)
	log.Println("INFO: [Main] Services initialized.")

	apiHandler := api.NewAPIHandler(
		messageRepo,
		analysisRepo,
		captureService,
		turnService,
		assistantService,
		symbolService,
		config.AppConfig.Capture.Intervals,
	)
	log.Println("INFO: [Main] API Handler initialized.")

	r := gin.Default()
	r.SetTrustedProxies(nil)

	r.Use(middleware.RequestID())
	r.Use(middleware.Logger())
	r.Use(middleware.Cors())
	log.Println("INFO: [Main] Middlewares registered.")

	registerRoutes(r, apiHandler)
	log.Println("INFO: [Main] Routes registered.")

	serverPort := ":" + config.AppConfig.Server.Port
	if config.AppConfig.Server.Port == "" {
		log.Println("WARN: [Main] Server port not configured, using default :8080.")
		serverPort = ":8080"
	}
	log.Printf("INFO: [Main] Starting server on port %s", serverPort)
	if err := r.Run(serverPort); err != nil {
		log.Fatalf("FATAL: [Main] Server failed to start: %v", err)
	}
}

func runMigrations(db *gorm.DB) {
	log.Println("INFO: [Main] Running database migrations...")
	err := db.AutoMigrate(
		&models.Message{},
		&models.Analysis{},
		&models.ChartImage{},
	)
	if err != nil {
		log.Fatalf("FATAL: [Main] Failed to auto-migrate database: %v", err)
	}
	log.Println("INFO: [Main] Database migration completed.")
}

func registerRoutes(r *gin.Engine, handler *api.APIHandler) {
	// Screenshots are served as static assets; the paths stored in
	// ChartImage rows and returned by generate-charts resolve here.
	r.Static(config.AppConfig.Capture.PublicPrefix, config.AppConfig.Capture.ScreenshotDir)

	apiGroup := r.Group("/api")
	{
		apiGroup.POST("/generate-charts", handler.GenerateChartsHandler)
		apiGroup.POST("/analyze-charts", handler.AnalyzeChartsHandler)

		apiGroup.POST("/messages", handler.CreateMessageHandler)
		apiGroup.DELETE("/messages/:id", handler.DeleteMessageHandler)
		apiGroup.POST("/chat-message", handler.ChatMessagesHandler)

		apiGroup.POST("/stock-assistant", handler.StockAssistantHandler)
		apiGroup.GET("/symbol-search", handler.SymbolSearchHandler)
		apiGroup.GET("/analysis-history/:userId", handler.AnalysisHistoryHandler)
	}
}
