package main

import (
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"buildsite-service/internal/chat"
	"buildsite-service/internal/handler"
	"buildsite-service/internal/lead"
	"buildsite-service/internal/llm"
	mid "buildsite-service/internal/middleware"
	"buildsite-service/internal/schedule"
	"buildsite-service/pkg/config"
	"buildsite-service/pkg/database"
	"buildsite-service/pkg/jwtutil"
	"buildsite-service/pkg/logger"
	"buildsite-service/prometheus"
)

func main() {
	// Load configuration (pulls in .env if present)
	appConfig, err := config.Load()
	if err != nil {
		// Can't use structured logger yet since it's not initialized
		panic("Failed to load configuration: " + err.Error())
	}

	// Initialize logger
	logger.InitLogger(appConfig)
	log := logger.GetLogger()
	defer log.Sync()

	log.Info("Starting buildsite-service",
		zap.String("environment", appConfig.Server.Env),
		zap.String("port", appConfig.Server.Port))

	// Initialize JWT utility
	jwtutil.Initialize(&appConfig.JWT)

	// Initialize Prometheus metrics
	prometheus.InitMetrics(appConfig)
	log.Info("Prometheus metrics initialized",
		zap.String("metrics_prefix", appConfig.Metrics.Prefix))

	// Initialize database
	if err := database.InitDB(appConfig); err != nil {
		log.Fatal("Failed to initialize database", zap.Error(err))
	}
	log.Info("Database connection established")
	db := database.GetDB()

	// Build the language model client and the services on top of it
	llmClient := llm.NewClient(appConfig.LLM)
	generator := schedule.NewGenerator(llmClient, log)
	autoScheduler := schedule.NewAutoScheduler(db, llmClient, log)
	qualifier := lead.NewQualifier(llmClient, log)
	chatRouter := chat.NewRouter(&chat.GormStore{DB: db}, llmClient, qualifier, log)

	// Handlers
	projectHandler := handler.NewProjectHandler(db)
	teamHandler := handler.NewTeamHandler(db)
	scheduleHandler := handler.NewScheduleHandler(db, generator, autoScheduler)
	taskHandler := handler.NewTaskHandler(db)
	chatHandler := handler.NewChatHandler(chatRouter)
	leadHandler := handler.NewLeadHandler(db)

	// Initialize Echo instance
	e := echo.New()

	// Middleware
	e.Use(middleware.Recover())
	e.Use(middleware.CORS()) // surface is fully open
	e.Use(mid.RequestIDMiddleware)
	e.Use(mid.MetricsMiddleware)
	e.Use(mid.IdentityMiddleware)

	// Liveness and operational endpoints
	e.GET("/", handler.Root)
	e.GET("/health", handler.HealthCheck)
	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))

	// Project routes
	e.POST("/projects/create", projectHandler.Create)
	e.POST("/projects/join", projectHandler.Join)
	e.POST("/projects/generate-schedule", scheduleHandler.Generate)
	e.POST("/projects/auto-schedule", scheduleHandler.AutoSchedule)
	e.GET("/projects/:id/dashboard", projectHandler.Dashboard)
	e.GET("/projects/:id/team", teamHandler.List)
	e.GET("/projects/:id/leads", leadHandler.List)
	e.POST("/projects/team/add", teamHandler.Add)
	e.DELETE("/projects/:id", projectHandler.Delete)

	// Task routes
	e.POST("/tasks/add", taskHandler.Add)
	e.PATCH("/tasks/:id", taskHandler.Update)
	e.DELETE("/tasks/:id", taskHandler.Delete)

	// Chat route
	e.POST("/chat/send", chatHandler.Send)

	// Lead routes
	e.POST("/leads/upload-csv", leadHandler.UploadCSV)
	e.POST("/leads/ingest", leadHandler.Ingest)

	// Start server
	port := appConfig.Server.Port
	log.Info("Starting server", zap.String("port", port))
	if err := e.Start(":" + port); err != nil {
		log.Fatal("Server error", zap.Error(err))
	}
}
